package model

import "fmt"

// Tx is an open transaction on a document. Mutations made through a Tx
// are journaled; when the transaction function returns an error (or
// panics), the journal is replayed in reverse to restore the document.
type Tx struct {
	doc  *Document
	name string
	undo []func()
}

// Name returns the transaction's display name.
func (tx *Tx) Name() string { return tx.name }

// Run executes fn inside a named transaction. An error return (or a
// panic inside fn, which is converted to an error) rolls back every
// mutation made through the Tx. Transactions do not nest.
func (d *Document) Run(name string, fn func(*Tx) error) (err error) {
	if d.inTx {
		return fmt.Errorf("%w: %q is already open", ErrNestedTransaction, name)
	}
	d.inTx = true
	tx := &Tx{doc: d, name: name}
	defer func() {
		d.inTx = false
		if r := recover(); r != nil {
			tx.rollback()
			err = fmt.Errorf("transaction %q: panic: %v", name, r)
			return
		}
		if err != nil {
			tx.rollback()
			err = fmt.Errorf("transaction %q: %w", name, err)
		}
	}()
	return fn(tx)
}

func (tx *Tx) rollback() {
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

// AddElement inserts el into the document and journals the insertion.
func (tx *Tx) AddElement(el *Element) error {
	if err := tx.doc.AddElement(el); err != nil {
		return err
	}
	id := el.ID
	tx.undo = append(tx.undo, func() { tx.doc.removeElement(id) })
	return nil
}

// SetParameterDouble writes a double value to el's named parameter and
// journals the previous value. The parameter must exist and store a
// double.
func (tx *Tx) SetParameterDouble(el *Element, name string, v float64) error {
	p, ok := el.LookupParameter(name)
	if !ok {
		return fmt.Errorf("%w: %q on element %s", ErrNoSuchParameter, name, el.ID)
	}
	if p.Storage != StorageDouble {
		return fmt.Errorf("%w: %q on element %s stores %s", ErrStorageMismatch, name, el.ID, p.Storage)
	}
	prev := p.Double
	p.Double = v
	tx.undo = append(tx.undo, func() { p.Double = prev })
	return nil
}

// SetParameterString writes a string value to el's named parameter and
// journals the previous value.
func (tx *Tx) SetParameterString(el *Element, name, v string) error {
	p, ok := el.LookupParameter(name)
	if !ok {
		return fmt.Errorf("%w: %q on element %s", ErrNoSuchParameter, name, el.ID)
	}
	if p.Storage != StorageString {
		return fmt.Errorf("%w: %q on element %s stores %s", ErrStorageMismatch, name, el.ID, p.Storage)
	}
	prev := p.Text
	p.Text = v
	tx.undo = append(tx.undo, func() { p.Text = prev })
	return nil
}

// ActivateSymbol marks the symbol active and journals its previous
// state.
func (tx *Tx) ActivateSymbol(s *FamilySymbol) {
	prev := s.Active
	s.Active = true
	tx.undo = append(tx.undo, func() { s.Active = prev })
}
