package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Document is the in-memory building model. Element enumeration order is
// insertion order, which the matching pipeline's tie-breaks depend on.
type Document struct {
	Title string

	elements map[ElementID]*Element
	order    []ElementID
	families []*Family
	symbols  map[ElementID]*FamilySymbol
	nextID   ElementID
	inTx     bool
}

// NewDocument creates an empty document.
func NewDocument(title string) *Document {
	return &Document{
		Title:    title,
		elements: make(map[ElementID]*Element),
		symbols:  make(map[ElementID]*FamilySymbol),
		nextID:   1,
	}
}

// AddElement inserts el into the document. A zero ID is assigned the
// next free ID; an explicit ID must be unused. Elements without a UID
// get a fresh one. Use Tx.AddElement inside Document.Run when the
// insertion must roll back with a failed transaction.
func (d *Document) AddElement(el *Element) error {
	if el.ID == 0 {
		el.ID = d.nextID
	}
	if _, taken := d.elements[el.ID]; taken {
		return fmt.Errorf("%w: %s", ErrElementExists, el.ID)
	}
	if _, taken := d.symbols[el.ID]; taken {
		return fmt.Errorf("%w: %s (family symbol)", ErrElementExists, el.ID)
	}
	if el.UID == "" {
		el.UID = uuid.NewString()
	}
	d.elements[el.ID] = el
	d.order = append(d.order, el.ID)
	if el.ID >= d.nextID {
		d.nextID = el.ID + 1
	}
	return nil
}

// removeElement undoes an insertion. Only the transaction journal calls it.
func (d *Document) removeElement(id ElementID) {
	if _, ok := d.elements[id]; !ok {
		return
	}
	delete(d.elements, id)
	for i, oid := range d.order {
		if oid == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Element returns the element with the given ID.
func (d *Document) Element(id ElementID) (*Element, bool) {
	el, ok := d.elements[id]
	return el, ok
}

// ElementType resolves el's type element, or nil when el has no type
// link or the link dangles.
func (d *Document) ElementType(el *Element) *Element {
	if el.TypeID == 0 {
		return nil
	}
	t, ok := d.elements[el.TypeID]
	if !ok || !t.IsType {
		return nil
	}
	return t
}

// Elements returns all elements in insertion order.
func (d *Document) Elements() []*Element {
	out := make([]*Element, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.elements[id])
	}
	return out
}

// ByCategory returns the instances (not types) of a category in
// insertion order.
func (d *Document) ByCategory(c Category) []*Element {
	var out []*Element
	for _, id := range d.order {
		el := d.elements[id]
		if el.Category == c && !el.IsType {
			out = append(out, el)
		}
	}
	return out
}

// Equipment returns the mechanical equipment instances in model order.
func (d *Document) Equipment() []*Element { return d.ByCategory(CategoryMechanicalEquipment) }

// Walls returns the wall instances in model order.
func (d *Document) Walls() []*Element { return d.ByCategory(CategoryWalls) }

// Beams returns the structural framing instances in model order.
func (d *Document) Beams() []*Element { return d.ByCategory(CategoryStructuralFraming) }

// Levels returns the level elements in model order.
func (d *Document) Levels() []*Element { return d.ByCategory(CategoryLevels) }

// AddFamily registers a family and claims element IDs for its symbols.
// Symbols with zero IDs are assigned; explicit IDs must not collide with
// elements or other symbols.
func (d *Document) AddFamily(f *Family) error {
	for _, s := range f.Symbols {
		if s.ID == 0 {
			s.ID = d.nextID
		}
		if _, taken := d.elements[s.ID]; taken {
			return fmt.Errorf("%w: %s (symbol %q)", ErrElementExists, s.ID, s.Name)
		}
		if _, taken := d.symbols[s.ID]; taken {
			return fmt.Errorf("%w: %s (symbol %q)", ErrElementExists, s.ID, s.Name)
		}
		d.symbols[s.ID] = s
		if s.ID >= d.nextID {
			d.nextID = s.ID + 1
		}
	}
	d.families = append(d.families, f)
	return nil
}

// Families returns the registered families in registration order.
func (d *Document) Families() []*Family { return d.families }

// FamilyByName returns the family with the given exact name.
func (d *Document) FamilyByName(name string) (*Family, error) {
	for _, f := range d.families {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoSuchFamily, name)
}

// Symbol returns the family symbol with the given ID.
func (d *Document) Symbol(id ElementID) (*FamilySymbol, bool) {
	s, ok := d.symbols[id]
	return s, ok
}

// SymbolFamily returns the family owning the given symbol ID.
func (d *Document) SymbolFamily(id ElementID) *Family {
	for _, f := range d.families {
		for _, s := range f.Symbols {
			if s.ID == id {
				return f
			}
		}
	}
	return nil
}

// Len returns the number of elements (types included, symbols excluded).
func (d *Document) Len() int { return len(d.elements) }
