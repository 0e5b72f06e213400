package model

import "fmt"

// ValidationError describes one structural defect found in a document.
type ValidationError struct {
	Code      string
	Message   string
	ElementID ElementID
}

func (e ValidationError) Error() string {
	if e.ElementID != 0 {
		return fmt.Sprintf("%s: %s (element: %s)", e.Code, e.Message, e.ElementID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validate checks the document's structural invariants and returns every
// defect found. An empty result means the document is sound for the
// scan/place pipeline.
func (d *Document) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, d.validateElements()...)
	errs = append(errs, d.validateFamilies()...)
	return errs
}

func (d *Document) validateElements() []ValidationError {
	var errs []ValidationError

	for _, id := range d.order {
		el := d.elements[id]

		if !el.Category.Known() {
			errs = append(errs, ValidationError{
				Code:      "UNKNOWN_CATEGORY",
				Message:   fmt.Sprintf("element has unknown category %q", el.Category),
				ElementID: id,
			})
		}

		if el.BBox != nil && !el.BBox.Valid() {
			errs = append(errs, ValidationError{
				Code:      "INVERTED_BBOX",
				Message:   "bounding box min exceeds max",
				ElementID: id,
			})
		}

		if el.TypeID != 0 {
			t, ok := d.elements[el.TypeID]
			switch {
			case !ok:
				errs = append(errs, ValidationError{
					Code:      "MISSING_TYPE",
					Message:   fmt.Sprintf("type link %s resolves to nothing", el.TypeID),
					ElementID: id,
				})
			case !t.IsType:
				errs = append(errs, ValidationError{
					Code:      "NOT_A_TYPE",
					Message:   fmt.Sprintf("type link %s points at an instance", el.TypeID),
					ElementID: id,
				})
			}
		}

		if el.LevelID != 0 {
			lvl, ok := d.elements[el.LevelID]
			if !ok || lvl.Category != CategoryLevels {
				errs = append(errs, ValidationError{
					Code:      "MISSING_LEVEL",
					Message:   fmt.Sprintf("level link %s resolves to no level", el.LevelID),
					ElementID: id,
				})
			}
		}

		if el.HostID != 0 {
			if _, ok := d.elements[el.HostID]; !ok {
				errs = append(errs, ValidationError{
					Code:      "MISSING_HOST",
					Message:   fmt.Sprintf("host link %s resolves to nothing", el.HostID),
					ElementID: id,
				})
			}
		}

		if el.SymbolID != 0 {
			if _, ok := d.symbols[el.SymbolID]; !ok {
				errs = append(errs, ValidationError{
					Code:      "MISSING_SYMBOL",
					Message:   fmt.Sprintf("symbol link %s resolves to no family symbol", el.SymbolID),
					ElementID: id,
				})
			}
		}

		if el.Geometry != nil {
			for i, b := range el.Geometry.Boxes {
				size := b.Max.Sub(b.Min)
				if size.X() <= 0 || size.Y() <= 0 || size.Z() <= 0 {
					errs = append(errs, ValidationError{
						Code:      "DEGENERATE_GEOMETRY",
						Message:   fmt.Sprintf("geometry box %d has a non-positive extent", i),
						ElementID: id,
					})
				}
			}
		}
	}

	return errs
}

func (d *Document) validateFamilies() []ValidationError {
	var errs []ValidationError

	seen := make(map[string]bool)
	for _, f := range d.families {
		if seen[f.Name] {
			errs = append(errs, ValidationError{
				Code:    "DUPLICATE_FAMILY",
				Message: fmt.Sprintf("family %q registered more than once", f.Name),
			})
		}
		seen[f.Name] = true

		if len(f.Symbols) == 0 {
			errs = append(errs, ValidationError{
				Code:    "EMPTY_FAMILY",
				Message: fmt.Sprintf("family %q has no symbols", f.Name),
			})
		}
	}

	return errs
}
