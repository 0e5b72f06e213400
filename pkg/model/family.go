package model

import "github.com/VenkyGandrothu/Circular-Sleeves/pkg/geo"

// FamilySymbol is one loadable type of a family. Symbols share the
// document's element ID space. An inactive symbol must be activated
// (inside a transaction) before instances of it can be placed.
type FamilySymbol struct {
	ID     ElementID `json:"id" yaml:"id"`
	Name   string    `json:"name" yaml:"name"`
	Active bool      `json:"active" yaml:"active"`
	// Parameters are type-level values, such as sleeve sizing.
	Parameters []*Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	// InstanceDefaults are cloned onto every instance placed from this
	// symbol.
	InstanceDefaults []*Parameter `json:"instance_defaults,omitempty" yaml:"instance_defaults,omitempty"`
}

// LookupParameter returns the symbol's type-level parameter by exact name.
func (s *FamilySymbol) LookupParameter(name string) (*Parameter, bool) {
	for _, p := range s.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Family groups the symbols of one loadable component family.
type Family struct {
	Name string `json:"name" yaml:"name"`
	// WorkPlaneBased marks families whose instances attach to a host
	// face. It gates face-hosted placement.
	WorkPlaneBased bool            `json:"work_plane_based" yaml:"work_plane_based"`
	Symbols        []*FamilySymbol `json:"symbols" yaml:"symbols"`
}

// FirstSymbol returns the family's first symbol, or nil when the family
// is empty.
func (f *Family) FirstSymbol() *FamilySymbol {
	if len(f.Symbols) == 0 {
		return nil
	}
	return f.Symbols[0]
}

// NewInstance builds an unplaced instance element of the given symbol at
// the given location. Instance parameters are deep copies of the
// symbol's defaults. The element has no ID until added to a document.
func (f *Family) NewInstance(sym *FamilySymbol, at geo.Point) *Element {
	params := make([]*Parameter, 0, len(sym.InstanceDefaults))
	for _, p := range sym.InstanceDefaults {
		params = append(params, p.clone())
	}
	loc := at
	return &Element{
		Name:       f.Name + " : " + sym.Name,
		Category:   CategoryGenericModel,
		Location:   &loc,
		Parameters: params,
		SymbolID:   sym.ID,
	}
}
