package model

import (
	"fmt"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/geo"
)

// Parameter is a named, typed value attached to an element or symbol.
// Double parameters that represent lengths are stored in decimal feet,
// the document's internal unit.
type Parameter struct {
	Name    string      `json:"name" yaml:"name"`
	Storage StorageType `json:"storage" yaml:"storage"`
	Double  float64     `json:"double,omitempty" yaml:"double,omitempty"`
	Integer int64       `json:"integer,omitempty" yaml:"integer,omitempty"`
	Text    string      `json:"text,omitempty" yaml:"text,omitempty"`
	Ref     ElementID   `json:"ref,omitempty" yaml:"ref,omitempty"`
}

// AsDouble returns the stored double value; ok is false when the
// parameter stores a different kind.
func (p *Parameter) AsDouble() (float64, bool) {
	if p.Storage != StorageDouble {
		return 0, false
	}
	return p.Double, true
}

// AsString returns the stored string value; ok is false when the
// parameter stores a different kind.
func (p *Parameter) AsString() (string, bool) {
	if p.Storage != StorageString {
		return "", false
	}
	return p.Text, true
}

// ValueString renders the parameter for display. Doubles are shown in
// millimeters, the project display unit for lengths.
func (p *Parameter) ValueString() string {
	switch p.Storage {
	case StorageDouble:
		return geo.FormatMM(p.Double)
	case StorageInteger:
		return fmt.Sprintf("%d", p.Integer)
	case StorageString:
		return p.Text
	case StorageElementID:
		return p.Ref.String()
	default:
		return ""
	}
}

// clone returns an independent copy of the parameter.
func (p *Parameter) clone() *Parameter {
	c := *p
	return &c
}

// Element is a single entry in the document: an instance, a type, or a
// level. Type elements (IsType) carry type-level parameters and are
// linked from instances through TypeID.
type Element struct {
	ID       ElementID `json:"id" yaml:"id"`
	UID      string    `json:"uid,omitempty" yaml:"uid,omitempty"`
	Name     string    `json:"name" yaml:"name"`
	Category Category  `json:"category" yaml:"category"`
	IsType   bool      `json:"is_type,omitempty" yaml:"is_type,omitempty"`
	TypeID   ElementID `json:"type_id,omitempty" yaml:"type_id,omitempty"`
	LevelID  ElementID `json:"level_id,omitempty" yaml:"level_id,omitempty"`

	Location *geo.Point       `json:"location,omitempty" yaml:"location,omitempty"`
	BBox     *geo.BoundingBox `json:"bbox,omitempty" yaml:"bbox,omitempty"`
	Geometry *GeometrySpec    `json:"geometry,omitempty" yaml:"geometry,omitempty"`

	Parameters []*Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// Placement provenance, set on sleeve instances created by this tool.
	SymbolID     ElementID   `json:"symbol_id,omitempty" yaml:"symbol_id,omitempty"`
	HostID       ElementID   `json:"host_id,omitempty" yaml:"host_id,omitempty"`
	FaceHosted   bool        `json:"face_hosted,omitempty" yaml:"face_hosted,omitempty"`
	ReferenceDir *geo.Vector `json:"reference_dir,omitempty" yaml:"reference_dir,omitempty"`
}

// LookupParameter returns the element's parameter with the given name.
// The search is by exact name, in declaration order.
func (e *Element) LookupParameter(name string) (*Parameter, bool) {
	for _, p := range e.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// HasBounds reports whether the element carries a valid bounding box.
func (e *Element) HasBounds() bool {
	return e.BBox != nil && e.BBox.Valid()
}
