package model

import (
	"fmt"
	"math"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/brep"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/geo"
)

// BoxSpec describes one box solid of an element: an axis-aligned extent,
// optionally rotated about the vertical axis through its center.
type BoxSpec struct {
	Min         geo.Point `json:"min" yaml:"min"`
	Max         geo.Point `json:"max" yaml:"max"`
	RotationDeg float64   `json:"rotation_deg,omitempty" yaml:"rotation_deg,omitempty"`
}

// GeometrySpec is the declarative solid description attached to an
// element. It is resolved to boundary representation on demand so
// documents stay cheap to load.
type GeometrySpec struct {
	Boxes []BoxSpec `json:"boxes,omitempty" yaml:"boxes,omitempty"`
}

// Solids resolves the element's geometry into solids, in declaration
// order. Elements without geometry yield no solids and no error; a
// geometry that cannot be resolved (degenerate box) is an error, which
// callers treat as a failed geometry call on the element.
func (e *Element) Solids() ([]brep.Solid, error) {
	if e.Geometry == nil || len(e.Geometry.Boxes) == 0 {
		return nil, nil
	}
	solids := make([]brep.Solid, 0, len(e.Geometry.Boxes))
	for i, b := range e.Geometry.Boxes {
		s, err := b.solid()
		if err != nil {
			return nil, fmt.Errorf("element %s geometry box %d: %w", e.ID, i, err)
		}
		solids = append(solids, s)
	}
	return solids, nil
}

func (b BoxSpec) solid() (brep.Solid, error) {
	box := geo.BoundingBox{Min: b.Min, Max: b.Max}
	if b.RotationDeg == 0 {
		return brep.NewBox(box)
	}
	return brep.NewOrientedBox(box.Center(), box.Size(), b.RotationDeg*math.Pi/180)
}
