// Package brep provides the boundary-representation geometry consumed by
// the face matcher: solids exposing collections of faces, and faces that
// support point projection and parametric sampling. Implementations are
// read-only views; nothing in this package mutates geometry after
// construction, and face enumeration order is fixed at construction time
// so that distance ties resolve deterministically.
package brep

import (
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/geo"
)

// Projection is the result of projecting an arbitrary point onto a face:
// the nearest point on the face and the unsigned distance to it.
type Projection struct {
	Point    geo.Point
	Distance float64
}

// Face is a single surface belonging to a solid.
//
// Project maps an arbitrary point to its nearest point on the face. The
// second return value is false when the projection is undefined for that
// point (the perpendicular foot falls outside the face bounds, or the
// surface has no unique nearest point); callers skip such faces rather
// than treating them as errors.
//
// Evaluate and NormalAt sample the surface at a normalized parametric
// coordinate with both components in [0, 1]; they report false for
// coordinates outside that range.
type Face interface {
	Project(p geo.Point) (Projection, bool)
	Evaluate(uv geo.UV) (geo.Point, bool)
	NormalAt(uv geo.UV) (geo.Vector, bool)
	Planar() bool
}

// Solid is an opaque geometric body exposing its faces in a deterministic
// construction order.
type Solid interface {
	Faces() []Face
	BoundingBox() geo.BoundingBox
}

// solid is the generic Solid implementation used by all constructors in
// this package.
type solid struct {
	faces []Face
	bbox  geo.BoundingBox
}

func (s *solid) Faces() []Face                { return s.faces }
func (s *solid) BoundingBox() geo.BoundingBox { return s.bbox }

// NewSolid assembles a solid from an explicit face list. The face order is
// preserved verbatim. The bounding box is the union of the corner points
// each face reports through Evaluate at its parameter extremes.
func NewSolid(faces ...Face) Solid {
	bbox := geo.NewBoundingBox()
	corners := []geo.UV{{U: 0, V: 0}, {U: 1, V: 0}, {U: 0, V: 1}, {U: 1, V: 1}, {U: 0.5, V: 0.5}}
	for _, f := range faces {
		for _, uv := range corners {
			if p, ok := f.Evaluate(uv); ok {
				bbox.Extend(p)
			}
		}
	}
	return &solid{faces: faces, bbox: bbox}
}
