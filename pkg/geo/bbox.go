package geo

import "math"

// BoundingBox is an axis-aligned box representing the extent of an element.
type BoundingBox struct {
	Min Point `json:"min" yaml:"min"`
	Max Point `json:"max" yaml:"max"`
}

// NewBoundingBox returns an inverted (empty) box ready to be extended.
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Point{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64},
		Max: Point{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64},
	}
}

// Extend grows the box to include p.
func (b *BoundingBox) Extend(p Point) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Size returns the extents of the box along each axis.
func (b BoundingBox) Size() Vector {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Point {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Valid reports whether Min does not exceed Max on any axis.
func (b BoundingBox) Valid() bool {
	return b.Min.X() <= b.Max.X() && b.Min.Y() <= b.Max.Y() && b.Min.Z() <= b.Max.Z()
}

// Overlaps reports whether two boxes share any volume. The comparison is
// inclusive on all axes, so boxes that merely touch count as overlapping.
func (b BoundingBox) Overlaps(o BoundingBox) bool {
	return b.Min.X() <= o.Max.X() && b.Max.X() >= o.Min.X() &&
		b.Min.Y() <= o.Max.Y() && b.Max.Y() >= o.Min.Y() &&
		b.Min.Z() <= o.Max.Z() && b.Max.Z() >= o.Min.Z()
}

// Contains reports whether p lies inside or on the boundary of the box.
func (b BoundingBox) Contains(p Point) bool {
	return b.Min.X() <= p.X() && p.X() <= b.Max.X() &&
		b.Min.Y() <= p.Y() && p.Y() <= b.Max.Y() &&
		b.Min.Z() <= p.Z() && p.Z() <= b.Max.Z()
}

// FarEnd returns the corner of the box farthest along the vertical axis,
// used as the probe point when matching an element against host faces.
// When the box is degenerate in Z the Min corner is returned.
func (b BoundingBox) FarEnd() Point {
	if b.Max.Z() > b.Min.Z() {
		return b.Max
	}
	return b.Min
}

// NominalDiameter is the larger of the box's X and Y extents. For round
// equipment the plan-view extent approximates the component diameter.
func (b BoundingBox) NominalDiameter() float64 {
	dx := b.Max.X() - b.Min.X()
	dy := b.Max.Y() - b.Min.Y()
	if dx > dy {
		return dx
	}
	return dy
}
