package brep

import (
	"fmt"
	"math"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/geo"
)

// CylindricalFace is the lateral surface of a right circular cylinder:
// a base center, a unit axis direction, a radius and a height.
type CylindricalFace struct {
	base   geo.Point
	axis   geo.Vector // unit
	refU   geo.Vector // unit, perpendicular to axis (angle reference)
	refV   geo.Vector // unit, axis × refU
	radius float64
	height float64
}

// NewCylindricalFace builds the lateral face of a cylinder.
func NewCylindricalFace(base geo.Point, axis geo.Vector, radius, height float64) (*CylindricalFace, error) {
	if geo.IsZeroLength(axis) {
		return nil, fmt.Errorf("cylindrical face: degenerate axis")
	}
	if radius <= 0 || height <= 0 {
		return nil, fmt.Errorf("cylindrical face: radius and height must be positive, got r=%g h=%g", radius, height)
	}
	a := axis.Normalize()

	// Angle reference perpendicular to the axis. Prefer the X basis; when
	// the axis is parallel to X, fall back to Y.
	ref := a.Cross(geo.BasisX)
	if geo.IsZeroLength(ref) {
		ref = a.Cross(geo.BasisY)
	}
	ref = ref.Normalize()

	return &CylindricalFace{
		base:   base,
		axis:   a,
		refU:   ref,
		refV:   a.Cross(ref).Normalize(),
		radius: radius,
		height: height,
	}, nil
}

// Project maps p radially onto the lateral surface. The projection is
// undefined when p lies on the cylinder axis (no unique radial direction)
// or beyond the cylinder's ends.
func (f *CylindricalFace) Project(p geo.Point) (Projection, bool) {
	w := p.Sub(f.base)
	h := w.Dot(f.axis)
	if h < -boundsTol || h > f.height+boundsTol {
		return Projection{}, false
	}
	radial := w.Sub(f.axis.Mul(h))
	if geo.IsZeroLength(radial) {
		return Projection{}, false
	}
	foot := f.base.Add(f.axis.Mul(h)).Add(radial.Normalize().Mul(f.radius))
	return Projection{
		Point:    foot,
		Distance: math.Abs(radial.Len() - f.radius),
	}, true
}

// Evaluate wraps u around the circumference and maps v along the axis.
func (f *CylindricalFace) Evaluate(uv geo.UV) (geo.Point, bool) {
	if !uvInRange(uv) {
		return geo.Point{}, false
	}
	theta := uv.U * 2 * math.Pi
	radial := f.refU.Mul(math.Cos(theta)).Add(f.refV.Mul(math.Sin(theta)))
	return f.base.Add(f.axis.Mul(uv.V * f.height)).Add(radial.Mul(f.radius)), true
}

// NormalAt returns the outward radial direction at the sampled coordinate.
func (f *CylindricalFace) NormalAt(uv geo.UV) (geo.Vector, bool) {
	if !uvInRange(uv) {
		return geo.Vector{}, false
	}
	theta := uv.U * 2 * math.Pi
	return f.refU.Mul(math.Cos(theta)).Add(f.refV.Mul(math.Sin(theta))), true
}

// Planar reports false: curved faces are excluded from the sampled
// fallback pass because a tangent-plane distance is unreliable for them.
func (f *CylindricalFace) Planar() bool { return false }
