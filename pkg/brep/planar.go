package brep

import (
	"fmt"
	"math"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/geo"
)

// boundsTol absorbs floating-point noise when deciding whether a projected
// foot or a parametric coordinate lies on the face.
const boundsTol = 1e-9

// PlanarFace is a bounded rectangular planar surface: an origin corner,
// two orthonormal in-plane directions and their extents.
type PlanarFace struct {
	origin geo.Point
	u, v   geo.Vector // unit in-plane basis
	uLen   float64
	vLen   float64
	normal geo.Vector // unit u × v
}

// NewPlanarFace builds a bounded planar face. uDir and vDir need not be
// unit length but must be non-degenerate and not parallel; the face normal
// is their normalized cross product.
func NewPlanarFace(origin geo.Point, uDir, vDir geo.Vector, uLen, vLen float64) (*PlanarFace, error) {
	if geo.IsZeroLength(uDir) || geo.IsZeroLength(vDir) {
		return nil, fmt.Errorf("planar face: degenerate basis vector")
	}
	if uLen <= 0 || vLen <= 0 {
		return nil, fmt.Errorf("planar face: extents must be positive, got %g x %g", uLen, vLen)
	}
	n := uDir.Cross(vDir)
	if geo.IsZeroLength(n) {
		return nil, fmt.Errorf("planar face: basis vectors are parallel")
	}
	return &PlanarFace{
		origin: origin,
		u:      uDir.Normalize(),
		v:      vDir.Normalize(),
		uLen:   uLen,
		vLen:   vLen,
		normal: n.Normalize(),
	}, nil
}

// Project maps p onto the plane. The projection is defined only when the
// perpendicular foot lies within the face rectangle; otherwise ok is false
// and the face is skipped by the matcher's primary pass.
func (f *PlanarFace) Project(p geo.Point) (Projection, bool) {
	d := p.Sub(f.origin)
	du := d.Dot(f.u)
	dv := d.Dot(f.v)
	if du < -boundsTol || du > f.uLen+boundsTol || dv < -boundsTol || dv > f.vLen+boundsTol {
		return Projection{}, false
	}
	foot := f.origin.Add(f.u.Mul(du)).Add(f.v.Mul(dv))
	return Projection{
		Point:    foot,
		Distance: math.Abs(d.Dot(f.normal)),
	}, true
}

// Evaluate maps a normalized (u, v) coordinate onto the rectangle.
func (f *PlanarFace) Evaluate(uv geo.UV) (geo.Point, bool) {
	if !uvInRange(uv) {
		return geo.Point{}, false
	}
	return f.origin.Add(f.u.Mul(uv.U * f.uLen)).Add(f.v.Mul(uv.V * f.vLen)), true
}

// NormalAt returns the constant plane normal for any in-range coordinate.
func (f *PlanarFace) NormalAt(uv geo.UV) (geo.Vector, bool) {
	if !uvInRange(uv) {
		return geo.Vector{}, false
	}
	return f.normal, true
}

// Planar reports true: planar faces participate in the sampled fallback pass.
func (f *PlanarFace) Planar() bool { return true }

// Normal returns the unit plane normal.
func (f *PlanarFace) Normal() geo.Vector { return f.normal }

// Origin returns the face's origin corner.
func (f *PlanarFace) Origin() geo.Point { return f.origin }

func uvInRange(uv geo.UV) bool {
	return uv.U >= -boundsTol && uv.U <= 1+boundsTol && uv.V >= -boundsTol && uv.V <= 1+boundsTol
}
