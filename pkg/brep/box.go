package brep

import (
	"fmt"
	"math"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/geo"
)

// Box face enumeration order. Matching and tie-breaking depend on this
// order being stable, so it is part of the package contract:
// -X, +X, -Y, +Y, -Z, +Z, each with an outward normal.

// NewBox builds an axis-aligned box solid from a bounding box.
func NewBox(b geo.BoundingBox) (Solid, error) {
	size := b.Size()
	if size.X() <= 0 || size.Y() <= 0 || size.Z() <= 0 {
		return nil, fmt.Errorf("box solid: degenerate extents %v", size)
	}
	return NewOrientedBox(b.Center(), size, 0)
}

// NewOrientedBox builds a box solid centered at center with the given
// size, rotated about the vertical axis by rotZ radians. A zero rotation
// yields an axis-aligned box.
func NewOrientedBox(center geo.Point, size geo.Vector, rotZ float64) (Solid, error) {
	if size.X() <= 0 || size.Y() <= 0 || size.Z() <= 0 {
		return nil, fmt.Errorf("box solid: degenerate extents %v", size)
	}

	cos, sin := math.Cos(rotZ), math.Sin(rotZ)
	ax := geo.Vector{cos, sin, 0}
	ay := geo.Vector{-sin, cos, 0}
	az := geo.BasisZ
	lx, ly, lz := size.X(), size.Y(), size.Z()

	// Corner at the local (-,-,-) extreme.
	min := center.
		Sub(ax.Mul(lx / 2)).
		Sub(ay.Mul(ly / 2)).
		Sub(az.Mul(lz / 2))

	type faceSpec struct {
		origin     geo.Point
		uDir, vDir geo.Vector
		uLen, vLen float64
	}
	specs := []faceSpec{
		{min, az, ay, lz, ly},                 // -X
		{min.Add(ax.Mul(lx)), ay, az, ly, lz}, // +X
		{min, ax, az, lx, lz},                 // -Y
		{min.Add(ay.Mul(ly)), az, ax, lz, lx}, // +Y
		{min, ay, ax, ly, lx},                 // -Z
		{min.Add(az.Mul(lz)), ax, ay, lx, ly}, // +Z
	}

	faces := make([]Face, 0, len(specs))
	for i, s := range specs {
		f, err := NewPlanarFace(s.origin, s.uDir, s.vDir, s.uLen, s.vLen)
		if err != nil {
			return nil, fmt.Errorf("box solid: face %d: %w", i, err)
		}
		faces = append(faces, f)
	}
	return NewSolid(faces...), nil
}
