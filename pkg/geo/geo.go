// Package geo provides the value math for the building model: points,
// vectors, parametric surface coordinates and axis-aligned bounding boxes.
// All lengths are in the model's internal unit system, decimal feet, and
// conversions to millimeters happen only at formatting and configuration
// boundaries (see units.go).
package geo

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Point is a location in model space. Vector is a direction or displacement.
// Both are aliases of mgl64.Vec3 so the full mathgl method set (Add, Sub,
// Dot, Cross, Normalize, Len, ...) is available directly.
type Point = mgl64.Vec3

// Vector is a direction or displacement in model space.
type Vector = mgl64.Vec3

// Canonical basis vectors.
var (
	BasisX = Vector{1, 0, 0}
	BasisY = Vector{0, 1, 0}
	BasisZ = Vector{0, 0, 1}
)

// zeroTol is the length below which a vector is considered degenerate.
const zeroTol = 1e-9

// IsZeroLength reports whether v is too short to define a direction.
func IsZeroLength(v Vector) bool {
	return v.Len() < zeroTol
}

// UV is a normalized parametric coordinate on a surface.
// Both components are expected to lie in [0, 1].
type UV struct {
	U, V float64
}
