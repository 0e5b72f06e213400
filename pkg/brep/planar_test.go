package brep

import (
	"math"
	"testing"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/geo"
)

func mustPlanar(t *testing.T, origin geo.Point, u, v geo.Vector, uLen, vLen float64) *PlanarFace {
	t.Helper()
	f, err := NewPlanarFace(origin, u, v, uLen, vLen)
	if err != nil {
		t.Fatalf("NewPlanarFace: %v", err)
	}
	return f
}

func TestPlanarProjectPerpendicularDistance(t *testing.T) {
	// Unit square in the XY plane, normal +Z.
	f := mustPlanar(t, geo.Point{0, 0, 0}, geo.BasisX, geo.BasisY, 1, 1)

	proj, ok := f.Project(geo.Point{0.5, 0.5, 2})
	if !ok {
		t.Fatal("projection over the face center should be defined")
	}
	if math.Abs(proj.Distance-2) > 1e-12 {
		t.Errorf("Distance = %v, want 2", proj.Distance)
	}
	want := geo.Point{0.5, 0.5, 0}
	if proj.Point.Sub(want).Len() > 1e-12 {
		t.Errorf("foot = %v, want %v", proj.Point, want)
	}
}

func TestPlanarProjectOutsideBounds(t *testing.T) {
	f := mustPlanar(t, geo.Point{0, 0, 0}, geo.BasisX, geo.BasisY, 1, 1)

	if _, ok := f.Project(geo.Point{3, 0.5, 1}); ok {
		t.Error("projection with foot outside the rectangle should be undefined")
	}
	// A point exactly on the edge still projects.
	if _, ok := f.Project(geo.Point{1, 1, 5}); !ok {
		t.Error("projection onto the corner should be defined")
	}
}

func TestPlanarEvaluateAndNormal(t *testing.T) {
	f := mustPlanar(t, geo.Point{1, 1, 0}, geo.BasisX, geo.BasisY, 2, 4)

	p, ok := f.Evaluate(geo.UV{U: 0.5, V: 0.25})
	if !ok {
		t.Fatal("in-range Evaluate should succeed")
	}
	want := geo.Point{2, 2, 0}
	if p.Sub(want).Len() > 1e-12 {
		t.Errorf("Evaluate = %v, want %v", p, want)
	}

	n, ok := f.NormalAt(geo.UV{U: 0.5, V: 0.5})
	if !ok {
		t.Fatal("in-range NormalAt should succeed")
	}
	if n.Sub(geo.BasisZ).Len() > 1e-12 {
		t.Errorf("normal = %v, want +Z", n)
	}

	if _, ok := f.Evaluate(geo.UV{U: 1.5, V: 0.5}); ok {
		t.Error("out-of-range Evaluate should report false")
	}
}

func TestPlanarDegenerateBasis(t *testing.T) {
	if _, err := NewPlanarFace(geo.Point{}, geo.Vector{}, geo.BasisY, 1, 1); err == nil {
		t.Error("zero u basis should be rejected")
	}
	if _, err := NewPlanarFace(geo.Point{}, geo.BasisX, geo.BasisX.Mul(3), 1, 1); err == nil {
		t.Error("parallel basis vectors should be rejected")
	}
	if _, err := NewPlanarFace(geo.Point{}, geo.BasisX, geo.BasisY, 0, 1); err == nil {
		t.Error("zero extent should be rejected")
	}
}

func TestCylinderProject(t *testing.T) {
	// Vertical cylinder, radius 1, height 2, based at the origin.
	f, err := NewCylindricalFace(geo.Point{0, 0, 0}, geo.BasisZ, 1, 2)
	if err != nil {
		t.Fatalf("NewCylindricalFace: %v", err)
	}

	proj, ok := f.Project(geo.Point{3, 0, 1})
	if !ok {
		t.Fatal("radial projection should be defined")
	}
	if math.Abs(proj.Distance-2) > 1e-12 {
		t.Errorf("Distance = %v, want 2", proj.Distance)
	}
	want := geo.Point{1, 0, 1}
	if proj.Point.Sub(want).Len() > 1e-12 {
		t.Errorf("foot = %v, want %v", proj.Point, want)
	}

	// On the axis there is no unique radial direction.
	if _, ok := f.Project(geo.Point{0, 0, 1}); ok {
		t.Error("projection from the axis should be undefined")
	}
	// Beyond the ends the lateral face does not own the projection.
	if _, ok := f.Project(geo.Point{3, 0, 9}); ok {
		t.Error("projection beyond the cylinder end should be undefined")
	}
}

func TestCylinderEvaluateOnSurface(t *testing.T) {
	f, err := NewCylindricalFace(geo.Point{0, 0, 0}, geo.BasisZ, 2, 4)
	if err != nil {
		t.Fatalf("NewCylindricalFace: %v", err)
	}

	for _, uv := range []geo.UV{{U: 0, V: 0}, {U: 0.25, V: 0.5}, {U: 0.8, V: 1}} {
		p, ok := f.Evaluate(uv)
		if !ok {
			t.Fatalf("Evaluate(%v) undefined", uv)
		}
		radial := math.Hypot(p.X(), p.Y())
		if math.Abs(radial-2) > 1e-9 {
			t.Errorf("Evaluate(%v) radius = %v, want 2", uv, radial)
		}
		n, ok := f.NormalAt(uv)
		if !ok {
			t.Fatalf("NormalAt(%v) undefined", uv)
		}
		if math.Abs(n.Len()-1) > 1e-9 || math.Abs(n.Z()) > 1e-9 {
			t.Errorf("NormalAt(%v) = %v, want horizontal unit vector", uv, n)
		}
	}

	if f.Planar() {
		t.Error("cylindrical face must not report planar")
	}
}
