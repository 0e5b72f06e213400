package match

import (
	"errors"
	"math"
	"testing"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/brep"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/geo"
)

// probeFace wraps a real face, optionally suppressing projection, and
// records how often the fallback surface is consulted.
type probeFace struct {
	inner         brep.Face
	projectOK     bool
	evaluateCalls int
	normalCalls   int
}

func (p *probeFace) Project(pt geo.Point) (brep.Projection, bool) {
	if !p.projectOK {
		return brep.Projection{}, false
	}
	return p.inner.Project(pt)
}

func (p *probeFace) Evaluate(uv geo.UV) (geo.Point, bool) {
	p.evaluateCalls++
	return p.inner.Evaluate(uv)
}

func (p *probeFace) NormalAt(uv geo.UV) (geo.Vector, bool) {
	p.normalCalls++
	return p.inner.NormalAt(uv)
}

func (p *probeFace) Planar() bool { return p.inner.Planar() }

// horizontalFace returns a unit square in the plane z = elevation with
// normal +Z.
func horizontalFace(t *testing.T, elevation float64) *brep.PlanarFace {
	t.Helper()
	f, err := brep.NewPlanarFace(geo.Point{0, 0, elevation}, geo.BasisX, geo.BasisY, 1, 1)
	if err != nil {
		t.Fatalf("NewPlanarFace: %v", err)
	}
	return f
}

// smallBBox is below the diameter threshold, so tolerance stays unscaled.
func smallBBox() geo.BoundingBox {
	return geo.BoundingBox{Min: geo.Point{0, 0, 0}, Max: geo.Point{0.1, 0.1, 1}}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-12 }

func TestFindBestFaceSingleFace(t *testing.T) {
	solid := brep.NewSolid(horizontalFace(t, 0))
	target := geo.Point{0.5, 0.5, 0.15}

	res, err := FindBestFace([]brep.Solid{solid}, target, Tolerances{}, smallBBox())
	if err != nil {
		t.Fatalf("FindBestFace: %v", err)
	}
	if res.Pass != PassProjection {
		t.Errorf("pass = %v, want projection", res.Pass)
	}
	if !approx(res.Distance, 0.15) {
		t.Errorf("distance = %v, want 0.15", res.Distance)
	}
	if res.SolidIndex != 0 || res.FaceIndex != 0 {
		t.Errorf("indices = (%d, %d), want (0, 0)", res.SolidIndex, res.FaceIndex)
	}
	if res.Skipped != 0 {
		t.Errorf("skipped = %d, want 0", res.Skipped)
	}
}

func TestFindBestFaceNoGeometry(t *testing.T) {
	if _, err := FindBestFace(nil, geo.Point{}, Tolerances{}, smallBBox()); !errors.Is(err, ErrNoGeometry) {
		t.Errorf("nil solids: err = %v, want ErrNoGeometry", err)
	}
	empty := brep.NewSolid()
	if _, err := FindBestFace([]brep.Solid{empty}, geo.Point{}, Tolerances{}, smallBBox()); !errors.Is(err, ErrNoGeometry) {
		t.Errorf("faceless solid: err = %v, want ErrNoGeometry", err)
	}
}

func TestFindBestFaceNoMatch(t *testing.T) {
	solid := brep.NewSolid(horizontalFace(t, 0))
	target := geo.Point{0.5, 0.5, 5}

	_, err := FindBestFace([]brep.Solid{solid}, target, Tolerances{}, smallBBox())
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
}

func TestFindBestFaceNearestWins(t *testing.T) {
	// Two parallel faces below the target; the nearer one must win
	// regardless of enumeration order or owning solid.
	lower := brep.NewSolid(horizontalFace(t, 0))
	upper := brep.NewSolid(horizontalFace(t, 0.1))
	target := geo.Point{0.5, 0.5, 0.15}

	res, err := FindBestFace([]brep.Solid{lower, upper}, target, Tolerances{}, smallBBox())
	if err != nil {
		t.Fatalf("FindBestFace: %v", err)
	}
	if res.SolidIndex != 1 {
		t.Errorf("solid index = %d, want 1", res.SolidIndex)
	}
	if !approx(res.Distance, 0.05) {
		t.Errorf("distance = %v, want 0.05", res.Distance)
	}

	res, err = FindBestFace([]brep.Solid{upper, lower}, target, Tolerances{}, smallBBox())
	if err != nil {
		t.Fatalf("FindBestFace reversed: %v", err)
	}
	if res.SolidIndex != 0 {
		t.Errorf("reversed solid index = %d, want 0", res.SolidIndex)
	}
}

func TestFindBestFaceTieKeepsFirst(t *testing.T) {
	// Target equidistant from both faces: the first in input order wins.
	a := brep.NewSolid(horizontalFace(t, 0))
	b := brep.NewSolid(horizontalFace(t, 0.2))
	target := geo.Point{0.5, 0.5, 0.1}

	res, err := FindBestFace([]brep.Solid{a, b}, target, Tolerances{}, smallBBox())
	if err != nil {
		t.Fatalf("FindBestFace: %v", err)
	}
	if res.SolidIndex != 0 {
		t.Errorf("solid index = %d, want 0 (first encountered)", res.SolidIndex)
	}
}

func TestFindBestFaceExactToleranceAccepted(t *testing.T) {
	// The primary pass admits distances equal to the tolerance.
	solid := brep.NewSolid(horizontalFace(t, 0))
	target := geo.Point{0.5, 0.5, DefaultBaseTolerance}

	res, err := FindBestFace([]brep.Solid{solid}, target, Tolerances{}, smallBBox())
	if err != nil {
		t.Fatalf("FindBestFace: %v", err)
	}
	if res.Pass != PassProjection {
		t.Errorf("pass = %v, want projection", res.Pass)
	}
}

func TestFindBestFaceSkipsUndefinedProjection(t *testing.T) {
	blind := &probeFace{inner: horizontalFace(t, 0), projectOK: false}
	seeing := horizontalFace(t, 0.1)
	solid := brep.NewSolid(blind, seeing)
	target := geo.Point{0.5, 0.5, 0.15}

	res, err := FindBestFace([]brep.Solid{solid}, target, Tolerances{}, smallBBox())
	if err != nil {
		t.Fatalf("FindBestFace: %v", err)
	}
	if res.FaceIndex != 1 {
		t.Errorf("face index = %d, want 1", res.FaceIndex)
	}
	if res.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", res.Skipped)
	}
	if blind.evaluateCalls != 0 {
		t.Errorf("fallback consulted the skipped face %d times; a primary match must suppress the fallback", blind.evaluateCalls)
	}
}

func TestFindBestFacePrimarySuppressesFallback(t *testing.T) {
	first := &probeFace{inner: horizontalFace(t, 0), projectOK: true}
	second := &probeFace{inner: horizontalFace(t, 0.1), projectOK: true}
	solid := brep.NewSolid(first, second)
	target := geo.Point{0.5, 0.5, 0.15}

	res, err := FindBestFace([]brep.Solid{solid}, target, Tolerances{}, smallBBox())
	if err != nil {
		t.Fatalf("FindBestFace: %v", err)
	}
	if res.Pass != PassProjection {
		t.Fatalf("pass = %v, want projection", res.Pass)
	}
	if n := first.evaluateCalls + second.evaluateCalls; n != 0 {
		t.Errorf("fallback sampled %d times despite a primary match", n)
	}
}

func TestFindBestFaceFallback(t *testing.T) {
	blind := &probeFace{inner: horizontalFace(t, 0), projectOK: false}
	solid := brep.NewSolid(blind)
	target := geo.Point{0.5, 0.5, 0.15}

	res, err := FindBestFace([]brep.Solid{solid}, target, Tolerances{}, smallBBox())
	if err != nil {
		t.Fatalf("FindBestFace: %v", err)
	}
	if res.Pass != PassSampled {
		t.Errorf("pass = %v, want sampled", res.Pass)
	}
	if !approx(res.Distance, 0.15) {
		t.Errorf("distance = %v, want 0.15", res.Distance)
	}
	if blind.evaluateCalls != 16 {
		t.Errorf("evaluate calls = %d, want 16 (full 4x4 grid)", blind.evaluateCalls)
	}
	if blind.normalCalls != 16 {
		t.Errorf("normal calls = %d, want 16", blind.normalCalls)
	}
}

func TestFindBestFaceFallbackExactToleranceRejected(t *testing.T) {
	// Unlike the primary pass, the fallback requires strictly less than
	// the tolerance.
	blind := &probeFace{inner: horizontalFace(t, 0), projectOK: false}
	solid := brep.NewSolid(blind)
	target := geo.Point{0.5, 0.5, DefaultBaseTolerance}

	_, err := FindBestFace([]brep.Solid{solid}, target, Tolerances{}, smallBBox())
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
}

func TestFindBestFaceFallbackSkipsNonPlanar(t *testing.T) {
	cyl, err := brep.NewCylindricalFace(geo.Point{0, 0, 0}, geo.BasisZ, 1, 2)
	if err != nil {
		t.Fatalf("NewCylindricalFace: %v", err)
	}
	blind := &probeFace{inner: cyl, projectOK: false}
	solid := brep.NewSolid(blind)
	target := geo.Point{1.05, 0, 1}

	_, err = FindBestFace([]brep.Solid{solid}, target, Tolerances{}, smallBBox())
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
	if blind.evaluateCalls != 0 {
		t.Errorf("fallback sampled a non-planar face %d times", blind.evaluateCalls)
	}
}

func TestTolerancesScaled(t *testing.T) {
	small := smallBBox()
	if got := (Tolerances{Base: 0.2}).Scaled(small); got != 0.2 {
		t.Errorf("small equipment tolerance = %v, want 0.2 unchanged", got)
	}

	// The zero value selects the stock base tolerance.
	if got := (Tolerances{}).Scaled(small); got != DefaultBaseTolerance {
		t.Errorf("zero-value tolerance = %v, want %v", got, DefaultBaseTolerance)
	}

	// Diameter exactly at the threshold does not scale.
	at := geo.BoundingBox{Min: geo.Point{0, 0, 0}, Max: geo.Point{DiameterThreshold, 0.1, 1}}
	if got := (Tolerances{Base: 0.2}).Scaled(at); got != 0.2 {
		t.Errorf("threshold equipment tolerance = %v, want 0.2 unchanged", got)
	}

	// Twice the threshold doubles the tolerance.
	wide := geo.BoundingBox{Min: geo.Point{0, 0, 0}, Max: geo.Point{2 * DiameterThreshold, 0.1, 1}}
	if got := (Tolerances{Base: 0.2}).Scaled(wide); !approx(got, 0.4) {
		t.Errorf("wide equipment tolerance = %v, want 0.4", got)
	}

	// The Y extent participates in the nominal diameter as well.
	deep := geo.BoundingBox{Min: geo.Point{0, 0, 0}, Max: geo.Point{0.1, 2 * DiameterThreshold, 1}}
	if got := (Tolerances{Base: 0.2}).Scaled(deep); !approx(got, 0.4) {
		t.Errorf("deep equipment tolerance = %v, want 0.4", got)
	}

	// Raising the threshold keeps the same equipment unscaled.
	if got := (Tolerances{Base: 0.2, DiameterThreshold: 2 * DiameterThreshold}).Scaled(wide); got != 0.2 {
		t.Errorf("raised threshold tolerance = %v, want 0.2 unchanged", got)
	}
}

func TestFindBestFaceToleranceScaling(t *testing.T) {
	// A face 0.3 ft away is out of reach for small equipment but within
	// the scaled tolerance of equipment twice the diameter threshold.
	solid := brep.NewSolid(horizontalFace(t, 0))
	target := geo.Point{0.5, 0.5, 0.3}

	if _, err := FindBestFace([]brep.Solid{solid}, target, Tolerances{}, smallBBox()); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("small equipment: err = %v, want ErrNoMatch", err)
	}

	wide := geo.BoundingBox{Min: geo.Point{0, 0, 0}, Max: geo.Point{2 * DiameterThreshold, 0.1, 1}}
	res, err := FindBestFace([]brep.Solid{solid}, target, Tolerances{}, wide)
	if err != nil {
		t.Fatalf("wide equipment: %v", err)
	}
	if !approx(res.Tolerance, 0.4) {
		t.Errorf("effective tolerance = %v, want 0.4", res.Tolerance)
	}
	if !approx(res.Distance, 0.3) {
		t.Errorf("distance = %v, want 0.3", res.Distance)
	}
}

func TestPassString(t *testing.T) {
	cases := []struct {
		pass Pass
		want string
	}{
		{PassNone, "none"},
		{PassProjection, "projection"},
		{PassSampled, "sampled"},
	}
	for _, c := range cases {
		if got := c.pass.String(); got != c.want {
			t.Errorf("Pass(%d).String() = %q, want %q", c.pass, got, c.want)
		}
	}
}
