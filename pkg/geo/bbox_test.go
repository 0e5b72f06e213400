package geo

import (
	"math"
	"testing"
)

func TestOverlapsSeparatedBoxes(t *testing.T) {
	a := BoundingBox{Min: Point{0, 0, 0}, Max: Point{1, 1, 1}}
	b := BoundingBox{Min: Point{2, 2, 2}, Max: Point{3, 3, 3}}

	if a.Overlaps(b) {
		t.Error("separated boxes should not overlap")
	}
	if b.Overlaps(a) {
		t.Error("overlap test should be symmetric")
	}
}

func TestOverlapsTouchingBoxes(t *testing.T) {
	// Boxes sharing a single face count as overlapping: the comparison
	// is inclusive.
	a := BoundingBox{Min: Point{0, 0, 0}, Max: Point{1, 1, 1}}
	b := BoundingBox{Min: Point{1, 0, 0}, Max: Point{2, 1, 1}}

	if !a.Overlaps(b) {
		t.Error("touching boxes should overlap")
	}
}

func TestOverlapsSingleAxisSeparation(t *testing.T) {
	// Boxes that overlap in X and Y but not Z must not count.
	a := BoundingBox{Min: Point{0, 0, 0}, Max: Point{2, 2, 1}}
	b := BoundingBox{Min: Point{1, 1, 5}, Max: Point{3, 3, 6}}

	if a.Overlaps(b) {
		t.Error("boxes separated along Z should not overlap")
	}
}

func TestFarEnd(t *testing.T) {
	b := BoundingBox{Min: Point{0, 0, 0}, Max: Point{1, 2, 3}}
	got := b.FarEnd()
	if got != (Point{1, 2, 3}) {
		t.Errorf("FarEnd = %v, want top corner", got)
	}

	// Degenerate in Z: Min is returned.
	flat := BoundingBox{Min: Point{0, 0, 5}, Max: Point{1, 1, 5}}
	if flat.FarEnd() != (Point{0, 0, 5}) {
		t.Errorf("FarEnd of Z-degenerate box = %v, want Min corner", flat.FarEnd())
	}
}

func TestNominalDiameter(t *testing.T) {
	b := BoundingBox{Min: Point{0, 0, 0}, Max: Point{0.5, 1.5, 9}}
	if d := b.NominalDiameter(); d != 1.5 {
		t.Errorf("NominalDiameter = %v, want 1.5 (Y extent dominates)", d)
	}
	// Z extent never participates.
	tall := BoundingBox{Min: Point{0, 0, 0}, Max: Point{0.2, 0.1, 50}}
	if d := tall.NominalDiameter(); d != 0.2 {
		t.Errorf("NominalDiameter = %v, want 0.2", d)
	}
}

func TestExtendAndCenter(t *testing.T) {
	b := NewBoundingBox()
	b.Extend(Point{1, 2, 3})
	b.Extend(Point{-1, 0, 5})

	if b.Min != (Point{-1, 0, 3}) || b.Max != (Point{1, 2, 5}) {
		t.Fatalf("Extend produced %v / %v", b.Min, b.Max)
	}
	c := b.Center()
	if c != (Point{0, 1, 4}) {
		t.Errorf("Center = %v, want {0 1 4}", c)
	}
	if !b.Valid() {
		t.Error("extended box should be valid")
	}
}

func TestUnitConversions(t *testing.T) {
	if mm := FeetToMM(1); math.Abs(mm-304.8) > 1e-12 {
		t.Errorf("FeetToMM(1) = %v, want 304.8", mm)
	}
	if ft := MMToFeet(120); math.Abs(ft-0.39370078740157477) > 1e-12 {
		t.Errorf("MMToFeet(120) = %v", ft)
	}
	if s := FormatMM(MMToFeet(114.3)); s != "114.30 mm" {
		t.Errorf("FormatMM = %q, want \"114.30 mm\"", s)
	}
}

func TestIsZeroLength(t *testing.T) {
	if !IsZeroLength(Vector{0, 0, 0}) {
		t.Error("zero vector should be zero-length")
	}
	if IsZeroLength(Vector{0, 0, 1e-3}) {
		t.Error("short but real vector should not be zero-length")
	}
	// Cross product of parallel vectors is the degenerate case the
	// placement orientation guards against.
	parallel := BasisX.Cross(Vector{2, 0, 0})
	if !IsZeroLength(parallel) {
		t.Error("cross of parallel vectors should be zero-length")
	}
}
