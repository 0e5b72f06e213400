// Package match selects the structural face a piece of equipment most
// likely penetrates. Given the equipment's far-end probe point and the
// candidate solids of a host element, it ranks faces by point-to-face
// projection distance, with a diameter-scaled tolerance and a sampled
// tangent-plane fallback for faces whose direct projection is undefined.
package match

import (
	"errors"
	"math"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/brep"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/geo"
)

// DefaultBaseTolerance is the unscaled search tolerance in feet.
const DefaultBaseTolerance = 0.2

// DiameterThreshold is the reference nominal diameter (0.3937 ft, 120 mm)
// above which the search tolerance scales linearly with equipment size.
// Larger components carry proportionally larger installation tolerances.
const DiameterThreshold = 0.3937

// Sentinel results. Both are expected conditions, not faults: callers move
// on to the next candidate host when either is returned.
var (
	// ErrNoGeometry reports that the candidate set contained no faces at all.
	ErrNoGeometry = errors.New("match: candidate solids expose no faces")
	// ErrNoMatch reports that no face qualified within tolerance in either pass.
	ErrNoMatch = errors.New("match: no face within tolerance")
)

// Pass identifies which pass produced a match.
type Pass int

const (
	// PassNone means no pass qualified a face.
	PassNone Pass = iota
	// PassProjection is the primary direct-projection pass.
	PassProjection
	// PassSampled is the fallback pass using parametric surface samples.
	PassSampled
)

func (p Pass) String() string {
	switch p {
	case PassProjection:
		return "projection"
	case PassSampled:
		return "sampled"
	default:
		return "none"
	}
}

// Result describes the single best-matching face.
type Result struct {
	Face       brep.Face
	SolidIndex int     // position of the owning solid in the input slice
	FaceIndex  int     // position of the face within its solid
	Distance   float64 // winning projection (or tangent-plane) distance
	Pass       Pass
	Tolerance  float64 // effective tolerance after diameter scaling
	Skipped    int     // faces whose projection was undefined in the primary pass
}

// sampleSteps is the fixed parametric grid used by the fallback pass:
// u, v ∈ {0.2, 0.4, 0.6, 0.8}, 16 samples per face.
var sampleSteps = []float64{0.2, 0.4, 0.6, 0.8}

// Tolerances bundles the face-search knobs. The zero value selects the
// stock values (DefaultBaseTolerance, DiameterThreshold).
type Tolerances struct {
	// Base is the unscaled search tolerance in feet.
	Base float64
	// DiameterThreshold is the nominal diameter in feet above which Base
	// scales with equipment size.
	DiameterThreshold float64
}

// Scaled returns the effective tolerance for equipment with the given
// bounds: Base widened in proportion to the nominal diameter (the larger
// of the bounding box's X and Y extents) once that diameter exceeds the
// threshold. Smaller equipment keeps Base as is.
func (t Tolerances) Scaled(bbox geo.BoundingBox) float64 {
	base := t.Base
	if base <= 0 {
		base = DefaultBaseTolerance
	}
	threshold := t.DiameterThreshold
	if threshold <= 0 {
		threshold = DiameterThreshold
	}
	diameter := bbox.NominalDiameter()
	if diameter > threshold {
		return base * (diameter / threshold)
	}
	return base
}

// FindBestFace returns the face of the candidate solids closest to target.
//
// The primary pass projects target onto every face of every solid in
// strict input order; a face qualifies when its projection distance is
// both the running minimum and within tolerance. Faces whose projection
// is undefined are skipped and counted, never fatal. Only when the
// primary pass qualifies nothing does the fallback pass run: each planar
// face is sampled on the fixed parametric grid, the perpendicular
// distance |(target − sample)·normal| is measured against the tangent
// plane at the sample, and the smallest distance strictly below
// tolerance wins.
//
// Distance ties keep the first face encountered. The enumeration order of
// the inputs is therefore part of the contract.
//
// Return semantics:
//   - (Result, nil): a face qualified; Result identifies it and the pass.
//   - (zero, ErrNoGeometry): the solids expose no faces to search.
//   - (zero, ErrNoMatch): faces exist but none qualified in either pass.
func FindBestFace(solids []brep.Solid, target geo.Point, tol Tolerances, bbox geo.BoundingBox) (Result, error) {
	tolerance := tol.Scaled(bbox)

	res := Result{
		SolidIndex: -1,
		FaceIndex:  -1,
		Distance:   math.Inf(1),
		Tolerance:  tolerance,
	}

	faceCount := 0
	for si, s := range solids {
		for fi, f := range s.Faces() {
			faceCount++
			proj, ok := f.Project(target)
			if !ok {
				res.Skipped++
				continue
			}
			if proj.Distance < res.Distance && proj.Distance <= tolerance {
				res.Face = f
				res.SolidIndex = si
				res.FaceIndex = fi
				res.Distance = proj.Distance
				res.Pass = PassProjection
			}
		}
	}

	if faceCount == 0 {
		return Result{}, ErrNoGeometry
	}
	if res.Pass == PassProjection {
		return res, nil
	}

	// Fallback: sampled tangent-plane distances, planar faces only.
	for si, s := range solids {
		for fi, f := range s.Faces() {
			if !f.Planar() {
				continue
			}
			for _, u := range sampleSteps {
				for _, v := range sampleSteps {
					uv := geo.UV{U: u, V: v}
					sample, ok := f.Evaluate(uv)
					if !ok {
						continue
					}
					normal, ok := f.NormalAt(uv)
					if !ok {
						continue
					}
					d := math.Abs(target.Sub(sample).Dot(normal))
					if d < tolerance && d < res.Distance {
						res.Face = f
						res.SolidIndex = si
						res.FaceIndex = fi
						res.Distance = d
						res.Pass = PassSampled
					}
				}
			}
		}
	}

	if res.Pass == PassNone {
		return Result{}, ErrNoMatch
	}
	return res, nil
}
