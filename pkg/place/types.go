package place

import (
	"errors"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/geo"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/match"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/model"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/rules"
)

var (
	// ErrNoBounds marks equipment whose bounding box is missing or
	// inverted, so no far-end point exists to search from.
	ErrNoBounds = errors.New("place: equipment has no bounding box")

	// ErrNoLocation marks equipment without a location point to anchor
	// the sleeve at.
	ErrNoLocation = errors.New("place: equipment has no location point")
)

// Outcome classifies what happened to one piece of equipment.
type Outcome int

const (
	// OutcomePlaced is a face-hosted sleeve on a matched beam face.
	OutcomePlaced Outcome = iota
	// OutcomePlacedFallback is a point-hosted sleeve at the far-end
	// corner, placed when no beam face matched.
	OutcomePlacedFallback
	// OutcomeNoIntersections means no wall or beam touches the
	// equipment's bounding box.
	OutcomeNoIntersections
	// OutcomeNoFaceMatch means no beam face matched and the fallback
	// was disabled.
	OutcomeNoFaceMatch
	// OutcomeSkippedByRule means a rule script decided to skip.
	OutcomeSkippedByRule
	// OutcomeFailed is an error outcome; Result.Err has the cause.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaced:
		return "placed"
	case OutcomePlacedFallback:
		return "placed-fallback"
	case OutcomeNoIntersections:
		return "no-intersections"
	case OutcomeNoFaceMatch:
		return "no-face-match"
	case OutcomeSkippedByRule:
		return "skipped-by-rule"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Result reports the placement outcome for one piece of equipment.
type Result struct {
	Equipment *model.Element
	Outcome   Outcome

	// Instance is the placed sleeve, set for the two placed outcomes.
	Instance *model.Element
	// Host is the hosting beam (face-hosted) or the first intersecting
	// host (fallback).
	Host *model.Element

	// Distance, Pass and Normal describe the winning face match: the
	// projection distance, which pass found it, and the face normal at
	// its reference point. All are zero values unless Outcome is
	// OutcomePlaced.
	Distance float64
	Pass     match.Pass
	Normal   geo.Vector

	// Err is set when Outcome is OutcomeFailed.
	Err error
	// RuleErrs records rule script failures. They never block
	// placement; the run continues with defaults.
	RuleErrs []rules.EvalError
	// SkipReason is the rule's stated reason for OutcomeSkippedByRule.
	SkipReason string
}

// Batch is the outcome of one placement run over a set of scans.
type Batch struct {
	Results []Result
}

// Count reports how many results have the given outcome.
func (b *Batch) Count(o Outcome) int {
	n := 0
	for i := range b.Results {
		if b.Results[i].Outcome == o {
			n++
		}
	}
	return n
}

// PlacedCount reports how many sleeves were actually created, counting
// both face-hosted and fallback placements.
func (b *Batch) PlacedCount() int {
	return b.Count(OutcomePlaced) + b.Count(OutcomePlacedFallback)
}
