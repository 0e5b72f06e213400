// Package report summarizes a scan-and-place run: one row per piece of
// equipment plus aggregate counts and match-distance statistics.
package report

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/model"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/place"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/scan"
)

// Row describes one piece of equipment in the run. Placement fields stay
// zero for scan-only runs.
type Row struct {
	EquipmentID   model.ElementID `json:"equipment_id"`
	EquipmentName string          `json:"equipment_name"`
	NoBounds      bool            `json:"no_bounds,omitempty"`

	SleeveLengthMM   float64 `json:"sleeve_length_mm,omitempty"`
	SleeveCODMM      float64 `json:"sleeve_cod_mm,omitempty"`
	SleeveDiameterMM float64 `json:"sleeve_diameter_mm,omitempty"`
	SleeveComplete   bool    `json:"sleeve_complete"`

	WallCount int `json:"wall_count"`
	BeamCount int `json:"beam_count"`

	Outcome    string          `json:"outcome,omitempty"`
	InstanceID model.ElementID `json:"instance_id,omitempty"`
	HostID     model.ElementID `json:"host_id,omitempty"`
	DistanceFt float64         `json:"distance_ft,omitempty"`
	Pass       string          `json:"pass,omitempty"`
	SkipReason string          `json:"skip_reason,omitempty"`
	Error      string          `json:"error,omitempty"`
	RuleErrors []string        `json:"rule_errors,omitempty"`
}

// DistanceStats describes the winning face-match distances in feet.
type DistanceStats struct {
	Count  int     `json:"count"`
	MinFt  float64 `json:"min_ft"`
	MaxFt  float64 `json:"max_ft"`
	MeanFt float64 `json:"mean_ft"`
}

// Summary aggregates the run.
type Summary struct {
	Equipment int `json:"equipment"`
	// Placed counts committed sleeves, face-hosted and fallback alike.
	Placed   int            `json:"placed"`
	Outcomes map[string]int `json:"outcomes,omitempty"`
	Distance *DistanceStats `json:"distance,omitempty"`
}

// Report is the full run summary handed to the writers.
type Report struct {
	Title   string  `json:"title,omitempty"`
	Family  string  `json:"family,omitempty"`
	Rows    []Row   `json:"rows"`
	Summary Summary `json:"summary"`
}

// Build assembles the report. The batch, when present, carries one
// result per scan in scan order; a nil batch reports the scans alone.
func Build(title, family string, scans []scan.EquipmentScan, batch *place.Batch) *Report {
	rep := &Report{Title: title, Family: family, Rows: make([]Row, 0, len(scans))}

	var results []place.Result
	if batch != nil {
		results = batch.Results
	}

	var distances []float64
	for i := range scans {
		sc := &scans[i]
		row := Row{
			EquipmentID:      sc.Equipment.ID,
			EquipmentName:    sc.Equipment.Name,
			NoBounds:         sc.NoBounds,
			SleeveLengthMM:   sc.Sleeve.LengthMM,
			SleeveCODMM:      sc.Sleeve.CODMM,
			SleeveDiameterMM: sc.Sleeve.DiameterMM,
			SleeveComplete:   sc.Sleeve.Complete,
			WallCount:        len(sc.Walls),
			BeamCount:        len(sc.Beams),
		}
		if i < len(results) {
			res := &results[i]
			row.Outcome = res.Outcome.String()
			if res.Instance != nil {
				row.InstanceID = res.Instance.ID
			}
			if res.Host != nil {
				row.HostID = res.Host.ID
			}
			if res.Outcome == place.OutcomePlaced {
				row.DistanceFt = res.Distance
				row.Pass = res.Pass.String()
				distances = append(distances, res.Distance)
			}
			row.SkipReason = res.SkipReason
			if res.Err != nil {
				row.Error = res.Err.Error()
			}
			for _, re := range res.RuleErrs {
				row.RuleErrors = append(row.RuleErrors, re.Error())
			}
		}
		rep.Rows = append(rep.Rows, row)
	}

	rep.Summary.Equipment = len(scans)
	if batch != nil {
		rep.Summary.Placed = batch.PlacedCount()
		rep.Summary.Outcomes = make(map[string]int)
		for i := range batch.Results {
			rep.Summary.Outcomes[batch.Results[i].Outcome.String()]++
		}
	}
	if len(distances) > 0 {
		rep.Summary.Distance = &DistanceStats{
			Count:  len(distances),
			MinFt:  floats.Min(distances),
			MaxFt:  floats.Max(distances),
			MeanFt: stat.Mean(distances, nil),
		}
	}
	return rep
}
