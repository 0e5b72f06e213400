package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/model"
)

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	return nil
}

// WriteText writes the human-readable table form: a header, one line per
// equipment, the aggregate summary, and a trailing list of problems.
func WriteText(w io.Writer, r *Report) error {
	if r.Title != "" {
		fmt.Fprintf(w, "%s\n", r.Title)
	}
	if r.Family != "" {
		fmt.Fprintf(w, "family: %s\n", r.Family)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EQUIPMENT\tNAME\tSLEEVE\tWALLS\tBEAMS\tOUTCOME\tHOST\tDISTANCE")
	for i := range r.Rows {
		row := &r.Rows[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			row.EquipmentID, row.EquipmentName, sleeveCell(row),
			row.WallCount, row.BeamCount,
			dash(row.Outcome), idCell(row.HostID), distanceCell(row))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("report: write table: %w", err)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "equipment: %d  placed: %d\n", r.Summary.Equipment, r.Summary.Placed)
	if len(r.Summary.Outcomes) > 0 {
		names := make([]string, 0, len(r.Summary.Outcomes))
		for name := range r.Summary.Outcomes {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprint(w, "outcomes:")
		for _, name := range names {
			fmt.Fprintf(w, " %s %d", name, r.Summary.Outcomes[name])
		}
		fmt.Fprintln(w)
	}
	if d := r.Summary.Distance; d != nil {
		fmt.Fprintf(w, "distance ft: min %.3f  max %.3f  mean %.3f\n", d.MinFt, d.MaxFt, d.MeanFt)
	}

	writeProblems(w, r)
	return nil
}

// writeProblems lists the rows a reviewer should look at.
func writeProblems(w io.Writer, r *Report) {
	wrote := false
	line := func(row *Row, format string, args ...any) {
		if !wrote {
			fmt.Fprintln(w)
			wrote = true
		}
		fmt.Fprintf(w, "%s %s: ", row.EquipmentID, row.EquipmentName)
		fmt.Fprintf(w, format, args...)
		fmt.Fprintln(w)
	}

	for i := range r.Rows {
		row := &r.Rows[i]
		if row.Error != "" {
			line(row, "%s", row.Error)
		} else if row.NoBounds {
			line(row, "no bounding box")
		}
		if row.SkipReason != "" {
			line(row, "skipped: %s", row.SkipReason)
		}
		for _, re := range row.RuleErrors {
			line(row, "rule: %s", re)
		}
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func idCell(id model.ElementID) string {
	if id == 0 {
		return "-"
	}
	return id.String()
}

func sleeveCell(row *Row) string {
	if row.SleeveDiameterMM <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f mm", row.SleeveDiameterMM)
}

func distanceCell(row *Row) string {
	if row.Pass == "" {
		return "-"
	}
	return fmt.Sprintf("%.3f ft", row.DistanceFt)
}
