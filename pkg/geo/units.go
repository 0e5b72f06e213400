package geo

import "fmt"

// MMPerFoot converts between the model's internal decimal feet and
// millimeters, the unit used for display and configuration values.
const MMPerFoot = 304.8

// FeetToMM converts a length in feet to millimeters.
func FeetToMM(ft float64) float64 {
	return ft * MMPerFoot
}

// MMToFeet converts a length in millimeters to feet.
func MMToFeet(mm float64) float64 {
	return mm / MMPerFoot
}

// FormatMM renders a length held in feet as a millimeter display string,
// e.g. "114.30 mm".
func FormatMM(ft float64) string {
	return fmt.Sprintf("%.2f mm", FeetToMM(ft))
}
