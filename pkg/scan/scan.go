// Package scan finds the structural hosts each piece of mechanical
// equipment intersects. It builds a spatial index over wall and beam
// bounding boxes and produces one explicit EquipmentScan value per
// equipment element; nothing is accumulated in shared state.
package scan

import (
	"fmt"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/geo"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/model"
)

// Sleeve sizing parameter names. Length and COD live on the equipment
// instance, Diameter on its type element.
const (
	ParamSleeveLength   = "Sleeve Length"
	ParamSleeveCOD      = "Sleeve (COD)"
	ParamSleeveDiameter = "Sleeve Diameter"
)

// SleeveData is the millimeter snapshot of the sleeve sizing parameters.
// Complete is false when any of the three is missing; an incomplete
// snapshot does not block placement (a missing diameter reads as zero),
// it only shows up in reporting.
type SleeveData struct {
	LengthMM   float64
	CODMM      float64
	DiameterMM float64
	Complete   bool
}

// EquipmentScan describes one equipment element and the hosts its
// bounding box overlaps. Walls and Beams keep model order.
type EquipmentScan struct {
	Equipment *model.Element
	FarEnd    geo.Point
	Sleeve    SleeveData
	Walls     []*model.Element
	Beams     []*model.Element
	// NoBounds marks equipment that could not be scanned for lack of a
	// bounding box. Such equipment is reported, never silently dropped.
	NoBounds bool
}

// Hosts returns the intersecting hosts, walls before beams.
func (s *EquipmentScan) Hosts() []*model.Element {
	out := make([]*model.Element, 0, len(s.Walls)+len(s.Beams))
	out = append(out, s.Walls...)
	return append(out, s.Beams...)
}

// HasIntersections reports whether any host overlaps the equipment.
func (s *EquipmentScan) HasIntersections() bool {
	return len(s.Walls)+len(s.Beams) > 0
}

// ScanEquipment scans the given equipment elements against the
// document's walls and beams. With no ids, every equipment element is
// scanned in model order; explicit ids stand in for a selection and must
// name mechanical equipment.
func ScanEquipment(doc *model.Document, ids ...model.ElementID) ([]EquipmentScan, error) {
	equipment, err := selectEquipment(doc, ids)
	if err != nil {
		return nil, err
	}

	index := NewIndex()
	for _, host := range append(doc.Walls(), doc.Beams()...) {
		if !host.HasBounds() {
			continue
		}
		if err := index.Insert(host); err != nil {
			return nil, err
		}
	}

	scans := make([]EquipmentScan, 0, len(equipment))
	for _, eq := range equipment {
		s := EquipmentScan{
			Equipment: eq,
			Sleeve:    sleeveSnapshot(doc, eq),
		}
		if !eq.HasBounds() {
			s.NoBounds = true
			scans = append(scans, s)
			continue
		}
		s.FarEnd = eq.BBox.FarEnd()
		for _, host := range index.Search(*eq.BBox) {
			switch host.Category {
			case model.CategoryWalls:
				s.Walls = append(s.Walls, host)
			case model.CategoryStructuralFraming:
				s.Beams = append(s.Beams, host)
			}
		}
		scans = append(scans, s)
	}
	return scans, nil
}

func selectEquipment(doc *model.Document, ids []model.ElementID) ([]*model.Element, error) {
	if len(ids) == 0 {
		return doc.Equipment(), nil
	}
	out := make([]*model.Element, 0, len(ids))
	for _, id := range ids {
		el, ok := doc.Element(id)
		if !ok {
			return nil, fmt.Errorf("scan: %w: %s", model.ErrNoSuchElement, id)
		}
		if el.Category != model.CategoryMechanicalEquipment || el.IsType {
			return nil, fmt.Errorf("scan: element %s is not mechanical equipment", id)
		}
		out = append(out, el)
	}
	return out, nil
}

// sleeveSnapshot reads the sleeve sizing parameters, converting internal
// feet to millimeters: Sleeve Length and Sleeve (COD) off the instance,
// Sleeve Diameter off the type element.
func sleeveSnapshot(doc *model.Document, eq *model.Element) SleeveData {
	read := func(el *model.Element, name string) (float64, bool) {
		if el == nil {
			return 0, false
		}
		p, ok := el.LookupParameter(name)
		if !ok {
			return 0, false
		}
		v, ok := p.AsDouble()
		if !ok {
			return 0, false
		}
		return geo.FeetToMM(v), true
	}

	var data SleeveData
	var okLen, okCOD, okDia bool
	data.LengthMM, okLen = read(eq, ParamSleeveLength)
	data.CODMM, okCOD = read(eq, ParamSleeveCOD)
	data.DiameterMM, okDia = read(doc.ElementType(eq), ParamSleeveDiameter)
	data.Complete = okLen && okCOD && okDia
	return data
}
