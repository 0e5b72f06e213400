// Package place creates sleeve instances for scanned equipment.
//
// For each equipment scan the placer tries the intersecting beams in
// order, looking for a face whose projection of the equipment's far-end
// point lands within tolerance. A match places a face-hosted sleeve at
// the equipment's location point and copies the beam width and sleeve
// diameter onto the instance. When no face matches, a point-hosted
// sleeve is placed at the far-end corner on the first intersecting host
// instead, with no parameter writes.
//
// All placements happen inside a single document transaction that
// commits even when individual equipment fails; per-equipment problems
// are outcome values, not errors.
package place

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/geo"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/match"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/model"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/rules"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/scan"
)

// DefaultClearanceMM is the default widening of the sleeve's outer
// diameter over the equipment's sleeve diameter, in millimeters.
const DefaultClearanceMM = 2

// Options configures a placement run.
type Options struct {
	// FamilyName names the sleeve family to place. Its first symbol is
	// used and activated if necessary.
	FamilyName string

	// BaseTolerance is the unscaled face-search tolerance in feet.
	// Zero means match.DefaultBaseTolerance.
	BaseTolerance float64

	// DiameterThreshold is the nominal diameter in feet above which the
	// tolerance scales with equipment size. Zero means
	// match.DiameterThreshold.
	DiameterThreshold float64

	// ClearanceMM is added to the sleeve diameter when writing the
	// instance's outer diameter. Zero means DefaultClearanceMM; a rule
	// script can still set an explicit zero clearance.
	ClearanceMM float64

	// FaceHostedOnly disables the fallback placement, so equipment
	// whose beams offer no matching face reports OutcomeNoFaceMatch
	// instead of getting a point-hosted sleeve.
	FaceHostedOnly bool

	// RuleScript is optional zygomys source evaluated once per
	// equipment before placing. See package rules.
	RuleScript string
}

// Placer places sleeves into a document.
type Placer struct {
	doc *model.Document
	opt Options
	log *zap.Logger
	eng *rules.Engine
}

// New creates a Placer. A nil logger disables logging.
func New(doc *model.Document, opt Options, log *zap.Logger) *Placer {
	if opt.BaseTolerance <= 0 {
		opt.BaseTolerance = match.DefaultBaseTolerance
	}
	if opt.ClearanceMM == 0 {
		opt.ClearanceMM = DefaultClearanceMM
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Placer{doc: doc, opt: opt, log: log}
}

// Place runs placement for the given scans and reports one Result per
// scan, in input order. It returns an error only for problems that
// invalidate the whole run: an unknown family, a family without
// symbols, or a transaction that cannot commit.
func (p *Placer) Place(scans []scan.EquipmentScan) (*Batch, error) {
	fam, err := p.doc.FamilyByName(p.opt.FamilyName)
	if err != nil {
		return nil, fmt.Errorf("place: family %q: %w", p.opt.FamilyName, err)
	}
	sym := fam.FirstSymbol()
	if sym == nil {
		return nil, fmt.Errorf("place: family %q has no symbols", p.opt.FamilyName)
	}

	// An inactive symbol is activated in its own transaction, mirroring
	// how placement commits stay separate from type activation.
	if !sym.Active {
		err := p.doc.Run("Activate Family Symbol", func(tx *model.Tx) error {
			tx.ActivateSymbol(sym)
			return nil
		})
		if err != nil {
			return nil, err
		}
		p.log.Debug("activated family symbol",
			zap.String("family", fam.Name),
			zap.String("symbol", sym.Name),
		)
	}

	batch := &Batch{Results: make([]Result, 0, len(scans))}
	err = p.doc.Run("Place Family Instances", func(tx *model.Tx) error {
		for i := range scans {
			res := p.placeOne(tx, &scans[i], fam, sym)
			batch.Results = append(batch.Results, res)
		}
		// Individual failures stay in their results so the successful
		// placements still commit.
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.log.Info("placement run finished",
		zap.Int("equipment", len(scans)),
		zap.Int("placed", batch.PlacedCount()),
	)
	return batch, nil
}

func (p *Placer) placeOne(tx *model.Tx, sc *scan.EquipmentScan, fam *model.Family, sym *model.FamilySymbol) Result {
	eq := sc.Equipment
	res := Result{Equipment: eq}

	if sc.NoBounds {
		res.Outcome = OutcomeFailed
		res.Err = ErrNoBounds
		return res
	}

	tolerance := p.opt.BaseTolerance
	clearance := p.opt.ClearanceMM
	if p.opt.RuleScript != "" {
		decision, ruleErrs, fatal := p.engine().Evaluate(p.opt.RuleScript, ruleContext(sc))
		res.RuleErrs = ruleErrs
		if fatal != nil {
			res.RuleErrs = append(res.RuleErrs, rules.EvalError{Message: fatal.Error()})
		}
		if len(res.RuleErrs) > 0 {
			p.log.Warn("rule script failed, placing with defaults",
				zap.Stringer("equipment", eq.ID),
				zap.Int("errors", len(res.RuleErrs)),
			)
		} else {
			if decision.Skip {
				res.Outcome = OutcomeSkippedByRule
				res.SkipReason = decision.Reason
				return res
			}
			if decision.ToleranceFt != nil {
				tolerance = *decision.ToleranceFt
			}
			if decision.ClearanceMM != nil {
				clearance = *decision.ClearanceMM
			}
		}
	}

	if eq.Location == nil {
		res.Outcome = OutcomeFailed
		res.Err = ErrNoLocation
		return res
	}
	if !sc.HasIntersections() {
		res.Outcome = OutcomeNoIntersections
		return res
	}

	// Face-hosted pass over the intersecting beams. Only work-plane
	// based families can host on a face.
	if fam.WorkPlaneBased {
		for _, beam := range sc.Beams {
			beamType := p.doc.ElementType(beam)
			if beamType == nil {
				continue
			}
			widthMM, ok := beamWidthMM(beamType)
			if !ok {
				continue
			}

			solids, err := beam.Solids()
			if err != nil {
				// A host that cannot produce geometry poisons the whole
				// equipment; the fallback is not attempted.
				res.Outcome = OutcomeFailed
				res.Err = fmt.Errorf("host %s geometry: %w", beam.ID, err)
				return res
			}

			tol := match.Tolerances{Base: tolerance, DiameterThreshold: p.opt.DiameterThreshold}
			m, err := match.FindBestFace(solids, sc.FarEnd, tol, *eq.BBox)
			if err != nil {
				continue
			}
			normal, ok := m.Face.NormalAt(geo.UV{U: 0.5, V: 0.5})
			if !ok {
				continue
			}

			inst := fam.NewInstance(sym, *eq.Location)
			inst.HostID = beam.ID
			inst.FaceHosted = true
			refDir := referenceDirection(normal)
			inst.ReferenceDir = &refDir

			if err := tx.AddElement(inst); err != nil {
				res.Outcome = OutcomeFailed
				res.Err = err
				return res
			}
			if err := writeSleeveParams(tx, inst, widthMM, sc.Sleeve.DiameterMM+clearance); err != nil {
				res.Outcome = OutcomeFailed
				res.Err = err
				return res
			}

			res.Outcome = OutcomePlaced
			res.Instance = inst
			res.Host = beam
			res.Distance = m.Distance
			res.Pass = m.Pass
			res.Normal = normal
			p.log.Info("sleeve placed",
				zap.Stringer("equipment", eq.ID),
				zap.Stringer("host", beam.ID),
				zap.Float64("distance_ft", m.Distance),
				zap.Stringer("pass", m.Pass),
			)
			return res
		}
	}

	if p.opt.FaceHostedOnly {
		res.Outcome = OutcomeNoFaceMatch
		return res
	}

	// Fallback: point-hosted at the far-end corner on the first
	// intersecting host, no parameter writes.
	host := sc.Hosts()[0]
	inst := fam.NewInstance(sym, sc.FarEnd)
	inst.HostID = host.ID
	if err := tx.AddElement(inst); err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}
	res.Outcome = OutcomePlacedFallback
	res.Instance = inst
	res.Host = host
	p.log.Info("sleeve placed at far end",
		zap.Stringer("equipment", eq.ID),
		zap.Stringer("host", host.ID),
	)
	return res
}

func (p *Placer) engine() *rules.Engine {
	if p.eng == nil {
		p.eng = rules.NewEngine()
	}
	return p.eng
}

// ruleContext assembles the script-visible view of one scan.
func ruleContext(sc *scan.EquipmentScan) rules.Context {
	ctx := rules.Context{
		EquipmentName:    sc.Equipment.Name,
		SleeveDiameterMM: sc.Sleeve.DiameterMM,
		HostCount:        len(sc.Walls) + len(sc.Beams),
	}
	if hosts := sc.Hosts(); len(hosts) > 0 {
		ctx.HostCategory = string(hosts[0].Category)
	}
	return ctx
}

// beamWidthMM reads the beam type's width in millimeters. Steel profile
// types carry it as "b"; some families capitalize it.
func beamWidthMM(beamType *model.Element) (float64, bool) {
	for _, name := range []string{"b", "B"} {
		if param, ok := beamType.LookupParameter(name); ok {
			if ft, ok := param.AsDouble(); ok {
				return geo.FeetToMM(ft), true
			}
		}
	}
	return 0, false
}

// referenceDirection derives the instance reference direction from the
// hosting face normal. The normal crossed with the model X axis gives a
// vector in the face plane; a vertical-ish normal falls back to the Y
// axis so the cross product cannot vanish.
func referenceDirection(normal geo.Vector) geo.Vector {
	dir := normal.Cross(geo.BasisX)
	if geo.IsZeroLength(dir) {
		dir = normal.Cross(geo.BasisY)
	}
	return dir.Normalize()
}

// writeSleeveParams copies the beam width into every Length-like
// parameter and the cleared sleeve diameter into every Outer
// Diameter-like parameter on the new instance. Values arrive in
// millimeters and are stored in feet.
func writeSleeveParams(tx *model.Tx, inst *model.Element, widthMM, outerMM float64) error {
	for _, param := range inst.Parameters {
		if param.Storage != model.StorageDouble {
			continue
		}
		switch {
		case strings.Contains(param.Name, "Length"):
			if err := tx.SetParameterDouble(inst, param.Name, geo.MMToFeet(widthMM)); err != nil {
				return err
			}
		case strings.Contains(param.Name, "Outer Diameter"):
			if err := tx.SetParameterDouble(inst, param.Name, geo.MMToFeet(outerMM)); err != nil {
				return err
			}
		}
	}
	return nil
}
