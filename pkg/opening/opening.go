// Package opening builds reviewable opening geometry for placed
// sleeves.
//
// A sleeve solid is a cylinder of the instance's outer diameter and
// length, its axis along the matched face normal, centered at the
// placement point. The opening solid is the hosting element's box with
// that cylinder subtracted. Both are signed-distance solids meshed with
// marching cubes for OBJ export.
package opening

import (
	"fmt"
	"math"
	"strings"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/geo"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/model"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/place"
)

// SleeveSolid builds the sleeve cylinder. Dimensions are in feet; the
// axis needs direction only, not unit length.
func SleeveSolid(diameterFt, lengthFt float64, axis geo.Vector, at geo.Point) (sdf.SDF3, error) {
	if diameterFt <= 0 || lengthFt <= 0 {
		return nil, fmt.Errorf("opening: sleeve %g ft x %g ft is not a solid", diameterFt, lengthFt)
	}
	if geo.IsZeroLength(axis) {
		return nil, fmt.Errorf("opening: sleeve axis is zero length")
	}

	s, err := sdf.Cylinder3D(lengthFt, diameterFt/2, 0)
	if err != nil {
		return nil, err
	}
	// Cylinder3D is z-aligned at the origin: rotate onto the axis, then
	// move to the placement point.
	m := sdf.Translate3d(v3.Vec{X: at.X(), Y: at.Y(), Z: at.Z()}).Mul(alignZ(axis.Normalize()))
	return sdf.Transform3D(s, m), nil
}

// alignZ builds the rotation taking +Z onto dir (unit length).
func alignZ(dir geo.Vector) sdf.M44 {
	theta := math.Acos(clamp(dir.Z(), -1, 1))
	phi := math.Atan2(dir.Y(), dir.X())
	return sdf.RotateZ(phi).Mul(sdf.RotateY(theta))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// OpeningSolid subtracts the sleeve from the host's bounding box.
func OpeningSolid(host geo.BoundingBox, sleeve sdf.SDF3) (sdf.SDF3, error) {
	size := host.Size()
	box, err := sdf.Box3D(v3.Vec{X: size.X(), Y: size.Y(), Z: size.Z()}, 0)
	if err != nil {
		return nil, err
	}
	center := host.Center()
	box = sdf.Transform3D(box, sdf.Translate3d(v3.Vec{X: center.X(), Y: center.Y(), Z: center.Z()}))
	return sdf.Difference3D(box, sleeve), nil
}

// Carver turns placement results into opening meshes.
type Carver struct {
	cells int
}

// NewCarver creates a Carver. cells controls the marching cubes
// resolution; zero or negative selects the default.
func NewCarver(cells int) *Carver {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	return &Carver{cells: cells}
}

// ForResult builds the opening mesh for one face-hosted placement. The
// sleeve dimensions come from the instance's own parameters, so the
// mesh reflects exactly what placement wrote.
func (c *Carver) ForResult(res *place.Result) (*Mesh, error) {
	if res.Outcome != place.OutcomePlaced {
		return nil, fmt.Errorf("opening: equipment %s outcome is %s, not a face-hosted placement",
			res.Equipment.ID, res.Outcome)
	}
	inst := res.Instance

	diameter, ok := paramLike(inst, "Outer Diameter")
	if !ok {
		return nil, fmt.Errorf("opening: instance %s has no outer diameter parameter", inst.ID)
	}
	length, ok := paramLike(inst, "Length")
	if !ok {
		return nil, fmt.Errorf("opening: instance %s has no length parameter", inst.ID)
	}

	sleeve, err := SleeveSolid(diameter, length, res.Normal, *inst.Location)
	if err != nil {
		return nil, err
	}
	solid, err := OpeningSolid(*res.Host.BBox, sleeve)
	if err != nil {
		return nil, err
	}
	return c.Tessellate(solid, fmt.Sprintf("opening-%d", int64(inst.ID))), nil
}

// ForBatch builds opening meshes for every face-hosted placement in the
// batch. Fallback placements carry no face orientation and are skipped.
func (c *Carver) ForBatch(batch *place.Batch) ([]*Mesh, error) {
	var meshes []*Mesh
	for i := range batch.Results {
		res := &batch.Results[i]
		if res.Outcome != place.OutcomePlaced {
			continue
		}
		m, err := c.ForResult(res)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

// paramLike finds the first Double parameter whose name contains key.
func paramLike(el *model.Element, key string) (float64, bool) {
	for _, p := range el.Parameters {
		if p.Storage == model.StorageDouble && strings.Contains(p.Name, key) {
			return p.Double, true
		}
	}
	return 0, false
}
