package model

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/geo"
)

const yamlFixture = `title: pump room
families:
  - name: ADR-10D SLEEVE CUTOUT-
    work_plane_based: true
    symbols:
      - id: 900
        name: 100mm
        active: false
        parameters:
          - {name: Sleeve Diameter, storage: Double, double: 0.328}
        instance_defaults:
          - {name: Length, storage: Double}
          - {name: Outer Diameter, storage: Double}
elements:
  - id: 1
    name: Level 1
    category: Levels
  - id: 2
    name: Pump Type
    category: MechanicalEquipment
    is_type: true
    parameters:
      - {name: Sleeve Length, storage: Double, double: 0.984}
      - {name: Sleeve (COD), storage: Double, double: 0.361}
      - {name: Sleeve Diameter, storage: Double, double: 0.328}
  - id: 3
    name: Pump 1
    category: MechanicalEquipment
    type_id: 2
    level_id: 1
    location: [5, 5, 3]
    bbox:
      min: [4, 4, 2]
      max: [6, 6, 4]
  - id: 4
    name: Wall 1
    category: Walls
    bbox:
      min: [5.9, 0, 0]
      max: [6.3, 10, 10]
    geometry:
      boxes:
        - {min: [5.9, 0, 0], max: [6.3, 10, 10]}
`

func TestLoadYAMLFixture(t *testing.T) {
	doc, err := LoadYAML(strings.NewReader(yamlFixture))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}

	if doc.Title != "pump room" {
		t.Errorf("title = %q", doc.Title)
	}
	if doc.Len() != 4 {
		t.Fatalf("element count = %d, want 4", doc.Len())
	}

	pump, ok := doc.Element(3)
	if !ok {
		t.Fatal("element 3 missing")
	}
	if pump.Location == nil || pump.Location.X() != 5 {
		t.Errorf("pump location = %v", pump.Location)
	}
	if !pump.HasBounds() {
		t.Error("pump lost its bounding box")
	}

	et := doc.ElementType(pump)
	if et == nil {
		t.Fatal("pump type did not resolve")
	}
	if _, ok := et.LookupParameter("Sleeve (COD)"); !ok {
		t.Error("type parameter Sleeve (COD) missing")
	}

	fam, err := doc.FamilyByName("ADR-10D SLEEVE CUTOUT-")
	if err != nil {
		t.Fatalf("FamilyByName: %v", err)
	}
	sym := fam.FirstSymbol()
	if sym == nil || sym.ID != 900 {
		t.Fatalf("symbol = %+v, want id 900", sym)
	}
	if sym.Active {
		t.Error("symbol should load inactive")
	}

	wall, _ := doc.Element(4)
	solids, err := wall.Solids()
	if err != nil || len(solids) != 1 {
		t.Fatalf("wall solids = %d (%v), want 1", len(solids), err)
	}
}

func TestLoadYAMLDuplicateID(t *testing.T) {
	bad := `title: dup
elements:
  - {id: 7, name: a, category: Walls}
  - {id: 7, name: b, category: Walls}
`
	if _, err := LoadYAML(strings.NewReader(bad)); err == nil {
		t.Fatal("duplicate IDs loaded without error")
	}
}

func TestRoundTripJSONAndYAML(t *testing.T) {
	src, err := LoadYAML(strings.NewReader(yamlFixture))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}

	dir := t.TempDir()
	for _, name := range []string{"model.json", "model.yaml"} {
		path := filepath.Join(dir, name)
		if err := src.Save(path); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		assertDocumentsEqual(t, name, src, got)
	}
}

func assertDocumentsEqual(t *testing.T, label string, want, got *Document) {
	t.Helper()
	if got.Title != want.Title {
		t.Errorf("%s: title = %q, want %q", label, got.Title, want.Title)
	}
	if got.Len() != want.Len() {
		t.Fatalf("%s: element count = %d, want %d", label, got.Len(), want.Len())
	}
	wantEls, gotEls := want.Elements(), got.Elements()
	for i := range wantEls {
		w, g := wantEls[i], gotEls[i]
		if g.ID != w.ID || g.Name != w.Name || g.Category != w.Category {
			t.Errorf("%s: element %d = (%s %q %s), want (%s %q %s)",
				label, i, g.ID, g.Name, g.Category, w.ID, w.Name, w.Category)
		}
		if (g.BBox == nil) != (w.BBox == nil) {
			t.Errorf("%s: element %d bbox presence mismatch", label, i)
			continue
		}
		if w.BBox != nil && *g.BBox != *w.BBox {
			t.Errorf("%s: element %d bbox = %+v, want %+v", label, i, g.BBox, w.BBox)
		}
		if len(g.Parameters) != len(w.Parameters) {
			t.Errorf("%s: element %d parameter count = %d, want %d",
				label, i, len(g.Parameters), len(w.Parameters))
			continue
		}
		for j := range w.Parameters {
			if *g.Parameters[j] != *w.Parameters[j] {
				t.Errorf("%s: element %d parameter %d = %+v, want %+v",
					label, i, j, g.Parameters[j], w.Parameters[j])
			}
		}
	}
	if len(got.Families()) != len(want.Families()) {
		t.Fatalf("%s: family count = %d, want %d", label, len(got.Families()), len(want.Families()))
	}
}

func TestUnsupportedExtension(t *testing.T) {
	doc := NewDocument("x")
	if err := doc.Save(filepath.Join(t.TempDir(), "model.toml")); err == nil {
		t.Error("Save accepted an unsupported extension")
	}
	if _, err := Load("model.toml"); err == nil {
		t.Error("Load accepted a missing unsupported file")
	}
}

func TestEncodeJSONContainsSchema(t *testing.T) {
	doc := NewDocument("enc")
	loc := geo.Point{1, 2, 3}
	if err := doc.AddElement(&Element{Name: "w", Category: CategoryWalls, Location: &loc}); err != nil {
		t.Fatalf("AddElement: %v", err)
	}
	var buf bytes.Buffer
	if err := doc.EncodeJSON(&buf); err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"title": "enc"`, `"category": "Walls"`, `"location"`} {
		if !strings.Contains(out, want) {
			t.Errorf("encoded JSON missing %s", want)
		}
	}
}
