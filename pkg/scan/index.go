package scan

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/geo"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/model"
)

// indexPad inflates query rectangles and zero-extent entries so that
// exactly-touching boxes are never lost to the tree's open-interval
// intersection test. The authoritative predicate is geo.BoundingBox
// .Overlaps, applied to every candidate the tree returns.
const indexPad = 1e-9

// hostEntry ties an indexed element to its insertion sequence, which
// carries the document's model order through the unordered tree.
type hostEntry struct {
	el   *model.Element
	seq  int
	rect rtreego.Rect
}

func (h *hostEntry) Bounds() rtreego.Rect { return h.rect }

// Index is a three-dimensional spatial index over host bounding boxes.
type Index struct {
	tree *rtreego.Rtree
	seq  int
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{tree: rtreego.NewTree(3, 25, 50)}
}

// Insert adds an element under its bounding box. Elements without a
// valid bounding box are rejected; degenerate (flat) boxes are padded a
// hair so they stay searchable.
func (ix *Index) Insert(el *model.Element) error {
	if !el.HasBounds() {
		return fmt.Errorf("scan: element %s has no bounding box to index", el.ID)
	}
	rect, err := boxToRect(*el.BBox, indexPad)
	if err != nil {
		return fmt.Errorf("scan: element %s: %w", el.ID, err)
	}
	ix.tree.Insert(&hostEntry{el: el, seq: ix.seq, rect: rect})
	ix.seq++
	return nil
}

// Len returns the number of indexed elements.
func (ix *Index) Len() int { return ix.tree.Size() }

// Search returns the indexed elements whose boxes overlap b (inclusive:
// touching counts), in insertion order.
func (ix *Index) Search(b geo.BoundingBox) []*model.Element {
	rect, err := boxToRect(b, indexPad)
	if err != nil {
		return nil
	}
	hits := ix.tree.SearchIntersect(rect)

	entries := make([]*hostEntry, 0, len(hits))
	for _, h := range hits {
		e := h.(*hostEntry)
		if e.el.BBox.Overlaps(b) {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	out := make([]*model.Element, len(entries))
	for i, e := range entries {
		out[i] = e.el
	}
	return out
}

// boxToRect converts a bounding box into the tree's rectangle form,
// padding every side so zero extents and exact touches survive.
func boxToRect(b geo.BoundingBox, pad float64) (rtreego.Rect, error) {
	size := b.Size()
	return rtreego.NewRect(
		rtreego.Point{b.Min.X() - pad, b.Min.Y() - pad, b.Min.Z() - pad},
		[]float64{size.X() + 2*pad, size.Y() + 2*pad, size.Z() + 2*pad},
	)
}
