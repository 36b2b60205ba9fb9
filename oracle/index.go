package oracle

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/katalvlaran/kvis/geometry"
)

// R-tree fan-out, the values rtreego's own examples use.
const (
	treeMinChildren = 25
	treeMaxChildren = 50
)

// boxPad widens every bounding box so that axis-aligned segments (zero
// extent on one axis) still get a valid rectangle and touching boxes
// still intersect.
const boxPad = 1e-7

// entry is one wall stored in the R-tree.
type entry struct {
	seg geometry.Segment
	box rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *entry) Bounds() rtreego.Rect { return e.box }

// Index is a bounding-box index over a fixed segment set.
type Index struct {
	tree     *rtreego.Rtree
	segments []geometry.Segment
}

// NewIndex builds an R-tree over segments. The slice is copied.
//
// Complexity: O(n log n).
func NewIndex(segments []geometry.Segment) *Index {
	idx := &Index{
		tree:     rtreego.NewTree(2, treeMinChildren, treeMaxChildren),
		segments: append([]geometry.Segment(nil), segments...),
	}
	for _, s := range idx.segments {
		idx.tree.Insert(&entry{seg: s, box: boxOf(s)})
	}

	return idx
}

// Len returns the number of indexed segments.
func (idx *Index) Len() int { return len(idx.segments) }

// Segments returns a copy of the indexed segments.
func (idx *Index) Segments() []geometry.Segment {
	return append([]geometry.Segment(nil), idx.segments...)
}

// Candidates returns the segments whose bounding box meets the box of ray.
func (idx *Index) Candidates(ray geometry.Segment) []geometry.Segment {
	hits := idx.tree.SearchIntersect(boxOf(ray))
	out := make([]geometry.Segment, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(*entry).seg)
	}

	return out
}

// Count measures ray against the indexed segments. It returns the same
// value as CountCrossings over the full segment slice.
//
// Complexity: O(log n + k) for k candidate boxes.
func (idx *Index) Count(ray geometry.Segment, opts Options) Measurement {
	return CountCrossings(ray, idx.Candidates(ray), opts)
}

// boxOf returns the padded bounding rectangle of s.
func boxOf(s geometry.Segment) rtreego.Rect {
	b := s.Bound()
	lo := rtreego.Point{b.Min[0] - boxPad, b.Min[1] - boxPad}
	lengths := []float64{
		math.Max(b.Max[0]-b.Min[0], 0) + 2*boxPad,
		math.Max(b.Max[1]-b.Min[1], 0) + 2*boxPad,
	}
	r, err := rtreego.NewRect(lo, lengths)
	if err != nil {
		// lengths are strictly positive by construction
		panic("oracle: " + err.Error())
	}

	return r
}
