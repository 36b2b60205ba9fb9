package locate

import (
	"fmt"

	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/rays"
)

// ClassifyDirection labels a vertex from the count jumps of a right-leaning
// family (r1 before, r2 after) and a left-leaning family (l1, l2). Pass
// zeros for a side that has no jump. The table is documented on the
// package.
func ClassifyDirection(r1, r2, l1, l2 int) (Direction, error) {
	switch {
	case r1 == r2+2:
		return Up | Left, nil
	case r1 == r2-2:
		return Down | Right, nil
	case l1 == l2+2:
		return Down | Left, nil
	case l1 == l2-2:
		return Up | Right, nil
	case r1 == r2+1 && l1 == l2+1:
		return Left, nil
	case r1 == r2-1 && l1 == l2+1:
		return Down, nil
	case r1 == r2+1 && l1 == l2-1:
		return Up, nil
	case r1 == r2-1 && l1 == l2-1:
		return Right, nil
	}

	return None, &UnclassifiableVertexError{R1: r1, R2: r2, L1: l1, L2: l2}
}

// MatchKind is the pairing state of one candidate.
type MatchKind uint8

const (
	Unmatched MatchKind = iota
	Matched
)

// Match is one entry of the pairing side table.
type Match struct {
	Kind MatchKind
	// With is the index of the partner candidate when Kind == Matched.
	With int
}

// MatchedWith returns the Matched state pointing at candidate i.
func MatchedWith(i int) Match { return Match{Kind: Matched, With: i} }

// Classification is the output of ClassifyCandidates.
type Classification struct {
	Vertices []Vertex
	// Matches is the pairing side table, indexed like the input slice.
	Matches []Match
	// Diagnostics holds one error per dropped vertex: an
	// *UnclassifiableVertexError, or ErrNoLean for a candidate without a
	// leaning family.
	Diagnostics []error
}

// ClassifyCandidates pairs right- and left-leaning candidates closer than
// matchDist and labels the result.
//
// Steps:
//  1. Every right candidate takes the first left candidate within
//     matchDist; the pair becomes one vertex at their midpoint. A left
//     candidate may serve several right ones.
//  2. Unpaired right and left candidates are classified alone.
//  3. Candidates whose lead family is vertical cannot be labelled and
//     become ErrNoLean diagnostics.
//  4. Unclassifiable patterns become diagnostics and are not emitted.
//
// Complexity: O(R·L) for R right and L left candidates.
func ClassifyCandidates(cands []Candidate, matchDist float64) Classification {
	res := Classification{Matches: make([]Match, len(cands))}

	var right, left []int
	for i, c := range cands {
		switch c.Side {
		case rays.Right:
			right = append(right, i)
		case rays.Left:
			left = append(left, i)
		default:
			res.Diagnostics = append(res.Diagnostics,
				fmt.Errorf("%w: candidate %d at (%.4f, %.4f)", ErrNoLean, c.ID, c.Point[0], c.Point[1]))
		}
	}

	emit := func(p geometry.Point, r1, r2, l1, l2 int, sources ...int) {
		d, err := ClassifyDirection(r1, r2, l1, l2)
		if err != nil {
			uv := err.(*UnclassifiableVertexError)
			uv.Point = p
			res.Diagnostics = append(res.Diagnostics, uv)
			return
		}
		res.Vertices = append(res.Vertices, Vertex{Point: p, Direction: d, Sources: sources})
	}

	for _, ri := range right {
		r := cands[ri]
		for _, li := range left {
			l := cands[li]
			if geometry.Distance(r.Point, l.Point) >= matchDist {
				continue
			}
			res.Matches[ri] = MatchedWith(li)
			if res.Matches[li].Kind == Unmatched {
				res.Matches[li] = MatchedWith(ri)
			}
			r1, r2 := r.Jump()
			l1, l2 := l.Jump()
			mid := geometry.Segment{A: r.Point, B: l.Point}.Midpoint()
			emit(mid, r1, r2, l1, l2, r.ID, l.ID)
			break
		}
	}

	for _, ri := range right {
		if res.Matches[ri].Kind == Unmatched {
			r1, r2 := cands[ri].Jump()
			emit(cands[ri].Point, r1, r2, 0, 0, cands[ri].ID)
		}
	}
	for _, li := range left {
		if res.Matches[li].Kind == Unmatched {
			l1, l2 := cands[li].Jump()
			emit(cands[li].Point, 0, 0, l1, l2, cands[li].ID)
		}
	}

	return res
}

// Compatible reports whether the labels of a and b allow a wall between
// them. A pair aligned with an axis within tol needs facing labels: the
// lower point of a vertical pair must open up and the upper one down; the
// left point of a horizontal pair must open right and the right one left.
// None counts as unknown and never rules a pair out, nor does any label on
// a slanted pair.
func Compatible(a, b Vertex, tol float64) bool {
	dx, dy := b.Point[0]-a.Point[0], b.Point[1]-a.Point[1]
	opens := func(d, want Direction) bool { return d == None || d.Has(want) }
	switch {
	case dx < tol && -dx < tol:
		if dy < 0 {
			a, b = b, a
		}
		return opens(a.Direction, Up) && opens(b.Direction, Down)
	case dy < tol && -dy < tol:
		if dx < 0 {
			a, b = b, a
		}
		return opens(a.Direction, Right) && opens(b.Direction, Left)
	}
	return true
}
