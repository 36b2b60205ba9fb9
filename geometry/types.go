package geometry

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

// Epsilon is the absolute tolerance used by all predicates. Coordinates in
// this domain are metres inside a building footprint, so 1e-9 is far below
// any meaningful feature size.
const Epsilon = 1e-9

// ErrDegenerate is returned by helpers that need a well-defined line and
// were given two coincident points.
var ErrDegenerate = errors.New("geometry: degenerate input")

// Point is a 2-D point. X is Point[0], Y is Point[1].
type Point = orb.Point

// Segment is an ordered pair of points.
type Segment struct {
	A, B Point
}

// Seg is shorthand for Segment{A: orb.Point{ax, ay}, B: orb.Point{bx, by}}.
func Seg(ax, ay, bx, by float64) Segment {
	return Segment{A: Point{ax, ay}, B: Point{bx, by}}
}

// Reverse returns the segment with its endpoints swapped.
func (s Segment) Reverse() Segment { return Segment{A: s.B, B: s.A} }

// Length returns the Euclidean length of s.
func (s Segment) Length() float64 { return dist(s.A, s.B) }

// Degenerate reports whether s is shorter than Epsilon.
func (s Segment) Degenerate() bool { return s.Length() < Epsilon }

// Midpoint returns the point halfway between A and B.
func (s Segment) Midpoint() Point {
	return Point{(s.A[0] + s.B[0]) / 2, (s.A[1] + s.B[1]) / 2}
}

// Bound returns the axis-aligned bounding box of s.
func (s Segment) Bound() orb.Bound {
	return orb.MultiPoint{s.A, s.B}.Bound()
}

// Equal reports whether s and t have the same endpoints in either order.
func (s Segment) Equal(t Segment) bool {
	return (s.A.Equal(t.A) && s.B.Equal(t.B)) || (s.A.Equal(t.B) && s.B.Equal(t.A))
}

func (s Segment) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", s.A[0], s.A[1], s.B[0], s.B[1])
}

// Relation is the way two segments meet.
type Relation int

const (
	// Disjoint segments share no point.
	Disjoint Relation = iota
	// Cross means exactly one shared point, interior to both segments.
	Cross
	// Touch means the shared point is an endpoint of at least one segment.
	Touch
	// Overlap means the segments are collinear and share a positive length.
	Overlap
)

func (r Relation) String() string {
	switch r {
	case Disjoint:
		return "disjoint"
	case Cross:
		return "cross"
	case Touch:
		return "touch"
	case Overlap:
		return "overlap"
	default:
		return fmt.Sprintf("relation(%d)", int(r))
	}
}
