package geometry

import (
	"math"

	"github.com/paulmach/orb/planar"
)

// Classify reports how s and t meet. The answer does not depend on the
// order of the arguments or on the orientation of either segment.
//
// Steps:
//  1. Degenerate segments are Disjoint from everything.
//  2. Signed distances of each endpoint from the other segment's line.
//  3. Collinear pairs are resolved by 1-D interval overlap along s.
//  4. Strict sign changes on both lines mean a proper Cross.
//  5. An endpoint lying on the other segment means Touch.
func Classify(s, t Segment) Relation {
	if s.Degenerate() || t.Degenerate() {
		return Disjoint
	}

	d1 := side(s, t.A)
	d2 := side(s, t.B)
	d3 := side(t, s.A)
	d4 := side(t, s.B)

	if (d1 == 0 && d2 == 0) || (d3 == 0 && d4 == 0) {
		return collinearRelation(s, t)
	}
	if d1*d2 < 0 && d3*d4 < 0 {
		return Cross
	}
	if (d1 == 0 && within(s, t.A)) || (d2 == 0 && within(s, t.B)) ||
		(d3 == 0 && within(t, s.A)) || (d4 == 0 && within(t, s.B)) {
		return Touch
	}

	return Disjoint
}

// Crosses reports whether a and b share exactly one point that is interior
// to both of them.
func Crosses(a, b Segment) bool { return Classify(a, b) == Cross }

// Touches reports whether a and b meet only at an endpoint of one of them.
func Touches(a, b Segment) bool { return Classify(a, b) == Touch }

// CollinearOverlap reports whether a and b are collinear and their common
// part has positive length.
func CollinearOverlap(a, b Segment) bool { return Classify(a, b) == Overlap }

// PointToSegmentDistance returns the Euclidean distance from p to the
// closest point of s. For a degenerate s this is the distance to s.A.
func PointToSegmentDistance(p Point, s Segment) float64 {
	return planar.DistanceFromSegment(s.A, s.B, p)
}

// side returns -1, 0 or +1 depending on which side of the line through s
// the point p lies. Distances within Epsilon count as on the line.
func side(s Segment, p Point) int {
	l := s.Length()
	d := cross(sub(s.B, s.A), sub(p, s.A)) / l
	switch {
	case d > Epsilon:
		return 1
	case d < -Epsilon:
		return -1
	default:
		return 0
	}
}

// within reports whether p, already known to be on the line through s,
// projects into the closed extent of s.
func within(s Segment, p Point) bool {
	ab := sub(s.B, s.A)
	l2 := dot(ab, ab)
	u := dot(sub(p, s.A), ab) / l2
	tol := Epsilon / math.Sqrt(l2)

	return u >= -tol && u <= 1+tol
}

// collinearRelation measures the common extent of two collinear segments
// along the direction of s.
func collinearRelation(s, t Segment) Relation {
	l := s.Length()
	dir := scale(sub(s.B, s.A), 1/l)
	ta := dot(sub(t.A, s.A), dir)
	tb := dot(sub(t.B, s.A), dir)
	lo, hi := math.Min(ta, tb), math.Max(ta, tb)

	common := math.Min(l, hi) - math.Max(0, lo)
	switch {
	case common > Epsilon:
		return Overlap
	case common >= -Epsilon:
		return Touch
	default:
		return Disjoint
	}
}

func sub(a, b Point) Point { return Point{a[0] - b[0], a[1] - b[1]} }
func add(a, b Point) Point { return Point{a[0] + b[0], a[1] + b[1]} }
func scale(a Point, k float64) Point { return Point{a[0] * k, a[1] * k} }
func dot(a, b Point) float64 { return a[0]*b[0] + a[1]*b[1] }
func cross(a, b Point) float64 { return a[0]*b[1] - a[1]*b[0] }
func dist(a, b Point) float64 { return math.Hypot(a[0]-b[0], a[1]-b[1]) }
