package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// LineIntersection intersects the infinite line through p1,p2 with the
// infinite line through q1,q2. ok is false when either line is degenerate
// or the two are parallel.
func LineIntersection(p1, p2, q1, q2 Point) (pt Point, ok bool) {
	r := sub(p2, p1)
	s := sub(q2, q1)
	lr, ls := math.Hypot(r[0], r[1]), math.Hypot(s[0], s[1])
	if lr < Epsilon || ls < Epsilon {
		return Point{}, false
	}

	det := cross(r, s)
	// sin of the angle between the lines
	if math.Abs(det)/(lr*ls) < Epsilon {
		return Point{}, false
	}
	t := cross(sub(q1, p1), s) / det

	return add(p1, scale(r, t)), true
}

// ClipLine clips the infinite line through a and b to the rectangle r
// (Liang-Barsky with an unbounded parameter range). The returned segment is
// oriented like a->b. ok is false when the line misses r, only grazes a
// corner, or a and b coincide. A line running along an edge of r is kept.
func ClipLine(a, b Point, r orb.Bound) (Segment, bool) {
	d := sub(b, a)
	if math.Hypot(d[0], d[1]) < Epsilon {
		return Segment{}, false
	}

	tmin, tmax := math.Inf(-1), math.Inf(1)
	checks := [4][2]float64{
		{-d[0], a[0] - r.Min[0]},
		{d[0], r.Max[0] - a[0]},
		{-d[1], a[1] - r.Min[1]},
		{d[1], r.Max[1] - a[1]},
	}
	for _, c := range checks {
		p, q := c[0], c[1]
		if math.Abs(p) < Epsilon {
			// parallel to this edge
			if q < -Epsilon {
				return Segment{}, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			tmin = math.Max(tmin, t)
		} else {
			tmax = math.Min(tmax, t)
		}
	}
	if tmin > tmax {
		return Segment{}, false
	}

	clipped := Segment{A: add(a, scale(d, tmin)), B: add(a, scale(d, tmax))}
	if clipped.Degenerate() {
		return Segment{}, false
	}

	return clipped, true
}

// Offset returns the line through a,b shifted by dist along its left-hand
// unit normal (negative dist shifts to the right).
func Offset(a, b Point, dist float64) (Point, Point, error) {
	n, err := LeftNormal(a, b)
	if err != nil {
		return Point{}, Point{}, err
	}
	shift := scale(n, dist)

	return add(a, shift), add(b, shift), nil
}

// LeftNormal returns the unit vector perpendicular to a->b, rotated
// counter-clockwise.
func LeftNormal(a, b Point) (Point, error) {
	d := sub(b, a)
	l := math.Hypot(d[0], d[1])
	if l < Epsilon {
		return Point{}, ErrDegenerate
	}

	return Point{-d[1] / l, d[0] / l}, nil
}

// Dot returns the dot product of a and b taken as vectors.
func Dot(a, b Point) float64 { return dot(a, b) }

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 { return planar.Distance(a, b) }

// Rect returns the bound [0,width]x[0,height].
func Rect(width, height float64) orb.Bound {
	return orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{width, height}}
}

// InRect reports whether p lies inside r grown by tol on every side.
func InRect(p Point, r orb.Bound, tol float64) bool {
	return p[0] >= r.Min[0]-tol && p[0] <= r.Max[0]+tol &&
		p[1] >= r.Min[1]-tol && p[1] <= r.Max[1]+tol
}
