package locate

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/keyray"
)

// parallelTolerance is the smallest |sin| between two strip normals that
// still gives a usable parallelogram.
const parallelTolerance = 1e-6

// Strip is the band {p : Lo ≤ Normal·p ≤ Hi}.
type Strip struct {
	Normal geometry.Point
	Lo, Hi float64
}

// NewStrip returns the band between the two rays of a key pair.
func NewStrip(p keyray.Pair) (Strip, error) {
	n, err := geometry.LeftNormal(p.RayA.A, p.RayA.B)
	if err != nil {
		return Strip{}, err
	}
	a := geometry.Dot(n, p.RayA.A)
	b := geometry.Dot(n, p.RayB.A)

	return Strip{Normal: n, Lo: math.Min(a, b), Hi: math.Max(a, b)}, nil
}

// Width is the distance between the two bounding lines.
func (s Strip) Width() float64 { return s.Hi - s.Lo }

// Contains reports whether p lies in the closed band.
func (s Strip) Contains(p geometry.Point) bool {
	v := geometry.Dot(s.Normal, p)
	return v >= s.Lo-geometry.Epsilon && v <= s.Hi+geometry.Epsilon
}

// Region is the convex intersection of strips, as a vertex ring.
type Region []geometry.Point

// Centroid returns the area centroid of r, or the vertex mean when r has
// no area.
func (r Region) Centroid() geometry.Point {
	var a, cx, cy float64
	for i := range r {
		p, q := r[i], r[(i+1)%len(r)]
		w := p[0]*q[1] - q[0]*p[1]
		a += w
		cx += (p[0] + q[0]) * w
		cy += (p[1] + q[1]) * w
	}
	if scalar.EqualWithinAbs(a, 0, geometry.Epsilon) {
		var m geometry.Point
		for _, p := range r {
			m[0] += p[0]
			m[1] += p[1]
		}
		return geometry.Point{m[0] / float64(len(r)), m[1] / float64(len(r))}
	}

	return geometry.Point{cx / (3 * a), cy / (3 * a)}
}

// Diameter returns the largest distance between two vertices of r.
func (r Region) Diameter() float64 {
	var d float64
	for i := range r {
		for j := i + 1; j < len(r); j++ {
			d = math.Max(d, geometry.Distance(r[i], r[j]))
		}
	}
	return d
}

// Parallelogram intersects two strips. ok is false for parallel strips.
func Parallelogram(s1, s2 Strip) (Region, bool) {
	n1, n2 := s1.Normal, s2.Normal
	det := n1[0]*n2[1] - n1[1]*n2[0]
	if scalar.EqualWithinAbs(det, 0, parallelTolerance) {
		return nil, false
	}
	corner := func(a, b float64) geometry.Point {
		return geometry.Point{(a*n2[1] - b*n1[1]) / det, (b*n1[0] - a*n2[0]) / det}
	}

	return Region{
		corner(s1.Lo, s2.Lo),
		corner(s1.Hi, s2.Lo),
		corner(s1.Hi, s2.Hi),
		corner(s1.Lo, s2.Hi),
	}, true
}

// Clip intersects r with the strip s. The result is empty when they do not
// meet.
func (r Region) Clip(s Strip) Region {
	out := clipHalfPlane(r, s.Normal, s.Lo, 1)
	return clipHalfPlane(out, s.Normal, s.Hi, -1)
}

// Project returns the range of n·p over the vertices of r.
func (r Region) Project(n geometry.Point) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range r {
		v := geometry.Dot(n, p)
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	return lo, hi
}

// IntersectStrips intersects three strips. ok is false when the first two
// are parallel or the third misses their parallelogram.
func IntersectStrips(s1, s2, s3 Strip) (Region, bool) {
	par, ok := Parallelogram(s1, s2)
	if !ok {
		return nil, false
	}
	r := par.Clip(s3)
	if len(r) == 0 {
		return nil, false
	}
	return r, true
}

// clipHalfPlane keeps the part of poly where sign·(n·p - c) ≥ 0.
func clipHalfPlane(poly Region, n geometry.Point, c, sign float64) Region {
	if len(poly) == 0 {
		return nil
	}
	f := func(p geometry.Point) float64 { return sign * (geometry.Dot(n, p) - c) }

	out := make(Region, 0, len(poly)+1)
	for i := range poly {
		cur, next := poly[i], poly[(i+1)%len(poly)]
		fc, fn := f(cur), f(next)
		if fc >= 0 {
			out = append(out, cur)
		}
		if (fc >= 0) != (fn >= 0) {
			t := fc / (fc - fn)
			out = append(out, geometry.Point{
				cur[0] + t*(next[0]-cur[0]),
				cur[1] + t*(next[1]-cur[1]),
			})
		}
	}

	return out
}
