package scene

import (
	"math"

	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/rays"
)

// MinDist is the smallest gap RandomAny keeps between points and between a
// wall endpoint and any other wall it does not touch.
const MinDist = 1.0

// RandomAny returns a scene with n walls of arbitrary orientation.
//
// Steps:
//  1. Draw ⌈1.25·n⌉ points uniformly in the rectangle, pairwise at least
//     MinDist apart.
//  2. Join random point pairs until n walls are placed. A wall is rejected
//     when it overlaps another wall collinearly, or when an endpoint of
//     either lies closer than MinDist to the other without touching it.
//     The frame takes part in the check.
//
// Error Conditions:
//   - ErrBadSize: bad rectangle.
//   - ErrTooDense: the rectangle cannot hold the points or walls.
func RandomAny(width, height float64, n int, seed int64) (Scene, error) {
	s, err := New(width, height)
	if err != nil || n <= 0 {
		return s, err
	}
	rng := rays.NewRNG(seed)

	// 1. Points.
	want := int(math.Ceil(1.25 * float64(n)))
	if want < 2 {
		want = 2
	}
	var pts []geometry.Point
	for tries := 0; len(pts) < want; tries++ {
		if tries > maxAttempts*want {
			return Scene{}, ErrTooDense
		}
		p := geometry.Point{rng.Float64() * width, rng.Float64() * height}
		if !farFromAll(p, pts, MinDist) {
			continue
		}
		pts = append(pts, p)
	}

	// 2. Walls.
	for tries := 0; len(s.Walls) < n; tries++ {
		if tries > maxAttempts*n {
			return Scene{}, ErrTooDense
		}
		i := rng.Intn(len(pts))
		j := rng.Intn(len(pts) - 1)
		if j >= i {
			j++
		}
		w := geometry.Segment{A: pts[i], B: pts[j]}
		if legalAny(w, s.Segments(), MinDist) {
			s.Walls = append(s.Walls, w)
		}
	}

	return s, nil
}

// RandomStraight returns a scene with n axis-aligned walls, alternately
// horizontal and vertical, each at least minWall long.
//
// A wall spans a random length up to half the rectangle side. Endpoints
// closer than minWall to the frame are snapped onto it when within
// minWall/2, and pulled back to minWall otherwise. Every endpoint keeps at
// least minWall from every other internal wall, and no wall runs along the
// frame.
func RandomStraight(width, height float64, n int, minWall float64, seed int64) (Scene, error) {
	s, err := New(width, height)
	if err != nil || n <= 0 {
		return s, err
	}
	if !positive(minWall) {
		return Scene{}, ErrTooDense
	}
	rng := rays.NewRNG(seed)

	for tries := 0; len(s.Walls) < n; tries++ {
		if tries > maxAttempts*n {
			return Scene{}, ErrTooDense
		}
		var w geometry.Segment
		if len(s.Walls)%2 == 0 {
			l := rng.Float64() * width / 2
			x := rng.Float64() * (width - l)
			y := rng.Float64() * height
			w = geometry.Seg(x, y, x+l, y)
		} else {
			l := rng.Float64() * height / 2
			x := rng.Float64() * width
			y := rng.Float64() * (height - l)
			w = geometry.Seg(x, y, x, y+l)
		}
		w.A = snap(w.A, width, height, minWall)
		w.B = snap(w.B, width, height, minWall)

		if w.Length() >= minWall && !alongFrame(w, s.Frame) && clearOf(w, s.Walls, minWall) {
			s.Walls = append(s.Walls, w)
		}
	}

	return s, nil
}

func farFromAll(p geometry.Point, pts []geometry.Point, d float64) bool {
	for _, q := range pts {
		if geometry.Distance(p, q) < d {
			return false
		}
	}
	return true
}

// legalAny is the RandomAny wall check; touching (distance 0) is allowed.
func legalAny(w geometry.Segment, existing []geometry.Segment, d float64) bool {
	tooClose := func(p geometry.Point, s geometry.Segment) bool {
		dist := geometry.PointToSegmentDistance(p, s)
		return dist > 0 && dist < d
	}
	for _, s := range existing {
		if tooClose(s.A, w) || tooClose(s.B, w) || tooClose(w.A, s) || tooClose(w.B, s) ||
			geometry.CollinearOverlap(s, w) {
			return false
		}
	}
	return true
}

// clearOf is the RandomStraight wall check; touching is not allowed.
func clearOf(w geometry.Segment, existing []geometry.Segment, d float64) bool {
	for _, s := range existing {
		if geometry.PointToSegmentDistance(s.A, w) < d || geometry.PointToSegmentDistance(s.B, w) < d ||
			geometry.PointToSegmentDistance(w.A, s) < d || geometry.PointToSegmentDistance(w.B, s) < d {
			return false
		}
	}
	return true
}

func alongFrame(w geometry.Segment, frame []geometry.Segment) bool {
	for _, f := range frame {
		if geometry.CollinearOverlap(w, f) {
			return true
		}
	}
	return false
}

// snap moves a point near the frame onto it or away from it.
func snap(p geometry.Point, width, height, d float64) geometry.Point {
	p[0] = snapAxis(p[0], width, d)
	p[1] = snapAxis(p[1], height, d)
	return p
}

func snapAxis(v, hi, d float64) float64 {
	switch {
	case v < d/2:
		return 0
	case v < d:
		return d
	case v > hi-d/2:
		return hi
	case v > hi-d:
		return hi - d
	}
	return v
}
