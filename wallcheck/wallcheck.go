package wallcheck

import (
	"errors"
	"math"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/oracle"
)

// ErrNoProbes is returned when the probe rays cannot be built: the
// endpoints coincide or a shifted line misses the rectangle.
var ErrNoProbes = errors.New("wallcheck: cannot build probe rays")

// insetSlope scales the inset of a station with its distance from the
// boundary, so that a small error in the estimated endpoints moves the
// crossing point less than the inset.
const insetSlope = 0.25

// Station indices into Probes.Internal and Reading.Internal.
const (
	Near1 = 0 // station next to p1
	Near2 = 1 // station next to p2
)

// Probes are the rays of one existence test: two external rays shared by
// both stations, and per station two internal rays that cross the
// candidate line just inside one endpoint.
//
// Internal[s][k] starts at the boundary point of External[k] on the side of
// station s (A for Near1, B for Near2).
type Probes struct {
	External [2]geometry.Segment
	Internal [2][2]geometry.Segment
	// Insets are the distances from p1 and p2 to the station crossings.
	Insets [2]float64
}

// Reading holds the oracle's answers for a Probes set.
type Reading struct {
	External [2]oracle.Measurement
	Internal [2][2]oracle.Measurement
}

// Valid reports whether all six measurements carry a count.
func (r Reading) Valid() bool {
	if !r.External[0].IsValid() || !r.External[1].IsValid() {
		return false
	}
	for _, st := range r.Internal {
		if !st[0].IsValid() || !st[1].IsValid() {
			return false
		}
	}
	return true
}

// Balanced applies the flux-balance test at both stations. An invalid
// reading is never balanced.
func (r Reading) Balanced() bool {
	if !r.Valid() {
		return false
	}
	e := r.External[0] + r.External[1] + 2
	return e == r.Internal[Near1][0]+r.Internal[Near1][1] &&
		e == r.Internal[Near2][0]+r.Internal[Near2][1]
}

// BuildProbes constructs the probe rays for the candidate wall p1p2 inside
// rect, with the external rays offset by offset.
//
// The station next to p1 crosses the candidate line at p1 + inset·u, the
// one next to p2 at p2 − inset·u, where u is the unit direction p1→p2 and
//
//	inset = min(|p1p2|/4, offset + 0.25·s)
//
// with s the distance from the station's boundary point to the endpoint's
// foot on the external line.
//
// Error Conditions:
//   - ErrNoProbes: p1 == p2, offset ≤ 0, or any probe misses rect.
func BuildProbes(p1, p2 geometry.Point, offset float64, rect orb.Bound) (Probes, error) {
	if offset <= 0 {
		return Probes{}, ErrNoProbes
	}
	a1, b1, err := geometry.Offset(p1, p2, offset)
	if err != nil {
		return Probes{}, ErrNoProbes
	}
	a2, b2, _ := geometry.Offset(p1, p2, -offset)

	var pr Probes
	var ok bool
	if pr.External[0], ok = geometry.ClipLine(a1, b1, rect); !ok {
		return Probes{}, ErrNoProbes
	}
	if pr.External[1], ok = geometry.ClipLine(a2, b2, rect); !ok {
		return Probes{}, ErrNoProbes
	}

	l := geometry.Distance(p1, p2)
	u := orb.Point{(p2[0] - p1[0]) / l, (p2[1] - p1[1]) / l}
	pr.Insets[Near1] = math.Min(l/4, offset+insetSlope*geometry.Distance(pr.External[0].A, a1))
	pr.Insets[Near2] = math.Min(l/4, offset+insetSlope*geometry.Distance(pr.External[0].B, b1))

	cross := [2]geometry.Point{
		{p1[0] + pr.Insets[Near1]*u[0], p1[1] + pr.Insets[Near1]*u[1]},
		{p2[0] - pr.Insets[Near2]*u[0], p2[1] - pr.Insets[Near2]*u[1]},
	}
	for s := range pr.Internal {
		for k := range pr.Internal[s] {
			from := pr.External[k].A
			if s == Near2 {
				from = pr.External[k].B
			}
			if pr.Internal[s][k], ok = geometry.ClipLine(from, cross[s], rect); !ok {
				return Probes{}, ErrNoProbes
			}
		}
	}

	return pr, nil
}

// Measure queries all six probes.
func (p Probes) Measure(o oracle.Oracle) Reading {
	var r Reading
	for k := 0; k < 2; k++ {
		r.External[k] = o.Query(p.External[k])
		r.Internal[Near1][k] = o.Query(p.Internal[Near1][k])
		r.Internal[Near2][k] = o.Query(p.Internal[Near2][k])
	}
	return r
}

// SegmentExists reports whether a wall joins p1 and p2 in the
// width×height rectangle measured by o, probing at offset pitch.
func SegmentExists(p1, p2 geometry.Point, pitch, width, height float64, o oracle.Oracle) bool {
	pr, err := BuildProbes(p1, p2, pitch, geometry.Rect(width, height))
	if err != nil {
		return false
	}
	return pr.Measure(o).Balanced()
}

// OnFrameSide reports whether p and q both lie within tol of the same side
// of rect.
func OnFrameSide(p, q geometry.Point, rect orb.Bound, tol float64) bool {
	near := func(a, b float64) bool { return a-b < tol && b-a < tol }
	for axis := 0; axis < 2; axis++ {
		if near(p[axis], rect.Min[axis]) && near(q[axis], rect.Min[axis]) {
			return true
		}
		if near(p[axis], rect.Max[axis]) && near(q[axis], rect.Max[axis]) {
			return true
		}
	}
	return false
}
