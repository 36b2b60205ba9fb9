package wallcheck

import (
	"context"
	"runtime"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/oracle"
)

// Pair is a confirmed wall between points I and J, I < J.
type Pair struct {
	I, J int
}

// Options configures a Tester.
//   - Offset: distance of the external probes from the candidate line.
//   - FrameTolerance: pairs within this distance of one frame side are
//     skipped (0 tests every pair).
//   - Admit: when set, only pairs (i, j) it accepts are tested.
//   - Workers: goroutines used by Confirm (≤ 0 means GOMAXPROCS).
type Options struct {
	Offset         float64
	FrameTolerance float64
	Admit          func(i, j int) bool
	Workers        int
}

// Tester runs existence tests inside one rectangle against one oracle.
type Tester struct {
	rect orb.Bound
	o    oracle.Oracle
	opts Options
}

// NewTester returns a Tester for rect measured by o.
func NewTester(rect orb.Bound, o oracle.Oracle, opts Options) *Tester {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Tester{rect: rect, o: o, opts: opts}
}

// Test reports whether a wall joins p1 and p2.
func (t *Tester) Test(p1, p2 geometry.Point) bool {
	return t.test(p1, p2, t.o)
}

func (t *Tester) test(p1, p2 geometry.Point, o oracle.Oracle) bool {
	pr, err := BuildProbes(p1, p2, t.opts.Offset, t.rect)
	if err != nil {
		return false
	}
	return pr.Measure(o).Balanced()
}

// Confirm tests every unordered pair of points and returns the confirmed
// pairs in (I, J) lexicographic order. Pairs are split into contiguous
// chunks, one per worker, each worker measuring through its own fork of
// the oracle. The outcome does not depend on the worker count.
//
// Complexity: O(n²) tests, six oracle queries each.
func (t *Tester) Confirm(ctx context.Context, points []geometry.Point) ([]Pair, error) {
	// 1. Enumerate candidate pairs.
	var pairs []Pair
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if t.opts.FrameTolerance > 0 && OnFrameSide(points[i], points[j], t.rect, t.opts.FrameTolerance) {
				continue
			}
			if t.opts.Admit != nil && !t.opts.Admit(i, j) {
				continue
			}
			pairs = append(pairs, Pair{I: i, J: j})
		}
	}
	if len(pairs) == 0 {
		return nil, ctx.Err()
	}

	// 2. Test chunks in parallel; each slot is written by one goroutine.
	ok := make([]bool, len(pairs))
	workers := min(t.opts.Workers, len(pairs))
	chunk := (len(pairs) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(pairs); lo += chunk {
		lo := lo
		hi := min(lo+chunk, len(pairs))
		g.Go(func() error {
			o := fork(t.o)
			for k := lo; k < hi; k++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				ok[k] = t.test(points[pairs[k].I], points[pairs[k].J], o)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// 3. Keep the confirmed ones in enumeration order.
	var out []Pair
	for k, p := range pairs {
		if ok[k] {
			out = append(out, p)
		}
	}

	return out, nil
}

// PruneChains drops every pair A–B for which some point C lies strictly
// between A and B within tol of the segment and A–C or C–B is confirmed.
// A wall never passes through another vertex on its own line, so such an
// A–B either spans two collinear walls or runs past the end of one. The
// result keeps the input order.
func PruneChains(points []geometry.Point, pairs []Pair, tol float64) []Pair {
	has := make(map[Pair]bool, len(pairs))
	for _, p := range pairs {
		has[norm(p)] = true
	}

	var out []Pair
	for _, p := range pairs {
		if !chained(points, p, has, tol) {
			out = append(out, p)
		}
	}

	return out
}

func chained(points []geometry.Point, p Pair, has map[Pair]bool, tol float64) bool {
	ab := geometry.Segment{A: points[p.I], B: points[p.J]}
	for c := range points {
		if c == p.I || c == p.J {
			continue
		}
		if !has[norm(Pair{p.I, c})] && !has[norm(Pair{c, p.J})] {
			continue
		}
		pc := points[c]
		if geometry.Distance(pc, ab.A) < tol || geometry.Distance(pc, ab.B) < tol {
			continue
		}
		if geometry.PointToSegmentDistance(pc, ab) < tol {
			return true
		}
	}
	return false
}

func norm(p Pair) Pair {
	if p.I > p.J {
		p.I, p.J = p.J, p.I
	}
	return p
}

// fork hands out an exclusive copy of o when it supports one.
func fork(o oracle.Oracle) oracle.Oracle {
	if f, ok := o.(oracle.Forker); ok {
		return f.Fork()
	}
	return o
}
