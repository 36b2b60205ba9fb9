package locate

import (
	"context"
	"math"
	"runtime"
	"sort"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/keyray"
	"github.com/katalvlaran/kvis/rays"
)

// familyStrips are the strips of one family with their source pairs,
// sorted by Lo.
type familyStrips struct {
	strips []Strip
	pairs  []keyray.Pair
}

func stripsOf(fp keyray.FamilyPairs) familyStrips {
	var fs familyStrips
	for _, p := range fp.Pairs {
		s, err := NewStrip(p)
		if err != nil {
			continue // degenerate ray, no band
		}
		fs.strips = append(fs.strips, s)
		fs.pairs = append(fs.pairs, p)
	}
	sort.Sort(byLo(fs))
	return fs
}

type byLo familyStrips

func (b byLo) Len() int           { return len(b.strips) }
func (b byLo) Less(i, j int) bool { return b.strips[i].Lo < b.strips[j].Lo }
func (b byLo) Swap(i, j int) {
	b.strips[i], b.strips[j] = b.strips[j], b.strips[i]
	b.pairs[i], b.pairs[j] = b.pairs[j], b.pairs[i]
}

// LocalizeTriple triangulates vertex candidates from one triple of
// families. Candidate IDs are left zero; LocalizeAll numbers them. Each
// candidate leans like the first non-vertical family of the triple.
//
// Steps:
//  1. Build strips per family; sort the third family's strips by Lo.
//  2. For each (pair1, pair2): intersect their strips into a parallelogram,
//     skip parallel combinations.
//  3. Binary-search the third family for strips overlapping the
//     parallelogram's projection; clip against each.
//  4. Keep regions no wider than MaxDiameterFactor strip widths whose
//     centroid lies within BoundsTolerance of rect.
//
// Complexity: O(k1·k2·(log k3 + m)) for k_i pairs per family and m strips
// of the third family overlapping each parallelogram.
func LocalizeTriple(f1, f2, f3 keyray.FamilyPairs, rect orb.Bound, opts Options) []Candidate {
	s1, s2, s3 := stripsOf(f1), stripsOf(f2), stripsOf(f3)
	if len(s1.strips) == 0 || len(s2.strips) == 0 || len(s3.strips) == 0 {
		return nil
	}
	n3 := s3.strips[0].Normal
	lead := leadOf(f1, f2, f3)
	side := rays.SideOf([]float64{f1.Angle, f2.Angle, f3.Angle}[lead])

	var out []Candidate
	for i, a := range s1.strips {
		for j, b := range s2.strips {
			par, ok := Parallelogram(a, b)
			if !ok {
				continue
			}
			lo, hi := par.Project(n3)
			k := sort.Search(len(s3.strips), func(k int) bool { return s3.strips[k].Hi >= lo })
			for ; k < len(s3.strips) && s3.strips[k].Lo <= hi; k++ {
				c := s3.strips[k]
				region := par.Clip(c)
				if len(region) == 0 {
					continue
				}
				width := math.Max(a.Width(), math.Max(b.Width(), c.Width()))
				if region.Diameter() > opts.MaxDiameterFactor*width {
					continue
				}
				p := region.Centroid()
				if !geometry.InRect(p, rect, opts.BoundsTolerance) {
					continue
				}
				out = append(out, Candidate{
					Point:    p,
					Families: [3]int{f1.Family, f2.Family, f3.Family},
					Pairs:    [3]keyray.Pair{s1.pairs[i], s2.pairs[j], s3.pairs[k]},
					Lead:     lead,
					Side:     side,
				})
			}
		}
	}

	return out
}

// leadOf returns the first family of the triple that is not vertical. Three
// distinct angles hold at most one vertical family.
func leadOf(fs ...keyray.FamilyPairs) int {
	for i, f := range fs {
		if rays.SideOf(f.Angle) != rays.Vertical {
			return i
		}
	}
	return 0
}

// LocalizeAll runs LocalizeTriple over every window of three consecutive
// families (wrapping; a single window when exactly three are given) and
// returns the candidates in window order with IDs 0..n-1.
func LocalizeAll(ctx context.Context, fams []keyray.FamilyPairs, rect orb.Bound, opts Options) ([]Candidate, error) {
	n := len(fams)
	if n < 3 {
		return nil, ErrTooFewFamilies
	}
	windows := n
	if n == 3 {
		windows = 1
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	perWindow := make([][]Candidate, windows)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for w := 0; w < windows; w++ {
		w := w
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perWindow[w] = LocalizeTriple(fams[w], fams[(w+1)%n], fams[(w+2)%n], rect, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Candidate
	for _, cs := range perWindow {
		for _, c := range cs {
			c.ID = len(out)
			out = append(out, c)
		}
	}

	return out, nil
}
