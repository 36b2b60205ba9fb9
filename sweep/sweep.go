package sweep

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/oracle"
	"github.com/katalvlaran/kvis/rays"
)

// ctxCheckEvery is how many rays are measured between context checks.
const ctxCheckEvery = 1024

// Sweep measures every ray in order. The returned slice always has
// len(rs) entries unless ctx is cancelled, in which case it is nil and the
// error is ctx.Err(). Invalid rays yield an *InvalidMeasurementError next
// to the complete slice.
//
// Complexity: O(len(rs)) oracle queries.
func Sweep(ctx context.Context, rs []geometry.Segment, o oracle.Oracle) ([]oracle.Measurement, error) {
	out := make([]oracle.Measurement, len(rs))
	for i, r := range rs {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		out[i] = o.Query(r)
	}

	if bad := invalidIndices(out); len(bad) > 0 {
		return out, &InvalidMeasurementError{Family: NoFamily, Indices: bad}
	}

	return out, nil
}

// SweepFamily is Sweep over f.Rays, with the family identity attached to
// any InvalidMeasurementError.
func SweepFamily(ctx context.Context, f rays.Family, o oracle.Oracle) (Result, error) {
	ms, err := Sweep(ctx, f.Rays, o)
	var inv *InvalidMeasurementError
	if errors.As(err, &inv) {
		inv.Family = f.Index
		inv.Angle = f.Angle
	}

	return Result{Family: f, Measurements: ms}, err
}

// SweepAll sweeps every family on at most workers goroutines (workers <= 0
// means GOMAXPROCS) and returns the results in input order.
//
// Invalid measurements never stop the other sweeps: the results are
// complete and the returned error joins one *InvalidMeasurementError per
// affected family. Context cancellation aborts the pool and returns
// ctx.Err() with nil results.
func SweepAll(ctx context.Context, families []rays.Family, o oracle.Oracle, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(families))
	invalid := make([]error, len(families))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range families {
		i := i
		g.Go(func() error {
			res, err := SweepFamily(gctx, families[i], fork(o))
			var inv *InvalidMeasurementError
			switch {
			case errors.As(err, &inv):
				invalid[i] = inv
			case err != nil:
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, errors.Join(invalid...)
}

// fork hands out an exclusive copy of o when it supports one.
func fork(o oracle.Oracle) oracle.Oracle {
	if f, ok := o.(oracle.Forker); ok {
		return f.Fork()
	}
	return o
}

func invalidIndices(ms []oracle.Measurement) []int {
	var bad []int
	for i, m := range ms {
		if !m.IsValid() {
			bad = append(bad, i)
		}
	}
	return bad
}
