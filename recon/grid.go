package recon

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/katalvlaran/kvis/locate"
	"github.com/katalvlaran/kvis/oracle"
	"github.com/katalvlaran/kvis/rays"
	"github.com/katalvlaran/kvis/scene"
	"github.com/katalvlaran/kvis/sweep"
)

// ErrGridMismatch is returned when the labels read from a grid building do
// not pair into runs.
var ErrGridMismatch = errors.New("recon: grid labels do not form runs")

// GridResult is the outcome of ReconstructGrid.
type GridResult struct {
	RunID uuid.UUID
	Grid  *scene.Grid
	// Labels[x][y] is the direction read at lattice point (x, y).
	Labels [][]locate.Direction
	// Rays counts the measured rays of both families.
	Rays int
}

// ReconstructGrid reads a width×height building whose walls lie on the unit
// grid, measured through q. Only WithWorkers, WithLogger and WithVerbose
// apply.
//
// Steps:
//  1. Sweep the two rays.GridFamilies.
//  2. Label each lattice point from the jumps of the rays bracketing it
//     (locate.ClassifyDirection); an unclassifiable pattern reads as None.
//  3. Row by row, a right label opens a horizontal run and the next left
//     label closes it; column by column, up opens and down closes.
//
// Error Conditions:
//   - rays.ErrBadDimensions: width or height not positive.
//   - *sweep.InvalidMeasurementError (joined): a ray ran along a wall.
//   - ErrGridMismatch: a run closes before it opens.
//   - ctx.Err() on cancellation.
//
// Complexity: O(W·H) oracle queries.
func ReconstructGrid(ctx context.Context, width, height int, q oracle.Oracle, opts ...Option) (*GridResult, error) {
	o := gatherOptions(opts...)
	res := &GridResult{RunID: uuid.New()}
	logf := o.logf(res.RunID)

	// 1. Sweep.
	right, left, err := rays.GridFamilies(width, height)
	if err != nil {
		return nil, err
	}
	sweeps, err := sweep.SweepAll(ctx, []rays.Family{right, left}, q, o.workers)
	if err != nil {
		return nil, err
	}
	mr, ml := sweeps[0].Measurements, sweeps[1].Measurements
	res.Rays = len(mr) + len(ml)
	logf("grid %d×%d: %d rays", width, height, res.Rays)

	// 2. Label lattice points.
	res.Labels = make([][]locate.Direction, width+1)
	for x := range res.Labels {
		res.Labels[x] = make([]locate.Direction, height+1)
		for y := range res.Labels[x] {
			r, l := rays.GridRayIndices(x, y, height)
			d, err := locate.ClassifyDirection(int(mr[r]), int(mr[r+1]), int(ml[l]), int(ml[l+1]))
			if err == nil {
				res.Labels[x][y] = d
			}
		}
	}

	// 3. Assemble runs.
	if res.Grid, err = scene.NewGrid(width, height); err != nil {
		return nil, err
	}
	for y := 0; y <= height; y++ {
		open := -1
		for x := 0; x <= width; x++ {
			switch d := res.Labels[x][y]; {
			case d.Has(locate.Right):
				open = x
			case d.Has(locate.Left):
				if open < 0 {
					return nil, fmt.Errorf("%w: left end at (%d, %d) without a start", ErrGridMismatch, x, y)
				}
				for i := open; i < x; i++ {
					res.Grid.SetHorizontal(i, y, true)
				}
				open = -1
			}
		}
	}
	for x := 0; x <= width; x++ {
		open := -1
		for y := 0; y <= height; y++ {
			switch d := res.Labels[x][y]; {
			case d.Has(locate.Up):
				open = y
			case d.Has(locate.Down):
				if open < 0 {
					return nil, fmt.Errorf("%w: top end at (%d, %d) without a start", ErrGridMismatch, x, y)
				}
				for j := open; j < y; j++ {
					res.Grid.SetVertical(x, j, true)
				}
				open = -1
			}
		}
	}
	logf("grid %d×%d: %d rooms", width, height, len(res.Grid.Rooms()))

	return res, nil
}
