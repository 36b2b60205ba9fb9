// Package recon_test contains end-to-end tests for the reconstruction
// pipeline: scenario rooms (single walls, corners, gaps, T-junctions),
// worker-count determinism, invalid measurements and option errors.
package recon_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/merge"
	"github.com/katalvlaran/kvis/oracle"
	"github.com/katalvlaran/kvis/rays"
	"github.com/katalvlaran/kvis/recon"
	"github.com/katalvlaran/kvis/sweep"
)

func frame(w, h float64) []geometry.Segment {
	return []geometry.Segment{
		geometry.Seg(0, 0, w, 0),
		geometry.Seg(w, 0, w, h),
		geometry.Seg(w, h, 0, h),
		geometry.Seg(0, h, 0, 0),
	}
}

// assertWalls checks that got and want have the same size and every wanted
// wall has a reconstructed counterpart, in either orientation, whose
// endpoints lie within tol.
func assertWalls(t *testing.T, want, got []geometry.Segment, tol float64) {
	t.Helper()
	require.Len(t, got, len(want), "got %v", got)
	for _, w := range want {
		found := false
		for _, g := range got {
			fwd := geometry.Distance(w.A, g.A) < tol && geometry.Distance(w.B, g.B) < tol
			rev := geometry.Distance(w.A, g.B) < tol && geometry.Distance(w.B, g.A) < tol
			if fwd || rev {
				found = true
				break
			}
		}
		assert.True(t, found, "wall %v not reconstructed in %v", w, got)
	}
}

//----------------------------------------------------------------------------//
// End-to-end scenarios
//----------------------------------------------------------------------------//

type ScenarioSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *ScenarioSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *ScenarioSuite) reconstruct(w, h float64, walls ...geometry.Segment) *recon.Result {
	return s.reconstructWith(w, h, walls)
}

func (s *ScenarioSuite) reconstructWith(w, h float64, walls []geometry.Segment, opts ...recon.Option) *recon.Result {
	res, err := recon.Reconstruct(s.ctx, w, h, append(frame(w, h), walls...), opts...)
	s.Require().NoError(err)
	s.Require().NotNil(res)
	return res
}

func (s *ScenarioSuite) TestEmptyRoom() {
	res := s.reconstruct(5, 5)
	s.Empty(res.Segments)
	s.NotEmpty(res.Vertices, "frame corners are still localized")
}

func (s *ScenarioSuite) TestSingleWall() {
	wall := geometry.Seg(2, 3, 6, 3)
	res := s.reconstruct(8, 10, wall)
	assertWalls(s.T(), []geometry.Segment{wall}, res.Segments, res.Pitch)
}

func (s *ScenarioSuite) TestWallTouchingFrame() {
	wall := geometry.Seg(0, 5, 4, 5)
	res := s.reconstruct(8, 10, wall)
	assertWalls(s.T(), []geometry.Segment{wall}, res.Segments, res.Pitch)
}

func (s *ScenarioSuite) TestLShape() {
	walls := []geometry.Segment{geometry.Seg(3, 2, 3, 7), geometry.Seg(3, 7, 8, 7)}
	res := s.reconstruct(10, 10, walls...)
	assertWalls(s.T(), walls, res.Segments, 2*res.Pitch)
}

// Two collinear walls with a gap: no segment may bridge the gap.
func (s *ScenarioSuite) TestCollinearGap() {
	walls := []geometry.Segment{geometry.Seg(1, 3, 4, 3), geometry.Seg(5, 3, 7, 3)}
	res := s.reconstruct(8, 10, walls...)
	assertWalls(s.T(), walls, res.Segments, 2*res.Pitch)
}

// A wall ending short of another wall's line: no segment may run past it.
func (s *ScenarioSuite) TestNoOvershoot() {
	walls := []geometry.Segment{geometry.Seg(2, 3, 6, 3), geometry.Seg(7, 3, 7, 8)}
	res := s.reconstruct(8, 10, walls...)
	assertWalls(s.T(), walls, res.Segments, 2*res.Pitch)
}

func (s *ScenarioSuite) TestTJunction() {
	walls := []geometry.Segment{geometry.Seg(2, 3, 6, 3), geometry.Seg(4, 3, 4, 8)}
	res := s.reconstruct(8, 10, walls...)
	assertWalls(s.T(), walls, res.Segments, 2*res.Pitch)
	s.Positive(res.Stats.LabelRejected)
}

// Without labels the T vertex splits the crossed wall in two.
func (s *ScenarioSuite) TestTJunction_WithoutLabels() {
	walls := []geometry.Segment{geometry.Seg(2, 3, 6, 3), geometry.Seg(4, 3, 4, 8)}
	res := s.reconstructWith(8, 10, walls, recon.WithLabelPruning(false))
	split := []geometry.Segment{geometry.Seg(2, 3, 4, 3), geometry.Seg(4, 3, 6, 3), geometry.Seg(4, 3, 4, 8)}
	assertWalls(s.T(), split, res.Segments, 2*res.Pitch)
	s.Zero(res.Stats.LabelRejected)
}

func (s *ScenarioSuite) TestNoFrameSegments() {
	res := s.reconstruct(8, 10, geometry.Seg(2, 3, 6, 3))
	r := geometry.Rect(8, 10)
	for _, seg := range res.Segments {
		onLeft := seg.A[0] < res.Pitch && seg.B[0] < res.Pitch
		onBottom := seg.A[1] < res.Pitch && seg.B[1] < res.Pitch
		onRight := r.Max[0]-seg.A[0] < res.Pitch && r.Max[0]-seg.B[0] < res.Pitch
		onTop := r.Max[1]-seg.A[1] < res.Pitch && r.Max[1]-seg.B[1] < res.Pitch
		s.False(onLeft || onBottom || onRight || onTop, "frame segment %v", seg)
	}
}

func TestScenarioSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("end-to-end scenarios")
	}
	suite.Run(t, new(ScenarioSuite))
}

//----------------------------------------------------------------------------//
// Determinism and oracle boundary
//----------------------------------------------------------------------------//

func TestReconstruct_WorkerCountDoesNotMatter(t *testing.T) {
	segs := append(frame(8, 10), geometry.Seg(2, 3, 6, 3))
	one, err := recon.Reconstruct(context.Background(), 8, 10, segs, recon.WithWorkers(1))
	require.NoError(t, err)
	many, err := recon.Reconstruct(context.Background(), 8, 10, segs, recon.WithWorkers(8))
	require.NoError(t, err)

	approx := cmpopts.EquateApprox(0, 1e-12)
	assert.Empty(t, cmp.Diff(one.Segments, many.Segments, approx))
	assert.Empty(t, cmp.Diff(one.Points(), many.Points(), approx))
	assert.Equal(t, one.Stats.Candidates, many.Stats.Candidates)
}

func TestReconstructWith_PlainOracle(t *testing.T) {
	segs := append(frame(8, 10), geometry.Seg(2, 3, 6, 3))
	scene := oracle.NewScene(segs, oracle.DefaultOptions())
	// A Func does not fork, so every worker shares it.
	plain := oracle.Func(func(ray geometry.Segment) oracle.Measurement {
		return oracle.CountCrossings(ray, segs, oracle.DefaultOptions())
	})

	viaScene, err := recon.ReconstructWith(context.Background(), 8, 10, scene)
	require.NoError(t, err)
	viaFunc, err := recon.ReconstructWith(context.Background(), 8, 10, plain)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(viaScene.Segments, viaFunc.Segments, cmpopts.EquateApprox(0, 1e-12)))
	assert.Positive(t, scene.Queries())
}

//----------------------------------------------------------------------------//
// Invalid measurements
//----------------------------------------------------------------------------//

// flaky returns INVALID for every ray whose foot lies in (1, 1.1).
func flaky(segs []geometry.Segment) oracle.Oracle {
	return oracle.Func(func(ray geometry.Segment) oracle.Measurement {
		if ray.A[1] == 0 && ray.A[0] > 1 && ray.A[0] < 1.1 {
			return oracle.Invalid
		}
		return oracle.CountCrossings(ray, segs, oracle.DefaultOptions())
	})
}

func TestReconstruct_InvalidBecomesDiagnostic(t *testing.T) {
	res, err := recon.ReconstructWith(context.Background(), 5, 5, flaky(frame(5, 5)))
	require.NoError(t, err)
	require.Error(t, res.Err())
	assert.ErrorIs(t, res.Err(), oracle.ErrInvalidMeasurement)

	var inv *sweep.InvalidMeasurementError
	require.True(t, errors.As(res.Err(), &inv))
	assert.NotEmpty(t, inv.Indices)
}

func TestReconstruct_StrictMeasurements(t *testing.T) {
	res, err := recon.ReconstructWith(context.Background(), 5, 5, flaky(frame(5, 5)), recon.WithStrictMeasurements(true))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, oracle.ErrInvalidMeasurement)
}

//----------------------------------------------------------------------------//
// Options and errors
//----------------------------------------------------------------------------//

func TestReconstruct_InputErrors(t *testing.T) {
	ctx := context.Background()

	_, err := recon.Reconstruct(ctx, 0, 5, nil)
	assert.ErrorIs(t, err, rays.ErrBadDimensions)

	_, err = recon.Reconstruct(ctx, 5, 5, frame(5, 5), recon.WithAngles(0.5, 1.0))
	assert.ErrorIs(t, err, recon.ErrBadAngleCount)

	_, err = recon.Reconstruct(ctx, 5, 5, frame(5, 5), recon.WithAngleCount(2))
	assert.ErrorIs(t, err, recon.ErrBadAngleCount)

	_, err = recon.Reconstruct(ctx, 5, 5, frame(5, 5), recon.WithAngles(0.5, 1.0, math.Pi))
	assert.ErrorIs(t, err, rays.ErrBadAngle)
}

func TestReconstruct_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := recon.Reconstruct(ctx, 5, 5, frame(5, 5))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { recon.WithAngleCount(0) })
	assert.Panics(t, func() { recon.WithConfidence(1) })
	assert.Panics(t, func() { recon.WithConfidence(math.NaN()) })
	assert.Panics(t, func() { recon.WithPitch(-1) })
	assert.Panics(t, func() { recon.WithPitch(math.Inf(1)) })
	assert.Panics(t, func() { recon.WithAreaPerWall(0) })
	assert.Panics(t, func() { recon.WithMergeFactor(math.NaN()) })
	assert.Panics(t, func() { recon.WithMatchFactor(0) })
	assert.Panics(t, func() { recon.WithProbeFactor(-2) })
	assert.Panics(t, func() { recon.WithBoundsTolerance(-0.1) })
	assert.NotPanics(t, func() { recon.WithBoundsTolerance(0) })
}

func TestReconstruct_ExplicitPitchAndAngles(t *testing.T) {
	angles := rays.Angles(5)
	res, err := recon.Reconstruct(context.Background(), 5, 5, frame(5, 5),
		recon.WithPitch(0.02), recon.WithAngles(angles...), recon.WithMergeMode(merge.SinglePass))
	require.NoError(t, err)
	assert.Equal(t, 0.02, res.Pitch)
	assert.Equal(t, angles, res.Angles)
	assert.Empty(t, res.Segments)
}

func TestReconstruct_HalfTurn(t *testing.T) {
	res, err := recon.Reconstruct(context.Background(), 5, 5, frame(5, 5), recon.WithHalfTurn(true), recon.WithAngleCount(4))
	require.NoError(t, err)
	require.Len(t, res.Angles, 4)
	for _, a := range res.Angles {
		assert.Less(t, a, math.Pi/2)
	}
}

func TestReconstruct_Overlays(t *testing.T) {
	res, err := recon.Reconstruct(context.Background(), 5, 5, frame(5, 5))
	require.NoError(t, err)
	assert.Nil(t, res.Families)
	assert.Nil(t, res.KeyPairs)

	res, err = recon.Reconstruct(context.Background(), 5, 5, frame(5, 5), recon.WithOverlays(true))
	require.NoError(t, err)
	assert.Len(t, res.Families, recon.DefaultAngleCount)
	assert.Len(t, res.KeyPairs, recon.DefaultAngleCount)
	assert.Equal(t, len(res.Candidates), res.Stats.Candidates)
	assert.Positive(t, res.Stats.Rays)
	assert.Positive(t, res.Stats.KeyPairs)
	assert.GreaterOrEqual(t, res.Stats.MeanSpread, 0.0)
	assert.Less(t, res.Stats.MeanSpread, 2*recon.DefaultMergeFactor*res.Pitch)
}

func TestReconstruct_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	res, err := recon.Reconstruct(context.Background(), 5, 5, frame(5, 5), recon.WithLogger(logger))
	require.NoError(t, err)
	assert.Zero(t, buf.Len(), "quiet unless verbose")

	res, err = recon.Reconstruct(context.Background(), 5, 5, frame(5, 5), recon.WithLogger(logger), recon.WithVerbose(true))
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "["+res.RunID.String()[:8]+"] pitch")
	assert.Contains(t, out, "segments")
}

func TestResult_Err(t *testing.T) {
	var r recon.Result
	assert.NoError(t, r.Err())
	r.Diagnostics = []error{oracle.ErrInvalidMeasurement}
	assert.ErrorIs(t, r.Err(), oracle.ErrInvalidMeasurement)
}
