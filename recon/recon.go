package recon

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/keyray"
	"github.com/katalvlaran/kvis/locate"
	"github.com/katalvlaran/kvis/merge"
	"github.com/katalvlaran/kvis/oracle"
	"github.com/katalvlaran/kvis/rays"
	"github.com/katalvlaran/kvis/sweep"
	"github.com/katalvlaran/kvis/wallcheck"
)

// Reconstruct measures the width×height scene made of segments (frame
// included) and reconstructs its internal walls.
func Reconstruct(ctx context.Context, width, height float64, segments []geometry.Segment, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	return run(ctx, width, height, oracle.NewScene(segments, o.counting), o)
}

// ReconstructWith reconstructs the walls of a width×height building
// measured through q. When q implements oracle.Forker each worker measures
// through its own fork.
//
// Steps:
//  1. Estimate the vertex count (area / AreaPerWall, at least 2) and
//     choose the pitch, unless WithPitch fixed it.
//  2. Sweep every family; invalid measurements become diagnostics.
//  3. Detect key-ray pairs per family.
//  4. Localize vertex candidates over sliding triple windows.
//  5. Pair left and right candidates and classify directions.
//  6. Merge close vertices.
//  7. Test every vertex pair not lying on one frame side and, unless
//     WithLabelPruning(false), whose labels face each other; prune chains.
//
// Error Conditions:
//   - rays.ErrBadDimensions, rays.ErrBadConfidence: bad rectangle or
//     confidence.
//   - ErrBadAngleCount: fewer than three angles.
//   - rays.ErrBadAngle: an explicit angle outside (0, π).
//   - *sweep.InvalidMeasurementError (joined): only WithStrictMeasurements.
//   - ctx.Err() on cancellation.
//
// Complexity: O(A·R) oracle queries for A families of R rays, plus
// O(V²) existence tests of six queries each for V merged vertices.
func ReconstructWith(ctx context.Context, width, height float64, q oracle.Oracle, opts ...Option) (*Result, error) {
	return run(ctx, width, height, q, gatherOptions(opts...))
}

func run(ctx context.Context, width, height float64, q oracle.Oracle, o Options) (*Result, error) {
	res := &Result{RunID: uuid.New(), Width: width, Height: height}
	logf := o.logf(res.RunID)

	// 1. Angles and pitch.
	res.Angles = o.resolveAngles()
	if len(res.Angles) < 3 {
		return nil, ErrBadAngleCount
	}
	pitch, err := o.resolvePitch(width, height)
	if err != nil {
		return nil, err
	}
	res.Pitch = pitch
	logf("pitch %.6g over %d angles", pitch, len(res.Angles))

	families, err := rays.Families(width, height, pitch, res.Angles)
	if err != nil {
		return nil, err
	}
	for _, f := range families {
		res.Stats.Rays += f.Len()
	}

	// 2. Sweep.
	sweeps, err := sweep.SweepAll(ctx, families, q, o.workers)
	if err != nil {
		if !errors.Is(err, oracle.ErrInvalidMeasurement) || o.strict {
			return nil, err
		}
		invalid := unjoin(err)
		res.Diagnostics = append(res.Diagnostics, invalid...)
		logf("%d families with invalid measurements", len(invalid))
	}

	// 3. Key rays.
	pairs := make([]keyray.FamilyPairs, len(sweeps))
	for i, s := range sweeps {
		fp, err := keyray.Detect(s)
		if err != nil && !errors.Is(err, oracle.ErrInvalidMeasurement) {
			return nil, err
		}
		pairs[i] = fp
		res.Stats.KeyPairs += len(fp.Pairs)
	}
	if o.overlays {
		res.Families = families
		res.KeyPairs = pairs
	}

	// 4. Localize.
	rect := geometry.Rect(width, height)
	cands, err := locate.LocalizeAll(ctx, pairs, rect, o.localize())
	if err != nil {
		return nil, err
	}
	res.Candidates = cands
	res.Stats.Candidates = len(cands)

	// 5. Classify.
	cls := locate.ClassifyCandidates(cands, o.matchFactor*pitch)
	res.Diagnostics = append(res.Diagnostics, cls.Diagnostics...)
	logf("%d key pairs, %d candidates, %d unclassifiable", res.Stats.KeyPairs, len(cands), len(cls.Diagnostics))

	// 6. Merge.
	res.Vertices = mergeVertices(cls.Vertices, o.mergeFactor*pitch, o.mergeMode)
	res.Stats.Vertices = len(res.Vertices)
	res.Stats.MeanSpread, res.Stats.StdSpread = spread(res.Vertices, cands)

	// 7. Test pairs.
	points := res.Points()
	topts := wallcheck.Options{
		Offset:         o.probeFactor * pitch,
		FrameTolerance: o.mergeFactor * pitch,
		Workers:        o.workers,
	}
	if o.labelPruning {
		tol := o.matchFactor * pitch
		topts.Admit = func(i, j int) bool {
			if locate.Compatible(res.Vertices[i], res.Vertices[j], tol) {
				return true
			}
			res.Stats.LabelRejected++
			return false
		}
	}
	tester := wallcheck.NewTester(rect, q, topts)
	confirmed, err := tester.Confirm(ctx, points)
	if err != nil {
		return nil, err
	}
	res.Stats.PairsTried = len(points) * (len(points) - 1) / 2
	if o.chainPruning {
		confirmed = wallcheck.PruneChains(points, confirmed, o.probeFactor*pitch)
	}
	for _, p := range confirmed {
		res.Segments = append(res.Segments, geometry.Segment{A: points[p.I], B: points[p.J]})
	}
	logf("%d vertices, %d pairs ruled out by labels, %d segments", len(points), res.Stats.LabelRejected, len(res.Segments))

	return res, nil
}

// mergeVertices clusters vertices and unions the directions of each group.
func mergeVertices(vs []locate.Vertex, threshold float64, mode merge.Mode) []locate.Vertex {
	pts := make([]geometry.Point, len(vs))
	for i, v := range vs {
		pts[i] = v.Point
	}

	groups := merge.Cluster(pts, threshold, mode)
	out := make([]locate.Vertex, len(groups))
	for i, g := range groups {
		out[i].Point = g.Point
		for _, m := range g.Members {
			out[i].Direction |= vs[m].Direction
			out[i].Sources = append(out[i].Sources, vs[m].Sources...)
		}
	}

	return out
}

// spread returns the mean and standard deviation of the distance between
// each source candidate and its merged vertex.
func spread(vs []locate.Vertex, cands []locate.Candidate) (mean, std float64) {
	var d []float64
	for _, v := range vs {
		for _, id := range v.Sources {
			d = append(d, geometry.Distance(v.Point, cands[id].Point))
		}
	}
	switch len(d) {
	case 0:
		return 0, 0
	case 1:
		return d[0], 0
	}
	return stat.MeanStdDev(d, nil)
}

func (o Options) resolveAngles() []float64 {
	if o.angles != nil {
		return o.angles
	}
	if o.halfTurn {
		return rays.AnglesHalfTurn(o.angleCount)
	}
	return rays.Angles(o.angleCount)
}

func (o Options) resolvePitch(width, height float64) (float64, error) {
	if o.pitch > 0 {
		return o.pitch, nil
	}
	expected := int(width * height / o.areaPerWall)
	return rays.ChoosePitch(width, height, expected, o.confidence)
}

// logf returns a printf-style logger prefixed with the run id, or a no-op
// when logging is off.
func (o Options) logf(id uuid.UUID) func(format string, args ...any) {
	if !o.verbose || o.logger == nil {
		return func(string, ...any) {}
	}
	prefix := "[" + id.String()[:8] + "] "
	return func(format string, args ...any) {
		o.logger.Print(prefix + fmt.Sprintf(format, args...))
	}
}

// unjoin splits an errors.Join result into its parts.
func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
