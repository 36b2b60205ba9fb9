package recon

import (
	"log"
	"math"
	"runtime"

	"github.com/katalvlaran/kvis/locate"
	"github.com/katalvlaran/kvis/merge"
	"github.com/katalvlaran/kvis/oracle"
)

// Defaults.
const (
	// DefaultAngleCount is the number of ray families swept.
	DefaultAngleCount = 9
	// DefaultConfidence is the target probability that no two vertices
	// share a ray pitch.
	DefaultConfidence = 0.99
	// DefaultAreaPerWall is the floor area assumed per wall when estimating
	// the vertex count.
	DefaultAreaPerWall = 9.0
	// DefaultMergeFactor scales the pitch into the vertex merge threshold
	// and the frame-side tolerance.
	DefaultMergeFactor = 4.0
	// DefaultMatchFactor scales the pitch into the left/right pairing
	// distance of the direction classifier.
	DefaultMatchFactor = 4.0
	// DefaultProbeFactor scales the pitch into the external probe offset of
	// the existence test.
	DefaultProbeFactor = 4.0
	// DefaultBoundsTolerance is how far outside the rectangle a vertex
	// estimate may fall.
	DefaultBoundsTolerance = 0.1
)

const (
	panicAngleCount  = "recon: WithAngleCount: n must be positive"
	panicConfidence  = "recon: WithConfidence: confidence must lie in (0, 1)"
	panicPitch       = "recon: WithPitch: pitch must be positive and finite"
	panicAreaPerWall = "recon: WithAreaPerWall: area must be positive and finite"
	panicFactor      = "recon: factor must be positive and finite"
	panicTolerance   = "recon: WithBoundsTolerance: tolerance must be non-negative and finite"
)

// Option configures a reconstruction run.
type Option func(*Options)

// Options is the resolved configuration of one run.
type Options struct {
	angleCount      int
	angles          []float64
	halfTurn        bool
	confidence      float64
	areaPerWall     float64
	pitch           float64 // 0 derives the pitch from the wall estimate
	mergeMode       merge.Mode
	mergeFactor     float64
	matchFactor     float64
	probeFactor     float64
	boundsTolerance float64
	chainPruning    bool
	labelPruning    bool
	overlays        bool
	strict          bool
	workers         int
	counting        oracle.Options
	logger          *log.Logger
	verbose         bool
}

// DefaultOptions returns the configuration used when no Option is given.
func DefaultOptions() Options {
	return Options{
		angleCount:      DefaultAngleCount,
		confidence:      DefaultConfidence,
		areaPerWall:     DefaultAreaPerWall,
		mergeMode:       merge.UnionFind,
		mergeFactor:     DefaultMergeFactor,
		matchFactor:     DefaultMatchFactor,
		probeFactor:     DefaultProbeFactor,
		boundsTolerance: DefaultBoundsTolerance,
		chainPruning:    true,
		labelPruning:    true,
		workers:         runtime.GOMAXPROCS(0),
		counting:        oracle.DefaultOptions(),
	}
}

func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// WithAngleCount sets how many evenly spaced families are swept. Ignored
// when WithAngles is also given. Panics when n < 1.
func WithAngleCount(n int) Option {
	if n < 1 {
		panic(panicAngleCount)
	}
	return func(o *Options) { o.angleCount = n }
}

// WithAngles sweeps exactly the given angles, in order.
func WithAngles(angles ...float64) Option {
	cp := append([]float64(nil), angles...)
	return func(o *Options) { o.angles = cp }
}

// WithHalfTurn restricts the generated angles to (0, π/2).
func WithHalfTurn(on bool) Option {
	return func(o *Options) { o.halfTurn = on }
}

// WithConfidence sets the confidence fed to rays.ChoosePitch.
func WithConfidence(c float64) Option {
	if !(c > 0 && c < 1) {
		panic(panicConfidence)
	}
	return func(o *Options) { o.confidence = c }
}

// WithAreaPerWall sets the floor area assumed per wall.
func WithAreaPerWall(area float64) Option {
	if !finitePositive(area) {
		panic(panicAreaPerWall)
	}
	return func(o *Options) { o.areaPerWall = area }
}

// WithPitch fixes the ray pitch instead of deriving it.
func WithPitch(p float64) Option {
	if !finitePositive(p) {
		panic(panicPitch)
	}
	return func(o *Options) { o.pitch = p }
}

// WithMergeMode selects the vertex clustering rule.
func WithMergeMode(m merge.Mode) Option {
	return func(o *Options) { o.mergeMode = m }
}

// WithMergeFactor sets the merge threshold in pitches.
func WithMergeFactor(f float64) Option {
	mustFactor(f)
	return func(o *Options) { o.mergeFactor = f }
}

// WithMatchFactor sets the left/right pairing distance in pitches.
func WithMatchFactor(f float64) Option {
	mustFactor(f)
	return func(o *Options) { o.matchFactor = f }
}

// WithProbeFactor sets the existence-test probe offset in pitches.
func WithProbeFactor(f float64) Option {
	mustFactor(f)
	return func(o *Options) { o.probeFactor = f }
}

// WithBoundsTolerance sets how far outside the rectangle a vertex estimate
// may fall.
func WithBoundsTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicTolerance)
	}
	return func(o *Options) { o.boundsTolerance = tol }
}

// WithChainPruning toggles removal of segments that pass through another
// vertex linked to one of their ends (default on).
func WithChainPruning(on bool) Option {
	return func(o *Options) { o.chainPruning = on }
}

// WithLabelPruning toggles the direction-label filter applied to vertex
// pairs before the existence tests (default on).
func WithLabelPruning(on bool) Option {
	return func(o *Options) { o.labelPruning = on }
}

// WithOverlays keeps the ray families and key pairs in the Result.
func WithOverlays(on bool) Option {
	return func(o *Options) { o.overlays = on }
}

// WithStrictMeasurements makes any invalid measurement fail the run.
func WithStrictMeasurements(on bool) Option {
	return func(o *Options) { o.strict = on }
}

// WithWorkers bounds the worker pool (≤ 0 means GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(o *Options) { o.workers = n }
}

// WithCountingRules sets the crossing rules of the scene oracle built by
// Reconstruct. ReconstructWith ignores it.
func WithCountingRules(rules oracle.Options) Option {
	return func(o *Options) { o.counting = rules }
}

// WithLogger sets the destination of progress lines.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithVerbose enables progress lines on the logger.
func WithVerbose(on bool) Option {
	return func(o *Options) { o.verbose = on }
}

func (o Options) localize() locate.Options {
	lo := locate.DefaultOptions()
	lo.BoundsTolerance = o.boundsTolerance
	lo.Workers = o.workers
	return lo
}

func mustFactor(f float64) {
	if !finitePositive(f) {
		panic(panicFactor)
	}
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
