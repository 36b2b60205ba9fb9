package recon

import (
	"errors"

	"github.com/google/uuid"

	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/keyray"
	"github.com/katalvlaran/kvis/locate"
	"github.com/katalvlaran/kvis/rays"
)

// ErrBadAngleCount is returned when fewer than three angles would be swept.
var ErrBadAngleCount = errors.New("recon: at least three angles are required")

// Result is the outcome of one reconstruction run.
type Result struct {
	// RunID tags the run's log lines.
	RunID         uuid.UUID
	Width, Height float64
	Pitch         float64
	Angles        []float64

	// Segments are the reconstructed internal walls.
	Segments []geometry.Segment
	// Vertices are the merged, classified vertices; a direction is the
	// union of the directions of the merged estimates.
	Vertices []locate.Vertex
	// Candidates are the raw vertex estimates of every triple window.
	Candidates []locate.Candidate

	// Families and KeyPairs are kept only WithOverlays(true).
	Families []rays.Family
	KeyPairs []keyray.FamilyPairs

	Stats Stats
	// Diagnostics lists invalid measurements, unclassifiable vertices and
	// candidates without a leaning family.
	Diagnostics []error
}

// Stats summarizes a run.
type Stats struct {
	Rays       int
	KeyPairs   int
	Candidates int
	Vertices   int
	PairsTried int
	// LabelRejected counts pairs skipped because their labels do not face
	// each other.
	LabelRejected int
	// MeanSpread and StdSpread describe the distance between each
	// candidate and the merged vertex it ended up in.
	MeanSpread float64
	StdSpread  float64
}

// Err joins the diagnostics, or returns nil when there are none.
func (r *Result) Err() error { return errors.Join(r.Diagnostics...) }

// Points returns the merged vertex positions.
func (r *Result) Points() []geometry.Point {
	out := make([]geometry.Point, len(r.Vertices))
	for i, v := range r.Vertices {
		out[i] = v.Point
	}
	return out
}
