package oracle

import (
	"sync/atomic"

	"github.com/katalvlaran/kvis/geometry"
)

// Scene is the oracle over an in-memory segment set. It is the stand-in for
// the physical measurement in tests, demos and the CLI.
type Scene struct {
	idx     *Index
	opts    Options
	queries *atomic.Int64
}

// NewScene returns an oracle over segments with the given counting rules.
func NewScene(segments []geometry.Segment, opts Options) *Scene {
	return &Scene{
		idx:     NewIndex(segments),
		opts:    opts,
		queries: new(atomic.Int64),
	}
}

// Query implements Oracle.
func (s *Scene) Query(ray geometry.Segment) Measurement {
	s.queries.Add(1)
	return s.idx.Count(ray, s.opts)
}

// Fork rebuilds the index for exclusive use by one caller. The query
// counter is shared with the parent.
func (s *Scene) Fork() Oracle {
	return &Scene{
		idx:     NewIndex(s.idx.segments),
		opts:    s.opts,
		queries: s.queries,
	}
}

// Queries returns how many rays were measured through s and its forks.
func (s *Scene) Queries() int64 { return s.queries.Load() }

// Segments returns a copy of the hidden segment set.
func (s *Scene) Segments() []geometry.Segment { return s.idx.Segments() }
