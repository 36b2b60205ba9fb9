package scene

import (
	"errors"
	"math"

	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/oracle"
)

var (
	// ErrBadSize is returned for a non-positive or non-finite rectangle.
	ErrBadSize = errors.New("scene: width and height must be positive and finite")
	// ErrTooDense is returned when a generator cannot place the requested
	// walls within its attempt budget.
	ErrTooDense = errors.New("scene: cannot place the requested walls")
)

// maxAttempts bounds the rejection sampling of the random generators, per
// requested point or wall.
const maxAttempts = 10000

// Scene is a building: a rectangle, its frame and its internal walls.
type Scene struct {
	Width, Height float64
	Frame         []geometry.Segment
	Walls         []geometry.Segment
}

// New returns the scene with the given internal walls.
func New(width, height float64, walls ...geometry.Segment) (Scene, error) {
	if !positive(width) || !positive(height) {
		return Scene{}, ErrBadSize
	}
	return Scene{
		Width:  width,
		Height: height,
		Frame:  Frame(width, height),
		Walls:  append([]geometry.Segment(nil), walls...),
	}, nil
}

// Frame returns the four frame segments: bottom, right, top, left.
func Frame(width, height float64) []geometry.Segment {
	return []geometry.Segment{
		geometry.Seg(0, 0, width, 0),
		geometry.Seg(width, 0, width, height),
		geometry.Seg(width, height, 0, height),
		geometry.Seg(0, height, 0, 0),
	}
}

// Segments returns the frame followed by the walls.
func (s Scene) Segments() []geometry.Segment {
	out := make([]geometry.Segment, 0, len(s.Frame)+len(s.Walls))
	out = append(out, s.Frame...)
	return append(out, s.Walls...)
}

// Oracle returns a crossing oracle over the whole scene.
func (s Scene) Oracle(rules oracle.Options) *oracle.Scene {
	return oracle.NewScene(s.Segments(), rules)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1) && !math.IsNaN(v)
}
