package rays

import (
	"errors"
	"math"

	"github.com/katalvlaran/kvis/geometry"
)

var (
	// ErrBadDimensions is returned for a non-positive or non-finite rectangle.
	ErrBadDimensions = errors.New("rays: width and height must be positive and finite")
	// ErrBadPitch is returned for a non-positive or non-finite pitch.
	ErrBadPitch = errors.New("rays: pitch must be positive and finite")
	// ErrBadAngle is returned for an angle outside the open interval (0, π).
	ErrBadAngle = errors.New("rays: angle must lie in (0, π)")
	// ErrBadConfidence is returned for a confidence outside (0, 1).
	ErrBadConfidence = errors.New("rays: confidence must lie in (0, 1)")
	// ErrNoPitch is returned when SearchPitch cannot reach the target.
	ErrNoPitch = errors.New("rays: no pitch reaches the target probability")
)

// Side tells which way a family leans.
type Side int

const (
	// Vertical families (θ = π/2) lean neither way.
	Vertical Side = iota
	// Right families (θ < π/2) climb to the right.
	Right
	// Left families (θ > π/2) climb to the left.
	Left
)

func (s Side) String() string {
	switch s {
	case Right:
		return "right"
	case Left:
		return "left"
	default:
		return "vertical"
	}
}

// sideTolerance treats angles this close to π/2 as vertical.
const sideTolerance = 1e-9

// SideOf classifies an angle.
func SideOf(angle float64) Side {
	switch d := angle - math.Pi/2; {
	case d < -sideTolerance:
		return Right
	case d > sideTolerance:
		return Left
	default:
		return Vertical
	}
}

// Family is one comb of parallel probe rays.
type Family struct {
	// Index is the position of the family in its sweep, starting at 0.
	Index int
	Angle float64
	Pitch float64
	Rays  []geometry.Segment
}

// Side returns the lean of the family.
func (f Family) Side() Side { return SideOf(f.Angle) }

// Len returns the number of rays.
func (f Family) Len() int { return len(f.Rays) }
