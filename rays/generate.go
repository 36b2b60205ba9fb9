package rays

import (
	"math"

	"github.com/katalvlaran/kvis/geometry"
)

// GenerateRays returns the probe comb at angle over a width×height
// rectangle, ordered by foot point on y=0.
//
// Error Conditions:
//   - ErrBadDimensions: width or height not positive and finite.
//   - ErrBadPitch:      pitch not positive and finite.
//   - ErrBadAngle:      angle outside (0, π).
//
// Complexity: O((width + |offset|)/pitch) time and memory.
func GenerateRays(width, height, pitch, angle float64) ([]geometry.Segment, error) {
	if err := validate(width, height, pitch); err != nil {
		return nil, err
	}
	if !(angle > 0 && angle < math.Pi) {
		return nil, ErrBadAngle
	}

	// 1. Horizontal run of a ray over the full height (negative for left-leaning).
	offset := height / math.Tan(angle)

	// 2. Foot points must cover [lo-pitch, hi+pitch], where [lo, hi] is the
	//    range of feet whose rays can meet the rectangle.
	lo := math.Min(0, -offset)
	hi := math.Max(width, width-offset)
	start := lo - pitch - pitch/2
	n := int(math.Ceil((hi+pitch-start)/pitch)) + 1

	// 3. Emit rays left to right.
	out := make([]geometry.Segment, n)
	for i := range out {
		x0 := start + float64(i)*pitch
		out[i] = geometry.Seg(x0, 0, x0+offset, height)
	}

	return out, nil
}

// NewFamily wraps GenerateRays into a Family.
func NewFamily(index int, width, height, pitch, angle float64) (Family, error) {
	rs, err := GenerateRays(width, height, pitch, angle)
	if err != nil {
		return Family{}, err
	}

	return Family{Index: index, Angle: angle, Pitch: pitch, Rays: rs}, nil
}

// Families generates one family per angle, in the given order.
func Families(width, height, pitch float64, angles []float64) ([]Family, error) {
	out := make([]Family, 0, len(angles))
	for i, a := range angles {
		f, err := NewFamily(i, width, height, pitch, a)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}

	return out, nil
}

// Angles returns n angles kπ/(n+1), k = 1..n, all strictly inside (0, π).
func Angles(n int) []float64 {
	return spread(n, math.Pi)
}

// AnglesHalfTurn returns n angles k(π/2)/(n+1), k = 1..n.
func AnglesHalfTurn(n int) []float64 {
	return spread(n, math.Pi/2)
}

func spread(n int, span float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	step := span / float64(n+1)
	for k := range out {
		out[k] = float64(k+1) * step
	}

	return out
}

func validate(width, height, pitch float64) error {
	if !positive(width) || !positive(height) {
		return ErrBadDimensions
	}
	if !positive(pitch) {
		return ErrBadPitch
	}

	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1) && !math.IsNaN(v)
}
