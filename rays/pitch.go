package rays

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/combin"
)

// minPointCount keeps C(n,2) positive.
const minPointCount = 2

// ChoosePitch returns the ray spacing for expectedPoints vertices over a
// width×height rectangle at the given confidence. expectedPoints below 2
// is treated as 2.
//
// Error Conditions:
//   - ErrBadDimensions: width or height not positive and finite.
//   - ErrBadConfidence: confidence outside (0, 1).
func ChoosePitch(width, height float64, expectedPoints int, confidence float64) (float64, error) {
	if !positive(width) || !positive(height) {
		return 0, ErrBadDimensions
	}
	if !(confidence > 0 && confidence < 1) {
		return 0, ErrBadConfidence
	}
	if expectedPoints < minPointCount {
		expectedPoints = minPointCount
	}

	diagonal := math.Hypot(width, height)
	pairs := float64(combin.Binomial(expectedPoints, 2))

	return (1 - confidence) * width * height / (diagonal * pairs), nil
}

// SeparationProbability estimates, over trials simulations, the chance
// that n points drawn uniformly on [0, length] are pairwise at least gap
// apart. The result is deterministic for a given seed (0 selects the
// package default seed).
//
// Complexity: O(trials · n log n).
func SeparationProbability(length float64, n int, gap float64, trials int, seed int64) float64 {
	if n < 2 {
		return 1
	}
	if trials <= 0 || !positive(length) {
		return 0
	}

	rng := NewRNG(seed)
	hits := make([]float64, trials)
	vals := make([]float64, n)
	for t := range hits {
		for i := range vals {
			vals[i] = rng.Float64() * length
		}
		sort.Float64s(vals)
		hits[t] = 1
		for i := 1; i < n; i++ {
			if vals[i]-vals[i-1] < gap {
				hits[t] = 0
				break
			}
		}
	}

	return stat.Mean(hits, nil)
}

// searchSteps bounds SearchPitch; 2^-60 of the start gap is below any
// useful pitch.
const searchSteps = 60

// SearchPitch halves a candidate gap, starting at the smaller rectangle
// side, until SeparationProbability exceeds target. It is the simulated
// counterpart of ChoosePitch.
//
// Error Conditions:
//   - ErrBadDimensions: width or height not positive and finite.
//   - ErrBadConfidence: target outside (0, 1).
//   - ErrNoPitch:       target not reached within searchSteps halvings.
func SearchPitch(width, height float64, n int, target float64, trials int, seed int64) (float64, error) {
	if !positive(width) || !positive(height) {
		return 0, ErrBadDimensions
	}
	if !(target > 0 && target < 1) {
		return 0, ErrBadConfidence
	}

	length := math.Min(width, height)
	gap := length
	for i := 0; i < searchSteps; i++ {
		if SeparationProbability(length, n, gap, trials, seed) > target {
			return gap, nil
		}
		gap /= 2
	}

	return 0, ErrNoPitch
}
