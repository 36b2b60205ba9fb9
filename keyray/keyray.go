package keyray

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/oracle"
	"github.com/katalvlaran/kvis/sweep"
)

// ErrLengthMismatch is returned when rays and measurements differ in length.
var ErrLengthMismatch = errors.New("keyray: rays and measurements differ in length")

// Pair is two adjacent rays of one family with different counts.
type Pair struct {
	// Index is the position of RayA in its family; RayB is at Index+1.
	Index         int
	RayA, RayB    geometry.Segment
	Before, After oracle.Measurement
}

// Jump is After-Before.
func (p Pair) Jump() int { return int(p.After) - int(p.Before) }

// InvalidPairError lists adjacencies skipped because one side was invalid.
type InvalidPairError struct {
	Family  int
	Indices []int
}

func (e *InvalidPairError) Error() string {
	return fmt.Sprintf("keyray: family %d: %d pair(s) skipped next to invalid rays at %v",
		e.Family, len(e.Indices), e.Indices)
}

// Unwrap returns oracle.ErrInvalidMeasurement.
func (e *InvalidPairError) Unwrap() error { return oracle.ErrInvalidMeasurement }

// FamilyPairs are the key pairs of one family.
type FamilyPairs struct {
	Family int
	Angle  float64
	Pairs  []Pair
}

// FindKeyPairs returns the key pairs of one ray family in ray order.
//
// Error Conditions:
//   - ErrLengthMismatch: len(rs) != len(ms).
//   - *InvalidPairError: some adjacencies touched an invalid measurement;
//     the returned pairs are still complete for the valid ones.
//
// Complexity: O(len(rs)).
func FindKeyPairs(rs []geometry.Segment, ms []oracle.Measurement) ([]Pair, error) {
	if len(rs) != len(ms) {
		return nil, ErrLengthMismatch
	}

	var (
		pairs   []Pair
		skipped []int
	)
	for i := 0; i+1 < len(ms); i++ {
		a, b := ms[i], ms[i+1]
		if !a.IsValid() || !b.IsValid() {
			skipped = append(skipped, i)
			continue
		}
		if a == b {
			continue
		}
		pairs = append(pairs, Pair{Index: i, RayA: rs[i], RayB: rs[i+1], Before: a, After: b})
	}

	if len(skipped) > 0 {
		return pairs, &InvalidPairError{Family: sweep.NoFamily, Indices: skipped}
	}

	return pairs, nil
}

// Detect runs FindKeyPairs on a sweep result and tags the output (and any
// InvalidPairError) with the family.
func Detect(res sweep.Result) (FamilyPairs, error) {
	pairs, err := FindKeyPairs(res.Family.Rays, res.Measurements)
	var inv *InvalidPairError
	if errors.As(err, &inv) {
		inv.Family = res.Family.Index
	}

	return FamilyPairs{Family: res.Family.Index, Angle: res.Family.Angle, Pairs: pairs}, err
}
