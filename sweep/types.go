package sweep

import (
	"fmt"

	"github.com/katalvlaran/kvis/oracle"
	"github.com/katalvlaran/kvis/rays"
)

// NoFamily marks an InvalidMeasurementError raised outside any family.
const NoFamily = -1

// InvalidMeasurementError reports the rays of one sweep that ran along a
// wall.
type InvalidMeasurementError struct {
	Family  int
	Angle   float64
	Indices []int
}

func (e *InvalidMeasurementError) Error() string {
	if e.Family == NoFamily {
		return fmt.Sprintf("sweep: %d invalid measurement(s) at rays %v", len(e.Indices), e.Indices)
	}
	return fmt.Sprintf("sweep: family %d (angle %.4f): %d invalid measurement(s) at rays %v",
		e.Family, e.Angle, len(e.Indices), e.Indices)
}

// Unwrap returns oracle.ErrInvalidMeasurement.
func (e *InvalidMeasurementError) Unwrap() error { return oracle.ErrInvalidMeasurement }

// Result pairs a family with its measurements.
type Result struct {
	Family       rays.Family
	Measurements []oracle.Measurement
}

// Invalid returns the indices of the rays that measured oracle.Invalid.
func (r Result) Invalid() []int {
	return invalidIndices(r.Measurements)
}
