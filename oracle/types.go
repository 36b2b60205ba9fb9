package oracle

import (
	"errors"
	"strconv"

	"github.com/katalvlaran/kvis/geometry"
)

// ErrInvalidMeasurement marks a probe ray that runs along a wall.
var ErrInvalidMeasurement = errors.New("oracle: ray is collinear with a wall")

// Measurement is the k-visibility of one probe ray, or Invalid.
type Measurement int

// Invalid is the sentinel measurement of a ray collinear with a wall.
const Invalid Measurement = -1

// IsValid reports whether m carries a crossing count.
func (m Measurement) IsValid() bool { return m >= 0 }

func (m Measurement) String() string {
	if !m.IsValid() {
		return "INVALID"
	}
	return strconv.Itoa(int(m))
}

// Oracle measures probe rays against a scene the caller cannot see.
type Oracle interface {
	Query(ray geometry.Segment) Measurement
}

// Forker is implemented by oracles that can hand out an independent copy
// for exclusive use by one goroutine.
type Forker interface {
	Fork() Oracle
}

// Func adapts an ordinary function to the Oracle interface.
type Func func(ray geometry.Segment) Measurement

// Query calls f(ray).
func (f Func) Query(ray geometry.Segment) Measurement { return f(ray) }

// Options selects the counting rules.
//   - IncludeEndpointTouches: a touch counts as a crossing (default true).
//   - IncludeCollinear: a collinear overlap invalidates the ray (default true).
//   - SkipIdentical: a segment equal to the ray is ignored instead of
//     invalidating it (default false). Useful when measuring a wall against
//     the very scene it was taken from.
type Options struct {
	IncludeEndpointTouches bool
	IncludeCollinear       bool
	SkipIdentical          bool
}

// DefaultOptions returns the counting rules used by the reconstruction.
func DefaultOptions() Options {
	return Options{
		IncludeEndpointTouches: true,
		IncludeCollinear:       true,
	}
}
