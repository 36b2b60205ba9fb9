package oracle

import "github.com/katalvlaran/kvis/geometry"

// CountCrossings measures ray against every segment in segments without an
// index. It is the reference implementation Index.Count must agree with.
//
// Complexity: O(len(segments)).
func CountCrossings(ray geometry.Segment, segments []geometry.Segment, opts Options) Measurement {
	var k Measurement
	for _, s := range segments {
		d, ok := contribution(ray, s, opts)
		if !ok {
			return Invalid
		}
		k += d
	}

	return k
}

// contribution is the amount one segment adds to the measurement of ray.
// ok is false when the segment invalidates the ray.
func contribution(ray, s geometry.Segment, opts Options) (Measurement, bool) {
	if opts.SkipIdentical && s.Equal(ray) {
		return 0, true
	}
	switch geometry.Classify(ray, s) {
	case geometry.Cross:
		return 1, true
	case geometry.Touch:
		if opts.IncludeEndpointTouches {
			return 1, true
		}
	case geometry.Overlap:
		if opts.IncludeCollinear {
			return 0, false
		}
	}

	return 0, true
}
