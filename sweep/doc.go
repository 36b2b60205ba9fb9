// Package sweep applies a crossing oracle to whole ray families.
//
// Sweep maps one ordered ray slice to an equally long, equally ordered
// measurement slice. SweepAll runs one Sweep per family on a bounded pool
// of goroutines (golang.org/x/sync/errgroup) and reassembles the results
// in the order the families were given, which the vertex localizer relies
// on to form triples of consecutive angles.
//
// Invalid measurements:
//
//	A ray collinear with a wall measures oracle.Invalid. The measurement
//	slice keeps the sentinel in place, and the sweep also returns an
//	*InvalidMeasurementError listing the offending ray indices; the error
//	wraps oracle.ErrInvalidMeasurement. Callers decide whether to abort or
//	to carry on with the diagnostics.
//
// Isolation:
//
//	When the oracle implements oracle.Forker, every family is swept with
//	its own fork, so the spatial index a sweep queries is owned by that
//	sweep alone.
package sweep
