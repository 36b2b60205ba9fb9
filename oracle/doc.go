// Package oracle answers the only question the reconstruction is allowed to
// ask about a hidden scene: how many walls does this probe ray cross?
//
// The answer is a Measurement. A non-negative value is the k-visibility of
// the ray; Invalid means the ray runs collinear with a wall for a positive
// length, in which case no integer is meaningful and callers must treat the
// value as a distinct signal (never as zero).
//
// Counting rules (CountCrossings, Index.Count, Scene.Query):
//
//   - a segment identical to the ray is skipped when Options.SkipIdentical
//     is set, and otherwise invalidates the ray like any collinear wall;
//   - a proper crossing adds 1;
//   - an endpoint touch adds 1 when Options.IncludeEndpointTouches is set;
//   - a collinear overlap makes the whole measurement Invalid when
//     Options.IncludeCollinear is set, and is ignored otherwise.
//
// Index keeps the segments in an R-tree (github.com/dhconnelly/rtreego)
// keyed by bounding box, so a query only classifies the walls whose boxes
// meet the ray's box.
//
// Concurrency:
//
//	An Index is read-only once built. Scene implements Forker: sweeps call
//	Fork to get an oracle with an index of their own, so no index is ever
//	shared between concurrent sweeps.
package oracle
