// Package geometry provides the planar primitives of the k-visibility
// pipeline: points, segments and the segment relationship predicates that
// every other stage builds on.
//
// What:
//
//   - Point is an alias of orb.Point, so coordinates flow into and out of
//     github.com/paulmach/orb without copying.
//   - Segment is an ordered pair of points; every predicate treats it as
//     undirected (reversing either segment never changes an answer).
//   - Classify reports how two segments meet: Disjoint, Cross (exactly one
//     shared interior point), Touch (the shared point is an endpoint of at
//     least one segment) or Overlap (collinear, positive-length overlap).
//   - Line helpers intersect infinite lines and clip them to a rectangle.
//
// Degenerate input:
//
//	A segment shorter than Epsilon never crosses, touches or overlaps
//	anything. PointToSegmentDistance of a degenerate segment is the plain
//	point distance to its first endpoint. Nothing in this package panics
//	on near-parallel or near-zero-length input.
//
// Complexity:
//
//	Every predicate is O(1) time and allocates nothing.
package geometry
