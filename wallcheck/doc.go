// Package wallcheck decides whether a wall joins two vertex estimates.
//
// The probe rays are built from the line L through p1 and p2:
//
//	external: L shifted by ±offset along its normal, clipped to the
//	          rectangle (E1 on the left, E2 on the right);
//	internal: two stations, one next to each endpoint. At the station of
//	          p1 both rays start at the p1-side boundary points of E1 and
//	          E2 and cross L at p1 + inset along p1→p2; the station of p2
//	          mirrors it from the other end.
//
// Each internal pair crosses L between the endpoints, just inside one of
// them, while the external pair runs outside the segment on either side.
// A wall p1p2 is crossed by both internal rays of a station and by neither
// external ray; every other wall is seen the same number of times by both
// pairs, unless it lies in the thin wedges between them. The flux-balance
// test
//
//	E1 + E2 + 2 == I1 + I2
//
// must hold at both stations. A pair that overshoots the end of a wall, or
// bridges a gap between two collinear walls, fails at the station lying off
// the wall. Any Invalid measurement rejects the segment outright.
//
// Tester runs the test over all pairs of a vertex set, in parallel, skipping
// pairs that lie on one side of the frame or that its Admit filter refuses.
// PruneChains drops a confirmed segment A–B when another confirmed segment
// joins A or B to a vertex C lying on A–B.
package wallcheck
