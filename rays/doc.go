// Package rays builds the probe combs that are swept across a building
// footprint, and picks how densely they are spaced.
//
// Ray families:
//
//	GenerateRays(width, height, pitch, angle) returns parallel rays at one
//	angle θ ∈ (0, π). Every ray starts on y=0 and ends on y=height, so with
//	offset = height/tan(θ) the i-th ray runs from (x0_i, 0) to
//	(x0_i+offset, height). The foot points x0_i are spaced by pitch and
//	cover the rectangle's shadow along θ plus one pitch of margin on each
//	side, shifted by half a pitch so that integer-aligned scenes do not put
//	vertices exactly on a ray. Rays are ordered by x0 ascending; key-ray
//	detection relies on "adjacent in the slice" meaning "adjacent in
//	space".
//
// Pitch:
//
//	ChoosePitch uses the closed form
//
//	    pitch = (1-confidence)·width·height / (diagonal·C(n,2))
//
//	so that n vertices scattered uniformly over the rectangle have roughly
//	a `confidence` chance of no two sharing a strip of one pitch along the
//	diagonal. It is a tuning heuristic: close vertices can still be missed.
//	SeparationProbability and SearchPitch estimate the same trade-off by
//	Monte-Carlo simulation and serve as a cross-check.
//
// Angles:
//
//	Angles(n) spreads n angles strictly inside (0, π); AnglesHalfTurn(n)
//	spreads them inside (0, π/2) for the restricted right-leaning sweep.
package rays
