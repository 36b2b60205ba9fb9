// Package locate turns key-ray pairs into vertex estimates and labels the
// local wall directions at each estimate.
//
// Strips:
//
//	A key pair brackets a hidden vertex between two parallel rays. The band
//	between them, extended to infinity, is a Strip: {p : Lo ≤ n·p ≤ Hi}
//	for the unit normal n of the family.
//
// Triangulation (LocalizeTriple):
//
//	For three families at distinct angles, every combination of one pair
//	per family is intersected: strips 1 and 2 give a parallelogram, which
//	is clipped against strip 3 (Sutherland-Hodgman). A non-empty region
//	that is small enough and whose centroid lies inside the rectangle
//	(within Options.BoundsTolerance) yields a Candidate at that centroid.
//	Everything else is a mismatch between unrelated vertices and is
//	dropped without comment, as are parallel (degenerate) strip pairs.
//	Strips of the third family are kept sorted, so each parallelogram only
//	visits the strips its projection overlaps.
//
// Sweep (LocalizeAll):
//
//	Triples are consecutive families i, i+1, i+2, wrapping modulo the
//	family count, so with angles spread over (0, π) every direction is
//	covered. Windows run in parallel and candidates come back in window
//	order.
//
// Direction classification (ClassifyDirection, ClassifyCandidates):
//
//	A candidate leans like its lead family, the first of its triple that is
//	not vertical. A right-leaning candidate (lead θ < π/2) is paired with the
//	first left-leaning candidate within the match distance. The count jumps
//	(r1→r2 on the right family, l1→l2 on the left one) select a label:
//
//	    r1 = r2+2          up|left     r1 = r2-2          down|right
//	    l1 = l2+2          down|left   l1 = l2-2          up|right
//	    r +1, l +1         left        r -1, l +1         down
//	    r +1, l -1         up          r -1, l -1         right
//
//	where "r +1" reads r1 = r2+1. Unpaired candidates are classified with
//	zero jumps for the missing side. Any other pattern is an
//	*UnclassifiableVertexError: it is returned as a diagnostic and the
//	candidate is dropped; no direction is ever guessed. Pairing state lives
//	in a side table indexed by candidate ID.
//
// Labels (Compatible):
//
//	A wall leaves each endpoint towards the other, so an axis-aligned pair
//	of vertices can only be joined when their labels face each other.
//	Compatible applies that rule to merged vertices before wall tests.
package locate
