// Package merge collapses near-duplicate vertex estimates.
//
// Overlapping angle triples report the same hidden vertex several times,
// each estimate within a few ray pitches of the truth. Cluster groups
// estimates closer than a threshold and returns one representative per
// group together with the indices of its members.
//
// Modes:
//
//	UnionFind (default): groups are the connected components of the
//	"closer than threshold" graph, found with a disjoint-set forest (path
//	compression, union by rank). The representative is the member
//	centroid. Because centroids of distinct components can land within the
//	threshold of each other, clustering repeats on the centroids
//	(weighted by member count) until no two are closer than the threshold.
//	The output is therefore a fixpoint: merging it again changes nothing.
//
//	SinglePass: one scan over pairs (i<j) in input order; the first close
//	pair of two still-unused points is replaced by its midpoint. Three
//	mutually close points leave a midpoint and one original behind, and
//	re-running can merge further. Kept for parity with older fixtures.
//
// Complexity: O(n²) distance checks per round; UnionFind runs at most n
// rounds and in practice one or two.
package merge
