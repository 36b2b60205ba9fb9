// Package keyray finds the places where a swept family's crossing count
// changes.
//
// Counts are piecewise constant in ray position and only change when a
// ray slides past a vertex of the hidden walls. FindKeyPairs scans a
// measurement slice for adjacent rays i, i+1 whose counts differ and emits
// a Pair for each: the vertex lies, projected along the family's angle,
// in the strip between the two rays.
//
// A difference that involves oracle.Invalid carries no information about a
// vertex. Such adjacencies are not emitted as pairs; they are returned in
// an *InvalidPairError so the caller can see what was dropped.
package keyray
