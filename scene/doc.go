// Package scene builds the hidden buildings that the reconstruction is
// tested and demonstrated against.
//
// A Scene is a width×height rectangle: its four frame segments plus any
// number of internal walls. Three generators are provided:
//
//   - RandomAny: walls between random points, any orientation.
//   - RandomStraight: alternating horizontal and vertical walls, snapped
//     to the frame or kept a minimum distance from it.
//   - Grid: a unit grid with one flag per edge; consecutive set edges merge
//     into maximal walls. Rooms reports the enclosed regions.
//
// Every generator is deterministic for a given seed; seed 0 selects a fixed
// default.
package scene
