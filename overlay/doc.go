// Package overlay renders scenes and reconstruction results.
//
// An Overlay is a stack of named layers, each a list of segments and a list
// of points drawn in one colour. FromResult builds the usual stack: the
// hidden walls, the key-ray pairs of every family (when the run kept them),
// the vertex candidates, the merged vertices and the reconstructed walls.
//
// Two sinks are provided: WritePNG renders through gonum/plot with axes and
// a legend, WriteSVG writes a bare vector drawing in building coordinates.
package overlay
