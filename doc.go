// Package kvis reconstructs the floor plan of a rectangular building from
// k-visibility measurements: for any line segment through the building, an
// oracle reports how many walls it crosses, and nothing else.
//
// What it does:
//
//	Sweeps families of parallel rays at several angles, finds the rays where
//	the crossing count jumps, intersects those jumps across angles to
//	localize wall endpoints, and finally confirms which endpoint pairs are
//	joined by a wall using flux-balance probes around the candidate segment.
//
// Packages, bottom-up:
//
//	geometry/   points, segments, intersection and clipping predicates (orb)
//	oracle/     crossing-count oracle over a wall set, R-tree indexed (rtreego)
//	rays/       ray pitch selection and parallel ray families per angle
//	sweep/      per-angle crossing sequences, measured concurrently
//	keyray/     jump detection: pairs of adjacent rays that bracket a vertex
//	locate/     strip intersection across angle triples, direction tables
//	merge/      clustering of nearby vertex estimates (union-find or single pass)
//	wallcheck/  probe-based wall existence test and pair confirmation
//	recon/      the end-to-end pipeline, its functional options, the grid reader
//	scene/      fixtures and random building generators (free and grid)
//	overlay/    PNG (gonum/plot) and SVG renderings of a run
//	config/     JSON configuration mapped onto recon options
//	cmd/kvis    command-line driver
//
// Quick example:
//
//	┌───────────┐
//	│           │      res, err := recon.Reconstruct(ctx, 8, 10,
//	│  ───────  │          []geometry.Segment{geometry.Seg(2, 3, 6, 3)})
//	│           │      // res.Segments ≈ [(2,3)-(6,3)]
//	└───────────┘
//
// Every threshold in the pipeline is a multiple of the ray pitch, so the
// results are reproducible for a given scene and option set regardless of the
// number of workers.
//
//	go get github.com/katalvlaran/kvis
package kvis
