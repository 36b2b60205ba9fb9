// Package recon reconstructs the hidden walls of a rectangular building
// from k-visibility measurements.
//
// The pipeline is linear:
//
//	EstimateWallCount → ChooseRayPitch → SweepAllAngles →
//	DetectKeyRaysPerAngle → LocalizeVertices → ClassifyDirections →
//	MergeVertices → TestAllPairs → Done
//
// The wall count is estimated as area/AreaPerWall (one wall per 3×3 units by
// default), the pitch follows from it through rays.ChoosePitch, and every
// later threshold is a multiple of that pitch. Sweeps, triple windows and
// pair tests run on a bounded worker pool; results are reassembled in angle
// order so the sliding windows see consecutive angles.
//
// Entry points:
//
//	Reconstruct(ctx, w, h, segments, opts...)  // measures an in-memory scene
//	ReconstructWith(ctx, w, h, oracle, opts...) // measures through any Oracle
//	ReconstructGrid(ctx, w, h, oracle, opts...) // reads a unit-grid building exactly
//
// Before the pair tests, axis-aligned vertex pairs whose direction labels
// do not face each other are dropped (WithLabelPruning).
//
// Problems that must be surfaced without aborting the run (invalid
// measurements, unclassifiable vertices) are collected in
// Result.Diagnostics; WithStrictMeasurements turns invalid measurements into
// a returned error instead.
//
// The returned segments never include the frame: pairs lying along one
// side of the rectangle are not tested.
package recon
