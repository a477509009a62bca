// Package testutil provides testing utilities for remap.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source, generators for disjoint interval
// tables, and brute-force reference computations.
//
// # Random Tables
//
//	rng := testutil.NewRNG(seed)
//	table := rng.Intervals(16, 10_000, 500) // 16 disjoint intervals in [0, 10000)
//
// # Brute Force (Ground Truth)
//
//	want := testutil.BruteMin(pipeline.Apply, start, length)
package testutil
