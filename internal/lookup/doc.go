// Package lookup implements the point-lookup strategies behind a stage.
//
// A Table answers one question: which of a set of sorted, pairwise disjoint
// half-open intervals [Start, Start+Length) contains a key. Two strategies are
// provided and must be observably identical for every key:
//
//   - Sorted: binary search over a flat slice of interval starts.
//     Cache-friendly and allocation-free; the default.
//   - BTree: floor search in an ordered map (github.com/google/btree) keyed by
//     interval start, followed by a containment check.
//
// Callers select a strategy by Kind and never depend on the concrete type.
package lookup
