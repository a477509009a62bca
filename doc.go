// Package remap provides a layered interval-remapping engine.
//
// A Pipeline is an ordered composition of Stages. Each Stage is a sorted,
// non-overlapping table of Segments; a Segment maps the keys
// [SourceStart, SourceStart+Length) onto [DestStart, DestStart+Length) by a
// constant offset, and keys outside every Segment map to themselves.
//
// # Quick Start
//
//	st, err := remap.NewStage([]remap.Segment{
//	    remap.NewSegment(50, 98, 2),  // dest, source, length
//	    remap.NewSegment(52, 50, 48),
//	}, remap.WithName("seed-to-soil"))
//
//	p, err := remap.NewPipeline([]*remap.Stage{st})
//	v := p.Apply(79)                       // 81
//	m, err := p.ApplyMany([]uint64{79, 14}) // 14
//
// Or with the fluent builder:
//
//	p, err := remap.NewBuilder().
//	    Stage("seed-to-soil", remap.NewSegment(50, 98, 2), remap.NewSegment(52, 50, 48)).
//	    Build()
//
// # Range Minimum
//
// MinOverRange answers min(Apply(k)) for k in [start, start+length-1] without
// enumerating the range. The default strategy propagates the range through
// every stage as a set of contiguous spans, splitting a span wherever it
// crosses a segment boundary. Work is proportional to the number of boundary
// crossings, not to the range length, and the result is exact.
//
//	m, err := p.MinOverRange(79, 14)
//	m, err = p.MinOverRanges(ctx, []remap.Range{{Start: 79, Length: 14}, {Start: 55, Length: 13}})
//
// RangeBisect is available as an opt-in heuristic (WithRangeStrategy). It can
// overestimate the minimum when internal boundaries cancel out at the
// endpoints of a piece, so it is never the default.
//
// # Lookup Strategies
//
// Stages resolve single keys either by binary search over the sorted
// segments (LookupSorted, default) or by a floor search in an ordered B-tree
// (LookupBTree). Both are observably identical.
//
// # Concurrency
//
// Stages and Pipelines are immutable after construction. Every query method
// is safe for concurrent use without synchronization.
//
// # Key Features
//
//   - Overflow-checked construction: no mapping can wrap around at query time
//   - Exact range minimum with bounded working memory
//   - Parallel multi-range queries bounded by a shared resource controller
//   - Text and YAML/JSON table formats (package almanac)
//   - Compressed snapshots on local, in-memory, MinIO or S3 blob stores
//     (packages snapshot and blobstore)
package remap
