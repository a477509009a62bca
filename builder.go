package remap

import (
	"fmt"
	"slices"
)

// Builder is an immutable fluent builder for Pipelines.
// Each method returns a new builder with the updated configuration, so a
// partially configured builder can be shared and extended safely.
//
// Example:
//
//	p, err := remap.NewBuilder().
//	    Stage("seed-to-soil", remap.NewSegment(50, 98, 2), remap.NewSegment(52, 50, 48)).
//	    Stage("soil-to-fertilizer", remap.NewSegment(0, 15, 37)).
//	    BTree().
//	    Build()
type Builder struct {
	stages   []stageSpec
	strategy LookupStrategy
	opts     []Option
}

type stageSpec struct {
	name     string
	segments []Segment
}

// NewBuilder returns an empty builder. Building it yields the identity pipeline.
func NewBuilder() Builder {
	return Builder{strategy: LookupSorted}
}

// Stage appends a stage with the given name and segments.
func (b Builder) Stage(name string, segments ...Segment) Builder {
	b.stages = append(slices.Clip(b.stages), stageSpec{name: name, segments: slices.Clone(segments)})
	return b
}

// Sorted selects binary-search lookups for every stage (default).
func (b Builder) Sorted() Builder {
	b.strategy = LookupSorted
	return b
}

// BTree selects ordered-map lookups for every stage.
func (b Builder) BTree() Builder {
	b.strategy = LookupBTree
	return b
}

// Lookup selects the lookup strategy for every stage.
func (b Builder) Lookup(s LookupStrategy) Builder {
	b.strategy = s
	return b
}

// Exact selects exact interval propagation for range queries (default).
func (b Builder) Exact() Builder {
	return b.With(WithRangeStrategy(RangeExact))
}

// Bisect selects the bisection heuristic for range queries.
func (b Builder) Bisect() Builder {
	return b.With(WithRangeStrategy(RangeBisect))
}

// Logger sets the logger.
func (b Builder) Logger(l *Logger) Builder {
	return b.With(WithLogger(l))
}

// Metrics sets the metrics collector.
func (b Builder) Metrics(mc MetricsCollector) Builder {
	return b.With(WithMetricsCollector(mc))
}

// With appends raw pipeline options.
func (b Builder) With(opts ...Option) Builder {
	b.opts = append(slices.Clip(b.opts), opts...)
	return b
}

// Build validates every stage and composes them.
func (b Builder) Build() (*Pipeline, error) {
	stages := make([]*Stage, len(b.stages))
	for i, spec := range b.stages {
		st, err := NewStage(spec.segments, WithName(spec.name), WithLookupStrategy(b.strategy))
		if err != nil {
			err = fmt.Errorf("stage %d: %w", i, err)
			applyOptions(b.opts).recordBuild(len(b.stages), 0, err)
			return nil, err
		}
		stages[i] = st
	}
	return NewPipeline(stages, b.opts...)
}

// MustBuild is like Build but panics on error.
// Use it for tables known to be valid at compile time.
func (b Builder) MustBuild() *Pipeline {
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	return p
}
