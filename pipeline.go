package remap

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"golang.org/x/sync/errgroup"
)

// Pipeline is an ordered composition of Stages: stage i's output is stage
// i+1's input.
//
// A Pipeline is immutable after NewPipeline returns. All query methods are
// safe for concurrent use without synchronization.
type Pipeline struct {
	stages []*Stage
	opts   options
}

// NewPipeline composes stages in the given order. An empty stage list yields
// the identity pipeline.
func NewPipeline(stages []*Stage, optFns ...Option) (*Pipeline, error) {
	opts := applyOptions(optFns)

	segments := 0
	for i, st := range stages {
		if st == nil {
			err := fmt.Errorf("stage %d: %w", i, ErrNilStage)
			opts.recordBuild(len(stages), 0, err)
			return nil, err
		}
		segments += st.Len()
	}

	opts.recordBuild(len(stages), segments, nil)
	if opts.logger.Enabled(context.Background(), slog.LevelDebug) {
		for _, st := range stages {
			opts.logger.WithStage(st.Name()).Debug("stage ready",
				"segments", st.Len(),
				"lookup", st.LookupStrategy().String(),
			)
		}
	}

	return &Pipeline{
		stages: slices.Clone(stages),
		opts:   opts,
	}, nil
}

// Stages returns the stages in composition order.
func (p *Pipeline) Stages() []*Stage { return slices.Clone(p.stages) }

// Len returns the number of stages.
func (p *Pipeline) Len() int { return len(p.stages) }

// Apply threads key through every stage in order.
func (p *Pipeline) Apply(key uint64) uint64 {
	for _, st := range p.stages {
		key = st.Lookup(key)
	}
	return key
}

// Trace returns key followed by the output of each stage, so the last element
// equals Apply(key).
func (p *Pipeline) Trace(key uint64) []uint64 {
	out := make([]uint64, 0, len(p.stages)+1)
	out = append(out, key)
	for _, st := range p.stages {
		key = st.Lookup(key)
		out = append(out, key)
	}
	return out
}

// ApplyMany returns the minimum of Apply over a finite set of keys.
// Duplicate keys are evaluated once. It returns ErrEmptyKeys for an empty set.
func (p *Pipeline) ApplyMany(keys []uint64) (uint64, error) {
	start := time.Now()
	ctx := context.Background()

	if len(keys) == 0 {
		p.opts.metricsCollector.RecordApplyMany(0, 0, time.Since(start), ErrEmptyKeys)
		p.opts.logger.LogApplyMany(ctx, 0, 0, ErrEmptyKeys)
		return 0, ErrEmptyKeys
	}

	set := roaring64.BitmapOf(keys...)
	best := uint64(math.MaxUint64)
	it := set.Iterator()
	for it.HasNext() {
		if v := p.Apply(it.Next()); v < best {
			best = v
		}
	}

	distinct := int(set.GetCardinality())
	p.opts.metricsCollector.RecordApplyMany(len(keys), distinct, time.Since(start), nil)
	p.opts.logger.LogApplyMany(ctx, len(keys), distinct, nil)
	return best, nil
}

// MinOverRange returns the minimum of Apply over [start, start+length-1]
// without enumerating the range.
//
// It returns an *InvalidRangeError (matching ErrInvalidRange) when length is
// zero or the range runs past the uint64 domain.
func (p *Pipeline) MinOverRange(start, length uint64) (uint64, error) {
	return p.minOverRange(context.Background(), Range{Start: start, Length: length})
}

func (p *Pipeline) minOverRange(ctx context.Context, r Range) (uint64, error) {
	began := time.Now()
	strategy := p.opts.rangeStrategy

	last, err := r.Last()
	if err != nil {
		p.opts.recordRangeQuery(ctx, r, 0, 0, time.Since(began), err)
		return 0, err
	}

	var (
		result uint64
		pieces int
	)
	switch strategy {
	case RangeBisect:
		result, pieces = p.minBisect(r.Start, last)
	default:
		result, pieces = p.minExact(r.Start, last)
	}

	p.opts.recordRangeQuery(ctx, r, pieces, result, time.Since(began), nil)
	return result, nil
}

// MinOverRanges returns the overall minimum of MinOverRange across ranges.
//
// Every range is validated before any is evaluated. Ranges are evaluated in
// parallel, bounded by WithConcurrency and the resource controller, if any.
func (p *Pipeline) MinOverRanges(ctx context.Context, ranges []Range) (uint64, error) {
	began := time.Now()
	if len(ranges) == 0 {
		p.opts.recordRangeQuery(ctx, Range{}, 0, 0, time.Since(began), ErrEmptyKeys)
		return 0, ErrEmptyKeys
	}
	for _, r := range ranges {
		if err := r.Validate(); err != nil {
			p.opts.recordRangeQuery(ctx, r, 0, 0, time.Since(began), err)
			return 0, err
		}
	}

	results := make([]uint64, len(ranges))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.concurrency)

	for i, r := range ranges {
		g.Go(func() error {
			if err := p.opts.resources.AcquireWorker(gctx); err != nil {
				return err
			}
			defer p.opts.resources.ReleaseWorker()

			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := p.minOverRange(gctx, r)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return slices.Min(results), nil
}
