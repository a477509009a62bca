package remap

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/hupe1980/remap/resource"
)

type options struct {
	rangeStrategy    RangeStrategy
	concurrency      int
	resources        *resource.Controller
	metricsCollector MetricsCollector
	logger           *Logger
}

func defaultOptions() options {
	return options{
		rangeStrategy:    RangeExact,
		concurrency:      runtime.GOMAXPROCS(0),
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
}

// Option configures NewPipeline.
type Option func(*options)

func applyOptions(optFns []Option) options {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

func (o options) recordBuild(stages, segments int, err error) {
	o.metricsCollector.RecordBuild(stages, segments, err)
	o.logger.LogBuild(context.Background(), stages, segments, err)
}

func (o options) recordRangeQuery(ctx context.Context, r Range, pieces int, result uint64, elapsed time.Duration, err error) {
	o.metricsCollector.RecordRangeQuery(pieces, elapsed, err)
	o.logger.LogRangeQuery(ctx, r, o.rangeStrategy, pieces, result, elapsed, err)
}

// WithRangeStrategy selects the algorithm used by MinOverRange and
// MinOverRanges. Default: RangeExact.
//
// RangeBisect is a heuristic and may overestimate the minimum; see its
// documentation before enabling it.
func WithRangeStrategy(s RangeStrategy) Option {
	return func(o *options) {
		o.rangeStrategy = s
	}
}

// WithConcurrency bounds the number of ranges MinOverRanges evaluates in
// parallel. Values < 1 mean GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		o.concurrency = n
	}
}

// WithResourceController shares a worker budget across pipelines.
// MinOverRanges acquires one worker slot per range it evaluates.
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) {
		o.resources = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring queries.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &remap.BasicMetricsCollector{}
//	p, _ := remap.NewPipeline(stages, remap.WithMetricsCollector(metrics))
//	// ... use p ...
//	stats := metrics.GetStats()
//	fmt.Printf("Range queries: %d, Avg latency: %dns\n", stats.RangeQueryCount, stats.RangeQueryAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := remap.NewJSONLogger(slog.LevelInfo)
//	p, _ := remap.NewPipeline(stages, remap.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}
