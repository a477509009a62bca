package remap

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Single-key Apply is not instrumented; it is the hot path of every query.
type MetricsCollector interface {
	// RecordBuild is called once per NewPipeline.
	RecordBuild(stages, segments int, err error)

	// RecordApplyMany is called after each discrete-key minimum.
	// keys is the number of keys passed in, distinct the number evaluated.
	RecordApplyMany(keys, distinct int, duration time.Duration, err error)

	// RecordRangeQuery is called after each range-minimum query.
	// pieces is the number of contiguous pieces the range decomposed into.
	RecordRangeQuery(pieces int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, error)                    {}
func (NoopMetricsCollector) RecordApplyMany(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRangeQuery(int, time.Duration, error)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount          atomic.Int64
	BuildErrors         atomic.Int64
	ApplyManyCount      atomic.Int64
	ApplyManyKeys       atomic.Int64
	ApplyManyErrors     atomic.Int64
	RangeQueryCount     atomic.Int64
	RangeQueryErrors    atomic.Int64
	RangeQueryPieces    atomic.Int64
	RangeQueryTotalNano atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(stages, segments int, err error) {
	b.BuildCount.Add(1)
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordApplyMany implements MetricsCollector.
func (b *BasicMetricsCollector) RecordApplyMany(keys, distinct int, duration time.Duration, err error) {
	b.ApplyManyCount.Add(1)
	b.ApplyManyKeys.Add(int64(keys))
	if err != nil {
		b.ApplyManyErrors.Add(1)
	}
}

// RecordRangeQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRangeQuery(pieces int, duration time.Duration, err error) {
	b.RangeQueryCount.Add(1)
	b.RangeQueryTotalNano.Add(duration.Nanoseconds())
	b.RangeQueryPieces.Add(int64(pieces))
	if err != nil {
		b.RangeQueryErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:         b.BuildCount.Load(),
		BuildErrors:        b.BuildErrors.Load(),
		ApplyManyCount:     b.ApplyManyCount.Load(),
		ApplyManyKeys:      b.ApplyManyKeys.Load(),
		ApplyManyErrors:    b.ApplyManyErrors.Load(),
		RangeQueryCount:    b.RangeQueryCount.Load(),
		RangeQueryErrors:   b.RangeQueryErrors.Load(),
		RangeQueryPieces:   b.RangeQueryPieces.Load(),
		RangeQueryAvgNanos: b.getAvgRangeNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgRangeNanos() int64 {
	count := b.RangeQueryCount.Load()
	if count == 0 {
		return 0
	}
	return b.RangeQueryTotalNano.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount         int64
	BuildErrors        int64
	ApplyManyCount     int64
	ApplyManyKeys      int64
	ApplyManyErrors    int64
	RangeQueryCount    int64
	RangeQueryErrors   int64
	RangeQueryPieces   int64
	RangeQueryAvgNanos int64
}
