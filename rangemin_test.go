package remap

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/remap/testutil"
)

func TestMinOverRangeMatchesBruteForce(t *testing.T) {
	rng := testutil.NewRNG(20231205)

	for round := 0; round < 300; round++ {
		p := randomPipeline(t, rng, 1+rng.Intn(5), 3000, 400)

		for q := 0; q < 10; q++ {
			start := rng.Uint64n(3200)
			length := 1 + rng.Uint64n(3000)

			got, err := p.MinOverRange(start, length)
			require.NoError(t, err)
			require.Equal(t, testutil.BruteMin(p.Apply, start, length), got,
				"round %d range (%d, %d)", round, start, length)
		}
	}
}

func TestPropagateImageIsExact(t *testing.T) {
	rng := testutil.NewRNG(11)

	for round := 0; round < 100; round++ {
		p := randomPipeline(t, rng, 1+rng.Intn(4), 600, 120)
		start := rng.Uint64n(600)
		length := 1 + rng.Uint64n(400)

		want := make(map[uint64]struct{})
		for k := start; k < start+length; k++ {
			want[p.Apply(k)] = struct{}{}
		}

		got := make(map[uint64]struct{})
		spans := p.propagate(start, start+length-1)
		for i, sp := range spans {
			require.LessOrEqual(t, sp.lo, sp.hi)
			if i > 0 {
				// Sorted, disjoint and not adjacent after coalescing.
				require.Greater(t, sp.lo, spans[i-1].hi+1)
			}
			for v := sp.lo; v <= sp.hi; v++ {
				got[v] = struct{}{}
			}
		}
		require.Equal(t, want, got, "round %d", round)
	}
}

func TestMinOverRangeOutsideAllSegments(t *testing.T) {
	p := newExamplePipeline(t, LookupSorted)

	got, err := p.MinOverRange(1_000_000, 5_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), got)
}

func TestMinOverRangeSingleKey(t *testing.T) {
	p := newExamplePipeline(t, LookupSorted)

	for _, seed := range testutil.ExampleSeeds {
		got, err := p.MinOverRange(seed, 1)
		require.NoError(t, err)
		assert.Equal(t, p.Apply(seed), got)
	}
}

func TestMinOverRangeHugeRange(t *testing.T) {
	st, err := NewStage([]Segment{
		NewSegment(5, 1<<40, 1<<20),
		NewSegment(1<<50, 0, 1<<30),
	})
	require.NoError(t, err)
	p, err := NewPipeline([]*Stage{st})
	require.NoError(t, err)

	// Covers almost the whole domain; must not enumerate.
	got, err := p.MinOverRange(0, math.MaxUint64)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), got)

	got, err = p.MinOverRange(1<<30, 1<<45)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), got)
}

func TestMinOverRangeTopOfDomain(t *testing.T) {
	st, err := NewStage([]Segment{NewSegment(3, math.MaxUint64-1, 2)})
	require.NoError(t, err)
	p, err := NewPipeline([]*Stage{st})
	require.NoError(t, err)

	got, err := p.MinOverRange(math.MaxUint64-9, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got)

	got, err = p.MinOverRange(math.MaxUint64, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), got)
}

func TestMinOverRangeInvalid(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	p := newExamplePipeline(t, LookupSorted, WithMetricsCollector(metrics))

	tests := []struct {
		name          string
		start, length uint64
		cause         error
	}{
		{"zero length", 79, 0, ErrZeroLength},
		{"wraps", math.MaxUint64, 2, ErrOverflow},
		{"wraps far", math.MaxUint64 - 3, math.MaxUint64, ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.MinOverRange(tt.start, tt.length)
			require.ErrorIs(t, err, ErrInvalidRange)
			require.ErrorIs(t, err, tt.cause)

			var re *InvalidRangeError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.start, re.Start)
			assert.Equal(t, tt.length, re.Length)
		})
	}

	assert.Equal(t, int64(len(tests)), metrics.GetStats().RangeQueryErrors)
}

func TestBisectHeuristicCanOverestimate(t *testing.T) {
	// [0,2] -> [10,12], [3,5] -> [0,2], [6,9] -> [16,19]: the endpoints 0 and 9
	// map to 10 and 19, a unit slope across the whole range, yet key 3 maps to 0.
	st, err := NewStage([]Segment{
		NewSegment(10, 0, 3),
		NewSegment(0, 3, 3),
		NewSegment(16, 6, 4),
	})
	require.NoError(t, err)

	exact, err := NewPipeline([]*Stage{st})
	require.NoError(t, err)
	bisect, err := NewPipeline([]*Stage{st}, WithRangeStrategy(RangeBisect))
	require.NoError(t, err)

	got, err := exact.MinOverRange(0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)

	got, err = bisect.MinOverRange(0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), got)
}

func TestBisectNeverUnderestimates(t *testing.T) {
	rng := testutil.NewRNG(3)

	for round := 0; round < 100; round++ {
		seed := rng.Uint64()
		exact := randomPipeline(t, testutil.NewRNG(int64(seed>>1)), 3, 2000, 300)
		bisect, err := NewPipeline(exact.Stages(), WithRangeStrategy(RangeBisect))
		require.NoError(t, err)

		start := rng.Uint64n(2000)
		length := 1 + rng.Uint64n(2000)

		want, err := exact.MinOverRange(start, length)
		require.NoError(t, err)
		got, err := bisect.MinOverRange(start, length)
		require.NoError(t, err)

		// Every value bisect reports is attained by some key in the range.
		assert.GreaterOrEqual(t, got, want)
	}
}

func TestCoalesce(t *testing.T) {
	got := coalesce([]span{{20, 30}, {0, 4}, {5, 9}, {25, 40}, {50, 50}, {42, 48}})
	assert.Equal(t, []span{{0, 9}, {20, 40}, {42, 48}, {50, 50}}, got)

	got = coalesce([]span{{10, math.MaxUint64}, {0, 3}, {math.MaxUint64, math.MaxUint64}})
	assert.Equal(t, []span{{0, 3}, {10, math.MaxUint64}}, got)

	assert.Empty(t, coalesce(nil))
}

func TestParseRangeStrategy(t *testing.T) {
	s, err := ParseRangeStrategy("bisect")
	require.NoError(t, err)
	assert.Equal(t, RangeBisect, s)

	s, err = ParseRangeStrategy("")
	require.NoError(t, err)
	assert.Equal(t, RangeExact, s)

	_, err = ParseRangeStrategy("sample")
	require.Error(t, err)
}

func BenchmarkMinOverRange(b *testing.B) {
	rng := testutil.NewRNG(1)
	p := randomPipeline(b, rng, 7, 1<<32, 1<<28)

	b.Run("exact", func(b *testing.B) {
		for b.Loop() {
			_, _ = p.MinOverRange(1<<20, 1<<31)
		}
	})
}
