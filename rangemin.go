package remap

import (
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/remap/internal/conv"
)

// RangeStrategy selects the algorithm behind MinOverRange.
type RangeStrategy uint8

const (
	// RangeExact propagates the input range stage by stage as a set of
	// contiguous spans, splitting at segment boundaries. Always exact.
	RangeExact RangeStrategy = iota

	// RangeBisect bisects the input range until the endpoints of a piece
	// imply a unit-slope mapping, then takes the piece's first value.
	//
	// This is a heuristic. A piece can cross internal boundaries whose shifts
	// cancel out at the endpoints, in which case the reported minimum is too
	// high. Use it only where that has been ruled out for the tables at hand.
	RangeBisect
)

func (s RangeStrategy) String() string {
	switch s {
	case RangeExact:
		return "exact"
	case RangeBisect:
		return "bisect"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
}

// ParseRangeStrategy returns the strategy for a name ("exact" or "bisect").
func ParseRangeStrategy(name string) (RangeStrategy, error) {
	switch name {
	case "", "exact":
		return RangeExact, nil
	case "bisect":
		return RangeBisect, nil
	default:
		return 0, fmt.Errorf("unknown range strategy %q", name)
	}
}

// Range is a contiguous set of keys [Start, Start+Length-1].
type Range struct {
	Start  uint64 `json:"start" yaml:"start"`
	Length uint64 `json:"length" yaml:"length"`
}

// Last returns the last key of the range. It returns an *InvalidRangeError for
// an empty range or one that runs past the uint64 domain.
func (r Range) Last() (uint64, error) {
	if r.Length == 0 {
		return 0, &InvalidRangeError{Start: r.Start, Length: r.Length, cause: ErrZeroLength}
	}
	last, err := conv.LastOf(r.Start, r.Length)
	if err != nil {
		return 0, &InvalidRangeError{Start: r.Start, Length: r.Length, cause: err}
	}
	return last, nil
}

// Validate checks the range without computing anything.
func (r Range) Validate() error {
	_, err := r.Last()
	return err
}

// span is a closed interval [lo, hi] with lo <= hi.
type span struct {
	lo, hi uint64
}

// coalesce sorts spans and merges overlapping or adjacent ones in place.
// Only the union of the spans matters for a minimum, so merging keeps the
// working set bounded by the number of segment boundaries rather than growing
// with every stage.
func coalesce(spans []span) []span {
	if len(spans) < 2 {
		return spans
	}
	slices.SortFunc(spans, func(a, b span) int {
		switch {
		case a.lo < b.lo:
			return -1
		case a.lo > b.lo:
			return 1
		default:
			return 0
		}
	})

	out := spans[:1]
	for _, sp := range spans[1:] {
		cur := &out[len(out)-1]
		if cur.hi == math.MaxUint64 || sp.lo <= cur.hi+1 {
			cur.hi = max(cur.hi, sp.hi)
			continue
		}
		out = append(out, sp)
	}
	return out
}

// propagate returns the image of [lo, hi] under the pipeline as a sorted set of
// disjoint spans.
func (p *Pipeline) propagate(lo, hi uint64) []span {
	cur := []span{{lo: lo, hi: hi}}
	next := make([]span, 0, 4)

	for _, st := range p.stages {
		next = next[:0]
		for _, sp := range cur {
			next = st.split(sp, next)
		}
		cur, next = coalesce(next), cur
	}
	return cur
}

// minExact returns the minimum of Apply over [lo, hi] and the number of spans
// that reached the last stage.
func (p *Pipeline) minExact(lo, hi uint64) (uint64, int) {
	spans := p.propagate(lo, hi)
	// Spans are sorted and each maps its keys in increasing order.
	return spans[0].lo, len(spans)
}

// minBisect evaluates the bisection heuristic with an explicit stack. The
// stack never holds more than one pending sibling per level, so its depth is
// bounded by 64 regardless of the range length.
func (p *Pipeline) minBisect(lo, hi uint64) (uint64, int) {
	best := uint64(math.MaxUint64)
	pieces := 0
	stack := []span{{lo: lo, hi: hi}}

	for len(stack) > 0 {
		sp := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		loVal := p.Apply(sp.lo)
		if sp.lo == sp.hi {
			best = min(best, loVal)
			pieces++
			continue
		}
		hiVal := p.Apply(sp.hi)
		if loVal < hiVal && hiVal-loVal == sp.hi-sp.lo {
			best = min(best, loVal)
			pieces++
			continue
		}

		mid := sp.lo + (sp.hi-sp.lo)/2
		stack = append(stack, span{lo: mid + 1, hi: sp.hi}, span{lo: sp.lo, hi: mid})
	}
	return best, pieces
}
