package remap

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/hupe1980/remap/internal/lookup"
)

// LookupStrategy selects how a Stage resolves a single key.
// All strategies produce identical results.
type LookupStrategy uint8

const (
	// LookupSorted resolves keys by binary search over the sorted segments.
	LookupSorted LookupStrategy = iota
	// LookupBTree resolves keys by a floor search in an ordered B-tree.
	LookupBTree
)

func (s LookupStrategy) kind() lookup.Kind {
	if s == LookupBTree {
		return lookup.BTree
	}
	return lookup.Sorted
}

func (s LookupStrategy) String() string { return s.kind().String() }

// ParseLookupStrategy returns the strategy for a name ("sorted" or "btree").
func ParseLookupStrategy(name string) (LookupStrategy, error) {
	k, err := lookup.ParseKind(name)
	if err != nil {
		return 0, err
	}
	if k == lookup.BTree {
		return LookupBTree, nil
	}
	return LookupSorted, nil
}

type stageOptions struct {
	name     string
	strategy LookupStrategy
}

// StageOption configures NewStage.
type StageOption func(*stageOptions)

// WithName labels the stage. The name appears in errors, logs and String.
func WithName(name string) StageOption {
	return func(o *stageOptions) {
		o.name = name
	}
}

// WithLookupStrategy selects the point-lookup strategy. Default: LookupSorted.
func WithLookupStrategy(s LookupStrategy) StageOption {
	return func(o *stageOptions) {
		o.strategy = s
	}
}

// Stage is one mapping layer: an ordered, non-overlapping table of Segments.
// Keys outside every segment map to themselves.
//
// A Stage is immutable after NewStage returns and safe for concurrent use.
type Stage struct {
	name     string
	segments []Segment // sorted by SourceStart, pairwise disjoint
	table    lookup.Table
}

// NewStage sorts the segments by source start and builds a Stage.
//
// It returns a *ValidationError (matching ErrValidation) if a segment is empty,
// does not fit in the uint64 domain, or overlaps another segment. The input
// slice is not modified.
func NewStage(segments []Segment, optFns ...StageOption) (*Stage, error) {
	opts := stageOptions{strategy: LookupSorted}
	for _, fn := range optFns {
		fn(&opts)
	}

	sorted := slices.Clone(segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SourceStart < sorted[j].SourceStart
	})

	bounds := make([]lookup.Bound, len(sorted))
	for i, seg := range sorted {
		if err := seg.Validate(); err != nil {
			return nil, &ValidationError{Stage: opts.name, Index: i, Other: -1, cause: err}
		}
		if i > 0 && seg.SourceStart <= sorted[i-1].Last() {
			return nil, &ValidationError{Stage: opts.name, Index: i, Other: i - 1, cause: ErrOverlap}
		}
		bounds[i] = lookup.Bound{Start: seg.SourceStart, Length: seg.Length}
	}

	table, err := lookup.New(opts.strategy.kind(), bounds)
	if err != nil {
		return nil, err
	}

	return &Stage{
		name:     opts.name,
		segments: sorted,
		table:    table,
	}, nil
}

// Name returns the stage label (may be empty).
func (s *Stage) Name() string { return s.name }

// Len returns the number of segments.
func (s *Stage) Len() int { return len(s.segments) }

// Segments returns a copy of the segments in source order.
func (s *Stage) Segments() []Segment { return slices.Clone(s.segments) }

// LookupStrategy returns the point-lookup strategy of the stage.
func (s *Stage) LookupStrategy() LookupStrategy {
	if s.table.Kind() == lookup.BTree {
		return LookupBTree
	}
	return LookupSorted
}

// Lookup maps one key through the stage in O(log n).
func (s *Stage) Lookup(key uint64) uint64 {
	if i, ok := s.table.Find(key); ok {
		return s.segments[i].Map(key)
	}
	return key
}

// split maps the closed span [sp.lo, sp.hi] through the stage and appends the
// resulting image pieces to out. Each piece lies wholly inside one segment
// (shifted) or wholly outside every segment (unchanged).
func (s *Stage) split(sp span, out []span) []span {
	segs := s.segments
	lo, hi := sp.lo, sp.hi

	// First segment that ends at or after lo.
	i := sort.Search(len(segs), func(i int) bool { return segs[i].Last() >= lo })

	for {
		if i == len(segs) || segs[i].SourceStart > hi {
			return append(out, span{lo: lo, hi: hi})
		}
		seg := segs[i]
		if lo < seg.SourceStart {
			out = append(out, span{lo: lo, hi: seg.SourceStart - 1})
			lo = seg.SourceStart
		}
		end := min(hi, seg.Last())
		out = append(out, span{lo: seg.Map(lo), hi: seg.Map(end)})
		if end == hi {
			return out
		}
		lo = end + 1
		i++
	}
}

func (s *Stage) String() string {
	var sb strings.Builder
	if s.name != "" {
		fmt.Fprintf(&sb, "%s:\n", s.name)
	}
	for _, seg := range s.segments {
		sb.WriteString(seg.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
