package almanac

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hupe1980/remap"
)

var (
	// ErrOddSeeds is returned by SeedRanges when seeds do not form pairs.
	ErrOddSeeds = errors.New("seed count is odd")

	// ErrNoSeeds is returned when an operation needs seeds and there are none.
	ErrNoSeeds = errors.New("no seeds")

	// ErrBrokenChain is matched by every *ChainError.
	ErrBrokenChain = errors.New("stage chain broken")
)

// ChainError reports two adjacent stages whose categories do not line up.
type ChainError struct {
	Index       int // index of the later stage
	Destination string
	Source      string
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("stage %d: source %q does not follow destination %q", e.Index, e.Source, e.Destination)
}

// Is makes every ChainError match ErrBrokenChain.
func (e *ChainError) Is(target error) bool { return target == ErrBrokenChain }

// StageDef is one named stage table.
//
// Segments keep the order they were read in; sorting happens when the stage
// is built.
type StageDef struct {
	Name        string          `json:"name" yaml:"name"`
	Source      string          `json:"source,omitempty" yaml:"source,omitempty"`
	Destination string          `json:"destination,omitempty" yaml:"destination,omitempty"`
	Segments    []remap.Segment `json:"segments" yaml:"segments"`
}

// Almanac is a parsed definition: optional seeds and the ordered stages.
type Almanac struct {
	Seeds  []uint64   `json:"seeds,omitempty" yaml:"seeds,omitempty"`
	Stages []StageDef `json:"stages" yaml:"stages"`
}

// SeedRanges interprets Seeds as (start, length) pairs.
func (a *Almanac) SeedRanges() ([]remap.Range, error) {
	if len(a.Seeds) == 0 {
		return nil, ErrNoSeeds
	}
	if len(a.Seeds)%2 != 0 {
		return nil, fmt.Errorf("%w: %d seeds", ErrOddSeeds, len(a.Seeds))
	}

	ranges := make([]remap.Range, 0, len(a.Seeds)/2)
	for pair := range slices.Chunk(a.Seeds, 2) {
		r := remap.Range{Start: pair[0], Length: pair[1]}
		if err := r.Validate(); err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

// Validate checks that each stage consumes the category the previous stage
// produces. Stages without categories are not checked.
func (a *Almanac) Validate() error {
	for i := 1; i < len(a.Stages); i++ {
		prev, cur := a.Stages[i-1], a.Stages[i]
		if prev.Destination == "" || cur.Source == "" {
			continue
		}
		if prev.Destination != cur.Source {
			return &ChainError{Index: i, Destination: prev.Destination, Source: cur.Source}
		}
	}
	return nil
}

// Builder returns a remap.Builder holding every stage, so callers can pick
// lookup and range strategies before building.
func (a *Almanac) Builder() remap.Builder {
	b := remap.NewBuilder()
	for _, st := range a.Stages {
		b = b.Stage(st.Name, st.Segments...)
	}
	return b
}

// Pipeline validates the chain and builds a pipeline with the given options.
func (a *Almanac) Pipeline(opts ...remap.Option) (*remap.Pipeline, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a.Builder().With(opts...).Build()
}

// Clone returns a deep copy.
func (a *Almanac) Clone() *Almanac {
	out := &Almanac{
		Seeds:  slices.Clone(a.Seeds),
		Stages: make([]StageDef, len(a.Stages)),
	}
	for i, st := range a.Stages {
		st.Segments = slices.Clone(st.Segments)
		out.Stages[i] = st
	}
	return out
}
