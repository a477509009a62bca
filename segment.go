package remap

import (
	"fmt"

	"github.com/hupe1980/remap/internal/conv"
)

// Segment is one affine mapping piece:
// keys in [SourceStart, SourceStart+Length) map to DestStart + (key - SourceStart).
type Segment struct {
	SourceStart uint64 `json:"source" yaml:"source"`
	DestStart   uint64 `json:"dest" yaml:"dest"`
	Length      uint64 `json:"length" yaml:"length"`
}

// NewSegment creates a Segment from a (dest, source, length) triple, the
// column order used by stage tables.
func NewSegment(dest, source, length uint64) Segment {
	return Segment{SourceStart: source, DestStart: dest, Length: length}
}

// Contains reports whether key lies in the segment's source domain.
func (s Segment) Contains(key uint64) bool {
	return key >= s.SourceStart && key-s.SourceStart < s.Length
}

// Map translates a key inside the segment. The result is undefined for keys
// the segment does not contain.
func (s Segment) Map(key uint64) uint64 {
	return s.DestStart + (key - s.SourceStart)
}

// Last returns the last source key of a validated segment.
func (s Segment) Last() uint64 {
	return s.SourceStart + (s.Length - 1)
}

// Validate checks that the segment is non-empty and that neither its source
// nor its destination interval leaves the uint64 domain.
func (s Segment) Validate() error {
	if s.Length == 0 {
		return ErrZeroLength
	}
	if _, err := conv.LastOf(s.SourceStart, s.Length); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if _, err := conv.LastOf(s.DestStart, s.Length); err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	return nil
}

func (s Segment) String() string {
	return fmt.Sprintf("[%d..%d] -> [%d..%d]",
		s.SourceStart, s.SourceStart+(s.Length-1), s.DestStart, s.DestStart+(s.Length-1))
}
