package remap

import (
	"errors"
	"fmt"

	"github.com/hupe1980/remap/internal/conv"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("invalid stage")

	// ErrOverlap indicates two segments of one stage share source keys.
	ErrOverlap = errors.New("overlapping segments")

	// ErrZeroLength indicates a segment with no keys.
	ErrZeroLength = errors.New("zero-length segment")

	// ErrOverflow indicates a segment or range that does not fit in uint64.
	ErrOverflow = conv.ErrOverflow

	// ErrInvalidRange is matched by every *InvalidRangeError.
	ErrInvalidRange = errors.New("invalid range")

	// ErrEmptyKeys is returned when a minimum is requested over no keys.
	ErrEmptyKeys = errors.New("no keys")

	// ErrNilStage is returned when a pipeline is built with a nil stage.
	ErrNilStage = errors.New("nil stage")
)

// ValidationError reports why a stage could not be built.
//
// Index (and Other, for overlaps) refer to positions in the sorted segment
// order. The underlying reason (ErrOverlap, ErrZeroLength, ErrOverflow) can be
// accessed via errors.Unwrap / errors.Is.
type ValidationError struct {
	Stage string
	Index int
	Other int
	cause error
}

func (e *ValidationError) Error() string {
	name := e.Stage
	if name == "" {
		name = "<unnamed>"
	}
	if errors.Is(e.cause, ErrOverlap) {
		return fmt.Sprintf("stage %s: segment %d overlaps segment %d", name, e.Index, e.Other)
	}
	return fmt.Sprintf("stage %s: segment %d: %v", name, e.Index, e.cause)
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) Unwrap() error { return e.cause }

// InvalidRangeError reports a range query that was rejected before any work.
type InvalidRangeError struct {
	Start  uint64
	Length uint64
	cause  error
}

func (e *InvalidRangeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("invalid range (start=%d, length=%d): %v", e.Start, e.Length, e.cause)
	}
	return fmt.Sprintf("invalid range (start=%d, length=%d)", e.Start, e.Length)
}

// Is makes every InvalidRangeError match ErrInvalidRange.
func (e *InvalidRangeError) Is(target error) bool { return target == ErrInvalidRange }

func (e *InvalidRangeError) Unwrap() error { return e.cause }
