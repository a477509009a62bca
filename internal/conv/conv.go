package conv

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow reports that a computation left the uint64 domain.
var ErrOverflow = errors.New("integer overflow")

// LastOf returns the last element start+length-1 of a half-open span of the
// given length. length must be positive.
func LastOf(start, length uint64) (uint64, error) {
	if length == 0 {
		return 0, fmt.Errorf("%w: zero length span at %d", ErrOverflow, start)
	}
	if start > math.MaxUint64-(length-1) {
		return 0, fmt.Errorf("%w: span [%d, +%d) exceeds uint64", ErrOverflow, start, length)
	}
	return start + (length - 1), nil
}

// IntToUint32 converts int to uint32 safely.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: %d cannot be converted to uint32 (negative)", ErrOverflow, v)
	}
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d cannot be converted to uint32 (too large)", ErrOverflow, v)
	}
	return uint32(v), nil
}
