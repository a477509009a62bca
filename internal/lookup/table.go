package lookup

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned for an unrecognized strategy name.
var ErrUnknownKind = errors.New("unknown lookup strategy")

// Kind selects a Table implementation.
type Kind uint8

const (
	// Sorted uses binary search over a sorted slice.
	Sorted Kind = iota
	// BTree uses a floor lookup in an ordered B-tree.
	BTree
)

// String returns the stable name of the strategy.
func (k Kind) String() string {
	switch k {
	case Sorted:
		return "sorted"
	case BTree:
		return "btree"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind returns the Kind for a strategy name.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sorted", "binary", "binary-search":
		return Sorted, nil
	case "btree", "b-tree", "ordered-map":
		return BTree, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

// Bound is one interval [Start, Start+Length) of a table.
type Bound struct {
	Start  uint64
	Length uint64
}

// Contains reports whether key lies inside the bound.
// The subtraction form avoids computing Start+Length, which may be 2^64.
func (b Bound) Contains(key uint64) bool {
	return key >= b.Start && key-b.Start < b.Length
}

// Table finds the interval that contains a key.
//
// Implementations are immutable after construction and safe for concurrent use.
type Table interface {
	// Find returns the index (into the bounds the table was built from) of the
	// interval containing key, or false if no interval contains it.
	Find(key uint64) (int, bool)

	// Len returns the number of intervals.
	Len() int

	// Kind returns the strategy of this table.
	Kind() Kind
}

// New builds a Table of the given kind.
//
// bounds must be sorted by Start and pairwise disjoint; the caller enforces
// that. New only rejects zero-length bounds.
func New(kind Kind, bounds []Bound) (Table, error) {
	for i, b := range bounds {
		if b.Length == 0 {
			return nil, fmt.Errorf("lookup: bound %d has zero length", i)
		}
	}

	switch kind {
	case Sorted:
		return newSortedTable(bounds), nil
	case BTree:
		return newBTreeTable(bounds), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}
