package lookup

import "sort"

// sortedTable stores interval starts and lengths in two aligned columns.
// Binary search touches only the starts column.
type sortedTable struct {
	starts  []uint64
	lengths []uint64
}

func newSortedTable(bounds []Bound) *sortedTable {
	t := &sortedTable{
		starts:  make([]uint64, len(bounds)),
		lengths: make([]uint64, len(bounds)),
	}
	for i, b := range bounds {
		t.starts[i] = b.Start
		t.lengths[i] = b.Length
	}
	return t
}

func (t *sortedTable) Find(key uint64) (int, bool) {
	// First interval starting after key; the candidate is the one before it.
	i := sort.Search(len(t.starts), func(i int) bool { return t.starts[i] > key })
	if i == 0 {
		return 0, false
	}
	i--
	if key-t.starts[i] < t.lengths[i] {
		return i, true
	}
	return 0, false
}

func (t *sortedTable) Len() int { return len(t.starts) }

func (t *sortedTable) Kind() Kind { return Sorted }
