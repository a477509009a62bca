package lookup

import "github.com/google/btree"

// degree is the B-tree branching degree. Stage tables are small, so a low
// degree keeps nodes compact.
const degree = 8

type btreeItem struct {
	start  uint64
	length uint64
	index  int
}

func lessItem(a, b btreeItem) bool { return a.start < b.start }

// btreeTable is an ordered map keyed by interval start.
type btreeTable struct {
	tree *btree.BTreeG[btreeItem]
}

func newBTreeTable(bounds []Bound) *btreeTable {
	tree := btree.NewG[btreeItem](degree, lessItem)
	for i, b := range bounds {
		tree.ReplaceOrInsert(btreeItem{start: b.Start, length: b.Length, index: i})
	}
	return &btreeTable{tree: tree}
}

func (t *btreeTable) Find(key uint64) (int, bool) {
	var (
		floor btreeItem
		found bool
	)
	// Greatest start <= key.
	t.tree.DescendLessOrEqual(btreeItem{start: key}, func(item btreeItem) bool {
		floor = item
		found = true
		return false
	})
	if !found || key-floor.start >= floor.length {
		return 0, false
	}
	return floor.index, true
}

func (t *btreeTable) Len() int { return t.tree.Len() }

func (t *btreeTable) Kind() Kind { return BTree }
