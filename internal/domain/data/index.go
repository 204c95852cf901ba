package data

import "github.com/google/btree"

// indexDegree is the branching factor of the index B-tree
const indexDegree = 32

type entry struct {
	key   KeyType
	tuple Tuple
}

// Index is a sorted map from composite key to tuple.
// Inserting an existing key replaces its tuple (last write wins).
type Index struct {
	tree *btree.BTreeG[entry]
}

// NewIndex creates an empty index
func NewIndex() *Index {
	return &Index{
		tree: btree.NewG(indexDegree, func(a, b entry) bool {
			return a.key.Less(b.key)
		}),
	}
}

// Put maps key to tuple and reports whether an earlier entry was replaced
func (idx *Index) Put(key KeyType, tuple Tuple) bool {
	_, replaced := idx.tree.ReplaceOrInsert(entry{key: key, tuple: tuple})
	return replaced
}

// Get returns the tuple stored under key
func (idx *Index) Get(key KeyType) (Tuple, bool) {
	e, ok := idx.tree.Get(entry{key: key})
	if !ok {
		return nil, false
	}
	return e.tuple, true
}

// Contains reports whether key has an entry
func (idx *Index) Contains(key KeyType) bool {
	return idx.tree.Has(entry{key: key})
}

// Len returns the number of distinct keys
func (idx *Index) Len() int {
	return idx.tree.Len()
}

// Ascend calls fn for every entry in key order until fn returns false
func (idx *Index) Ascend(fn func(key KeyType, tuple Tuple) bool) {
	idx.tree.Ascend(func(e entry) bool {
		return fn(e.key, e.tuple)
	})
}
