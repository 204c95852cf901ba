package data

import "github.com/leengari/relalg/internal/domain/types"

// KeyType is a composite key: the projection of a tuple onto the key
// attributes. Keys are ordered lexicographically, component by component.
type KeyType struct {
	values []types.Value
}

// NewKey builds a key from its component values
func NewKey(values ...types.Value) KeyType {
	c := make([]types.Value, len(values))
	copy(c, values)
	return KeyType{values: c}
}

// KeyOf projects a tuple onto the given column positions
func KeyOf(t Tuple, cols []int) KeyType {
	return KeyType{values: t.Extract(cols)}
}

// Values returns a copy of the key components
func (k KeyType) Values() []types.Value {
	c := make([]types.Value, len(k.values))
	copy(c, k.values)
	return c
}

// Len returns the number of key components
func (k KeyType) Len() int {
	return len(k.values)
}

// Compare orders k relative to o. Components that cannot be compared
// (different non-numeric domains) fall back to ordering by domain tag, so
// the order stays total for any pair of keys. A shorter key that is a
// prefix of a longer one sorts first.
func (k KeyType) Compare(o KeyType) int {
	n := min(len(k.values), len(o.values))
	for i := 0; i < n; i++ {
		c, err := types.Compare(k.values[i], o.values[i])
		if err != nil {
			c = int(k.values[i].Domain()) - int(o.values[i].Domain())
		}
		if c != 0 {
			return c
		}
	}
	return len(k.values) - len(o.values)
}

// Less reports whether k sorts before o
func (k KeyType) Less(o KeyType) bool {
	return k.Compare(o) < 0
}

// Equal reports structural equality
func (k KeyType) Equal(o KeyType) bool {
	return k.Compare(o) == 0
}

func (k KeyType) String() string {
	return Tuple(k.values).String()
}
