package schema

import (
	"fmt"

	"github.com/leengari/relalg/internal/domain/data"
	"github.com/leengari/relalg/internal/domain/types"
)

// TupleStore is the ordered, append-only backing sequence of a table
type TupleStore interface {
	Append(tup data.Tuple) error
	Get(pos int) (data.Tuple, error)
	Len() int
	Close() error
}

// StoreFactory creates the store for a new table
type StoreFactory func(tableName string, domains []types.Domain) (TupleStore, error)

// MemoryStore keeps tuples in a slice
type MemoryStore struct {
	tuples []data.Tuple
}

// NewMemoryStore is a StoreFactory for in-memory tables
func NewMemoryStore(string, []types.Domain) (TupleStore, error) {
	return &MemoryStore{}, nil
}

func (m *MemoryStore) Append(tup data.Tuple) error {
	m.tuples = append(m.tuples, tup)
	return nil
}

func (m *MemoryStore) Get(pos int) (data.Tuple, error) {
	if pos < 0 || pos >= len(m.tuples) {
		return nil, fmt.Errorf("tuple position %d out of range [0,%d)", pos, len(m.tuples))
	}
	return m.tuples[pos], nil
}

func (m *MemoryStore) Len() int {
	return len(m.tuples)
}

func (m *MemoryStore) Close() error {
	return nil
}
