package schema

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/leengari/relalg/internal/domain/data"
	"github.com/leengari/relalg/internal/domain/errors"
)

// Table represents a relation: its schema, the append-only tuple store
// and the key index that all algebra operators iterate
type Table struct {
	mu     sync.RWMutex
	Name   string
	Schema *Schema
	store  TupleStore
	index  *data.Index
	keyPos []int
	logger *slog.Logger
}

// Option configures a new table
type Option func(*tableOptions)

type tableOptions struct {
	store  StoreFactory
	logger *slog.Logger
}

// WithStore selects the backing store of the table
func WithStore(f StoreFactory) Option {
	return func(o *tableOptions) {
		if f != nil {
			o.store = f
		}
	}
}

// WithLogger sets the logger used for DDL/DML trace records
func WithLogger(l *slog.Logger) Option {
	return func(o *tableOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewTable creates an empty table from the raw schema strings,
// e.g. NewTable("studio", "name address presNo", "String String Integer", "name")
func NewTable(name, attributes, domains, key string, opts ...Option) (*Table, error) {
	s, err := Parse(name, attributes, domains, key)
	if err != nil {
		return nil, err
	}
	t, err := NewTableFromSchema(s, opts...)
	if err != nil {
		return nil, err
	}
	t.logger.Info(fmt.Sprintf("DDL> create table %s (%s)", name, attributes),
		slog.String("table", name),
		slog.String("op", "create"),
	)
	return t, nil
}

// NewTableFromSchema creates an empty table owning the given schema
func NewTableFromSchema(s *Schema, opts ...Option) (*Table, error) {
	o := tableOptions{store: NewMemoryStore, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	store, err := o.store(s.TableName, s.Domains)
	if err != nil {
		return nil, fmt.Errorf("failed to create store for table %s: %w", s.TableName, err)
	}

	return &Table{
		Name:   s.TableName,
		Schema: s,
		store:  store,
		index:  data.NewIndex(),
		keyPos: s.KeyPositions(),
		logger: o.logger,
	}, nil
}

// NewTableFrom creates an empty table with the metadata of src,
// named src.Name followed by suffix
func NewTableFrom(src *Table, suffix string, opts ...Option) (*Table, error) {
	return NewTableFromSchema(src.Schema.Clone(src.Name+suffix), opts...)
}

// RLock acquires a read lock on the table for read operations
func (t *Table) RLock() {
	t.mu.RLock()
}

// RUnlock releases the read lock
func (t *Table) RUnlock() {
	t.mu.RUnlock()
}

// Insert validates tup against the schema, appends it to the store and
// indexes it under its key values. On failure the table is unchanged.
func (t *Table) Insert(tup data.Tuple) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.logger.Info(fmt.Sprintf("DML> insert into %s values %s", t.Name, tup),
		slog.String("table", t.Name),
		slog.String("op", "insert"),
	)

	if err := t.typeCheck(tup); err != nil {
		slog.Debug("insert rejected", "table", t.Name, "error", err)
		return err
	}

	return t.appendUnsafe(data.KeyOf(tup, t.keyPos), tup.Copy())
}

// InsertKeyed appends an already validated tuple and indexes it under key.
// Algebra operators use it to materialize their results.
func (t *Table) InsertKeyed(key data.KeyType, tup data.Tuple) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.appendUnsafe(key, tup)
}

// appendUnsafe must be called while holding the write lock
func (t *Table) appendUnsafe(key data.KeyType, tup data.Tuple) error {
	if err := t.store.Append(tup); err != nil {
		return fmt.Errorf("failed to append to table %s: %w", t.Name, err)
	}
	if t.index.Put(key, tup) {
		slog.Debug("key collision, index entry replaced", "table", t.Name, "key", key.String())
	}
	return nil
}

// typeCheck verifies arity and the exact domain of every value
func (t *Table) typeCheck(tup data.Tuple) error {
	if len(tup) != t.Schema.Arity() {
		return errors.NewArityMismatch(t.Name, len(tup), t.Schema.Arity())
	}
	for i, v := range tup {
		if v.Domain() != t.Schema.Domains[i] {
			return errors.NewTypeMismatch(t.Name, t.Schema.Attributes[i], v.String(), t.Schema.Domains[i].String())
		}
	}
	return nil
}

// KeyOf returns the key of tup under this table's schema
func (t *Table) KeyOf(tup data.Tuple) data.KeyType {
	return data.KeyOf(tup, t.keyPos)
}

// Scan calls fn for every indexed tuple in key order until fn returns false
func (t *Table) Scan(fn func(key data.KeyType, tup data.Tuple) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	t.index.Ascend(fn)
}

// Lookup returns the indexed tuple for key
func (t *Table) Lookup(key data.KeyType) (data.Tuple, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.index.Get(key)
}

// Contains reports whether key is indexed
func (t *Table) Contains(key data.KeyType) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.index.Contains(key)
}

// Len returns the number of stored tuples, including ones whose index
// entry was replaced by a later insert with the same key
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.store.Len()
}

// IndexLen returns the number of distinct keys
func (t *Table) IndexLen() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.index.Len()
}

// Tuples returns all stored tuples in insertion order
func (t *Table) Tuples() ([]data.Tuple, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]data.Tuple, t.store.Len())
	for i := range out {
		tup, err := t.store.Get(i)
		if err != nil {
			return nil, err
		}
		out[i] = tup
	}
	return out, nil
}

// Rows returns the indexed tuples in key order
func (t *Table) Rows() []data.Tuple {
	var out []data.Tuple
	t.Scan(func(_ data.KeyType, tup data.Tuple) bool {
		out = append(out, tup)
		return true
	})
	return out
}

// Close releases the table's store
func (t *Table) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.Close()
}
