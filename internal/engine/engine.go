package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leengari/relalg/internal/domain/data"
	"github.com/leengari/relalg/internal/domain/schema"
	"github.com/leengari/relalg/internal/query/operations"
)

// Engine is a catalog of named tables. It creates and fills base tables
// and runs the algebra operators over them, registering every result
// under its generated name.
type Engine struct {
	mu        sync.RWMutex
	tables    map[string]*schema.Table
	executor  *operations.Executor
	store     schema.StoreFactory
	logger    *slog.Logger
	observers []Observer // Observers for lifecycle events
}

// Option configures an Engine
type Option func(*options)

type options struct {
	store  schema.StoreFactory
	logger *slog.Logger
	names  schema.NameGenerator
}

// WithStore selects the store backing every table of the catalog
func WithStore(f schema.StoreFactory) Option {
	return func(o *options) { o.store = f }
}

// WithLogger sets the logger for the DDL/DML/RA trace
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithNames sets the generator naming derived tables
func WithNames(g schema.NameGenerator) Option {
	return func(o *options) { o.names = g }
}

// New creates an empty catalog
func New(opts ...Option) *Engine {
	o := options{store: schema.NewMemoryStore, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.store == nil {
		o.store = schema.NewMemoryStore
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.names == nil {
		o.names = schema.NewCounter(1)
	}

	e := &Engine{
		tables:    make(map[string]*schema.Table),
		store:     o.store,
		logger:    o.logger,
		observers: make([]Observer, 0),
	}
	e.executor = operations.NewExecutor(
		operations.WithStore(o.store),
		operations.WithLogger(o.logger),
		operations.WithNames(&catalogNames{gen: o.names, eng: e}),
	)
	return e
}

// CreateTable declares a new base table from the raw schema strings
func (e *Engine) CreateTable(name, attributes, domains, key string) (*schema.Table, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.tables[name]; exists {
		return nil, &TableExistsError{Name: name}
	}

	t, err := schema.NewTable(name, attributes, domains, key, schema.WithStore(e.store), schema.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}
	e.tables[name] = t
	e.notify(Event{Type: EventCreateTable, Table: name, Data: t.Schema.String()})
	return t, nil
}

// Insert adds a tuple to the named table
func (e *Engine) Insert(name string, tup data.Tuple) error {
	t, err := e.lookup(name)
	if err != nil {
		return err
	}
	if err := t.Insert(tup); err != nil {
		return err
	}
	e.notify(Event{Type: EventInsert, Table: name, Data: tup.String()})
	return nil
}

// Table returns the named table
func (e *Engine) Table(name string) (*schema.Table, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	t, ok := e.tables[name]
	return t, ok
}

// ListTables returns the names of all tables in the catalog, sorted
func (e *Engine) ListTables() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.tables))
	for name := range e.tables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Drop removes a table from the catalog and releases its store
func (e *Engine) Drop(name string) error {
	e.mu.Lock()
	t, ok := e.tables[name]
	delete(e.tables, name)
	e.mu.Unlock()

	if !ok {
		return &TableNotFoundError{Name: name}
	}
	return t.Close()
}

// Select runs select(cond) over the named table
func (e *Engine) Select(name, cond string) (*schema.Table, error) {
	return e.run(name, fmt.Sprintf("select (%s)", cond), func(t *schema.Table) (*schema.Table, error) {
		return e.executor.Select(t, cond)
	})
}

// Project runs project(attributes) over the named table
func (e *Engine) Project(name, attributes string) (*schema.Table, error) {
	return e.run(name, fmt.Sprintf("project (%s)", attributes), func(t *schema.Table) (*schema.Table, error) {
		return e.executor.Project(t, attributes)
	})
}

// Union runs left.union(right)
func (e *Engine) Union(left, right string) (*schema.Table, error) {
	return e.binary(left, right, "union", func(l, r *schema.Table) (*schema.Table, error) {
		return e.executor.Union(l, r)
	})
}

// Minus runs left.minus(right)
func (e *Engine) Minus(left, right string) (*schema.Table, error) {
	return e.binary(left, right, "minus", func(l, r *schema.Table) (*schema.Table, error) {
		return e.executor.Minus(l, r)
	})
}

// Join runs left.join(cond, right)
func (e *Engine) Join(left, cond, right string) (*schema.Table, error) {
	return e.binary(left, right, fmt.Sprintf("join (%s)", cond), func(l, r *schema.Table) (*schema.Table, error) {
		return e.executor.Join(l, cond, r)
	})
}

// binary resolves the right operand and runs a two-table operator
func (e *Engine) binary(left, right, desc string, fn func(l, r *schema.Table) (*schema.Table, error)) (*schema.Table, error) {
	r, err := e.lookup(right)
	if err != nil {
		return nil, err
	}
	return e.run(left, fmt.Sprintf("%s %s", desc, right), func(l *schema.Table) (*schema.Table, error) {
		return fn(l, r)
	})
}

// run executes one operator with lifecycle events and registers its result
func (e *Engine) run(name, desc string, fn func(t *schema.Table) (*schema.Table, error)) (*schema.Table, error) {
	t, err := e.lookup(name)
	if err != nil {
		return nil, err
	}

	opID := uuid.NewString()
	start := time.Now()
	e.notify(Event{Type: EventOpStart, OpID: opID, Table: name, Data: desc})

	result, err := fn(t)
	if err != nil {
		e.notify(Event{Type: EventOpError, OpID: opID, Table: name, Data: err.Error()})
		return nil, fmt.Errorf("%s.%s: %w", name, desc, err)
	}

	if err := e.register(result); err != nil {
		e.notify(Event{Type: EventOpError, OpID: opID, Table: name, Data: err.Error()})
		return nil, fmt.Errorf("%s.%s: %w", name, desc, err)
	}

	e.notify(Event{Type: EventOpEnd, OpID: opID, Table: name, Data: map[string]any{
		"result":      result.Name,
		"result_rows": result.IndexLen(),
		"duration":    time.Since(start),
	}})
	return result, nil
}

// register adds an operator result to the catalog. A result whose name
// is already taken is released and never replaces the existing table.
func (e *Engine) register(result *schema.Table) error {
	e.mu.Lock()
	_, taken := e.tables[result.Name]
	if !taken {
		e.tables[result.Name] = result
	}
	e.mu.Unlock()

	if !taken {
		return nil
	}
	if err := result.Close(); err != nil {
		e.logger.Warn("failed to release result table", "table", result.Name, "error", err)
	}
	return &TableExistsError{Name: result.Name}
}

func (e *Engine) lookup(name string) (*schema.Table, error) {
	t, ok := e.Table(name)
	if !ok {
		return nil, &TableNotFoundError{Name: name}
	}
	return t, nil
}

// Close releases every table of the catalog
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var firstErr error
	for name, t := range e.tables {
		if err := t.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close table %s: %w", name, err)
		}
	}
	e.tables = make(map[string]*schema.Table)
	return firstErr
}

// AddObserver registers an observer to receive lifecycle events
func (e *Engine) AddObserver(observer Observer) {
	e.observers = append(e.observers, observer)
}

// RemoveObserver unregisters an observer
func (e *Engine) RemoveObserver(observer Observer) {
	for i, o := range e.observers {
		if o == observer {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (e *Engine) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range e.observers {
		observer.OnEvent(event)
	}
}
