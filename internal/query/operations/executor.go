package operations

import (
	"fmt"
	"log/slog"

	"github.com/leengari/relalg/internal/domain/data"
	"github.com/leengari/relalg/internal/domain/schema"
)

// Executor runs the relational algebra operators. Every operator reads
// its operands through their key index and materializes a new table;
// operands are never modified.
type Executor struct {
	names  schema.NameGenerator
	logger *slog.Logger
	store  schema.StoreFactory
}

// Option configures an Executor
type Option func(*Executor)

// WithNames sets the generator naming derived tables
func WithNames(g schema.NameGenerator) Option {
	return func(e *Executor) {
		if g != nil {
			e.names = g
		}
	}
}

// WithLogger sets the logger receiving the operator trace
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithStore selects the store backing result tables
func WithStore(f schema.StoreFactory) Option {
	return func(e *Executor) {
		if f != nil {
			e.store = f
		}
	}
}

// NewExecutor creates an executor. Result tables are named after their
// left operand followed by a counter starting at 1, kept in memory,
// and traced to slog.Default() unless configured otherwise.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		names:  schema.NewCounter(1),
		logger: slog.Default(),
		store:  schema.NewMemoryStore,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// newResult creates the empty table an operator materializes into
func (e *Executor) newResult(s *schema.Schema) (*schema.Table, error) {
	return schema.NewTableFromSchema(s, schema.WithStore(e.store), schema.WithLogger(e.logger))
}

// trace logs the operation description, e.g. "RA> movie.select (year < 1980)"
func (e *Executor) trace(op string, src *schema.Table, args string, result string) {
	e.logger.Info(fmt.Sprintf("RA> %s.%s (%s)", src.Name, op, args),
		slog.String("table", src.Name),
		slog.String("op", op),
		slog.String("result", result),
	)
}

// done logs the size of a finished result
func (e *Executor) done(op string, result *schema.Table) {
	e.logger.Debug(op+" completed",
		slog.String("result", result.Name),
		slog.Int("result_rows", result.IndexLen()),
	)
}

// abort releases a partially built result
func abort(result *schema.Table, err error) (*schema.Table, error) {
	if cerr := result.Close(); cerr != nil {
		slog.Warn("failed to release result table", "table", result.Name, "error", cerr)
	}
	return nil, err
}

type entry struct {
	key data.KeyType
	tup data.Tuple
}

// snapshot collects the indexed tuples of t in key order, so an operator
// never holds a table's lock while writing its result
func snapshot(t *schema.Table) []entry {
	var out []entry
	t.Scan(func(key data.KeyType, tup data.Tuple) bool {
		out = append(out, entry{key: key, tup: tup})
		return true
	})
	return out
}
