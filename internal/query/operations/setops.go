package operations

import (
	"log/slog"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/leengari/relalg/internal/domain/data"
	"github.com/leengari/relalg/internal/domain/schema"
)

// bloomFalsePositiveRate sizes the membership filter used by Minus
const bloomFalsePositiveRate = 0.01

// Union returns every tuple of t plus the tuples of o whose key is not
// already present. Tables are compatible when they have the same
// attribute names in the same order; domains are not compared.
// When they are not compatible the result is a copy of t.
func (e *Executor) Union(t, o *schema.Table) (*schema.Table, error) {
	result, err := e.newResult(t.Schema.Clone(e.names.Next(t.Name)))
	if err != nil {
		return nil, err
	}
	e.trace("union", t, o.Name, result.Name)

	for _, ent := range snapshot(t) {
		if err := result.InsertKeyed(ent.key, ent.tup); err != nil {
			return abort(result, err)
		}
	}

	if !t.Schema.Compatible(o.Schema) {
		e.logger.Debug("union operands are not compatible, keeping left operand",
			slog.String("left", t.Schema.String()),
			slog.String("right", o.Schema.String()),
		)
		e.done("union", result)
		return result, nil
	}

	for _, ent := range snapshot(o) {
		if result.Contains(ent.key) {
			continue
		}
		if err := result.InsertKeyed(ent.key, ent.tup); err != nil {
			return abort(result, err)
		}
	}

	e.done("union", result)
	return result, nil
}

// Minus returns the tuples of t that are not equal, value by value,
// to any tuple of o. Keys play no part in the comparison.
func (e *Executor) Minus(t, o *schema.Table) (*schema.Table, error) {
	result, err := e.newResult(t.Schema.Clone(e.names.Next(t.Name)))
	if err != nil {
		return nil, err
	}
	e.trace("minus", t, o.Name, result.Name)

	others := snapshot(o)
	filter := bloom.NewWithEstimates(uint(max(len(others), 1)), bloomFalsePositiveRate)
	for _, ent := range others {
		filter.Add(ent.tup.Fingerprint())
	}

	probes := 0
	for _, ent := range snapshot(t) {
		if filter.Test(ent.tup.Fingerprint()) {
			probes++
			if containsValue(others, ent.tup) {
				continue
			}
		}
		if err := result.InsertKeyed(ent.key, ent.tup); err != nil {
			return abort(result, err)
		}
	}

	e.logger.Debug("minus filter",
		slog.Int("right_rows", len(others)),
		slog.Int("exact_probes", probes),
	)
	e.done("minus", result)
	return result, nil
}

// containsValue reports whether any entry holds a tuple equal to tup
func containsValue(entries []entry, tup data.Tuple) bool {
	for _, ent := range entries {
		if ent.tup.Equal(tup) {
			return true
		}
	}
	return false
}
