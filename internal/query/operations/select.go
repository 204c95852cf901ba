package operations

import (
	"github.com/leengari/relalg/internal/domain/schema"
	"github.com/leengari/relalg/internal/query/condition"
)

// Select returns the tuples of t satisfying condition, under their
// original keys, e.g. Select(movie, "1979 < year & year < 1990").
// A blank condition selects every tuple.
func (e *Executor) Select(t *schema.Table, cond string) (*schema.Table, error) {
	name := e.names.Next(t.Name)
	e.trace("select", t, cond, name)

	postfix, err := condition.Compile(cond)
	if err != nil {
		return nil, err
	}

	result, err := e.newResult(t.Schema.Clone(name))
	if err != nil {
		return nil, err
	}

	for _, ent := range snapshot(t) {
		ok, err := postfix.Eval(t.Schema, ent.tup)
		if err != nil {
			return abort(result, err)
		}
		if !ok {
			continue
		}
		if err := result.InsertKeyed(ent.key, ent.tup); err != nil {
			return abort(result, err)
		}
	}

	e.done("select", result)
	return result, nil
}
