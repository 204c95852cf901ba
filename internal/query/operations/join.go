package operations

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/leengari/relalg/internal/domain/data"
	"github.com/leengari/relalg/internal/domain/schema"
	"github.com/leengari/relalg/internal/query/condition"
)

// Join pairs every tuple of t with every tuple of o and keeps the
// concatenations satisfying cond, e.g. Join(movie, "studioName == name", studio).
//
// Attributes of o that also occur in t are renamed with the first letter
// of o's name and an underscore (name -> s_name for studio). A condition
// may refer to them either way: "s.name" is read as "s_name". The renaming
// happens on a copy; o's schema is left as it was.
//
// The result key is t's key when the right operand of the first clause is
// one of o's key attributes, o's key when the left operand is one of t's
// key attributes, and both keys concatenated otherwise.
func (e *Executor) Join(t *schema.Table, cond string, o *schema.Table) (*schema.Table, error) {
	name := e.names.Next(t.Name)
	e.trace("join", t, fmt.Sprintf("%s, %s", cond, o.Name), name)

	postfix, err := condition.Compile(cond)
	if err != nil {
		return nil, err
	}
	postfix = postfix.Unqualify()

	right := o.Schema.Disambiguate(t.Schema, renamePrefix(o.Name))

	attrs := slices.Concat(t.Schema.Attributes, right.Attributes)
	domains := slices.Concat(t.Schema.Domains, right.Domains)
	key := joinKey(postfix, t.Schema, right)

	s, err := schema.New(name, attrs, domains, key)
	if err != nil {
		return nil, fmt.Errorf("join %s with %s: %w", t.Name, o.Name, err)
	}
	result, err := e.newResult(s)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("join schema",
		slog.String("left", t.Schema.String()),
		slog.String("right", right.String()),
		slog.Any("key", key),
	)

	lefts, rights := snapshot(t), snapshot(o)
	for _, l := range lefts {
		for _, r := range rights {
			candidate := data.Concat(l.tup, r.tup)
			ok, err := postfix.Eval(s, candidate)
			if err != nil {
				return abort(result, err)
			}
			if !ok {
				continue
			}
			if err := result.InsertKeyed(result.KeyOf(candidate), candidate); err != nil {
				return abort(result, err)
			}
		}
	}

	e.done("join", result)
	return result, nil
}

// renamePrefix is the prefix given to o's attributes clashing with t's
func renamePrefix(tableName string) string {
	for _, r := range tableName {
		return string(r) + "_"
	}
	return "_"
}

// joinKey chooses the key of a join result
func joinKey(postfix condition.Postfix, left, right *schema.Schema) []string {
	if lhs, rhs, ok := postfix.Operands(); ok {
		if right.IsKey(rhs) {
			return slices.Clone(left.Key)
		}
		if left.IsKey(lhs) {
			return slices.Clone(right.Key)
		}
	}
	return slices.Concat(left.Key, right.Key)
}
