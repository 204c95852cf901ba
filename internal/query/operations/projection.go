package operations

import (
	"slices"
	"strings"

	"github.com/leengari/relalg/internal/domain/schema"
)

// Project keeps the named attributes of every tuple in t, e.g.
// Project(movie, "title year").
//
// The result keeps t's key when every key attribute is projected,
// otherwise the whole attribute list becomes the key. When several
// tuples project onto the same key only the first one, in t's key
// order, is kept.
func (e *Executor) Project(t *schema.Table, attributes string) (*schema.Table, error) {
	attrs := strings.Fields(attributes)
	cols, err := t.Schema.Match(attrs)
	if err != nil {
		return nil, err
	}

	key := attrs
	if keepsKey(t.Schema, attrs) {
		key = t.Schema.Key
	}

	s, err := schema.New(e.names.Next(t.Name), attrs, t.Schema.ProjectDomains(cols), key)
	if err != nil {
		return nil, err
	}
	result, err := e.newResult(s)
	if err != nil {
		return nil, err
	}
	e.trace("project", t, attributes, result.Name)

	for _, ent := range snapshot(t) {
		tup := ent.tup.Extract(cols)
		k := result.KeyOf(tup)
		if result.Contains(k) {
			continue
		}
		if err := result.InsertKeyed(k, tup); err != nil {
			return abort(result, err)
		}
	}

	e.done("project", result)
	return result, nil
}

// keepsKey reports whether attrs contains every key attribute of s
func keepsKey(s *schema.Schema, attrs []string) bool {
	for _, k := range s.Key {
		if !slices.Contains(attrs, k) {
			return false
		}
	}
	return true
}
