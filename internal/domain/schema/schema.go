package schema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leengari/relalg/internal/domain/errors"
	"github.com/leengari/relalg/internal/domain/types"
)

// Schema holds the ordered attributes of a table, their domains
// and the attributes forming the primary key
type Schema struct {
	TableName  string
	Attributes []string
	Domains    []types.Domain
	Key        []string
}

// Parse builds a schema from the raw space-separated strings used to
// declare a table, e.g. ("title year", "String Integer", "title")
func Parse(tableName, attributes, domains, key string) (*Schema, error) {
	doms, err := types.ParseDomains(domains)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", tableName, err)
	}
	return New(tableName, strings.Fields(attributes), doms, strings.Fields(key))
}

// New validates and builds a schema
func New(tableName string, attributes []string, domains []types.Domain, key []string) (*Schema, error) {
	if len(attributes) != len(domains) {
		return nil, fmt.Errorf("table %s: %d attributes but %d domains", tableName, len(attributes), len(domains))
	}
	for i, a := range attributes {
		if slices.Index(attributes, a) != i {
			return nil, fmt.Errorf("table %s: duplicate attribute %q", tableName, a)
		}
		if !domains[i].Valid() {
			return nil, errors.NewUnknownDomain(fmt.Sprintf("#%d", int(domains[i])))
		}
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("table %s: key must name at least one attribute", tableName)
	}

	s := &Schema{
		TableName:  tableName,
		Attributes: slices.Clone(attributes),
		Domains:    slices.Clone(domains),
		Key:        slices.Clone(key),
	}
	if _, err := s.Match(s.Key); err != nil {
		return nil, err
	}
	return s, nil
}

// Arity returns the number of attributes
func (s *Schema) Arity() int {
	return len(s.Attributes)
}

// ColumnPos returns the position of the named attribute.
// The boolean is false when the table has no such attribute.
func (s *Schema) ColumnPos(name string) (int, bool) {
	i := slices.Index(s.Attributes, name)
	return i, i >= 0
}

// Match returns the positions of all given attributes
func (s *Schema) Match(names []string) ([]int, error) {
	cols := make([]int, len(names))
	for i, name := range names {
		pos, ok := s.ColumnPos(name)
		if !ok {
			return nil, &errors.ColumnNotFoundError{TableName: s.TableName, ColumnName: name}
		}
		cols[i] = pos
	}
	return cols, nil
}

// KeyPositions returns the column positions of the key attributes
func (s *Schema) KeyPositions() []int {
	// key attributes are validated when the schema is built
	cols, _ := s.Match(s.Key)
	return cols
}

// IsKey reports whether name is one of the key attributes
func (s *Schema) IsKey(name string) bool {
	return slices.Contains(s.Key, name)
}

// Compatible reports whether two schemas have the same attribute names
// in the same order. Domains are not compared.
func (s *Schema) Compatible(o *Schema) bool {
	return slices.Equal(s.Attributes, o.Attributes)
}

// ProjectDomains returns the domains of the given columns
func (s *Schema) ProjectDomains(cols []int) []types.Domain {
	out := make([]types.Domain, len(cols))
	for j, c := range cols {
		out[j] = s.Domains[c]
	}
	return out
}

// Clone returns a deep copy of the schema under a new table name
func (s *Schema) Clone(tableName string) *Schema {
	return &Schema{
		TableName:  tableName,
		Attributes: slices.Clone(s.Attributes),
		Domains:    slices.Clone(s.Domains),
		Key:        slices.Clone(s.Key),
	}
}

// Disambiguate returns a copy of s in which every attribute that also
// appears in other is prefixed with prefix, in both the attribute list
// and the key. s itself is left untouched.
func (s *Schema) Disambiguate(other *Schema, prefix string) *Schema {
	out := s.Clone(s.TableName)
	for j, a := range out.Attributes {
		if !slices.Contains(other.Attributes, a) {
			continue
		}
		for k := range out.Key {
			if out.Key[k] == a {
				out.Key[k] = prefix + a
			}
		}
		out.Attributes[j] = prefix + a
	}
	return out
}

// String renders the schema as "name (a1 a2 ...)"
func (s *Schema) String() string {
	return fmt.Sprintf("%s (%s)", s.TableName, strings.Join(s.Attributes, ", "))
}
