package types

import (
	"strings"

	"github.com/leengari/relalg/internal/domain/errors"
)

// Domain is the declared scalar type of an attribute
type Domain int

const (
	Int16 Domain = iota
	Int32
	Int64
	Float32
	Float64
	Char
	Str
)

// StrWidth is the fixed field width of a Str attribute.
// The last byte is reserved for the zero terminator, so at most
// StrWidth-1 encoded bytes fit.
const StrWidth = 64

var domainNames = map[string]Domain{
	"Short":     Int16,
	"Integer":   Int32,
	"Long":      Int64,
	"Float":     Float32,
	"Double":    Float64,
	"Character": Char,
	"String":    Str,
}

// String returns the schema-string name of the domain
func (d Domain) String() string {
	switch d {
	case Int16:
		return "Short"
	case Int32:
		return "Integer"
	case Int64:
		return "Long"
	case Float32:
		return "Float"
	case Float64:
		return "Double"
	case Char:
		return "Character"
	case Str:
		return "String"
	default:
		return "Unknown"
	}
}

// Width returns the serialized width of the domain in bytes
func (d Domain) Width() int {
	switch d {
	case Int16, Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	case Char:
		return 2
	case Str:
		return StrWidth
	default:
		return 0
	}
}

// Valid reports whether d is one of the seven domains
func (d Domain) Valid() bool {
	return d >= Int16 && d <= Str
}

// Numeric reports whether values of d compare as numbers
func (d Domain) Numeric() bool {
	return d >= Int16 && d <= Float64
}

// ParseDomain resolves a schema-string type name such as "Integer"
func ParseDomain(name string) (Domain, error) {
	if d, ok := domainNames[name]; ok {
		return d, nil
	}
	return 0, errors.NewUnknownDomain(name)
}

// ParseDomains resolves a space-separated list of type names
func ParseDomains(names string) ([]Domain, error) {
	fields := strings.Fields(names)
	domains := make([]Domain, len(fields))
	for i, name := range fields {
		d, err := ParseDomain(name)
		if err != nil {
			return nil, err
		}
		domains[i] = d
	}
	return domains, nil
}
