package errors

import (
	"fmt"
	"strings"
)

// Represents a violation of a table's schema on insert
// (wrong arity or a value whose runtime type does not match the domain)
type ConstraintError struct {
	Table      string // table name
	Column     string // column name (empty for arity violations)
	Value      any    // offending value (may be nil)
	Constraint string // "arity" or "type_mismatch"
	Reason     string // human-readable explanation (optional)
}

func (e *ConstraintError) Error() string {
	var parts []string

	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("constraint violation in %s.%s", e.Table, e.Column))
	} else {
		parts = append(parts, fmt.Sprintf("constraint violation in %s", e.Table))
	}

	if e.Constraint != "" {
		parts = append(parts, fmt.Sprintf("(%s)", e.Constraint))
	}

	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	return strings.Join(parts, " - ")
}

func NewArityMismatch(table string, got, want int) *ConstraintError {
	return &ConstraintError{
		Table:      table,
		Constraint: "arity",
		Reason:     fmt.Sprintf("expected %d values, got %d", want, got),
	}
}

func NewTypeMismatch(table, column string, value any, expectedType string) *ConstraintError {
	return &ConstraintError{
		Table:      table,
		Column:     column,
		Value:      value,
		Constraint: "type_mismatch",
		Reason:     fmt.Sprintf("expected type %s", expectedType),
	}
}

// ColumnNotFoundError is returned when an attribute name does not resolve
type ColumnNotFoundError struct {
	TableName  string
	ColumnName string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column '%s' does not exist in table '%s'", e.ColumnName, e.TableName)
}

// UnknownDomainError is returned when a schema string names no known domain
type UnknownDomainError struct {
	Name string
}

func (e *UnknownDomainError) Error() string {
	return fmt.Sprintf("unknown domain %q", e.Name)
}

func NewUnknownDomain(name string) *UnknownDomainError {
	return &UnknownDomainError{Name: name}
}

// PackError is returned when a tuple cannot be encoded into a record
type PackError struct {
	Column string
	Reason string
}

func (e *PackError) Error() string {
	return fmt.Sprintf("pack %s: %s", e.Column, e.Reason)
}

// ConditionError reports a malformed condition or a postfix stream
// that cannot be evaluated to a single boolean
type ConditionError struct {
	Condition string
	Reason    string
}

func (e *ConditionError) Error() string {
	if e.Condition == "" {
		return fmt.Sprintf("condition: %s", e.Reason)
	}
	return fmt.Sprintf("condition %q: %s", e.Condition, e.Reason)
}
