package engine

import "fmt"

// TableNotFoundError is returned when the catalog has no table of that name
type TableNotFoundError struct {
	Name string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table '%s' does not exist", e.Name)
}

// TableExistsError is returned when creating a table whose name is taken
type TableExistsError struct {
	Name string
}

func (e *TableExistsError) Error() string {
	return fmt.Sprintf("table '%s' already exists", e.Name)
}
