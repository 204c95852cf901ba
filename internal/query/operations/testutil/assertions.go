package testutil

import (
	"bytes"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/leengari/relalg/internal/domain/data"
	"github.com/leengari/relalg/internal/domain/schema"
)

// AssertRowCount checks if the table indexes the expected number of rows
func AssertRowCount(t *testing.T, table *schema.Table, expected int, context string) {
	t.Helper()
	if actual := table.IndexLen(); actual != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, actual)
	}
}

// AssertColumnCount checks if the table has the expected number of attributes
func AssertColumnCount(t *testing.T, table *schema.Table, expected int, context string) {
	t.Helper()
	if actual := table.Schema.Arity(); actual != expected {
		t.Errorf("%s: expected %d columns, got %d", context, expected, actual)
	}
}

// AssertColumnExists checks if an attribute exists in the table
func AssertColumnExists(t *testing.T, table *schema.Table, column, context string) {
	t.Helper()
	if _, ok := table.Schema.ColumnPos(column); !ok {
		t.Errorf("%s: expected column '%s' to exist", context, column)
	}
}

// AssertColumnNotExists checks if an attribute does not exist in the table
func AssertColumnNotExists(t *testing.T, table *schema.Table, column, context string) {
	t.Helper()
	if _, ok := table.Schema.ColumnPos(column); ok {
		t.Errorf("%s: did not expect column '%s' to exist", context, column)
	}
}

// AssertKey checks the key attributes of the table
func AssertKey(t *testing.T, table *schema.Table, expected []string, context string) {
	t.Helper()
	if !slices.Equal(table.Schema.Key, expected) {
		t.Errorf("%s: expected key %v, got %v", context, expected, table.Schema.Key)
	}
}

// AssertRows checks the indexed rows of the table, in key order
func AssertRows(t *testing.T, table *schema.Table, expected []data.Tuple, context string) {
	t.Helper()
	rows := table.Rows()
	if len(rows) != len(expected) {
		t.Errorf("%s: expected %d rows, got %d: %v", context, len(expected), len(rows), rows)
		return
	}
	for i := range rows {
		if !rows[i].Equal(expected[i]) {
			t.Errorf("%s: row %d: expected %v, got %v", context, i, expected[i], rows[i])
		}
	}
}

// AssertNoError checks that an error is nil
func AssertNoError(t *testing.T, err error, context string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: expected no error, got: %v", context, err)
	}
}

// AssertError checks that an error is not nil
func AssertError(t *testing.T, err error, context string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected an error, got nil", context)
	}
}

// CaptureLogs returns a logger writing text records into the returned buffer
func CaptureLogs(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level})), buf
}

// AssertLogged checks that the captured log contains every message
func AssertLogged(t *testing.T, logs *bytes.Buffer, context string, messages ...string) {
	t.Helper()
	out := logs.String()
	for _, m := range messages {
		if !strings.Contains(out, m) {
			t.Errorf("%s: expected log to contain %q, got:\n%s", context, m, out)
		}
	}
}
