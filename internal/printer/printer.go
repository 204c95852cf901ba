package printer

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/leengari/relalg/internal/domain/schema"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Render writes the table name followed by a bordered grid whose header
// cells read "attribute (Domain)". Rows are listed in store order.
func Render(w io.Writer, t *schema.Table) error {
	tuples, err := t.Tuples()
	if err != nil {
		return fmt.Errorf("failed to read table %s: %w", t.Name, err)
	}

	headers := make([]string, t.Schema.Arity())
	for i, attr := range t.Schema.Attributes {
		headers[i] = fmt.Sprintf("%s (%s)", attr, t.Schema.Domains[i])
	}

	grid := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, tup := range tuples {
		cells := make([]string, len(tup))
		for i, v := range tup {
			cells[i] = v.String()
		}
		grid.Row(cells...)
	}

	_, err = fmt.Fprintf(w, "%s\n%s\n(%d rows)\n",
		titleStyle.Render("Table "+t.Name), grid.Render(), len(tuples))
	return err
}
