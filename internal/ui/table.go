package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
)

// NewRenderer returns a lipgloss renderer for w. Colour is stripped unless
// ShouldUseColor says otherwise.
func NewRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch {
	case !ShouldUseColor():
		r.SetColorProfile(termenv.Ascii)
	case os.Getenv("CLICOLOR_FORCE") != "":
		r.SetColorProfile(termenv.ANSI256)
	}
	return r
}

// NewRowsTable builds a table with a leading 0-based index column. Rows are
// never wrapped, so each row renders on exactly one line below the header.
func NewRowsTable(r *lipgloss.Renderer, header []string, rows [][]string) *table.Table {
	headerStyle := r.NewStyle().Bold(true).Foreground(ColorAccent).Padding(0, 1)
	indexStyle := r.NewStyle().Foreground(ColorMuted).Padding(0, 1).Align(lipgloss.Right)
	cellStyle := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(ColorMuted)).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(true).
		BorderColumn(true).
		Headers(append([]string{""}, header...)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return indexStyle
			default:
				return cellStyle
			}
		})

	for i, row := range rows {
		t.Row(append([]string{strconv.Itoa(i)}, row...)...)
	}
	return t
}

// RenderRows writes the table for rows to w followed by a newline.
func RenderRows(w io.Writer, header []string, rows [][]string) error {
	t := NewRowsTable(NewRenderer(w), header, rows)
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
