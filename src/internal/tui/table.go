package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RowKind selects how a row is colored
type RowKind int

const (
	RowNormal RowKind = iota
	RowActive         // The version in use
	RowMuted          // Entries of lesser interest
)

// Table is a bordered table with an optional title
type Table struct {
	title      string
	headers    []string
	rows       []tableRow
	widths     []int
	hideHeader bool
	minWidth   int
}

type tableRow struct {
	cells []string
	kind  RowKind
}

// NewTable creates a table with the given column headers
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	return &Table{
		headers: headers,
		widths:  widths,
	}
}

// SetTitle sets a title spanning all columns
func (t *Table) SetTitle(title string) {
	t.title = title
}

// HideHeader hides the column header row
func (t *Table) HideHeader() {
	t.hideHeader = true
}

// SetMinWidth pads the last column so the table is at least width wide
func (t *Table) SetMinWidth(width int) {
	t.minWidth = width
}

// AddRow adds a plain row
func (t *Table) AddRow(cells ...string) {
	t.AddRowKind(RowNormal, cells...)
}

// AddRowKind adds a row colored by kind. Missing cells are left blank, extra ones dropped.
func (t *Table) AddRowKind(kind RowKind, cells ...string) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i >= len(cells) {
			break
		}
		row[i] = cells[i]
		// lipgloss.Width ignores ANSI sequences
		if w := lipgloss.Width(cells[i]); w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, tableRow{cells: row, kind: kind})
}

// RowCount returns the number of data rows
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Render returns the table as a string
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}
	initStyles()

	totalWidth := 0
	for _, w := range t.widths {
		totalWidth += w + 2
	}
	if t.minWidth > 0 && totalWidth < t.minWidth {
		t.widths[len(t.widths)-1] += t.minWidth - totalWidth
		totalWidth = t.minWidth
	}

	var lines []string

	if t.title != "" {
		title := StyleTitle.Width(totalWidth).Align(lipgloss.Center)
		lines = append(lines, title.Render(t.title), StyleMuted.Render(strings.Repeat("─", totalWidth)))
	}

	if !t.hideHeader {
		var header, sep strings.Builder
		for i, h := range t.headers {
			header.WriteString(StyleTableHeader.Width(t.widths[i] + 2).Render(h))
			sep.WriteString(StyleMuted.Render(strings.Repeat("─", t.widths[i]+2)))
		}
		lines = append(lines, header.String(), sep.String())
	}

	for _, row := range t.rows {
		var line strings.Builder
		for i, cell := range row.cells {
			style := StyleTableCell.Width(t.widths[i] + 2)
			switch row.kind {
			case RowActive:
				style = style.Foreground(colorSuccess)
			case RowMuted:
				style = style.Foreground(colorMuted)
			}
			line.WriteString(style.Render(cell))
		}
		lines = append(lines, line.String())
	}

	return StyleTableBorder.Render(strings.Join(lines, "\n"))
}
