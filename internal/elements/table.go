package elements

import "filterable/internal/domain"

// Row is one body row of a Table
type Row struct {
	Cells  []string
	hidden bool
}

// Hidden reports whether the row is filtered out
func (r *Row) Hidden() bool { return r.hidden }

// SetHidden shows or hides the row
func (r *Row) SetHidden(hidden bool) { r.hidden = hidden }

// Cell returns the cell at column i, or "" if the row is short
func (r *Row) Cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

// Table has a header of column names and body rows
type Table struct {
	base
	columns []string
	rows    []*Row
}

// NewTable creates a table with every row visible
func NewTable(id, label string, columns []string, rows [][]string) *Table {
	t := &Table{base: base{id: id, label: label}}
	t.columns = append([]string(nil), columns...)
	t.SetRows(rows)
	return t
}

func (t *Table) Kind() domain.ElementKind { return domain.KindTable }

// Columns returns the header names
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// SetRows replaces the body rows; all new rows are visible
func (t *Table) SetRows(rows [][]string) {
	t.rows = make([]*Row, len(rows))
	for i, cells := range rows {
		t.rows[i] = &Row{Cells: append([]string(nil), cells...)}
	}
}

// Rows returns the live body rows
func (t *Table) Rows() []*Row {
	return t.rows
}

// VisibleRows returns the cells of every visible row
func (t *Table) VisibleRows() [][]string {
	var out [][]string
	for _, r := range t.rows {
		if !r.hidden {
			out = append(out, r.Cells)
		}
	}
	return out
}
