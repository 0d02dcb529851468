package filterable

import (
	"log"
	"strconv"
	"strings"

	"filterable/internal/elements"
)

// TableFilter filters the body rows of a Table by the cells its value
// selector picks
type TableFilter struct {
	*searchFilter
	table    *elements.Table
	selector string
}

func newTableFilter(table *elements.Table, search *elements.SearchInput, opts Options) *TableFilter {
	tf := &TableFilter{table: table, selector: opts.ValueSelector}
	tf.searchFilter = newSearchFilter(table, search, opts, tf.candidates)
	return tf
}

// ValueSelector returns the configured cell selector
func (tf *TableFilter) ValueSelector() string {
	return tf.selector
}

func (tf *TableFilter) candidates() candidateSet {
	return tableRows{
		rows:    tf.table.Rows(),
		columns: resolveColumns(tf.selector, tf.table.Columns()),
	}
}

type tableRows struct {
	rows []*elements.Row
	// nil means every cell
	columns []int
}

func (t tableRows) Len() int { return len(t.rows) }

func (t tableRows) Texts(i int) []string {
	row := t.rows[i]
	if t.columns == nil {
		return row.Cells
	}
	texts := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		if c < len(row.Cells) {
			texts = append(texts, row.Cells[c])
		}
	}
	return texts
}

func (t tableRows) SetHidden(i int, hidden bool) { t.rows[i].SetHidden(hidden) }

// resolveColumns turns a value selector into column indexes. "", "td" and
// "*" select every cell and yield nil. Otherwise the selector is a comma
// separated list of column names or 1-based column numbers; tokens that
// name no column are logged and skipped, so a selector resolving to
// nothing matches no cell.
func resolveColumns(selector string, columns []string) []int {
	sel := strings.TrimSpace(selector)
	switch strings.ToLower(sel) {
	case "", "td", "*":
		return nil
	}

	resolved := []int{}
	seen := make(map[int]bool)
	for _, tok := range strings.Split(sel, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		idx := columnIndex(tok, columns)
		if idx < 0 {
			log.Printf("Value selector %q: no column %q", selector, tok)
			continue
		}
		if !seen[idx] {
			seen[idx] = true
			resolved = append(resolved, idx)
		}
	}
	return resolved
}

func columnIndex(tok string, columns []string) int {
	for i, c := range columns {
		if strings.EqualFold(strings.TrimSpace(c), tok) {
			return i
		}
	}
	if n, err := strconv.Atoi(tok); err == nil && n >= 1 {
		// Rows may be wider than the header
		return n - 1
	}
	return -1
}
