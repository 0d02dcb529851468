package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"filterable/internal/domain"
	"filterable/internal/elements"
	"filterable/internal/filterable"
)

const (
	buttonGlyph   = " ▼ "
	maxCellWidth  = 24
	minFieldWidth = 8
)

// Page contains all the state needed for rendering
type Page struct {
	Width      int
	Height     int
	Title      string
	Elements   []elements.Element
	Focused    string
	Dropdowns  map[string]*filterable.Dropdown // by select field ID
	FieldWidth int
	Status     string
	Footer     string
}

// Renderer handles all view rendering. Rendering also records where each
// element was drawn, which is what mouse hit-testing works from.
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	if styles == nil {
		styles = NewStyles()
	}
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(p Page) string {
	fieldWidth := max(p.FieldWidth, minFieldWidth)
	labelWidth := 0
	for _, e := range p.Elements {
		if e.Kind() == domain.KindSelect || e.Kind() == domain.KindInput {
			labelWidth = max(labelWidth, lipgloss.Width(e.Label()))
		}
	}
	if labelWidth > 0 {
		labelWidth += 2
	}

	var lines []string
	lines = append(lines, r.styles.Title.Render(p.Title), "")

	for _, e := range p.Elements {
		y := len(lines)
		var block []string
		switch el := e.(type) {
		case *elements.SelectField:
			block = []string{r.renderSelect(el, y, labelWidth, fieldWidth, p.Focused == el.ID(), p.Dropdowns[el.ID()])}
		case *elements.SearchInput:
			block = []string{r.renderInput(el, y, labelWidth, fieldWidth, p.Focused == el.ID())}
		case *elements.List:
			block = r.renderList(el)
			el.SetBounds(domain.Rect{X: 0, Y: y, Width: blockWidth(block), Height: len(block)})
		case *elements.Table:
			block = r.renderTable(el)
			el.SetBounds(domain.Rect{X: 0, Y: y, Width: blockWidth(block), Height: len(block)})
		}
		lines = append(lines, block...)
		lines = append(lines, "")
	}

	// Push the status and footer to the bottom
	bottom := []string{r.styles.Status.Render(p.Status), r.styles.Help.Render(p.Footer)}
	if pad := p.Height - len(lines) - len(bottom); pad > 0 {
		lines = append(lines, make([]string, pad)...)
	}
	lines = append(lines, bottom...)
	base := strings.Join(lines, "\n")

	for _, d := range p.Dropdowns {
		if d.IsOpen() {
			origin := d.Origin()
			base = Overlay(base, r.popupRender.RenderDropdown(d), origin.X, origin.Y)
			break
		}
	}
	return base
}

func (r *Renderer) renderLabel(label string, width int) string {
	if width == 0 {
		return ""
	}
	text := label + ":"
	return r.styles.Label.Render(text) + strings.Repeat(" ", max(width-lipgloss.Width(text), 1))
}

func (r *Renderer) fieldStyle(focused bool) lipgloss.Style {
	if focused {
		return r.styles.FocusField
	}
	return r.styles.Field
}

func (r *Renderer) renderSelect(s *elements.SelectField, y, labelWidth, fieldWidth int, focused bool, d *filterable.Dropdown) string {
	box := r.fieldStyle(focused).Render("[" + fit(s.SelectedText(), fieldWidth) + "]")
	s.SetBounds(domain.Rect{X: labelWidth, Y: y, Width: fieldWidth + 2, Height: 1})

	line := r.renderLabel(s.Label(), labelWidth) + box
	if d == nil {
		s.SetButtonBounds(domain.Rect{})
		return line
	}
	button := r.styles.Class(d.ButtonClass(), r.styles.Highlight).Render(buttonGlyph)
	s.SetButtonBounds(domain.Rect{X: labelWidth + fieldWidth + 2, Y: y, Width: ansi.StringWidth(buttonGlyph), Height: 1})
	return line + button
}

func (r *Renderer) renderInput(in *elements.SearchInput, y, labelWidth, fieldWidth int, focused bool) string {
	in.SetWidth(fieldWidth - 1)
	box := r.fieldStyle(focused).Render("[") + fit(in.View(), fieldWidth) + r.fieldStyle(focused).Render("]")
	in.SetBounds(domain.Rect{X: labelWidth, Y: y, Width: fieldWidth + 2, Height: 1})
	return r.renderLabel(in.Label(), labelWidth) + box
}

func (r *Renderer) renderList(l *elements.List) []string {
	lines := []string{r.styles.Label.Bold(true).Render(l.Label())}
	visible := l.VisibleTexts()
	for _, text := range visible {
		lines = append(lines, r.styles.ListItem.Render("  • "+text))
	}
	if len(visible) == 0 && len(l.Items()) > 0 {
		lines = append(lines, r.styles.Dim.Render(fmt.Sprintf("  (all %d items filtered out)", len(l.Items()))))
	}
	return lines
}

func (r *Renderer) renderTable(t *elements.Table) []string {
	lines := []string{r.styles.Label.Bold(true).Render(t.Label())}

	names := t.Columns()
	visible := t.VisibleRows()
	switch {
	case len(t.Rows()) == 0:
		return append(lines, r.styles.Dim.Render("  (no rows)"))
	case len(visible) == 0:
		return append(lines, r.styles.Dim.Render(fmt.Sprintf("  (all %d rows filtered out)", len(t.Rows()))))
	}

	columns := make([]table.Column, len(names))
	total := 0
	for i, name := range names {
		w := lipgloss.Width(name)
		for _, row := range visible {
			if i < len(row) {
				w = max(w, lipgloss.Width(row[i]))
			}
		}
		columns[i] = table.Column{Title: name, Width: min(w, maxCellWidth)}
		// cells carry one cell of padding on each side
		total += columns[i].Width + 2
	}

	rows := make([]table.Row, len(visible))
	for i, cells := range visible {
		row := make(table.Row, len(names))
		copy(row, cells)
		rows[i] = row
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(r.styles.TableHeader.GetForeground())
	styles.Selected = lipgloss.NewStyle()

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2),
		table.WithWidth(total),
		table.WithFocused(false),
		table.WithStyles(styles),
	)

	view := strings.Split(tbl.View(), "\n")
	// The viewport pads itself to its height
	for len(view) > 0 && strings.TrimSpace(ansi.Strip(view[len(view)-1])) == "" {
		view = view[:len(view)-1]
	}
	return append(lines, view...)
}

func blockWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}
	return w
}
