package views

import (
	"strings"

	"filterable/internal/domain"
	"filterable/internal/filterable"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderDropdown draws an open dropdown and records where it and its item
// list ended up, so mouse presses can be mapped back to items
func (pr *PopupRenderer) RenderDropdown(d *filterable.Dropdown) string {
	origin := d.Origin()
	inner := max(origin.Width-2, 1)

	d.Search().SetWidth(max(inner-3, 1))
	lines := []string{
		fit(pr.styles.PopupSearch.Render("> ")+d.Search().View(), inner),
	}
	for _, row := range d.Rows() {
		text := fit(row.Text, inner)
		if row.Highlighted {
			text = pr.styles.Highlight.Render(text)
		} else {
			text = pr.styles.ListItem.Render(text)
		}
		lines = append(lines, text)
	}
	if d.NoMatchVisible() {
		noMatch := pr.styles.Class(d.NoMatchClass(), pr.styles.Dim.Italic(true))
		lines = append(lines, noMatch.Render(fit(d.NoMatchMessage(), inner)))
	}

	box := pr.styles.Class(d.DropdownClass(), pr.styles.Popup).
		Border(lipgloss.NormalBorder()).
		Padding(0).
		Margin(0).
		Render(strings.Join(lines, "\n"))

	d.SetLayout(
		domain.Rect{X: origin.X, Y: origin.Y, Width: lipgloss.Width(box), Height: lipgloss.Height(box)},
		domain.Rect{X: origin.X + 1, Y: origin.Y + 2, Width: inner, Height: d.ListHeight()},
	)
	return box
}

// Overlay draws popup over base with its top-left corner at (x, y),
// keeping the base content to the left and right of the popup. The base
// grows with blank lines when the popup reaches past its end.
func Overlay(base, popup string, x, y int) string {
	if popup == "" {
		return base
	}
	x, y = max(x, 0), max(y, 0)

	baseLines := strings.Split(base, "\n")
	popupLines := strings.Split(popup, "\n")
	for len(baseLines) < y+len(popupLines) {
		baseLines = append(baseLines, "")
	}

	for i, pl := range popupLines {
		line := baseLines[y+i]
		if w := ansi.StringWidth(line); w < x {
			line += strings.Repeat(" ", x-w)
		}
		left := ansi.Truncate(line, x, "")
		right := ansi.TruncateLeft(line, x+ansi.StringWidth(pl), "")
		baseLines[y+i] = left + ansi.ResetStyle + pl + ansi.ResetStyle + right
	}
	return strings.Join(baseLines, "\n")
}

// fit truncates or pads s to exactly w cells
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = ansi.Truncate(s, w, "…")
	if pad := w - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
