package views

import (
	"filterable/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	Field       lipgloss.Style
	FocusField  lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
	Highlight   lipgloss.Style
	ListItem    lipgloss.Style
	TableHeader lipgloss.Style
	Popup       lipgloss.Style
	PopupSearch lipgloss.Style

	// classes are the named styles a page config defines
	classes map[string]lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Field:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		FocusField:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:        lipgloss.NewStyle().Faint(true),
		Highlight:   lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("226")),
		ListItem:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Popup:       lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("241")),
		PopupSearch: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		classes:     make(map[string]lipgloss.Style),
	}
}

// NewStylesFromConfig creates the default styles plus the page's classes
func NewStylesFromConfig(cfg *config.Config) *Styles {
	s := NewStyles()
	if cfg == nil {
		return s
	}
	for name, sc := range cfg.Styles {
		s.SetClass(name, styleFromConfig(sc))
	}
	return s
}

// SetClass registers a named style
func (s *Styles) SetClass(name string, style lipgloss.Style) {
	s.classes[name] = style
}

// HasClass reports whether a named style is registered
func (s *Styles) HasClass(name string) bool {
	_, ok := s.classes[name]
	return ok
}

// Class returns the named style, or fallback if the page does not define it
func (s *Styles) Class(name string, fallback lipgloss.Style) lipgloss.Style {
	if st, ok := s.classes[name]; ok {
		return st
	}
	return fallback
}

func styleFromConfig(sc config.StyleConfig) lipgloss.Style {
	st := lipgloss.NewStyle().
		Bold(sc.Bold).
		Italic(sc.Italic).
		Faint(sc.Faint)
	if sc.Foreground != "" {
		st = st.Foreground(lipgloss.Color(sc.Foreground))
	}
	if sc.Background != "" {
		st = st.Background(lipgloss.Color(sc.Background))
	}
	if sc.Border {
		st = st.Border(lipgloss.NormalBorder())
	}
	return st
}
