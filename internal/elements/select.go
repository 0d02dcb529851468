package elements

import (
	"filterable/internal/domain"
	"filterable/internal/eventbus"

	tea "github.com/charmbracelet/bubbletea"
)

// SelectField is a single-choice field with a fixed option list
type SelectField struct {
	base
	options []domain.Option
	value   string
	bus     eventbus.EventBus
	button  domain.Rect
}

// NewSelectField creates a select field. An empty value selects the first
// option, like a browser does.
func NewSelectField(id, label string, options []domain.Option, value string, bus eventbus.EventBus) *SelectField {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	s := &SelectField{
		base: base{id: id, label: label},
		bus:  bus,
	}
	s.SetOptions(options)
	if !s.SetValue(value) && len(s.options) > 0 {
		s.value = s.options[0].Value
	}
	return s
}

func (s *SelectField) Kind() domain.ElementKind { return domain.KindSelect }

// Options returns a copy of the current options in order
func (s *SelectField) Options() []domain.Option {
	out := make([]domain.Option, len(s.options))
	copy(out, s.options)
	return out
}

// SetOptions replaces the option list. The value is kept when it still
// exists.
func (s *SelectField) SetOptions(options []domain.Option) {
	s.options = make([]domain.Option, len(options))
	copy(s.options, options)
	if _, ok := s.find(s.value); !ok {
		s.value = ""
		if len(s.options) > 0 {
			s.value = s.options[0].Value
		}
	}
}

// Value returns the selected value
func (s *SelectField) Value() string {
	return s.value
}

// SelectedText returns the text of the selected option
func (s *SelectField) SelectedText() string {
	if i, ok := s.find(s.value); ok {
		return s.options[i].Text
	}
	return ""
}

// SetValue selects the option with the given value. Unknown values are
// rejected and leave the field unchanged.
func (s *SelectField) SetValue(value string) bool {
	if _, ok := s.find(value); !ok {
		return false
	}
	s.value = value
	return true
}

// Change fires the field's change notification
func (s *SelectField) Change() tea.Cmd {
	return s.bus.Publish(eventbus.ValueChangedEvent{
		FieldID: s.id,
		Value:   s.value,
		Text:    s.SelectedText(),
	})
}

// ButtonBounds is where the filter button was last drawn
func (s *SelectField) ButtonBounds() domain.Rect {
	return s.button
}

// SetButtonBounds records where the filter button was drawn
func (s *SelectField) SetButtonBounds(r domain.Rect) {
	s.button = r
}

func (s *SelectField) find(value string) (int, bool) {
	for i, o := range s.options {
		if o.Value == value {
			return i, true
		}
	}
	return -1, false
}
