package elements

import (
	"filterable/internal/domain"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyUpHandler runs after a key has been applied to the input's text
type KeyUpHandler func(msg tea.KeyMsg) tea.Cmd

type keyUpListener struct {
	id      uint64
	handler KeyUpHandler
}

// SearchInput is a single line text input that notifies listeners after
// every key it receives
type SearchInput struct {
	base
	textInput textinput.Model
	listeners []keyUpListener
	nextID    uint64
}

// NewSearchInput creates an unfocused input
func NewSearchInput(id, label, placeholder string) *SearchInput {
	ti := textinput.New()
	ti.Prompt = "" // Prompt is handled in the UI layer
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	// A static cursor keeps key handling free of blink timers
	ti.Cursor.SetMode(cursor.CursorStatic)
	return &SearchInput{
		base:      base{id: id, label: label},
		textInput: ti,
	}
}

func (s *SearchInput) Kind() domain.ElementKind { return domain.KindInput }

// Value returns the current text
func (s *SearchInput) Value() string {
	return s.textInput.Value()
}

// SetValue replaces the text without notifying listeners
func (s *SearchInput) SetValue(v string) {
	s.textInput.SetValue(v)
}

// Reset clears the text without notifying listeners
func (s *SearchInput) Reset() {
	s.textInput.Reset()
}

// Focus gives the input keyboard focus
func (s *SearchInput) Focus() tea.Cmd {
	return s.textInput.Focus()
}

// Blur removes keyboard focus
func (s *SearchInput) Blur() {
	s.textInput.Blur()
}

// Focused reports whether the input has keyboard focus
func (s *SearchInput) Focused() bool {
	return s.textInput.Focused()
}

// SetWidth sets the visible width of the text area
func (s *SearchInput) SetWidth(w int) {
	s.textInput.Width = w
}

// DisableSuggestions turns off completion suggestions
func (s *SearchInput) DisableSuggestions() {
	s.textInput.ShowSuggestions = false
	s.textInput.SetSuggestions(nil)
}

// OnKeyUp registers a listener and returns a function that removes it
func (s *SearchInput) OnKeyUp(h KeyUpHandler) func() {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, keyUpListener{id: id, handler: h})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Update applies msg to the text and, for key messages, notifies the
// key-up listeners afterwards
func (s *SearchInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.textInput, cmd = s.textInput.Update(msg)

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return cmd
	}
	cmds := []tea.Cmd{cmd}
	listeners := append([]keyUpListener(nil), s.listeners...)
	for _, l := range listeners {
		cmds = append(cmds, l.handler(key))
	}
	return tea.Batch(cmds...)
}

// View renders the text area
func (s *SearchInput) View() string {
	return s.textInput.View()
}
