package filterable

import (
	"testing"
	"time"

	"filterable/internal/domain"
	"filterable/internal/elements"
	"filterable/internal/eventbus"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

var fruits = []string{"Apple", "Banana", "Cherry", "Date", "Elderberry"}

type testHost struct {
	bus       eventbus.EventBus
	reg       *elements.Registry
	supported bool
}

func newTestHost() *testHost {
	return &testHost{
		bus:       eventbus.New(),
		reg:       elements.NewRegistry(),
		supported: true,
	}
}

func (h *testHost) Bus() eventbus.EventBus                 { return h.bus }
func (h *testHost) Find(selector string) elements.Element { return h.reg.Find(selector) }
func (h *testHost) Supported() bool                        { return h.supported }

func (h *testHost) add(t *testing.T, e elements.Element) {
	t.Helper()
	require.True(t, h.reg.Add(e))
}

func fruitSelect(bus eventbus.EventBus) *elements.SelectField {
	opts := []domain.Option{{Text: "-- choose --", Value: " "}}
	for _, f := range fruits {
		opts = append(opts, domain.Option{Text: f, Value: "v-" + f})
	}
	s := elements.NewSelectField("fruit", "Fruit", opts, "", bus)
	s.SetBounds(domain.Rect{X: 7, Y: 2, Width: 24, Height: 1})
	return s
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeText feeds each rune to the input, returning the command of the
// last key
func typeText(in *elements.SearchInput, text string) tea.Cmd {
	var cmd tea.Cmd
	for _, r := range text {
		cmd = in.Update(keyRunes(string(r)))
	}
	return cmd
}

// drain runs cmd and every command batched inside it, collecting the
// messages they produce
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// deliver drains cmd into c
func deliver(c Controller, cmd tea.Cmd) {
	for _, msg := range drain(cmd) {
		c.Update(msg)
	}
}

const fast = time.Millisecond
