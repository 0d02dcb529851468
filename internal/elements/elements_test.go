package elements

import (
	"testing"

	"filterable/internal/domain"
	"filterable/internal/eventbus"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fruitOptions() []domain.Option {
	return []domain.Option{
		{Text: "Pick one", Value: ""},
		{Text: "Apple", Value: "apple"},
		{Text: "Banana", Value: "banana"},
	}
}

func TestSelectField(t *testing.T) {
	t.Run("DefaultsToFirstOption", func(t *testing.T) {
		s := NewSelectField("fruit", "Fruit", fruitOptions(), "", nil)
		assert.Equal(t, "", s.Value())
		assert.Equal(t, "Pick one", s.SelectedText())
	})

	t.Run("SetValue", func(t *testing.T) {
		s := NewSelectField("fruit", "Fruit", fruitOptions(), "apple", nil)
		assert.Equal(t, "Apple", s.SelectedText())

		assert.True(t, s.SetValue("banana"))
		assert.Equal(t, "banana", s.Value())

		assert.False(t, s.SetValue("durian"))
		assert.Equal(t, "banana", s.Value())
	})

	t.Run("OptionsAreCopies", func(t *testing.T) {
		s := NewSelectField("fruit", "Fruit", fruitOptions(), "", nil)
		opts := s.Options()
		opts[1].Text = "changed"
		assert.Equal(t, "Apple", s.Options()[1].Text)
	})

	t.Run("SetOptionsKeepsKnownValue", func(t *testing.T) {
		s := NewSelectField("fruit", "Fruit", fruitOptions(), "banana", nil)
		s.SetOptions([]domain.Option{{Text: "Banana", Value: "banana"}, {Text: "Kiwi", Value: "kiwi"}})
		assert.Equal(t, "banana", s.Value())

		s.SetOptions([]domain.Option{{Text: "Kiwi", Value: "kiwi"}})
		assert.Equal(t, "kiwi", s.Value())
	})

	t.Run("ChangePublishesValue", func(t *testing.T) {
		bus := eventbus.New()
		var got eventbus.ValueChangedEvent
		bus.Subscribe(eventbus.EventValueChanged, func(e eventbus.DomainEvent) tea.Cmd {
			got = e.(eventbus.ValueChangedEvent)
			return nil
		})

		s := NewSelectField("fruit", "Fruit", fruitOptions(), "", bus)
		s.SetValue("apple")
		s.Change()

		assert.Equal(t, eventbus.ValueChangedEvent{FieldID: "fruit", Value: "apple", Text: "Apple"}, got)
	})
}

func TestListAndTableVisibility(t *testing.T) {
	l := NewList("fruits", "Fruits", []string{"Apple", "Banana"})
	l.Items()[0].SetHidden(true)
	assert.Equal(t, []string{"Banana"}, l.VisibleTexts())

	tbl := NewTable("stock", "Stock", []string{"name", "qty"}, [][]string{{"Apple", "3"}, {"Kiwi"}})
	assert.Equal(t, "", tbl.Rows()[1].Cell(1))
	tbl.Rows()[0].SetHidden(true)
	assert.Equal(t, [][]string{{"Kiwi"}}, tbl.VisibleRows())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	l := NewList("fruits", "Fruits", nil)
	in := NewSearchInput("q", "Search", "")

	require.True(t, r.Add(l))
	require.True(t, r.Add(in))
	assert.False(t, r.Add(NewList("fruits", "dup", nil)))

	assert.Same(t, l, r.Find("#fruits"))
	assert.Same(t, in, r.Find("q"))
	assert.Nil(t, r.Find("#missing"))
	assert.Nil(t, r.Find(""))

	l.SetBounds(domain.Rect{X: 0, Y: 2, Width: 10, Height: 3})
	assert.Same(t, l, r.At(4, 3))
	assert.Nil(t, r.At(4, 9))
	assert.Len(t, r.All(), 2)
}

func TestSearchInputKeyUp(t *testing.T) {
	in := NewSearchInput("q", "Search", "type to filter")
	in.Focus()

	var seen []string
	unsubscribe := in.OnKeyUp(func(msg tea.KeyMsg) tea.Cmd {
		seen = append(seen, in.Value())
		return nil
	})

	in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	unsubscribe()
	in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})

	assert.Equal(t, []string{"a", "ab"}, seen, "listeners see the text after the key is applied")
	assert.Equal(t, "abc", in.Value())

	in.Reset()
	assert.Equal(t, "", in.Value())
}
