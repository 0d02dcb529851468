package views

import (
	"strings"
	"testing"

	"filterable/internal/domain"
	"filterable/internal/elements"
	"filterable/internal/eventbus"
	"filterable/internal/filterable"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type host struct {
	bus eventbus.EventBus
	reg *elements.Registry
}

func (h host) Bus() eventbus.EventBus                 { return h.bus }
func (h host) Find(selector string) elements.Element { return h.reg.Find(selector) }
func (h host) Supported() bool                        { return true }

func TestOverlayKeepsSurroundingContent(t *testing.T) {
	base := "0123456789\nabcdefghij\nklmnopqrst"
	out := ansi.Strip(Overlay(base, "XX\nYY", 3, 1))
	assert.Equal(t, "0123456789\nabcXXfghij\nklmYYpqrst", out)
}

func TestOverlayPadsShortBase(t *testing.T) {
	out := ansi.Strip(Overlay("ab", "XY\nZW", 4, 1))
	assert.Equal(t, "ab\n    XY\n    ZW", out)
}

func TestOverlayEmptyPopup(t *testing.T) {
	assert.Equal(t, "base", Overlay("base", "", 2, 2))
}

func TestFit(t *testing.T) {
	assert.Equal(t, "ab   ", fit("ab", 5))
	assert.Equal(t, 4, ansi.StringWidth(fit("abcdefgh", 4)))
	assert.Equal(t, "", fit("abc", 0))
}

func TestRenderRecordsBounds(t *testing.T) {
	bus := eventbus.New()
	reg := elements.NewRegistry()
	sel := elements.NewSelectField("fruit", "Fruit", []domain.Option{
		{Text: "Apple", Value: "apple"},
		{Text: "Banana", Value: "banana"},
	}, "", bus)
	list := elements.NewList("fruits", "Fruits", []string{"Apple", "Banana"})
	for _, e := range []elements.Element{sel, list} {
		require.True(t, reg.Add(e))
	}
	d := filterable.Attach(host{bus: bus, reg: reg}, sel, filterable.Options{}).(*filterable.Dropdown)

	r := NewRenderer(nil)
	page := Page{
		Width:      60,
		Height:     20,
		Title:      "Demo",
		Elements:   reg.All(),
		Dropdowns:  map[string]*filterable.Dropdown{"fruit": d},
		FieldWidth: 12,
	}
	out := ansi.Strip(r.Render(page))
	lines := strings.Split(out, "\n")

	assert.Equal(t, domain.Rect{X: 7, Y: 2, Width: 14, Height: 1}, sel.Bounds())
	assert.Equal(t, domain.Rect{X: 21, Y: 2, Width: 3, Height: 1}, sel.ButtonBounds())
	assert.Contains(t, lines[2], "[Apple       ]")
	assert.Contains(t, lines[2], "▼")
	assert.Equal(t, 4, list.Bounds().Y)
	assert.Equal(t, 3, list.Bounds().Height)
	assert.Len(t, lines, 20)

	d.Open()
	out = ansi.Strip(r.Render(page))
	lines = strings.Split(out, "\n")
	popup := d.Bounds()
	assert.Equal(t, 7, popup.X)
	assert.Equal(t, 3, popup.Y)
	assert.Equal(t, 20, popup.Width, "popups are at least 20 cells wide")
	assert.Equal(t, 5, popup.Height)
	assert.Contains(t, lines[5], "Apple")
	assert.Contains(t, lines[6], "Banana")
}

func TestRenderNoMatchMessage(t *testing.T) {
	bus := eventbus.New()
	reg := elements.NewRegistry()
	sel := elements.NewSelectField("fruit", "Fruit", []domain.Option{{Text: "Apple", Value: "apple"}}, "", bus)
	require.True(t, reg.Add(sel))
	d := filterable.Attach(host{bus: bus, reg: reg}, sel, filterable.Options{NoMatchMessage: "Nothing"}).(*filterable.Dropdown)

	r := NewRenderer(nil)
	page := Page{Width: 60, Height: 12, Elements: reg.All(), Dropdowns: map[string]*filterable.Dropdown{"fruit": d}}
	r.Render(page)

	d.Open()
	d.Search().SetValue("zzz")
	d.Filter()
	out := ansi.Strip(r.Render(page))
	assert.Contains(t, out, "Nothing")
	assert.Equal(t, 4, d.Bounds().Height)
}

func TestRenderTableAndFilteredStates(t *testing.T) {
	table := elements.NewTable("stock", "Stock", []string{"Name", "Qty"}, [][]string{{"Bolt", "3"}, {"Nut", "9"}})
	list := elements.NewList("l", "Things", []string{"a"})
	r := NewRenderer(nil)

	out := ansi.Strip(r.Render(Page{Width: 40, Elements: []elements.Element{table, list}}))
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Bolt")
	assert.Contains(t, out, "Nut")

	table.Rows()[0].SetHidden(true)
	list.Items()[0].SetHidden(true)
	out = ansi.Strip(r.Render(Page{Width: 40, Elements: []elements.Element{table, list}}))
	assert.NotContains(t, out, "Bolt")
	assert.Contains(t, out, "(all 1 items filtered out)")

	table.Rows()[1].SetHidden(true)
	out = ansi.Strip(r.Render(Page{Width: 40, Elements: []elements.Element{table}}))
	assert.Contains(t, out, "(all 2 rows filtered out)")
}
