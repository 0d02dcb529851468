package filterable

import (
	"math/rand/v2"
	"strings"

	"filterable/internal/debounce"
	"filterable/internal/domain"
	"filterable/internal/elements"
	"filterable/internal/eventbus"
	"filterable/internal/match"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	popupIDPrefix   = "filterable_dropdown_"
	popupIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	popupIDLength   = 10

	minPopupWidth = 20
	itemHeight    = 1
	// border top, search line, border bottom
	popupChromeLines = 3
)

// PopupItem is one selectable entry of an open popup
type PopupItem struct {
	Text   string
	Value  string
	hidden bool
}

// PopupRow is a popup item as the renderer draws it
type PopupRow struct {
	Text        string
	Value       string
	Highlighted bool
}

// Dropdown is a filterable popup for a select field
type Dropdown struct {
	id     string
	bus    eventbus.EventBus
	field  *elements.SelectField
	opts   Options
	search *elements.SearchInput
	unbind func()

	open    bool
	items   []*PopupItem
	cursor  int
	scroll  int
	noMatch bool
	origin  domain.Rect
	layout  domain.Rect
	list    domain.Rect
	last    domain.FilterSummary

	filterTimer *debounce.Debouncer
	resizeTimer *debounce.Debouncer
	subs        []func()
}

func newDropdown(host Host, field *elements.SelectField, opts Options) *Dropdown {
	id := popupIDPrefix + randomID()
	d := &Dropdown{
		id:          id,
		bus:         host.Bus(),
		field:       field,
		opts:        opts,
		search:      elements.NewSearchInput(id+"_search", "", "filter..."),
		cursor:      -1,
		filterTimer: debounce.New(newOwner("filter", id), opts.Delay),
		resizeTimer: debounce.New(newOwner("resize", id), opts.ResizeDelay),
	}
	d.search.DisableSuggestions()
	d.unbind = d.search.OnKeyUp(d.keyUp)
	return d
}

func randomID() string {
	var b strings.Builder
	for i := 0; i < popupIDLength; i++ {
		b.WriteByte(popupIDAlphabet[rand.IntN(len(popupIDAlphabet))])
	}
	return b.String()
}

// ID returns the popup identifier
func (d *Dropdown) ID() string { return d.id }

// Bound returns the select field
func (d *Dropdown) Bound() elements.Element { return d.field }

// Field returns the select field
func (d *Dropdown) Field() *elements.SelectField { return d.field }

// Search returns the popup's search input
func (d *Dropdown) Search() *elements.SearchInput { return d.search }

// IsOpen reports whether the popup is shown
func (d *Dropdown) IsOpen() bool { return d.open }

// ButtonClass, DropdownClass and NoMatchClass name the style classes used
// to draw the button, the popup and the no-match message
func (d *Dropdown) ButtonClass() string   { return d.opts.ButtonClass }
func (d *Dropdown) DropdownClass() string { return d.opts.DropdownClass }
func (d *Dropdown) NoMatchClass() string  { return d.opts.NoMatchClass }

// NoMatchMessage is the text shown when nothing matches
func (d *Dropdown) NoMatchMessage() string { return d.opts.NoMatchMessage }

// NoMatchVisible reports whether the no-match message is shown
func (d *Dropdown) NoMatchVisible() bool { return d.noMatch }

// ScrollOffset is the first list line shown
func (d *Dropdown) ScrollOffset() int { return d.scroll }

// LastSummary describes the most recent filter pass
func (d *Dropdown) LastSummary() domain.FilterSummary { return d.last }

// Toggle opens a closed popup and closes an open one. Either way the
// search text and the no-match message are cleared first.
func (d *Dropdown) Toggle() tea.Cmd {
	d.noMatch = false
	d.search.Reset()
	if d.open {
		return d.close()
	}
	return d.openPopup()
}

// Open opens the popup if it is closed
func (d *Dropdown) Open() tea.Cmd {
	if d.open {
		return nil
	}
	return d.Toggle()
}

// Close closes the popup if it is open
func (d *Dropdown) Close() tea.Cmd {
	if !d.open {
		return nil
	}
	return d.Toggle()
}

func (d *Dropdown) openPopup() tea.Cmd {
	d.subs = append(d.subs,
		d.bus.Subscribe(eventbus.EventDocumentClicked, d.documentClicked),
		d.bus.Subscribe(eventbus.EventWindowResized, d.windowResized),
		d.bus.Subscribe(eventbus.EventPopupOpened, d.popupOpened),
	)
	d.populate()
	d.position()
	d.open = true
	focus := d.search.Focus()
	return tea.Batch(focus, d.bus.Publish(eventbus.PopupOpenedEvent{PopupID: d.id, FieldID: d.field.ID()}))
}

func (d *Dropdown) close() tea.Cmd {
	for _, unsubscribe := range d.subs {
		unsubscribe()
	}
	d.subs = nil
	d.filterTimer.Cancel()
	d.resizeTimer.Cancel()
	d.search.Blur()
	d.search.Reset()
	d.items = nil
	d.cursor = -1
	d.scroll = 0
	d.noMatch = false
	d.layout = domain.Rect{}
	d.list = domain.Rect{}
	d.open = false
	return d.bus.Publish(eventbus.PopupClosedEvent{PopupID: d.id, FieldID: d.field.ID()})
}

// populate reads the field's current options, skipping blank values
func (d *Dropdown) populate() {
	d.items = d.items[:0]
	for _, o := range d.field.Options() {
		if strings.TrimSpace(o.Value) == "" {
			continue
		}
		d.items = append(d.items, &PopupItem{Text: o.Text, Value: o.Value})
	}
	d.cursor = -1
	d.scroll = 0
}

// position anchors the popup beneath the field
func (d *Dropdown) position() {
	fb := d.field.Bounds()
	width := fb.Width
	if width < minPopupWidth {
		width = minPopupWidth
	}
	d.origin = domain.Rect{X: fb.X, Y: fb.Y + fb.Height, Width: width}
}

// Bounds is the popup's screen area: the last rendered one, or an
// estimate before the first render
func (d *Dropdown) Bounds() domain.Rect {
	if !d.open {
		return domain.Rect{}
	}
	if !d.layout.Empty() {
		return d.layout
	}
	r := d.origin
	r.Height = popupChromeLines + d.ListHeight()
	if d.noMatch {
		r.Height++
	}
	return r
}

// Origin is where the popup's top-left corner goes and how wide it is
func (d *Dropdown) Origin() domain.Rect {
	return d.origin
}

// SetLayout records where the popup and its item list were drawn
func (d *Dropdown) SetLayout(popup, list domain.Rect) {
	d.layout = popup
	d.list = list
}

// ListHeight is the number of list lines the popup shows
func (d *Dropdown) ListHeight() int {
	n := len(d.visible()) * itemHeight
	if n > d.opts.MaxVisible {
		return d.opts.MaxVisible
	}
	return n
}

// Rows returns the visible items inside the current scroll window
func (d *Dropdown) Rows() []PopupRow {
	vis := d.visible()
	h := d.ListHeight()
	var rows []PopupRow
	for line := d.scroll; line < d.scroll+h && line < len(vis); line++ {
		it := d.items[vis[line]]
		rows = append(rows, PopupRow{Text: it.Text, Value: it.Value, Highlighted: vis[line] == d.cursor})
	}
	return rows
}

// VisibleTexts returns the text of every item passing the filter
func (d *Dropdown) VisibleTexts() []string {
	var out []string
	for _, i := range d.visible() {
		out = append(out, d.items[i].Text)
	}
	return out
}

// Highlighted returns the highlighted item, if any
func (d *Dropdown) Highlighted() (PopupItem, bool) {
	if d.cursor < 0 || d.cursor >= len(d.items) {
		return PopupItem{}, false
	}
	return *d.items[d.cursor], true
}

func (d *Dropdown) visible() []int {
	var out []int
	for i, it := range d.items {
		if !it.hidden {
			out = append(out, i)
		}
	}
	return out
}

// HandleKey processes a key while the popup is open
func (d *Dropdown) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if !d.open {
		return nil
	}
	switch msg.Type {
	case tea.KeyEnter:
		return d.applySelection()
	case tea.KeyUp:
		d.selectPrevious()
		return nil
	case tea.KeyDown:
		d.selectNext()
		return nil
	}
	return d.search.Update(msg)
}

// keyUp closes on escape and debounces a filter pass for text keys
func (d *Dropdown) keyUp(msg tea.KeyMsg) tea.Cmd {
	if debounce.IsEscape(msg) {
		return d.Toggle()
	}
	if debounce.IsNavigationKey(msg) {
		return nil
	}
	return d.filterTimer.Schedule()
}

// HandleClick handles a press at (x, y). It reports false when the click
// is outside the popup.
func (d *Dropdown) HandleClick(x, y int) (bool, tea.Cmd) {
	if !d.open || !d.Bounds().Contains(x, y) {
		return false, nil
	}
	if !d.list.Contains(x, y) {
		return true, nil
	}
	line := (y-d.list.Y)/itemHeight + d.scroll
	vis := d.visible()
	if line < 0 || line >= len(vis) {
		return true, nil
	}
	d.selectItem(vis[line])
	return true, d.applySelection()
}

// Update runs the controller's debounced work when its ticks arrive
func (d *Dropdown) Update(msg tea.Msg) tea.Cmd {
	if d.filterTimer.Fired(msg) {
		d.filterResults()
		return nil
	}
	if d.resizeTimer.Fired(msg) {
		d.position()
		d.layout = domain.Rect{}
	}
	return nil
}

// Filter runs a filter pass right away
func (d *Dropdown) Filter() domain.FilterSummary {
	d.filterResults()
	return d.last
}

func (d *Dropdown) filterResults() {
	d.cursor = -1
	d.scroll = 0
	d.noMatch = false

	m := match.Compile(d.search.Value())
	visible := runPass(popupItems(d.items), m)
	if !m.Empty() {
		if visible > 0 {
			d.selectFirst()
		} else {
			d.noMatch = true
		}
	}

	d.last = domain.FilterSummary{
		ElementID: d.field.ID(),
		Query:     m.Query(),
		Visible:   visible,
		Total:     len(d.items),
	}
	if d.opts.AfterFilter != nil {
		d.opts.AfterFilter(d.field)
	}
}

// applySelection writes the highlighted item back to the field, fires its
// change notification and closes the popup
func (d *Dropdown) applySelection() tea.Cmd {
	item, ok := d.Highlighted()
	if !ok {
		return nil
	}
	d.field.SetValue(item.Value)
	change := d.field.Change()
	return tea.Batch(change, d.Toggle())
}

func (d *Dropdown) selectItem(i int) {
	d.cursor = i
}

func (d *Dropdown) selectFirst() {
	if vis := d.visible(); len(vis) > 0 {
		d.selectItem(vis[0])
	}
}

func (d *Dropdown) selectLast() {
	if vis := d.visible(); len(vis) > 0 {
		d.selectItem(vis[len(vis)-1])
	}
}

// selectNext moves down, wrapping from the last visible item to the first
func (d *Dropdown) selectNext() {
	next := -1
	if d.cursor >= 0 {
		for i := d.cursor + 1; i < len(d.items); i++ {
			if !d.items[i].hidden {
				next = i
				break
			}
		}
	}
	if next < 0 {
		d.selectFirst()
	} else {
		d.selectItem(next)
	}
	d.scrollToSelected()
}

// selectPrevious moves up, wrapping from the first visible item to the last
func (d *Dropdown) selectPrevious() {
	prev := -1
	if d.cursor >= 0 {
		for i := d.cursor - 1; i >= 0; i-- {
			if !d.items[i].hidden {
				prev = i
				break
			}
		}
	}
	if prev < 0 {
		d.selectLast()
	} else {
		d.selectItem(prev)
	}
	d.scrollToSelected()
}

// scrollToSelected keeps the highlighted item inside the list window.
// Offsets are in list content lines.
func (d *Dropdown) scrollToSelected() {
	if d.cursor < 0 {
		return
	}
	itemTop := -1
	for k, i := range d.visible() {
		if i == d.cursor {
			itemTop = k * itemHeight
			break
		}
	}
	if itemTop < 0 {
		return
	}
	itemBottom := itemTop + itemHeight
	listBottom := d.scroll + d.ListHeight()

	if itemBottom > listBottom {
		d.scroll = itemBottom - listBottom + d.scroll
	} else if itemTop < d.scroll {
		d.scroll = itemTop
	}
}

func (d *Dropdown) documentClicked(e eventbus.DomainEvent) tea.Cmd {
	click, ok := e.(eventbus.DocumentClickedEvent)
	if !ok || !d.open || d.Bounds().Contains(click.X, click.Y) {
		return nil
	}
	return d.Toggle()
}

func (d *Dropdown) windowResized(e eventbus.DomainEvent) tea.Cmd {
	return d.resizeTimer.Schedule()
}

// popupOpened closes this popup when another one opens
func (d *Dropdown) popupOpened(e eventbus.DomainEvent) tea.Cmd {
	opened, ok := e.(eventbus.PopupOpenedEvent)
	if !ok || opened.PopupID == d.id || !d.open {
		return nil
	}
	return d.Toggle()
}

// Detach closes the popup and stops listening to its search input
func (d *Dropdown) Detach() {
	if d.open {
		d.close()
	}
	if d.unbind != nil {
		d.unbind()
		d.unbind = nil
	}
}

type popupItems []*PopupItem

func (p popupItems) Len() int                     { return len(p) }
func (p popupItems) Texts(i int) []string         { return []string{p[i].Text} }
func (p popupItems) SetHidden(i int, hidden bool) { p[i].hidden = hidden }
