package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"filterable/internal/config"
	"filterable/internal/debounce"
	"filterable/internal/domain"
	"filterable/internal/elements"
	"filterable/internal/eventbus"
	"filterable/internal/filterable"
	"filterable/internal/ui/views"
)

// summarizer is implemented by every controller
type summarizer interface {
	LastSummary() domain.FilterSummary
}

// Model is a page of filterable elements. It is the host the filter
// controllers attach to.
type Model struct {
	bus       eventbus.EventBus
	config    *config.Config
	supported bool

	registry    *elements.Registry
	controllers []filterable.Controller
	byElement   map[string]filterable.Controller
	dropdowns   map[string]*filterable.Dropdown // by select field ID
	focusable   []elements.Element
	focus       int
	unsubscribe []func()

	width       int
	height      int
	keys        keyMap
	help        help.Model
	renderer    *views.Renderer
	status      string
	statusSeq   int
	lastChange  string
	inPagerMode bool // tracks if we're currently in pager mode

	// Program reference for terminal management
	program *tea.Program
	helpOps *HelpOps
}

// NewModel builds the page described by cfg and attaches a filter
// controller to every element that can take one. supported is false when
// the terminal cannot host the popups, which leaves every element plain.
func NewModel(bus eventbus.EventBus, cfg *config.Config, supported bool) *Model {
	if bus == nil {
		bus = eventbus.New()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := &Model{
		bus:       bus,
		config:    cfg,
		supported: supported,
		registry:  elements.NewRegistry(),
		byElement: make(map[string]filterable.Controller),
		dropdowns: make(map[string]*filterable.Dropdown),
		keys:      defaultKeyMap(),
		help:      help.New(),
		renderer:  views.NewRenderer(views.NewStylesFromConfig(cfg)),
	}

	m.unsubscribe = append(m.unsubscribe,
		bus.Subscribe(eventbus.EventValueChanged, m.handleValueChanged),
		bus.Subscribe(eventbus.EventFilterApplied, m.handleFilterApplied),
	)

	m.buildElements()
	m.attachControllers()
	m.focusFirst()
	return m
}

func (m *Model) buildElements() {
	for _, ec := range m.config.Elements {
		var el elements.Element
		switch domain.ElementKind(ec.Kind) {
		case domain.KindSelect:
			opts := make([]domain.Option, len(ec.Options))
			for i, o := range ec.Options {
				opts[i] = domain.Option{Text: o.Text, Value: o.Value}
			}
			el = elements.NewSelectField(ec.ID, ec.Label, opts, ec.Value, m.bus)
		case domain.KindInput:
			el = elements.NewSearchInput(ec.ID, ec.Label, ec.Placeholder)
		case domain.KindList:
			el = elements.NewList(ec.ID, ec.Label, ec.Items)
		case domain.KindTable:
			el = elements.NewTable(ec.ID, ec.Label, ec.Columns, ec.Rows)
		default:
			log.Printf("Skipping element %q: unknown kind %q", ec.ID, ec.Kind)
			continue
		}
		if !m.registry.Add(el) {
			log.Printf("Skipping element %q: duplicate id", ec.ID)
			continue
		}
		if el.Kind() == domain.KindSelect || el.Kind() == domain.KindInput {
			m.focusable = append(m.focusable, el)
		}
	}
}

func (m *Model) attachControllers() {
	for _, ec := range m.config.Elements {
		el := m.registry.Find(ec.ID)
		if el == nil || el.Kind() == domain.KindInput {
			continue
		}
		c := filterable.Attach(m, el, m.optionsFor(ec))
		if c == nil {
			continue
		}
		m.controllers = append(m.controllers, c)
		m.byElement[el.ID()] = c
		if d, ok := c.(*filterable.Dropdown); ok {
			m.dropdowns[el.ID()] = d
		}
	}
	log.Printf("Attached %d filter controllers", len(m.controllers))
}

func (m *Model) optionsFor(ec config.ElementConfig) filterable.Options {
	return filterable.Options{
		ButtonClass:    ec.ButtonClass,
		DropdownClass:  ec.DropdownClass,
		NoMatchClass:   ec.NoMatchClass,
		NoMatchMessage: ec.NoMatchMessage,
		MaxVisible:     m.config.UI.PopupHeight,
		ResizeDelay:    time.Duration(m.config.Filter.ResizeDebounceMS) * time.Millisecond,
		SearchField:    ec.SearchField,
		ValueSelector:  ec.ValueSelector,
		AfterFilter:    m.afterFilter,
		Delay:          time.Duration(m.config.Filter.DebounceMS) * time.Millisecond,
	}
}

// Bus returns the page's event bus
func (m *Model) Bus() eventbus.EventBus {
	return m.bus
}

// Find resolves a "#id" or bare id selector to a page element
func (m *Model) Find(selector string) elements.Element {
	return m.registry.Find(selector)
}

// Supported reports whether controllers may attach
func (m *Model) Supported() bool {
	return m.supported
}

// Controllers returns the attached controllers in page order
func (m *Model) Controllers() []filterable.Controller {
	return m.controllers
}

// Dropdown returns the dropdown attached to a select field, if any
func (m *Model) Dropdown(fieldID string) *filterable.Dropdown {
	return m.dropdowns[fieldID]
}

// Status returns the status line text
func (m *Model) Status() string {
	return m.status
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Close detaches every controller and drops the page's bus subscriptions
func (m *Model) Close() {
	for _, c := range m.controllers {
		c.Detach()
	}
	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}
	m.unsubscribe = nil
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.focusCmd()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, m.bus.Publish(eventbus.WindowResizedEvent{Width: msg.Width, Height: msg.Height})

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		if m.inPagerMode {
			return m, nil
		}
		return m, m.handleMouse(msg)

	case debounce.FiredMsg:
		var cmds []tea.Cmd
		for _, c := range m.controllers {
			cmds = append(cmds, c.Update(msg))
		}
		return m, tea.Batch(cmds...)

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only
			log.Printf("Help pager failed: %v", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	// Anything else, such as cursor blinks, goes to the focused input
	if in, ok := m.focused().(*elements.SearchInput); ok {
		return m, in.Update(msg)
	}
	if d := m.openDropdown(); d != nil {
		return m, d.Search().Update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Force) {
		return tea.Quit
	}

	// An open popup takes every key
	if d := m.openDropdown(); d != nil {
		return d.HandleKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1)
	}

	switch el := m.focused().(type) {
	case *elements.SearchInput:
		return el.Update(msg)
	case *elements.SelectField:
		if d := m.dropdowns[el.ID()]; d != nil && key.Matches(msg, m.keys.Open) {
			return d.Toggle()
		}
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		return m.fetchHelpPager(NewHelpRenderer(m.keys).RenderHelpContent())
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	if d := m.openDropdown(); d != nil {
		if handled, cmd := d.HandleClick(msg.X, msg.Y); handled {
			return cmd
		}
	}

	// The filter button toggles its popup. This is not an outside click,
	// so pressing the button of the open popup closes it exactly once.
	for fieldID, d := range m.dropdowns {
		if d.Field().ButtonBounds().Contains(msg.X, msg.Y) {
			m.focusElement(fieldID)
			return d.Toggle()
		}
	}

	cmd := m.bus.Publish(eventbus.DocumentClickedEvent{X: msg.X, Y: msg.Y})
	if el := m.registry.At(msg.X, msg.Y); el != nil {
		return tea.Batch(cmd, m.focusElement(el.ID()))
	}
	return cmd
}

func (m *Model) openDropdown() *filterable.Dropdown {
	for _, d := range m.dropdowns {
		if d.IsOpen() {
			return d
		}
	}
	return nil
}

func (m *Model) focused() elements.Element {
	if len(m.focusable) == 0 {
		return nil
	}
	return m.focusable[m.focus]
}

// FocusedID returns the ID of the focused element, or ""
func (m *Model) FocusedID() string {
	if el := m.focused(); el != nil {
		return el.ID()
	}
	return ""
}

func (m *Model) focusFirst() {
	m.focus = 0
	m.focusCmd()
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	if len(m.focusable) == 0 {
		return nil
	}
	m.blurCurrent()
	m.focus = (m.focus + delta + len(m.focusable)) % len(m.focusable)
	return m.focusCmd()
}

func (m *Model) focusElement(id string) tea.Cmd {
	for i, el := range m.focusable {
		if el.ID() == id {
			if i == m.focus {
				return nil
			}
			m.blurCurrent()
			m.focus = i
			return m.focusCmd()
		}
	}
	return nil
}

func (m *Model) blurCurrent() {
	if in, ok := m.focused().(*elements.SearchInput); ok {
		in.Blur()
	}
}

func (m *Model) focusCmd() tea.Cmd {
	if in, ok := m.focused().(*elements.SearchInput); ok {
		return in.Focus()
	}
	return nil
}

// afterFilter is every controller's AfterFilter callback
func (m *Model) afterFilter(bound elements.Element) {
	c, ok := m.byElement[bound.ID()].(summarizer)
	if !ok {
		return
	}
	m.bus.Publish(eventbus.FilterAppliedEvent{Summary: c.LastSummary()})
}

func (m *Model) handleFilterApplied(e eventbus.DomainEvent) tea.Cmd {
	applied, ok := e.(eventbus.FilterAppliedEvent)
	if !ok {
		return nil
	}
	// Filter summaries stay until the next status replaces them
	s := applied.Summary
	m.statusSeq++
	if s.Query == "" {
		m.status = fmt.Sprintf("%s: showing all %d", s.ElementID, s.Total)
	} else {
		m.status = fmt.Sprintf("%s: %d of %d match %q", s.ElementID, s.Visible, s.Total, s.Query)
	}
	return nil
}

func (m *Model) handleValueChanged(e eventbus.DomainEvent) tea.Cmd {
	changed, ok := e.(eventbus.ValueChangedEvent)
	if !ok {
		return nil
	}
	m.lastChange = fmt.Sprintf("%s = %s", changed.FieldID, changed.Text)
	return m.setStatus("Selected " + changed.Text)
}

func (m *Model) setStatus(s string) tea.Cmd {
	m.status = s
	m.statusSeq++
	return clearStatusAfter(m.statusSeq)
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	if m.program == nil {
		return nil
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{
			err: err,
		}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	footer := m.help.View(m.keys)
	if m.lastChange != "" {
		footer = m.lastChange + "  " + footer
	}

	return m.renderer.Render(views.Page{
		Width:      m.width,
		Height:     m.height,
		Title:      m.config.Title,
		Elements:   m.registry.All(),
		Focused:    m.FocusedID(),
		Dropdowns:  m.dropdowns,
		FieldWidth: m.config.UI.FieldWidth,
		Status:     m.status,
		Footer:     footer,
	})
}
