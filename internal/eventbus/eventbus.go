package eventbus

import (
	"filterable/internal/domain"
	"log"
	"runtime/debug"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventPopupOpened     = domain.EventPopupOpened
	EventPopupClosed     = domain.EventPopupClosed
	EventDocumentClicked = domain.EventDocumentClicked
	EventWindowResized   = domain.EventWindowResized
	EventValueChanged    = domain.EventValueChanged
	EventFilterApplied   = domain.EventFilterApplied
	EventConfigLoaded    = domain.EventConfigLoaded
	EventConfigSaved     = domain.EventConfigSaved
)

// Re-export domain event types
type PopupOpenedEvent = domain.PopupOpenedEvent
type PopupClosedEvent = domain.PopupClosedEvent
type DocumentClickedEvent = domain.DocumentClickedEvent
type WindowResizedEvent = domain.WindowResizedEvent
type ValueChangedEvent = domain.ValueChangedEvent
type FilterAppliedEvent = domain.FilterAppliedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler handles a domain event and may hand a command back to the
// Bubble Tea loop
type EventHandler func(DomainEvent) tea.Cmd

// EventBus is the interface for the page-scoped event bus
type EventBus interface {
	Publish(event DomainEvent) tea.Cmd
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus. Handlers run synchronously
// on the publishing goroutine, which is the Bubble Tea update loop.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64
}

// New creates a new event bus
func New() EventBus {
	return &bus{
		handlers: make(map[EventType][]subscription),
	}
}

// Publish delivers an event to every current subscriber and batches the
// commands they return
func (b *bus) Publish(event DomainEvent) tea.Cmd {
	switch event.Type() {
	case EventFilterApplied, EventWindowResized, EventDocumentClicked:
		// too frequent to log
	default:
		log.Printf("EventBus: Publishing event %s", event.Type())
	}

	// Copy so handlers can subscribe or unsubscribe while we dispatch
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	var cmds []tea.Cmd
	for _, sub := range subs {
		if cmd := b.call(sub.handler, event); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (b *bus) call(h EventHandler, event DomainEvent) (cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
			cmd = nil
		}
	}()
	return h(event)
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			subs := b.handlers[eventType]
			for i, s := range subs {
				if s.id == id {
					// Fresh slice so an in-flight Publish copy is unaffected
					next := make([]subscription, 0, len(subs)-1)
					next = append(next, subs[:i]...)
					b.handlers[eventType] = append(next, subs[i+1:]...)
					break
				}
			}
		})
	}
}

// NullBus drops every event
type NullBus struct{}

func (NullBus) Publish(event DomainEvent) tea.Cmd { return nil }
func (NullBus) Subscribe(eventType EventType, handler EventHandler) func() {
	return func() {}
}
