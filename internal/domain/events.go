package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventPopupOpened     EventType = "PopupOpened"
	EventPopupClosed     EventType = "PopupClosed"
	EventDocumentClicked EventType = "DocumentClicked"
	EventWindowResized   EventType = "WindowResized"
	EventValueChanged    EventType = "ValueChanged"
	EventFilterApplied   EventType = "FilterApplied"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// PopupOpenedEvent is broadcast when a dropdown popup opens.
// Open popups with a different ID close themselves.
type PopupOpenedEvent struct {
	PopupID string
	FieldID string
}

func (e PopupOpenedEvent) Type() EventType { return EventPopupOpened }

// PopupClosedEvent is emitted when a dropdown popup closes
type PopupClosedEvent struct {
	PopupID string
	FieldID string
}

func (e PopupClosedEvent) Type() EventType { return EventPopupClosed }

// DocumentClickedEvent is emitted for a click that no popup or button claimed
type DocumentClickedEvent struct {
	X int
	Y int
}

func (e DocumentClickedEvent) Type() EventType { return EventDocumentClicked }

// WindowResizedEvent is emitted when the terminal size changes
type WindowResizedEvent struct {
	Width  int
	Height int
}

func (e WindowResizedEvent) Type() EventType { return EventWindowResized }

// ValueChangedEvent is the change notification of a select field
type ValueChangedEvent struct {
	FieldID string
	Value   string
	Text    string
}

func (e ValueChangedEvent) Type() EventType { return EventValueChanged }

// FilterAppliedEvent is emitted after every match pass
type FilterAppliedEvent struct {
	Summary FilterSummary
}

func (e FilterAppliedEvent) Type() EventType { return EventFilterApplied }

// ConfigLoadedEvent is emitted when a page configuration is loaded
type ConfigLoadedEvent struct {
	Path     string
	Elements int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when a page configuration is written
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
