package filterable

import (
	"time"

	"filterable/internal/debounce"
	"filterable/internal/elements"
)

// Default option values
const (
	DefaultButtonClass    = "filterable-button"
	DefaultDropdownClass  = "filterable-dropdown"
	DefaultNoMatchClass   = "filterable-no-match"
	DefaultNoMatchMessage = "No Matches"
	DefaultValueSelector  = "td"
	DefaultMaxVisible     = 8
)

// Options configures a controller. Zero values fall back to the defaults.
type Options struct {
	// Dropdown only
	ButtonClass    string
	DropdownClass  string
	NoMatchClass   string
	NoMatchMessage string
	MaxVisible     int
	ResizeDelay    time.Duration

	// List and table
	SearchField string

	// Table only
	ValueSelector string

	// All variants. Runs after every filter pass with the bound element.
	AfterFilter func(bound elements.Element)
	Delay       time.Duration
}

func (o Options) withDropdownDefaults() Options {
	if o.ButtonClass == "" {
		o.ButtonClass = DefaultButtonClass
	}
	if o.DropdownClass == "" {
		o.DropdownClass = DefaultDropdownClass
	}
	if o.NoMatchClass == "" {
		o.NoMatchClass = DefaultNoMatchClass
	}
	if o.NoMatchMessage == "" {
		o.NoMatchMessage = DefaultNoMatchMessage
	}
	if o.MaxVisible <= 0 {
		o.MaxVisible = DefaultMaxVisible
	}
	if o.ResizeDelay <= 0 {
		o.ResizeDelay = debounce.ResizeDelay
	}
	return o.withCommonDefaults()
}

func (o Options) withTableDefaults() Options {
	if o.ValueSelector == "" {
		o.ValueSelector = DefaultValueSelector
	}
	return o.withCommonDefaults()
}

func (o Options) withCommonDefaults() Options {
	if o.Delay <= 0 {
		o.Delay = debounce.FilterDelay
	}
	return o
}
