// Package filterable attaches incremental text filtering to page elements:
// a popup dropdown for select fields, and in-place filtering for lists and
// tables driven by a separate search input.
package filterable

import (
	"log"

	"filterable/internal/domain"
	"filterable/internal/elements"
	"filterable/internal/eventbus"

	tea "github.com/charmbracelet/bubbletea"
)

// Host is the page a controller lives on
type Host interface {
	Bus() eventbus.EventBus
	Find(selector string) elements.Element
	Supported() bool
}

// Controller is an attached filter behavior
type Controller interface {
	// Bound returns the element the controller is attached to
	Bound() elements.Element
	// Update feeds the controller messages it may own, such as its timers
	Update(msg tea.Msg) tea.Cmd
	// Detach removes every listener the controller registered
	Detach()
}

// Attach binds a filter controller to target. It returns nil, leaving the
// element untouched, when the environment is unsupported, the element kind
// cannot be filtered, or the configuration is incomplete.
func Attach(host Host, target elements.Element, opts Options) Controller {
	if host == nil || target == nil || !host.Supported() {
		return nil
	}

	switch el := target.(type) {
	case *elements.SelectField:
		return newDropdown(host, el, opts.withDropdownDefaults())

	case *elements.List:
		search := resolveSearchField(host, opts.SearchField, domain.KindList)
		if search == nil {
			return nil
		}
		return newListFilter(el, search, opts.withCommonDefaults())

	case *elements.Table:
		search := resolveSearchField(host, opts.SearchField, domain.KindTable)
		if search == nil {
			return nil
		}
		return newTableFilter(el, search, opts.withTableDefaults())
	}
	return nil
}

// AttachAll attaches the same options to each target and returns the
// controllers that were attached
func AttachAll(host Host, targets []elements.Element, opts Options) []Controller {
	var out []Controller
	for _, t := range targets {
		if c := Attach(host, t, opts); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func resolveSearchField(host Host, selector string, kind domain.ElementKind) *elements.SearchInput {
	if selector == "" {
		log.Printf("No search field provided for filtering %s", kind)
		return nil
	}
	search, ok := host.Find(selector).(*elements.SearchInput)
	if !ok {
		log.Printf("No search field provided for filtering %s: %q is not a search input", kind, selector)
		return nil
	}
	return search
}
