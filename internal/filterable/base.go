package filterable

import (
	"fmt"
	"sync/atomic"

	"filterable/internal/debounce"
	"filterable/internal/domain"
	"filterable/internal/elements"
	"filterable/internal/match"

	tea "github.com/charmbracelet/bubbletea"
)

// candidateSet is what a match pass walks: the variant-specific part of
// every controller
type candidateSet interface {
	Len() int
	Texts(i int) []string
	SetHidden(i int, hidden bool)
}

// runPass shows every candidate for a blank query, otherwise hides each
// one and shows it again only if one of its texts matches
func runPass(set candidateSet, m match.Matcher) int {
	visible := 0
	for i := 0; i < set.Len(); i++ {
		if m.Empty() {
			set.SetHidden(i, false)
			visible++
			continue
		}
		set.SetHidden(i, true)
		if m.MatchAny(set.Texts(i)...) {
			set.SetHidden(i, false)
			visible++
		}
	}
	return visible
}

var ownerSeq atomic.Uint64

// newOwner returns a debounce owner tag unique to this process
func newOwner(kind, id string) string {
	return fmt.Sprintf("%s:%s#%d", kind, id, ownerSeq.Add(1))
}

// searchFilter is the shared list/table behavior: a debounced key-up
// handler on an external search input driving a match pass
type searchFilter struct {
	bound       elements.Element
	search      *elements.SearchInput
	timer       *debounce.Debouncer
	afterFilter func(elements.Element)
	candidates  func() candidateSet
	unbind      func()
	last        domain.FilterSummary
}

func newSearchFilter(bound elements.Element, search *elements.SearchInput, opts Options, candidates func() candidateSet) *searchFilter {
	f := &searchFilter{
		bound:       bound,
		search:      search,
		timer:       debounce.New(newOwner(string(bound.Kind()), bound.ID()), opts.Delay),
		afterFilter: opts.AfterFilter,
		candidates:  candidates,
	}
	search.DisableSuggestions()
	f.unbind = search.OnKeyUp(f.keyUp)
	return f
}

func (f *searchFilter) keyUp(msg tea.KeyMsg) tea.Cmd {
	if debounce.IsNavigationKey(msg) || debounce.IsEscape(msg) {
		return nil
	}
	return f.timer.Schedule()
}

// Bound returns the filtered element
func (f *searchFilter) Bound() elements.Element {
	return f.bound
}

// Update runs the pass when this filter's debounce tick arrives
func (f *searchFilter) Update(msg tea.Msg) tea.Cmd {
	if f.timer.Fired(msg) {
		f.Filter()
	}
	return nil
}

// Filter runs a match pass right away
func (f *searchFilter) Filter() domain.FilterSummary {
	set := f.candidates()
	m := match.Compile(f.search.Value())
	f.last = domain.FilterSummary{
		ElementID: f.bound.ID(),
		Query:     m.Query(),
		Visible:   runPass(set, m),
		Total:     set.Len(),
	}
	if f.afterFilter != nil {
		f.afterFilter(f.bound)
	}
	return f.last
}

// LastSummary describes the most recent pass
func (f *searchFilter) LastSummary() domain.FilterSummary {
	return f.last
}

// Pending reports whether a pass is scheduled
func (f *searchFilter) Pending() bool {
	return f.timer.Pending()
}

// Detach stops listening to the search input
func (f *searchFilter) Detach() {
	f.timer.Cancel()
	if f.unbind != nil {
		f.unbind()
		f.unbind = nil
	}
}
