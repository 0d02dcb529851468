package filterable

import (
	"filterable/internal/elements"
)

// ListFilter filters the items of a List by their text
type ListFilter struct {
	*searchFilter
	list *elements.List
}

func newListFilter(list *elements.List, search *elements.SearchInput, opts Options) *ListFilter {
	lf := &ListFilter{list: list}
	lf.searchFilter = newSearchFilter(list, search, opts, lf.candidates)
	return lf
}

func (lf *ListFilter) candidates() candidateSet {
	return listItems(lf.list.Items())
}

type listItems []*elements.Item

func (l listItems) Len() int                     { return len(l) }
func (l listItems) Texts(i int) []string         { return []string{l[i].Text} }
func (l listItems) SetHidden(i int, hidden bool) { l[i].SetHidden(hidden) }
