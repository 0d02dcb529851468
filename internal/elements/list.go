package elements

import "filterable/internal/domain"

// Item is one entry of a List
type Item struct {
	Text   string
	hidden bool
}

// Hidden reports whether the item is filtered out
func (i *Item) Hidden() bool { return i.hidden }

// SetHidden shows or hides the item
func (i *Item) SetHidden(hidden bool) { i.hidden = hidden }

// List is a plain list of text items
type List struct {
	base
	items []*Item
}

// NewList creates a list with every item visible
func NewList(id, label string, texts []string) *List {
	l := &List{base: base{id: id, label: label}}
	l.SetItems(texts)
	return l
}

func (l *List) Kind() domain.ElementKind { return domain.KindList }

// SetItems replaces the items; all new items are visible
func (l *List) SetItems(texts []string) {
	l.items = make([]*Item, len(texts))
	for i, t := range texts {
		l.items[i] = &Item{Text: t}
	}
}

// Items returns the live items
func (l *List) Items() []*Item {
	return l.items
}

// VisibleTexts returns the text of every visible item
func (l *List) VisibleTexts() []string {
	var out []string
	for _, it := range l.items {
		if !it.hidden {
			out = append(out, it.Text)
		}
	}
	return out
}
