// Package elements holds the page elements filter controllers bind to.
// Elements are owned by the page; controllers only keep references.
package elements

import (
	"strings"

	"filterable/internal/domain"
)

// Element is anything placed on the page
type Element interface {
	ID() string
	Kind() domain.ElementKind
	Label() string
	Bounds() domain.Rect
	SetBounds(r domain.Rect)
}

// base carries the parts every element shares
type base struct {
	id     string
	label  string
	bounds domain.Rect
}

func (b *base) ID() string              { return b.id }
func (b *base) Label() string           { return b.label }
func (b *base) Bounds() domain.Rect     { return b.bounds }
func (b *base) SetBounds(r domain.Rect) { b.bounds = r }

// Registry indexes page elements by ID, preserving page order
type Registry struct {
	order []Element
	byID  map[string]Element
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Element)}
}

// Add appends an element. It returns false if the ID is taken.
func (r *Registry) Add(e Element) bool {
	if _, exists := r.byID[e.ID()]; exists {
		return false
	}
	r.order = append(r.order, e)
	r.byID[e.ID()] = e
	return true
}

// All returns the elements in page order
func (r *Registry) All() []Element {
	out := make([]Element, len(r.order))
	copy(out, r.order)
	return out
}

// Find resolves a selector: "#id" or a bare id
func (r *Registry) Find(selector string) Element {
	id := strings.TrimPrefix(strings.TrimSpace(selector), "#")
	if id == "" {
		return nil
	}
	return r.byID[id]
}

// At returns the topmost element whose bounds contain (x, y)
func (r *Registry) At(x, y int) Element {
	for _, e := range r.order {
		if e.Bounds().Contains(x, y) {
			return e
		}
	}
	return nil
}
