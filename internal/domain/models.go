package domain

// Option is one entry of a select field
type Option struct {
	Text  string
	Value string
}

// ElementKind identifies what a page element is
type ElementKind string

const (
	KindSelect ElementKind = "select"
	KindList   ElementKind = "list"
	KindTable  ElementKind = "table"
	KindInput  ElementKind = "input"
)

// Rect is a cell-based screen rectangle
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the cell (x, y) lies inside the rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether the rectangle covers no cells
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// FilterSummary describes the outcome of one match pass
type FilterSummary struct {
	ElementID string
	Query     string
	Visible   int
	Total     int
}
