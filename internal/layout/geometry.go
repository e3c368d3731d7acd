// Package layout holds the geometry shared by the selection engine and its
// hosts, and a monospace cell-grid layout of a transcript that answers the
// engine's hit-testing and measurement queries.
package layout

import "errors"

var (
	// ErrNoText means a point does not fall on transcript text.
	ErrNoText = errors.New("no transcript text at point")

	// ErrOutOfRange means an anchor refers to an unknown sentence or an
	// offset outside its text.
	ErrOutOfRange = errors.New("anchor out of range")
)

// Point is a position in document coordinates (cells, scroll-independent).
type Point struct {
	X, Y int
}

// Rect is an axis-aligned box in document coordinates.
type Rect struct {
	X, Y, W, H int
}

// Right is the first column past the rect.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the first row past the rect.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Union returns the bounding box of rects, or the zero Rect when empty.
func Union(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	u := rects[0]
	for _, r := range rects[1:] {
		x, y := min(u.X, r.X), min(u.Y, r.Y)
		right, bottom := max(u.Right(), r.Right()), max(u.Bottom(), r.Bottom())
		u = Rect{X: x, Y: y, W: right - x, H: bottom - y}
	}
	return u
}

// Anchor is a caret position inside the rendered text of one sentence.
// Offset counts runes from the start of the sentence text.
type Anchor struct {
	Sentence int
	Offset   int
}

// Compare orders anchors in document order. Sentence ids increase in
// document order, so comparing ids then offsets is enough.
func (a Anchor) Compare(b Anchor) int {
	switch {
	case a.Sentence < b.Sentence:
		return -1
	case a.Sentence > b.Sentence:
		return 1
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	}
	return 0
}

// Before reports whether a comes strictly before b.
func (a Anchor) Before(b Anchor) bool { return a.Compare(b) < 0 }

// Ordered returns a and b in document order.
func Ordered(a, b Anchor) (Anchor, Anchor) {
	if b.Before(a) {
		return b, a
	}
	return a, b
}
