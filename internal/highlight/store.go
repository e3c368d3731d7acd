package highlight

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound means no highlight has the requested id.
var ErrNotFound = errors.New("highlight not found")

// Store is an in-memory highlight list standing in for the host
// application. It is not safe for concurrent use.
type Store struct {
	items []Highlight
	newID func() string
}

// NewStore returns a store seeded with hs.
func NewStore(hs []Highlight) *Store {
	items := make([]Highlight, len(hs))
	copy(items, hs)
	return &Store{
		items: items,
		newID: func() string { return uuid.New().String() },
	}
}

// List returns a copy of the current highlights in insertion order.
func (s *Store) List() []Highlight {
	out := make([]Highlight, len(s.items))
	copy(out, s.items)
	return out
}

// Create appends a highlight over [startWordID, endWordID] and returns it.
func (s *Store) Create(startWordID, endWordID int) Highlight {
	h := Highlight{ID: s.newID(), StartWordOffset: startWordID, EndWordOffset: endWordID}
	s.items = append(s.items, h)
	return h
}

// Update moves the bounds of an existing highlight.
func (s *Store) Update(id string, startWordID, endWordID int) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].StartWordOffset = startWordID
			s.items[i].EndWordOffset = endWordID
			return nil
		}
	}
	return fmt.Errorf("update %q: %w", id, ErrNotFound)
}

// Delete removes a highlight.
func (s *Store) Delete(id string) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete %q: %w", id, ErrNotFound)
}
