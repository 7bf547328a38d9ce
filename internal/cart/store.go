package cart

import (
	"slices"
	"sync"

	"github.com/angelmondragon/cardfinderz/internal/cards"
)

// Line is one distinct card in the cart.
type Line struct {
	Card     cards.Card `json:"card"`
	Quantity int        `json:"quantity"`
}

// Store holds at most one line per card id, in first-add order.
type Store struct {
	mu    sync.RWMutex
	lines []Line
}

func NewStore() *Store {
	return &Store{lines: []Line{}}
}

// Add appends a new line with quantity 1, or bumps the quantity of the line
// already holding this card id. Metadata of an existing line is kept.
func (s *Store) Add(card cards.Card) Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(card.ID); i >= 0 {
		s.lines[i].Quantity++
		return s.lines[i]
	}
	line := Line{Card: card, Quantity: 1}
	s.lines = append(s.lines, line)
	return line
}

// SetQuantity sets the quantity of an existing line, clamped to at least 1.
// It reports false when no line holds id.
func (s *Store) SetQuantity(id cards.ID, quantity int) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Line{}, false
	}
	s.lines[i].Quantity = max(quantity, 1)
	return s.lines[i], true
}

// Remove deletes the line for id if present.
func (s *Store) Remove(id cards.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.lines = slices.Delete(s.lines, i, i+1)
	return true
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = []Line{}
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lines)
}

// Get returns the line for id.
func (s *Store) Get(id cards.ID) (Line, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.lines[i], true
	}
	return Line{}, false
}

func (s *Store) indexOf(id cards.ID) int {
	return slices.IndexFunc(s.lines, func(l Line) bool { return l.Card.ID == id })
}
