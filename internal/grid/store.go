// Package grid owns the live board of a round.
package grid

import (
	"sync"

	"svw.info/tenmatch/internal/domain"
	"svw.info/tenmatch/internal/ports"
)

// Store holds the grid and publishes a copy to its observer after every
// mutation. Mutation and notification happen under one lock.
type Store struct {
	mu       sync.Mutex
	grid     domain.Grid
	gen      ports.Generator
	observer ports.Observer
}

// New creates a store seeded with one generated layout. No notification
// is sent since no observer can be registered yet.
func New(gen ports.Generator) *Store {
	return &Store{grid: gen.Generate(), gen: gen}
}

// SetObserver registers o, replacing any previous observer. nil clears the slot.
func (s *Store) SetObserver(o ports.Observer) {
	s.mu.Lock()
	s.observer = o
	s.mu.Unlock()
}

// Attach registers o and hands it the current grid in the same critical
// section, so no mutation can fall between the two.
func (s *Store) Attach(o ports.Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = o
	s.publish()
}

// Detach empties the slot and returns the observer that held it, if any.
func (s *Store) Detach() ports.Observer {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.observer
	s.observer = nil
	return o
}

// ClearObserver empties the slot only if o still occupies it. o must be of
// a comparable type, such as a pointer.
func (s *Store) ClearObserver(o ports.Observer) {
	s.mu.Lock()
	if s.observer == o {
		s.observer = nil
	}
	s.mu.Unlock()
}

// Generate draws a new layout without touching the live grid.
func (s *Store) Generate() domain.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen.Generate()
}

// Reset replaces the grid with a freshly generated one.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid = s.gen.Generate()
	s.publish()
}

// Load replaces the grid with g.
func (s *Store) Load(g domain.Grid) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid = g
	s.publish()
}

// RemoveCells clears every listed cell that is on the grid and not already
// empty; anything else is skipped. The observer is notified once, even
// when nothing changed. It returns how many cells were cleared.
func (s *Store) RemoveCells(coords []domain.Coord) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.grid
	cleared := 0
	for _, c := range coords {
		if !c.InBounds() || next[c.Row][c.Col] == domain.Empty {
			continue
		}
		next[c.Row][c.Col] = domain.Empty
		cleared++
	}
	s.grid = next
	s.publish()
	return cleared
}

// Snapshot returns a copy of the current grid.
func (s *Store) Snapshot() domain.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid
}

// publish must be called with mu held.
func (s *Store) publish() {
	if s.observer != nil {
		s.observer.OnGridChanged(s.grid)
	}
}
