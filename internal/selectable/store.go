package selectable

import (
	"sync"

	"gridsel/internal/domain"
	"gridsel/internal/eventbus"
)

// Store owns the authoritative set of selected items of one grid
type Store struct {
	mu       sync.RWMutex
	grid     *domain.Grid
	order    []domain.Pos // registration order
	selected map[domain.Pos]bool
	version  string
	bus      eventbus.EventBus
}

// New registers every item cell of grid and creates the store
func New(grid *domain.Grid, bus eventbus.EventBus, opts ...Option) *Store {
	s := &Store{
		grid:     grid,
		selected: make(map[domain.Pos]bool),
		version:  Version,
		bus:      bus,
	}
	if grid != nil {
		s.order = grid.Items()
		for _, pos := range s.order {
			s.selected[pos] = false
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Version returns the reported store version
func (s *Store) Version() string {
	return s.version
}

// Anchor returns the grid enclosing the first registered item
func (s *Store) Anchor() *domain.Grid {
	if len(s.order) == 0 {
		return nil
	}
	return s.grid
}

// Get returns the item handle registered at pos
func (s *Store) Get(pos domain.Pos) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sel, ok := s.selected[pos]
	if !ok {
		return Item{}, false
	}
	return Item{Pos: pos, Selected: sel}, true
}

// IsSelected checks if the item at pos is selected
func (s *Store) IsSelected(pos domain.Pos) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected[pos]
}

// Items returns all registered items in registration order
func (s *Store) Items() []domain.Pos {
	items := make([]domain.Pos, len(s.order))
	copy(items, s.order)
	return items
}

// SelectedItems returns the selected items in registration order
func (s *Store) SelectedItems() []domain.Pos {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Pos
	for _, pos := range s.order {
		if s.selected[pos] {
			out = append(out, pos)
		}
	}
	return out
}

// CountSelected returns the number of selected items
func (s *Store) CountSelected() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countLocked()
}

// TotalItems returns the number of registered items
func (s *Store) TotalItems() int {
	return len(s.order)
}

func (s *Store) countLocked() int {
	n := 0
	for _, sel := range s.selected {
		if sel {
			n++
		}
	}
	return n
}

// Select adds items to the selection. Unknown positions are ignored.
func (s *Store) Select(items ...domain.Pos) {
	s.set(items, true)
}

// Deselect removes items from the selection. Unknown positions are ignored.
func (s *Store) Deselect(items ...domain.Pos) {
	s.set(items, false)
}

// Toggle flips the selection of a single item
func (s *Store) Toggle(pos domain.Pos) {
	s.mu.RLock()
	sel, ok := s.selected[pos]
	s.mu.RUnlock()
	if !ok {
		return
	}
	s.set([]domain.Pos{pos}, !sel)
}

// SelectAll selects every registered item
func (s *Store) SelectAll() {
	s.set(s.order, true)
}

// DeselectAll clears the selection
func (s *Store) DeselectAll() {
	s.set(s.order, false)
}

// Invert flips every registered item
func (s *Store) Invert() {
	s.mu.Lock()
	var added, removed []domain.Pos
	for _, pos := range s.order {
		if s.selected[pos] {
			removed = append(removed, pos)
		} else {
			added = append(added, pos)
		}
		s.selected[pos] = !s.selected[pos]
	}
	total := s.countLocked()
	s.mu.Unlock()

	s.publishChange(added, removed, total)
}

func (s *Store) set(items []domain.Pos, value bool) {
	s.mu.Lock()
	var changed []domain.Pos
	for _, pos := range items {
		sel, ok := s.selected[pos]
		if !ok || sel == value {
			continue
		}
		s.selected[pos] = value
		changed = append(changed, pos)
	}
	total := s.countLocked()
	s.mu.Unlock()

	if value {
		s.publishChange(changed, nil, total)
	} else {
		s.publishChange(nil, changed, total)
	}
}

func (s *Store) publishChange(added, removed []domain.Pos, total int) {
	if s.bus == nil || len(added)+len(removed) == 0 {
		return
	}
	s.bus.Publish(eventbus.SelectionChangedEvent{
		Added:   added,
		Removed: removed,
		Total:   total,
	})
}

// End finishes the current selection session and notifies subscribers
func (s *Store) End() {
	if s.bus == nil {
		return
	}
	s.bus.Publish(eventbus.SelectionEndedEvent{
		Selected: s.CountSelected(),
		Total:    s.TotalItems(),
	})
}

// On subscribes handler to a store event. Returns an unsubscribe function.
func (s *Store) On(eventType domain.EventType, handler func(domain.DomainEvent)) func() {
	if s.bus == nil {
		return func() {}
	}
	return s.bus.Subscribe(eventType, handler)
}
