package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	// EventSelectionEnded fires once per completed selection session
	EventSelectionEnded   EventType = "selectable.end"
	EventSelectionChanged EventType = "selectable.change"
	EventLayoutLoaded     EventType = "layout.loaded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionEndedEvent is emitted when the store ends a selection session
type SelectionEndedEvent struct {
	Selected int
	Total    int
}

func (e SelectionEndedEvent) Type() EventType { return EventSelectionEnded }

// SelectionChangedEvent is emitted when store membership changes
type SelectionChangedEvent struct {
	Added   []Pos
	Removed []Pos
	Total   int // selected count after the change
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// LayoutLoadedEvent is emitted once the grid has been built
type LayoutLoadedEvent struct {
	Source string // layout path, empty for a generated grid
	Rows   int
	Cols   int
}

func (e LayoutLoadedEvent) Type() EventType { return EventLayoutLoaded }
