package domain

import (
	"errors"
	"fmt"
)

// HeaderRow is the row index used to address header cells
const HeaderRow = -1

var (
	// ErrRaggedGrid is returned when a body row does not match the header width
	ErrRaggedGrid = errors.New("body row width does not match header")
	// ErrUnknownMarker is returned when a marker string is not row, column or all
	ErrUnknownMarker = errors.New("unknown selectable marker")
)

// Marker is the selection-group role of a cell
type Marker int

const (
	MarkerNone Marker = iota
	MarkerRow
	MarkerColumn
	MarkerAll
)

// ParseMarker converts the attribute value used in layout files into a Marker.
// An empty string means the cell is not selectable as a group.
func ParseMarker(s string) (Marker, error) {
	switch s {
	case "":
		return MarkerNone, nil
	case "row":
		return MarkerRow, nil
	case "column":
		return MarkerColumn, nil
	case "all":
		return MarkerAll, nil
	default:
		return MarkerNone, fmt.Errorf("%w: %q", ErrUnknownMarker, s)
	}
}

func (m Marker) String() string {
	switch m {
	case MarkerRow:
		return "row"
	case MarkerColumn:
		return "column"
	case MarkerAll:
		return "all"
	default:
		return ""
	}
}

// Pos addresses a cell. Row is HeaderRow for header cells.
type Pos struct {
	Row int
	Col int
}

// IsHeader reports whether the position is in the header row
func (p Pos) IsHeader() bool {
	return p.Row == HeaderRow
}

func (p Pos) String() string {
	if p.IsHeader() {
		return fmt.Sprintf("h:%d", p.Col)
	}
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Cell is a single header or body cell
type Cell struct {
	Pos    Pos
	Text   string
	Marker Marker
	// Selected is the derived aggregate indicator for marker cells.
	// Item selection itself lives in the selection store.
	Selected bool
}

// IsItem reports whether the cell is a selectable item (an unmarked body cell)
func (c *Cell) IsItem() bool {
	return c != nil && !c.Pos.IsHeader() && c.Marker == MarkerNone
}

// CellSpec describes a cell before the grid is built
type CellSpec struct {
	Text   string
	Marker Marker
}

// ClickEvent is delivered to grid click listeners
type ClickEvent struct {
	Pos    Pos
	Target *Cell // nil when the click missed every cell

	defaultPrevented bool
}

// PreventDefault suppresses the default activation of the clicked cell
func (e *ClickEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault
func (e *ClickEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// ClickListener handles clicks within a grid
type ClickListener func(*ClickEvent)

// Grid is a header row followed by body rows of equal width
type Grid struct {
	Header []*Cell
	Body   [][]*Cell

	listeners []ClickListener
}

// NewGrid builds a grid, assigning positions to every cell
func NewGrid(header []CellSpec, body [][]CellSpec) (*Grid, error) {
	g := &Grid{
		Header: make([]*Cell, len(header)),
		Body:   make([][]*Cell, len(body)),
	}
	for c, spec := range header {
		g.Header[c] = &Cell{Pos: Pos{Row: HeaderRow, Col: c}, Text: spec.Text, Marker: spec.Marker}
	}
	for r, specs := range body {
		if len(specs) != len(header) {
			return nil, fmt.Errorf("row %d has %d cells, header has %d: %w", r, len(specs), len(header), ErrRaggedGrid)
		}
		row := make([]*Cell, len(specs))
		for c, spec := range specs {
			row[c] = &Cell{Pos: Pos{Row: r, Col: c}, Text: spec.Text, Marker: spec.Marker}
		}
		g.Body[r] = row
	}
	return g, nil
}

// Width returns the number of columns
func (g *Grid) Width() int {
	return len(g.Header)
}

// Cell returns the cell at pos, or nil if pos is outside the grid
func (g *Grid) Cell(pos Pos) *Cell {
	if pos.Col < 0 {
		return nil
	}
	if pos.IsHeader() {
		if pos.Col >= len(g.Header) {
			return nil
		}
		return g.Header[pos.Col]
	}
	if pos.Row < 0 || pos.Row >= len(g.Body) || pos.Col >= len(g.Body[pos.Row]) {
		return nil
	}
	return g.Body[pos.Row][pos.Col]
}

// Items returns the positions of all item cells in row-major order
func (g *Grid) Items() []Pos {
	var items []Pos
	for _, row := range g.Body {
		for _, cell := range row {
			if cell.IsItem() {
				items = append(items, cell.Pos)
			}
		}
	}
	return items
}

// CellsWithMarker returns the cells carrying marker m, header first
func (g *Grid) CellsWithMarker(m Marker) []*Cell {
	var cells []*Cell
	for _, cell := range g.Header {
		if cell.Marker == m {
			cells = append(cells, cell)
		}
	}
	for _, row := range g.Body {
		for _, cell := range row {
			if cell.Marker == m {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

// AddClickListener registers fn for every click within the grid
func (g *Grid) AddClickListener(fn ClickListener) {
	g.listeners = append(g.listeners, fn)
}

// Click dispatches a click at pos to all listeners in registration order
// and returns the event so callers can check DefaultPrevented.
func (g *Grid) Click(pos Pos) *ClickEvent {
	ev := &ClickEvent{Pos: pos, Target: g.Cell(pos)}
	for _, fn := range g.listeners {
		fn(ev)
	}
	return ev
}
