// Package table adds whole-row, whole-column and select-all toggling to a
// selection store whose items are the body cells of a grid.
//
// Header cells marked "column", body cells marked "row" and any cell marked
// "all" act as group toggles. After every toggle, and whenever the store ends
// a selection session, the Selected flag of each marker cell is recomputed to
// show whether its group is fully selected.
package table

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"gridsel/internal/domain"
)

// MinHostVersion is the oldest store version the reconciler works with
const MinHostVersion = "0.14.0"

// Host is the selection store the reconciler drives
type Host interface {
	Version() string
	// Anchor returns the grid holding the store's first item, or nil
	Anchor() *domain.Grid
	IsSelected(pos domain.Pos) bool
	Items() []domain.Pos
	SelectedItems() []domain.Pos
	Select(items ...domain.Pos)
	Deselect(items ...domain.Pos)
	On(eventType domain.EventType, handler func(domain.DomainEvent)) func()
}

// Reconciler translates marker clicks into store calls and keeps the
// marker indicators in sync with store membership.
type Reconciler struct {
	host   Host
	grid   *domain.Grid
	logger *zap.Logger
}

// Attach wires a reconciler to grid, or to the host's anchor grid when grid
// is nil. It returns nil when the host is too old or there is no usable grid.
func Attach(host Host, grid *domain.Grid, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("table")

	if !Compatible(host.Version()) {
		logger.Warn("table selection requires a newer selection store",
			zap.String("version", host.Version()),
			zap.String("required", MinHostVersion))
		return nil
	}

	if grid == nil {
		grid = host.Anchor()
	}
	if grid == nil || len(grid.Header) == 0 || len(grid.Body) == 0 {
		return nil
	}

	r := &Reconciler{host: host, grid: grid, logger: logger}
	grid.AddClickListener(r.HandleClick)
	host.On(domain.EventSelectionEnded, func(domain.DomainEvent) { r.Recompute() })
	r.Recompute()

	logger.Debug("attached",
		zap.Int("columns", grid.Width()),
		zap.Int("rows", len(grid.Body)))
	return r
}

// Compatible reports whether a dotted host version meets MinHostVersion
func Compatible(version string) bool {
	v := "v" + strings.TrimPrefix(strings.TrimSpace(version), "v")
	if !semver.IsValid(v) {
		return false
	}
	return semver.Compare(v, "v"+MinHostVersion) >= 0
}

// Grid returns the grid the reconciler is attached to
func (r *Reconciler) Grid() *domain.Grid {
	return r.grid
}

// HandleClick toggles the group of the clicked marker cell
func (r *Reconciler) HandleClick(ev *domain.ClickEvent) {
	cell := ev.Target
	if cell == nil {
		return
	}
	ev.PreventDefault()

	affected, ok := r.group(cell)
	if !ok {
		return
	}

	if cell.Selected {
		r.host.Deselect(affected...)
		cell.Selected = false
	} else {
		r.host.Select(affected...)
		cell.Selected = true
	}

	r.logger.Debug("group toggled",
		zap.Stringer("cell", cell.Pos),
		zap.Stringer("marker", cell.Marker),
		zap.Int("items", len(affected)),
		zap.Bool("selected", cell.Selected))

	r.Recompute()
	if cell.Marker == domain.MarkerAll {
		r.propagateAll(cell.Selected)
	}
}

// group resolves the items affected by clicking a marker cell
func (r *Reconciler) group(cell *domain.Cell) ([]domain.Pos, bool) {
	switch {
	case cell.Marker == domain.MarkerAll:
		return r.host.Items(), true
	case cell.Marker == domain.MarkerRow && !cell.Pos.IsHeader():
		return r.rowItems(cell.Pos.Row), true
	case cell.Marker == domain.MarkerColumn && cell.Pos.IsHeader():
		return r.columnItems(cell.Pos.Col), true
	default:
		return nil, false
	}
}

func (r *Reconciler) rowItems(row int) []domain.Pos {
	var items []domain.Pos
	for _, cell := range r.grid.Body[row] {
		if cell.IsItem() {
			items = append(items, cell.Pos)
		}
	}
	return items
}

func (r *Reconciler) columnItems(col int) []domain.Pos {
	var items []domain.Pos
	for _, row := range r.grid.Body {
		if col < len(row) && row[col].IsItem() {
			items = append(items, row[col].Pos)
		}
	}
	return items
}

// Recompute refreshes the Selected flag of every marker cell from the store.
// It only writes marker flags and may be called any number of times.
func (r *Reconciler) Recompute() {
	for _, cell := range r.grid.CellsWithMarker(domain.MarkerColumn) {
		if cell.Pos.IsHeader() {
			cell.Selected = r.allSelected(r.columnItems(cell.Pos.Col))
		}
	}
	for _, cell := range r.grid.CellsWithMarker(domain.MarkerRow) {
		if !cell.Pos.IsHeader() {
			cell.Selected = r.allSelected(r.rowItems(cell.Pos.Row))
		}
	}

	total := len(r.host.Items())
	full := total > 0 && len(r.host.SelectedItems()) == total
	for _, cell := range r.grid.CellsWithMarker(domain.MarkerAll) {
		cell.Selected = full
	}
}

// allSelected reports whether every item is selected. Empty groups are not.
func (r *Reconciler) allSelected(items []domain.Pos) bool {
	if len(items) == 0 {
		return false
	}
	for _, pos := range items {
		if !r.host.IsSelected(pos) {
			return false
		}
	}
	return true
}

func (r *Reconciler) propagateAll(selected bool) {
	for _, m := range []domain.Marker{domain.MarkerAll, domain.MarkerRow, domain.MarkerColumn} {
		for _, cell := range r.grid.CellsWithMarker(m) {
			cell.Selected = selected
		}
	}
}
