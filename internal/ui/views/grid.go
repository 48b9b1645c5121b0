package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gridsel/internal/domain"
)

// GridTop is the screen line of the header row. The title and one blank
// line sit above it.
const GridTop = 2

// Indicator glyphs for marker cells
const (
	IndicatorFull  = "■"
	IndicatorEmpty = "□"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Title         string
	Grid          *domain.Grid
	IsSelected    func(domain.Pos) bool
	Cursor        domain.Pos
	CellWidth     int
	SelectedCount int
	TotalItems    int
	StatusMessage string
	Warning       string
	ShowLegend    bool
	HelpModel     help.Model
	Keys          help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	var b strings.Builder

	title := state.Title
	if title == "" {
		title = "gridsel"
	}
	b.WriteString(r.styles.Title.Render(title))
	b.WriteString("\n\n")

	if state.Grid != nil {
		b.WriteString(r.renderRow(state, state.Grid.Header))
		b.WriteString("\n")
		for _, row := range state.Grid.Body {
			b.WriteString(r.renderRow(state, row))
			b.WriteString("\n")
		}
	}

	status := fmt.Sprintf("%d/%d selected", state.SelectedCount, state.TotalItems)
	if state.StatusMessage != "" {
		status += "  " + state.StatusMessage
	}
	b.WriteString(r.styles.Status.Render(status))
	b.WriteString("\n")

	if state.Warning != "" {
		b.WriteString(r.styles.Warning.Render(state.Warning))
		b.WriteString("\n")
	}

	if state.ShowLegend {
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("%s group fully selected  %s not fully selected", IndicatorFull, IndicatorEmpty)))
		b.WriteString("\n")
	}

	if state.Keys != nil {
		b.WriteString(r.styles.Help.Render(state.HelpModel.View(state.Keys)))
	}

	return b.String()
}

func (r *Renderer) renderRow(state ViewState, cells []*domain.Cell) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = r.renderCell(state, cell)
	}
	return strings.Join(parts, " ")
}

func (r *Renderer) renderCell(state ViewState, cell *domain.Cell) string {
	w := state.CellWidth

	var text string
	var style lipgloss.Style
	switch {
	case cell.Marker != domain.MarkerNone:
		glyph := IndicatorEmpty
		style = r.styles.Marker
		if cell.Selected {
			glyph = IndicatorFull
			style = r.styles.MarkerFull
		}
		text = glyph + " " + cell.Text
	case cell.Pos.IsHeader():
		text = cell.Text
		style = r.styles.Header
	default:
		text = cell.Text
		style = r.styles.Item
		if state.IsSelected != nil && state.IsSelected(cell.Pos) {
			style = r.styles.SelectionBg
		}
	}

	if cell.Pos == state.Cursor {
		style = style.Inherit(r.styles.Cursor)
	}

	text = ansi.Truncate(text, w, "…")
	return style.Width(w).MaxWidth(w).Render(text)
}

// HitTest maps screen coordinates to a cell position. The second return
// value is false when the coordinates fall outside the grid or between cells.
func HitTest(grid *domain.Grid, cellWidth, x, y int) (domain.Pos, bool) {
	if grid == nil || x < 0 || y < GridTop {
		return domain.Pos{}, false
	}
	stride := cellWidth + 1
	col := x / stride
	if x%stride == cellWidth {
		return domain.Pos{}, false
	}
	pos := domain.Pos{Row: y - GridTop - 1, Col: col}
	if grid.Cell(pos) == nil {
		return domain.Pos{}, false
	}
	return pos, true
}
