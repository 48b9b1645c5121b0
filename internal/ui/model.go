package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"gridsel/internal/config"
	"gridsel/internal/domain"
	"gridsel/internal/selectable"
	"gridsel/internal/ui/views"
)

// Options configures the UI model
type Options struct {
	Title    string
	Grid     *domain.Grid
	Store    *selectable.Store
	Settings config.UISettings
	Logger   *zap.Logger
	// Warning is shown under the status line, e.g. when group toggles are unavailable
	Warning string
}

// Model represents the UI state
type Model struct {
	title    string
	grid     *domain.Grid
	store    *selectable.Store
	settings config.UISettings
	logger   *zap.Logger
	warning  string

	keys     keyMap
	help     help.Model
	renderer *views.Renderer

	cursor domain.Pos
	status string
	width  int
	height int
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Model{
		title:    opts.Title,
		grid:     opts.Grid,
		store:    opts.Store,
		settings: opts.Settings,
		logger:   logger.Named("ui"),
		warning:  opts.Warning,
		keys:     newKeyMap(),
		help:     help.New(),
		renderer: views.NewRenderer(),
		cursor:   domain.Pos{Row: domain.HeaderRow, Col: 0},
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if pos, ok := views.HitTest(m.grid, m.settings.CellWidth, msg.X, msg.Y); ok {
			m.cursor = pos
			m.click(pos)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.move(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.move(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.move(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.move(0, 1)
	case key.Matches(msg, m.keys.Click):
		m.click(m.cursor)
	case key.Matches(msg, m.keys.SelectAll):
		m.store.SelectAll()
		m.store.End()
	case key.Matches(msg, m.keys.Clear):
		m.store.DeselectAll()
		m.store.End()
	case key.Matches(msg, m.keys.Invert):
		m.store.Invert()
		m.store.End()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) move(dRow, dCol int) {
	if m.grid == nil {
		return
	}
	row := m.cursor.Row + dRow
	col := m.cursor.Col + dCol
	if row < domain.HeaderRow || row >= len(m.grid.Body) {
		row = m.cursor.Row
	}
	if col < 0 || col >= m.grid.Width() {
		col = m.cursor.Col
	}
	m.cursor = domain.Pos{Row: row, Col: col}
}

// click runs the store's own single-item interaction, then dispatches the
// click to grid listeners. Without a listener preventing it, the default
// activation reports the cell in the status line.
func (m *Model) click(pos domain.Pos) {
	if m.grid == nil {
		return
	}
	cell := m.grid.Cell(pos)
	if cell.IsItem() {
		m.store.Toggle(pos)
		m.store.End()
	}

	ev := m.grid.Click(pos)
	if cell != nil && !ev.DefaultPrevented() {
		m.status = fmt.Sprintf("%s %q", pos, cell.Text)
	}
	m.logger.Debug("click",
		zap.Stringer("pos", pos),
		zap.Bool("prevented", ev.DefaultPrevented()))
}

// View implements tea.Model
func (m *Model) View() string {
	return m.renderer.Render(views.ViewState{
		Title:         m.title,
		Grid:          m.grid,
		IsSelected:    m.store.IsSelected,
		Cursor:        m.cursor,
		CellWidth:     m.settings.CellWidth,
		SelectedCount: m.store.CountSelected(),
		TotalItems:    m.store.TotalItems(),
		StatusMessage: m.status,
		Warning:       m.warning,
		ShowLegend:    m.settings.ShowLegend,
		HelpModel:     m.help,
		Keys:          m.keys,
	})
}

// Cursor returns the focused cell
func (m *Model) Cursor() domain.Pos {
	return m.cursor
}

// SelectedTexts returns the text of every selected item in grid order
func (m *Model) SelectedTexts() []string {
	var out []string
	for _, pos := range m.store.SelectedItems() {
		out = append(out, m.grid.Cell(pos).Text)
	}
	return out
}
