package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridsel/internal/config"
	"gridsel/internal/domain"
	"gridsel/internal/eventbus"
	"gridsel/internal/selectable"
	"gridsel/internal/table"
	"gridsel/internal/ui/views"
)

func newTestModel(t *testing.T, attach bool) *Model {
	t.Helper()
	g, err := config.DefaultLayout(2, 2).Grid()
	require.NoError(t, err)

	store := selectable.New(g, eventbus.New(nil))
	if attach {
		require.NotNil(t, table.Attach(store, g, nil))
	}
	return NewModel(Options{
		Grid:     g,
		Store:    store,
		Settings: config.UISettings{CellWidth: 6},
	})
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(keyMsg(k))
	}
}

func TestCursorStaysInsideGrid(t *testing.T) {
	m := newTestModel(t, true)

	press(m, "up", "h")
	assert.Equal(t, domain.Pos{Row: domain.HeaderRow, Col: 0}, m.Cursor())

	press(m, "down", "down", "down", "down", "right", "right", "right", "right")
	assert.Equal(t, domain.Pos{Row: 1, Col: 2}, m.Cursor())
}

func TestSpaceOnItemTogglesIt(t *testing.T) {
	m := newTestModel(t, true)

	press(m, "down", "right", " ")
	assert.Equal(t, []string{"A1"}, m.SelectedTexts())

	press(m, " ")
	assert.Empty(t, m.SelectedTexts())
}

func TestSpaceOnColumnMarkerTogglesColumn(t *testing.T) {
	m := newTestModel(t, true)

	press(m, "right", "right", " ")
	assert.Equal(t, []string{"B1", "B2"}, m.SelectedTexts())
	assert.True(t, m.grid.Header[2].Selected)
	assert.Empty(t, m.status, "group click prevents default activation")
}

func TestSpaceOnRowMarkerTogglesRow(t *testing.T) {
	m := newTestModel(t, true)

	press(m, "down", "down", " ")
	assert.Equal(t, []string{"A2", "B2"}, m.SelectedTexts())
	assert.True(t, m.grid.Body[1][0].Selected)
}

func TestStoreShortcutsRecomputeIndicators(t *testing.T) {
	m := newTestModel(t, true)

	press(m, "a")
	assert.Len(t, m.SelectedTexts(), 4)
	assert.True(t, m.grid.Header[0].Selected)

	press(m, "i")
	assert.Empty(t, m.SelectedTexts())
	assert.False(t, m.grid.Header[0].Selected)

	press(m, "a", "A")
	assert.Empty(t, m.SelectedTexts())
	assert.False(t, m.grid.Header[1].Selected)
}

func TestWithoutReconcilerMarkersAreInert(t *testing.T) {
	m := newTestModel(t, false)

	press(m, "right", " ")
	assert.Empty(t, m.SelectedTexts())
	assert.Equal(t, `h:1 "A"`, m.status, "default activation runs")
}

func TestMouseClick(t *testing.T) {
	m := newTestModel(t, true)

	// header cell of column A: stride is width+1
	m.Update(tea.MouseMsg{X: 7, Y: views.GridTop, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, []string{"A1", "A2"}, m.SelectedTexts())

	m.Update(tea.MouseMsg{X: 14, Y: views.GridTop + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	assert.Len(t, m.SelectedTexts(), 2, "release is ignored")

	m.Update(tea.MouseMsg{X: 14, Y: views.GridTop + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, []string{"A1", "B1", "A2"}, m.SelectedTexts())
	assert.Equal(t, domain.Pos{Row: 0, Col: 2}, m.Cursor())
}

func TestQuitAndView(t *testing.T) {
	m := newTestModel(t, true)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	out := ansi.Strip(m.View())
	assert.Contains(t, out, "0/4 selected")
	assert.Contains(t, out, "A1")
}
