package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridsel/internal/domain"
)

func TestLoadSettingsDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, "json", s.Log.Format)
	assert.Equal(t, "gridsel.log", s.Log.File)
	assert.Empty(t, s.Host.Version)
	assert.True(t, s.UI.ShowLegend)
	assert.Equal(t, 8, s.UI.CellWidth)
	assert.False(t, s.UI.PrintOnExit)
}

func TestLoadSettingsFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[log]
level = "debug"
format = "console"

[host]
version = "0.13.2"

[ui]
cell_width = 1
print_on_exit = true
`), 0644))
	t.Setenv("GRIDSEL_LOG_LEVEL", "warn")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", s.Log.Level, "env wins over file")
	assert.Equal(t, "console", s.Log.Format)
	assert.Equal(t, "0.13.2", s.Host.Version)
	assert.Equal(t, 3, s.UI.CellWidth, "clamped to minimum")
	assert.True(t, s.UI.PrintOnExit)
}

func TestLoadSettingsExplicitMissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

const scenarioLayout = `
title = "week"
header = [
  { text = "*", marker = "all" },
  { text = "Mon", marker = "column" },
  { text = "Tue", marker = "column" },
]
rows = [
  [ { text = "09:00", marker = "row" }, { text = "a" }, { text = "b" } ],
  [ { text = "10:00", marker = "row" }, { text = "c" }, { text = "d" } ],
]
`

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout([]byte(scenarioLayout))
	require.NoError(t, err)
	assert.Equal(t, "week", l.Title)

	g, err := l.Grid()
	require.NoError(t, err)
	assert.Equal(t, 3, g.Width())
	require.Len(t, g.Body, 2)
	assert.Equal(t, domain.MarkerAll, g.Header[0].Marker)
	assert.Equal(t, domain.MarkerColumn, g.Header[2].Marker)
	assert.Equal(t, domain.MarkerRow, g.Body[1][0].Marker)
	assert.Equal(t, "d", g.Body[1][2].Text)
	assert.Len(t, g.Items(), 4)
}

func TestLayoutErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		parse   bool
		wantErr error
	}{
		{
			name:  "unknown field",
			doc:   `colour = "red"`,
			parse: true,
		},
		{
			name:    "unknown marker",
			doc:     `header = [{ text = "x", marker = "diagonal" }]`,
			wantErr: domain.ErrUnknownMarker,
		},
		{
			name: "ragged row",
			doc: `header = [{ text = "a" }, { text = "b" }]
rows = [[{ text = "1" }]]`,
			wantErr: domain.ErrRaggedGrid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := ParseLayout([]byte(tt.doc))
			if tt.parse {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, err = l.Grid()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDefaultLayoutRoundTrip(t *testing.T) {
	l := DefaultLayout(3, 28)

	data, err := l.Marshal()
	require.NoError(t, err)
	back, err := ParseLayout(data)
	require.NoError(t, err)

	g, err := back.Grid()
	require.NoError(t, err)
	assert.Equal(t, 29, g.Width())
	assert.Len(t, g.Body, 3)
	assert.Equal(t, "AB", g.Header[28].Text)
	assert.Equal(t, "C2", g.Body[1][3].Text)
	assert.Len(t, g.CellsWithMarker(domain.MarkerRow), 3)
}

func TestLoadLayoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.toml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioLayout), 0644))

	l, err := LoadLayout(path)
	require.NoError(t, err)
	assert.Len(t, l.Rows, 2)

	_, err = LoadLayout(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
