package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"gridsel/internal/domain"
)

// CellLayout is one cell in a layout file
type CellLayout struct {
	Text   string `toml:"text"`
	Marker string `toml:"marker,omitempty"`
}

// Layout is the on-disk description of a grid
type Layout struct {
	Title  string         `toml:"title,omitempty"`
	Header []CellLayout   `toml:"header"`
	Rows   [][]CellLayout `toml:"rows"`
}

// LoadLayout reads a layout file. Unknown keys are rejected.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}
	return ParseLayout(data)
}

// ParseLayout decodes a layout document
func ParseLayout(data []byte) (*Layout, error) {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var l Layout
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	return &l, nil
}

// Marshal encodes the layout back to TOML
func (l *Layout) Marshal() ([]byte, error) {
	return toml.Marshal(l)
}

// Grid builds the domain grid described by the layout
func (l *Layout) Grid() (*domain.Grid, error) {
	header, err := cellSpecs(l.Header)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	body := make([][]domain.CellSpec, len(l.Rows))
	for i, row := range l.Rows {
		specs, err := cellSpecs(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		body[i] = specs
	}
	return domain.NewGrid(header, body)
}

func cellSpecs(cells []CellLayout) ([]domain.CellSpec, error) {
	specs := make([]domain.CellSpec, len(cells))
	for i, c := range cells {
		m, err := domain.ParseMarker(c.Marker)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		specs[i] = domain.CellSpec{Text: c.Text, Marker: m}
	}
	return specs, nil
}

// DefaultLayout generates a rows x cols grid with an all-marker corner,
// lettered column markers and numbered row markers.
func DefaultLayout(rows, cols int) *Layout {
	l := &Layout{Title: "gridsel"}
	l.Header = append(l.Header, CellLayout{Text: "*", Marker: "all"})
	for c := 0; c < cols; c++ {
		l.Header = append(l.Header, CellLayout{Text: columnName(c), Marker: "column"})
	}
	for r := 0; r < rows; r++ {
		row := []CellLayout{{Text: strconv.Itoa(r + 1), Marker: "row"}}
		for c := 0; c < cols; c++ {
			row = append(row, CellLayout{Text: columnName(c) + strconv.Itoa(r+1)})
		}
		l.Rows = append(l.Rows, row)
	}
	return l
}

// columnName returns spreadsheet-style names: A..Z, AA, AB, ...
func columnName(i int) string {
	name := ""
	for i >= 0 {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
	}
	return name
}
