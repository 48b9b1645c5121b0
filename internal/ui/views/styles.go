package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
	Warning     lipgloss.Style
	Header      lipgloss.Style
	Marker      lipgloss.Style
	MarkerFull  lipgloss.Style
	Item        lipgloss.Style
	SelectionBg lipgloss.Style
	Cursor      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Help:        lipgloss.NewStyle().Faint(true),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Marker:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MarkerFull:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true), // green
		Item:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("226")),
		Cursor:      lipgloss.NewStyle().Reverse(true),
	}
}
