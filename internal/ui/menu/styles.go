package menu

import "github.com/charmbracelet/lipgloss"

// Styles contains the style definitions for the menu
type Styles struct {
	Title     lipgloss.Style
	Prompt    lipgloss.Style
	Cursor    lipgloss.Style
	Counter   lipgloss.Style
	Pointer   lipgloss.Style
	Row       lipgloss.Style
	Selected  lipgloss.Style
	Highlight lipgloss.Style
	Marker    lipgloss.Style
	Detail    lipgloss.Style
	Empty     lipgloss.Style
	Scroll    lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles creates a Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Cursor:    lipgloss.NewStyle().Reverse(true),
		Counter:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Pointer:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Row:       lipgloss.NewStyle(),
		Selected:  lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Marker:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Detail:    lipgloss.NewStyle().Faint(true),
		Empty:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Scroll:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Help:      lipgloss.NewStyle().Faint(true),
	}
}
