package tui

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the routines UI.
type Theme struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Focused   lipgloss.Style
	Button    lipgloss.Style
	Secondary lipgloss.Style
	Row       RowTheme
	Pane      lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
}

// RowTheme groups styles used by the routine list.
type RowTheme struct {
	Name     lipgloss.Style
	When     lipgloss.Style
	Student  lipgloss.Style
	Selected lipgloss.Style
	Hidden   lipgloss.Style
	Empty    lipgloss.Style
}

// DefaultTheme returns the built-in theme used across the UI.
func DefaultTheme() Theme {
	accent := lipgloss.Color("#7f5af0")
	return Theme{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10),
		Focused: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).Width(10),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(accent).
			Padding(0, 1),
		Secondary: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 1),
		Row: RowTheme{
			Name:     lipgloss.NewStyle().Bold(true),
			When:     lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
			Student:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
			Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Hidden:   lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
			Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		},
		Pane:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}
