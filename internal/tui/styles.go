package tui

import "github.com/charmbracelet/lipgloss"

// styles contains all lipgloss styles used by the TUI.
var styles = struct {
	// Layout styles
	Container lipgloss.Style
	Divider   lipgloss.Style

	// Header styles
	Title   lipgloss.Style
	Source  lipgloss.Style
	Updated lipgloss.Style

	// Counter styles
	CounterLabel lipgloss.Style
	Produced     lipgloss.Style
	Consumed     lipgloss.Style
	Efficiency   lipgloss.Style
	Defective    lipgloss.Style

	// Entity listing styles
	SectionTitle lipgloss.Style
	Entity       lipgloss.Style
	Muted        lipgloss.Style

	// Selector styles
	Selector         lipgloss.Style
	SelectorSelected lipgloss.Style

	// Chart styles
	ChartTitle lipgloss.Style
	ChartLine  lipgloss.Style

	// Log panel styles
	LogLine      lipgloss.Style
	LogRejection lipgloss.Style

	// Footer style
	Footer lipgloss.Style

	// Status colors
	StatusConnecting lipgloss.Style
	StatusRunning    lipgloss.Style
	StatusStopped    lipgloss.Style
}{
	Container: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")),

	Divider: lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")),

	Source: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	Updated: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	CounterLabel: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	Produced: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")),

	Consumed: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("82")),

	Efficiency: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("220")),

	Defective: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("196")),

	SectionTitle: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("177")),

	Entity: lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")),

	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	Selector: lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Padding(0, 1),

	SelectorSelected: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Background(lipgloss.Color("236")).
		Padding(0, 1),

	ChartTitle: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("114")),

	ChartLine: lipgloss.NewStyle().
		Foreground(lipgloss.Color("82")),

	LogLine: lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")),

	LogRejection: lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")),

	Footer: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	StatusConnecting: lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")),

	StatusRunning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("82")),

	StatusStopped: lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")),
}
