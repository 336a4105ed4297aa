package cli

import "github.com/charmbracelet/lipgloss"

var (
	styleWord       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	styleSuggestion = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	stylePosition   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleRule       = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("111"))
	styleSummary    = lipgloss.NewStyle().Bold(true)
	styleClean      = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)
