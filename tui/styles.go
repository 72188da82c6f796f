package tui

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	DiscStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	ActiveStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	LabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("236"))
	HelpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).PaddingLeft(1)
	PlayerStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("214")).Padding(1, 2)
	LinkStyle    = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("12"))
	StatusStyle  = lipgloss.NewStyle().PaddingLeft(1)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)
