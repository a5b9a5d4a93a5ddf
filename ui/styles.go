package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5A56E0")).
			Padding(0, 1)

	speakingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	idleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	flashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ECFD65")).
			Italic(true)

	docStyle = lipgloss.NewStyle().
			Padding(1, 2)
)
