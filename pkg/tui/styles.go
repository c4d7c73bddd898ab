package tui

import "github.com/charmbracelet/lipgloss"

// color palette
var (
	primaryColor  = lipgloss.Color("#7C3AED")
	negativeColor = lipgloss.Color("#EF4444")
	mutedColor    = lipgloss.Color("#6B7280")
	borderColor   = lipgloss.Color("#374151")
	focusColor    = lipgloss.Color("#7C3AED")
	textColor     = lipgloss.Color("#F9FAFB")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	focusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(focusColor).
				Padding(0, 1)

	errorStyle  = lipgloss.NewStyle().Foreground(negativeColor).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	cursorStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)

	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(textColor).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(textColor).Background(primaryColor)
)
