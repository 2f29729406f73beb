package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	colorPrimary = lipgloss.Color("#00BFFF") // Deep sky blue
	colorDanger  = lipgloss.Color("#FF6B6B") // Red for errors
	colorDay     = lipgloss.Color("#FFD93D") // Warm yellow
	colorNight   = lipgloss.Color("#9BB1FF") // Pale blue
	colorSuccess = lipgloss.Color("#6BCF7F") // Green
	colorMuted   = lipgloss.Color("#6C757D") // Gray
	colorBorder  = lipgloss.Color("#4A90E2") // Border blue

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// Tab bar
	tabStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true, true, false, true).
			BorderForeground(colorBorder).
			Foreground(colorMuted).
			Padding(0, 2)

	activeTabStyle = tabStyle.
			BorderForeground(colorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Bold(true)

	// Grid cells
	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true).
			Padding(0, 1)

	headerCellStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			Padding(0, 1)

	dayCellStyle = lipgloss.NewStyle().
			Foreground(colorDay).
			Padding(0, 1)

	nightCellStyle = lipgloss.NewStyle().
			Foreground(colorNight).
			Padding(0, 1)

	gridBorderStyle = lipgloss.NewStyle().
			Foreground(colorBorder)

	// Help text style
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0)

	// Utility styles
	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)
)
