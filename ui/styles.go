package ui

import "github.com/charmbracelet/lipgloss"

var (
	fuchsia = lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	green   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	red     = lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"}
	subtle  = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}

	appNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(fuchsia).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(fuchsia).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(fuchsia)

	subtleStyle = lipgloss.NewStyle().
			Foreground(subtle)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(green)

	errorTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(red).
			Padding(0, 1)
)
