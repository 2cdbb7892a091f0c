package main

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Unified color palette
var (
	primaryColor        = lipgloss.Color("109")
	accentColor         = lipgloss.Color("171")
	barBackground       = lipgloss.Color("233")
	tabBackground       = lipgloss.Color("233")
	tabActiveBackground = lipgloss.Color("235")
	mutedColor          = lipgloss.Color("239")
	subtleColor         = lipgloss.Color("244")
	warningColor        = lipgloss.Color("179")
	dangerColor         = lipgloss.Color("167")
	folderColor         = lipgloss.Color("117")
	taskColor           = lipgloss.Color("114")
	highlightColor      = lipgloss.Color("171")
	selectedBackground  = lipgloss.Color("237")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			Background(barBackground)

	breadcrumbStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Background(barBackground)

	headerBarStyle = lipgloss.NewStyle().
			Background(barBackground)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Background(tabActiveBackground).
			Bold(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(subtleColor).
				Background(tabBackground).
				Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor)

	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	folderStyle = lipgloss.NewStyle().
			Foreground(folderColor)

	taskStyle = lipgloss.NewStyle().
			Foreground(taskColor)

	selectedStyle = lipgloss.NewStyle().
			Background(selectedBackground).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	dimTextStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("231"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	dangerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dangerColor).
			Padding(1, 2)

	boxTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	dangerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(dangerColor)

	menuKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	menuDescStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	helpBarStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			Background(barBackground)

	noticeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warningColor).
			Background(barBackground)
)

// statusStyle paints a status label in its own color index
func statusStyle(status Status) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(strconv.Itoa(int(status.Color))))
}

// applyColorProfile forces the lipgloss color profile for the configured mode.
// "auto" keeps whatever termenv detects for the terminal.
func applyColorProfile(mode string) {
	switch mode {
	case "none":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "256":
		lipgloss.SetColorProfile(termenv.ANSI256)
	case "truecolor":
		lipgloss.SetColorProfile(termenv.TrueColor)
	default:
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
	}
}
