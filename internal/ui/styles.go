package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	colorPrimary   = lipgloss.Color("39")  // blue
	colorSecondary = lipgloss.Color("245") // gray
	colorHighlight = lipgloss.Color("212") // pink/magenta
	colorWarning   = lipgloss.Color("214") // orange
	colorMuted     = lipgloss.Color("240") // dark gray
	colorDanger    = lipgloss.Color("196") // red

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)

	pathStyle = lipgloss.NewStyle().Foreground(colorSecondary)

	dirStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)

	symlinkStyle = lipgloss.NewStyle().Foreground(colorHighlight)

	fileStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))

	markedStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(colorPrimary)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorMuted)

	statusStyle = lipgloss.NewStyle().Foreground(colorSecondary)

	helpStyle = lipgloss.NewStyle().Foreground(colorMuted)

	dangerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorDanger)

	modalBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorWarning).
				Padding(0, 1)

	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Underline(true)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

func formatCount(n int64) string { return humanize.Comma(n) }
