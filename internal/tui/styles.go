// Package tui provides the interactive search palette for the terminal.
// It uses the Charm Bubble Tea framework.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor   = lipgloss.Color("#7C3AED") // Violet
	secondaryColor = lipgloss.Color("#10B981") // Emerald
	accentColor    = lipgloss.Color("#F59E0B") // Amber

	fgColor     = lipgloss.Color("#CDD6F4")
	mutedColor  = lipgloss.Color("#6C7086")
	borderColor = lipgloss.Color("#45475A")
	selectedBg  = lipgloss.Color("#313244")
)

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(fgColor).
	Background(primaryColor).
	Padding(0, 2).
	MarginBottom(1)

var tagStyle = lipgloss.NewStyle().
	Foreground(primaryColor).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(primaryColor).
	Padding(0, 1)

var promptStyle = lipgloss.NewStyle().
	Foreground(secondaryColor).
	Bold(true)

var tabStyle = lipgloss.NewStyle().
	Foreground(mutedColor).
	Padding(0, 1)

var activeTabStyle = lipgloss.NewStyle().
	Foreground(secondaryColor).
	Bold(true).
	Underline(true).
	Padding(0, 1)

var itemStyle = lipgloss.NewStyle().
	Foreground(fgColor).
	PaddingLeft(2)

var selectedItemStyle = lipgloss.NewStyle().
	Foreground(secondaryColor).
	Bold(true).
	Background(selectedBg).
	PaddingLeft(1)

var categoryStyle = lipgloss.NewStyle().
	Foreground(accentColor)

var urlStyle = lipgloss.NewStyle().
	Foreground(mutedColor)

var sectionStyle = lipgloss.NewStyle().
	Foreground(mutedColor).
	Bold(true).
	MarginTop(1)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(borderColor).
	Padding(0, 1)

var helpStyle = lipgloss.NewStyle().
	Foreground(mutedColor).
	MarginTop(1)

var statusStyle = lipgloss.NewStyle().
	Foreground(accentColor)
