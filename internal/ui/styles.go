package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#FF0000")
	ColorGreen   = lipgloss.Color("#00FF00")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
	ColorBlack   = lipgloss.Color("#000000")
	ColorMagenta = lipgloss.Color("#FF00FF")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	MovingStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	IdleStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	PeriodNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	// PlaceholderBarStyle fills the bar when no periods are attached.
	PlaceholderBarStyle = lipgloss.NewStyle().
				Background(ColorRed)

	IndicatorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	EventMarkStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	EventReachedMarkStyle = lipgloss.NewStyle().
				Foreground(ColorMagenta).
				Bold(true)

	EventTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorYellow)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)
)
