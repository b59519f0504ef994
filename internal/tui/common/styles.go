package common

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("#2563EB") // Parking blue
	ColorSecondary = lipgloss.Color("#7C3AED") // Violet
	ColorAccent    = lipgloss.Color("#F59E0B") // Amber, campaign banner

	// Status colors
	ColorSuccess = lipgloss.Color("#22C55E") // Available green
	ColorWarning = lipgloss.Color("#FFD700") // Gold
	ColorError   = lipgloss.Color("#EF4444") // Taken red

	// Neutral colors
	ColorSubtle     = lipgloss.Color("#666666") // Gray
	ColorMuted      = lipgloss.Color("#888888") // Light gray
	ColorBorder     = lipgloss.Color("#444444") // Dark gray
	ColorForeground = lipgloss.Color("#FFFFFF") // White
)

// Base styles
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginBottom(1)

	// Text styles
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	MutedTextStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	SuccessTextStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)

	PrimaryTextStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary)

	// Selection styles
	SelectedStyle = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(ColorForeground).
			Bold(true).
			Padding(0, 1)

	// Input styles
	InputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	// Button styles
	ButtonStyle = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(ColorForeground).
			Padding(0, 2).
			MarginTop(1)

	DisabledButtonStyle = lipgloss.NewStyle().
				Background(ColorBorder).
				Foreground(ColorMuted).
				Padding(0, 2).
				MarginTop(1)

	// Container styles
	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	FocusedBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)

	// Action card styles for the bottom sheet grid
	CardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			Width(30)

	CardSelectedStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1).
				Width(30).
				Bold(true)

	// Map chrome
	BannerStyle = lipgloss.NewStyle().
			Background(ColorAccent).
			Foreground(lipgloss.Color("#1a1a1a")).
			Padding(0, 1).
			Bold(true)

	// Chrome buttons stay a single row so the control bar composes by
	// string concatenation.
	ChromeButtonStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#333333")).
				Foreground(ColorForeground).
				Padding(0, 1)

	NoticeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(ColorForeground).
			Padding(0, 1)

	// Panel
	PanelHandleStyle = lipgloss.NewStyle().
				Foreground(ColorBorder).
				Bold(true)

	PanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorBorder)

	// Availability badges
	AvailableBadge = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	TakenBadge = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// Help styles
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	HelpSepStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)
)

// Logo returns the ParkSpot ASCII art logo
func Logo() string {
	logo := `
 ____            _     ____              _
|  _ \ __ _ _ __| | __/ ___| _ __   ___ | |_
| |_) / _` + "`" + ` | '__| |/ /\___ \| '_ \ / _ \| __|
|  __/ (_| | |  |   <  ___) | |_) | (_) | |_
|_|   \__,_|_|  |_|\_\|____/| .__/ \___/ \__|
                            |_|
`
	return lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Render(logo)
}

// FormatHelp formats a help line with key and description
func FormatHelp(key, desc string) string {
	return HelpKeyStyle.Render(key) +
		HelpSepStyle.Render(" ") +
		HelpDescStyle.Render(desc)
}
