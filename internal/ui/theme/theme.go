package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, loosely after ink and vermilion seals.
var (
	Primary   = lipgloss.Color("#E0564A") // Vermilion
	Secondary = lipgloss.Color("#5EA7A0") // Celadon
	Accent    = lipgloss.Color("#F2B84B") // Yamabuki
	Success   = lipgloss.Color("#7BC47F") // Matcha
	Error     = lipgloss.Color("#F05D6C") // Rose
	Warning   = lipgloss.Color("#E8A33D") // Amber
	Text      = lipgloss.Color("#F4EFE6") // Washi
	TextDim   = lipgloss.Color("#9A948A") // Ash
	BgDark    = lipgloss.Color("#14161B") // Sumi
	BgCard    = lipgloss.Color("#1F232B") // Charcoal
	Border    = lipgloss.Color("#3A3F4A") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	// KanaCard frames the symbol being drilled.
	KanaCard = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Primary).
			Foreground(Text).
			Bold(true).
			Padding(1, 4).
			Align(lipgloss.Center)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Skipped = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	TableHeader = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
)
