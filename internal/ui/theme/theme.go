// Package theme holds the terminal palette and shared lipgloss styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/orbitrest/internal/catalog"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Method colors follow the usual API-explorer convention.
var methodColors = map[catalog.Method]color.Color{
	catalog.MethodGet:    lipgloss.Color("#3B82F6"), // Blue
	catalog.MethodPost:   Success,
	catalog.MethodPut:    Accent,
	catalog.MethodPatch:  lipgloss.Color("#EAB308"), // Amber
	catalog.MethodDelete: Error,
}

// MethodColor returns the badge color of m. Unknown methods are dimmed.
func MethodColor(m catalog.Method) color.Color {
	if c, ok := methodColors[m]; ok {
		return c
	}
	return TextDim
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Code = lipgloss.NewStyle().
		Foreground(Secondary)
)

// Layout
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(0, 1)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Muted = lipgloss.NewStyle().
		Foreground(TextDim)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	Badge = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true).
		Padding(0, 1)
)
