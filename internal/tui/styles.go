package tui

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	warnFg    = lipgloss.Color("#FFA500")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	modeStyle  = lipgloss.NewStyle().Foreground(warnFg)
)

// Overlay colours, in pixel space.
var (
	edgeColor   = color.RGBA{R: 0x7C, G: 0x3A, B: 0xED, A: 0xFF}
	fillColor   = color.NRGBA{R: 0x7C, G: 0x3A, B: 0xED, A: 0x50}
	bandColor   = color.RGBA{R: 0xA7, G: 0x8B, B: 0xFA, A: 0xFF}
	vertexColor = color.RGBA{R: 0xFF, G: 0xA5, B: 0x00, A: 0xFF}
	firstColor  = color.RGBA{R: 0xE6, G: 0xE6, B: 0xE6, A: 0xFF}
)
