package ui

import "github.com/charmbracelet/lipgloss"

const (
	colorGreen  = "#4ADE80"
	colorLime   = "#A3E635"
	colorTeal   = "#2DD4BF"
	colorAmber  = "#FBBF24"
	colorOrange = "#FB923C"
	colorMuted  = "#94A3B8"
)

var (
	Primary   = lipgloss.Color(colorGreen)
	Secondary = lipgloss.Color(colorTeal)
	Accent    = lipgloss.Color(colorAmber)
	Muted     = lipgloss.Color(colorMuted)
	Palette   = []lipgloss.Color{Primary, lipgloss.Color(colorLime), Secondary, Accent, lipgloss.Color(colorOrange)}
)
