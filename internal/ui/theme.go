package ui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Theme returns the form theme used by rxterm init.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Form.Base = t.Form.Base.PaddingLeft(1)
	t.Group.Title = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	t.Group.Description = lipgloss.NewStyle().Foreground(Muted)

	t.Focused.Title = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(Muted)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(Accent)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(Accent).SetString(" !")

	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(Secondary).SetString("> ")
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(Secondary)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(Secondary)

	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(Primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(Primary).Background(lipgloss.Color("0"))

	t.Blurred.Title = lipgloss.NewStyle().Foreground(Muted)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(Muted)

	t.Focused.NoteTitle = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	return t
}
