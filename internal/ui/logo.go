package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var logoLines = []string{
	`                 __                     `,
	`   _______  __  / /____  _________ ___  `,
	`  / ___/ |/_/ / __/ _ \/ ___/ __ '__ \ `,
	` / /  _>  <  / /_/  __/ /  / / / / / / `,
	`/_/  /_/|_|  \__/\___/_/  /_/ /_/ /_/  `,
}

// Badge describes where rxterm is running.
type Badge struct {
	Platform string
	Shell    string
}

func (b Badge) String() string {
	parts := make([]string, 0, 2)
	if b.Platform != "" {
		parts = append(parts, b.Platform)
	}
	if b.Shell != "" {
		parts = append(parts, b.Shell)
	}
	return strings.Join(parts, " · ")
}

// LogoFrame renders a single animated frame.
func LogoFrame(frame int) string {
	lines := make([]string, len(logoLines))
	for i, line := range logoLines {
		color := Palette[(frame+i)%len(Palette)]
		lines[i] = lipgloss.NewStyle().Foreground(color).Render(line)
	}
	return strings.Join(lines, "\n")
}

// LogoStatic renders the logo in the primary colour with the badge beneath it.
func LogoStatic(b Badge) string {
	logo := lipgloss.NewStyle().Foreground(Primary).Render(strings.Join(logoLines, "\n"))
	label := b.String()
	if label == "" {
		return logo
	}
	return fmt.Sprintf("%s\n%s", logo, lipgloss.NewStyle().Foreground(Muted).Render("  "+label))
}
