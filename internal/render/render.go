// Package render writes pipeline output to a terminal with lipgloss styles.
package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/suryansh-23/rxterm/internal/pipeline"
	"github.com/suryansh-23/rxterm/internal/richtext"
)

// Renderer converts rich text runs into styled terminal output.
type Renderer struct {
	// LineBreak is written for each new-line marker. Use "\r\n" when the
	// terminal is in raw mode.
	LineBreak string

	w      io.Writer
	out    *termenv.Output
	lg     *lipgloss.Renderer
	styles map[richtext.Attributes]lipgloss.Style
}

// New returns a Renderer writing to w with the given colour profile.
func New(w io.Writer, profile termenv.Profile) *Renderer {
	lg := lipgloss.NewRenderer(w)
	lg.SetColorProfile(profile)
	return &Renderer{
		LineBreak: "\n",
		w:         w,
		out:       termenv.NewOutput(w, termenv.WithProfile(profile)),
		lg:        lg,
		styles:    make(map[richtext.Attributes]lipgloss.Style),
	}
}

// Render writes d. A cleared delta first clears the screen.
func (r *Renderer) Render(d pipeline.Delta) error {
	if d.Cleared {
		r.out.ClearScreen()
	}
	s := r.String(d.Text)
	if s == "" {
		return nil
	}
	_, err := io.WriteString(r.w, s)
	return err
}

// String returns t styled for the renderer's profile.
func (r *Renderer) String(t richtext.Text) string {
	var sb strings.Builder
	for _, run := range t.Runs() {
		sb.WriteString(strings.Repeat(r.LineBreak, run.Breaks))
		if run.Text == "" {
			continue
		}
		if run.Attributes.IsDefault() {
			sb.WriteString(run.Text)
			continue
		}
		sb.WriteString(r.style(run.Attributes).Render(run.Text))
	}
	return sb.String()
}

func (r *Renderer) style(attrs richtext.Attributes) lipgloss.Style {
	if s, ok := r.styles[attrs]; ok {
		return s
	}
	s := r.lg.NewStyle().Bold(attrs.Bold)
	if rgb, ok := attrs.RGB(); ok {
		s = s.Foreground(lipgloss.Color(rgb.Hex()))
	}
	r.styles[attrs] = s
	return s
}
