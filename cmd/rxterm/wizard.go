package main

import (
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/suryansh-23/rxterm/internal/ui"
)

const logoInterval = 180 * time.Millisecond

type logoTickMsg time.Time

// wizardModel shows the init form under a colour-cycling logo.
type wizardModel struct {
	form  *huh.Form
	frame int
}

func (m wizardModel) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), logoTick())
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(logoTickMsg); ok {
		m.frame++
		return m, logoTick()
	}
	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}
	return m, cmd
}

func (m wizardModel) View() string {
	return ui.LogoFrame(m.frame) + "\n\n" + m.form.View()
}

func logoTick() tea.Cmd {
	return tea.Tick(logoInterval, func(t time.Time) tea.Msg { return logoTickMsg(t) })
}

// runAnimatedForm runs form inside a bubbletea program. Dumb terminals get
// the plain form.
func runAnimatedForm(form *huh.Form) error {
	if os.Getenv("TERM") == "dumb" {
		return form.Run()
	}
	form.SubmitCmd = tea.Quit
	form.CancelCmd = tea.Interrupt

	p := tea.NewProgram(wizardModel{form: form}, tea.WithOutput(os.Stderr), tea.WithInput(os.Stdin))
	final, err := p.Run()
	if errors.Is(err, tea.ErrInterrupted) {
		return huh.ErrUserAborted
	}
	if err != nil {
		return err
	}
	if wm, ok := final.(wizardModel); ok && wm.form.State == huh.StateAborted {
		return huh.ErrUserAborted
	}
	return nil
}
