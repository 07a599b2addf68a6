package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

type envInfo struct {
	shell   string
	term    string
	tmux    bool
	cols    int
	rows    int
	tty     bool
	profile termenv.Profile
}

func readEnvInfo() envInfo {
	info := envInfo{
		shell:   os.Getenv("SHELL"),
		term:    os.Getenv("TERM"),
		tmux:    os.Getenv("TMUX") != "",
		tty:     term.IsTerminal(int(os.Stdin.Fd())),
		profile: colorProfile(os.Stdout),
	}
	cols, rows, err := term.GetSize(int(os.Stdin.Fd()))
	if err != nil {
		cols = 0
		rows = 0
	}
	info.cols = cols
	info.rows = rows
	return info
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	default:
		return "ascii"
	}
}

func envSummary() string {
	info := readEnvInfo()
	return fmt.Sprintf("Detected TERM=%s colors=%s tmux=%t size=%dx%d", info.term, profileName(info.profile), info.tmux, info.cols, info.rows)
}
