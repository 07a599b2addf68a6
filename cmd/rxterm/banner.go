package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/suryansh-23/rxterm/internal/ui"
)

func currentBadge() ui.Badge {
	return ui.Badge{Platform: platformLabel(runtime.GOOS), Shell: shellLabel(os.Getenv("SHELL"))}
}

func platformLabel(goos string) string {
	switch goos {
	case "darwin":
		return "macOS"
	case "linux":
		return "Linux"
	case "freebsd":
		return "FreeBSD"
	default:
		return goos
	}
}

func shellLabel(shell string) string {
	shell = strings.TrimSpace(shell)
	if shell == "" {
		return ""
	}
	return filepath.Base(shell)
}
