// Package clipboard copies captured terminal text to the system clipboard by
// piping it into a platform command.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Backend identifies a clipboard command.
type Backend string

const (
	BackendAuto   Backend = "auto"
	BackendPbcopy Backend = "pbcopy"
	BackendWlCopy Backend = "wl-copy"
	BackendXclip  Backend = "xclip"
	BackendXsel   Backend = "xsel"
	BackendNone   Backend = "none"
)

// Backends lists every accepted backend name.
var Backends = []Backend{BackendAuto, BackendPbcopy, BackendWlCopy, BackendXclip, BackendXsel, BackendNone}

// ErrDisabled is returned when the backend is "none".
var ErrDisabled = errors.New("clipboard disabled")

var lookPath = exec.LookPath

// Copy writes text to the clipboard using backend.
func Copy(ctx context.Context, backend string, text string) error {
	resolved, err := Resolve(backend)
	if err != nil {
		return err
	}
	if resolved == BackendNone {
		return ErrDisabled
	}
	return copyText(ctx, resolved, text)
}

// Resolve converts a configured backend name into a concrete backend,
// probing PATH for "auto".
func Resolve(backend string) (Backend, error) {
	requested := Backend(strings.ToLower(strings.TrimSpace(backend)))
	if requested == "" {
		requested = BackendAuto
	}
	switch requested {
	case BackendAuto:
		return autoBackend()
	case BackendPbcopy, BackendWlCopy, BackendXclip, BackendXsel, BackendNone:
		return requested, nil
	default:
		return "", fmt.Errorf("unsupported clipboard backend: %q", backend)
	}
}

// IsValid reports whether backend names a known backend.
func IsValid(backend string) bool {
	b := Backend(strings.ToLower(strings.TrimSpace(backend)))
	if b == "" {
		return true
	}
	for _, known := range Backends {
		if b == known {
			return true
		}
	}
	return false
}

func autoBackend() (Backend, error) {
	candidates := autoBackendCandidates()
	if len(candidates) == 0 {
		return "", errors.New("no clipboard backend available (missing display server)")
	}
	for _, candidate := range candidates {
		if _, err := lookPath(string(candidate)); err == nil {
			return candidate, nil
		}
	}
	var names []string
	for _, candidate := range candidates {
		names = append(names, string(candidate))
	}
	return "", fmt.Errorf("no clipboard backend found; install one of: %s", strings.Join(names, ", "))
}
