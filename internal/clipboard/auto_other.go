//go:build !darwin

package clipboard

import (
	"os"
	"strings"
)

func autoBackendCandidates() []Backend {
	var candidates []Backend
	if isWayland() {
		candidates = append(candidates, BackendWlCopy)
	}
	if strings.TrimSpace(os.Getenv("DISPLAY")) != "" {
		candidates = append(candidates, BackendXclip, BackendXsel)
	}
	return candidates
}

func isWayland() bool {
	if v := strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")); strings.EqualFold(v, "wayland") {
		return true
	}
	return strings.TrimSpace(os.Getenv("WAYLAND_DISPLAY")) != ""
}
