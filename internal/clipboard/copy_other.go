//go:build !darwin

package clipboard

import (
	"context"
	"fmt"
)

func copyText(ctx context.Context, backend Backend, text string) error {
	switch backend {
	case BackendWlCopy:
		return runCopyCommand(ctx, "wl-copy", nil, text)
	case BackendXclip:
		return runCopyCommand(ctx, "xclip", []string{"-selection", "clipboard"}, text)
	case BackendXsel:
		return runCopyCommand(ctx, "xsel", []string{"--clipboard", "--input"}, text)
	default:
		return fmt.Errorf("clipboard backend %q is not supported here", backend)
	}
}
