//go:build darwin

package clipboard

import (
	"context"
	"fmt"
)

func copyText(ctx context.Context, backend Backend, text string) error {
	if backend != BackendPbcopy {
		return fmt.Errorf("clipboard backend %q is not supported on darwin", backend)
	}
	return runCopyCommand(ctx, "pbcopy", nil, text)
}

func autoBackendCandidates() []Backend {
	return []Backend{BackendPbcopy}
}
