package clipboard

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

var execCommand = exec.CommandContext

const copyTimeout = 2 * time.Second

// runCopyCommand pipes text into command. Its stderr is folded into the
// returned error.
func runCopyCommand(ctx context.Context, command string, args []string, text string) error {
	ctx, cancel := context.WithTimeout(ctx, copyTimeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := execCommand(ctx, command, args...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", command, ctx.Err())
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", command, err, msg)
		}
		return fmt.Errorf("%s: %w", command, err)
	}
	return nil
}
