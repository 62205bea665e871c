// Package lsd runs the external lsd(1) listing tool and captures its output.
package lsd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNotInstalled is returned when the lsd binary is not on PATH.
var ErrNotInstalled = errors.New("lsd is not installed")

// Run executes `lsd --long` on path and returns its stdout. Color is
// disabled through the child's environment only; the parent process
// environment is never touched.
func Run(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, "lsd", "--long", path)
	cmd.Env = append(os.Environ(), "NO_COLOR=1", "LS_COLORS=")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrNotInstalled
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("lsd: %s: %w", msg, err)
		}
		return "", fmt.Errorf("run lsd: %w", err)
	}
	return stdout.String(), nil
}
