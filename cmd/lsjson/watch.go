package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay coalesces bursts of filesystem events into one refresh.
const settleDelay = 200 * time.Millisecond

// watchLoop re-runs emit whenever the watched directory changes, until the
// context is cancelled.
func watchLoop(ctx context.Context, dir string, emit func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Events:
			if !ok {
				return nil
			}
			pending = time.After(settleDelay)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)
		case <-pending:
			pending = nil
			if err := emit(); err != nil {
				slog.Warn("refresh failed", "dir", dir, "error", err)
			}
		}
	}
}
