// SPDX-License-Identifier: MPL-2.0

// Package watch triggers catalog rebuilds when descriptor or icon files
// change.
//
// It monitors a set of directories and invokes a callback after a debounce
// period, so an editor save or a git pull touching many files coalesces into
// a single rebuild.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the quiet period after the last filesystem event before
// the rebuild callback fires.
const defaultDebounce = 500 * time.Millisecond

// defaultIgnores excludes VCS metadata, editor swap files, and OS metadata
// that generate high-frequency noise.
var defaultIgnores = []string{
	"**/.git/**",
	"**/*.swp",
	"**/*~",
	"**/.DS_Store",
}

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Dirs are the directories to monitor. Non-existent directories are
		// skipped with a warning.
		Dirs []string

		// Patterns are doublestar-compatible glob patterns selecting which
		// file names trigger the callback (e.g. "*.json"). An empty slice
		// triggers on all non-ignored files.
		Patterns []string

		// Debounce is the quiet period after the last event before the
		// callback fires. Zero or negative falls back to defaultDebounce.
		Debounce time.Duration

		// OnChange is called after the debounce window closes. A nil
		// callback is a no-op.
		OnChange func(ctx context.Context) error
	}

	// Watcher monitors the configured directories and fires a debounced
	// rebuild callback. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		debounce time.Duration
		started  atomic.Bool
	}
)

// New creates a Watcher and registers the configured directories.
func New(cfg Config) (*Watcher, error) {
	for _, pattern := range cfg.Patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("watch: invalid pattern %q", pattern)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	registered := 0
	for _, dir := range cfg.Dirs {
		if _, statErr := os.Stat(dir); statErr != nil {
			slog.Warn("watch: skipping directory", "dir", dir, "error", statErr)
			continue
		}
		if addErr := fsw.Add(dir); addErr != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watch: register %s: %w", dir, addErr)
		}
		registered++
	}
	if registered == 0 {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch: no watchable directories")
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	return &Watcher{cfg: cfg, fsw: fsw, debounce: debounce}, nil
}

// Run blocks until ctx is cancelled, coalescing filesystem events and firing
// the debounced callback. It returns nil on clean cancellation. Run must be
// called exactly once; a second call returns an error immediately.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return fmt.Errorf("watch: Run called more than once")
	}
	defer func() {
		if err := w.fsw.Close(); err != nil {
			slog.Warn("watch: close fsnotify", "error", err)
		}
	}()

	var running atomic.Bool
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		// Skip when the previous rebuild is still in progress; the next
		// filesystem event will schedule another attempt.
		if !running.CompareAndSwap(false, true) {
			slog.Warn("watch: rebuild still in progress, skipping trigger")
			return
		}
		defer running.Store(false)

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx); err != nil {
				slog.Error("watch: rebuild failed", "error", err)
			}
		}
	}

	// Created stopped; the first matching event arms it.
	timer := time.AfterFunc(w.debounce, fire)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watch: fsnotify event channel closed unexpectedly")
			}
			if !w.matches(evt.Name) {
				continue
			}
			slog.Debug("watch: change detected", "path", evt.Name, "op", evt.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watch: fsnotify error channel closed unexpectedly")
			}
			slog.Warn("watch: filesystem event error", "error", err)
		}
	}
}

// matches reports whether a changed path should trigger a rebuild.
func (w *Watcher) matches(path string) bool {
	name := filepath.Base(path)
	for _, pattern := range defaultIgnores {
		if ok, _ := doublestar.Match(pattern, filepath.ToSlash(path)); ok {
			return false
		}
	}
	if len(w.cfg.Patterns) == 0 {
		return true
	}
	for _, pattern := range w.cfg.Patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
