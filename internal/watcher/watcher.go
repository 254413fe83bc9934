// Package watcher re-runs analysis when Go files under a module change.
package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle before triggering.
const DefaultDebounce = 300 * time.Millisecond

// Watcher monitors a directory tree for .go file changes and calls OnChange
// once per settled burst of events.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange func()
	debounce time.Duration
	logger   *slog.Logger
}

// New creates a Watcher rooted at dir. Subdirectories are added recursively;
// hidden, vendor, node_modules and testdata directories are skipped.
func New(dir string, debounce time.Duration, onChange func(), logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		watcher:  fw,
		onChange: onChange,
		debounce: debounce,
		logger:   logger.With("component", "watcher"),
	}
	if err := w.addRecursive(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// Run processes events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(event) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		case <-timer.C:
			w.logger.Info("change detected, re-running analysis")
			w.onChange()
		}
	}
}

// handleEvent reports whether event should trigger a re-run.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if shouldSkip(filepath.Base(event.Name)) {
				return false
			}
			if err := w.addRecursive(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "dir", event.Name, "error", err)
			}
			return false
		}
	}
	if !strings.HasSuffix(event.Name, ".go") {
		return false
	}
	if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.logger.Debug("go file changed", "file", event.Name, "op", event.Op.String())
		return true
	}
	return false
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && shouldSkip(d.Name()) {
			return filepath.SkipDir
		}
		return w.watcher.Add(p)
	})
}

func shouldSkip(base string) bool {
	switch base {
	case "vendor", "node_modules", "testdata":
		return true
	}
	return strings.HasPrefix(base, ".")
}
