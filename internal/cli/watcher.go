package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watcher reruns run after files in paths change. Directories are watched
// whole; for files the parent directory is watched and events are filtered by
// name so editors that replace files on save are still seen.
type watcher struct {
	paths    []string
	debounce time.Duration
	run      func(context.Context) error
	report   func(error)
	logger   *slog.Logger

	// ready, when set, is closed once the watches are in place.
	ready chan struct{}
}

func (w *watcher) watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cli: start watcher: %w", err)
	}
	defer func() {
		_ = fsw.Close()
	}()

	files, err := w.add(fsw)
	if err != nil {
		return err
	}
	if w.ready != nil {
		close(w.ready)
	}

	w.runOnce(ctx)

	debounce := w.debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev, files) {
				continue
			}
			w.logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)
		case <-timer.C:
			w.runOnce(ctx)
		}
	}
}

// add registers every path and returns the set of watched files, keyed by
// cleaned absolute path.
func (w *watcher) add(fsw *fsnotify.Watcher) (map[string]bool, error) {
	files := make(map[string]bool)
	watched := make(map[string]bool)
	for _, path := range w.paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("cli: watch %s: %w", path, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("cli: watch %s: %w", path, err)
		}
		dir := abs
		if !info.IsDir() {
			files[abs] = true
			dir = filepath.Dir(abs)
		}
		if watched[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			return nil, fmt.Errorf("cli: watch %s: %w", dir, err)
		}
		watched[dir] = true
		w.logger.Debug("watching", "path", dir)
	}
	return files, nil
}

func (w *watcher) relevant(ev fsnotify.Event, files map[string]bool) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	if files[name] {
		return true
	}
	// Events for files inside a watched overlay directory.
	for _, path := range w.paths {
		abs, err := filepath.Abs(path)
		if err == nil && !files[abs] && filepath.Dir(name) == abs {
			return true
		}
	}
	return false
}

func (w *watcher) runOnce(ctx context.Context) {
	if err := w.run(ctx); err != nil && ctx.Err() == nil {
		w.report(err)
	}
}
