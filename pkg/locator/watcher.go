package locator

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

// Watcher keeps a warm snapshot of the search directories so repeated
// fallback searches don't re-stat every file. It is optional: a Locator
// without a watcher reads the directories on each search.
type Watcher struct {
	dirs   []string
	logger *slog.Logger

	mu        sync.RWMutex
	snapshots map[string][]fileEntry

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
}

// NewWatcher creates a Watcher over the given directories. Call Start to
// begin tracking.
func NewWatcher(dirs []string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		dirs:      dirs,
		logger:    logger,
		snapshots: make(map[string][]fileEntry),
	}
}

// Start scans each directory once and begins watching for changes.
// Directories that can't be watched are tracked with a cold snapshot only;
// this mirrors the search's own tolerance for unreadable directories.
func (w *Watcher) Start(ctx context.Context) error {
	if w.cancel != nil {
		return fmt.Errorf("watcher already started")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	w.watcher = fsw

	for _, dir := range w.dirs {
		w.rescan(dir)
		if err := fsw.Add(dir); err != nil {
			w.logger.Debug("not watching directory", "dir", dir, "error", err)
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	lifecycle.Go(runCtx, w.run, lifecycle.WithErrorHandler(func(err error) {
		w.logger.Error("locator watcher stopped", "error", err)
	}))

	return nil
}

// Stop terminates the watch loop. The last snapshot remains readable.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

// ListDir implements dirLister from the snapshot. Directories outside the
// watched set fall through to the filesystem.
func (w *Watcher) ListDir(dir string) ([]fileEntry, error) {
	w.mu.RLock()
	entries, ok := w.snapshots[dir]
	w.mu.RUnlock()
	if !ok {
		return fsLister{}.ListDir(dir)
	}
	out := make([]fileEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func (w *Watcher) run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			// Any create/remove/rename/write invalidates the parent
			// directory; a full rescan of one flat directory is cheap.
			dir := filepath.Dir(event.Name)
			w.logger.Debug("search directory changed", "dir", dir, "op", event.Op.String())
			w.rescan(dir)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("locator watch error", "error", err)
		}
	}
}

func (w *Watcher) rescan(dir string) {
	entries, err := fsLister{}.ListDir(dir)
	if err != nil {
		w.mu.Lock()
		delete(w.snapshots, dir)
		w.mu.Unlock()
		return
	}
	w.mu.Lock()
	w.snapshots[dir] = entries
	w.mu.Unlock()
}
