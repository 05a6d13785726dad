package catalog

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"vato-reader/internal/contextutil"
)

// Invalidator is anything holding a cached catalog that can be dropped.
type Invalidator interface {
	Invalidate()
}

// Watcher invalidates a cached catalog whenever the catalog file changes.
// The parent directory is watched so editors that replace the file by rename
// are still noticed.
type Watcher struct {
	path    string
	target  Invalidator
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher for the catalog file at path.
func NewWatcher(path string, target Invalidator) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path:    filepath.Clean(path),
		target:  target,
		watcher: fw,
		logger:  slog.Default(),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Start begins watching. It returns once the watch is registered.
// The watcher logs through the logger carried by ctx.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.running = true
	w.logger = contextutil.LoggerFromContext(ctx)
	w.logger.InfoContext(ctx, "watching catalog file", "path", w.path)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
// It is safe to call Stop on a watcher that was never started.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("failed to close catalog watcher", "error", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				w.logger.InfoContext(ctx, "catalog file changed, invalidating cache", "path", w.path, "op", event.Op.String())
				w.target.Invalidate()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WarnContext(ctx, "catalog watcher error", "error", err)
		}
	}
}
