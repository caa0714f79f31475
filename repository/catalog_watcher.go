package repository

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"shopsmart/catalog"
)

// CatalogWatcher reloads a catalog file when it changes on disk and hands
// each valid result to onReload. Invalid edits are logged and skipped, so
// the last good catalog stays in service.
type CatalogWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	repo     *FileCatalogRepository
	onReload func(*catalog.Catalog)
	logger   *zap.Logger
	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewCatalogWatcher creates a watcher for the file behind repo.
func NewCatalogWatcher(repo *FileCatalogRepository, onReload func(*catalog.Catalog), logger *zap.Logger) (*CatalogWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogWatcher{
		watcher:  watcher,
		repo:     repo,
		onReload: onReload,
		logger:   logger,
		debounce: 200 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDebounce changes how long the watcher waits for writes to settle.
func (w *CatalogWatcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start watches the catalog's directory; editors often replace files by
// rename, which a watch on the file itself would miss. Non-blocking.
func (w *CatalogWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	dir := filepath.Dir(w.repo.Path())
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.running = true
	w.logger.Info("👀 Watching catalog file", zap.String("path", w.repo.Path()))

	go w.run(ctx)
	return nil
}

// Stop ends the event loop and releases the fsnotify watcher. Safe to call
// more than once, and before Start.
func (w *CatalogWatcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("Error closing catalog watcher", zap.Error(err))
	}
}

// Run starts the watcher and blocks until ctx is cancelled.
func (w *CatalogWatcher) Run(ctx context.Context) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	w.Stop()
	return nil
}

func (w *CatalogWatcher) run(ctx context.Context) {
	defer close(w.doneCh)

	target := filepath.Clean(w.repo.Path())
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

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
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("Catalog file event", zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Catalog watcher error", zap.Error(err))

		case <-timer.C:
			w.reload(ctx)
		}
	}
}

func (w *CatalogWatcher) reload(ctx context.Context) {
	c, err := LoadCatalog(ctx, w.repo)
	if err != nil {
		w.logger.Warn("⚠️  Catalog reload skipped", zap.Error(err))
		return
	}
	w.logger.Info("🔄 Catalog reloaded", zap.Int("products", c.Len()))
	if w.onReload != nil {
		w.onReload(c)
	}
}
