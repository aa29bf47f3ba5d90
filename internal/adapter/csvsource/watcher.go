package csvsource

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/couchcryptid/bike-sharing-dashboard/internal/domain"
)

// ReloadFunc receives every successfully reloaded dataset.
type ReloadFunc func(*domain.Dataset)

// Watcher reloads the dataset file whenever it is rewritten.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	onError func(error)
}

// NewWatcher watches the directory holding path, so that editors and tools
// that replace the file by rename are picked up too. onError may be nil.
func NewWatcher(path string, logger *slog.Logger, onError func(error)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &Watcher{
		path:    filepath.Clean(path),
		watcher: w,
		logger:  logger,
		onError: onError,
	}, nil
}

// Run delivers reloaded datasets to fn until ctx is cancelled or the watcher
// is closed. A file that fails to load is logged and skipped; the caller
// keeps serving its previous dataset.
func (w *Watcher) Run(ctx context.Context, fn ReloadFunc) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			ds, err := Load(w.path)
			if err != nil {
				w.logger.Warn("dataset reload failed, keeping previous data", "path", w.path, "error", err)
				w.onError(err)
				continue
			}
			w.logger.Info("dataset reloaded", "path", w.path, "records", ds.Len())
			fn(ds)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
