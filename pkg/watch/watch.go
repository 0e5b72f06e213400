// Package watch re-runs model processing whenever the document changes
// on disk. Changes are debounced so editors that save in several steps
// trigger a single run.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the settle time applied when New is given a
// non-positive debounce.
const DefaultDebounce = 500 * time.Millisecond

// pollInterval is how often pending changes are checked against the
// debounce window.
const pollInterval = 100 * time.Millisecond

// Watcher watches one model document.
type Watcher struct {
	path     string
	dir      string
	debounce time.Duration
	log      *zap.Logger
}

// New creates a Watcher for the document at path. A nil logger disables
// logging.
func New(path string, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{path: abs, dir: filepath.Dir(abs), debounce: debounce, log: log}, nil
}

// Run blocks, calling fn each time the document settles after a change.
// fn errors are logged and do not stop the watch; Run returns when ctx
// is cancelled or the underlying watcher shuts down.
func (w *Watcher) Run(ctx context.Context, fn func() error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fsw.Close()

	// Watch the directory, not the file: editors that save through a
	// rename would otherwise drop the watch on the first save.
	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.log.Info("watching document",
		zap.String("path", w.path),
		zap.Duration("debounce", w.debounce))

	tick := time.NewTicker(pollInterval)
	defer tick.Stop()

	var pending time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("document changed",
				zap.String("op", ev.Op.String()),
				zap.String("name", ev.Name))
			pending = time.Now()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-tick.C:
			if pending.IsZero() || time.Since(pending) < w.debounce {
				continue
			}
			pending = time.Time{}
			if err := fn(); err != nil {
				w.log.Error("change handler failed", zap.Error(err))
			}
		}
	}
}

// relevant reports whether the event concerns the watched document.
// Chmod-only events are ignored.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(ev.Name) == w.path
}
