package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Source hands out the current catalog.
type Source interface {
	Current() *Catalog
}

// Static is a Source that never changes.
type Static struct{ C *Catalog }

// Current implements Source.
func (s Static) Current() *Catalog { return s.C }

// Watcher serves a catalog file and reloads it when the file changes. A
// file that fails to parse leaves the previous catalog in place.
type Watcher struct {
	path     string
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	current  atomic.Pointer[Catalog]
	retired  *Catalog // replaced by the last reload, closed on the next one
	debounce time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// LoadFile parses a catalog file from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// NewWatcher loads path and starts watching its directory. Editors often
// replace files by rename, so the directory is watched rather than the file.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	initial, err := LoadFile(abs)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		logger:   logger.With(zap.String("catalog", abs)),
		watcher:  fsw,
		debounce: 200 * time.Millisecond,
		ctx:      ctx,
		cancel:   cancel,
	}
	w.current.Store(initial)

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Current implements Source.
func (w *Watcher) Current() *Catalog { return w.current.Load() }

// Close stops watching and releases every catalog the watcher loaded.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.watcher.Close()
	w.wg.Wait()
	return errors.Join(err, w.retired.Close(), w.current.Load().Close())
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	next, err := LoadFile(w.path)
	if err != nil {
		w.logger.Warn("catalog reload failed, keeping previous catalog", zap.Error(err))
		return
	}
	prev := w.current.Swap(next)
	// Lookups may still hold prev, so it is closed one reload later.
	if err := w.retired.Close(); err != nil {
		w.logger.Warn("close retired catalog", zap.Error(err))
	}
	w.retired = prev
	w.logger.Info("catalog reloaded", zap.Int("categories", len(next.categories)))
}
