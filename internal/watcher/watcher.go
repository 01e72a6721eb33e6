// Package watcher invalidates locator results when registered roots change.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/danieljhkim/vpath/internal/log"
)

// Target is what the watcher keeps fresh: it supplies the directories to
// watch and drops cached results when they change.
type Target interface {
	Roots() []string
	ClearCache()
}

// Watcher monitors the physical roots of a locator and clears its cache
// when entries appear, disappear or get renamed below them.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	target    Target
	debounce  time.Duration
	onChange  chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
	stopErr   error
}

// Config holds watcher configuration options.
type Config struct {
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig() Config {
	return Config{
		DebounceDur: 200 * time.Millisecond,
	}
}

// New creates a watcher for target.
func New(target Target, cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if cfg.DebounceDur <= 0 {
		cfg.DebounceDur = DefaultConfig().DebounceDur
	}

	return &Watcher{
		fsWatcher: fsw,
		target:    target,
		debounce:  cfg.DebounceDur,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start watches every existing root and its subdirectories. The returned
// channel receives a signal after the cache was cleared. Watching stops when
// ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) (<-chan struct{}, error) {
	watched := 0
	for _, root := range w.target.Roots() {
		info, err := os.Stat(filepath.FromSlash(root))
		if err != nil {
			log.Debug(log.CatWatcher, "skipping missing root", "root", root)
			continue
		}
		if !info.IsDir() {
			if err := w.fsWatcher.Add(filepath.FromSlash(root)); err != nil {
				return nil, fmt.Errorf("watching %s: %w", root, err)
			}
			watched++
			continue
		}
		n, err := w.addTree(filepath.FromSlash(root))
		if err != nil {
			return nil, err
		}
		watched += n
	}
	log.Info(log.CatWatcher, "watching roots", "paths", watched)

	go w.loop(ctx)

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources. It is safe to call
// more than once.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.done)
		w.stopErr = w.fsWatcher.Close()
	})
	return w.stopErr
}

// Watched returns the paths currently registered with fsnotify.
func (w *Watcher) Watched() []string {
	return w.fsWatcher.WatchList()
}

// addTree watches dir and every directory below it.
func (w *Watcher) addTree(dir string) (int, error) {
	n := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Vanished between listing and visiting.
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return fmt.Errorf("watching directory %s: %w", path, err)
		}
		n++
		return nil
	})
	return n, err
}

// loop processes file system events with debouncing.
func (w *Watcher) loop(ctx context.Context) {
	var (
		timer   *time.Timer
		pending bool
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !isRelevantEvent(event) {
				continue
			}
			log.Debug(log.CatWatcher, "change detected", "path", event.Name, "op", event.Op.String())

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if _, err := w.addTree(event.Name); err != nil {
						log.ErrorErr(log.CatWatcher, "failed to watch new directory", err, "path", event.Name)
					}
				}
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = true

		case <-timerC(timer):
			if pending {
				w.target.ClearCache()
				log.Debug(log.CatWatcher, "cache cleared")
				select {
				case w.onChange <- struct{}{}:
				default:
				}
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "watch error", err)

		case <-ctx.Done():
			_ = w.Stop()
			return

		case <-w.done:
			return
		}
	}
}

func timerC(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// isRelevantEvent reports whether event can change which paths exist.
// Plain writes and chmods leave existence untouched.
func isRelevantEvent(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
