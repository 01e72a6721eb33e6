package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/vpath/internal/log"
	"github.com/danieljhkim/vpath/internal/watcher"
)

// Watch resolves req.URI, reports the result to fn, and repeats after every
// change below the registered roots until ctx is cancelled. An error from fn
// stops the watch and is returned.
func (e *Engine) Watch(ctx context.Context, req WatchRequest, fn func(*ResolveResult) error) error {
	cfg := watcher.DefaultConfig()
	if req.Debounce > 0 {
		cfg.DebounceDur = req.Debounce
	}

	w, err := watcher.New(e.loc, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	changes, err := w.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	resolve := ResolveRequest{URI: req.URI, All: req.All}
	report := func() error {
		result, err := e.Resolve(ctx, resolve)
		if err != nil {
			return err
		}
		return fn(result)
	}

	if err := report(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			log.Debug(log.CatWatcher, "re-resolving", "uri", req.URI)
			if err := report(); err != nil {
				return err
			}
		}
	}
}
