// Package engine provides the operations behind the vpath commands.
//
// The engine package acts as the orchestration layer between CLI commands and
// the locator. It turns requests into locator calls and shapes the answers
// into result types that the CLI renders as text or JSON.
//
// Key components:
//   - Engine: Main orchestrator that owns the configured locator
//   - Resolve/List/Cat: Read-only views of the virtual namespace
//   - Schemes/Config: Inspection of the registry
//   - Watch: Re-resolution when registered roots change
package engine

import (
	"context"
	"fmt"
	"path"

	"github.com/danieljhkim/vpath/internal/config"
	"github.com/danieljhkim/vpath/internal/hash"
	"github.com/danieljhkim/vpath/internal/locator"
	"github.com/danieljhkim/vpath/internal/log"
)

// Engine orchestrates all vpath operations.
// It is the main API surface called by the CLI.
type Engine struct {
	loc    *locator.Locator
	cfg    config.Config
	hasher hash.Hasher
}

// New creates a new Engine over an already configured locator.
func New(loc *locator.Locator, cfg config.Config) *Engine {
	return &Engine{
		loc:    loc,
		cfg:    cfg,
		hasher: hash.NewSHA256Hasher(loc.Filesystem()),
	}
}

// Setup builds a locator from cfg, registers every configured scheme and
// returns an engine over it. A non-empty base overrides cfg.Base.
func Setup(cfg config.Config, base string, opts ...locator.Option) (*Engine, error) {
	if base != "" {
		cfg.Base = base
	}

	loc, err := locator.New(cfg.Base, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create locator: %w", err)
	}
	if err := cfg.Apply(loc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	log.Debug(log.CatCLI, "engine ready", "base", loc.Base(), "schemes", len(loc.Schemes()))
	return New(loc, cfg), nil
}

// Locator returns the locator the engine operates on.
func (e *Engine) Locator() *locator.Locator {
	return e.loc
}

// Resolve maps a URI to one or all of its physical paths. A URI that matches
// nothing is not an error; the result reports Found false.
func (e *Engine) Resolve(ctx context.Context, req ResolveRequest) (*ResolveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := locator.LookupOptions{Relative: req.Relative, IncludeMissing: req.Missing}
	result := &ResolveResult{URI: req.URI, Paths: []string{}}

	if req.All {
		paths, err := e.loc.ResolveAll(req.URI, opts)
		if err != nil {
			return nil, err
		}
		result.Paths = paths
		result.Found = len(paths) > 0
	} else {
		p, ok, err := e.loc.Resolve(req.URI, opts)
		if err != nil {
			return nil, err
		}
		if ok {
			result.Paths = []string{p}
			result.Found = true
		}
	}

	if req.Digest && result.Found {
		digests, err := e.digests(result.Paths, req.Relative)
		if err != nil {
			return nil, err
		}
		result.Digests = digests
	}

	return result, nil
}

// digests hashes every existing regular file among paths. Relative paths
// are read under the locator base.
func (e *Engine) digests(paths []string, relative bool) (map[string]string, error) {
	out := make(map[string]string, len(paths))
	for _, p := range paths {
		physical := p
		if relative {
			physical = path.Join(e.loc.Base(), p)
		}
		isDir, err := e.loc.Filesystem().IsDir(physical)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", physical, err)
		}
		if isDir {
			continue
		}
		exists, err := e.loc.Filesystem().Exists(physical)
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", physical, err)
		}
		if !exists {
			continue
		}
		digest, err := e.hasher.HashFile(physical)
		if err != nil {
			return nil, err
		}
		out[p] = digest
	}
	return out, nil
}
