package engine

import (
	"context"

	"github.com/danieljhkim/vpath/internal/config"
)

// Schemes describes every registered scheme and its prefixes in lookup order.
func (e *Engine) Schemes(ctx context.Context) (*SchemesResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &SchemesResult{Base: e.loc.Base(), Schemes: []SchemeInfo{}}
	for _, name := range e.loc.Schemes() {
		info := SchemeInfo{Name: name, Prefixes: []PrefixInfo{}}
		for _, p := range e.loc.Paths(name) {
			entries := make([]string, 0, len(p.Entries))
			for _, entry := range p.Entries {
				entries = append(entries, entry.String())
			}
			info.Prefixes = append(info.Prefixes, PrefixInfo{Prefix: p.Prefix, Entries: entries})
		}
		result.Schemes = append(result.Schemes, info)
	}
	return result, nil
}

// Config returns the loaded configuration, or with effective set, a
// configuration rebuilt from the live registry.
func (e *Engine) Config(ctx context.Context, effective bool) (config.Config, error) {
	if err := ctx.Err(); err != nil {
		return config.Config{}, err
	}
	if !effective {
		return e.cfg, nil
	}
	cfg := config.FromLocator(e.loc)
	cfg.Log = e.cfg.Log
	return cfg, nil
}
