package engine

import (
	"context"
	"fmt"
)

// Cat reads the highest-priority copy of a file.
func (e *Engine) Cat(ctx context.Context, req CatRequest) (*CatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, ok, err := e.loc.Find(req.URI)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, req.URI)
	}

	fsys := e.loc.Filesystem()
	isDir, err := fsys.IsDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if isDir {
		return nil, fmt.Errorf("%w: %s", ErrIsDir, req.URI)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", req.URI, err)
	}
	return &CatResult{URI: req.URI, Path: path, Data: data}, nil
}
