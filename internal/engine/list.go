package engine

import (
	"context"

	"github.com/danieljhkim/vpath/internal/locator"
)

// List returns the merged listing of a directory URI. Names provided by
// several registered directories appear once, from the first directory.
func (e *Engine) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	result := &ListResult{URI: req.URI, Entries: []ListEntry{}}

	if req.Recursive {
		err := e.loc.Walk(req.URI, func(uri string, entry *locator.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			result.Entries = append(result.Entries, toListEntry(entry))
			return nil
		})
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	it, err := e.loc.Iterator(req.URI)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	for entry, err := range it.All() {
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Entries = append(result.Entries, toListEntry(entry))
	}
	return result, nil
}

func toListEntry(entry *locator.DirEntry) ListEntry {
	return ListEntry{
		Name:    entry.Name(),
		URI:     entry.URI(),
		Path:    entry.Path(),
		Dir:     entry.IsDir(),
		Size:    entry.Size(),
		ModTime: entry.ModTime(),
	}
}
