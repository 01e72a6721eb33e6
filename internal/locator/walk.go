package locator

import (
	"errors"
	"io/fs"
)

// WalkFunc is called for every entry Walk visits. When a directory cannot be
// listed, it is called once with a nil entry and the error. Returning
// fs.SkipDir from a directory entry skips that directory; from a file entry
// it skips the rest of the containing directory. fs.SkipAll stops the walk.
type WalkFunc func(uri string, entry *DirEntry, err error) error

// Walk descends the merged tree under uri. Every level is listed with a
// fresh Iterator, so each nested directory is itself an overlay of every
// physical directory that provides it.
func (l *Locator) Walk(uri string, fn WalkFunc) error {
	err := l.walk(uri, fn)
	if errors.Is(err, fs.SkipAll) {
		return nil
	}
	return err
}

func (l *Locator) walk(uri string, fn WalkFunc) error {
	it, err := l.Iterator(uri)
	if err != nil {
		return fn(uri, nil, err)
	}
	defer it.Close()

	for it.Next() {
		e := it.Entry()
		if err := fn(e.URI(), e, nil); err != nil {
			if errors.Is(err, fs.SkipDir) {
				if e.IsDir() {
					continue
				}
				return nil
			}
			return err
		}
		if e.IsDir() {
			if err := l.walk(e.URI(), fn); err != nil {
				return err
			}
		}
	}
	if err := it.Err(); err != nil {
		return fn(uri, nil, err)
	}
	return nil
}
