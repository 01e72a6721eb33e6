package locator

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"strings"
	"time"

	"github.com/danieljhkim/vpath/internal/fsops"
	"github.com/danieljhkim/vpath/internal/log"
)

// readBatch is how many entries are pulled from a directory handle at once.
const readBatch = 64

type iterState int

const (
	stateInitial iterState = iota
	stateStreaming
	stateExhausted
)

// DirEntry is one name in a merged directory listing. Its metadata comes
// from the physical directory that contributed the name first. DirEntry
// implements fs.DirEntry.
type DirEntry struct {
	uri  string
	dir  string
	info os.FileInfo
}

// Name returns the entry's base name.
func (e *DirEntry) Name() string { return e.info.Name() }

// URI returns the logical identifier of the entry, e.g. "theme://css/site.css".
func (e *DirEntry) URI() string { return e.uri }

// Dir returns the physical directory that contributed the entry.
func (e *DirEntry) Dir() string { return e.dir }

// Path returns the physical pathname of the entry.
func (e *DirEntry) Path() string { return join(e.dir, e.info.Name()) }

func (e *DirEntry) IsDir() bool                { return e.info.IsDir() }
func (e *DirEntry) Type() fs.FileMode          { return e.info.Mode().Type() }
func (e *DirEntry) Mode() fs.FileMode          { return e.info.Mode() }
func (e *DirEntry) Size() int64                { return e.info.Size() }
func (e *DirEntry) ModTime() time.Time         { return e.info.ModTime() }
func (e *DirEntry) Info() (fs.FileInfo, error) { return e.info, nil }

// Iterator lists one logical directory by walking every physical directory
// the locator resolves for it, in priority order, and skipping names that a
// higher-priority directory already produced.
//
// At most one directory handle is open at a time. It is closed when its
// directory is drained, on Rewind, on Close and when the sequence ends.
type Iterator struct {
	loc *Locator
	uri string

	state    iterState
	dirs     []string
	dirIndex int
	dir      string
	handle   fsops.DirHandle
	batch    []os.FileInfo
	batchPos int
	seen     map[string]struct{}

	cur *DirEntry
	err error
}

// NewIterator builds an iterator over uri. A nil locator is ErrInvalidUsage;
// iterators are normally obtained from (*Locator).Iterator.
func NewIterator(loc *Locator, uri string) (*Iterator, error) {
	if loc == nil {
		return nil, fmt.Errorf("%w: iterator requires a locator, use (*Locator).Iterator", ErrInvalidUsage)
	}
	it := &Iterator{loc: loc, uri: uri}
	if err := it.Rewind(); err != nil {
		return nil, err
	}
	return it, nil
}

// Iterator returns a merged directory iterator over uri.
func (l *Locator) Iterator(uri string) (*Iterator, error) {
	return NewIterator(l, uri)
}

// Rewind restarts the listing. Physical directories are resolved again, so
// registry changes since the previous pass are picked up.
func (it *Iterator) Rewind() error {
	it.closeHandle()
	it.cur = nil
	it.err = nil

	dirs, err := it.loc.ResolveAll(it.uri, LookupOptions{})
	if err != nil {
		it.state = stateExhausted
		it.err = err
		return err
	}

	it.dirs = dirs
	it.dirIndex = 0
	it.dir = ""
	it.batch = nil
	it.batchPos = 0
	it.seen = make(map[string]struct{})
	it.state = stateInitial
	return nil
}

// Next advances to the next unseen name. It returns false at the end of the
// listing or on error; check Err afterwards.
func (it *Iterator) Next() bool {
	if it.state == stateExhausted {
		return false
	}
	it.state = stateStreaming

	for {
		if it.batchPos < len(it.batch) {
			info := it.batch[it.batchPos]
			it.batchPos++

			name := info.Name()
			if name == "." || name == ".." {
				continue
			}
			if _, dup := it.seen[name]; dup {
				continue
			}
			it.seen[name] = struct{}{}
			it.cur = &DirEntry{uri: it.childURI(name), dir: it.dir, info: info}
			return true
		}

		if it.handle != nil {
			infos, err := it.handle.Readdir(readBatch)
			it.batch, it.batchPos = infos, 0
			if errors.Is(err, io.EOF) {
				it.closeHandle()
			} else if err != nil {
				it.fail(fmt.Errorf("failed to read directory %s: %w", it.dir, err))
				return false
			}
			continue
		}

		if it.dirIndex >= len(it.dirs) {
			it.finish()
			return false
		}
		dir := it.dirs[it.dirIndex]
		it.dirIndex++

		h, err := it.loc.fs.OpenDir(dir)
		if err != nil {
			if errors.Is(err, fsops.ErrNotDir) || os.IsNotExist(err) {
				log.Debug(log.CatOverlay, "skipping non-directory", "uri", it.uri, "path", dir)
				continue
			}
			it.fail(err)
			return false
		}
		it.handle = h
		it.dir = dir
	}
}

// Entry returns the entry produced by the last successful Next.
func (it *Iterator) Entry() *DirEntry {
	return it.cur
}

// Err returns the first error the iterator hit, if any.
func (it *Iterator) Err() error {
	return it.err
}

// Close releases the open directory handle and ends the listing.
func (it *Iterator) Close() error {
	err := it.closeHandle()
	it.state = stateExhausted
	it.cur = nil
	return err
}

// All returns the remaining entries as a sequence. The iterator is closed
// when the sequence ends, including when the consumer stops early.
func (it *Iterator) All() iter.Seq2[*DirEntry, error] {
	return func(yield func(*DirEntry, error) bool) {
		defer it.Close()
		for it.Next() {
			if !yield(it.Entry(), nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			yield(nil, err)
		}
	}
}

func (it *Iterator) childURI(name string) string {
	if it.uri == "" || strings.HasSuffix(it.uri, "/") {
		return it.uri + name
	}
	return it.uri + "/" + name
}

func (it *Iterator) closeHandle() error {
	if it.handle == nil {
		return nil
	}
	err := it.handle.Close()
	it.handle = nil
	return err
}

func (it *Iterator) fail(err error) {
	_ = it.closeHandle()
	it.err = err
	it.cur = nil
	it.state = stateExhausted
	log.ErrorErr(log.CatOverlay, "iteration failed", err, "uri", it.uri)
}

func (it *Iterator) finish() {
	_ = it.closeHandle()
	it.cur = nil
	it.state = stateExhausted
}
