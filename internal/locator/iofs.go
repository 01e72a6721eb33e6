package locator

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
)

// FS returns a read-only io/fs view of a scheme. Names use forward slashes
// and "." is the scheme root. Files open from their highest-priority
// location; directories list as overlays. The view implements fs.StatFS,
// fs.ReadDirFS and fs.ReadFileFS, so it works with fs.WalkDir, fs.Glob and
// fs.ReadFile.
func (l *Locator) FS(schemeName string) (fs.FS, error) {
	if !l.IsKnownScheme(schemeName) {
		return nil, fmt.Errorf("%w: %s%s", ErrUnknownScheme, schemeName, SchemeSeparator)
	}
	return &schemeFS{loc: l, scheme: schemeName}, nil
}

type schemeFS struct {
	loc    *Locator
	scheme string
}

func (s *schemeFS) uri(name string) string {
	if name == "." {
		name = ""
	}
	return s.scheme + SchemeSeparator + name
}

// locate resolves name to a physical path.
func (s *schemeFS) locate(op, name string) (string, error) {
	if !fs.ValidPath(name) {
		return "", &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}
	p, ok, err := s.loc.Resolve(s.uri(name), LookupOptions{})
	if err != nil {
		return "", &fs.PathError{Op: op, Path: name, Err: err}
	}
	if !ok {
		return "", &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
	}
	return p, nil
}

// Open opens the named file or directory.
func (s *schemeFS) Open(name string) (fs.File, error) {
	p, err := s.locate("open", name)
	if err != nil {
		return nil, err
	}
	info, err := s.loc.fs.Stat(p)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	if info.IsDir() {
		it, err := s.loc.Iterator(s.uri(name))
		if err != nil {
			return nil, &fs.PathError{Op: "open", Path: name, Err: err}
		}
		return &overlayDir{name: name, info: info, it: it}, nil
	}
	f, err := s.loc.fs.Open(p)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return f, nil
}

// Stat implements fs.StatFS.
func (s *schemeFS) Stat(name string) (fs.FileInfo, error) {
	p, err := s.locate("stat", name)
	if err != nil {
		return nil, err
	}
	return s.loc.fs.Stat(p)
}

// ReadFile implements fs.ReadFileFS.
func (s *schemeFS) ReadFile(name string) ([]byte, error) {
	p, err := s.locate("readfile", name)
	if err != nil {
		return nil, err
	}
	return s.loc.fs.ReadFile(p)
}

// ReadDir implements fs.ReadDirFS. Entries are sorted by name.
func (s *schemeFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}
	it, err := s.loc.Iterator(s.uri(name))
	if err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: err}
	}
	var out []fs.DirEntry
	for e, err := range it.All() {
		if err != nil {
			return nil, &fs.PathError{Op: "readdir", Path: name, Err: err}
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// overlayDir implements fs.ReadDirFile over an Iterator.
type overlayDir struct {
	name string
	info fs.FileInfo
	it   *Iterator
}

var errIsDir = errors.New("is a directory")

func (d *overlayDir) Stat() (fs.FileInfo, error) { return d.info, nil }

func (d *overlayDir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.name, Err: errIsDir}
}

func (d *overlayDir) Close() error { return d.it.Close() }

// ReadDir follows the fs.ReadDirFile contract: with n > 0 it returns at most
// n entries and io.EOF once the listing is drained; with n <= 0 it returns
// everything left and a nil error.
func (d *overlayDir) ReadDir(n int) ([]fs.DirEntry, error) {
	var out []fs.DirEntry
	for n <= 0 || len(out) < n {
		if !d.it.Next() {
			break
		}
		out = append(out, d.it.Entry())
	}
	if err := d.it.Err(); err != nil {
		return out, err
	}
	if n > 0 && len(out) == 0 {
		return nil, io.EOF
	}
	return out, nil
}
