// Package fsops provides the filesystem probes used by vpath.
//
// The locator never writes to disk. Everything it needs from the host
// filesystem (existence checks, stat, directory handles and whole-file reads)
// goes through the FS interface, which is backed by an afero.Fs so tests can
// swap the real disk for an in-memory tree.
//
// Key features:
//   - Existence checks that follow symlinks, like a plain stat
//   - Lazily read directory handles for overlay iteration
//   - Scheme name validation
//   - Testable via the FS interface
package fsops

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/afero"
)

// FS provides an abstraction for the read-only filesystem operations the
// locator performs.
type FS interface {
	// Stat returns file info, following symlinks.
	Stat(path string) (os.FileInfo, error)

	// Exists checks if a path exists.
	Exists(path string) (bool, error)

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) (bool, error)

	// OpenDir opens a directory for incremental reading.
	OpenDir(path string) (DirHandle, error)

	// Open opens a file for reading.
	Open(path string) (afero.File, error)

	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)
}

// DirHandle is an open directory. Readdir follows os.File semantics: with
// n > 0 it returns at most n entries and io.EOF once the directory is drained.
type DirHandle interface {
	Readdir(n int) ([]os.FileInfo, error)
	Close() error
}

var (
	// ErrNotDir is returned by OpenDir when the path is not a directory.
	ErrNotDir = errors.New("not a directory")

	// ErrIsDir is returned by file operations given a directory.
	ErrIsDir = errors.New("is a directory")
)

// AferoFS implements FS on top of an afero.Fs.
type AferoFS struct {
	fs afero.Fs
}

// New wraps the given afero filesystem.
func New(fs afero.Fs) *AferoFS {
	return &AferoFS{fs: fs}
}

// NewRealFS creates an FS backed by the operating system.
func NewRealFS() *AferoFS {
	return New(afero.NewOsFs())
}

// NewMemFS creates an FS backed by an empty in-memory tree.
func NewMemFS() *AferoFS {
	return New(afero.NewMemMapFs())
}

// Afero returns the underlying afero filesystem.
func (fs *AferoFS) Afero() afero.Fs {
	return fs.fs
}

// Stat returns file info, following symlinks.
func (fs *AferoFS) Stat(path string) (os.FileInfo, error) {
	return fs.fs.Stat(path)
}

// Exists checks if a path exists.
func (fs *AferoFS) Exists(path string) (bool, error) {
	_, err := fs.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) || isNotDirErr(err) {
		return false, nil
	}
	return false, err
}

// IsDir reports whether path exists and is a directory.
func (fs *AferoFS) IsDir(path string) (bool, error) {
	info, err := fs.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) || isNotDirErr(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// OpenDir opens a directory for incremental reading.
func (fs *AferoFS) OpenDir(path string) (DirHandle, error) {
	info, err := fs.fs.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open %s: %w", path, ErrNotDir)
	}
	f, err := fs.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}
	return f, nil
}

// Open opens a file for reading.
func (fs *AferoFS) Open(path string) (afero.File, error) {
	return fs.fs.Open(path)
}

// ReadFile reads the entire contents of a file.
func (fs *AferoFS) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(fs.fs, path)
}

// isNotDirErr reports ENOTDIR-style failures, which happen when a path
// component is a regular file. For an existence probe that means "absent".
func isNotDirErr(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return strings.Contains(pathErr.Err.Error(), "not a directory")
	}
	return false
}

// ValidateScheme validates a scheme name for safety.
// Returns an error if the name is empty, contains separators or control
// characters, or embeds a scheme delimiter.
func ValidateScheme(name string) error {
	if name == "" {
		return fmt.Errorf("invalid scheme: empty")
	}

	if strings.Contains(name, "/") || strings.Contains(name, "\\") || strings.Contains(name, ":") {
		return fmt.Errorf("invalid scheme %q: must not contain path separators or ':'", name)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return fmt.Errorf("invalid scheme %q: must not contain whitespace or control characters", name)
		}
	}

	if name == "." || name == ".." {
		return fmt.Errorf("invalid scheme %q: path traversal not allowed", name)
	}

	return nil
}
