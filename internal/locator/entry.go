package locator

import (
	"fmt"
	"strings"

	"github.com/danieljhkim/vpath/internal/fsops"
)

// SchemeSeparator separates the scheme from the path in a URI.
const SchemeSeparator = "://"

// FileScheme is the built-in scheme used when a URI carries none.
const FileScheme = "file"

// Entry is one registered lookup location: a PhysicalEntry or an AliasEntry.
type Entry interface {
	// String renders the entry the way it would be registered.
	String() string
	isEntry()
}

// PhysicalEntry is a base directory on disk. A relative Path is resolved
// under the locator's base; the empty Path is the base itself.
type PhysicalEntry struct {
	Path string
}

func (PhysicalEntry) isEntry() {}

func (e PhysicalEntry) String() string { return e.Path }

// AliasEntry redirects lookups to Path inside another scheme.
type AliasEntry struct {
	Scheme string
	Path   string
}

func (AliasEntry) isEntry() {}

func (e AliasEntry) String() string { return e.Scheme + SchemeSeparator + e.Path }

// ParseURI splits uri into scheme and path. A URI without a separator
// belongs to the file scheme.
func ParseURI(uri string) (scheme, path string) {
	scheme, path, ok := strings.Cut(uri, SchemeSeparator)
	if !ok {
		return FileScheme, uri
	}
	if scheme == "" {
		scheme = FileScheme
	}
	return scheme, path
}

// ParseEntry turns a registration string into an Entry. Strings containing
// the scheme separator become aliases and must name a valid scheme.
func ParseEntry(s string) (Entry, error) {
	scheme, path, ok := strings.Cut(s, SchemeSeparator)
	if !ok {
		return PhysicalEntry{Path: s}, nil
	}
	if err := fsops.ValidateScheme(scheme); err != nil {
		return nil, fmt.Errorf("%w: alias %q: %v", ErrInvalidRegistration, s, err)
	}
	return AliasEntry{Scheme: scheme, Path: path}, nil
}

// normalizeEntry validates e and returns it with its path cleaned.
func normalizeEntry(e Entry) (Entry, error) {
	switch e := e.(type) {
	case PhysicalEntry:
		p, err := Normalize(e.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: path %q: %v", ErrInvalidRegistration, e.Path, err)
		}
		return PhysicalEntry{Path: p}, nil
	case AliasEntry:
		if err := fsops.ValidateScheme(e.Scheme); err != nil {
			return nil, fmt.Errorf("%w: alias %q: %v", ErrInvalidRegistration, e.String(), err)
		}
		if IsAbs(e.Path) {
			return nil, fmt.Errorf("%w: alias %q: path must be relative to its scheme", ErrInvalidRegistration, e.String())
		}
		p, err := Normalize(e.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: alias %q: %v", ErrInvalidRegistration, e.String(), err)
		}
		return AliasEntry{Scheme: e.Scheme, Path: p}, nil
	case nil:
		return nil, fmt.Errorf("%w: nil entry", ErrInvalidRegistration)
	default:
		return nil, fmt.Errorf("%w: unsupported entry type %T", ErrInvalidRegistration, e)
	}
}
