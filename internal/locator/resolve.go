package locator

import (
	"fmt"
	"strings"

	"github.com/danieljhkim/vpath/internal/log"
)

// LookupOptions controls a resolution. The zero value asks for absolute
// paths of existing files only.
type LookupOptions struct {
	// Relative returns paths relative to base instead of absolute ones.
	Relative bool
	// IncludeMissing accepts candidates that do not exist. With Resolve it
	// yields the first candidate, which is where a new file would be created.
	IncludeMissing bool
}

// query is the internal form of a lookup.
type query struct {
	all            bool
	relative       bool
	includeMissing bool
}

// findState collects what happened during one top-level lookup.
type findState struct {
	results []string
	unsafe  bool
}

// Find resolves uri to the highest-priority existing file and returns its
// absolute path.
func (l *Locator) Find(uri string) (string, bool, error) {
	return l.Resolve(uri, LookupOptions{})
}

// Resolve returns the highest-priority physical path for uri. The boolean
// is false when nothing matched.
func (l *Locator) Resolve(uri string, opts LookupOptions) (string, bool, error) {
	paths, err := l.lookup(uri, false, opts)
	if err != nil {
		return "", false, err
	}
	if len(paths) == 0 {
		return "", false, nil
	}
	return paths[0], true, nil
}

// ResolveAll returns every physical path for uri in priority order.
func (l *Locator) ResolveAll(uri string, opts LookupOptions) ([]string, error) {
	return l.lookup(uri, true, opts)
}

func (l *Locator) lookup(uri string, all bool, opts LookupOptions) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	key := cacheKey(uri, all, opts)
	if paths, ok := l.cache.get(key); ok {
		return paths, nil
	}

	schemeName, file := ParseURI(uri)
	q := query{all: all, relative: opts.Relative, includeMissing: opts.IncludeMissing}
	st := &findState{}
	if _, err := l.find(schemeName, file, q, 0, st); err != nil {
		return nil, err
	}
	if !all && len(st.results) == 0 && st.unsafe {
		return nil, fmt.Errorf("%w: %s", ErrUnsafePath, uri)
	}

	// Stored under the read lock so a concurrent registration cannot flush
	// between computing and caching.
	l.cache.set(key, st.results)
	log.Debug(log.CatLocator, "resolved", "uri", uri, "all", all, "results", len(st.results))
	return st.results, nil
}

// find walks the prefixes and entries of a scheme. It returns true once a
// single-result lookup has its answer. The caller holds the read lock.
func (l *Locator) find(schemeName, file string, q query, depth int, st *findState) (bool, error) {
	s, ok := l.schemes[schemeName]
	if !ok {
		return false, fmt.Errorf("%w: %s%s", ErrUnknownScheme, schemeName, SchemeSeparator)
	}

	for _, prefix := range s.order {
		// Plain string prefix, not segment aware: "a" matches "abc".
		if prefix != "" && !strings.HasPrefix(file, prefix) {
			continue
		}
		rest, err := Normalize(strings.TrimLeft(file[len(prefix):], "/\\"))
		if err != nil {
			st.unsafe = true
			log.Debug(log.CatLocator, "skipping unsafe path", "scheme", schemeName, "prefix", prefix, "path", file)
			continue
		}

		for _, e := range s.prefixes[prefix] {
			var done bool
			switch e := e.(type) {
			case AliasEntry:
				if depth >= l.maxAliasDepth {
					return false, fmt.Errorf("%w: %s%s%s via %s", ErrAliasDepth, schemeName, SchemeSeparator, file, e)
				}
				done, err = l.find(e.Scheme, join(e.Path, rest), q, depth+1, st)
			case PhysicalEntry:
				done, err = l.probe(e, rest, q, st)
			}
			if err != nil {
				return false, err
			}
			if done {
				return true, nil
			}
		}
	}
	return false, nil
}

// probe checks one physical candidate and records it if accepted.
func (l *Locator) probe(e PhysicalEntry, rest string, q query, st *findState) (bool, error) {
	root := l.physicalRoot(e)
	candidate := join(root, rest)
	if !within(root, candidate) {
		st.unsafe = true
		return false, nil
	}

	// Independent of existence so a miss is never cached for a bad query.
	if q.relative && IsAbs(e.Path) {
		return false, fmt.Errorf("%w: %s", ErrAbsoluteStreamWithRelativeLookup, e.Path)
	}

	if !q.includeMissing {
		exists, err := l.fs.Exists(candidate)
		if err != nil {
			return false, fmt.Errorf("failed to check %q: %w", candidate, err)
		}
		if !exists {
			return false, nil
		}
	}

	result := candidate
	if q.relative {
		result = join(e.Path, rest)
	}

	st.results = append(st.results, result)
	return !q.all, nil
}
