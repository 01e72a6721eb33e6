package locator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/danieljhkim/vpath/internal/fsops"
	"github.com/danieljhkim/vpath/internal/log"
)

// DefaultMaxAliasDepth bounds alias recursion during resolution.
const DefaultMaxAliasDepth = 16

// Mode controls where newly registered entries go relative to the entries
// already registered for the same scheme and prefix.
type Mode int

const (
	// ModePrepend puts new entries first, so they win over existing ones.
	ModePrepend Mode = iota
	// ModeAppend puts new entries last, so existing ones win.
	ModeAppend
	// ModeBefore inserts new entries right before the anchor entry.
	ModeBefore
	// ModeAfter inserts new entries right after the anchor entry.
	ModeAfter
)

func (m Mode) String() string {
	switch m {
	case ModePrepend:
		return "prepend"
	case ModeAppend:
		return "append"
	case ModeBefore:
		return "before"
	case ModeAfter:
		return "after"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a mode name to a Mode. The empty string means ModePrepend.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "prepend":
		return ModePrepend, nil
	case "append":
		return ModeAppend, nil
	case "before":
		return ModeBefore, nil
	case "after":
		return ModeAfter, nil
	default:
		return ModePrepend, fmt.Errorf("unknown mode %q", s)
	}
}

// AddOptions controls a registration call.
type AddOptions struct {
	// Mode selects where the new entries go.
	Mode Mode
	// Anchor names an existing entry (as rendered by Entry.String) for
	// ModeBefore and ModeAfter.
	Anchor string
	// Force registers physical paths even when they do not exist yet.
	Force bool
}

// PrefixEntries is a snapshot of one prefix of a scheme.
type PrefixEntries struct {
	Prefix  string
	Entries []Entry
}

// Option configures a Locator.
type Option func(*Locator)

// WithFS sets the filesystem used for existence checks and directory reads.
func WithFS(fs fsops.FS) Option {
	return func(l *Locator) {
		l.fs = fs
	}
}

// WithMaxAliasDepth sets how deeply alias entries may nest.
func WithMaxAliasDepth(n int) Option {
	return func(l *Locator) {
		if n > 0 {
			l.maxAliasDepth = n
		}
	}
}

// Locator maps scheme://path identifiers onto physical locations.
type Locator struct {
	mu            sync.RWMutex
	base          string
	fs            fsops.FS
	schemes       map[string]*scheme
	cache         *resultCache
	maxAliasDepth int
}

// scheme holds the entries of one scheme keyed by prefix, together with the
// order prefixes are tried in.
type scheme struct {
	prefixes map[string][]Entry
	order    []string
	seq      map[string]int
}

func newScheme() *scheme {
	return &scheme{
		prefixes: make(map[string][]Entry),
		seq:      make(map[string]int),
	}
}

// clone deep-copies the scheme so a registration can be staged and
// committed atomically.
func (s *scheme) clone() *scheme {
	c := newScheme()
	for p, entries := range s.prefixes {
		c.prefixes[p] = append([]Entry(nil), entries...)
	}
	for p, n := range s.seq {
		c.seq[p] = n
	}
	c.order = append([]string(nil), s.order...)
	return c
}

// set stores entries under prefix and re-sorts prefixes: longest first,
// ties by first registration.
func (s *scheme) set(prefix string, entries []Entry) {
	if _, ok := s.seq[prefix]; !ok {
		s.seq[prefix] = len(s.seq)
		s.order = append(s.order, prefix)
	}
	s.prefixes[prefix] = entries
	sort.SliceStable(s.order, func(i, j int) bool {
		a, b := s.order[i], s.order[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return s.seq[a] < s.seq[b]
	})
}

// New creates a Locator rooted at base. An empty base means the current
// working directory; a relative base is made absolute. The returned locator
// knows only the built-in file scheme.
func New(base string, opts ...Option) (*Locator, error) {
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		base = wd
	}
	if !IsAbs(base) {
		abs, err := filepath.Abs(base)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve base %q: %w", base, err)
		}
		base = abs
	}
	normalized, err := Normalize(filepath.ToSlash(base))
	if err != nil {
		return nil, fmt.Errorf("invalid base %q: %w", base, err)
	}

	l := &Locator{
		base:          normalized,
		schemes:       make(map[string]*scheme),
		cache:         newResultCache(),
		maxAliasDepth: DefaultMaxAliasDepth,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.fs == nil {
		l.fs = fsops.NewRealFS()
	}
	l.seed()
	return l, nil
}

// seed registers the built-in file scheme: one entry pointing at base.
func (l *Locator) seed() {
	s := newScheme()
	s.set("", []Entry{PhysicalEntry{}})
	l.schemes[FileScheme] = s
}

// Base returns the root that relative entries resolve under.
func (l *Locator) Base() string {
	return l.base
}

// Filesystem returns the filesystem the locator probes.
func (l *Locator) Filesystem() fsops.FS {
	return l.fs
}

// Reset removes every registered scheme and clears the cache. The built-in
// file scheme is registered again.
func (l *Locator) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.schemes = make(map[string]*scheme)
	l.seed()
	l.cache.flush()
	log.Debug(log.CatLocator, "registry reset")
}

// ClearCache drops every cached resolution result.
func (l *Locator) ClearCache() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache.flush()
}

// CacheLen returns the number of cached results.
func (l *Locator) CacheLen() int {
	return l.cache.len()
}

// AddPath registers paths under scheme and prefix. Each path is either a
// filesystem path, absolute or relative to base, or a "scheme://path" alias.
func (l *Locator) AddPath(schemeName, prefix string, paths []string, opts AddOptions) error {
	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		e, err := ParseEntry(p)
		if err != nil {
			return err
		}
		entries = append(entries, e)
	}
	return l.AddEntries(schemeName, prefix, entries, opts)
}

// AddEntries registers pre-parsed entries under scheme and prefix. The call
// is all-or-nothing: on error the registry is left unchanged. Unless
// opts.Force is set, physical entries missing on disk are dropped.
// Every successful call invalidates the whole result cache.
func (l *Locator) AddEntries(schemeName, prefix string, entries []Entry, opts AddOptions) error {
	if err := fsops.ValidateScheme(schemeName); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRegistration, err)
	}
	if strings.Contains(prefix, SchemeSeparator) || stripControl(prefix) != prefix {
		return fmt.Errorf("%w: prefix %q", ErrInvalidRegistration, prefix)
	}

	list := make([]Entry, 0, len(entries))
	for _, e := range entries {
		normalized, err := normalizeEntry(e)
		if err != nil {
			return err
		}
		if pe, ok := normalized.(PhysicalEntry); ok && !opts.Force {
			exists, err := l.fs.Exists(l.physicalRoot(pe))
			if err != nil {
				return fmt.Errorf("failed to check path %q: %w", pe.Path, err)
			}
			if !exists {
				log.Debug(log.CatLocator, "dropping missing path", "scheme", schemeName, "prefix", prefix, "path", pe.Path)
				continue
			}
		}
		list = append(list, normalized)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var staged *scheme
	if s, ok := l.schemes[schemeName]; ok {
		staged = s.clone()
	} else {
		staged = newScheme()
	}

	merged, err := merge(staged.prefixes[prefix], list, opts)
	if err != nil {
		return err
	}
	staged.set(prefix, merged)

	l.schemes[schemeName] = staged
	l.cache.flush()

	log.Debug(log.CatLocator, "registered paths",
		"scheme", schemeName, "prefix", prefix, "mode", opts.Mode.String(), "added", len(list), "total", len(merged))
	return nil
}

// merge combines existing and added entries according to opts. With
// ModePrepend the result is the same as registering each added entry on its
// own, so the last argument ends up first. The other modes insert the added
// entries as one block in argument order.
func merge(existing, added []Entry, opts AddOptions) ([]Entry, error) {
	out := make([]Entry, 0, len(existing)+len(added))
	switch opts.Mode {
	case ModePrepend:
		for i := len(added) - 1; i >= 0; i-- {
			out = append(out, added[i])
		}
		return append(out, existing...), nil
	case ModeAppend:
		out = append(out, existing...)
		return append(out, added...), nil
	case ModeBefore:
		idx, err := anchorIndex(existing, opts.Anchor)
		if err != nil {
			return nil, err
		}
		out = append(out, existing[:idx]...)
		out = append(out, added...)
		return append(out, existing[idx:]...), nil
	case ModeAfter:
		idx, err := anchorIndex(existing, opts.Anchor)
		if err != nil {
			return nil, err
		}
		out = append(out, existing[:idx+1]...)
		out = append(out, added...)
		return append(out, existing[idx+1:]...), nil
	default:
		return nil, fmt.Errorf("%w: unknown mode %d", ErrInvalidRegistration, int(opts.Mode))
	}
}

// anchorIndex finds the first entry matching anchor after normalization.
func anchorIndex(entries []Entry, anchor string) (int, error) {
	parsed, err := ParseEntry(anchor)
	if err != nil {
		return 0, err
	}
	normalized, err := normalizeEntry(parsed)
	if err != nil {
		return 0, err
	}
	want := normalized.String()
	for i, e := range entries {
		if e.String() == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: anchor %q is not registered", ErrInvalidRegistration, anchor)
}

// physicalRoot returns the lookup root of a physical entry.
func (l *Locator) physicalRoot(e PhysicalEntry) string {
	if IsAbs(e.Path) {
		return e.Path
	}
	return join(l.base, e.Path)
}

// IsKnownScheme reports whether name has been registered.
func (l *Locator) IsKnownScheme(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.schemes[name]
	return ok
}

// Schemes returns the registered scheme names in sorted order.
func (l *Locator) Schemes() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.schemes))
	for name := range l.schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Paths returns the prefixes of a scheme in lookup order together with
// their entries in priority order. Unknown schemes yield nil.
func (l *Locator) Paths(schemeName string) []PrefixEntries {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s, ok := l.schemes[schemeName]
	if !ok {
		return nil
	}
	out := make([]PrefixEntries, 0, len(s.order))
	for _, p := range s.order {
		out = append(out, PrefixEntries{
			Prefix:  p,
			Entries: append([]Entry(nil), s.prefixes[p]...),
		})
	}
	return out
}

// Roots returns the distinct physical lookup roots of every scheme.
func (l *Locator) Roots() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seen := make(map[string]bool)
	var roots []string
	for _, s := range l.schemes {
		for _, entries := range s.prefixes {
			for _, e := range entries {
				pe, ok := e.(PhysicalEntry)
				if !ok {
					continue
				}
				root := l.physicalRoot(pe)
				if !seen[root] {
					seen[root] = true
					roots = append(roots, root)
				}
			}
		}
	}
	sort.Strings(roots)
	return roots
}
