// Package locator resolves scheme://path identifiers to physical files.
//
// A Locator owns a registry of schemes. Each scheme maps path prefixes to an
// ordered list of entries; an entry is either a physical base directory
// (absolute, or relative to the locator's base) or an alias to another
// scheme. Resolution walks the prefixes of a scheme from most to least
// specific and the entries of each prefix in priority order, so a file placed
// in a higher-priority directory shadows the same file further down.
//
// Key components:
//   - Locator: registration (AddPath, AddEntries), resolution (Resolve,
//     ResolveAll, Find) and the per-query result cache
//   - Iterator: a merged directory listing over every physical directory a
//     logical path resolves to, first occurrence wins
//   - Walk and FS: recursive descent and a read-only io/fs view built on the
//     iterator
//   - Normalize and SplitRoot: pure path cleaning with traversal rejection
//
// Registration invalidates the whole result cache. Resolution never touches
// the registry and may run concurrently; registration takes an exclusive lock.
package locator
