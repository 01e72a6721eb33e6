package engine

import "time"

// ResolveResult represents the physical paths of a URI.
type ResolveResult struct {
	// URI is the requested URI
	URI string `json:"uri"`

	// Paths holds the matches in priority order
	Paths []string `json:"paths"`

	// Found is false when nothing matched
	Found bool `json:"found"`

	// Digests maps matched files to their SHA-256, when requested
	Digests map[string]string `json:"digests,omitempty"`
}

// ListEntry is one entry of a merged directory listing.
type ListEntry struct {
	// Name is the base name of the entry
	Name string `json:"name"`

	// URI is the virtual path of the entry
	URI string `json:"uri"`

	// Path is the physical path of the copy that won
	Path string `json:"path"`

	// Dir reports whether the entry is a directory
	Dir bool `json:"dir"`

	// Size is the size in bytes of the winning copy
	Size int64 `json:"size"`

	// ModTime is the modification time of the winning copy
	ModTime time.Time `json:"modTime"`
}

// ListResult represents a merged directory listing.
type ListResult struct {
	// URI is the listed directory
	URI string `json:"uri"`

	// Entries are listed in overlay order: first-registered directory first
	Entries []ListEntry `json:"entries"`
}

// CatResult represents the contents of a file read through the locator.
type CatResult struct {
	// URI is the requested URI
	URI string `json:"uri"`

	// Path is the physical file that was read
	Path string `json:"path"`

	// Data is the file content
	Data []byte `json:"data"`
}

// PrefixInfo describes one prefix of a scheme.
type PrefixInfo struct {
	// Prefix is the path prefix, empty for the scheme root
	Prefix string `json:"prefix"`

	// Entries are the registered paths and aliases in priority order
	Entries []string `json:"entries"`
}

// SchemeInfo describes one registered scheme.
type SchemeInfo struct {
	// Name is the scheme name
	Name string `json:"name"`

	// Prefixes are listed in lookup order
	Prefixes []PrefixInfo `json:"prefixes"`
}

// SchemesResult represents the whole registry.
type SchemesResult struct {
	// Base is the directory relative entries resolve under
	Base string `json:"base"`

	// Schemes are sorted by name
	Schemes []SchemeInfo `json:"schemes"`
}

// DiffResult represents the comparison of the winning copy of a file with
// one of the copies it shadows.
type DiffResult struct {
	// URI is the compared file
	URI string `json:"uri"`

	// Status is "modified", "identical" or "unshadowed"
	Status string `json:"status"`

	// Winner is the physical path Find returns
	Winner string `json:"winner"`

	// Shadowed is the lower-priority copy, empty when unshadowed
	Shadowed string `json:"shadowed,omitempty"`

	// UnifiedDiff goes from the shadowed copy to the winner
	UnifiedDiff string `json:"unified_diff,omitempty"`

	// Additions counts lines only the winner has
	Additions int `json:"additions"`

	// Deletions counts lines only the shadowed copy has
	Deletions int `json:"deletions"`
}
