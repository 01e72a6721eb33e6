package engine

import "time"

// ResolveRequest represents a request to resolve a URI.
type ResolveRequest struct {
	// URI is the scheme://path to resolve
	URI string

	// All returns every match in priority order instead of the first
	All bool

	// Relative returns paths relative to the base directory
	Relative bool

	// Missing accepts candidates that do not exist on disk
	Missing bool

	// Digest adds the SHA-256 of every matched file
	Digest bool
}

// ListRequest represents a request to list a merged directory.
type ListRequest struct {
	// URI is the directory to list
	URI string

	// Recursive descends into subdirectories
	Recursive bool
}

// CatRequest represents a request to read a file through the locator.
type CatRequest struct {
	// URI is the file to read
	URI string
}

// WatchRequest represents a request to follow a URI as roots change.
type WatchRequest struct {
	// URI is re-resolved after every change
	URI string

	// All re-resolves every match instead of the first
	All bool

	// Debounce coalesces bursts of filesystem events
	Debounce time.Duration
}

// DiffRequest represents a request to compare a winning file with a copy it
// shadows.
type DiffRequest struct {
	// URI is the file to compare
	URI string

	// Against selects the shadowed copy, 1 being the next in priority order
	Against int
}
