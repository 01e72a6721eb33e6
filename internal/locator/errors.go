package locator

import "errors"

var (
	// ErrUnknownScheme indicates a lookup against a scheme that was never registered.
	ErrUnknownScheme = errors.New("unknown scheme")

	// ErrInvalidRegistration indicates a malformed scheme, prefix, path or alias
	// passed to AddPath or AddEntries.
	ErrInvalidRegistration = errors.New("invalid registration")

	// ErrUnsafePath indicates a path whose ".." segments climb above its root.
	ErrUnsafePath = errors.New("unsafe path")

	// ErrAbsoluteStreamWithRelativeLookup indicates a relative result was
	// requested from an entry registered with an absolute path.
	ErrAbsoluteStreamWithRelativeLookup = errors.New("absolute stream path with relative lookup not allowed")

	// ErrInvalidUsage indicates an API used outside its contract, such as an
	// iterator built without a locator.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrAliasDepth indicates alias entries nested deeper than the configured
	// limit, which usually means an alias cycle.
	ErrAliasDepth = errors.New("alias depth exceeded")
)
