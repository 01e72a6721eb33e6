package engine

import "errors"

var (
	// ErrValidation indicates a validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a URI resolved to nothing.
	ErrNotFound = errors.New("not found")

	// ErrIsDir indicates a file operation on a directory.
	ErrIsDir = errors.New("is a directory")
)
