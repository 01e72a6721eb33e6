// Package hash provides file hashing for comparing resolved copies.
//
// When several registered locations provide the same virtual file, their
// SHA-256 digests show whether a higher-priority copy actually differs from
// the ones it shadows. Files are read through fsops.FS, so in-memory
// filesystems hash the same way as the real disk.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/danieljhkim/vpath/internal/fsops"
)

// Hasher provides an abstraction for file hashing operations.
type Hasher interface {
	// HashFile computes the hash of the file at the given path.
	HashFile(path string) (string, error)
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct {
	fs fsops.FS
}

// NewSHA256Hasher creates a hasher reading through fs.
func NewSHA256Hasher(fs fsops.FS) *SHA256Hasher {
	return &SHA256Hasher{fs: fs}
}

// HashFile computes the SHA-256 hash of the file at the given path.
func (h *SHA256Hasher) HashFile(path string) (string, error) {
	isDir, err := h.fs.IsDir(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat file: %w", err)
	}
	if isDir {
		return "", fmt.Errorf("cannot hash %s: %w", path, fsops.ErrIsDir)
	}

	file, err := h.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
