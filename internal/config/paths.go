// Package config manages vpath configuration and filesystem paths.
//
// Configuration lists the base directory and the scheme/prefix/path triples
// to register with the locator. The default root is ~/.vpath/ containing
// config.yaml and the optional log file; it can be moved with VPATH_ROOT.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
)

// Paths contains all the filesystem paths used by vpath.
type Paths struct {
	// Root is the base directory for vpath data (default: ~/.vpath)
	Root string

	// Config is the path to the default config file
	Config string

	// Log is the path to the default debug log file
	Log string
}

// DefaultPaths returns the default paths for vpath.
// Paths can be overridden with environment variables:
// - VPATH_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("VPATH_ROOT")
	if root == "" {
		home, err := homedir.Dir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".vpath")
	} else {
		expanded, err := homedir.Expand(root)
		if err != nil {
			return nil, fmt.Errorf("failed to expand VPATH_ROOT: %w", err)
		}
		root = expanded
	}

	return &Paths{
		Root:   root,
		Config: filepath.Join(root, "config.yaml"),
		Log:    filepath.Join(root, "vpath.log"),
	}, nil
}

// EnsureDirectories creates the root directory if it doesn't exist.
func (p *Paths) EnsureDirectories() error {
	if err := os.MkdirAll(p.Root, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", p.Root, err)
	}
	return nil
}
