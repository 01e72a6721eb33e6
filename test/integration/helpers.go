package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/vpath/internal/config"
	"github.com/danieljhkim/vpath/internal/engine"
)

// site is an on-disk fixture: a base directory with files and a config file
// registering schemes over it.
type site struct {
	t      *testing.T
	base   string
	config string
}

func newSite(t *testing.T, files map[string]string) *site {
	t.Helper()
	tmp := t.TempDir()
	s := &site{
		t:      t,
		base:   filepath.Join(tmp, "site"),
		config: filepath.Join(tmp, "config.yaml"),
	}
	if err := os.MkdirAll(s.base, 0755); err != nil {
		t.Fatalf("failed to create base: %v", err)
	}
	for rel, content := range files {
		s.write(rel, content)
	}
	return s
}

// write creates or replaces a file below base.
func (s *site) write(rel, content string) {
	s.t.Helper()
	path := filepath.Join(s.base, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		s.t.Fatalf("failed to create dir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		s.t.Fatalf("failed to write %s: %v", rel, err)
	}
}

// path returns the slash-separated absolute path of rel.
func (s *site) path(rel string) string {
	return filepath.ToSlash(filepath.Join(s.base, filepath.FromSlash(rel)))
}

// engine writes the schemes section to the config file, loads it the way
// the CLI does and returns the resulting engine.
func (s *site) engine(schemes string) *engine.Engine {
	s.t.Helper()
	content := "base: " + filepath.ToSlash(s.base) + "\n" + schemes
	if err := os.WriteFile(s.config, []byte(content), 0644); err != nil {
		s.t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(s.config, false)
	if err != nil {
		s.t.Fatalf("failed to load config: %v", err)
	}
	eng, err := engine.Setup(cfg, "")
	if err != nil {
		s.t.Fatalf("failed to set up engine: %v", err)
	}
	return eng
}
