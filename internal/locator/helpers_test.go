package locator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestLocator creates a locator rooted at a fresh temp directory.
func newTestLocator(t *testing.T, opts ...Option) (*Locator, string) {
	t.Helper()
	base := filepath.ToSlash(t.TempDir())
	loc, err := New(base, opts...)
	require.NoError(t, err)
	return loc, loc.Base()
}

// writeFile creates base/rel with the given content, making parents.
func writeFile(t *testing.T, base, rel, content string) string {
	t.Helper()
	p := filepath.Join(filepath.FromSlash(base), filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return filepath.ToSlash(p)
}

// mkdir creates base/rel.
func mkdir(t *testing.T, base, rel string) string {
	t.Helper()
	p := filepath.Join(filepath.FromSlash(base), filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(p, 0755))
	return filepath.ToSlash(p)
}

// themeFixture builds the default/custom theme tree used across tests:
//
//	themes/default/page.html
//	themes/default/only.html
//	themes/custom/page.html
func themeFixture(t *testing.T) (*Locator, string) {
	t.Helper()
	loc, base := newTestLocator(t)
	writeFile(t, base, "themes/default/page.html", "default")
	writeFile(t, base, "themes/default/only.html", "only")
	writeFile(t, base, "themes/custom/page.html", "custom")
	require.NoError(t, loc.AddPath("theme", "", []string{"themes/default", "themes/custom"}, AddOptions{Force: true}))
	return loc, base
}
