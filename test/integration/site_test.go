package integration

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/vpath/internal/config"
	"github.com/danieljhkim/vpath/internal/engine"
	"github.com/danieljhkim/vpath/internal/locator"
)

const themeSchemes = `
schemes:
  - name: theme
    paths: [themes/default, themes/custom]
  - name: theme
    prefix: admin/
    paths: [admin]
  - name: plugins
    paths: [plugins/core]
    force: true
  - name: plugins
    paths: [plugins/extra]
    mode: after
    anchor: plugins/core
    force: true
  - name: assets
    paths: ["theme://static"]
`

func themeSite(t *testing.T) *site {
	return newSite(t, map[string]string{
		"themes/default/page.html":       "default page",
		"themes/default/layout.html":     "default layout",
		"themes/default/static/site.css": "default css",
		"themes/custom/page.html":        "custom page",
		"themes/custom/static/logo.svg":  "logo",
		"admin/dashboard.html":           "admin",
		"plugins/extra/hook.php":         "extra",
	})
}

func TestSite_ResolutionOrder(t *testing.T) {
	s := themeSite(t)
	eng := s.engine(themeSchemes)
	ctx := context.Background()

	tests := []struct {
		name string
		uri  string
		all  bool
		want []string
	}{
		{"last registered theme wins", "theme://page.html", false, []string{s.path("themes/custom/page.html")}},
		{"fallthrough to default", "theme://layout.html", false, []string{s.path("themes/default/layout.html")}},
		{"all in priority order", "theme://page.html", true, []string{
			s.path("themes/custom/page.html"),
			s.path("themes/default/page.html"),
		}},
		{"longer prefix first", "theme://admin/dashboard.html", false, []string{s.path("admin/dashboard.html")}},
		{"after anchor", "plugins://hook.php", false, []string{s.path("plugins/extra/hook.php")}},
		{"alias", "assets://site.css", false, []string{s.path("themes/default/static/site.css")}},
		{"bare path is file scheme", "themes/custom/page.html", false, []string{s.path("themes/custom/page.html")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := eng.Resolve(ctx, engine.ResolveRequest{URI: tt.uri, All: tt.all})
			require.NoError(t, err)
			require.Equal(t, tt.want, result.Paths)
		})
	}

	plugins := eng.Locator().Paths("plugins")
	require.Equal(t, []locator.Entry{
		locator.PhysicalEntry{Path: "plugins/core"},
		locator.PhysicalEntry{Path: "plugins/extra"},
	}, plugins[0].Entries)
}

func TestSite_OverlayThroughIOFS(t *testing.T) {
	s := themeSite(t)
	eng := s.engine(themeSchemes)

	fsys, err := eng.Locator().FS("theme")
	require.NoError(t, err)

	var files []string
	err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"layout.html", "page.html", "static/logo.svg", "static/site.css"}, files)

	matches, err := fs.Glob(fsys, "static/*")
	require.NoError(t, err)
	sort.Strings(matches)
	require.Equal(t, []string{"static/logo.svg", "static/site.css"}, matches)

	data, err := fs.ReadFile(fsys, "page.html")
	require.NoError(t, err)
	require.Equal(t, "custom page", string(data))

	_, err = fs.ReadFile(fsys, "../secret")
	require.True(t, errors.Is(err, fs.ErrInvalid))
}

func TestSite_CacheInvalidatedByWatcher(t *testing.T) {
	s := themeSite(t)
	eng := s.engine(themeSchemes)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan *engine.ResolveResult, 8)
	done := make(chan error, 1)
	go func() {
		done <- eng.Watch(ctx, engine.WatchRequest{URI: "theme://layout.html", Debounce: 20 * time.Millisecond},
			func(r *engine.ResolveResult) error {
				results <- r
				return nil
			})
	}()

	next := func() *engine.ResolveResult {
		t.Helper()
		select {
		case r := <-results:
			return r
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for watch result")
			return nil
		}
	}

	require.Equal(t, []string{s.path("themes/default/layout.html")}, next().Paths)

	s.write("themes/custom/layout.html", "custom layout")
	require.Equal(t, []string{s.path("themes/custom/layout.html")}, next().Paths)

	cancel()
	require.NoError(t, <-done)
}

func TestSite_InvalidConfigIsRejectedWhole(t *testing.T) {
	s := themeSite(t)
	s.engine(themeSchemes)

	bad := "base: " + s.base + `
schemes:
  - name: theme
    paths: [themes/default]
    mode: before
  - name: ""
    paths: []
`
	require.NoError(t, os.WriteFile(s.config, []byte(bad), 0644))

	_, err := config.Load(s.config, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "requires an anchor")
	require.Contains(t, err.Error(), "missing name")
	require.Contains(t, err.Error(), "no paths")
}
