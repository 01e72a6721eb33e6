package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/danieljhkim/vpath/internal/config"
	"github.com/danieljhkim/vpath/internal/fsops"
	"github.com/danieljhkim/vpath/internal/locator"
)

func TestGenerateUnifiedDiff_ModifiedFile(t *testing.T) {
	diff, additions, deletions := generateUnifiedDiff(
		"test.txt",
		[]byte("line1\nline2\nline3\n"),
		[]byte("line1\nline-two\nline3\n"),
	)

	if additions != 1 {
		t.Fatalf("additions = %d, want 1", additions)
	}
	if deletions != 1 {
		t.Fatalf("deletions = %d, want 1", deletions)
	}

	checks := []string{
		"diff --git a/test.txt b/test.txt",
		"--- a/test.txt",
		"+++ b/test.txt",
		"@@ -1,3 +1,3 @@",
		" line1",
		"-line2",
		"+line-two",
		" line3",
	}
	for _, want := range checks {
		if !strings.Contains(diff, want) {
			t.Fatalf("diff missing %q:\n%s", want, diff)
		}
	}
}

func TestGenerateUnifiedDiff_EmptyShadowedCopy(t *testing.T) {
	diff, additions, deletions := generateUnifiedDiff(
		"new.txt",
		[]byte{},
		[]byte("first\nsecond\n"),
	)

	if additions != 2 {
		t.Fatalf("additions = %d, want 2", additions)
	}
	if deletions != 0 {
		t.Fatalf("deletions = %d, want 0", deletions)
	}

	checks := []string{
		"--- a/new.txt",
		"+++ b/new.txt",
		"@@ -0,0 +1,2 @@",
		"+first",
		"+second",
	}
	for _, want := range checks {
		if !strings.Contains(diff, want) {
			t.Fatalf("diff missing %q:\n%s", want, diff)
		}
	}
}

func TestGenerateUnifiedDiff_Unchanged(t *testing.T) {
	diff, additions, deletions := generateUnifiedDiff("same.txt", []byte("a\nb\n"), []byte("a\nb\n"))
	if diff != "" || additions != 0 || deletions != 0 {
		t.Errorf("generateUnifiedDiff() = %q, %d, %d, want empty", diff, additions, deletions)
	}
}

func TestGenerateUnifiedDiff_SeparateHunks(t *testing.T) {
	var oldLines, newLines []string
	for i := range 20 {
		line := "line" + string(rune('a'+i))
		oldLines = append(oldLines, line)
		newLines = append(newLines, line)
	}
	newLines[1] = "changed-b"
	newLines[17] = "changed-r"

	diff, additions, deletions := generateUnifiedDiff(
		"long.txt",
		[]byte(strings.Join(oldLines, "\n")+"\n"),
		[]byte(strings.Join(newLines, "\n")+"\n"),
	)

	if additions != 2 || deletions != 2 {
		t.Fatalf("counts = +%d -%d, want +2 -2", additions, deletions)
	}
	if got := strings.Count(diff, "\n@@ "); got != 2 {
		t.Fatalf("hunks = %d, want 2:\n%s", got, diff)
	}
	for _, want := range []string{"@@ -1,5 +1,5 @@", "@@ -15,6 +15,6 @@"} {
		if !strings.Contains(diff, want) {
			t.Errorf("diff missing %q:\n%s", want, diff)
		}
	}
	if strings.Contains(diff, " linej") {
		t.Errorf("diff includes lines outside the context window:\n%s", diff)
	}
}

func TestDiff(t *testing.T) {
	eng := newMemEngine(t)
	ctx := context.Background()

	result, err := eng.Diff(ctx, DiffRequest{URI: "theme://page.html"})
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if result.Status != statusModified {
		t.Errorf("Status = %q, want %q", result.Status, statusModified)
	}
	if result.Winner != "/site/themes/custom/page.html" {
		t.Errorf("Winner = %q", result.Winner)
	}
	if result.Shadowed != "/site/themes/default/page.html" {
		t.Errorf("Shadowed = %q", result.Shadowed)
	}
	if result.Additions != 1 || result.Deletions != 1 {
		t.Errorf("counts = +%d -%d, want +1 -1", result.Additions, result.Deletions)
	}
	for _, want := range []string{"--- a/page.html", "-default page", "+custom page"} {
		if !strings.Contains(result.UnifiedDiff, want) {
			t.Errorf("UnifiedDiff missing %q:\n%s", want, result.UnifiedDiff)
		}
	}
}

func TestDiff_Unshadowed(t *testing.T) {
	eng := newMemEngine(t)

	result, err := eng.Diff(context.Background(), DiffRequest{URI: "theme://only.html"})
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if result.Status != statusUnshadowed {
		t.Errorf("Status = %q, want %q", result.Status, statusUnshadowed)
	}
	if result.Shadowed != "" || result.UnifiedDiff != "" {
		t.Errorf("unexpected comparison in %+v", result)
	}
}

func TestDiff_Identical(t *testing.T) {
	mem := fsops.NewMemFS()
	for _, p := range []string{"/site/a/logo.svg", "/site/b/logo.svg"} {
		if err := afero.WriteFile(mem.Afero(), p, []byte("<svg/>"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := config.Config{
		Base:    "/site",
		Schemes: []config.SchemeConfig{{Name: "img", Paths: []string{"a", "b"}}},
	}
	eng, err := Setup(cfg, "", locator.WithFS(mem))
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	result, err := eng.Diff(context.Background(), DiffRequest{URI: "img://logo.svg"})
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if result.Status != statusIdentical {
		t.Errorf("Status = %q, want %q", result.Status, statusIdentical)
	}
	if result.UnifiedDiff != "" {
		t.Errorf("UnifiedDiff = %q, want empty", result.UnifiedDiff)
	}
}

func TestDiff_Errors(t *testing.T) {
	eng := newMemEngine(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  DiffRequest
		want error
	}{
		{"not found", DiffRequest{URI: "theme://nope.html"}, ErrNotFound},
		{"directory only", DiffRequest{URI: "theme://css"}, ErrNotFound},
		{"against out of range", DiffRequest{URI: "theme://page.html", Against: 2}, ErrValidation},
		{"negative against", DiffRequest{URI: "theme://page.html", Against: -1}, ErrValidation},
		{"unknown scheme", DiffRequest{URI: "nope://page.html"}, locator.ErrUnknownScheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eng.Diff(ctx, tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("Diff() error = %v, want %v", err, tt.want)
			}
		})
	}
}
