package hash

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/danieljhkim/vpath/internal/fsops"
)

func TestSHA256Hasher_HashFile(t *testing.T) {
	tmpDir := t.TempDir()
	hasher := NewSHA256Hasher(fsops.NewRealFS())

	t.Run("known digest", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "test.txt")
		if err := os.WriteFile(testFile, []byte("hello world"), 0644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}

		got, err := hasher.HashFile(testFile)
		if err != nil {
			t.Fatalf("HashFile failed: %v", err)
		}

		want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
		if got != want {
			t.Errorf("HashFile = %s, want %s", got, want)
		}
	})

	t.Run("different files have different hashes", func(t *testing.T) {
		file1 := filepath.Join(tmpDir, "file1.txt")
		file2 := filepath.Join(tmpDir, "file2.txt")
		if err := os.WriteFile(file1, []byte("content A"), 0644); err != nil {
			t.Fatalf("failed to write file1: %v", err)
		}
		if err := os.WriteFile(file2, []byte("content B"), 0644); err != nil {
			t.Fatalf("failed to write file2: %v", err)
		}

		hash1, err := hasher.HashFile(file1)
		if err != nil {
			t.Fatalf("HashFile(file1) failed: %v", err)
		}
		hash2, err := hasher.HashFile(file2)
		if err != nil {
			t.Fatalf("HashFile(file2) failed: %v", err)
		}
		if hash1 == hash2 {
			t.Error("different content should produce different hashes")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := hasher.HashFile(filepath.Join(tmpDir, "nope")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("directory", func(t *testing.T) {
		_, err := hasher.HashFile(tmpDir)
		if !errors.Is(err, fsops.ErrIsDir) {
			t.Errorf("HashFile(dir) error = %v, want ErrIsDir", err)
		}
	})
}

func TestSHA256Hasher_MemFS(t *testing.T) {
	mem := fsops.NewMemFS()
	if err := afero.WriteFile(mem.Afero(), "/a/x.txt", []byte("hello world"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(mem.Afero(), "/b/x.txt", []byte("hello world"), 0644); err != nil {
		t.Fatal(err)
	}

	hasher := NewSHA256Hasher(mem)
	a, err := hasher.HashFile("/a/x.txt")
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	b, err := hasher.HashFile("/b/x.txt")
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	if a != b {
		t.Errorf("identical content should hash the same: %s vs %s", a, b)
	}
}
