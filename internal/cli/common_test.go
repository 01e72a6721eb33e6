package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danieljhkim/vpath/internal/config"
)

func TestOutputJSON(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{"simple map", map[string]string{"key": "value"}},
		{"empty map", map[string]string{}},
		{"array", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := outputJSON(&buf, tt.input); err != nil {
				t.Fatalf("outputJSON() error = %v", err)
			}

			var v interface{}
			if err := json.Unmarshal(buf.Bytes(), &v); err != nil {
				t.Errorf("outputJSON() produced invalid JSON: %v", err)
			}
		})
	}
}

func TestPrintFunctions(t *testing.T) {
	var buf bytes.Buffer

	PrintSuccess(&buf, "Success message")
	PrintWarning(&buf, "Warning message")
	PrintError(&buf, "Error message")
	PrintInfo(&buf, "Info message")

	output := buf.String()
	for _, want := range []string{"✓ Success message", "⚠ Warning message", "✗ Error message", "Info message"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %q", want, output)
		}
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, []string{"NAME", "SIZE"}, [][]string{{"page.html", "12B"}, {"css/", "-"}})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, separator and 2 rows, got %q", buf.String())
	}
	if !strings.Contains(lines[1], "---------") {
		t.Errorf("separator should span the widest cell: %q", lines[1])
	}

	buf.Reset()
	PrintTable(&buf, []string{"NAME"}, nil)
	if buf.Len() != 0 {
		t.Errorf("empty table should print nothing, got %q", buf.String())
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0B"},
		{1023, "1023B"},
		{1024, "1.0K"},
		{1536, "1.5K"},
		{5 * 1024 * 1024, "5.0M"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.in); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSetupLogging(t *testing.T) {
	t.Cleanup(func() {
		if closeLog != nil {
			closeLog()
			closeLog = nil
		}
		debugLog = false
	})

	t.Run("no file leaves logging off", func(t *testing.T) {
		if err := setupLogging(config.LogConfig{Level: "info"}); err != nil {
			t.Fatalf("setupLogging() error = %v", err)
		}
		if closeLog != nil {
			t.Error("no log file should be opened")
		}
	})

	t.Run("file is created", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vpath.log")
		if err := setupLogging(config.LogConfig{Level: "debug", File: path}); err != nil {
			t.Fatalf("setupLogging() error = %v", err)
		}
		if closeLog == nil {
			t.Fatal("expected a cleanup function")
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("log file not created: %v", err)
		}
		closeLog()
		closeLog = nil
	})

	t.Run("bad level", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vpath.log")
		if err := setupLogging(config.LogConfig{Level: "loud", File: path}); err == nil {
			t.Error("expected error for unknown level")
		}
	})
}
