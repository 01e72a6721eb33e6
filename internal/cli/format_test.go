package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintTable_AlignsWideRunes(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, []string{"NAME", "PATH"}, [][]string{
		{"日本.txt", "/a"},
		{"ab", "/b"},
	})

	out := buf.String()
	for _, want := range []string{
		"  NAME      PATH\n",
		"  日本.txt  /a",
		"  ab        /b",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
