package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/danieljhkim/vpath/internal/locator"
)

const (
	statusModified   = "modified"
	statusIdentical  = "identical"
	statusUnshadowed = "unshadowed"

	diffContextLines = 3
)

// Diff compares the copy of a file that wins resolution with a copy further
// down the priority order. Directories among the matches are skipped.
func (e *Engine) Diff(ctx context.Context, req DiffRequest) (*DiffResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	against := req.Against
	if against == 0 {
		against = 1
	}
	if against < 0 {
		return nil, fmt.Errorf("%w: against must be positive, got %d", ErrValidation, against)
	}

	all, err := e.loc.ResolveAll(req.URI, locator.LookupOptions{})
	if err != nil {
		return nil, err
	}
	files, err := e.regularFiles(all)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, req.URI)
	}

	result := &DiffResult{URI: req.URI, Winner: files[0]}
	if len(files) == 1 {
		result.Status = statusUnshadowed
		return result, nil
	}
	if against >= len(files) {
		return nil, fmt.Errorf("%w: %s has %d shadowed copies", ErrValidation, req.URI, len(files)-1)
	}
	result.Shadowed = files[against]

	winnerSum, err := e.hasher.HashFile(result.Winner)
	if err != nil {
		return nil, err
	}
	shadowedSum, err := e.hasher.HashFile(result.Shadowed)
	if err != nil {
		return nil, err
	}
	if winnerSum == shadowedSum {
		result.Status = statusIdentical
		return result, nil
	}

	fsys := e.loc.Filesystem()
	oldContent, err := fsys.ReadFile(result.Shadowed)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", result.Shadowed, err)
	}
	newContent, err := fsys.ReadFile(result.Winner)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", result.Winner, err)
	}

	_, name := locator.ParseURI(req.URI)
	result.Status = statusModified
	result.UnifiedDiff, result.Additions, result.Deletions = generateUnifiedDiff(name, oldContent, newContent)
	return result, nil
}

func (e *Engine) regularFiles(paths []string) ([]string, error) {
	files := make([]string, 0, len(paths))
	for _, p := range paths {
		isDir, err := e.loc.Filesystem().IsDir(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !isDir {
			files = append(files, p)
		}
	}
	return files, nil
}

// diffLine is one line of a line-level edit script.
type diffLine struct {
	op   byte // ' ', '-' or '+'
	text string
}

// generateUnifiedDiff renders a git-style patch turning oldContent into
// newContent.
func generateUnifiedDiff(name string, oldContent, newContent []byte) (string, int, int) {
	lines := lineDiff(string(oldContent), string(newContent))

	additions, deletions := 0, 0
	for _, l := range lines {
		switch l.op {
		case '+':
			additions++
		case '-':
			deletions++
		}
	}
	if additions == 0 && deletions == 0 {
		return "", 0, 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", name, name)
	fmt.Fprintf(&b, "--- a/%s\n", name)
	fmt.Fprintf(&b, "+++ b/%s\n", name)
	writeHunks(&b, lines)

	return b.String(), additions, deletions
}

func lineDiff(oldText, newText string) []diffLine {
	dmp := diffmatchpatch.New()
	a, b, index := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), index)

	var lines []diffLine
	for _, d := range diffs {
		var op byte
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = '+'
		case diffmatchpatch.DiffDelete:
			op = '-'
		default:
			op = ' '
		}
		for _, text := range splitLines(d.Text) {
			lines = append(lines, diffLine{op: op, text: text})
		}
	}
	return lines
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.SplitAfter(s, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\n")
	}
	return parts
}

// writeHunks groups changed lines with diffContextLines of context on each
// side. Changes closer than twice the context share a hunk.
func writeHunks(b *strings.Builder, lines []diffLine) {
	// oldPos[i] and newPos[i] count the lines of each side before lines[i].
	oldPos := make([]int, len(lines)+1)
	newPos := make([]int, len(lines)+1)
	var changes []int
	for i, l := range lines {
		oldPos[i+1], newPos[i+1] = oldPos[i], newPos[i]
		if l.op != '+' {
			oldPos[i+1]++
		}
		if l.op != '-' {
			newPos[i+1]++
		}
		if l.op != ' ' {
			changes = append(changes, i)
		}
	}

	for i := 0; i < len(changes); {
		last := changes[i]
		j := i + 1
		for j < len(changes) && changes[j]-last <= 2*diffContextLines {
			last = changes[j]
			j++
		}

		start := max(changes[i]-diffContextLines, 0)
		end := min(last+diffContextLines+1, len(lines))

		oldCount := oldPos[end] - oldPos[start]
		newCount := newPos[end] - newPos[start]
		fmt.Fprintf(b, "@@ -%d,%d +%d,%d @@\n",
			hunkStart(oldPos[start], oldCount), oldCount,
			hunkStart(newPos[start], newCount), newCount)
		for _, l := range lines[start:end] {
			b.WriteByte(l.op)
			b.WriteString(l.text)
			b.WriteByte('\n')
		}

		i = j
	}
}

// hunkStart converts a zero-based offset into the 1-based line number a hunk
// header uses. An empty range keeps the offset of the line it follows.
func hunkStart(offset, count int) int {
	if count == 0 {
		return offset
	}
	return offset + 1
}
