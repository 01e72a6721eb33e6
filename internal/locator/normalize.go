package locator

import (
	"fmt"
	"strings"
	"unicode"
)

// SplitRoot splits p into its root and the remainder. The root is "/" for
// Unix-style absolute paths, "C:/" (any drive letter) for Windows-style ones
// and "" for relative paths. Backslashes are treated as separators.
func SplitRoot(p string) (root, rest string) {
	p = strings.ReplaceAll(p, "\\", "/")
	if strings.HasPrefix(p, "/") {
		return "/", strings.TrimLeft(p, "/")
	}
	if len(p) >= 2 && p[1] == ':' && isDriveLetter(p[0]) {
		return strings.ToUpper(p[:1]) + ":/", strings.TrimLeft(p[2:], "/")
	}
	return "", p
}

// IsAbs reports whether p carries a root.
func IsAbs(p string) bool {
	root, _ := SplitRoot(p)
	return root != ""
}

// Normalize cleans a path without touching the filesystem. Control
// characters are stripped, backslashes become slashes, empty and "."
// segments are dropped and ".." removes the previous segment. The root, if
// any, is kept and trailing slashes are removed.
//
// A ".." that would climb above the start of a relative path, or above the
// root of an absolute one, yields ErrUnsafePath.
func Normalize(p string) (string, error) {
	root, rest := SplitRoot(stripControl(p))

	segs := make([]string, 0, strings.Count(rest, "/")+1)
	for _, seg := range strings.Split(rest, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(segs) == 0 {
				return "", fmt.Errorf("%w: %q escapes its root", ErrUnsafePath, p)
			}
			segs = segs[:len(segs)-1]
		default:
			segs = append(segs, seg)
		}
	}

	return root + strings.Join(segs, "/"), nil
}

// within reports whether candidate lies at or below root. Both must be
// normalized.
func within(root, candidate string) bool {
	r1, _ := SplitRoot(root)
	r2, _ := SplitRoot(candidate)
	if r1 != r2 {
		return false
	}
	if root == candidate || root == "" || root == r1 {
		return true
	}
	return strings.HasPrefix(candidate, root+"/")
}

// join concatenates two normalized path pieces with a single slash.
func join(a, b string) string {
	switch {
	case b == "":
		return a
	case a == "":
		return b
	case strings.HasSuffix(a, "/"):
		return a + b
	default:
		return a + "/" + b
	}
}

func stripControl(s string) string {
	if strings.IndexFunc(s, unicode.IsControl) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
