// Package diff recognizes unified diff output (git diff, diff -u) so the
// pager can navigate it by file and hunk.
package diff

import (
	"strings"
)

// LineType identifies diff line type.
type LineType int

const (
	LineOther   LineType = iota // outside any file
	LineHeader                  // "diff --git" and the ---/+++ pair
	LineMeta                    // index, mode and rename lines
	LineHunk                    // "@@ -a,b +c,d @@"
	LineAdd
	LineDel
	LineContext
	LineComment // "\ No newline at end of file"
)

// Hunk is one "@@" section.
type Hunk struct {
	Line     int // index of the @@ line
	Header   string
	OldStart int
	NewStart int
}

// File represents a file diff.
type File struct {
	Path    string
	Line    int // index of the first header line
	Added   int
	Deleted int
	Hunks   []Hunk
}

// Detect reports whether lines start like a unified diff. Leading blank
// lines and commit headers (git show, git log -p) are skipped.
func Detect(lines []string) bool {
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "diff --git "):
			return true
		case strings.HasPrefix(line, "--- ") && i+1 < len(lines) && strings.HasPrefix(lines[i+1], "+++ "):
			return true
		}
	}
	return false
}

// Parse classifies every line and groups them into files. lines must not
// carry ANSI escapes.
func Parse(lines []string) ([]File, []LineType) {
	types := make([]LineType, len(lines))
	var files []File
	var current *File
	inHunk := false

	flush := func() {
		if current != nil {
			files = append(files, *current)
		}
		current = nil
		inHunk = false
	}
	begin := func(i int) {
		flush()
		current = &File{Line: i}
	}

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "diff --git "):
			begin(i)
			current.Path = gitPath(line)
			types[i] = LineHeader
			continue
		case strings.HasPrefix(line, "--- ") && i+1 < len(lines) && strings.HasPrefix(lines[i+1], "+++ ") &&
			(current == nil || inHunk):
			// plain diff -u output has no "diff --git" line
			begin(i)
		}
		if current == nil {
			continue
		}

		switch {
		case strings.HasPrefix(line, "@@ "):
			oldStart, newStart := parseHunkHeader(line)
			current.Hunks = append(current.Hunks, Hunk{Line: i, Header: line, OldStart: oldStart, NewStart: newStart})
			types[i] = LineHunk
			inHunk = true
		case !inHunk && strings.HasPrefix(line, "--- "):
			if current.Path == "" {
				current.Path = headerPath(line, "--- ", "a/")
			}
			types[i] = LineHeader
		case !inHunk && strings.HasPrefix(line, "+++ "):
			if p := headerPath(line, "+++ ", "b/"); p != "/dev/null" {
				current.Path = p
			}
			types[i] = LineHeader
		case !inHunk:
			types[i] = LineMeta
		case strings.HasPrefix(line, "+"):
			current.Added++
			types[i] = LineAdd
		case strings.HasPrefix(line, "-"):
			current.Deleted++
			types[i] = LineDel
		case strings.HasPrefix(line, `\`):
			types[i] = LineComment
		case strings.HasPrefix(line, " ") || line == "":
			types[i] = LineContext
		default:
			// commit header of the next patch in git log -p
			flush()
		}
	}
	flush()
	return files, types
}

// gitPath extracts the b/ path from "diff --git a/x b/x".
func gitPath(line string) string {
	rest := strings.TrimPrefix(line, "diff --git ")
	if idx := strings.LastIndex(rest, " b/"); idx >= 0 {
		return rest[idx+3:]
	}
	return rest
}

func headerPath(line, marker, prefix string) string {
	path := strings.TrimPrefix(line, marker)
	if tab := strings.IndexByte(path, '\t'); tab >= 0 {
		path = path[:tab] // diff -u appends a timestamp
	}
	return strings.TrimPrefix(path, prefix)
}

func parseHunkHeader(line string) (int, int) {
	// @@ -a,b +c,d @@
	parts := strings.Split(line, " ")
	if len(parts) < 3 {
		return 0, 0
	}
	oldStart := parseHunkPos(strings.TrimPrefix(parts[1], "-"))
	newStart := parseHunkPos(strings.TrimPrefix(parts[2], "+"))
	return oldStart, newStart
}

func parseHunkPos(part string) int {
	fields := strings.Split(part, ",")
	if len(fields) == 0 {
		return 0
	}
	return atoi(fields[0])
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
