package content

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/glide/internal/diff"
)

const tabWidth = 4

// Anchor is a line that can be scrolled to: a markdown heading, or a file
// or hunk header in a diff.
type Anchor struct {
	ID    string // slug, unique within the document
	Title string
	Level int
	Line  int
}

// Document is a paged text buffer.
type Document struct {
	Name    string
	Path    string // empty for command output
	Lines   []string
	Anchors []Anchor
	// Kinds classifies each line when the text is a unified diff.
	Kinds []diff.LineType

	widths   []int
	maxWidth int
}

// Parse splits text into lines, expands tabs and indexes anchors: markdown
// headings, or files and hunks when the text is a unified diff.
func Parse(name, text string) *Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")

	doc := &Document{Name: name}
	if text == "" {
		return doc
	}

	raw := strings.Split(text, "\n")
	doc.Lines = make([]string, len(raw))
	doc.widths = make([]int, len(raw))
	plain := make([]string, len(raw))

	for i, line := range raw {
		line = expandTabs(strings.TrimSuffix(line, "\r"))
		doc.Lines[i] = line
		w := ansi.StringWidth(line)
		doc.widths[i] = w
		doc.maxWidth = max(doc.maxWidth, w)
		plain[i] = ansi.Strip(line)
	}

	if diff.Detect(plain) {
		doc.indexDiff(plain)
	} else {
		doc.indexHeadings(plain)
	}
	return doc
}

func (d *Document) indexHeadings(plain []string) {
	slugs := make(map[string]int)
	fence := ""
	for i, line := range plain {
		line = strings.TrimSpace(line)
		if marker := fenceMarker(line); marker != "" {
			switch {
			case fence == "":
				fence = marker
			case strings.HasPrefix(line, fence):
				fence = ""
			}
			continue
		}
		if fence != "" {
			continue
		}
		if level, title, ok := heading(line); ok {
			d.Anchors = append(d.Anchors, Anchor{
				ID:    uniqueSlug(slugs, title),
				Title: title,
				Level: level,
				Line:  i,
			})
		}
	}
}

// indexDiff makes every file a level 1 anchor and every hunk a level 2
// anchor below it.
func (d *Document) indexDiff(plain []string) {
	files, kinds := diff.Parse(plain)
	d.Kinds = kinds
	slugs := make(map[string]int)
	for _, f := range files {
		d.Anchors = append(d.Anchors, Anchor{
			ID:    uniqueSlug(slugs, f.Path),
			Title: f.Path,
			Level: 1,
			Line:  f.Line,
		})
		for _, h := range f.Hunks {
			d.Anchors = append(d.Anchors, Anchor{
				ID:    uniqueSlug(slugs, f.Path+" L"+strconv.Itoa(h.NewStart)),
				Title: strings.TrimSpace(h.Header),
				Level: 2,
				Line:  h.Line,
			})
		}
	}
}

// Kind classifies line i of a diff document; it is diff.LineOther for
// everything else.
func (d *Document) Kind(i int) diff.LineType {
	if d == nil || i < 0 || i >= len(d.Kinds) {
		return diff.LineOther
	}
	return d.Kinds[i]
}

// IsDiff reports whether the document was recognized as a unified diff.
func (d *Document) IsDiff() bool {
	return d != nil && d.Kinds != nil
}

// Width is the widest line in cells.
func (d *Document) Width() int {
	if d == nil {
		return 0
	}
	return d.maxWidth
}

// Height is the number of lines.
func (d *Document) Height() int {
	if d == nil {
		return 0
	}
	return len(d.Lines)
}

// LineWidth returns the width of line i in cells.
func (d *Document) LineWidth(i int) int {
	if d == nil || i < 0 || i >= len(d.widths) {
		return 0
	}
	return d.widths[i]
}

// Line returns line i, or "" when out of range.
func (d *Document) Line(i int) string {
	if d == nil || i < 0 || i >= len(d.Lines) {
		return ""
	}
	return d.Lines[i]
}

// AnchorByID finds an anchor by slug.
func (d *Document) AnchorByID(id string) (Anchor, bool) {
	for _, a := range d.Anchors {
		if a.ID == id {
			return a, true
		}
	}
	return Anchor{}, false
}

// AnchorByTitle finds the first anchor whose title matches, ignoring case.
func (d *Document) AnchorByTitle(title string) (Anchor, bool) {
	title = strings.TrimSpace(title)
	for _, a := range d.Anchors {
		if strings.EqualFold(a.Title, title) {
			return a, true
		}
	}
	return Anchor{}, false
}

// NextAnchor returns the first anchor below line.
func (d *Document) NextAnchor(line int) (Anchor, bool) {
	for _, a := range d.Anchors {
		if a.Line > line {
			return a, true
		}
	}
	return Anchor{}, false
}

// PrevAnchor returns the last anchor above line.
func (d *Document) PrevAnchor(line int) (Anchor, bool) {
	for i := len(d.Anchors) - 1; i >= 0; i-- {
		if d.Anchors[i].Line < line {
			return d.Anchors[i], true
		}
	}
	return Anchor{}, false
}

// CurrentAnchor returns the last anchor at or above line.
func (d *Document) CurrentAnchor(line int) (Anchor, bool) {
	return d.PrevAnchor(line + 1)
}

func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

func fenceMarker(line string) string {
	for _, m := range []string{"```", "~~~"} {
		if strings.HasPrefix(line, m) {
			return m
		}
	}
	return ""
}

// heading parses an ATX heading such as "## Title ##".
func heading(line string) (int, string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	rest := line[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return 0, "", false
	}
	title := strings.TrimSpace(rest)
	title = strings.TrimSpace(strings.TrimRight(title, "#"))
	if title == "" {
		return 0, "", false
	}
	return level, title, true
}

// Slug lowercases title, drops punctuation and joins words with hyphens.
func Slug(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('-')
		}
	}
	return b.String()
}

func uniqueSlug(seen map[string]int, title string) string {
	base := Slug(title)
	n, ok := seen[base]
	seen[base] = n + 1
	if !ok {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
