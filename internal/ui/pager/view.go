package pager

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/andyrewlee/glide/internal/diff"
	"github.com/andyrewlee/glide/internal/keymap"
	"github.com/andyrewlee/glide/internal/maths"
	"github.com/andyrewlee/glide/internal/perf"
	"github.com/andyrewlee/glide/internal/ui/common"
)

// View renders the pager
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	if m.doc != nil {
		view.WindowTitle = "glide: " + m.doc.Name
	}
	view.SetContent(m.zones.Scan(m.render()))
	return view
}

func (m *Model) render() string {
	defer perf.Time("pager.render")()
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	rows := make([]string, 0, m.height)
	rows = append(rows, m.renderHeader())
	rows = append(rows, m.renderMain()...)
	rows = append(rows, m.renderStatus())
	return strings.Join(rows, "\n")
}

func (m *Model) renderHeader() string {
	name := "glide"
	if m.doc != nil {
		name = m.doc.Name
	}
	right := m.styles.Percent.Render(fmt.Sprintf("%3.0f%%", m.percent()))
	leftWidth := max(0, m.width-lipgloss.Width(right)-1)
	left := m.styles.Title.Render(runewidth.Truncate(name, leftWidth, "…"))
	return m.styles.Header.Width(m.width).Render(joinEnds(left, right, m.width))
}

// percent is the vertical reading position.
func (m *Model) percent() float64 {
	if m.controller.IsHorizontal() {
		limit := m.limit(false)
		if limit <= 0 {
			return 100
		}
		return 100 * m.body.ScrollOffset(false) / limit
	}
	if m.controller.Limit() <= 0 {
		return 100
	}
	return 100 * m.controller.Progress()
}

func (m *Model) renderMain() []string {
	h := m.bodyHeight()
	bodyW := m.bodyWidth()

	var bodyRows []string
	switch {
	case m.err != nil:
		bodyRows = placeholder(m.styles.ToastError.Render("error: "+m.err.Error()), bodyW, h)
	case m.loading || m.doc == nil:
		bodyRows = placeholder(m.styles.Muted.Render("loading…"), bodyW, h)
	default:
		bodyRows = m.renderBody(bodyW, h)
	}

	if m.showHelp {
		help := common.RenderHelp(m.styles, m.keys, bodyW)
		placed := lipgloss.Place(bodyW, h, lipgloss.Center, lipgloss.Center, help)
		bodyRows = strings.Split(placed, "\n")
	}

	bar := m.renderScrollbar(h)
	toc := m.renderTOC(h)

	rows := make([]string, h)
	for i := range h {
		row := pad(cell(bodyRows, i), bodyW) + cell(bar, i)
		if toc != nil {
			row += toc[i]
		}
		rows[i] = row
	}
	return rows
}

func (m *Model) renderBody(width, height int) []string {
	rows := make([]string, height)
	total := m.doc.Height()
	if total == 0 {
		rows[0] = m.styles.Muted.Render("(empty)")
		return rows
	}
	top := m.body.Line(false)
	left := m.body.Line(true)
	infinite := m.controller.Infinite() && !m.controller.IsHorizontal()

	for i := range height {
		idx := top + i
		if infinite {
			idx = int(maths.ClampedModulo(float64(idx), float64(total)))
		} else if idx >= total {
			rows[i] = m.styles.Gutter.Render("~")
			continue
		}
		rows[i] = m.styleLine(idx, ansi.Cut(m.doc.Line(idx), left, left+width))
	}
	return rows
}

// styleLine colors headings and diff lines. Lines that arrive with their
// own escapes (git diff --color) are left alone.
func (m *Model) styleLine(idx int, line string) string {
	if m.doc.IsDiff() {
		plain := ansi.Strip(line)
		if plain != line {
			return line
		}
		switch m.doc.Kind(idx) {
		case diff.LineHeader:
			return m.styles.DiffHeader.Render(line)
		case diff.LineHunk:
			return m.styles.DiffHunk.Render(line)
		case diff.LineAdd:
			return m.styles.DiffAdd.Render(line)
		case diff.LineDel:
			return m.styles.DiffDel.Render(line)
		case diff.LineMeta, diff.LineComment:
			return m.styles.Muted.Render(line)
		}
		return line
	}
	if a, ok := m.headingAt[idx]; ok {
		return m.styles.HeadingStyle(a.Level).Render(ansi.Strip(line))
	}
	return line
}

func (m *Model) renderScrollbar(height int) []string {
	bar := make([]string, height)
	total := 0
	if m.doc != nil {
		total = m.doc.Height()
	}
	thumb, ok := thumbSize(height, total)
	start := int(maths.Round(m.thumb.pos))
	for i := range height {
		if ok && i >= start && i < start+thumb {
			bar[i] = m.styles.Thumb.Render("┃")
		} else {
			bar[i] = m.styles.Track.Render("│")
		}
	}
	return bar
}

func (m *Model) renderTOC(height int) []string {
	w := m.tocWidth()
	if w == 0 {
		return nil
	}
	inner := max(1, w-m.styles.TOC.GetHorizontalFrameSize())
	current, hasCurrent := m.doc.CurrentAnchor(m.topLine())

	lines := make([]string, 0, height)
	lines = append(lines, m.styles.TOCTitle.Render("Contents"))
	for i := m.tocTop; i < len(m.doc.Anchors) && len(lines) < height; i++ {
		a := m.doc.Anchors[i]
		text := strings.Repeat("  ", max(0, a.Level-1)) + a.Title
		text = runewidth.Truncate(text, inner, "…")
		style := m.styles.TOCEntry
		if hasCurrent && a.ID == current.ID {
			style = m.styles.TOCActive
		}
		lines = append(lines, style.Render(text))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	rendered := strings.Split(m.styles.TOC.Render(strings.Join(lines, "\n")), "\n")
	out := make([]string, height)
	for i := range out {
		out[i] = pad(cell(rendered, i), w)
	}
	// Mark after padding so truncation cannot drop the zone markers.
	return strings.Split(m.zones.Mark(tocZone, strings.Join(out, "\n")), "\n")
}

func (m *Model) renderStatus() string {
	f := m.controller.Flags()
	flag := func(name string, on bool) string {
		if on {
			return m.styles.FlagOn.Render(name)
		}
		return m.styles.FlagOff.Render(name)
	}
	left := strings.Join([]string{
		flag("smooth", f.Smooth),
		flag("scrolling", f.Scrolling),
		flag("locked", f.Locked),
		flag("stopped", f.Stopped),
	}, " ")

	right := m.toast.View()
	if right == "" {
		right = m.styles.Muted.Render(keymap.BindingHint(m.keys.Help) + " help  " + keymap.BindingHint(m.keys.Quit) + " quit")
	}
	return m.styles.Status.Width(m.width).Render(joinEnds(left, right, m.width))
}

// joinEnds places left and right at either end of width cells.
func joinEnds(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return ansi.Truncate(left+" "+right, width, "")
	}
	return left + strings.Repeat(" ", gap) + right
}

func placeholder(msg string, width, height int) []string {
	if height <= 0 {
		return nil
	}
	rows := make([]string, height)
	rows[0] = ansi.Truncate(" "+msg, width, "…")
	return rows
}

func pad(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}

func cell(rows []string, i int) string {
	if i < 0 || i >= len(rows) {
		return ""
	}
	return rows[i]
}
