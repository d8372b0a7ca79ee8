package pager

import (
	"github.com/andyrewlee/glide/internal/content"
	"github.com/andyrewlee/glide/internal/scroll"
	"github.com/andyrewlee/glide/internal/size"
)

const (
	headerRows    = 1
	statusRows    = 1
	scrollbarCols = 1
	tocMinWidth   = 16
	tocMaxWidth   = 32
	horizontalCol = 4
)

// body is the scroll container: the rows between header and status line.
// It reports its own rect so anchor positions are measured from its origin.
type body struct {
	scroll.Surface
	*size.Observed
	originX int
	originY int
}

func newBody() *body {
	return &body{Observed: size.NewObserved(0, 0), originY: headerRows}
}

// Rect implements scroll.Element.
func (b *body) Rect() scroll.Rect {
	return scroll.Rect{
		Left:   float64(b.originX),
		Top:    float64(b.originY),
		Width:  float64(b.Width()),
		Height: float64(b.Height()),
	}
}

func (b *body) frame() content.Frame {
	return content.Frame{Viewport: b, OriginX: b.originX, OriginY: b.originY}
}

// tocWidth returns the sidebar width for a terminal width, or 0 when hidden.
func (m *Model) tocWidth() int {
	if !m.showTOC || m.doc == nil || len(m.doc.Anchors) == 0 {
		return 0
	}
	w := m.width / 4
	if w < tocMinWidth {
		return 0
	}
	return min(w, tocMaxWidth)
}

func (m *Model) bodyWidth() int {
	return max(0, m.width-scrollbarCols-m.tocWidth())
}

func (m *Model) bodyHeight() int {
	return max(0, m.height-headerRows-statusRows)
}

// relayout resizes the body after a window, document or sidebar change and
// resynchronizes the controller with the clamped offsets.
func (m *Model) relayout() {
	m.body.Set(m.bodyWidth(), m.bodyHeight())
	m.syncContentSize()
	for _, horizontal := range []bool{false, true} {
		m.body.SetScrollOffset(horizontal, m.body.ScrollOffset(horizontal))
	}
	m.tocTop = max(0, min(m.tocTop, m.tocLimit()))
	m.controller.OnNativeScroll()
	m.updateThumb(true)
}

// syncContentSize reports the document extent to the controller. An
// infinite vertical pager appends one body of wrapped rows, so the wrap
// period equals the document length and every line comes into view.
func (m *Model) syncContentSize() {
	if m.doc == nil {
		m.contentSize.Set(0, 0)
		return
	}
	h := m.doc.Height()
	if h > 0 && m.controller.Infinite() && !m.controller.IsHorizontal() {
		h += m.bodyHeight()
	}
	m.contentSize.Set(m.doc.Width(), h)
}

func (m *Model) limit(horizontal bool) float64 {
	if horizontal {
		return float64(max(0, m.contentSize.Width()-m.body.Width()))
	}
	return float64(max(0, m.contentSize.Height()-m.body.Height()))
}

func (m *Model) tocRows() int {
	return max(0, m.bodyHeight()-1)
}

func (m *Model) tocLimit() int {
	if m.doc == nil {
		return 0
	}
	return max(0, len(m.doc.Anchors)-m.tocRows())
}

// tocEntryAt maps a screen cell to a TOC entry index.
func (m *Model) tocEntryAt(x, y int) (int, bool) {
	w := m.tocWidth()
	if w == 0 {
		return 0, false
	}
	left := m.width - w
	if x < left || x >= m.width {
		return 0, false
	}
	row := y - headerRows - 1 // title row
	if row < 0 || row >= m.tocRows() {
		return 0, false
	}
	idx := m.tocTop + row
	if idx >= len(m.doc.Anchors) {
		return 0, false
	}
	return idx, true
}
