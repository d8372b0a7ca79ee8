package content

import (
	"strings"

	"github.com/andyrewlee/glide/internal/scroll"
)

// Frame places document lines on screen: line i is drawn at row
// OriginY + i - offset, where offset is the viewport's current scroll.
type Frame struct {
	Viewport scroll.Viewport
	OriginX  int
	OriginY  int
}

func (f Frame) offset(horizontal bool) float64 {
	if f.Viewport == nil {
		return 0
	}
	return f.Viewport.ScrollOffset(horizontal)
}

// Element is an anchor positioned in a frame.
type Element struct {
	Anchor Anchor
	doc    *Document
	frame  Frame
}

// Rect reports the anchor's on-screen position.
func (e Element) Rect() scroll.Rect {
	return scroll.Rect{
		Left:   float64(e.frame.OriginX) - e.frame.offset(true),
		Top:    float64(e.frame.OriginY+e.Anchor.Line) - e.frame.offset(false),
		Width:  float64(e.doc.LineWidth(e.Anchor.Line)),
		Height: 1,
	}
}

// Element positions anchor a in frame f.
func (d *Document) Element(a Anchor, f Frame) Element {
	return Element{Anchor: a, doc: d, frame: f}
}

// Elements lists every anchor positioned in frame f.
func (d *Document) Elements(f Frame) []scroll.Element {
	if d == nil {
		return nil
	}
	out := make([]scroll.Element, 0, len(d.Anchors))
	for _, a := range d.Anchors {
		out = append(out, d.Element(a, f))
	}
	return out
}

// Resolver returns a selector resolver over the document's anchors.
// "#slug" matches by ID, anything else matches heading text.
func (d *Document) Resolver(f Frame) scroll.Resolver {
	return scroll.ResolverFunc(func(selector string) (scroll.Element, bool) {
		if d == nil {
			return nil, false
		}
		var (
			a  Anchor
			ok bool
		)
		if id, found := strings.CutPrefix(selector, "#"); found {
			a, ok = d.AnchorByID(id)
		} else {
			a, ok = d.AnchorByTitle(selector)
		}
		if !ok {
			return nil, false
		}
		return d.Element(a, f), true
	})
}
