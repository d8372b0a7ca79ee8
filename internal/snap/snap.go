// Package snap settles the scroll position onto nearby anchors once
// scrolling comes to rest.
package snap

import (
	"math"

	"github.com/andyrewlee/glide/internal/emitter"
	"github.com/andyrewlee/glide/internal/scroll"
	"github.com/andyrewlee/glide/internal/size"
)

// restVelocity is the speed below which the scroll is considered at rest.
const restVelocity = 0.1

// Source lists the current snap anchors.
type Source func() []scroll.Element

// Snap listens to a controller and scrolls to the closest anchor.
type Snap struct {
	controller *scroll.Controller
	source     Source
	viewport   size.Provider

	elements []scroll.Element
	sub      emitter.Subscription
}

// New attaches a snap consumer to c. viewport bounds how far an anchor may
// be from the viewport edge; if it also implements scroll.Element its edge
// is used as the alignment origin.
func New(c *scroll.Controller, source Source, viewport size.Provider) *Snap {
	s := &Snap{
		controller: c,
		source:     source,
		viewport:   viewport,
	}
	s.Refresh()
	s.sub = c.On(scroll.EventScroll, s.onScroll)
	return s
}

// Refresh re-reads the anchor list, e.g. after the content changed.
func (s *Snap) Refresh() {
	if s.source == nil {
		s.elements = nil
		return
	}
	s.elements = s.source()
}

// Destroy detaches from the controller.
func (s *Snap) Destroy() {
	s.controller.Off(s.sub)
	s.elements = nil
}

// Closest returns the anchor nearest the viewport edge within one viewport,
// with its distance.
func (s *Snap) Closest() (scroll.Element, float64, bool) {
	horizontal := s.controller.IsHorizontal()
	origin := 0.0
	if el, ok := s.viewport.(scroll.Element); ok {
		r := el.Rect()
		origin = r.Top
		if horizontal {
			origin = r.Left
		}
	}
	reach := float64(s.viewport.Height())
	if horizontal {
		reach = float64(s.viewport.Width())
	}

	var best scroll.Element
	bestDist := math.Inf(1)
	for _, el := range s.elements {
		r := el.Rect()
		edge := r.Top
		if horizontal {
			edge = r.Left
		}
		dist := math.Abs(edge - origin)
		if dist >= reach || dist >= bestDist {
			continue
		}
		best = el
		bestDist = dist
	}
	return best, bestDist, best != nil
}

func (s *Snap) onScroll(state scroll.State) {
	if math.Abs(state.Velocity) > restVelocity {
		return
	}
	el, dist, ok := s.Closest()
	if !ok || dist < 1 {
		return
	}
	s.controller.ScrollTo(el, scroll.ScrollToOptions{})
}
