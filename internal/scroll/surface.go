package scroll

import "github.com/andyrewlee/glide/internal/maths"

// Viewport is the scroller the controller writes offsets to.
type Viewport interface {
	// ScrollOffset returns the offset the scroller currently reports.
	ScrollOffset(horizontal bool) float64
	SetScrollOffset(horizontal bool, offset float64)
}

// Surface is an in-memory Viewport for hosts that render from an offset.
// Like a native scroller it keeps offsets inside [0, max(0, limit)].
type Surface struct {
	top  float64
	left float64

	// Limit reports the current maximum offset per axis. Nil disables clamping.
	Limit func(horizontal bool) float64
}

// ScrollOffset implements Viewport.
func (s *Surface) ScrollOffset(horizontal bool) float64 {
	if horizontal {
		return s.left
	}
	return s.top
}

// SetScrollOffset implements Viewport.
func (s *Surface) SetScrollOffset(horizontal bool, offset float64) {
	if s.Limit != nil {
		offset = maths.Clamp(0, offset, s.Limit(horizontal))
	}
	if horizontal {
		s.left = offset
	} else {
		s.top = offset
	}
}

// Line returns the integer row (or column) the surface starts at.
func (s *Surface) Line(horizontal bool) int {
	return int(s.ScrollOffset(horizontal))
}
