package pager

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	thumbFrequency = 9.0
	thumbDamping   = 0.9
	thumbEpsilon   = 0.01
)

// scrollbar eases the thumb towards its target row with a spring.
type scrollbar struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

func newScrollbar(fps int) scrollbar {
	if fps <= 0 {
		fps = 60
	}
	return scrollbar{spring: harmonica.NewSpring(harmonica.FPS(fps), thumbFrequency, thumbDamping)}
}

func (s *scrollbar) setTarget(target float64) {
	s.target = target
}

// jump places the thumb on its target without animating.
func (s *scrollbar) jump() {
	s.pos = s.target
	s.vel = 0
}

func (s *scrollbar) step() {
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if s.settled() {
		s.jump()
	}
}

func (s *scrollbar) settled() bool {
	return math.Abs(s.pos-s.target) < thumbEpsilon && math.Abs(s.vel) < thumbEpsilon
}

// thumbSize returns the thumb length for a track of height rows over
// content of total rows, at least one row. ok is false when everything fits.
func thumbSize(height, total int) (int, bool) {
	if height <= 0 || total <= height {
		return 0, false
	}
	return max(1, height*height/total), true
}
