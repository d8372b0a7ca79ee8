// Package input converts raw pointer input into uniform scroll deltas.
package input

import (
	"github.com/andyrewlee/glide/internal/emitter"
	"github.com/andyrewlee/glide/internal/maths"
)

// Kind identifies the device class a delta came from.
type Kind string

const (
	KindWheel Kind = "wheel"
	KindTouch Kind = "touch"
)

// PreventAttribute marks a node whose subtree handles its own scrolling.
const PreventAttribute = "glide-prevent"

const eventScroll = "scroll"

// Node is an element on the path from the pointer to the root.
type Node interface {
	HasAttribute(name string) bool
}

// Event is the source event behind a delta.
type Event interface {
	// ZoomModifier reports a pinch/zoom modifier (ctrl) on the event.
	ZoomModifier() bool
	// Path lists the nodes under the pointer, innermost first.
	Path() []Node
	// PreventDefault suppresses the host's native handling.
	PreventDefault()
	DefaultPrevented() bool
}

// Delta is one normalized input notification.
type Delta struct {
	Kind   Kind
	DeltaX float64
	DeltaY float64
	Event  Event
}

// Options tunes delta scaling.
type Options struct {
	WheelMultiplier float64
	TouchMultiplier float64
	// NormalizeWheel clamps raw wheel deltas to ±100 before scaling.
	NormalizeWheel bool
	// WheelStep is the raw delta reported for one wheel notch.
	WheelStep float64
}

// DefaultOptions returns the standard multipliers.
func DefaultOptions() Options {
	return Options{
		WheelMultiplier: 1,
		TouchMultiplier: 2,
		NormalizeWheel:  true,
		WheelStep:       3,
	}
}

// Normalizer emits Delta notifications for wheel and touch input.
type Normalizer struct {
	opts    Options
	emitter *emitter.Emitter[Delta]
	zones   *Zones

	touching bool
	touchX   float64
	touchY   float64
}

// NewNormalizer creates a normalizer. zones may be nil.
func NewNormalizer(opts Options, zones *Zones) *Normalizer {
	if opts.WheelStep <= 0 {
		opts.WheelStep = DefaultOptions().WheelStep
	}
	return &Normalizer{
		opts:    opts,
		emitter: emitter.New[Delta](),
		zones:   zones,
	}
}

// On subscribes to deltas and returns an unsubscribe function.
func (n *Normalizer) On(fn func(Delta)) func() {
	sub := n.emitter.On(eventScroll, fn)
	return func() { n.emitter.Off(sub) }
}

// Destroy drops all subscribers.
func (n *Normalizer) Destroy() {
	n.emitter.Clear()
	n.touching = false
}

// Zones returns the opt-out zone registry, if any.
func (n *Normalizer) Zones() *Zones { return n.zones }

// Wheel emits a wheel delta from raw device values.
func (n *Normalizer) Wheel(deltaX, deltaY float64, ev Event) {
	if n.opts.NormalizeWheel {
		deltaX = maths.Clamp(-100, deltaX, 100)
		deltaY = maths.Clamp(-100, deltaY, 100)
	}
	deltaX *= n.opts.WheelMultiplier
	deltaY *= n.opts.WheelMultiplier
	n.emitter.Emit(eventScroll, Delta{Kind: KindWheel, DeltaX: deltaX, DeltaY: deltaY, Event: ev})
}

// TouchStart records the first sample of a drag.
func (n *Normalizer) TouchStart(x, y float64) {
	n.touching = true
	n.touchX = x
	n.touchY = y
}

// TouchMove emits the negated displacement since the previous sample.
// A move with no preceding sample only records the position.
func (n *Normalizer) TouchMove(x, y float64, ev Event) {
	if !n.touching {
		n.TouchStart(x, y)
		return
	}
	deltaX := -(x - n.touchX) * n.opts.TouchMultiplier
	deltaY := -(y - n.touchY) * n.opts.TouchMultiplier
	n.touchX = x
	n.touchY = y
	n.emitter.Emit(eventScroll, Delta{Kind: KindTouch, DeltaX: deltaX, DeltaY: deltaY, Event: ev})
}

// TouchEnd forgets the current drag.
func (n *Normalizer) TouchEnd() {
	n.touching = false
}

// Touching reports whether a drag is in progress.
func (n *Normalizer) Touching() bool { return n.touching }
