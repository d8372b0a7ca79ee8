// Package scroll drives a viewport's scroll offset through a per-frame
// animation, reconciling wheel/touch deltas, programmatic requests and
// out-of-band native scrolling.
package scroll

import (
	"math"

	"github.com/andyrewlee/glide/internal/animate"
	"github.com/andyrewlee/glide/internal/emitter"
	"github.com/andyrewlee/glide/internal/input"
	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/maths"
)

// Event names.
const (
	EventScroll = "scroll"
	EventFlags  = "flags"
)

// State is the payload of EventScroll.
type State struct {
	Scroll   float64
	Progress float64
	Velocity float64
	Limit    float64
}

// Flags is the payload of EventFlags.
type Flags struct {
	Stopped   bool
	Locked    bool
	Smooth    bool
	Scrolling bool
}

// Controller owns target and animated scroll state for one viewport.
//
// It is driven from a single goroutine: frame ticks (Raf), input (OnDelta,
// OnNativeScroll) and API calls must not run concurrently.
type Controller struct {
	opts Options

	driver animate.Driver
	events *emitter.Emitter[State]
	flags  *emitter.Emitter[Flags]

	normalizer       *input.Normalizer
	ownsNormalizer   bool
	unsubscribeInput func()

	targetScroll   float64
	animatedScroll float64
	velocity       float64

	isStopped   bool
	isLocked    bool
	isSmooth    bool
	isScrolling bool

	lastFrame float64
	hasFrame  bool
	pending   []func()

	state State
}

// New creates a controller and subscribes it to its input source.
func New(opts Options) (*Controller, error) {
	opts, err := opts.validate()
	if err != nil {
		return nil, err
	}

	c := &Controller{
		opts:     opts,
		events:   emitter.New[State](),
		flags:    emitter.New[Flags](),
		isSmooth: opts.SmoothWheel || opts.SmoothTouch,
	}
	c.targetScroll = c.ActualScroll()
	c.animatedScroll = c.targetScroll

	src := opts.Input
	if src == nil {
		c.normalizer = input.NewNormalizer(opts.Normalizer, nil)
		c.ownsNormalizer = true
		src = c.normalizer
	} else if n, ok := src.(*input.Normalizer); ok {
		c.normalizer = n
	}
	c.unsubscribeInput = src.On(c.OnDelta)

	logging.Debug("scroll: controller created (orientation=%s infinite=%v lerp=%v duration=%v)",
		opts.Orientation, opts.Infinite, opts.Lerp, opts.Duration)
	return c, nil
}

// Normalizer returns the input normalizer feeding this controller, if known.
func (c *Controller) Normalizer() *input.Normalizer { return c.normalizer }

// Destroy releases subscriptions and cancels any animation.
func (c *Controller) Destroy() {
	c.driver.Stop()
	c.pending = nil
	c.events.Clear()
	c.flags.Clear()
	if c.unsubscribeInput != nil {
		c.unsubscribeInput()
		c.unsubscribeInput = nil
	}
	if c.ownsNormalizer && c.normalizer != nil {
		c.normalizer.Destroy()
	}
}

// On subscribes to the scroll-state event.
func (c *Controller) On(event string, fn func(State)) emitter.Subscription {
	return c.events.On(event, fn)
}

// Off removes a scroll-state subscription.
func (c *Controller) Off(sub emitter.Subscription) {
	c.events.Off(sub)
}

// OnFlags subscribes to interaction flag changes.
func (c *Controller) OnFlags(fn func(Flags)) emitter.Subscription {
	return c.flags.On(EventFlags, fn)
}

// OffFlags removes a flag subscription.
func (c *Controller) OffFlags(sub emitter.Subscription) {
	c.flags.Off(sub)
}

// OnDelta handles one normalized input notification.
func (c *Controller) OnDelta(d input.Delta) {
	ev := d.Event

	// Keep pinch/zoom.
	if ev != nil && ev.ZoomModifier() {
		return
	}

	// Keep back/forward swipe gestures on the other axis.
	switch c.opts.GestureOrientation {
	case GestureVertical:
		if d.DeltaY == 0 {
			return
		}
	case GestureHorizontal:
		if d.DeltaX == 0 {
			return
		}
	}

	if input.HasOptOut(ev) {
		return
	}

	if c.isStopped || c.isLocked {
		preventDefault(ev)
		return
	}

	c.setSmooth((c.opts.SmoothTouch && d.Kind == input.KindTouch) ||
		(c.opts.SmoothWheel && d.Kind == input.KindWheel))

	if !c.isSmooth {
		c.setScrolling(false)
		c.driver.Stop()
		return
	}

	preventDefault(ev)

	delta := d.DeltaY
	switch c.opts.GestureOrientation {
	case GestureBoth:
		delta = d.DeltaX + d.DeltaY
	case GestureHorizontal:
		delta = d.DeltaX
	}

	c.ScrollTo(c.targetScroll+delta, ScrollToOptions{UserInput: true})
}

func preventDefault(ev input.Event) {
	if ev != nil {
		ev.PreventDefault()
	}
}

// OnNativeScroll resynchronizes from the viewport after a scroll the
// controller did not drive.
func (c *Controller) OnNativeScroll() {
	if c.isScrolling {
		return
	}
	c.animatedScroll = c.ActualScroll()
	c.targetScroll = c.animatedScroll
	c.velocity = 0
	c.emit()
}

// Raf advances one frame. timeMs is a monotonic timestamp in milliseconds;
// a timestamp earlier than the previous one counts as no elapsed time.
func (c *Controller) Raf(timeMs float64) {
	dt := 0.0
	if c.hasFrame {
		dt = max(0, timeMs-c.lastFrame)
	}
	c.lastFrame = timeMs
	c.hasFrame = true

	c.runPending()
	c.driver.Advance(dt * 0.001)
}

// ResetClock makes the next Raf the first frame, so time spent without
// frames is not applied to an animation.
func (c *Controller) ResetClock() {
	c.hasFrame = false
}

// afterFrame defers fn to the start of the next Raf.
func (c *Controller) afterFrame(fn func()) {
	c.pending = append(c.pending, fn)
}

func (c *Controller) runPending() {
	if len(c.pending) == 0 {
		return
	}
	pending := c.pending
	c.pending = nil
	for _, fn := range pending {
		fn()
	}
}

// Animating reports whether further frames are needed.
func (c *Controller) Animating() bool {
	return c.driver.Running() || len(c.pending) > 0
}

// Reset clears the lock, scrolling flag and velocity.
func (c *Controller) Reset() {
	c.setLocked(false)
	c.setScrolling(false)
	c.velocity = 0
	c.state = State{}
}

// Start re-enables input.
func (c *Controller) Start() {
	c.setStopped(false)
	c.Reset()
}

// Stop disables input and cancels any animation.
func (c *Controller) Stop() {
	c.setStopped(true)
	c.driver.Stop()
	c.Reset()
}

// ScrollTo scrolls to target: a number, a keyword ("top", "left", "start",
// "bottom", "right", "end"), an Element, or a selector string resolved by
// the configured Resolver. Unresolvable targets are ignored.
func (c *Controller) ScrollTo(target any, opts ScrollToOptions) {
	if c.isStopped && !opts.Force {
		return
	}

	offset := opts.Offset
	value, ok := c.resolve(target, &offset)
	if !ok {
		return
	}

	value = maths.Round(value + offset)
	programmatic := !opts.UserInput

	if c.opts.Infinite {
		if programmatic {
			c.animatedScroll = c.Scroll()
			c.targetScroll = c.animatedScroll
		}
	} else {
		value = maths.Clamp(0, value, c.Limit())
	}

	if opts.Immediate {
		c.animatedScroll = value
		c.targetScroll = value
		c.setScroll(c.Scroll())
		c.driver.Stop()
		c.Reset()
		c.emit()
		if opts.OnComplete != nil {
			opts.OnComplete()
		}
		return
	}

	if !programmatic {
		c.targetScroll = value
	}

	// A superseded locking animation releases its lock here; the new one
	// takes it again on its first frame if it asked for it.
	c.setLocked(false)

	duration := opts.Duration
	if duration <= 0 {
		duration = c.opts.Duration
	}
	lerp := opts.Lerp
	if lerp <= 0 && duration <= 0 {
		lerp = c.opts.Lerp
	}
	easing := opts.Easing
	if easing == nil {
		easing = c.opts.Easing
	}

	lock := opts.Lock
	onComplete := opts.OnComplete

	c.driver.FromTo(c.animatedScroll, value, animate.Options{
		Lerp:     lerp,
		Duration: duration,
		Easing:   easing,
		OnUpdate: func(v float64, completed bool) {
			if lock {
				c.setLocked(true)
			}
			c.setScrolling(true)
			c.velocity = v - c.animatedScroll

			c.animatedScroll = v
			c.setScroll(c.Scroll())

			if programmatic {
				// Wheel input during a programmatic animation builds on the
				// live value.
				c.targetScroll = v
			}

			if completed {
				if lock {
					c.setLocked(false)
				}
				// Cleared next frame so the viewport's scroll notification
				// for this write is not mistaken for a native scroll.
				c.afterFrame(func() { c.setScrolling(false) })
				c.velocity = 0
				if onComplete != nil {
					onComplete()
				}
			}

			c.emit()
		},
	})
}

func (c *Controller) resolve(target any, offset *float64) (float64, bool) {
	switch t := target.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case float32:
		return c.resolve(float64(t), offset)
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		if startKeywords[t] {
			return 0, true
		}
		if endKeywords[t] {
			return c.Limit(), true
		}
		if c.opts.Resolver == nil {
			return 0, false
		}
		el, ok := c.opts.Resolver.Query(t)
		if !ok || el == nil {
			return 0, false
		}
		return c.elementTarget(el, offset), true
	case Element:
		return c.elementTarget(t, offset), true
	}
	return 0, false
}

func (c *Controller) elementTarget(el Element, offset *float64) float64 {
	horizontal := c.IsHorizontal()
	if wrapper, ok := c.opts.Wrapper.(Element); ok {
		r := wrapper.Rect()
		if horizontal {
			*offset -= r.Left
		} else {
			*offset -= r.Top
		}
	}
	r := el.Rect()
	edge := r.Top
	if horizontal {
		edge = r.Left
	}
	// Element rects are relative to what is on screen, which is the wrapped
	// offset in infinite mode.
	return edge + c.Scroll()
}

func (c *Controller) setScroll(v float64) {
	c.opts.Wrapper.SetScrollOffset(c.IsHorizontal(), v)
}

func (c *Controller) emit() {
	c.state = State{
		Scroll:   c.Scroll(),
		Progress: c.Progress(),
		Velocity: c.velocity,
		Limit:    c.Limit(),
	}
	c.events.Emit(EventScroll, c.state)
}

// Limit is the maximum scroll offset: content size minus container size.
// It may be zero or negative when the content fits.
func (c *Controller) Limit() float64 {
	if c.IsHorizontal() {
		return maths.Round(float64(c.opts.Content.Width() - c.opts.Wrapper.Width()))
	}
	return maths.Round(float64(c.opts.Content.Height() - c.opts.Wrapper.Height()))
}

// IsHorizontal reports whether the controller scrolls the x axis.
func (c *Controller) IsHorizontal() bool {
	return c.opts.Orientation == Horizontal
}

// Infinite reports whether the scroll space wraps.
func (c *Controller) Infinite() bool { return c.opts.Infinite }

// ActualScroll is the offset the viewport reports.
func (c *Controller) ActualScroll() float64 {
	return c.opts.Wrapper.ScrollOffset(c.IsHorizontal())
}

// Scroll is the consumer-facing offset: wrapped into [0, limit) in infinite
// mode, otherwise kept inside [0, max(0, limit)].
func (c *Controller) Scroll() float64 {
	limit := c.Limit()
	if c.opts.Infinite {
		if limit == 0 {
			return 0
		}
		return maths.ClampedModulo(c.animatedScroll, limit)
	}
	return maths.Clamp(0, c.animatedScroll, limit)
}

// Progress is Scroll/Limit, or 0 when the content fits in the container.
func (c *Controller) Progress() float64 {
	limit := c.Limit()
	if limit <= 0 {
		return 0
	}
	return c.Scroll() / limit
}

// State returns the last emitted scroll state.
func (c *Controller) State() State { return c.state }

func (c *Controller) Velocity() float64       { return c.velocity }
func (c *Controller) TargetScroll() float64   { return c.targetScroll }
func (c *Controller) AnimatedScroll() float64 { return c.animatedScroll }
func (c *Controller) IsStopped() bool         { return c.isStopped }
func (c *Controller) IsLocked() bool          { return c.isLocked }
func (c *Controller) IsSmooth() bool          { return c.isSmooth }
func (c *Controller) IsScrolling() bool       { return c.isScrolling }

// Flags returns a snapshot of the interaction flags.
func (c *Controller) Flags() Flags {
	return Flags{
		Stopped:   c.isStopped,
		Locked:    c.isLocked,
		Smooth:    c.isSmooth,
		Scrolling: c.isScrolling,
	}
}
