package animate

import "github.com/andyrewlee/glide/internal/maths"

// DefaultLerp is the exponential approach factor used when a session sets
// neither a lerp factor nor a duration.
const DefaultLerp = 0.1

// UpdateFunc receives the interpolated value once per advanced frame.
// completed is true on the final frame of a session.
type UpdateFunc func(value float64, completed bool)

// Options configures a single interpolation session.
type Options struct {
	// Lerp > 0 selects exponential mode.
	Lerp float64
	// Duration in seconds; used when Lerp is zero.
	Duration float64
	// Easing maps linear progress to eased progress in duration mode.
	Easing EasingFunc
	OnUpdate UpdateFunc
}

// Driver advances a single scalar toward a target once per frame.
// It is not safe for concurrent use; it is driven from the host's frame loop.
type Driver struct {
	running  bool
	lerp     float64
	value    float64
	from     float64
	to       float64
	elapsed  float64
	duration float64
	easing   EasingFunc
	onUpdate UpdateFunc
	session  uint64
}

// FromTo arms a new session, abandoning any session in flight.
func (d *Driver) FromTo(from, to float64, opts Options) {
	d.from = from
	d.value = from
	d.to = to
	d.duration = opts.Duration
	d.lerp = opts.Lerp
	if d.lerp <= 0 {
		d.lerp = 0
		if d.duration <= 0 {
			d.lerp = DefaultLerp
		}
	}
	d.easing = opts.Easing
	if d.easing == nil {
		d.easing = Linear
	}
	d.elapsed = 0
	d.running = true
	d.onUpdate = opts.OnUpdate
	d.session++
}

// Advance moves the session forward by dt seconds. No-op when stopped.
func (d *Driver) Advance(dt float64) {
	if !d.running {
		return
	}

	completed := false
	if d.lerp > 0 {
		d.value = maths.Lerp(d.value, d.to, d.lerp)
		if maths.Round(d.value) == d.to {
			d.value = d.to
			completed = true
		}
	} else {
		d.elapsed += dt
		progress := maths.Clamp(0, d.elapsed/d.duration, 1)
		completed = progress >= 1
		eased := 1.0
		if !completed {
			eased = d.easing(progress)
		}
		d.value = maths.Lerp(d.from, d.to, eased)
	}

	session := d.session
	if d.onUpdate != nil {
		d.onUpdate(d.value, completed)
	}

	// A callback may re-arm the driver; the new session must survive.
	if completed && d.session == session {
		d.Stop()
	}
}

// Stop ends the session. The last value is kept.
func (d *Driver) Stop() {
	d.running = false
}

// Running reports whether a session is in flight.
func (d *Driver) Running() bool { return d.running }

// Value returns the last computed value.
func (d *Driver) Value() float64 { return d.value }

// Target returns the destination of the current or last session.
func (d *Driver) Target() float64 { return d.to }
