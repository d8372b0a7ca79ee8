package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/andyrewlee/glide/internal/animate"
	"github.com/andyrewlee/glide/internal/config"
	"github.com/andyrewlee/glide/internal/scroll"
	"github.com/andyrewlee/glide/internal/ui/common"
)

// rootFlags are command line overrides. Only flags the user actually set
// replace config values.
type rootFlags struct {
	smoothWheel        bool
	smoothTouch        bool
	duration           float64
	lerp               float64
	easing             string
	infinite           bool
	orientation        string
	gestureOrientation string
	wheelMultiplier    float64
	touchMultiplier    float64
	snap               bool
	theme              string
	fps                int
	logLevel           string
	follow             bool
	version            bool
}

func (f *rootFlags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&f.smoothWheel, "smooth-wheel", true, "Animate wheel scrolling")
	fs.BoolVar(&f.smoothTouch, "smooth-touch", false, "Animate drag scrolling")
	fs.Float64Var(&f.duration, "duration", 0, "Animation duration in seconds (disables lerp)")
	fs.Float64Var(&f.lerp, "lerp", animate.DefaultLerp, "Per-frame approach factor in (0, 1]")
	fs.StringVar(&f.easing, "easing", "expo-out", "Easing for duration animations: linear, expo-out, ease-out-quad, ease-in-out-cubic")
	fs.BoolVar(&f.infinite, "infinite", false, "Wrap around at both ends")
	fs.StringVar(&f.orientation, "orientation", string(scroll.Vertical), "Scroll axis: vertical or horizontal")
	fs.StringVar(&f.gestureOrientation, "gesture-orientation", string(scroll.GestureVertical), "Input axes: vertical, horizontal or both")
	fs.Float64Var(&f.wheelMultiplier, "wheel-multiplier", 1, "Wheel delta multiplier")
	fs.Float64Var(&f.touchMultiplier, "touch-multiplier", 2, "Drag delta multiplier")
	fs.BoolVar(&f.snap, "snap", false, "Settle on the nearest heading when scrolling stops")
	fs.StringVar(&f.theme, "theme", "", "Color theme")
	fs.IntVar(&f.fps, "fps", 0, "Animation frame rate")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVarP(&f.follow, "follow", "f", false, "Reload the file when it changes")
	fs.BoolVarP(&f.version, "version", "v", false, "Print version information")
}

// apply copies changed flags into cfg.
func (f *rootFlags) apply(fs *pflag.FlagSet, cfg *config.Config) error {
	s := &cfg.Scroll
	set := fs.Changed

	if set("smooth-wheel") {
		s.SmoothWheel = f.smoothWheel
	}
	if set("smooth-touch") {
		s.SmoothTouch = f.smoothTouch
	}
	if set("duration") {
		if f.duration < 0 {
			return fmt.Errorf("--duration must not be negative")
		}
		s.Duration = f.duration
		if !set("lerp") {
			s.Lerp = 0
		}
	}
	if set("lerp") {
		if f.lerp <= 0 || f.lerp > 1 {
			return fmt.Errorf("--lerp must be in (0, 1], got %v", f.lerp)
		}
		s.Lerp = f.lerp
	}
	if set("easing") {
		if _, ok := animate.EasingByName(f.easing); !ok {
			return fmt.Errorf("unknown easing %q", f.easing)
		}
		s.Easing = f.easing
	}
	if set("infinite") {
		s.Infinite = f.infinite
	}
	if set("orientation") {
		switch o := scroll.Orientation(strings.ToLower(f.orientation)); o {
		case scroll.Vertical, scroll.Horizontal:
			s.Orientation = string(o)
		default:
			return fmt.Errorf("unknown orientation %q", f.orientation)
		}
	}
	if set("gesture-orientation") {
		switch g := scroll.GestureOrientation(strings.ToLower(f.gestureOrientation)); g {
		case scroll.GestureVertical, scroll.GestureHorizontal, scroll.GestureBoth:
			s.GestureOrientation = string(g)
		default:
			return fmt.Errorf("unknown gesture orientation %q", f.gestureOrientation)
		}
	}
	if set("wheel-multiplier") {
		s.WheelMultiplier = f.wheelMultiplier
	}
	if set("touch-multiplier") {
		s.TouchMultiplier = f.touchMultiplier
	}
	if set("snap") {
		s.Snap = f.snap
	}
	if set("theme") {
		if !knownTheme(f.theme) {
			return fmt.Errorf("unknown theme %q", f.theme)
		}
		cfg.UI.Theme = f.theme
	}
	if set("fps") {
		if f.fps <= 0 {
			return fmt.Errorf("--fps must be positive")
		}
		cfg.UI.FrameRate = f.fps
	}
	if set("log-level") {
		cfg.LogLevel = f.logLevel
	}
	return nil
}

func knownTheme(name string) bool {
	for _, t := range common.AvailableThemes() {
		if strings.EqualFold(string(t.ID), name) {
			return true
		}
	}
	return false
}
