package scroll

import (
	"errors"

	"github.com/andyrewlee/glide/internal/animate"
	"github.com/andyrewlee/glide/internal/input"
	"github.com/andyrewlee/glide/internal/size"
)

// Orientation is the scroll axis.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// GestureOrientation selects which input axes feed the scroll axis.
type GestureOrientation string

const (
	GestureVertical   GestureOrientation = "vertical"
	GestureHorizontal GestureOrientation = "horizontal"
	GestureBoth       GestureOrientation = "both"
)

var (
	ErrNoWrapper = errors.New("scroll: wrapper is required")
	ErrNoContent = errors.New("scroll: content is required")
)

// Wrapper is the scroll container: a viewport with dimensions.
type Wrapper interface {
	Viewport
	size.Provider
}

// InputSource delivers normalized deltas.
type InputSource interface {
	On(fn func(input.Delta)) (unsubscribe func())
}

// Options configures a Controller.
type Options struct {
	Wrapper  Wrapper
	Content  size.Provider
	Resolver Resolver
	// Input feeds deltas to the controller. When nil the controller builds
	// its own Normalizer from Normalizer options.
	Input      InputSource
	Normalizer input.Options

	SmoothWheel bool
	SmoothTouch bool
	// Duration in seconds. When set, animations use Easing over Duration
	// instead of the Lerp approach.
	Duration float64
	Easing   animate.EasingFunc
	Lerp     float64

	Infinite           bool
	Orientation        Orientation
	GestureOrientation GestureOrientation
}

// DefaultOptions returns the standard configuration without wrapper or content.
func DefaultOptions() Options {
	return Options{
		Normalizer:         input.DefaultOptions(),
		SmoothWheel:        true,
		SmoothTouch:        false,
		Easing:             animate.ExpoOut,
		Lerp:               animate.DefaultLerp,
		Orientation:        Vertical,
		GestureOrientation: GestureVertical,
	}
}

func (o Options) validate() (Options, error) {
	if o.Wrapper == nil {
		return o, ErrNoWrapper
	}
	if o.Content == nil {
		return o, ErrNoContent
	}
	if o.Easing == nil {
		o.Easing = animate.ExpoOut
	}
	if o.Duration <= 0 && o.Lerp <= 0 {
		o.Lerp = animate.DefaultLerp
	}
	switch o.Orientation {
	case Vertical, Horizontal:
	default:
		o.Orientation = Vertical
	}
	switch o.GestureOrientation {
	case GestureVertical, GestureHorizontal, GestureBoth:
	default:
		o.GestureOrientation = GestureVertical
	}
	return o, nil
}

// ScrollToOptions tunes a single ScrollTo call.
type ScrollToOptions struct {
	// Offset is added to the resolved target.
	Offset float64
	// Immediate jumps without animating.
	Immediate bool
	// Lock swallows wheel and touch input until the animation completes.
	Lock bool
	// Duration, Easing and Lerp override the controller defaults.
	Duration float64
	Easing   animate.EasingFunc
	Lerp     float64
	// OnComplete runs once when the target is reached. It does not run for
	// animations that are superseded or stopped.
	OnComplete func()
	// Force scrolls even while the controller is stopped.
	Force bool
	// UserInput marks the call as a continuation of wheel or touch input
	// rather than a programmatic request.
	UserInput bool
}
