package animate

import (
	"math"
	"strings"
)

// EasingFunc maps linear progress in [0,1] to eased progress in [0,1].
type EasingFunc func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// ExpoOut decelerates exponentially and is the default scroll easing.
func ExpoOut(t float64) float64 {
	return math.Min(1, 1.001-math.Pow(2, -10*t))
}

// EaseOutQuad decelerates quadratically.
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInOutCubic accelerates then decelerates.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

var easings = map[string]EasingFunc{
	"linear":            Linear,
	"expo-out":          ExpoOut,
	"ease-out-quad":     EaseOutQuad,
	"ease-in-out-cubic": EaseInOutCubic,
}

// EasingByName looks up a named easing; names are case-insensitive.
func EasingByName(name string) (EasingFunc, bool) {
	fn, ok := easings[strings.ToLower(strings.TrimSpace(name))]
	return fn, ok
}
