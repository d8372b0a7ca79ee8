// Package maths holds the scalar helpers shared by the animation driver,
// the input normalizer and the scroll controller.
package maths

import "math"

// Clamp limits v to [lo, hi]. When hi < lo the result is lo.
func Clamp(lo, v, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Lerp moves start towards end by the fraction amt.
func Lerp(start, end, amt float64) float64 {
	return start + (end-start)*amt
}

// Round rounds half toward positive infinity.
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// ClampedModulo returns dividend mod divisor with the sign of divisor.
func ClampedModulo(dividend, divisor float64) float64 {
	r := math.Mod(dividend, divisor)
	if (divisor > 0 && r < 0) || (divisor < 0 && r > 0) {
		r += divisor
	}
	return r
}
