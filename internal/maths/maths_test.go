package maths

import (
	"math"
	"testing"
)

func TestClampedModulo(t *testing.T) {
	tests := []struct {
		dividend, divisor, want float64
	}{
		{1700, 1500, 200},
		{-300, 1500, 1200},
		{-1500, 1500, 0},
		{300, -1500, -1200},
		{0, 1500, 0},
	}
	for _, tt := range tests {
		got := ClampedModulo(tt.dividend, tt.divisor)
		if got != tt.want && !(got == 0 && tt.want == 0) {
			t.Fatalf("ClampedModulo(%v, %v) = %v, want %v", tt.dividend, tt.divisor, got, tt.want)
		}
	}
	if !math.IsNaN(ClampedModulo(10, 0)) {
		t.Fatalf("expected NaN for zero divisor")
	}
}

func TestRoundHalfUp(t *testing.T) {
	for in, want := range map[float64]float64{2.5: 3, -2.5: -2, 1.49: 1, -0.6: -1} {
		if got := Round(in); got != want {
			t.Fatalf("Round(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestClampAndLerp(t *testing.T) {
	if Clamp(0, 50, -10) != 0 {
		t.Fatalf("clamp with inverted bounds should return the lower bound")
	}
	if Clamp(0, 50, 20) != 20 || Clamp(0, -5, 20) != 0 {
		t.Fatalf("clamp bounds wrong")
	}
	if Lerp(0, 100, 0.1) != 10 || Lerp(90, 0, 0.5) != 45 {
		t.Fatalf("lerp wrong: %v %v", Lerp(0, 100, 0.1), Lerp(90, 0, 0.5))
	}
	if Lerp(3, 7, 1) != 7 || Lerp(3, 7, 0) != 3 {
		t.Fatalf("lerp endpoints wrong")
	}
}
