package mathutil_test

import (
	"testing"

	"github.com/kpumuk/lazychart/internal/mathutil"
)

func TestClamp_Int(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		val  int
		low  int
		high int
		want int
	}{
		{name: "value within range", val: 5, low: 0, high: 10, want: 5},
		{name: "value below minimum", val: -5, low: 0, high: 10, want: 0},
		{name: "value above maximum", val: 15, low: 0, high: 10, want: 10},
		{name: "value equals maximum", val: 10, low: 0, high: 10, want: 10},
		{name: "negative range", val: -5, low: -10, high: -1, want: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := mathutil.Clamp(tt.val, tt.low, tt.high); got != tt.want {
				t.Fatalf("Clamp(%d, %d, %d) = %d, want %d", tt.val, tt.low, tt.high, got, tt.want)
			}
		})
	}
}

func TestClamp_Float64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		val  float64
		want float64
	}{
		{name: "inside", val: 0.25, want: 0.25},
		{name: "below", val: -0.1, want: 0},
		{name: "above", val: 1.7, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := mathutil.Clamp(tt.val, 0, 1); got != tt.want {
				t.Fatalf("Clamp(%v, 0, 1) = %v, want %v", tt.val, got, tt.want)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to, t float64
		want        float64
	}{
		{from: 0, to: 10, t: 0, want: 0},
		{from: 0, to: 10, t: 1, want: 10},
		{from: 10, to: 20, t: 0.5, want: 15},
		{from: 50, to: 0, t: 0.25, want: 37.5},
	}

	for _, tt := range tests {
		if got := mathutil.Lerp(tt.from, tt.to, tt.t); got != tt.want {
			t.Fatalf("Lerp(%v, %v, %v) = %v, want %v", tt.from, tt.to, tt.t, got, tt.want)
		}
	}
}
