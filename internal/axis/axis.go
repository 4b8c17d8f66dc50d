// Package axis plans "nice" axis scales: a tick step from {1,2,5,10}×10^k
// and data bounds rounded outward to multiples of that step.
package axis

import (
	"math"

	"github.com/kpumuk/lazychart/internal/charterr"
)

// DefaultSpacing is the minimum distance in pixels between two ticks.
const DefaultSpacing = 40

// BufferRatio is the share of the data span added around it before planning.
const BufferRatio = 0.1

// Scale maps a value range onto an axis of Length pixels.
type Scale struct {
	Step          float64
	Min           float64
	Max           float64
	PixelsPerStep float64
	Length        float64
}

// Plan computes a Scale for [min, max] on an axis of length pixels using DefaultSpacing.
func Plan(min, max, length float64) (Scale, error) {
	return PlanSpacing(min, max, length, DefaultSpacing)
}

// PlanSpacing computes a Scale keeping ticks at least spacing pixels apart.
//
// It fails with *charterr.InvalidLayoutError when length or spacing is not
// positive and with *charterr.DegenerateRangeError when max does not exceed min.
func PlanSpacing(min, max, length, spacing float64) (Scale, error) {
	if !(length > 0) || math.IsInf(length, 0) {
		return Scale{}, &charterr.InvalidLayoutError{Field: "length", Value: length}
	}
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		return Scale{}, &charterr.InvalidLayoutError{Field: "spacing", Value: spacing}
	}
	if !finite(min) || !finite(max) || !(max > min) {
		return Scale{}, &charterr.DegenerateRangeError{Min: min, Max: max}
	}

	step := niceStep(spacing * (max - min) / length)
	if step == 0 || math.IsInf(step, 0) {
		return Scale{}, &charterr.DegenerateRangeError{Min: min, Max: max}
	}

	lo := math.Floor(min / step)
	if lo*step > min {
		lo--
	}
	hi := math.Ceil(max / step)
	if hi*step < max {
		hi++
	}

	return Scale{
		Step:          step,
		Min:           lo * step,
		Max:           hi * step,
		PixelsPerStep: length / (hi - lo),
		Length:        length,
	}, nil
}

// niceStep snaps raw up to the nearest of {2,5,10}×10^exp.
func niceStep(raw float64) float64 {
	exp := math.Floor(math.Log10(raw))
	// Log10 can land a hair off for exact powers of ten.
	if math.Pow(10, exp+1) <= raw {
		exp++
	} else if math.Pow(10, exp) > raw {
		exp--
	}
	fraction := raw / math.Pow(10, exp)

	var nice float64
	switch {
	case fraction <= 2:
		nice = 2
	case fraction <= 5:
		nice = 5
	default:
		nice = 10
	}

	// Dividing by an exact power of ten keeps 0.2, 0.05, ... as close to
	// their decimal literals as the float format allows.
	if exp < 0 {
		return nice / math.Pow(10, -exp)
	}
	return nice * math.Pow(10, exp)
}

// Ticks returns the number of steps between Min and Max.
func (s Scale) Ticks() int {
	if s.Step <= 0 {
		return 0
	}
	return int(math.Round((s.Max - s.Min) / s.Step))
}

// TickValues lists every tick from Min to Max inclusive.
func (s Scale) TickValues() []float64 {
	n := s.Ticks()
	values := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		values = append(values, s.Min+float64(i)*s.Step)
	}
	return values
}

// Pixel returns the distance of v from the axis origin in pixels.
func (s Scale) Pixel(v float64) float64 {
	span := s.Max - s.Min
	if span <= 0 {
		return 0
	}
	return (v - s.Min) * s.Length / span
}

// BufferMode selects how Buffer treats the lower bound.
type BufferMode int

const (
	// ClampAtZero widens min downward but never below zero; max is raised to
	// at least zero first. Bar charts use it.
	ClampAtZero BufferMode = iota
	// ZeroUnlessNegative keeps zero as the lower bound unless the data dips
	// below it, in which case the lower bound is widened. Line charts use it.
	ZeroUnlessNegative
)

// Buffer widens [min, max] by BufferRatio of its span so data never touches
// the plot edges. A zero span is widened by |max| (or 1) so the result is
// always a valid input for Plan. Non-finite bounds are returned unchanged.
func Buffer(min, max float64, mode BufferMode) (float64, float64) {
	if !finite(min) || !finite(max) {
		return min, max
	}
	if mode == ClampAtZero && max < 0 {
		max = 0
	}
	delta := max - min
	if delta <= 0 {
		delta = math.Max(math.Abs(max), 1)
	}

	bufferedMax := max + delta*BufferRatio
	var bufferedMin float64
	switch mode {
	case ZeroUnlessNegative:
		if min < 0 {
			bufferedMin = min - delta*BufferRatio
		}
	default:
		bufferedMin = math.Max(0, min-delta*BufferRatio)
	}
	return bufferedMin, bufferedMax
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
