package chart

import "math"

const ellipsis = "…"

// MaxTextWidth returns the widest measured text.
func MaxTextWidth(s Surface, texts []string, f Font) float64 {
	var w float64
	for _, t := range texts {
		w = math.Max(w, s.MeasureText(t, f))
	}
	return w
}

// Ellipsis shortens label until it fits maxWidth, replacing the tail with an
// ellipsis. A label that cannot fit is cut down to its first rune and the
// ellipsis.
func Ellipsis(s Surface, label string, maxWidth float64, f Font) string {
	for s.MeasureText(label, f) > maxWidth {
		r := []rune(label)
		if len(r) <= 2 {
			break
		}
		label = string(r[:len(r)-2]) + ellipsis
	}
	return label
}

// Tilt returns the label rotation that makes labels maxLabelWidth wide
// span exactly one interval horizontally, or zero when they already fit.
func Tilt(interval, maxLabelWidth float64) float64 {
	if !(interval > 0) || maxLabelWidth <= interval {
		return 0
	}
	return math.Acos(interval / maxLabelWidth)
}
