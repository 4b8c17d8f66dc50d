package chart

import (
	"math"

	"github.com/kpumuk/lazychart/internal/charterr"
	"github.com/kpumuk/lazychart/internal/geom"
)

// CheckSize rejects non-positive or non-finite surface dimensions.
func CheckSize(width, height float64) error {
	if !(width > 0) || math.IsInf(width, 0) {
		return &charterr.InvalidLayoutError{Field: "width", Value: width}
	}
	if !(height > 0) || math.IsInf(height, 0) {
		return &charterr.InvalidLayoutError{Field: "height", Value: height}
	}
	return nil
}

// Bounds returns the full surface rectangle.
func Bounds(width, height float64) geom.Rect {
	return geom.Rect{W: width, H: height}
}
