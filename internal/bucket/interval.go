package bucket

import (
	"math"
	"time"

	"github.com/kpumuk/lazychart/internal/charterr"
)

// MinBarWidth is the default pixel budget of one bucket on the x axis.
const MinBarWidth = 20

const day = 24 * time.Hour

// Intervals is the catalog of bucket widths, shortest first.
var Intervals = []time.Duration{
	time.Second,
	5 * time.Second,
	10 * time.Second,
	15 * time.Second,
	30 * time.Second,
	time.Minute,
	5 * time.Minute,
	10 * time.Minute,
	15 * time.Minute,
	30 * time.Minute,
	time.Hour,
	2 * time.Hour,
	4 * time.Hour,
	6 * time.Hour,
	12 * time.Hour,
	day,
	7 * day,
	30 * day,
}

// SelectInterval picks the shortest catalog width that keeps every bucket at
// least minBarWidth pixels wide on an axis of axisWidth pixels and evenly
// divides the visible range. When no catalog entry qualifies it falls back to
// half of the visible range.
func SelectInterval(visible time.Duration, axisWidth, minBarWidth float64) (time.Duration, error) {
	if visible <= 0 {
		return 0, charterr.NewInvalidInput("range", visible, errRangeBounds)
	}
	if !(axisWidth > 0) {
		return 0, &charterr.InvalidLayoutError{Field: "axisWidth", Value: axisWidth}
	}
	if !(minBarWidth > 0) {
		return 0, &charterr.InvalidLayoutError{Field: "minBarWidth", Value: minBarWidth}
	}

	barCount := math.Floor(axisWidth / minBarWidth)
	if barCount >= 1 {
		raw := float64(visible) / barCount
		for _, interval := range Intervals {
			if raw <= float64(interval) && visible%interval == 0 {
				return interval, nil
			}
		}
	}
	return visible / 2, nil
}
