// Package snapshot describes the per-bucket visual state of a streaming bar
// chart and builds the starting state of animated transitions.
package snapshot

import (
	"maps"
	"slices"

	"github.com/kpumuk/lazychart/internal/mathutil"
)

// Entry is the horizontal offset from the plot origin and the bar height, in pixels.
type Entry struct {
	Offset float64
	Height float64
}

// Snapshot maps bucket keys (unix milliseconds) to their resolved geometry.
type Snapshot map[int64]Entry

// Keys returns the snapshot keys in ascending order.
func (s Snapshot) Keys() []int64 {
	return slices.Sorted(maps.Keys(s))
}

// Window is the horizontal layout of the visible buckets: the key of the
// first slot, the slot width in milliseconds and in pixels, and the pixel
// inset of a bar inside its slot.
type Window struct {
	Start     int64
	Interval  int64
	IntervalX float64
	Margin    float64
}

// Offset returns the x offset of the bar for key relative to the plot origin.
func (w Window) Offset(key int64) float64 {
	if w.Interval <= 0 {
		return w.Margin
	}
	return float64(key-w.Start)*w.IntervalX/float64(w.Interval) + w.Margin
}

// Coalesce returns a starting snapshot with exactly the keys of cur.
//
// Keys present in prev keep their previous geometry. Keys missing from prev
// start at height zero, placed where the previous window would have drawn
// them. With a nil prev every key starts at its current offset and height zero.
func Coalesce(prev, cur Snapshot, prevWindow Window) Snapshot {
	out := make(Snapshot, len(cur))
	for key, entry := range cur {
		if prev == nil {
			out[key] = Entry{Offset: entry.Offset}
			continue
		}
		if p, ok := prev[key]; ok {
			out[key] = p
			continue
		}
		out[key] = Entry{Offset: prevWindow.Offset(key)}
	}
	return out
}

// Interpolate blends from toward to at progress t. Keys missing from from
// grow in from the baseline at their target offset.
func Interpolate(from, to Snapshot, t float64) Snapshot {
	out := make(Snapshot, len(to))
	for key, target := range to {
		start, ok := from[key]
		if !ok {
			start = Entry{Offset: target.Offset}
		}
		out[key] = Entry{
			Offset: mathutil.Lerp(start.Offset, target.Offset, t),
			Height: mathutil.Lerp(start.Height, target.Height, t),
		}
	}
	return out
}
