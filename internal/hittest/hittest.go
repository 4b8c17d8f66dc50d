// Package hittest maps pointer positions to data indices for band, column
// and radial chart geometries.
package hittest

import (
	"math"

	"github.com/kpumuk/lazychart/internal/geom"
)

// None is the index reported when the pointer is over no data.
const None = -1

// Band describes equal-width slots starting at OriginX, as drawn by bar charts.
type Band struct {
	OriginX  float64
	Interval float64
	Count    int
	Plot     geom.Rect
}

// Index returns floor((x-OriginX)/Interval), or None outside the plot or the slots.
func (b Band) Index(p geom.Point) int {
	if !b.Plot.Contains(p) || !(b.Interval > 0) {
		return None
	}
	return b.bound(int(math.Floor((p.X - b.OriginX) / b.Interval)))
}

func (b Band) bound(i int) int {
	if i < 0 || i >= b.Count {
		return None
	}
	return i
}

// Column describes data defined at discrete x positions, as drawn by line charts.
type Column Band

// Index returns the nearest column to p, or None outside the plot.
func (c Column) Index(p geom.Point) int {
	if !c.Plot.Contains(p) || !(c.Interval > 0) {
		return None
	}
	return Band(c).bound(int(math.Round((p.X - c.OriginX) / c.Interval)))
}

// Radial describes pie slices sweeping clockwise from 12 o'clock. Shares are
// the slice fractions of the full circle.
type Radial struct {
	Center geom.Point
	Outer  float64
	Inner  float64
	Shares []float64
}

// Index returns the slice under p, or None outside the ring.
func (r Radial) Index(p geom.Point) int {
	d := r.Center.Dist(p)
	if d > r.Outer || d < r.Inner || len(r.Shares) == 0 {
		return None
	}
	ratio := Angle(r.Center, p) / (2 * math.Pi)

	var cumulative float64
	for i, share := range r.Shares {
		cumulative += share
		if ratio <= cumulative {
			return i
		}
	}
	// Rounding can leave the sum a hair below 1.
	if cumulative > 0 && ratio-cumulative < 1e-9 {
		return len(r.Shares) - 1
	}
	return None
}

// Angle returns the clockwise angle of p around c in [0, 2π), with 12 o'clock at 0.
func Angle(c, p geom.Point) float64 {
	a := math.Atan2(p.Y-c.Y, p.X-c.X) + math.Pi/2
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// Focus is the hovered index. The zero value holds None.
type Focus struct {
	index int
	ok    bool
}

// Index returns the focused index or None.
func (f Focus) Index() int {
	if !f.ok {
		return None
	}
	return f.index
}

// Valid reports whether an index is focused.
func (f Focus) Valid() bool {
	return f.ok
}

// Set stores idx and reports whether the focus changed. Negative values clear it.
func (f *Focus) Set(idx int) bool {
	if idx < 0 {
		return f.Clear()
	}
	if f.ok && f.index == idx {
		return false
	}
	f.index, f.ok = idx, true
	return true
}

// Clear removes the focus and reports whether one was set.
func (f *Focus) Clear() bool {
	if !f.ok {
		return false
	}
	f.index, f.ok = 0, false
	return true
}
