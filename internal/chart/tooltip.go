package chart

import (
	"math"

	"github.com/kpumuk/lazychart/internal/geom"
)

// TooltipItem is one row of a tooltip.
type TooltipItem struct {
	Label string
	Value string
	Color string
}

// Tooltip is the content and placement rule of a tooltip.
//
// Anchor is the preferred top-left corner. VAlign shifts the tooltip up by
// that fraction of its height. The tooltip stays between Top and Bottom; when
// it would cross Right it is either flipped to the left of the anchor by Flip
// pixels, or, with Clamp set, pushed back inside.
type Tooltip struct {
	Title  string
	Items  []TooltipItem
	Anchor geom.Point
	VAlign float64
	Top    float64
	Bottom float64
	Right  float64
	Flip   float64
	Clamp  bool
}

// Place returns the top-left corner of a w×h tooltip.
func (t Tooltip) Place(w, h float64) geom.Point {
	y := t.Anchor.Y - h*t.VAlign
	y = math.Max(math.Min(y, t.Bottom-h), t.Top)

	x := t.Anchor.X
	if x+w > t.Right {
		if t.Clamp {
			x = t.Right - w
		} else {
			x -= t.Flip + w
		}
	}
	return geom.Pt(x, y)
}
