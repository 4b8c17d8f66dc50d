// Package chart holds the primitives shared by every chart type: the drawing
// surface and host capabilities a chart needs, layout metrics, axis and label
// drawing, tooltip placement and the mutable interaction state.
package chart

import "github.com/kpumuk/lazychart/internal/geom"

// Paint is a color with opacity in [0, 1].
type Paint struct {
	Color   string
	Opacity float64
}

// Solid returns an opaque paint.
func Solid(color string) Paint {
	return Paint{Color: color, Opacity: 1}
}

// Fade returns p with its opacity set to o.
func (p Paint) Fade(o float64) Paint {
	p.Opacity = o
	return p
}

// LineStyle describes a stroke. Dash alternates drawn and skipped lengths.
type LineStyle struct {
	Paint Paint
	Width float64
	Dash  []float64
}

// Font selects the text face.
type Font struct {
	Size float64
	Bold bool
}

// Align is the horizontal text anchor.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Baseline is the vertical text anchor.
type Baseline int

const (
	BaselineMiddle Baseline = iota
	BaselineTop
	BaselineBottom
)

// TextStyle describes how Text is drawn. Rotation is clockwise, in radians,
// around the anchor point.
type TextStyle struct {
	Paint    Paint
	Font     Font
	Align    Align
	Baseline Baseline
	Rotation float64
}

// Radii are the corner radii of a rounded rectangle.
type Radii struct {
	TopLeft     float64
	TopRight    float64
	BottomRight float64
	BottomLeft  float64
}

// Surface is the drawing backend a chart renders onto. Angles are in
// radians, clockwise from 3 o'clock.
type Surface interface {
	Clear(r geom.Rect)
	Line(from, to geom.Point, s LineStyle)
	FillRect(r geom.Rect, p Paint)
	RoundRect(r geom.Rect, radii Radii, p Paint)
	FillAnnulus(center geom.Point, inner, outer, start, end float64, p Paint)
	StrokeAnnulus(center geom.Point, inner, outer, start, end float64, s LineStyle)
	Circle(center geom.Point, radius float64, p Paint)
	Text(at geom.Point, text string, s TextStyle)
	MeasureText(text string, f Font) float64
}
