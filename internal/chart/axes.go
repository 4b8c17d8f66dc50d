package chart

import (
	"math"

	"github.com/kpumuk/lazychart/internal/axis"
	"github.com/kpumuk/lazychart/internal/geom"
)

// ValueAxis is a vertical axis with nice ticks, grid lines reaching GridEnd
// and right-aligned labels.
type ValueAxis struct {
	OriginX float64
	OriginY float64
	Top     float64
	GridEnd float64
	Scale   axis.Scale
	Label   func(v float64) string
}

// Draw renders the axis line, ticks, grid and labels.
func (a ValueAxis) Draw(s Surface, t Theme, m Metrics) {
	s.Line(geom.Pt(a.OriginX, a.OriginY), geom.Pt(a.OriginX, a.Top), m.AxisLine(t))

	step := a.Scale.PixelsPerStep
	if !(step > 0) {
		return
	}
	for k := 1; ; k++ {
		y := a.OriginY - float64(k)*step
		if math.Round(y) < a.Top {
			break
		}
		s.Line(geom.Pt(a.OriginX, y), geom.Pt(a.OriginX-m.TickLength, y), m.AxisLine(t))
		s.Line(geom.Pt(a.OriginX, y), geom.Pt(a.GridEnd, y), m.GridLine(t))
	}

	label := a.Label
	if label == nil {
		label = PlainFormat{}.Value
	}
	style := TextStyle{Paint: Solid(t.Text), Font: m.Font, Align: AlignRight, Baseline: BaselineMiddle}
	for k := 0; ; k++ {
		y := a.OriginY - float64(k)*step
		if math.Round(y) < a.Top {
			break
		}
		v := a.Scale.Min + float64(k)*a.Scale.Step
		s.Text(geom.Pt(a.OriginX-m.ValueLabelGap, y), label(v), style)
	}
}

// CategoryAxis is a horizontal axis with one tick per category position.
// LabelOffset is the distance from a tick to the center of its label: half
// an interval for bands, zero for columns.
type CategoryAxis struct {
	OriginX     float64
	OriginY     float64
	End         float64
	Top         float64
	Interval    float64
	Ticks       int
	LabelOffset float64
	Labels      []string
	Tilt        float64
}

// Draw renders the axis line, ticks, vertical grid and tilted labels.
func (a CategoryAxis) Draw(s Surface, t Theme, m Metrics) {
	s.Line(geom.Pt(a.OriginX, a.OriginY), geom.Pt(a.End, a.OriginY), m.AxisLine(t))

	for i := range a.Ticks {
		x := a.OriginX + float64(i)*a.Interval
		s.Line(geom.Pt(x, a.OriginY), geom.Pt(x, a.OriginY+m.TickLength), m.AxisLine(t))
		s.Line(geom.Pt(x, a.OriginY), geom.Pt(x, a.Top), m.GridLine(t))
	}

	style := TextStyle{
		Paint:    Solid(t.Text),
		Font:     m.Font,
		Align:    AlignLeft,
		Baseline: BaselineMiddle,
		Rotation: a.Tilt,
	}
	for i, label := range a.Labels {
		w := s.MeasureText(label, m.Font) * math.Cos(a.Tilt)
		x := a.OriginX + float64(i)*a.Interval + a.LabelOffset - w/2
		s.Text(geom.Pt(x, a.OriginY+m.CategoryOffset), label, style)
	}
}

// Frame returns the default plot origin used when no layout could be
// computed: value labels are assumed empty and category labels flat.
func Frame(height float64, m Metrics) (originX, originY float64) {
	return m.Margin + m.ValueGap, height - m.Margin - m.FontHeight
}

// DrawFrame clears the surface and draws bare axis lines, the fallback for
// datasets that cannot be laid out.
func DrawFrame(s Surface, width, height float64, t Theme, m Metrics) {
	s.Clear(Bounds(width, height))
	ox, oy := Frame(height, m)
	if oy < m.Margin || ox > width-m.Margin {
		return
	}
	s.Line(geom.Pt(ox, oy), geom.Pt(width-m.Margin, oy), m.AxisLine(t))
	s.Line(geom.Pt(ox, oy), geom.Pt(ox, m.Margin), m.AxisLine(t))
}
