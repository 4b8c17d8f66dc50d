// Package piechart draws pie and donut charts with a column legend on the
// right edge.
package piechart

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/kpumuk/lazychart/internal/chart"
	"github.com/kpumuk/lazychart/internal/charterr"
	"github.com/kpumuk/lazychart/internal/geom"
	"github.com/kpumuk/lazychart/internal/hittest"
)

// DefaultDuration is the length of the sweep animation.
const DefaultDuration = 1500 * time.Millisecond

// StartAngle is 12 o'clock in surface angles.
const StartAngle = 1.5 * math.Pi

var (
	errZeroTotal  = errors.New("values sum to zero")
	errInnerRatio = errors.New("must be in [0, 1)")
)

// Datum is one slice.
type Datum struct {
	Label string
	Value float64
	Color string
}

// Config describes one render. InnerRadius is the donut hole as a fraction
// of the outer radius.
type Config struct {
	Data        []Datum
	InnerRadius float64
	Width       float64
	Height      float64
	Theme       chart.Theme
	Metrics     chart.Metrics
	Format      chart.Formatter
	Duration    time.Duration
}

// LegendEntry is one legend row.
type LegendEntry struct {
	Label  string
	Color  string
	Marker geom.Rect
	Text   geom.Point
}

// Legend is the laid out legend. StartX is its left edge; the pie is drawn
// to the left of it.
type Legend struct {
	Entries []LegendEntry
	StartX  float64
}

// LayoutLegend splits data into columns of as many rows as fit between the
// margins. Columns are stacked leftward from the right margin with the first
// column leftmost. Labels wider than the column share of the width are
// ellipsized.
func LayoutLegend(s chart.Surface, data []Datum, width, height float64, m chart.Metrics) Legend {
	legend := Legend{StartX: width - m.Margin}
	perColumn := int(math.Floor((height - 2*m.Margin) / m.LegendRow))
	if perColumn <= 0 {
		return legend
	}

	type column struct {
		data      []Datum
		textWidth float64
	}
	var columns []column
	for start := 0; start < len(data); start += perColumn {
		group := data[start:min(start+perColumn, len(data))]
		var w float64
		for _, d := range group {
			w = math.Max(w, s.MeasureText(d.Label, m.Font))
		}
		columns = append(columns, column{data: group, textWidth: math.Min(w, width*m.LegendShare)})
	}

	x := width - m.Margin
	starts := make([]float64, len(columns))
	for i := len(columns) - 1; i >= 0; i-- {
		x -= m.LegendMarker + m.LegendGap + columns[i].textWidth + m.LegendGap
		starts[i] = x
	}
	legend.StartX = x

	for i, col := range columns {
		y := m.Margin
		for _, d := range col.data {
			legend.Entries = append(legend.Entries, LegendEntry{
				Label:  chart.Ellipsis(s, d.Label, col.textWidth, m.Font),
				Color:  d.Color,
				Marker: geom.Rect{X: starts[i], Y: y, W: m.LegendMarker, H: m.LegendMarker},
				Text:   geom.Pt(starts[i]+m.LegendMarker+m.LegendGap, y+m.LegendMarker/2),
			})
			y += m.LegendRow
		}
	}
	return legend
}

// Layout is the geometry computed by Render.
type Layout struct {
	Legend Legend
	Center geom.Point
	Radius float64
	Inner  float64
	Shares []float64
	Total  float64
}

// Span returns the start and end angle of slice i.
func (l Layout) Span(i int) (start, end float64) {
	start = StartAngle
	for _, share := range l.Shares[:i] {
		start += 2 * math.Pi * share
	}
	return start, start + 2*math.Pi*l.Shares[i]
}

// Chart is a pie chart bound to a host and a surface.
type Chart struct {
	host    chart.Host
	surface chart.Surface
	state   chart.InteractionState

	cfg    Config
	layout Layout
	ready  bool
}

// New creates a chart. Nothing is drawn until Render.
func New(host chart.Host, surface chart.Surface) *Chart {
	return &Chart{
		host:    host,
		surface: surface,
		state:   chart.NewInteractionState(host),
	}
}

// Validate checks that data is non-empty, that every value is finite and
// non-negative with a positive total, and that the inner ratio is in [0, 1).
func Validate(data []Datum, innerRadius float64) error {
	if len(data) == 0 {
		return &charterr.EmptyDatasetError{Chart: "pie chart"}
	}
	if math.IsNaN(innerRadius) || innerRadius < 0 || innerRadius >= 1 {
		return charterr.NewInvalidInput("innerRadius", innerRadius, errInnerRatio)
	}
	var total float64
	for i, d := range data {
		if err := charterr.CheckNonNegative(fmt.Sprintf("data[%d].value", i), d.Value); err != nil {
			return err
		}
		total += d.Value
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return charterr.NewInvalidInput("data", total, errZeroTotal)
	}
	return nil
}

// Render lays out cfg, draws the legend and starts the sweep animation,
// cancelling any transition and focus left from a previous render. When the
// pie does not fit next to the legend only the legend is drawn.
func (c *Chart) Render(cfg Config) error {
	c.state.Reset()
	c.ready = false
	c.cfg = withDefaults(cfg)

	if err := chart.CheckSize(c.cfg.Width, c.cfg.Height); err != nil {
		return err
	}
	c.surface.Clear(chart.Bounds(c.cfg.Width, c.cfg.Height))
	if err := Validate(c.cfg.Data, c.cfg.InnerRadius); err != nil {
		return err
	}

	c.layout = c.computeLayout()
	c.drawLegend()
	if c.layout.Radius < 0 {
		return &charterr.InvalidLayoutError{Field: "radius", Value: c.layout.Radius}
	}
	c.ready = true

	c.draw(0)
	c.state.Anim.Start(c.cfg.Duration, c.draw, nil)
	return nil
}

func withDefaults(cfg Config) Config {
	if cfg.Theme == (chart.Theme{}) {
		cfg.Theme = chart.DefaultTheme()
	}
	if cfg.Metrics.Margin == 0 && cfg.Metrics.Font.Size == 0 {
		cfg.Metrics = chart.DefaultMetrics()
	}
	cfg.Format = chart.FormatterOr(cfg.Format)
	if cfg.Duration == 0 {
		cfg.Duration = DefaultDuration
	}
	return cfg
}

func (c *Chart) computeLayout() Layout {
	m := c.cfg.Metrics
	legend := LayoutLegend(c.surface, c.cfg.Data, c.cfg.Width, c.cfg.Height, m)

	var total float64
	for _, d := range c.cfg.Data {
		total += d.Value
	}
	shares := make([]float64, len(c.cfg.Data))
	for i, d := range c.cfg.Data {
		shares[i] = d.Value / total
	}

	center := geom.Pt((m.Margin+legend.StartX-2*m.LegendGap)/2, c.cfg.Height/2)
	radius := math.Min(center.X-m.Margin, center.Y-m.Margin)
	return Layout{
		Legend: legend,
		Center: center,
		Radius: radius,
		Inner:  c.cfg.InnerRadius * radius,
		Shares: shares,
		Total:  total,
	}
}

func (c *Chart) drawLegend() {
	m := c.cfg.Metrics
	style := chart.TextStyle{
		Paint:    chart.Solid(c.cfg.Theme.Legend),
		Font:     m.Font,
		Align:    chart.AlignLeft,
		Baseline: chart.BaselineMiddle,
	}
	for _, e := range c.layout.Legend.Entries {
		c.surface.FillRect(e.Marker, chart.Solid(e.Color))
		c.surface.Text(e.Text, e.Label, style)
	}
}

// draw clears the pie area and sweeps slices clockwise up to ratio of the
// full circle.
func (c *Chart) draw(ratio float64) {
	l := c.layout
	c.surface.Clear(geom.Rect{W: l.Legend.StartX, H: c.cfg.Height})

	start := StartAngle
	for i, share := range l.Shares {
		end := start + 2*math.Pi*math.Min(share, ratio)
		c.surface.FillAnnulus(l.Center, l.Inner, l.Radius, start, end, chart.Solid(c.cfg.Data[i].Color))
		start = end
		ratio -= share
		if ratio <= 0 {
			break
		}
	}
}

func (c *Chart) drawFocused() {
	c.draw(1)

	idx := c.state.Focus.Index()
	if idx == hittest.None {
		return
	}
	l := c.layout
	start, end := l.Span(idx)
	c.surface.StrokeAnnulus(l.Center, l.Inner, l.Radius, start, end, chart.LineStyle{
		Paint: chart.Solid(c.cfg.Theme.Focus),
		Width: c.cfg.Metrics.FocusStroke,
	})
}

// PointerMove focuses the slice under p. The donut hole focuses nothing.
// It is ignored while the chart animates.
func (c *Chart) PointerMove(p geom.Point) {
	if !c.ready {
		return
	}
	idx := hittest.Radial{
		Center: c.layout.Center,
		Outer:  c.layout.Radius,
		Inner:  c.layout.Inner,
		Shares: c.layout.Shares,
	}.Index(p)
	if c.state.Hover(idx) {
		c.drawFocused()
	}
}

// PointerLeave clears the focus.
func (c *Chart) PointerLeave() {
	if c.ready && c.state.Hover(hittest.None) {
		c.drawFocused()
	}
}

// Tooltip describes the focused slice, anchored halfway through the ring at
// the slice's middle angle.
func (c *Chart) Tooltip() (chart.Tooltip, bool) {
	idx := c.state.Focus.Index()
	if !c.ready || idx == hittest.None {
		return chart.Tooltip{}, false
	}
	m := c.cfg.Metrics
	l := c.layout
	d := c.cfg.Data[idx]
	start, end := l.Span(idx)

	return chart.Tooltip{
		Items: []chart.TooltipItem{{
			Label: d.Label,
			Value: fmt.Sprintf("%s (%.1f%%)", c.cfg.Format.Value(d.Value), l.Shares[idx]*100),
			Color: d.Color,
		}},
		Anchor: l.Center.Polar((l.Radius+l.Inner)/2, (start+end)/2),
		Top:    m.Margin,
		Bottom: c.cfg.Height - m.Margin,
		Right:  c.cfg.Width - m.Margin,
		Clamp:  true,
	}, true
}

// Layout returns the geometry of the last render. ok is false when the
// render failed.
func (c *Chart) Layout() (Layout, bool) {
	return c.layout, c.ready
}

// Focused returns the focused slice or hittest.None.
func (c *Chart) Focused() int {
	return c.state.Focus.Index()
}

// Animating reports whether the sweep animation is running.
func (c *Chart) Animating() bool {
	return c.state.Animating()
}

// Cleanup cancels the running animation. It is safe to call repeatedly.
func (c *Chart) Cleanup() {
	c.state.Anim.Cancel()
}
