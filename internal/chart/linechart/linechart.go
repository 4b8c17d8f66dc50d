// Package linechart draws multi-series line charts. Missing samples break
// the line instead of being drawn as zero.
package linechart

import (
	"fmt"
	"math"
	"time"

	"github.com/kpumuk/lazychart/internal/axis"
	"github.com/kpumuk/lazychart/internal/chart"
	"github.com/kpumuk/lazychart/internal/charterr"
	"github.com/kpumuk/lazychart/internal/geom"
	"github.com/kpumuk/lazychart/internal/hittest"
	"github.com/kpumuk/lazychart/internal/mathutil"
)

// DefaultDuration is the length of the draw-in animation.
const DefaultDuration = 1500 * time.Millisecond

// Value is the sample of one series at a category. Null marks a gap.
type Value struct {
	Name  string
	Value float64
	Null  bool
}

// Datum is one category on the x axis.
type Datum struct {
	Label  string
	Values []Value
}

// Sample is a series value at a category index; Valid is false for gaps.
type Sample struct {
	Value float64
	Valid bool
}

// Series is one line, with a sample for every category.
type Series struct {
	Name   string
	Color  string
	Values []Sample
}

// BuildSeries pivots data into series ordered by first appearance.
func BuildSeries(data []Datum, colors map[string]string) []Series {
	var series []Series
	index := make(map[string]int)
	for i, d := range data {
		for _, v := range d.Values {
			k, ok := index[v.Name]
			if !ok {
				k = len(series)
				index[v.Name] = k
				series = append(series, Series{
					Name:   v.Name,
					Color:  colors[v.Name],
					Values: make([]Sample, len(data)),
				})
			}
			series[k].Values[i] = Sample{Value: v.Value, Valid: !v.Null}
		}
	}
	return series
}

// Config describes one render.
type Config struct {
	Data      []Datum
	Colors    map[string]string
	LineWidth float64
	Width     float64
	Height    float64
	Theme     chart.Theme
	Metrics   chart.Metrics
	Format    chart.Formatter
	Duration  time.Duration
}

// Layout is the geometry computed by Render.
type Layout struct {
	Plot      geom.Rect
	OriginX   float64
	OriginY   float64
	EndX      float64
	IntervalX float64
	Tilt      float64
	Scale     axis.Scale
}

// X returns the horizontal position of category i.
func (l Layout) X(i int) float64 {
	return l.OriginX + float64(i)*l.IntervalX
}

// Y returns the vertical position of value v.
func (l Layout) Y(v float64) float64 {
	return l.OriginY - l.Scale.Pixel(v)
}

// Chart is a line chart bound to a host and a surface.
type Chart struct {
	host    chart.Host
	surface chart.Surface
	state   chart.InteractionState

	cfg    Config
	series []Series
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

// Validate checks that data has at least one category and that every
// non-null value is finite.
func Validate(data []Datum) error {
	if len(data) == 0 {
		return &charterr.EmptyDatasetError{Chart: "line chart"}
	}
	for i, d := range data {
		for j, v := range d.Values {
			if v.Null {
				continue
			}
			if err := charterr.CheckFinite(fmt.Sprintf("data[%d].values[%d].value", i, j), v.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// Render lays out cfg and starts the draw-in animation, cancelling any
// transition and focus left from a previous render. Data that cannot be laid
// out leaves bare axes on the surface and returns the reason.
func (c *Chart) Render(cfg Config) error {
	c.state.Reset()
	c.ready = false
	c.cfg = withDefaults(cfg)

	if err := chart.CheckSize(c.cfg.Width, c.cfg.Height); err != nil {
		return err
	}
	if err := Validate(c.cfg.Data); err != nil {
		c.drawFrame()
		return err
	}
	c.series = BuildSeries(c.cfg.Data, c.cfg.Colors)
	layout, err := c.computeLayout()
	if err != nil {
		c.drawFrame()
		return err
	}
	c.layout = layout
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
	if cfg.LineWidth <= 0 {
		cfg.LineWidth = 1
	}
	return cfg
}

func (c *Chart) computeLayout() (Layout, error) {
	m := c.cfg.Metrics
	data := c.cfg.Data

	var valueLabels []string
	minValue, maxValue := 0.0, math.Inf(-1)
	for _, d := range data {
		for _, v := range d.Values {
			if v.Null {
				continue
			}
			valueLabels = append(valueLabels, c.cfg.Format.Value(v.Value))
			minValue = math.Min(minValue, v.Value)
			maxValue = math.Max(maxValue, v.Value)
		}
	}
	if math.IsInf(maxValue, -1) {
		maxValue = 0
	}

	labels := make([]string, len(data))
	for i, d := range data {
		labels[i] = d.Label
	}

	originX := chart.MaxTextWidth(c.surface, valueLabels, m.Font) + m.ValueGap + m.Margin
	endX := c.cfg.Width - m.Margin - c.surface.MeasureText(labels[len(labels)-1], m.Font)/2
	intervalX := endX - originX
	if len(data) > 1 {
		intervalX /= float64(len(data) - 1)
	}
	if !(intervalX > 0) {
		return Layout{}, &charterr.InvalidLayoutError{Field: "intervalX", Value: intervalX}
	}

	maxLabelWidth := chart.MaxTextWidth(c.surface, labels, m.Font)
	tilt := chart.Tilt(intervalX, maxLabelWidth)
	originY := c.cfg.Height - maxLabelWidth*math.Sin(tilt) - m.Margin - m.FontHeight

	lo, hi := axis.Buffer(minValue, maxValue, axis.ZeroUnlessNegative)
	scale, err := axis.PlanSpacing(lo, hi, originY-m.Margin, m.TickSpacing)
	if err != nil {
		return Layout{}, fmt.Errorf("line chart value axis: %w", err)
	}

	return Layout{
		Plot:      geom.Rect{X: originX, Y: m.Margin, W: endX - originX, H: originY - m.Margin},
		OriginX:   originX,
		OriginY:   originY,
		EndX:      endX,
		IntervalX: intervalX,
		Tilt:      tilt,
		Scale:     scale,
	}, nil
}

func (c *Chart) drawFrame() {
	chart.DrawFrame(c.surface, c.cfg.Width, c.cfg.Height, c.cfg.Theme, c.cfg.Metrics)
}

func (c *Chart) drawAxes() {
	l := c.layout
	m := c.cfg.Metrics

	c.surface.Clear(chart.Bounds(c.cfg.Width, c.cfg.Height))

	labels := make([]string, len(c.cfg.Data))
	for i, d := range c.cfg.Data {
		labels[i] = d.Label
	}
	chart.CategoryAxis{
		OriginX:  l.OriginX,
		OriginY:  l.OriginY,
		End:      l.EndX,
		Top:      m.Margin,
		Interval: l.IntervalX,
		Ticks:    len(labels),
		Labels:   labels,
		Tilt:     l.Tilt,
	}.Draw(c.surface, c.cfg.Theme, m)

	chart.ValueAxis{
		OriginX: l.OriginX,
		OriginY: l.OriginY,
		Top:     m.Margin,
		GridEnd: l.EndX,
		Scale:   l.Scale,
		Label:   c.cfg.Format.Value,
	}.Draw(c.surface, c.cfg.Theme, m)
}

// draw repaints the chart with every series drawn up to ratio of the x axis.
func (c *Chart) draw(ratio float64) {
	c.drawAxes()
	endIndex := float64(len(c.cfg.Data)-1) * ratio
	for _, s := range c.series {
		c.drawSeries(s, endIndex)
	}
}

// drawSeries draws dots and segments up to the fractional category endIndex.
func (c *Chart) drawSeries(s Series, endIndex float64) {
	l := c.layout
	line := chart.LineStyle{Paint: chart.Solid(s.Color), Width: c.cfg.LineWidth}
	dot := chart.Solid(s.Color)
	complete := int(math.Floor(endIndex))

	var prev geom.Point
	connected := false
	for i := 0; i <= complete && i < len(s.Values); i++ {
		if !s.Values[i].Valid {
			connected = false
			continue
		}
		p := geom.Pt(l.X(i), l.Y(s.Values[i].Value))
		if connected {
			c.surface.Line(prev, p, line)
		}
		c.surface.Circle(p, c.cfg.Metrics.DotRadius, dot)
		prev, connected = p, true
	}

	next := complete + 1
	if float64(complete) < endIndex && connected && next < len(s.Values) && s.Values[next].Valid {
		f := endIndex - float64(complete)
		to := geom.Pt(
			mathutil.Lerp(prev.X, l.X(next), f),
			mathutil.Lerp(prev.Y, l.Y(s.Values[next].Value), f),
		)
		c.surface.Line(prev, to, line)
	}
}

func (c *Chart) drawFocused() {
	c.draw(1)

	idx := c.state.Focus.Index()
	if idx == hittest.None {
		return
	}
	m := c.cfg.Metrics
	l := c.layout
	x := l.X(idx)

	for _, v := range c.cfg.Data[idx].Values {
		if v.Null {
			continue
		}
		paint := chart.Paint{Color: c.cfg.Colors[v.Name], Opacity: m.FocusOpacity}
		c.surface.Circle(geom.Pt(x, l.Y(v.Value)), m.FocusDotRadius, paint)
	}

	guide := m.AxisLine(c.cfg.Theme)
	guide.Dash = m.GuideDash
	c.surface.Line(geom.Pt(x, l.OriginY), geom.Pt(x, m.Margin), guide)
}

// PointerMove focuses the category nearest to p. It is ignored while the
// chart animates.
func (c *Chart) PointerMove(p geom.Point) {
	if !c.ready {
		return
	}
	idx := hittest.Column{
		OriginX:  c.layout.OriginX,
		Interval: c.layout.IntervalX,
		Count:    len(c.cfg.Data),
		Plot:     c.layout.Plot,
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

// Tooltip describes the focused category. It is centered vertically on the
// average of the non-null values.
func (c *Chart) Tooltip() (chart.Tooltip, bool) {
	idx := c.state.Focus.Index()
	if !c.ready || idx == hittest.None {
		return chart.Tooltip{}, false
	}
	m := c.cfg.Metrics
	l := c.layout
	d := c.cfg.Data[idx]

	items := make([]chart.TooltipItem, 0, len(d.Values))
	var sum float64
	var n int
	for _, v := range d.Values {
		value := "-"
		if !v.Null {
			value = c.cfg.Format.Value(v.Value)
			sum += v.Value
			n++
		}
		items = append(items, chart.TooltipItem{Label: v.Name, Value: value, Color: c.cfg.Colors[v.Name]})
	}
	y := l.OriginY
	if n > 0 {
		y = l.Y(sum / float64(n))
	}

	return chart.Tooltip{
		Title:  d.Label,
		Items:  items,
		Anchor: geom.Pt(l.X(idx)+m.FocusDotRadius, y),
		VAlign: 0.5,
		Top:    m.Margin,
		Bottom: l.OriginY,
		Right:  c.cfg.Width - m.Margin,
		Flip:   m.FocusDotRadius,
	}, true
}

// Series returns the series built by the last render.
func (c *Chart) Series() []Series {
	return c.series
}

// Layout returns the geometry of the last successful render.
func (c *Chart) Layout() (Layout, bool) {
	return c.layout, c.ready
}

// Focused returns the focused category or hittest.None.
func (c *Chart) Focused() int {
	return c.state.Focus.Index()
}

// Animating reports whether the draw-in animation is running.
func (c *Chart) Animating() bool {
	return c.state.Animating()
}

// Cleanup cancels the running animation. It is safe to call repeatedly.
func (c *Chart) Cleanup() {
	c.state.Anim.Cancel()
}
