// Package barchart draws stacked bar charts with a grow-in animation and
// per-category tooltips.
package barchart

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/kpumuk/lazychart/internal/axis"
	"github.com/kpumuk/lazychart/internal/chart"
	"github.com/kpumuk/lazychart/internal/charterr"
	"github.com/kpumuk/lazychart/internal/geom"
	"github.com/kpumuk/lazychart/internal/hittest"
)

// DefaultDuration is the length of the grow-in animation.
const DefaultDuration = 1500 * time.Millisecond

// Value is one stacked segment of a bar.
type Value struct {
	Name  string
	Value float64
	Color string
}

// Datum is one category on the x axis.
type Datum struct {
	Label  string
	Values []Value
}

// Sum returns the total height of the stacked bar.
func (d Datum) Sum() float64 {
	var sum float64
	for _, v := range d.Values {
		sum += v.Value
	}
	return sum
}

// Config describes one render.
type Config struct {
	Data     []Datum
	Width    float64
	Height   float64
	Theme    chart.Theme
	Metrics  chart.Metrics
	Format   chart.Formatter
	Duration time.Duration
}

// Layout is the geometry computed by Render.
type Layout struct {
	Plot      geom.Rect
	OriginX   float64
	OriginY   float64
	End       float64
	IntervalX float64
	BarWidth  float64
	Tilt      float64
	Scale     axis.Scale
	Sums      []float64
}

// BarHeight returns the full height of bar i in pixels.
func (l Layout) BarHeight(i int) float64 {
	return l.Scale.Pixel(l.Sums[i])
}

// BarX returns the left edge of bar i.
func (l Layout) BarX(i int) float64 {
	return l.OriginX + float64(i)*l.IntervalX + l.IntervalX/2 - l.BarWidth/2
}

// Chart is a stacked bar chart bound to a host and a surface.
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

// Validate checks that data has at least one category and that every value
// is finite and non-negative.
func Validate(data []Datum) error {
	if len(data) == 0 {
		return &charterr.EmptyDatasetError{Chart: "bar chart"}
	}
	for i, d := range data {
		for j, v := range d.Values {
			if err := charterr.CheckNonNegative(fmt.Sprintf("data[%d].values[%d].value", i, j), v.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// Render lays out cfg and starts the grow-in animation, cancelling any
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
	return cfg
}

func (c *Chart) computeLayout() (Layout, error) {
	m := c.cfg.Metrics
	data := c.cfg.Data

	sums := make([]float64, len(data))
	sumLabels := make([]string, len(data))
	labels := make([]string, len(data))
	for i, d := range data {
		sums[i] = d.Sum()
		sumLabels[i] = c.cfg.Format.Value(sums[i])
		labels[i] = d.Label
	}

	originX := chart.MaxTextWidth(c.surface, sumLabels, m.Font) + m.ValueGap + m.Margin
	end := c.cfg.Width - m.Margin
	intervalX := (end - originX) / float64(len(data))
	if !(intervalX > 0) {
		return Layout{}, &charterr.InvalidLayoutError{Field: "intervalX", Value: intervalX}
	}

	maxLabelWidth := chart.MaxTextWidth(c.surface, labels, m.Font)
	tilt := chart.Tilt(intervalX, maxLabelWidth)
	originY := c.cfg.Height - maxLabelWidth*math.Sin(tilt) - m.Margin - m.FontHeight

	lo, hi := axis.Buffer(0, slices.Max(sums), axis.ClampAtZero)
	scale, err := axis.PlanSpacing(lo, hi, originY-m.Margin, m.TickSpacing)
	if err != nil {
		return Layout{}, fmt.Errorf("bar chart value axis: %w", err)
	}

	return Layout{
		Plot:      geom.Rect{X: originX, Y: m.Margin, W: end - originX, H: originY - m.Margin},
		OriginX:   originX,
		OriginY:   originY,
		End:       end,
		IntervalX: intervalX,
		BarWidth:  intervalX / 2,
		Tilt:      tilt,
		Scale:     scale,
		Sums:      sums,
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
		OriginX:     l.OriginX,
		OriginY:     l.OriginY,
		End:         l.End,
		Top:         m.Margin,
		Interval:    l.IntervalX,
		Ticks:       len(labels) + 1,
		LabelOffset: l.IntervalX / 2,
		Labels:      labels,
		Tilt:        l.Tilt,
	}.Draw(c.surface, c.cfg.Theme, m)

	chart.ValueAxis{
		OriginX: l.OriginX,
		OriginY: l.OriginY,
		Top:     m.Margin,
		GridEnd: l.End,
		Scale:   l.Scale,
		Label:   c.cfg.Format.Value,
	}.Draw(c.surface, c.cfg.Theme, m)
}

// draw repaints the chart with every bar grown to ratio of its height.
func (c *Chart) draw(ratio float64) {
	c.drawAxes()
	for i := range c.cfg.Data {
		c.drawBar(i, ratio, 1)
	}
}

func (c *Chart) drawFocused() {
	c.drawAxes()
	focused := c.state.Focus.Index()
	for i := range c.cfg.Data {
		opacity := 1.0
		if focused != hittest.None && i != focused {
			opacity = c.cfg.Metrics.DimOpacity
		}
		c.drawBar(i, 1, opacity)
	}
}

func (c *Chart) drawBar(i int, ratio, opacity float64) {
	l := c.layout
	sum := l.Sums[i]
	if sum <= 0 {
		return
	}
	values := slices.DeleteFunc(slices.Clone(c.cfg.Data[i].Values), func(v Value) bool { return v.Value == 0 })

	height := l.BarHeight(i) * ratio
	x := l.BarX(i)
	top := l.OriginY
	r := c.cfg.Metrics.BarRadius
	for j, v := range values {
		h := height * v.Value / sum
		top -= h
		rect := geom.Rect{X: x, Y: top, W: l.BarWidth, H: h}
		paint := chart.Paint{Color: v.Color, Opacity: opacity}
		if j == len(values)-1 {
			c.surface.RoundRect(rect, chart.Radii{TopLeft: r, TopRight: r}, paint)
			continue
		}
		c.surface.FillRect(rect, paint)
	}
}

// PointerMove focuses the category under p. It is ignored while the chart
// animates.
func (c *Chart) PointerMove(p geom.Point) {
	if !c.ready {
		return
	}
	idx := hittest.Band{
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

// Tooltip describes the focused category, segments listed top first.
func (c *Chart) Tooltip() (chart.Tooltip, bool) {
	idx := c.state.Focus.Index()
	if !c.ready || idx == hittest.None {
		return chart.Tooltip{}, false
	}
	l := c.layout
	values := c.cfg.Data[idx].Values
	items := make([]chart.TooltipItem, 0, len(values))
	for _, v := range slices.Backward(values) {
		items = append(items, chart.TooltipItem{Label: v.Name, Value: c.cfg.Format.Value(v.Value), Color: v.Color})
	}
	return chart.Tooltip{
		Items:  items,
		Anchor: geom.Pt(l.BarX(idx)+l.BarWidth, l.OriginY-l.BarHeight(idx)),
		Bottom: l.OriginY,
		Right:  c.cfg.Width - c.cfg.Metrics.Margin,
		Flip:   l.BarWidth,
	}, true
}

// Layout returns the geometry of the last successful render.
func (c *Chart) Layout() (Layout, bool) {
	return c.layout, c.ready
}

// Focused returns the focused category or hittest.None.
func (c *Chart) Focused() int {
	return c.state.Focus.Index()
}

// Animating reports whether the grow-in animation is running.
func (c *Chart) Animating() bool {
	return c.state.Animating()
}

// Cleanup cancels the running animation. It is safe to call repeatedly.
func (c *Chart) Cleanup() {
	c.state.Anim.Cancel()
}
