// Package streamchart draws a live bar chart of event counts per time bucket.
// The visible window follows the host clock; every redraw animates bars from
// their on-screen geometry to the newly aggregated one.
package streamchart

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/kpumuk/lazychart/internal/axis"
	"github.com/kpumuk/lazychart/internal/bucket"
	"github.com/kpumuk/lazychart/internal/chart"
	"github.com/kpumuk/lazychart/internal/charterr"
	"github.com/kpumuk/lazychart/internal/geom"
	"github.com/kpumuk/lazychart/internal/hittest"
	"github.com/kpumuk/lazychart/internal/snapshot"
)

const (
	// DefaultDuration is the length of the transition between two redraws.
	DefaultDuration = 200 * time.Millisecond
	// DefaultDrawInterval is how often the window is re-aggregated.
	DefaultDrawInterval = time.Second
	// BarMarginRatio is the share of a slot left empty on each side of a bar.
	BarMarginRatio = 0.2
	// BarWidthRatio is the share of a slot covered by its bar.
	BarWidthRatio = 1 - 2*BarMarginRatio
)

// ErrNotRendered is returned by operations that need a prior Render.
var ErrNotRendered = errors.New("stream chart is not rendered")

var errNonPositive = errors.New("must be positive")

// Config describes one render.
type Config struct {
	Data         []bucket.Point
	Range        time.Duration
	DrawInterval time.Duration
	Width        float64
	Height       float64
	BarColor     string
	Theme        chart.Theme
	Metrics      chart.Metrics
	Format       chart.Formatter
	Duration     time.Duration
}

// Layout is the geometry of the current window.
type Layout struct {
	Plot       geom.Rect
	OriginX    float64
	OriginY    float64
	AxisWidth  float64
	AxisHeight float64
	Interval   time.Duration
	Window     snapshot.Window
	End        int64
	Scale      axis.Scale
}

// Slots returns the number of bar slots in the window.
func (l Layout) Slots() int {
	if l.Interval <= 0 {
		return 0
	}
	return int(math.Round(l.AxisWidth / l.Window.IntervalX))
}

// BarWidth returns the width of a full bar.
func (l Layout) BarWidth() float64 {
	return l.Window.IntervalX * BarWidthRatio
}

// Chart is a streaming bar chart bound to a host and a surface.
type Chart struct {
	host    chart.Host
	surface chart.Surface
	state   chart.InteractionState

	cfg       Config
	agg       *bucket.Aggregator
	layout    Layout
	hasWindow bool
	shown     snapshot.Snapshot
	target    snapshot.Snapshot
	timer     chart.TimerID
	ticking   bool
	ready     bool
	err       error
}

// New creates a chart. Nothing is drawn until Render.
func New(host chart.Host, surface chart.Surface) *Chart {
	return &Chart{
		host:    host,
		surface: surface,
		state:   chart.NewInteractionState(host),
	}
}

// Render regroups cfg.Data, draws the current window and starts the periodic
// redraw. A previous render's timer, transition and snapshots are discarded.
func (c *Chart) Render(cfg Config) error {
	c.Cleanup()
	c.state.Reset()
	c.ready = false
	c.hasWindow = false
	c.target = nil
	c.err = nil
	c.agg = nil
	c.cfg = withDefaults(cfg)

	if err := chart.CheckSize(c.cfg.Width, c.cfg.Height); err != nil {
		return err
	}
	if c.cfg.Range <= 0 {
		c.drawFrame()
		return charterr.NewInvalidInput("range", c.cfg.Range, errNonPositive)
	}
	if c.cfg.DrawInterval <= 0 {
		c.drawFrame()
		return charterr.NewInvalidInput("drawInterval", c.cfg.DrawInterval, errNonPositive)
	}

	m := c.cfg.Metrics
	axisWidth := c.cfg.Width - 3*m.Margin
	axisHeight := c.cfg.Height - 3*m.Margin
	if !(axisWidth > 0) {
		c.drawFrame()
		return &charterr.InvalidLayoutError{Field: "axisWidth", Value: axisWidth}
	}
	if !(axisHeight > 0) {
		c.drawFrame()
		return &charterr.InvalidLayoutError{Field: "axisHeight", Value: axisHeight}
	}

	interval, err := bucket.SelectInterval(c.cfg.Range, axisWidth, m.MinBarWidth)
	if err != nil {
		c.drawFrame()
		return err
	}
	agg, err := bucket.NewAggregator(interval)
	if err != nil {
		c.drawFrame()
		return err
	}
	if err := agg.Rebuild(c.cfg.Data, interval); err != nil {
		c.drawFrame()
		return err
	}
	c.agg = agg
	c.layout = Layout{
		OriginX:    2 * m.Margin,
		OriginY:    c.cfg.Height - 2*m.Margin,
		AxisWidth:  axisWidth,
		AxisHeight: axisHeight,
		Interval:   interval,
	}
	c.layout.Plot = geom.Rect{X: c.layout.OriginX, Y: c.layout.OriginY - axisHeight, W: axisWidth, H: axisHeight}
	c.ready = true

	c.timer = c.host.Every(c.cfg.DrawInterval, func() { c.err = c.Redraw() })
	c.ticking = true
	return c.Redraw()
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
	if cfg.DrawInterval == 0 {
		cfg.DrawInterval = DefaultDrawInterval
	}
	if cfg.BarColor == "" {
		cfg.BarColor = cfg.Theme.Axis
	}
	return cfg
}

// AddData ingests one point. It never redraws; the next periodic redraw
// picks the point up. Points must arrive in non-decreasing time order.
func (c *Chart) AddData(p bucket.Point) error {
	if c.agg == nil {
		return ErrNotRendered
	}
	return c.agg.Ingest(p)
}

// SetRange changes the visible range, regrouping every point into the
// interval that suits it. Bars restart from the baseline.
func (c *Chart) SetRange(r time.Duration) error {
	if !c.ready {
		return ErrNotRendered
	}
	interval, err := bucket.SelectInterval(r, c.layout.AxisWidth, c.cfg.Metrics.MinBarWidth)
	if err != nil {
		return err
	}
	if err := c.agg.SetWidth(interval); err != nil {
		return err
	}
	c.state.Reset()
	c.cfg.Range = r
	c.layout.Interval = interval
	c.hasWindow = false
	c.shown = nil
	return c.Redraw()
}

// Redraw recomputes the window ending at the current bucket, aggregates the
// visible buckets and animates toward them.
//
// Buckets that scrolled out since the previous window are kept for this one
// transition so they slide out of the plot instead of vanishing.
func (c *Chart) Redraw() error {
	if !c.ready {
		return ErrNotRendered
	}
	l := c.layout
	m := c.cfg.Metrics
	iv := l.Interval.Milliseconds()
	now := time.UnixMilli(c.host.NowMillis())

	end := bucket.KeyFor(now, l.Interval)
	start := end - c.cfg.Range.Milliseconds() + iv
	intervalX := l.AxisWidth / (float64(c.cfg.Range) / float64(l.Interval))
	window := snapshot.Window{Start: start, Interval: iv, IntervalX: intervalX, Margin: intervalX * BarMarginRatio}

	prevWindow := window
	if c.hasWindow {
		prevWindow = l.Window
	}
	targets := c.agg.InRange(prevWindow.Start, end)

	lo, hi := axis.Buffer(0, float64(bucket.MaxCount(targets)), axis.ClampAtZero)
	scale, err := axis.PlanSpacing(lo, hi, l.AxisHeight, m.TickSpacing)
	if err != nil {
		return fmt.Errorf("stream chart value axis: %w", err)
	}

	cur := make(snapshot.Snapshot, len(targets))
	for _, b := range targets {
		cur[b.Key] = snapshot.Entry{Offset: window.Offset(b.Key), Height: scale.Pixel(float64(b.Count()))}
	}
	from := snapshot.Coalesce(c.shown, cur, prevWindow)

	c.layout.Window = window
	c.layout.End = end
	c.layout.Scale = scale
	c.hasWindow = true
	c.target = cur

	c.state.Anim.Start(c.cfg.Duration, func(t float64) {
		c.shown = snapshot.Interpolate(from, cur, t)
		c.draw(c.shown)
	}, nil)
	return nil
}

func (c *Chart) drawFrame() {
	chart.DrawFrame(c.surface, c.cfg.Width, c.cfg.Height, c.cfg.Theme, c.cfg.Metrics)
}

func (c *Chart) draw(snap snapshot.Snapshot) {
	l := c.layout
	c.surface.Clear(chart.Bounds(c.cfg.Width, c.cfg.Height))
	c.drawTimeAxis()
	chart.ValueAxis{
		OriginX: l.OriginX,
		OriginY: l.OriginY,
		Top:     l.Plot.Y,
		GridEnd: c.cfg.Width - c.cfg.Metrics.Margin,
		Scale:   l.Scale,
		Label:   c.cfg.Format.Count,
	}.Draw(c.surface, c.cfg.Theme, c.cfg.Metrics)

	paint := chart.Solid(c.cfg.BarColor)
	for _, key := range snap.Keys() {
		e := snap[key]
		x := e.Offset
		endX := x + l.BarWidth()
		if x >= l.AxisWidth || endX <= 0 {
			continue
		}
		x = math.Max(0, x)
		endX = math.Min(l.AxisWidth, endX)
		c.surface.FillRect(geom.Rect{X: l.OriginX + x, Y: l.OriginY - e.Height, W: endX - x, H: e.Height}, paint)
	}
}

// drawTimeAxis labels every slot whose label fits without overlapping the
// previous one.
func (c *Chart) drawTimeAxis() {
	l := c.layout
	m := c.cfg.Metrics
	end := c.cfg.Width - m.Margin
	c.surface.Line(geom.Pt(l.OriginX, l.OriginY), geom.Pt(end, l.OriginY), m.AxisLine(c.cfg.Theme))

	style := chart.TextStyle{Paint: chart.Solid(c.cfg.Theme.Text), Font: m.Font, Align: chart.AlignLeft, Baseline: chart.BaselineMiddle}
	iv := l.Interval.Milliseconds()
	var prevEnd float64
	for t, i := l.Window.Start, 0; t <= l.End; t, i = t+iv, i+1 {
		text := c.cfg.Format.Time(time.UnixMilli(t), l.Interval)
		w := c.surface.MeasureText(text, m.Font)
		x := l.OriginX + float64(i)*l.Window.IntervalX + l.Window.IntervalX/2 - w/2
		if l.OriginX <= x && prevEnd <= x && x+w <= end {
			c.surface.Text(geom.Pt(x, l.OriginY+m.CategoryOffset), text, style)
			prevEnd = x + w
		}
	}
}

// PointerMove focuses the slot under p. It is ignored while a transition
// runs.
func (c *Chart) PointerMove(p geom.Point) {
	if !c.ready {
		return
	}
	c.state.Hover(c.band().Index(p))
}

// PointerLeave clears the focus.
func (c *Chart) PointerLeave() {
	c.state.Hover(hittest.None)
}

func (c *Chart) band() hittest.Band {
	return hittest.Band{
		OriginX:  c.layout.OriginX,
		Interval: c.layout.Window.IntervalX,
		Count:    c.layout.Slots(),
		Plot:     c.layout.Plot,
	}
}

// Tooltip describes the focused slot: its closing time and event count.
func (c *Chart) Tooltip() (chart.Tooltip, bool) {
	idx := c.state.Focus.Index()
	if !c.ready || idx == hittest.None {
		return chart.Tooltip{}, false
	}
	l := c.layout
	key := l.Window.Start + int64(idx)*l.Interval.Milliseconds()

	var count int
	if buckets := c.agg.InRange(key, key); len(buckets) > 0 {
		count = buckets[0].Count()
	}
	height := c.target[key].Height

	return chart.Tooltip{
		Title:  c.cfg.Format.Timestamp(time.UnixMilli(key)),
		Items:  []chart.TooltipItem{{Label: "count", Value: c.cfg.Format.Count(float64(count)), Color: c.cfg.BarColor}},
		Anchor: geom.Pt(l.OriginX+float64(idx)*l.Window.IntervalX+l.Window.IntervalX/2+l.BarWidth()/2, l.OriginY-height),
		Bottom: l.OriginY,
		Right:  c.cfg.Width - c.cfg.Metrics.Margin,
		Flip:   l.BarWidth(),
	}, true
}

// Layout returns the geometry of the current window.
func (c *Chart) Layout() (Layout, bool) {
	return c.layout, c.ready
}

// Shown returns the bar geometry currently on the surface.
func (c *Chart) Shown() snapshot.Snapshot {
	return c.shown
}

// Target returns the bar geometry the running transition moves toward.
func (c *Chart) Target() snapshot.Snapshot {
	return c.target
}

// Buckets returns every bucket aggregated so far.
func (c *Chart) Buckets() []bucket.Bucket {
	if c.agg == nil {
		return nil
	}
	return c.agg.Buckets()
}

// Err returns the error of the last periodic redraw.
func (c *Chart) Err() error {
	return c.err
}

// Focused returns the focused slot or hittest.None.
func (c *Chart) Focused() int {
	return c.state.Focus.Index()
}

// Animating reports whether a transition is running.
func (c *Chart) Animating() bool {
	return c.state.Animating()
}

// Cleanup cancels the running transition and the periodic redraw. It is
// safe to call repeatedly.
func (c *Chart) Cleanup() {
	c.state.Anim.Cancel()
	if c.ticking {
		c.host.CancelTimer(c.timer)
		c.ticking = false
	}
	c.shown = nil
}
