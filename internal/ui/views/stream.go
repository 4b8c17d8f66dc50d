package views

import (
	"errors"
	"slices"
	"strconv"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/kpumuk/lazychart/internal/bucket"
	"github.com/kpumuk/lazychart/internal/chart/streamchart"
	"github.com/kpumuk/lazychart/internal/ui/components/statusbar"
	"github.com/kpumuk/lazychart/internal/ui/format"
)

// RangePresets are the visible ranges the range keys step through.
var RangePresets = []time.Duration{
	5 * time.Second,
	10 * time.Second,
	15 * time.Second,
	30 * time.Second,
	time.Minute,
	5 * time.Minute,
	10 * time.Minute,
	30 * time.Minute,
	time.Hour,
}

// DrawIntervalPresets are the redraw periods the interval keys step through.
var DrawIntervalPresets = []time.Duration{
	time.Second,
	5 * time.Second,
	10 * time.Second,
	15 * time.Second,
	30 * time.Second,
}

// StreamOptions configures a Stream view.
type StreamOptions struct {
	Source       string
	Range        time.Duration
	DrawInterval time.Duration
}

// Stream shows live events bucketed over a sliding window.
type Stream struct {
	env  Env
	dark bool
	pane pane

	chart        *streamchart.Chart
	source       string
	ranges       []time.Duration
	rangeIdx     int
	intervals    []time.Duration
	intervalIdx  int
	pending      []bucket.Point
	latest       time.Time
	events       int
	outOfOrder   int
	rendered     bool
	renderFailed error
}

// NewStream creates a streaming bar chart view.
func NewStream(env Env, opts StreamOptions) *Stream {
	if opts.Range <= 0 {
		opts.Range = time.Minute
	}
	if opts.DrawInterval <= 0 {
		opts.DrawInterval = streamchart.DefaultDrawInterval
	}
	s := &Stream{
		env:    env.withDefaults(),
		dark:   true,
		pane:   newPane("Events"),
		source: opts.Source,
	}
	s.ranges, s.rangeIdx = withPreset(RangePresets, opts.Range)
	s.intervals, s.intervalIdx = withPreset(DrawIntervalPresets, opts.DrawInterval)
	s.chart = streamchart.New(s.env.Host, s.pane.canvas)
	return s
}

// withPreset returns presets with d added in order, and the index of d.
func withPreset(presets []time.Duration, d time.Duration) ([]time.Duration, int) {
	out := slices.Clone(presets)
	i, found := slices.BinarySearch(out, d)
	if !found {
		out = slices.Insert(out, i, d)
	}
	return out, i
}

// Init implements View. The stream keeps its data and timer across
// activations, so only a view that was never drawn renders here.
func (s *Stream) Init() tea.Cmd {
	if !s.rendered {
		s.render()
	}
	return nil
}

func (s *Stream) points() []bucket.Point {
	var pts []bucket.Point
	for _, b := range s.chart.Buckets() {
		pts = append(pts, b.Points...)
	}
	return append(pts, s.pending...)
}

func (s *Stream) render() {
	width, height := s.pane.size()
	if width == 0 || height == 0 {
		return
	}
	th, m := s.env.chartTheme(s.dark)
	pts := s.points()
	err := s.chart.Render(streamchart.Config{
		Data:         pts,
		Range:        s.Range(),
		DrawInterval: s.DrawInterval(),
		Width:        width,
		Height:       height,
		BarColor:     s.env.Theme.SeriesColor(0, s.dark),
		Theme:        th,
		Metrics:      m,
		Format:       s.env.Format,
	})
	s.renderFailed = err
	if err != nil {
		s.pending = pts
		s.env.Logger.Warn("stream chart render failed", "error", err)
		return
	}
	s.pending = nil
	s.rendered = true
}

func (s *Stream) add(points []bucket.Point) {
	s.events += len(points)
	for _, p := range points {
		// The aggregator appends to its newest bucket, so late events
		// are dropped rather than misfiled.
		if p.Time.Before(s.latest) {
			s.outOfOrder++
			s.env.Logger.Debug("late event dropped", "time", p.Time, "latest", s.latest)
			continue
		}
		s.latest = p.Time
		err := s.chart.AddData(p)
		switch {
		case err == nil:
		case errors.Is(err, streamchart.ErrNotRendered):
			s.pending = append(s.pending, p)
		default:
			s.outOfOrder++
			s.env.Logger.Debug("event dropped", "time", p.Time, "error", err)
		}
	}
}

// Update implements View.
func (s *Stream) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case PointsMsg:
		s.add(msg.Points)
	case PointerMsg:
		s.pane.movePointer(s.chart, msg)
	case PointerLeaveMsg:
		s.chart.PointerLeave()
	case BackgroundMsg:
		if msg.Dark != s.dark {
			s.dark = msg.Dark
			s.render()
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, rangeDownKey):
			s.stepRange(-1)
		case key.Matches(msg, rangeUpKey):
			s.stepRange(1)
		case key.Matches(msg, intervalDownKey):
			s.stepInterval(-1)
		case key.Matches(msg, intervalUpKey):
			s.stepInterval(1)
		}
	}
	return s, nil
}

func (s *Stream) stepRange(delta int) {
	i := s.rangeIdx + delta
	if i < 0 || i >= len(s.ranges) || i == s.rangeIdx {
		return
	}
	s.rangeIdx = i
	if !s.rendered {
		return
	}
	if err := s.chart.SetRange(s.ranges[i]); err != nil {
		s.env.Logger.Warn("stream chart range change failed", "range", s.ranges[i], "error", err)
	}
}

func (s *Stream) stepInterval(delta int) {
	i := s.intervalIdx + delta
	if i < 0 || i >= len(s.intervals) || i == s.intervalIdx {
		return
	}
	s.intervalIdx = i
	s.render()
}

// Range returns the visible range.
func (s *Stream) Range() time.Duration {
	return s.ranges[s.rangeIdx]
}

// DrawInterval returns the redraw period.
func (s *Stream) DrawInterval() time.Duration {
	return s.intervals[s.intervalIdx]
}

// View implements View.
func (s *Stream) View() string {
	meta := "last " + format.Span(s.Range())
	if l, ok := s.chart.Layout(); ok {
		meta += " by " + format.Span(l.Interval)
	}
	return s.pane.render(s.chart, meta)
}

// Name implements View.
func (s *Stream) Name() string {
	return "Stream"
}

// ShortHelp implements View.
func (s *Stream) ShortHelp() []key.Binding {
	return []key.Binding{rangeDownKey, rangeUpKey, intervalDownKey, intervalUpKey}
}

// SetSize implements View.
func (s *Stream) SetSize(width, height int) View {
	if s.pane.setSize(width, height) {
		s.render()
	}
	return s
}

// SetStyles implements View.
func (s *Stream) SetStyles(styles Styles) View {
	s.pane.styles = styles
	return s
}

// Status implements StatusProvider.
func (s *Stream) Status() []statusbar.Item {
	items := []statusbar.Item{
		{Label: "Source", Value: s.source},
		{Label: "Events", Value: format.Number(int64(s.events))},
		{Label: "Buckets", Value: strconv.Itoa(len(s.chart.Buckets()))},
		{Label: "Redraw", Value: format.Span(s.DrawInterval())},
	}
	if s.outOfOrder > 0 {
		items = append(items, statusbar.Item{Label: "Dropped", Value: strconv.Itoa(s.outOfOrder)})
	}
	return items
}

// Err implements ErrorProvider. It reports the last failed render or, after
// a successful one, the last failed periodic redraw.
func (s *Stream) Err() error {
	if s.renderFailed != nil {
		return s.renderFailed
	}
	return s.chart.Err()
}

// Chart returns the underlying chart.
func (s *Stream) Chart() *streamchart.Chart {
	return s.chart
}
