package piechart_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/kpumuk/lazychart/internal/chart"
	"github.com/kpumuk/lazychart/internal/chart/charttest"
	"github.com/kpumuk/lazychart/internal/chart/piechart"
	"github.com/kpumuk/lazychart/internal/charterr"
	"github.com/kpumuk/lazychart/internal/geom"
	"github.com/kpumuk/lazychart/internal/hittest"
)

const frame = 16 * time.Millisecond

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func sample() []piechart.Datum {
	return []piechart.Datum{
		{Label: "A", Value: 50, Color: "#FF0000"},
		{Label: "B", Value: 30, Color: "#00FF00"},
		{Label: "C", Value: 20, Color: "#0000FF"},
	}
}

func render(t *testing.T) (*piechart.Chart, *charttest.Host, *charttest.Surface) {
	t.Helper()
	host := charttest.NewHost(0)
	s := charttest.NewSurface()
	c := piechart.New(host, s)
	if err := c.Render(piechart.Config{Data: sample(), InnerRadius: 0.5, Width: 600, Height: 400}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return c, host, s
}

func TestLayoutLegendColumns(t *testing.T) {
	t.Parallel()

	data := []piechart.Datum{{Label: "alpha"}, {Label: "b"}, {Label: "gamma"}, {Label: "d"}, {Label: "e"}}
	legend := piechart.LayoutLegend(charttest.NewSurface(), data, 600, 100, chart.DefaultMetrics())

	if !approx(legend.StartX, 392) {
		t.Fatalf("StartX = %v, want 392", legend.StartX)
	}
	wantX := []float64{392, 392, 462, 462, 532}
	wantY := []float64{30, 50, 30, 50, 30}
	for i, e := range legend.Entries {
		if !approx(e.Marker.X, wantX[i]) || !approx(e.Marker.Y, wantY[i]) {
			t.Fatalf("Entries[%d].Marker = %+v, want at (%v, %v)", i, e.Marker, wantX[i], wantY[i])
		}
	}
	if got := legend.Entries[0].Text; !approx(got.X, 412) || !approx(got.Y, 35) {
		t.Fatalf("Entries[0].Text = %v, want (412, 35)", got)
	}
}

func TestLayoutLegendEllipsizesLongLabels(t *testing.T) {
	t.Parallel()

	data := []piechart.Datum{{Label: "abcdefgh"}}
	legend := piechart.LayoutLegend(charttest.NewSurface(), data, 100, 400, chart.DefaultMetrics())
	if got := legend.Entries[0].Label; got != "a…" {
		t.Fatalf("Entries[0].Label = %q, want %q", got, "a…")
	}
}

func TestLayoutLegendTooShort(t *testing.T) {
	t.Parallel()

	legend := piechart.LayoutLegend(charttest.NewSurface(), sample(), 600, 60, chart.DefaultMetrics())
	if len(legend.Entries) != 0 || legend.StartX != 570 {
		t.Fatalf("LayoutLegend(height 60) = %+v, want no entries starting at 570", legend)
	}
}

func TestRenderLayout(t *testing.T) {
	t.Parallel()

	c, _, s := render(t)
	l, ok := c.Layout()
	if !ok {
		t.Fatalf("Layout() ok = false, want true")
	}
	if !approx(l.Legend.StartX, 532) {
		t.Fatalf("Legend.StartX = %v, want 532", l.Legend.StartX)
	}
	if !approx(l.Center.X, 271) || !approx(l.Center.Y, 200) {
		t.Fatalf("Center = %v, want (271, 200)", l.Center)
	}
	if !approx(l.Radius, 170) || !approx(l.Inner, 85) {
		t.Fatalf("Radius, Inner = %v, %v, want 170, 85", l.Radius, l.Inner)
	}
	if n := len(s.Kind("text")); n != 3 {
		t.Fatalf("legend labels = %d, want 3", n)
	}
}

func TestSweepAnimation(t *testing.T) {
	t.Parallel()

	c, host, s := render(t)

	// t = 0.5 eases to 0.5: exactly the first slice.
	host.Frame(750 * time.Millisecond)
	slices := s.Kind("annulus")
	last := slices[len(slices)-1]
	if last.Paint.Color != "#FF0000" || !approx(last.End-last.Start, math.Pi) {
		t.Fatalf("last slice at t=0.5 = %+v, want half a turn of A", last)
	}
	if n := s.Count("annulus"); n != 1 {
		t.Fatalf("slices at t=0.5 = %d, want 1", n)
	}

	host.Settle(frame, 500)
	if c.Animating() {
		t.Fatalf("Animating() = true after settling, want false")
	}
	if n := s.Count("annulus"); n != 3 {
		t.Fatalf("slices after settling = %d, want 3", n)
	}
	clears := s.Kind("clear")
	if got := clears[len(clears)-1].Rect; got != (geom.Rect{W: 532, H: 400}) {
		t.Fatalf("pie clear = %+v, want the area left of the legend", got)
	}
}

func TestPointerMoveFocusesSlice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    geom.Point
		want int
	}{
		{name: "top", p: geom.Pt(271, 80), want: 0},
		{name: "left", p: geom.Pt(151, 200), want: 1},
		{name: "upper left", p: geom.Pt(200, 103), want: 2},
		{name: "hole", p: geom.Pt(271, 240), want: hittest.None},
		{name: "outside", p: geom.Pt(271, 380), want: hittest.None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, host, _ := render(t)
			host.Settle(frame, 500)
			c.PointerMove(tt.p)
			if got := c.Focused(); got != tt.want {
				t.Fatalf("PointerMove(%v) focus = %d, want %d", tt.p, got, tt.want)
			}
		})
	}
}

func TestFocusedSliceStrokeAndTooltip(t *testing.T) {
	t.Parallel()

	c, host, s := render(t)
	host.Settle(frame, 500)
	c.PointerMove(geom.Pt(151, 200))

	strokes := s.Kind("stroke-annulus")
	if len(strokes) != 1 {
		t.Fatalf("focus strokes = %d, want 1", len(strokes))
	}
	st := strokes[0]
	if !approx(st.Start, 2.5*math.Pi) || !approx(st.End, 3.1*math.Pi) {
		t.Fatalf("focus stroke span = [%v, %v], want [2.5π, 3.1π]", st.Start, st.End)
	}
	if st.Line.Width != 3 || st.Paint.Color != "#FFFFFF" {
		t.Fatalf("focus stroke style = %+v, want white width 3", st.Line)
	}

	tip, ok := c.Tooltip()
	if !ok {
		t.Fatalf("Tooltip() ok = false, want true")
	}
	if got := tip.Items[0].Value; got != "30 (30.0%)" {
		t.Fatalf("Tooltip().Items[0].Value = %q, want %q", got, "30 (30.0%)")
	}
	want := geom.Pt(271, 200).Polar(127.5, 2.8*math.Pi)
	if !approx(tip.Anchor.X, want.X) || !approx(tip.Anchor.Y, want.Y) {
		t.Fatalf("Tooltip().Anchor = %v, want %v", tip.Anchor, want)
	}

	// Clamped inside the right margin instead of flipped.
	tip.Anchor.X = 550
	if pos := tip.Place(100, 40); !approx(pos.X, 470) {
		t.Fatalf("Place().X = %v, want 470", pos.X)
	}
}

func TestRenderNegativeRadiusKeepsLegend(t *testing.T) {
	t.Parallel()

	host := charttest.NewHost(0)
	s := charttest.NewSurface()
	c := piechart.New(host, s)
	err := c.Render(piechart.Config{Data: sample(), Width: 100, Height: 400})

	var layout *charterr.InvalidLayoutError
	if !errors.As(err, &layout) || layout.Field != "radius" {
		t.Fatalf("Render() error = %v, want InvalidLayoutError on radius", err)
	}
	if n := s.Count("rect"); n != 3 {
		t.Fatalf("legend markers = %d, want 3", n)
	}
	if s.Count("annulus") != 0 || host.PendingFrames() != 0 {
		t.Fatalf("pie drawn or animated with a negative radius")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		data      []piechart.Datum
		inner     float64
		wantField string
	}{
		{name: "negative", data: []piechart.Datum{{Value: 1}, {Value: -1}}, wantField: "data[1].value"},
		{name: "nan", data: []piechart.Datum{{Value: math.NaN()}}, wantField: "data[0].value"},
		{name: "zero total", data: []piechart.Datum{{Value: 0}, {Value: 0}}, wantField: "data"},
		{name: "inner too large", data: sample(), inner: 1, wantField: "innerRadius"},
		{name: "inner negative", data: sample(), inner: -0.1, wantField: "innerRadius"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := piechart.Validate(tt.data, tt.inner)
			var invalid *charterr.InvalidInputError
			if !errors.As(err, &invalid) || invalid.Field != tt.wantField {
				t.Fatalf("Validate() error = %v, want InvalidInputError on %s", err, tt.wantField)
			}
		})
	}

	var empty *charterr.EmptyDatasetError
	if err := piechart.Validate(nil, 0); !errors.As(err, &empty) {
		t.Fatalf("Validate(nil) error = %v, want EmptyDatasetError", err)
	}
}

func TestCleanupIsIdempotent(t *testing.T) {
	t.Parallel()

	c, host, _ := render(t)
	c.Cleanup()
	c.Cleanup()
	if c.Animating() || host.PendingFrames() != 0 {
		t.Fatalf("Cleanup() left animation running")
	}
}
