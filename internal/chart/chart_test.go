package chart_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/kpumuk/lazychart/internal/axis"
	"github.com/kpumuk/lazychart/internal/chart"
	"github.com/kpumuk/lazychart/internal/chart/charttest"
	"github.com/kpumuk/lazychart/internal/charterr"
	"github.com/kpumuk/lazychart/internal/geom"
	"github.com/kpumuk/lazychart/internal/hittest"
)

func TestTooltipPlace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tip  chart.Tooltip
		w, h float64
		want geom.Point
	}{
		{
			name: "fits",
			tip:  chart.Tooltip{Anchor: geom.Pt(100, 200), Bottom: 300, Right: 500},
			w:    50, h: 40,
			want: geom.Pt(100, 200),
		},
		{
			name: "pushed above the bottom",
			tip:  chart.Tooltip{Anchor: geom.Pt(100, 290), Bottom: 300, Right: 500},
			w:    50, h: 40,
			want: geom.Pt(100, 260),
		},
		{
			name: "flipped left",
			tip:  chart.Tooltip{Anchor: geom.Pt(480, 100), Bottom: 300, Right: 500, Flip: 8},
			w:    50, h: 40,
			want: geom.Pt(422, 100),
		},
		{
			name: "clamped right",
			tip:  chart.Tooltip{Anchor: geom.Pt(480, 100), Bottom: 300, Right: 500, Clamp: true},
			w:    50, h: 40,
			want: geom.Pt(450, 100),
		},
		{
			name: "centered and kept below top",
			tip:  chart.Tooltip{Anchor: geom.Pt(100, 40), VAlign: 0.5, Top: 30, Bottom: 300, Right: 500},
			w:    50, h: 40,
			want: geom.Pt(100, 30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.tip.Place(tt.w, tt.h); got != tt.want {
				t.Fatalf("Place(%v, %v) = %v, want %v", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestEllipsis(t *testing.T) {
	t.Parallel()

	s := charttest.NewSurface()
	f := chart.DefaultMetrics().Font

	tests := []struct {
		label    string
		maxWidth float64
		want     string
	}{
		{label: "short", maxWidth: 100, want: "short"},
		{label: "abcdefgh", maxWidth: 48, want: "abcd…"},
		{label: "abcdefgh", maxWidth: 1, want: "a…"},
		{label: "ab", maxWidth: 1, want: "ab"},
	}

	for _, tt := range tests {
		if got := chart.Ellipsis(s, tt.label, tt.maxWidth, f); got != tt.want {
			t.Fatalf("Ellipsis(%q, %v) = %q, want %q", tt.label, tt.maxWidth, got, tt.want)
		}
	}
}

func TestTilt(t *testing.T) {
	t.Parallel()

	if got := chart.Tilt(50, 40); got != 0 {
		t.Fatalf("Tilt(50, 40) = %v, want 0", got)
	}
	if got, want := chart.Tilt(50, 100), math.Pi/3; math.Abs(got-want) > 1e-12 {
		t.Fatalf("Tilt(50, 100) = %v, want %v", got, want)
	}
	if got := chart.Tilt(0, 100); got != 0 {
		t.Fatalf("Tilt(0, 100) = %v, want 0", got)
	}
}

func TestPlainFormatValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    float64
		want string
	}{
		{v: 0, want: "0"},
		{v: 35, want: "35"},
		{v: 0.1 + 0.2, want: "0.3"},
		{v: -1.5, want: "-1.5"},
	}

	for _, tt := range tests {
		if got := (chart.PlainFormat{}).Value(tt.v); got != tt.want {
			t.Fatalf("Value(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestTimeLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		interval time.Duration
		want     string
	}{
		{interval: 5 * time.Second, want: time.TimeOnly},
		{interval: time.Minute, want: "15:04"},
		{interval: 12 * time.Hour, want: "15:04"},
		{interval: 24 * time.Hour, want: time.DateOnly},
	}

	for _, tt := range tests {
		if got := chart.TimeLayout(tt.interval); got != tt.want {
			t.Fatalf("TimeLayout(%v) = %q, want %q", tt.interval, got, tt.want)
		}
	}
}

func TestValueAxisDraw(t *testing.T) {
	t.Parallel()

	scale, err := axis.Plan(0, 110, 300)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	s := charttest.NewSurface()
	chart.ValueAxis{OriginX: 50, OriginY: 330, Top: 30, GridEnd: 500, Scale: scale}.
		Draw(s, chart.DefaultTheme(), chart.DefaultMetrics())

	want := []string{"0", "20", "40", "60", "80", "100", "120"}
	got := s.Texts()
	if len(got) != len(want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("labels = %v, want %v", got, want)
		}
	}
	// One axis line plus a tick and a grid line per step.
	if n := s.Count("line"); n != 1+2*scale.Ticks() {
		t.Fatalf("lines = %d, want %d", n, 1+2*scale.Ticks())
	}
	for _, op := range s.Kind("text") {
		if op.From.X != 35 || op.Style.Align != chart.AlignRight {
			t.Fatalf("label %q at x=%v align %v, want right-aligned at 35", op.Text, op.From.X, op.Style.Align)
		}
	}
}

func TestCategoryAxisDraw(t *testing.T) {
	t.Parallel()

	s := charttest.NewSurface()
	chart.CategoryAxis{
		OriginX:     50,
		OriginY:     330,
		End:         350,
		Top:         30,
		Interval:    100,
		Ticks:       4,
		LabelOffset: 50,
		Labels:      []string{"a", "bb", "c"},
	}.Draw(s, chart.DefaultTheme(), chart.DefaultMetrics())

	labels := s.Kind("text")
	if len(labels) != 3 {
		t.Fatalf("labels = %d, want 3", len(labels))
	}
	// "bb" is 16px wide, centered in the second band.
	if got := labels[1].From; got != geom.Pt(192, 350) {
		t.Fatalf("label position = %v, want (192, 350)", got)
	}
	if n := s.Count("line"); n != 1+2*4 {
		t.Fatalf("lines = %d, want 9", n)
	}
}

func TestCheckSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		w, h      float64
		wantField string
	}{
		{w: 100, h: 100},
		{w: 0, h: 100, wantField: "width"},
		{w: math.NaN(), h: 100, wantField: "width"},
		{w: 100, h: -1, wantField: "height"},
		{w: 100, h: math.Inf(1), wantField: "height"},
	}

	for _, tt := range tests {
		err := chart.CheckSize(tt.w, tt.h)
		if tt.wantField == "" {
			if err != nil {
				t.Fatalf("CheckSize(%v, %v) = %v, want nil", tt.w, tt.h, err)
			}
			continue
		}
		var layout *charterr.InvalidLayoutError
		if !errors.As(err, &layout) || layout.Field != tt.wantField {
			t.Fatalf("CheckSize(%v, %v) = %v, want InvalidLayoutError on %s", tt.w, tt.h, err, tt.wantField)
		}
	}
}

func TestInteractionStateGatesHover(t *testing.T) {
	t.Parallel()

	host := charttest.NewHost(0)
	st := chart.NewInteractionState(host)

	if !st.Hover(2) || st.Focus.Index() != 2 {
		t.Fatalf("Hover(2) while idle did not focus 2")
	}
	if st.Hover(2) {
		t.Fatalf("Hover(2) again reported a change")
	}

	st.Anim.Start(time.Second, nil, nil)
	if st.Hover(3) || st.Focus.Index() != 2 {
		t.Fatalf("Hover(3) while animating changed the focus to %d", st.Focus.Index())
	}

	st.Reset()
	if st.Animating() || st.Focus.Index() != hittest.None {
		t.Fatalf("Reset() left animating=%v focus=%d", st.Animating(), st.Focus.Index())
	}
}
