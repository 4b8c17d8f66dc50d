package hittest

import (
	"math"
	"testing"

	"github.com/kpumuk/lazychart/internal/geom"
)

func TestBandIndex(t *testing.T) {
	t.Parallel()

	b := Band{
		OriginX:  40,
		Interval: 50,
		Count:    4,
		Plot:     geom.Rect{X: 40, Y: 30, W: 200, H: 100},
	}

	tests := []struct {
		name string
		p    geom.Point
		want int
	}{
		{name: "second band", p: geom.Pt(95, 80), want: 1},
		{name: "left of origin", p: geom.Pt(35, 80), want: None},
		{name: "origin edge", p: geom.Pt(40, 80), want: 0},
		{name: "band boundary", p: geom.Pt(90, 80), want: 1},
		{name: "last band", p: geom.Pt(239, 80), want: 3},
		{name: "right edge", p: geom.Pt(240, 80), want: None},
		{name: "above plot", p: geom.Pt(95, 29), want: None},
		{name: "below plot", p: geom.Pt(95, 131), want: None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := b.Index(tt.p); got != tt.want {
				t.Fatalf("Band.Index(%v) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}
}

func TestBandZeroInterval(t *testing.T) {
	t.Parallel()

	b := Band{Count: 3, Plot: geom.Rect{W: 10, H: 10}}
	if got := b.Index(geom.Pt(5, 5)); got != None {
		t.Fatalf("Band.Index() with zero interval = %d, want None", got)
	}
}

func TestColumnIndex(t *testing.T) {
	t.Parallel()

	c := Column{
		OriginX:  40,
		Interval: 50,
		Count:    5,
		Plot:     geom.Rect{X: 40, Y: 30, W: 200, H: 100},
	}

	tests := []struct {
		name string
		x    float64
		want int
	}{
		{name: "on column", x: 90, want: 1},
		{name: "just before midpoint", x: 114, want: 1},
		{name: "past midpoint", x: 116, want: 2},
		{name: "first column", x: 40, want: 0},
		{name: "last column", x: 240, want: 4},
		{name: "outside", x: 30, want: None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := c.Index(geom.Pt(tt.x, 50)); got != tt.want {
				t.Fatalf("Column.Index(%v) = %d, want %d", tt.x, got, tt.want)
			}
		})
	}
}

func TestRadialIndex(t *testing.T) {
	t.Parallel()

	r := Radial{
		Center: geom.Pt(100, 100),
		Outer:  50,
		Shares: []float64{0.25, 0.25, 0.5},
	}

	tests := []struct {
		name string
		p    geom.Point
		want int
	}{
		{name: "one o'clock", p: geom.Pt(110, 70), want: 0},
		{name: "four o'clock", p: geom.Pt(120, 110), want: 1},
		{name: "seven o'clock", p: geom.Pt(80, 110), want: 2},
		{name: "eleven o'clock", p: geom.Pt(90, 70), want: 2},
		{name: "straight up", p: geom.Pt(100, 60), want: 0},
		{name: "outside radius", p: geom.Pt(110, 40), want: None},
		{name: "center", p: geom.Pt(100, 100), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := r.Index(tt.p); got != tt.want {
				t.Fatalf("Radial.Index(%v) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}
}

func TestRadialInnerHole(t *testing.T) {
	t.Parallel()

	r := Radial{Center: geom.Pt(0, 0), Outer: 10, Inner: 5, Shares: []float64{1}}
	if got := r.Index(geom.Pt(0, -2)); got != None {
		t.Fatalf("Radial.Index(hole) = %d, want None", got)
	}
	if got := r.Index(geom.Pt(0, -7)); got != 0 {
		t.Fatalf("Radial.Index(ring) = %d, want 0", got)
	}
}

func TestAngle(t *testing.T) {
	t.Parallel()

	c := geom.Pt(0, 0)
	tests := []struct {
		p    geom.Point
		want float64
	}{
		{p: geom.Pt(0, -1), want: 0},
		{p: geom.Pt(1, 0), want: math.Pi / 2},
		{p: geom.Pt(0, 1), want: math.Pi},
		{p: geom.Pt(-1, 0), want: 3 * math.Pi / 2},
	}
	for _, tt := range tests {
		if got := Angle(c, tt.p); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("Angle(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestFocus(t *testing.T) {
	t.Parallel()

	var f Focus
	if f.Index() != None || f.Valid() {
		t.Fatalf("zero Focus = %d, want None", f.Index())
	}
	if !f.Set(2) {
		t.Fatalf("Set(2) = false, want true")
	}
	if f.Set(2) {
		t.Fatalf("Set(2) again = true, want false")
	}
	if !f.Set(0) || f.Index() != 0 {
		t.Fatalf("Set(0) did not move focus, Index() = %d", f.Index())
	}
	if !f.Set(None) || f.Valid() {
		t.Fatalf("Set(None) did not clear focus")
	}
	if f.Clear() {
		t.Fatalf("Clear() on empty focus = true, want false")
	}
}
