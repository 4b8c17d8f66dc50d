// Package charts adapts the chart engine to the terminal: a braille canvas
// implementing chart.Surface and the metrics that fit it.
package charts

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/NimbleMarkets/ntcharts/v2/canvas"
	"github.com/NimbleMarkets/ntcharts/v2/canvas/graph"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/lazychart/internal/chart"
	"github.com/kpumuk/lazychart/internal/geom"
)

// Each terminal cell holds a 2×4 braille pattern; one dot is one chart pixel.
const (
	DotsX = 2
	DotsY = 4
)

// faintBelow is the opacity under which paint is rendered faint.
const faintBelow = 0.5

type pen struct {
	color string
	faint bool
}

type glyph struct {
	r    rune
	ink  pen
	bold bool
}

// Canvas is a chart.Surface drawing braille dots onto a grid of terminal
// cells. Text is kept on a separate layer and wins over dots in its cell.
type Canvas struct {
	cols, rows int
	dots       []int // index into inks, 0 when unset
	inks       []pen
	inkIndex   map[pen]int
	text       map[canvas.Point]glyph
}

var _ chart.Surface = (*Canvas)(nil)

// NewCanvas returns a blank canvas of cols×rows cells.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize discards the content and sets the size in cells.
func (c *Canvas) Resize(cols, rows int) {
	c.cols = max(cols, 0)
	c.rows = max(rows, 0)
	c.dots = make([]int, c.cols*DotsX*c.rows*DotsY)
	c.inks = []pen{{}}
	c.inkIndex = map[pen]int{}
	c.text = map[canvas.Point]glyph{}
}

// Cols returns the width in cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the height in cells.
func (c *Canvas) Rows() int { return c.rows }

// Width returns the width in dots.
func (c *Canvas) Width() float64 { return float64(c.cols * DotsX) }

// Height returns the height in dots.
func (c *Canvas) Height() float64 { return float64(c.rows * DotsY) }

// Dot reports the color of the dot at (x, y), and whether it is set.
func (c *Canvas) Dot(x, y int) (string, bool) {
	i, ok := c.index(x, y)
	if !ok || c.dots[i] == 0 {
		return "", false
	}
	return c.inks[c.dots[i]].color, true
}

// Cell returns the text rune at a cell, or 0 when the cell holds no text.
func (c *Canvas) Cell(col, row int) rune {
	return c.text[canvas.Point{X: col, Y: row}].r
}

func (c *Canvas) index(x, y int) (int, bool) {
	w := c.cols * DotsX
	if x < 0 || y < 0 || x >= w || y >= c.rows*DotsY {
		return 0, false
	}
	return y*w + x, true
}

func (c *Canvas) inkFor(p chart.Paint) int {
	k := pen{color: p.Color, faint: p.Opacity < faintBelow}
	if i, ok := c.inkIndex[k]; ok {
		return i
	}
	c.inks = append(c.inks, k)
	c.inkIndex[k] = len(c.inks) - 1
	return len(c.inks) - 1
}

func (c *Canvas) set(x, y, ink int) {
	if i, ok := c.index(x, y); ok {
		c.dots[i] = ink
	}
}

// fill sets every dot whose center satisfies inside, scanning the bounding
// box r.
func (c *Canvas) fill(r geom.Rect, ink int, inside func(px, py float64) bool) {
	r = r.Intersect(geom.Rect{W: c.Width(), H: c.Height()})
	if r.Empty() {
		return
	}
	x0 := int(math.Floor(r.X))
	y0 := int(math.Floor(r.Y))
	x1 := int(math.Ceil(r.Right()))
	y1 := int(math.Ceil(r.Bottom()))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if inside(float64(x)+0.5, float64(y)+0.5) {
				c.set(x, y, ink)
			}
		}
	}
}

// CellCenter returns the dot coordinates of the middle of a terminal cell.
func CellCenter(col, row int) geom.Point {
	return geom.Pt(float64(col*DotsX), float64(row*DotsY)).Add(geom.Pt(DotsX/2, DotsY/2))
}

// Clear implements chart.Surface.
func (c *Canvas) Clear(r geom.Rect) {
	c.fill(r, 0, func(px, py float64) bool { return r.Contains(geom.Pt(px, py)) })
	for p := range c.text {
		if r.Contains(CellCenter(p.X, p.Y)) {
			delete(c.text, p)
		}
	}
}

// Line implements chart.Surface. Strokes are one dot wide.
func (c *Canvas) Line(from, to geom.Point, s chart.LineStyle) {
	ink := c.inkFor(s.Paint)
	length := from.Dist(to)
	steps := int(math.Ceil(math.Max(math.Abs(to.X-from.X), math.Abs(to.Y-from.Y))))
	if steps == 0 {
		c.set(int(math.Floor(from.X)), int(math.Floor(from.Y)), ink)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		if !dashOn(s.Dash, t*length) {
			continue
		}
		x := from.X + (to.X-from.X)*t
		y := from.Y + (to.Y-from.Y)*t
		c.set(int(math.Floor(x)), int(math.Floor(y)), ink)
	}
}

// dashOn reports whether distance d along a stroke falls on a drawn dash.
func dashOn(dash []float64, d float64) bool {
	var period float64
	for _, v := range dash {
		period += v
	}
	if period <= 0 {
		return true
	}
	d = math.Mod(d, period)
	for i, v := range dash {
		if d < v {
			return i%2 == 0
		}
		d -= v
	}
	return true
}

// FillRect implements chart.Surface.
func (c *Canvas) FillRect(r geom.Rect, p chart.Paint) {
	c.fill(r, c.inkFor(p), func(px, py float64) bool { return r.Contains(geom.Pt(px, py)) })
}

// RoundRect implements chart.Surface.
func (c *Canvas) RoundRect(r geom.Rect, radii chart.Radii, p chart.Paint) {
	corners := []struct {
		radius float64
		center geom.Point
		in     func(px, py float64) bool
	}{
		{radii.TopLeft, geom.Pt(r.X+radii.TopLeft, r.Y+radii.TopLeft), func(px, py float64) bool {
			return px < r.X+radii.TopLeft && py < r.Y+radii.TopLeft
		}},
		{radii.TopRight, geom.Pt(r.Right()-radii.TopRight, r.Y+radii.TopRight), func(px, py float64) bool {
			return px > r.Right()-radii.TopRight && py < r.Y+radii.TopRight
		}},
		{radii.BottomRight, geom.Pt(r.Right()-radii.BottomRight, r.Bottom()-radii.BottomRight), func(px, py float64) bool {
			return px > r.Right()-radii.BottomRight && py > r.Bottom()-radii.BottomRight
		}},
		{radii.BottomLeft, geom.Pt(r.X+radii.BottomLeft, r.Bottom()-radii.BottomLeft), func(px, py float64) bool {
			return px < r.X+radii.BottomLeft && py > r.Bottom()-radii.BottomLeft
		}},
	}
	c.fill(r, c.inkFor(p), func(px, py float64) bool {
		if !r.Contains(geom.Pt(px, py)) {
			return false
		}
		for _, k := range corners {
			if k.radius > 0 && k.in(px, py) && k.center.Dist(geom.Pt(px, py)) > k.radius {
				return false
			}
		}
		return true
	})
}

// inSector reports whether p lies in the ring sector. Angles are clockwise
// from 3 o'clock.
func inSector(center, p geom.Point, inner, outer, start, end float64) bool {
	d := center.Dist(p)
	if d < inner || d > outer {
		return false
	}
	if end-start >= 2*math.Pi {
		return true
	}
	a := math.Atan2(p.Y-center.Y, p.X-center.X)
	rel := math.Mod(a-start, 2*math.Pi)
	if rel < 0 {
		rel += 2 * math.Pi
	}
	return rel <= end-start
}

func ringBounds(center geom.Point, outer float64) geom.Rect {
	return geom.Rect{X: center.X - outer, Y: center.Y - outer, W: 2*outer + 1, H: 2*outer + 1}
}

// FillAnnulus implements chart.Surface.
func (c *Canvas) FillAnnulus(center geom.Point, inner, outer, start, end float64, p chart.Paint) {
	c.fill(ringBounds(center, outer), c.inkFor(p), func(px, py float64) bool {
		return inSector(center, geom.Pt(px, py), inner, outer, start, end)
	})
}

// StrokeAnnulus implements chart.Surface by setting the dots of the sector
// that border a dot outside it.
func (c *Canvas) StrokeAnnulus(center geom.Point, inner, outer, start, end float64, s chart.LineStyle) {
	in := func(px, py float64) bool {
		return inSector(center, geom.Pt(px, py), inner, outer, start, end)
	}
	c.fill(ringBounds(center, outer), c.inkFor(s.Paint), func(px, py float64) bool {
		if !in(px, py) {
			return false
		}
		return !in(px-1, py) || !in(px+1, py) || !in(px, py-1) || !in(px, py+1)
	})
}

// Circle implements chart.Surface. Discs smaller than a dot still set the
// dot under their center.
func (c *Canvas) Circle(center geom.Point, radius float64, p chart.Paint) {
	ink := c.inkFor(p)
	c.set(int(math.Floor(center.X)), int(math.Floor(center.Y)), ink)
	c.fill(ringBounds(center, radius), ink, func(px, py float64) bool {
		return center.Dist(geom.Pt(px, py)) <= radius
	})
}

// Text implements chart.Surface. Text snaps to cells; labels rotated by 45°
// or more are written top to bottom.
func (c *Canvas) Text(at geom.Point, text string, s chart.TextStyle) {
	runes := []rune(ansi.Strip(text))
	width := ansi.StringWidth(string(runes))

	var row int
	if s.Baseline == chart.BaselineBottom {
		row = int(math.Floor((at.Y - 1e-9) / DotsY))
	} else {
		row = int(math.Floor(at.Y / DotsY))
	}
	col := int(math.Round(at.X / DotsX))
	vertical := math.Abs(s.Rotation) >= math.Pi/4
	if !vertical {
		switch s.Align {
		case chart.AlignCenter:
			col = int(math.Round(at.X/DotsX - float64(width)/2))
		case chart.AlignRight:
			col -= width
		}
	}

	g := glyph{ink: pen{color: s.Paint.Color, faint: s.Paint.Opacity < faintBelow}, bold: s.Font.Bold}
	for i, r := range runes {
		p := canvas.Point{X: col + i, Y: row}
		if vertical {
			p = canvas.Point{X: col, Y: row + i}
		}
		if p.X < 0 || p.Y < 0 || p.X >= c.cols || p.Y >= c.rows {
			continue
		}
		g.r = r
		c.text[p] = g
	}
}

// MeasureText implements chart.Surface.
func (c *Canvas) MeasureText(text string, _ chart.Font) float64 {
	return float64(ansi.StringWidth(text) * DotsX)
}

func inkStyle(k pen) lipgloss.Style {
	st := lipgloss.NewStyle()
	if k.color != "" {
		st = st.Foreground(lipgloss.Color(k.color))
	}
	return st.Faint(k.faint)
}

// View renders the canvas: one braille layer per ink, drawn in the order the
// inks were first used, then the text layer on top.
func (c *Canvas) View() string {
	if c.cols == 0 || c.rows == 0 {
		return ""
	}
	cv := canvas.New(c.cols, c.rows, canvas.WithViewWidth(c.cols), canvas.WithViewHeight(c.rows))

	layers := make([]*graph.BrailleGrid, len(c.inks))
	w := c.cols * DotsX
	for i, k := range c.dots {
		if k == 0 {
			continue
		}
		if layers[k] == nil {
			layers[k] = graph.NewBrailleGrid(c.cols, c.rows, 0, 1, 0, 1)
		}
		layers[k].Set(canvas.Point{X: i % w, Y: i / w})
	}
	for k, layer := range layers {
		if layer != nil {
			graph.DrawBraillePatterns(&cv, canvas.Point{}, layer.BraillePatterns(), inkStyle(c.inks[k]))
		}
	}

	for p, g := range c.text {
		cv.SetCell(p, canvas.NewCellWithStyle(g.r, inkStyle(g.ink).Bold(g.bold)))
	}
	return cv.View()
}

// Plain renders the canvas without styles, for tests and logs.
func (c *Canvas) Plain() string {
	lines := strings.Split(ansi.Strip(c.View()), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}
