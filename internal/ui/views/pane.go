package views

import (
	"math"

	"github.com/kpumuk/lazychart/internal/chart"
	"github.com/kpumuk/lazychart/internal/geom"
	"github.com/kpumuk/lazychart/internal/mathutil"
	"github.com/kpumuk/lazychart/internal/ui/charts"
	"github.com/kpumuk/lazychart/internal/ui/components/frame"
	"github.com/kpumuk/lazychart/internal/ui/components/tooltip"
)

// interactive is the pointer side of a chart.
type interactive interface {
	PointerMove(p geom.Point)
	PointerLeave()
	Tooltip() (chart.Tooltip, bool)
}

// pane is a framed braille canvas with a tooltip overlay. It maps terminal
// cells to chart pixels: one cell is DotsX by DotsY dots.
type pane struct {
	title  string
	width  int
	height int
	styles Styles
	canvas *charts.Canvas
}

func newPane(title string) pane {
	return pane{title: title, canvas: charts.NewCanvas(0, 0)}
}

// setSize sizes the pane and its canvas. It reports whether the canvas
// changed.
func (p *pane) setSize(width, height int) bool {
	p.width, p.height = width, height
	cols, rows := frame.Inner(width, height)
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == p.canvas.Cols() && rows == p.canvas.Rows() {
		return false
	}
	p.canvas.Resize(cols, rows)
	return true
}

// size returns the canvas size in chart pixels.
func (p *pane) size() (float64, float64) {
	return p.canvas.Width(), p.canvas.Height()
}

// pointer converts a view-relative cell to the center dot of that cell. ok
// is false outside the canvas.
func (p *pane) pointer(msg PointerMsg) (geom.Point, bool) {
	col, row := msg.X-1, msg.Y-1
	if col < 0 || row < 0 || col >= p.canvas.Cols() || row >= p.canvas.Rows() {
		return geom.Point{}, false
	}
	return charts.CellCenter(col, row), true
}

// movePointer forwards a pointer message to c.
func (p *pane) movePointer(c interactive, msg PointerMsg) {
	if pt, ok := p.pointer(msg); ok {
		c.PointerMove(pt)
	} else {
		c.PointerLeave()
	}
}

func (p *pane) tooltipStyles() tooltip.Styles {
	s := tooltip.DefaultStyles()
	s.Title = p.styles.TooltipTitle
	s.Label = p.styles.Text
	s.Value = p.styles.Text.Bold(true)
	s.Border = p.styles.TooltipBorder
	return s
}

func (p *pane) frameStyles() frame.Styles {
	return frame.Styles{
		Focused: frame.StyleState{Title: p.styles.Title, Border: p.styles.FocusBorder},
		Blurred: frame.StyleState{Title: p.styles.Title, Border: p.styles.BorderStyle},
	}
}

// render draws the canvas, the tooltip of c when it has one, and the frame.
func (p *pane) render(c interactive, meta string) string {
	content := p.canvas.View()
	if c != nil {
		if tip, ok := c.Tooltip(); ok {
			content = p.overlayTooltip(content, tip)
		}
	}
	return p.frame(content, meta)
}

func (p *pane) overlayTooltip(content string, tip chart.Tooltip) string {
	box := tooltip.New(tooltip.WithStyles(p.tooltipStyles()), tooltip.WithTooltip(tip))
	w, h := box.Size()
	cols, rows := p.canvas.Cols(), p.canvas.Rows()
	if w > cols || h > rows {
		return content
	}
	at := tip.Place(float64(w*charts.DotsX), float64(h*charts.DotsY))
	col := mathutil.Clamp(int(math.Round(at.X/charts.DotsX)), 0, cols-w)
	row := mathutil.Clamp(int(math.Round(at.Y/charts.DotsY)), 0, rows-h)
	return charts.Overlay(content, box.View(), col, row)
}

func (p *pane) frame(content, meta string) string {
	return frame.New(
		frame.WithStyles(p.frameStyles()),
		frame.WithTitle(p.title),
		frame.WithMeta(meta),
		frame.WithContent(content),
		frame.WithSize(p.width, p.height),
		frame.WithFocused(true),
	).View()
}
