// Package charttest provides in-memory hosts and surfaces for chart tests.
package charttest

import (
	"slices"
	"time"

	"github.com/kpumuk/lazychart/internal/animation"
	"github.com/kpumuk/lazychart/internal/chart"
	"github.com/kpumuk/lazychart/internal/geom"
)

// Host is a manually driven clock and scheduler.
type Host struct {
	Now int64

	nextID uint64
	frames []frame
	timers []*timer
}

type frame struct {
	id animation.FrameID
	fn func()
}

type timer struct {
	id    chart.TimerID
	every int64
	next  int64
	fn    func()
}

// NewHost returns a host whose clock starts at now (unix milliseconds).
func NewHost(now int64) *Host {
	return &Host{Now: now}
}

// NowMillis implements animation.Clock.
func (h *Host) NowMillis() int64 {
	return h.Now
}

// RequestFrame implements animation.Frames.
func (h *Host) RequestFrame(fn func()) animation.FrameID {
	h.nextID++
	id := animation.FrameID(h.nextID)
	h.frames = append(h.frames, frame{id: id, fn: fn})
	return id
}

// CancelFrame implements animation.Frames.
func (h *Host) CancelFrame(id animation.FrameID) {
	h.frames = slices.DeleteFunc(h.frames, func(f frame) bool { return f.id == id })
}

// Every implements chart.Host.
func (h *Host) Every(d time.Duration, fn func()) chart.TimerID {
	h.nextID++
	id := chart.TimerID(h.nextID)
	every := max(d.Milliseconds(), 1)
	h.timers = append(h.timers, &timer{id: id, every: every, next: h.Now + every, fn: fn})
	return id
}

// CancelTimer implements chart.Host.
func (h *Host) CancelTimer(id chart.TimerID) {
	h.timers = slices.DeleteFunc(h.timers, func(t *timer) bool { return t.id == id })
}

// PendingFrames returns the number of queued frame callbacks.
func (h *Host) PendingFrames() int {
	return len(h.frames)
}

// PendingTimers returns the number of active periodic callbacks.
func (h *Host) PendingTimers() int {
	return len(h.timers)
}

// Frame advances the clock by d and runs the callbacks queued before the call.
// It returns how many ran.
func (h *Host) Frame(d time.Duration) int {
	h.Now += d.Milliseconds()
	queued := h.frames
	h.frames = nil
	for _, f := range queued {
		f.fn()
	}
	return len(queued)
}

// Settle runs frames step apart until none are queued or limit frames ran.
func (h *Host) Settle(step time.Duration, limit int) int {
	var n int
	for n < limit && len(h.frames) > 0 {
		h.Frame(step)
		n++
	}
	return n
}

// Advance moves the clock forward by d, firing due timers in time order.
func (h *Host) Advance(d time.Duration) {
	end := h.Now + d.Milliseconds()
	for {
		var due *timer
		for _, t := range h.timers {
			if t.next <= end && (due == nil || t.next < due.next) {
				due = t
			}
		}
		if due == nil {
			break
		}
		h.Now = due.next
		due.next += due.every
		due.fn()
	}
	h.Now = end
}

// Op is one recorded drawing call.
type Op struct {
	Kind   string
	From   geom.Point
	To     geom.Point
	Rect   geom.Rect
	Center geom.Point
	Inner  float64
	Outer  float64
	Start  float64
	End    float64
	Radius float64
	Radii  chart.Radii
	Text   string
	Paint  chart.Paint
	Line   chart.LineStyle
	Style  chart.TextStyle
}

// Surface records drawing calls. Text is measured as CharWidth per rune.
type Surface struct {
	CharWidth float64
	Ops       []Op
}

// NewSurface returns a recording surface measuring 8 pixels per rune.
func NewSurface() *Surface {
	return &Surface{CharWidth: 8}
}

// Reset forgets the recorded calls.
func (s *Surface) Reset() {
	s.Ops = nil
}

// Kind returns the recorded calls of one kind.
func (s *Surface) Kind(kind string) []Op {
	var out []Op
	for _, op := range s.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Since returns the calls recorded after the last clear.
func (s *Surface) Since() []Op {
	for i := len(s.Ops) - 1; i >= 0; i-- {
		if s.Ops[i].Kind == "clear" {
			return s.Ops[i+1:]
		}
	}
	return s.Ops
}

// Texts returns the strings drawn after the last clear.
func (s *Surface) Texts() []string {
	var out []string
	for _, op := range s.Since() {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Count returns how many calls of kind were recorded after the last clear.
func (s *Surface) Count(kind string) int {
	var n int
	for _, op := range s.Since() {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

func (s *Surface) Clear(r geom.Rect) {
	s.Ops = append(s.Ops, Op{Kind: "clear", Rect: r})
}

func (s *Surface) Line(from, to geom.Point, style chart.LineStyle) {
	s.Ops = append(s.Ops, Op{Kind: "line", From: from, To: to, Line: style, Paint: style.Paint})
}

func (s *Surface) FillRect(r geom.Rect, p chart.Paint) {
	s.Ops = append(s.Ops, Op{Kind: "rect", Rect: r, Paint: p})
}

func (s *Surface) RoundRect(r geom.Rect, radii chart.Radii, p chart.Paint) {
	s.Ops = append(s.Ops, Op{Kind: "roundrect", Rect: r, Radii: radii, Paint: p})
}

func (s *Surface) FillAnnulus(center geom.Point, inner, outer, start, end float64, p chart.Paint) {
	s.Ops = append(s.Ops, Op{Kind: "annulus", Center: center, Inner: inner, Outer: outer, Start: start, End: end, Paint: p})
}

func (s *Surface) StrokeAnnulus(center geom.Point, inner, outer, start, end float64, style chart.LineStyle) {
	s.Ops = append(s.Ops, Op{Kind: "stroke-annulus", Center: center, Inner: inner, Outer: outer, Start: start, End: end, Line: style, Paint: style.Paint})
}

func (s *Surface) Circle(center geom.Point, radius float64, p chart.Paint) {
	s.Ops = append(s.Ops, Op{Kind: "circle", Center: center, Radius: radius, Paint: p})
}

func (s *Surface) Text(at geom.Point, text string, style chart.TextStyle) {
	s.Ops = append(s.Ops, Op{Kind: "text", From: at, Text: text, Style: style, Paint: style.Paint})
}

func (s *Surface) MeasureText(text string, _ chart.Font) float64 {
	return float64(len([]rune(text))) * s.CharWidth
}
