package ui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/kpumuk/lazychart/internal/animation"
	"github.com/kpumuk/lazychart/internal/chart"
)

// frameInterval is the animation frame cadence, roughly 60 fps.
const frameInterval = 16 * time.Millisecond

// frameMsg fires queued frame callbacks.
type frameMsg struct{}

// timerMsg fires a periodic callback. gen guards against ticks of a timer
// that was cancelled and re-registered under the same id.
type timerMsg struct {
	id  chart.TimerID
	gen uint64
}

type hostTimer struct {
	every time.Duration
	fn    func()
	gen   uint64
	armed bool
}

// Host implements chart.Host on the Bubble Tea event loop. Callbacks run from
// Update, so charts are never touched concurrently. Commands needed to
// schedule frames and timers accumulate until Cmd is called.
type Host struct {
	now func() time.Time

	frames       map[animation.FrameID]func()
	order        []animation.FrameID
	nextFrame    animation.FrameID
	tickInFlight bool

	timers    map[chart.TimerID]*hostTimer
	nextTimer chart.TimerID
	gen       uint64
}

var _ chart.Host = (*Host)(nil)

// NewHost creates a host reading the given clock; nil means time.Now.
func NewHost(now func() time.Time) *Host {
	if now == nil {
		now = time.Now
	}
	return &Host{
		now:    now,
		frames: map[animation.FrameID]func(){},
		timers: map[chart.TimerID]*hostTimer{},
	}
}

// NowMillis implements animation.Clock.
func (h *Host) NowMillis() int64 {
	return h.now().UnixMilli()
}

// RequestFrame implements animation.Frames.
func (h *Host) RequestFrame(fn func()) animation.FrameID {
	h.nextFrame++
	h.frames[h.nextFrame] = fn
	h.order = append(h.order, h.nextFrame)
	return h.nextFrame
}

// CancelFrame implements animation.Frames.
func (h *Host) CancelFrame(id animation.FrameID) {
	delete(h.frames, id)
}

// Every implements chart.Host.
func (h *Host) Every(d time.Duration, fn func()) chart.TimerID {
	h.nextTimer++
	h.gen++
	h.timers[h.nextTimer] = &hostTimer{every: d, fn: fn, gen: h.gen}
	return h.nextTimer
}

// CancelTimer implements chart.Host.
func (h *Host) CancelTimer(id chart.TimerID) {
	delete(h.timers, id)
}

// PendingFrames returns the number of queued frame callbacks.
func (h *Host) PendingFrames() int {
	return len(h.frames)
}

// Update runs the callbacks a host message is due for. It reports whether
// msg belonged to the host.
func (h *Host) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case frameMsg:
		h.tickInFlight = false
		order := h.order
		h.order = nil
		for _, id := range order {
			fn, ok := h.frames[id]
			if !ok {
				continue
			}
			delete(h.frames, id)
			fn()
		}
		return true

	case timerMsg:
		t, ok := h.timers[msg.id]
		if !ok || t.gen != msg.gen {
			return true
		}
		t.armed = false
		t.fn()
		return true
	}
	return false
}

// Cmd returns the ticks needed for the frames and timers registered since
// the last call, or nil when nothing needs scheduling.
func (h *Host) Cmd() tea.Cmd {
	var cmds []tea.Cmd
	if len(h.frames) > 0 && !h.tickInFlight {
		h.tickInFlight = true
		cmds = append(cmds, tea.Tick(frameInterval, func(time.Time) tea.Msg {
			return frameMsg{}
		}))
	}
	for id, t := range h.timers {
		if t.armed {
			continue
		}
		t.armed = true
		msg := timerMsg{id: id, gen: t.gen}
		cmds = append(cmds, tea.Tick(t.every, func(time.Time) tea.Msg {
			return msg
		}))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
