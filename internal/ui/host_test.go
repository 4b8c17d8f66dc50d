package ui

import (
	"testing"
	"time"
)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestHostNowMillis(t *testing.T) {
	t.Parallel()

	h := NewHost(fixedClock(1234))
	if got := h.NowMillis(); got != 1234 {
		t.Fatalf("NowMillis() = %d, want 1234", got)
	}
}

func TestHostFrames(t *testing.T) {
	t.Parallel()

	h := NewHost(fixedClock(0))
	var ran []int
	h.RequestFrame(func() { ran = append(ran, 1) })
	cancelled := h.RequestFrame(func() { ran = append(ran, 2) })
	h.RequestFrame(func() {
		ran = append(ran, 3)
		h.RequestFrame(func() { ran = append(ran, 4) })
	})
	h.CancelFrame(cancelled)

	if h.Cmd() == nil {
		t.Fatalf("Cmd() = nil with queued frames")
	}
	if h.Cmd() != nil {
		t.Fatalf("Cmd() scheduled a second tick while one is in flight")
	}

	if !h.Update(frameMsg{}) {
		t.Fatalf("Update(frameMsg) = false, want true")
	}
	if len(ran) != 2 || ran[0] != 1 || ran[1] != 3 {
		t.Fatalf("frames ran = %v, want [1 3]", ran)
	}
	if h.PendingFrames() != 1 {
		t.Fatalf("PendingFrames() = %d, want 1", h.PendingFrames())
	}
	if h.Cmd() == nil {
		t.Fatalf("Cmd() = nil for a frame requested during a frame")
	}

	h.Update(frameMsg{})
	if len(ran) != 3 || ran[2] != 4 {
		t.Fatalf("frames ran = %v, want [1 3 4]", ran)
	}
	if h.Cmd() != nil {
		t.Fatalf("Cmd() != nil with nothing queued")
	}
}

func TestHostTimers(t *testing.T) {
	t.Parallel()

	h := NewHost(fixedClock(0))
	var fired int
	id := h.Every(time.Second, func() { fired++ })

	if h.Cmd() == nil {
		t.Fatalf("Cmd() = nil for a new timer")
	}
	if h.Cmd() != nil {
		t.Fatalf("Cmd() re-armed an armed timer")
	}

	tick := timerMsg{id: id, gen: h.timers[id].gen}
	h.Update(tick)
	if fired != 1 {
		t.Fatalf("timer fired %d times, want 1", fired)
	}
	if h.Cmd() == nil {
		t.Fatalf("Cmd() = nil after the timer fired, want re-arm")
	}

	h.CancelTimer(id)
	h.Update(tick)
	if fired != 1 {
		t.Fatalf("cancelled timer fired")
	}
	if h.Update(struct{}{}) {
		t.Fatalf("Update(unrelated) = true, want false")
	}
}
