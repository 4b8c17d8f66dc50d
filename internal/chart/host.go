package chart

import (
	"time"

	"github.com/kpumuk/lazychart/internal/animation"
)

// TimerID identifies a periodic callback.
type TimerID uint64

// Host supplies the clock and scheduling capabilities of the environment.
// All callbacks run on the same goroutine as the chart methods.
type Host interface {
	animation.Clock
	animation.Frames
	Every(d time.Duration, fn func()) TimerID
	CancelTimer(id TimerID)
}
