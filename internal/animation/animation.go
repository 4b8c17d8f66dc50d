// Package animation drives time-based transitions from 0 to 1 on host frames.
package animation

import (
	"time"

	"github.com/kpumuk/lazychart/internal/mathutil"
)

// Clock reports wall-clock time in milliseconds.
type Clock interface {
	NowMillis() int64
}

// FrameID identifies a pending frame callback.
type FrameID uint64

// Frames runs callbacks before the next display refresh.
type Frames interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// State is the scheduler lifecycle state.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Handle identifies one transition started by a Scheduler.
type Handle uint64

// Easing maps elapsed progress to visual progress.
type Easing func(t float64) float64

// EaseInOutCubic accelerates through the first half and decelerates through the second.
func EaseInOutCubic(t float64) float64 {
	if t <= 0.5 {
		return 4 * t * t * t
	}
	u := 1 - t
	return 1 - 4*u*u*u
}

// Linear is the identity easing.
func Linear(t float64) float64 {
	return t
}

// Scheduler runs at most one transition at a time. Starting a transition
// cancels the one in flight; its completion callback never fires.
type Scheduler struct {
	clock  Clock
	frames Frames
	easing Easing

	state      State
	handle     Handle
	lastHandle Handle
	frame      FrameID
	startedAt  int64
	duration   int64
	onFrame    func(float64)
	onComplete func()
}

// Option is used to set options in New.
type Option func(*Scheduler)

// WithEasing sets the easing curve. The default is EaseInOutCubic.
func WithEasing(e Easing) Option {
	return func(s *Scheduler) {
		if e != nil {
			s.easing = e
		}
	}
}

// New creates an idle scheduler.
func New(clock Clock, frames Frames, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:  clock,
		frames: frames,
		easing: EaseInOutCubic,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	return s.state
}

// Running reports whether a transition is in flight.
func (s *Scheduler) Running() bool {
	return s.state == Running
}

// Active returns the handle of the running transition.
func (s *Scheduler) Active() (Handle, bool) {
	return s.handle, s.state == Running
}

// Start cancels any running transition and begins a new one. onFrame receives
// the eased progress on every frame; onComplete runs once after the frame
// that reaches 1. A non-positive duration completes on the first frame.
func (s *Scheduler) Start(duration time.Duration, onFrame func(float64), onComplete func()) Handle {
	s.Cancel()

	s.lastHandle++
	h := s.lastHandle
	s.state = Running
	s.handle = h
	s.startedAt = s.clock.NowMillis()
	s.duration = duration.Milliseconds()
	s.onFrame = onFrame
	s.onComplete = onComplete
	s.frame = s.frames.RequestFrame(func() { s.tick(h) })
	return h
}

// Cancel stops the running transition without calling its completion
// callback. It is a no-op when idle.
func (s *Scheduler) Cancel() {
	if s.state != Running {
		return
	}
	s.frames.CancelFrame(s.frame)
	s.reset()
}

func (s *Scheduler) reset() {
	s.state = Idle
	s.handle = 0
	s.frame = 0
	s.onFrame = nil
	s.onComplete = nil
}

func (s *Scheduler) current(h Handle) bool {
	return s.state == Running && s.handle == h
}

func (s *Scheduler) tick(h Handle) {
	// A callback from a superseded transition can still be delivered by
	// hosts that cannot revoke queued frames.
	if !s.current(h) {
		return
	}

	t := 1.0
	if s.duration > 0 {
		t = mathutil.Clamp(float64(s.clock.NowMillis()-s.startedAt)/float64(s.duration), 0, 1)
	}

	if s.onFrame != nil {
		s.onFrame(s.easing(t))
	}
	// onFrame may have cancelled or replaced this transition.
	if !s.current(h) {
		return
	}

	if t < 1 {
		s.frame = s.frames.RequestFrame(func() { s.tick(h) })
		return
	}

	done := s.onComplete
	s.reset()
	if done != nil {
		done()
	}
}
