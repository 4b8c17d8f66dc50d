package chart

import (
	"github.com/kpumuk/lazychart/internal/animation"
	"github.com/kpumuk/lazychart/internal/hittest"
)

// InteractionState is the mutable part of a chart: the focused index and the
// transition in flight. Focus only changes while no transition runs.
type InteractionState struct {
	Focus hittest.Focus
	Anim  *animation.Scheduler
}

// NewInteractionState creates an idle state driven by host.
func NewInteractionState(host Host, opts ...animation.Option) InteractionState {
	return InteractionState{Anim: animation.New(host, host, opts...)}
}

// Animating reports whether a transition is running.
func (s *InteractionState) Animating() bool {
	return s.Anim != nil && s.Anim.Running()
}

// Hover stores idx as the focus unless a transition is running. It reports
// whether the focus changed.
func (s *InteractionState) Hover(idx int) bool {
	if s.Animating() {
		return false
	}
	return s.Focus.Set(idx)
}

// Reset cancels the running transition and clears the focus.
func (s *InteractionState) Reset() {
	if s.Anim != nil {
		s.Anim.Cancel()
	}
	s.Focus.Clear()
}
