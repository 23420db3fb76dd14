package gesture

import (
	"github.com/lixenwraith/tactile/pointer"
)

// Session is the live state of one in-progress gesture on one element.
// It is owned exclusively by the recognizer it belongs to and mutated only
// by that recognizer's own event handlers.
//
// The movement-intent decision is monotonic: the first move sample that
// drifts past the slop radius or exceeds the velocity ceiling marks the
// session invalid, and drifting back within bounds never revalidates it.
// A scroll begins exactly like a tap; this is the gate that tells them apart.
type Session struct {
	start       pointer.Sample
	last        pointer.Sample
	maxVelocity float64 // px/ms

	exceededSlop     bool
	exceededVelocity bool
	live             bool
	completed        bool
	feedbackShown    bool
}

// Begin resets the session for a fresh contact
func (s *Session) Begin(sample pointer.Sample) {
	*s = Session{start: sample, last: sample, live: true}
}

// Observe feeds a move sample through the slop and velocity gates.
// Returns false once the session is invalid for a stationary gesture.
// Observe never fires cancellation itself; the owning recognizer decides
// what invalid means for its own gesture.
func (s *Session) Observe(sample pointer.Sample, slopPx, velocityMax float64) bool {
	if !s.live {
		return false
	}

	if v := pointer.Velocity(s.last, sample); v > s.maxVelocity {
		s.maxVelocity = v
	}
	s.last = sample

	if pointer.Distance(s.start.Point(), sample.Point()) > slopPx {
		s.exceededSlop = true
	}
	if s.maxVelocity > velocityMax {
		s.exceededVelocity = true
	}
	return !s.Invalid()
}

// Invalid reports whether movement has ruled out a stationary gesture
func (s *Session) Invalid() bool {
	return s.exceededSlop || s.exceededVelocity
}

// MarkInvalid forces the session invalid, used for scroll-broadcast
// cancellation arriving from outside the element
func (s *Session) MarkInvalid() {
	s.exceededSlop = true
}

// Live reports whether the contact is still down and the session tracked
func (s *Session) Live() bool {
	return s.live
}

// End closes the session on pointer-up or cancellation
func (s *Session) End() {
	s.live = false
}

// Start returns the sample that opened the session
func (s *Session) Start() pointer.Sample {
	return s.start
}

// Last returns the most recent sample observed
func (s *Session) Last() pointer.Sample {
	return s.last
}

// MaxVelocity returns the peak instantaneous speed seen so far, in px/ms
func (s *Session) MaxVelocity() float64 {
	return s.maxVelocity
}

// MarkCompleted records the completed terminal outcome. Completion and
// cancellation are mutually exclusive; a completed session must never fire
// its cancellation callback.
func (s *Session) MarkCompleted() {
	s.completed = true
}

// Completed reports whether the session reached its terminal success state
func (s *Session) Completed() bool {
	return s.completed
}

// MarkFeedbackShown records that the user has seen visual feedback;
// cancellation is only audible/visible after this point
func (s *Session) MarkFeedbackShown() {
	s.feedbackShown = true
}

// FeedbackShown reports whether visual feedback has started
func (s *Session) FeedbackShown() bool {
	return s.feedbackShown
}
