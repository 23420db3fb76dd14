package gesture

import (
	"math"

	"github.com/lixenwraith/tactile/pointer"
)

// TwoFingerSwipeRecognizer detects the horizontal-navigation gesture made
// with exactly two simultaneous contacts. It tracks the contact midpoint
// from two-contact start to two-contact end; any contact-count change away
// from exactly two abandons the gesture with no callback.
//
// Independent of the other recognizers: it needs no timers, no classifier,
// and no scroll subscription.
type TwoFingerSwipeRecognizer struct {
	cfg     Config
	metrics *Metrics

	OnSwipeLeft  func()
	OnSwipeRight func()

	tracking bool
	startMid pointer.Point
}

// NewTwoFingerSwipeRecognizer creates a swipe recognizer
func NewTwoFingerSwipeRecognizer(cfg Config, onLeft, onRight func()) *TwoFingerSwipeRecognizer {
	return &TwoFingerSwipeRecognizer{
		cfg:          cfg.Normalize(),
		OnSwipeLeft:  onLeft,
		OnSwipeRight: onRight,
	}
}

// SetMetrics attaches an outcome counter sink
func (r *TwoFingerSwipeRecognizer) SetMetrics(m *Metrics) {
	r.metrics = m
}

// Tracking reports whether a two-contact gesture is in flight
func (r *TwoFingerSwipeRecognizer) Tracking() bool {
	return r.tracking
}

// TwoFingerDown starts tracking at the midpoint of the two contacts
func (r *TwoFingerSwipeRecognizer) TwoFingerDown(a, b pointer.Sample) {
	r.tracking = true
	r.startMid = pointer.Midpoint(a.Point(), b.Point())
}

// TwoFingerMove is acknowledged but decides nothing; the displacement is
// measured at release
func (r *TwoFingerSwipeRecognizer) TwoFingerMove(a, b pointer.Sample) {
}

// ContactCountChanged abandons the gesture when the contact count moves
// away from exactly two before release
func (r *TwoFingerSwipeRecognizer) ContactCountChanged(n int) {
	if r.tracking && n != 2 {
		r.tracking = false
	}
}

// TwoFingerUp ends the gesture: a dominant horizontal displacement past the
// threshold fires exactly one directional callback
func (r *TwoFingerSwipeRecognizer) TwoFingerUp(a, b pointer.Sample) {
	if !r.tracking {
		return
	}
	r.tracking = false

	end := pointer.Midpoint(a.Point(), b.Point())
	dx := end.X - r.startMid.X
	dy := end.Y - r.startMid.Y

	if math.Abs(dx) <= r.cfg.SwipeDistance || math.Abs(dx) <= math.Abs(dy) {
		return
	}

	r.metrics.incSwipe()
	if dx > 0 {
		if r.OnSwipeRight != nil {
			r.OnSwipeRight()
		}
	} else {
		if r.OnSwipeLeft != nil {
			r.OnSwipeLeft()
		}
	}
}
