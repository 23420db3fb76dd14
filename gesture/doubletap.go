package gesture

import (
	"time"

	"github.com/lixenwraith/tactile/engine"
	"github.com/lixenwraith/tactile/haptic"
	"github.com/lixenwraith/tactile/pointer"
	"github.com/lixenwraith/tactile/scroll"
)

// DoubleTapRecognizer correlates two qualifying taps on one element by
// elapsed time and spatial distance.
//
// A candidate tap is rejected outright when the contact lasted longer than
// the max tap duration (that is the early portion of a hold, whether or not
// a HoldRecognizer is attached) or when movement invalidated the session.
// A qualifying tap either pairs with the pending one, or becomes the new
// pending tap with its own expiry. Unpaired taps are discarded silently:
// single-tap policy belongs to the focus controller, so a failed double-tap
// never double-fires as a tap.
type DoubleTapRecognizer struct {
	sched   *engine.Scheduler
	bc      *scroll.Broadcaster
	cfg     Config
	haptics haptic.Driver
	metrics *Metrics

	// OnDoubleTap fires once per paired taps
	OnDoubleTap func()

	session Session
	downAt  time.Time

	pending     bool
	lastTapAt   time.Time
	lastTapPos  pointer.Point
	expiryTimer engine.TimerID

	subID      scroll.SubscriberID
	subscribed bool
}

// NewDoubleTapRecognizer creates a recognizer and subscribes it to the
// scroll broadcaster, so a scroll that happens to end near a previous tap
// can never be retroactively paired. Close must be called on teardown.
func NewDoubleTapRecognizer(sched *engine.Scheduler, bc *scroll.Broadcaster, cfg Config, onDoubleTap func()) *DoubleTapRecognizer {
	r := &DoubleTapRecognizer{
		sched:       sched,
		bc:          bc,
		cfg:         cfg.Normalize(),
		haptics:     haptic.Nop{},
		OnDoubleTap: onDoubleTap,
	}
	if bc != nil {
		r.subID = bc.Subscribe(r.cancelFromScroll)
		r.subscribed = true
	}
	return r
}

// SetHaptics replaces the pulse driver; nil restores the no-op driver
func (r *DoubleTapRecognizer) SetHaptics(d haptic.Driver) {
	if d == nil {
		d = haptic.Nop{}
	}
	r.haptics = d
}

// SetMetrics attaches an outcome counter sink
func (r *DoubleTapRecognizer) SetMetrics(m *Metrics) {
	r.metrics = m
}

// HasPendingTap reports whether a first tap is waiting for its pair
func (r *DoubleTapRecognizer) HasPendingTap() bool {
	return r.pending
}

// Close clears all state and removes the scroll subscription
func (r *DoubleTapRecognizer) Close() {
	r.clearWindow()
	r.session.End()
	if r.subscribed {
		r.bc.Unsubscribe(r.subID)
		r.subscribed = false
	}
}

// PointerDown opens a session. The down timestamp is recorded for the
// contact-duration gate only; pairing timing uses up timestamps.
func (r *DoubleTapRecognizer) PointerDown(s pointer.Sample) {
	r.session.Begin(s)
	r.downAt = s.Time
}

// PointerMove feeds the movement/velocity validity gate
func (r *DoubleTapRecognizer) PointerMove(s pointer.Sample) {
	if r.session.Live() {
		r.session.Observe(s, r.cfg.SlopPx, r.cfg.VelocityMax)
	}
}

// PointerUp classifies the ended contact. Returns true when a double-tap
// fired and the event must not reach ancestor tap handling.
func (r *DoubleTapRecognizer) PointerUp(s pointer.Sample) bool {
	if !r.session.Live() {
		return false
	}
	invalid := r.session.Invalid()
	r.session.End()

	if s.Time.Sub(r.downAt) > r.cfg.MaxTapDuration || invalid {
		// Not a tap; any pending first tap keeps waiting for its pair
		return false
	}

	if r.pending &&
		s.Time.Sub(r.lastTapAt) <= r.cfg.DoubleTapDelay &&
		pointer.Distance(s.Point(), r.lastTapPos) <= r.cfg.DoubleTapDistance {
		r.clearWindow()
		r.haptics.Pulse()
		r.metrics.incTapPaired()
		if r.OnDoubleTap != nil {
			r.OnDoubleTap()
		}
		return true
	}

	r.setWindow(s)
	return false
}

// PointerCancel drops the live session without producing a tap
func (r *DoubleTapRecognizer) PointerCancel() {
	r.session.End()
}

func (r *DoubleTapRecognizer) cancelFromScroll() {
	if r.session.Live() {
		r.session.MarkInvalid()
	}
	if r.pending {
		r.clearWindow()
		r.metrics.incScrollCancel()
	}
}

// setWindow makes s the new first tap with a fresh expiry timer
func (r *DoubleTapRecognizer) setWindow(s pointer.Sample) {
	if r.pending {
		r.sched.Cancel(r.expiryTimer)
	}
	r.pending = true
	r.lastTapAt = s.Time
	r.lastTapPos = s.Point()
	r.expiryTimer = r.sched.AfterFunc(r.cfg.DoubleTapDelay, r.onExpiry)
}

// onExpiry silently discards an unpaired first tap
func (r *DoubleTapRecognizer) onExpiry(time.Time) {
	if !r.pending {
		return
	}
	r.pending = false
	r.metrics.incTapExpired()
}

func (r *DoubleTapRecognizer) clearWindow() {
	if r.pending {
		r.sched.Cancel(r.expiryTimer)
		r.pending = false
	}
}
