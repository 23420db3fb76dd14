package gesture

import (
	"time"

	"github.com/lixenwraith/tactile/engine"
	"github.com/lixenwraith/tactile/haptic"
	"github.com/lixenwraith/tactile/pointer"
	"github.com/lixenwraith/tactile/scroll"
)

// HoldCallbacks are the host hooks for tap-and-hold outcomes.
// OnHoldCancel fires only if OnHoldStart fired first: a hold cancelled
// before the feedback delay elapsed was invisible to the user and must not
// announce a visible "cancelled".
type HoldCallbacks struct {
	OnHoldStart    func()
	OnHoldProgress func(p float64) // 0..1 over the post-feedback span; optional
	OnHold         func()
	OnHoldCancel   func()
}

// HoldRecognizer detects tap-and-hold on one element.
//
// Idle → Armed on pointer-down; Armed → FeedbackShown when the feedback
// timer fires; FeedbackShown → Completed when the completion timer fires.
// Cancelled is reachable from Armed or FeedbackShown on early release,
// invalid movement, scroll broadcast, or the pointer leaving the element.
// Once Completed the session is inert: further contact events are consumed
// to suppress ghost taps on ancestors but cause no transitions.
type HoldRecognizer struct {
	sched   *engine.Scheduler
	bc      *scroll.Broadcaster
	cfg     Config
	cb      HoldCallbacks
	haptics haptic.Driver
	metrics *Metrics

	state   HoldState
	session Session
	armedAt time.Time

	feedbackTimer   engine.TimerID
	completionTimer engine.TimerID
	progressTimer   engine.TimerID
	hasProgress     bool

	subID      scroll.SubscriberID
	subscribed bool
}

// NewHoldRecognizer creates a recognizer and subscribes it to the scroll
// broadcaster. The broadcaster may be nil for elements outside a scrollable
// ancestor. Close must be called on element teardown.
func NewHoldRecognizer(sched *engine.Scheduler, bc *scroll.Broadcaster, cfg Config, cb HoldCallbacks) *HoldRecognizer {
	r := &HoldRecognizer{
		sched:   sched,
		bc:      bc,
		cfg:     cfg.Normalize(),
		cb:      cb,
		haptics: haptic.Nop{},
	}
	if bc != nil {
		r.subID = bc.Subscribe(r.cancelFromScroll)
		r.subscribed = true
	}
	return r
}

// SetHaptics replaces the pulse driver; nil restores the no-op driver
func (r *HoldRecognizer) SetHaptics(d haptic.Driver) {
	if d == nil {
		d = haptic.Nop{}
	}
	r.haptics = d
}

// SetMetrics attaches an outcome counter sink
func (r *HoldRecognizer) SetMetrics(m *Metrics) {
	r.metrics = m
}

// State returns the current state, exposed for host debugging surfaces
func (r *HoldRecognizer) State() HoldState {
	return r.state
}

// Close cancels any in-flight session without callbacks and removes the
// scroll subscription
func (r *HoldRecognizer) Close() {
	r.clearTimers()
	r.session.End()
	r.state = HoldIdle
	if r.subscribed {
		r.bc.Unsubscribe(r.subID)
		r.subscribed = false
	}
}

// PointerDown arms a new session. A pending session from a contact the host
// never closed is fully cancelled first; sessions are never nested or merged.
func (r *HoldRecognizer) PointerDown(s pointer.Sample) {
	if r.state == HoldArmed || r.state == HoldFeedbackShown {
		r.cancel()
	}

	r.session.Begin(s)
	r.armedAt = s.Time
	r.state = HoldArmed

	r.feedbackTimer = r.sched.AfterFunc(r.cfg.FeedbackDelay, r.onFeedback)
	r.completionTimer = r.sched.AfterFunc(r.cfg.HoldThreshold, r.onCompletion)
}

// PointerMove feeds a move sample through the intent classifier.
// Movement inconsistent with a stationary press cancels the hold.
func (r *HoldRecognizer) PointerMove(s pointer.Sample) {
	switch r.state {
	case HoldArmed, HoldFeedbackShown:
		if !r.session.Observe(s, r.cfg.SlopPx, r.cfg.VelocityMax) {
			r.cancel()
		}
	case HoldCompleted:
		// Inert: acknowledged to suppress selection on the surface
	}
}

// PointerUp ends the contact. Returns true when the event is consumed and
// must not reach ancestor tap handling: a completed hold never also
// registers as a tap.
func (r *HoldRecognizer) PointerUp(s pointer.Sample) bool {
	switch r.state {
	case HoldArmed, HoldFeedbackShown:
		r.cancel()
		r.state = HoldIdle
		return false
	case HoldCompleted:
		r.session.End()
		r.state = HoldIdle
		return true
	case HoldCancelled:
		r.state = HoldIdle
	}
	return false
}

// PointerLeave cancels the hold when the contact drifts off the element
func (r *HoldRecognizer) PointerLeave() {
	if r.state == HoldArmed || r.state == HoldFeedbackShown {
		r.cancel()
	}
}

// PointerCancel handles host-initiated cancellation (system gesture steal)
func (r *HoldRecognizer) PointerCancel() {
	if r.state == HoldArmed || r.state == HoldFeedbackShown {
		r.cancel()
	}
}

func (r *HoldRecognizer) cancelFromScroll() {
	if r.state == HoldArmed || r.state == HoldFeedbackShown {
		r.session.MarkInvalid()
		r.cancel()
		r.metrics.incScrollCancel()
	}
}

// onFeedback transitions Armed → FeedbackShown and begins progress reporting
func (r *HoldRecognizer) onFeedback(time.Time) {
	if r.state != HoldArmed {
		return
	}
	r.state = HoldFeedbackShown
	r.session.MarkFeedbackShown()

	if r.cb.OnHoldStart != nil {
		r.cb.OnHoldStart()
	}
	if r.cb.OnHoldProgress != nil {
		r.progressTimer = r.sched.EveryFunc(r.cfg.ProgressInterval, r.onProgressTick)
		r.hasProgress = true
	}
}

// onProgressTick reports fill progress normalized against the post-feedback
// span, so the visual fill and the completion deadline agree exactly
func (r *HoldRecognizer) onProgressTick(now time.Time) {
	if r.state != HoldFeedbackShown {
		return
	}
	elapsed := now.Sub(r.armedAt) - r.cfg.FeedbackDelay
	span := r.cfg.HoldThreshold - r.cfg.FeedbackDelay
	r.cb.OnHoldProgress(clamp01(float64(elapsed) / float64(span)))
}

// onCompletion fires the hold. The haptic pulse is best-effort and must
// never delay OnHold.
func (r *HoldRecognizer) onCompletion(time.Time) {
	if r.state != HoldArmed && r.state != HoldFeedbackShown {
		return
	}

	r.clearTimers()
	r.session.MarkCompleted()
	r.state = HoldCompleted

	if r.cb.OnHoldProgress != nil {
		r.cb.OnHoldProgress(1)
	}
	r.haptics.Pulse()
	r.metrics.incHoldCompleted()
	if r.cb.OnHold != nil {
		r.cb.OnHold()
	}
}

// cancel is the single cancellation path. Idempotent: a session that
// already completed or cancelled is untouched, and all outstanding timers
// are cleared so no stale deadline fires after logical cancellation.
func (r *HoldRecognizer) cancel() {
	if r.state != HoldArmed && r.state != HoldFeedbackShown {
		return
	}

	shown := r.session.FeedbackShown()
	r.clearTimers()
	r.session.End()
	r.state = HoldCancelled
	r.metrics.incHoldCancelled()

	if shown {
		if r.cb.OnHoldProgress != nil {
			r.cb.OnHoldProgress(0)
		}
		if r.cb.OnHoldCancel != nil {
			r.cb.OnHoldCancel()
		}
	}
}

func (r *HoldRecognizer) clearTimers() {
	r.sched.Cancel(r.feedbackTimer)
	r.sched.Cancel(r.completionTimer)
	if r.hasProgress {
		r.sched.Cancel(r.progressTimer)
		r.hasProgress = false
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
