package gesture

import (
	"testing"
	"time"
)

// TestHoldReleasedAt299msCancelsNotHolds verifies a press one millisecond
// short of the threshold fires the visible cancel (feedback was shown at
// 50ms) and never the hold
func TestHoldReleasedAt299msCancelsNotHolds(t *testing.T) {
	r := newRig()
	rec := &holdRecorder{}
	h := NewHoldRecognizer(r.sched, r.bc, Config{}, rec.callbacks())
	defer h.Close()

	h.PointerDown(r.at(100, 100))
	r.advance(299 * time.Millisecond)
	h.PointerUp(r.at(100, 100))

	if rec.starts != 1 {
		t.Errorf("OnHoldStart fired %d times, want 1", rec.starts)
	}
	if rec.holds != 0 {
		t.Errorf("OnHold fired %d times, want 0", rec.holds)
	}
	if rec.cancels != 1 {
		t.Errorf("OnHoldCancel fired %d times, want 1", rec.cancels)
	}
}

// TestHoldCompletesAtThreshold verifies a press held to the threshold fires
// OnHold exactly once, pulses haptics, and consumes the subsequent up
func TestHoldCompletesAtThreshold(t *testing.T) {
	r := newRig()
	rec := &holdRecorder{}
	h := NewHoldRecognizer(r.sched, r.bc, Config{}, rec.callbacks())
	defer h.Close()

	pulse := &fakeHaptic{}
	h.SetHaptics(pulse)

	h.PointerDown(r.at(100, 100))
	r.advance(300 * time.Millisecond)

	if rec.holds != 1 {
		t.Fatalf("OnHold fired %d times at threshold, want 1", rec.holds)
	}
	if pulse.pulses != 1 {
		t.Errorf("haptic pulses = %d, want 1", pulse.pulses)
	}
	if h.State() != HoldCompleted {
		t.Errorf("state = %v, want Completed", h.State())
	}

	// Holding longer must not re-fire
	r.advance(time.Second)
	if rec.holds != 1 {
		t.Errorf("OnHold re-fired, total %d", rec.holds)
	}

	if !h.PointerUp(r.at(100, 100)) {
		t.Error("up after completed hold was not consumed")
	}
	if rec.cancels != 0 {
		t.Errorf("OnHoldCancel fired %d times after completion, want 0", rec.cancels)
	}
}

// TestReleaseBeforeFeedbackIsSilent verifies a press released before the
// feedback delay fires neither OnHoldStart nor OnHoldCancel
func TestReleaseBeforeFeedbackIsSilent(t *testing.T) {
	r := newRig()
	rec := &holdRecorder{}
	h := NewHoldRecognizer(r.sched, r.bc, Config{}, rec.callbacks())
	defer h.Close()

	h.PointerDown(r.at(100, 100))
	r.advance(30 * time.Millisecond)
	h.PointerUp(r.at(100, 100))

	if rec.starts != 0 || rec.cancels != 0 || rec.holds != 0 {
		t.Errorf("callbacks fired for invisible press: starts=%d cancels=%d holds=%d",
			rec.starts, rec.cancels, rec.holds)
	}

	// The cleared feedback timer must not fire later
	r.advance(time.Second)
	if rec.starts != 0 {
		t.Errorf("stale feedback timer fired after release")
	}
}

// TestMovementBeforeFeedbackCancelsSilently verifies slop breach during the
// invisible window cancels with no visible callback
func TestMovementBeforeFeedbackCancelsSilently(t *testing.T) {
	r := newRig()
	rec := &holdRecorder{}
	h := NewHoldRecognizer(r.sched, r.bc, Config{}, rec.callbacks())
	defer h.Close()

	h.PointerDown(r.at(100, 100))
	r.advance(20 * time.Millisecond)
	h.PointerMove(r.at(115, 100))

	if h.State() != HoldCancelled {
		t.Fatalf("state = %v after slop breach, want Cancelled", h.State())
	}
	if rec.cancels != 0 {
		t.Errorf("OnHoldCancel fired %d times before feedback, want 0", rec.cancels)
	}

	r.advance(time.Second)
	if rec.starts != 0 || rec.holds != 0 {
		t.Errorf("cancelled hold still fired: starts=%d holds=%d", rec.starts, rec.holds)
	}
}

// TestMovementAfterFeedbackCancelsVisibly verifies slop breach after
// feedback fires OnHoldCancel and resets progress to zero
func TestMovementAfterFeedbackCancelsVisibly(t *testing.T) {
	r := newRig()
	rec := &holdRecorder{withProgress: true}
	h := NewHoldRecognizer(r.sched, r.bc, Config{}, rec.callbacks())
	defer h.Close()

	h.PointerDown(r.at(100, 100))
	r.advance(150 * time.Millisecond)
	if rec.starts != 1 {
		t.Fatalf("setup: feedback not shown")
	}

	h.PointerMove(r.at(120, 100))

	if rec.cancels != 1 {
		t.Errorf("OnHoldCancel fired %d times, want 1", rec.cancels)
	}
	if n := len(rec.progress); n == 0 || rec.progress[n-1] != 0 {
		t.Errorf("progress not reset to 0 on cancel, trail %v", rec.progress)
	}
}

// TestScrollBroadcastMidHoldPreventsCompletion verifies a scroll broadcast
// at 150ms into a 300ms hold cancels it, and no OnHold ever fires even
// after the nominal threshold elapses
func TestScrollBroadcastMidHoldPreventsCompletion(t *testing.T) {
	r := newRig()
	rec := &holdRecorder{}
	h := NewHoldRecognizer(r.sched, r.bc, Config{}, rec.callbacks())
	defer h.Close()

	h.PointerDown(r.at(100, 100))
	r.advance(150 * time.Millisecond)

	r.bc.NotifyScrollStart()

	if rec.cancels != 1 {
		t.Errorf("OnHoldCancel fired %d times on scroll, want 1", rec.cancels)
	}

	r.advance(time.Second)
	if rec.holds != 0 {
		t.Errorf("OnHold fired %d times after scroll cancellation, want 0", rec.holds)
	}
}

// TestProgressNormalizedToPostFeedbackSpan verifies progress reporting uses
// the post-feedback span so the visual fill and the completion deadline
// agree: first tick low, monotonic, 1.0 emitted at completion
func TestProgressNormalizedToPostFeedbackSpan(t *testing.T) {
	r := newRig()
	rec := &holdRecorder{withProgress: true}
	h := NewHoldRecognizer(r.sched, r.bc, Config{}, rec.callbacks())
	defer h.Close()

	h.PointerDown(r.at(100, 100))
	r.advance(400 * time.Millisecond)

	if rec.holds != 1 {
		t.Fatalf("setup: hold did not complete")
	}
	if len(rec.progress) == 0 {
		t.Fatal("no progress reported")
	}

	// First tick at 66ms: (66-50)/(300-50) = 0.064
	if got := rec.progress[0]; got < 0.06 || got > 0.07 {
		t.Errorf("first progress = %v, want ~0.064", got)
	}
	for i := 1; i < len(rec.progress); i++ {
		if rec.progress[i] < rec.progress[i-1] {
			t.Fatalf("progress regressed at %d: %v", i, rec.progress)
		}
	}
	if last := rec.progress[len(rec.progress)-1]; last != 1 {
		t.Errorf("final progress = %v, want 1", last)
	}
}

// TestReArmCancelsPendingSession verifies a new pointer-down on a
// recognizer with a live session runs full cancellation before arming;
// sessions are never nested or merged
func TestReArmCancelsPendingSession(t *testing.T) {
	r := newRig()
	rec := &holdRecorder{}
	h := NewHoldRecognizer(r.sched, r.bc, Config{}, rec.callbacks())
	defer h.Close()

	h.PointerDown(r.at(100, 100))
	r.advance(100 * time.Millisecond) // feedback shown

	h.PointerDown(r.at(200, 200)) // host never delivered the up

	if rec.cancels != 1 {
		t.Errorf("old session cancel fired %d times, want 1", rec.cancels)
	}
	if h.State() != HoldArmed {
		t.Fatalf("state = %v after re-arm, want Armed", h.State())
	}

	r.advance(300 * time.Millisecond)
	if rec.holds != 1 {
		t.Errorf("new session OnHold fired %d times, want 1", rec.holds)
	}
}

// TestPointerLeaveCancels verifies the pointer leaving the element cancels
// like any other invalidation, idempotently
func TestPointerLeaveCancels(t *testing.T) {
	r := newRig()
	rec := &holdRecorder{}
	h := NewHoldRecognizer(r.sched, r.bc, Config{}, rec.callbacks())
	defer h.Close()

	h.PointerDown(r.at(100, 100))
	r.advance(100 * time.Millisecond)

	h.PointerLeave()
	h.PointerLeave()
	h.PointerCancel()

	if rec.cancels != 1 {
		t.Errorf("OnHoldCancel fired %d times, want 1", rec.cancels)
	}

	r.advance(time.Second)
	if rec.holds != 0 {
		t.Errorf("OnHold fired after leave")
	}
}

// TestCompletedHoldNeverCancels verifies completion and cancellation are
// mutually exclusive terminal outcomes
func TestCompletedHoldNeverCancels(t *testing.T) {
	r := newRig()
	rec := &holdRecorder{}
	h := NewHoldRecognizer(r.sched, r.bc, Config{}, rec.callbacks())
	defer h.Close()

	h.PointerDown(r.at(100, 100))
	r.advance(300 * time.Millisecond)
	if rec.holds != 1 {
		t.Fatalf("setup: hold did not complete")
	}

	// Movement, leave, and scroll after completion are all inert
	h.PointerMove(r.at(200, 200))
	h.PointerLeave()
	h.PointerCancel()
	r.bc.NotifyScrollStart()

	if rec.cancels != 0 {
		t.Errorf("OnHoldCancel fired %d times on a completed session, want 0", rec.cancels)
	}
}

// TestCloseUnsubscribesFromBroadcaster verifies recognizer teardown removes
// the scroll subscription so the broadcaster does not leak callbacks
func TestCloseUnsubscribesFromBroadcaster(t *testing.T) {
	r := newRig()
	h := NewHoldRecognizer(r.sched, r.bc, Config{}, HoldCallbacks{})

	if r.bc.SubscriberCount() != 1 {
		t.Fatalf("SubscriberCount = %d after create, want 1", r.bc.SubscriberCount())
	}
	h.Close()
	if r.bc.SubscriberCount() != 0 {
		t.Fatalf("SubscriberCount = %d after Close, want 0", r.bc.SubscriberCount())
	}
}

// TestHoldMetrics verifies outcome counters account completions,
// cancellations, and scroll cancellations
func TestHoldMetrics(t *testing.T) {
	r := newRig()
	m := &Metrics{}
	h := NewHoldRecognizer(r.sched, r.bc, Config{}, HoldCallbacks{})
	defer h.Close()
	h.SetMetrics(m)

	h.PointerDown(r.at(0, 0))
	r.advance(300 * time.Millisecond)
	h.PointerUp(r.at(0, 0))

	h.PointerDown(r.at(0, 0))
	r.advance(100 * time.Millisecond)
	r.bc.NotifyScrollStart()

	if got := m.HoldsCompleted.Load(); got != 1 {
		t.Errorf("HoldsCompleted = %d, want 1", got)
	}
	if got := m.HoldsCancelled.Load(); got != 1 {
		t.Errorf("HoldsCancelled = %d, want 1", got)
	}
	if got := m.ScrollCancels.Load(); got != 1 {
		t.Errorf("ScrollCancels = %d, want 1", got)
	}
}
