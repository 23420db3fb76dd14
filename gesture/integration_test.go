package gesture

import (
	"testing"
	"time"

	"github.com/lixenwraith/tactile/pointer"
)

// element wires a hold and a double-tap recognizer to one surface the way a
// host does: up events reach the tap recognizer only when the hold did not
// consume them.
type element struct {
	hold *HoldRecognizer
	tap  *DoubleTapRecognizer

	holds      int
	doubleTaps int
}

func newElement(r *rig) *element {
	e := &element{}
	e.hold = NewHoldRecognizer(r.sched, r.bc, Config{}, HoldCallbacks{
		OnHold: func() { e.holds++ },
	})
	e.tap = NewDoubleTapRecognizer(r.sched, r.bc, Config{}, func() { e.doubleTaps++ })
	return e
}

func (e *element) down(s pointer.Sample) {
	e.hold.PointerDown(s)
	e.tap.PointerDown(s)
}

func (e *element) move(s pointer.Sample) {
	e.hold.PointerMove(s)
	e.tap.PointerMove(s)
}

func (e *element) up(s pointer.Sample) {
	if e.hold.PointerUp(s) {
		return
	}
	e.tap.PointerUp(s)
}

func (e *element) close() {
	e.hold.Close()
	e.tap.Close()
}

// TestCompletedHoldSuppressesTapPairing verifies a full hold on an element
// that also recognizes double-taps never seeds a pairing window, so a quick
// tap right after the hold cannot pair with it
func TestCompletedHoldSuppressesTapPairing(t *testing.T) {
	r := newRig()
	e := newElement(r)
	defer e.close()

	e.down(r.at(100, 100))
	r.advance(300 * time.Millisecond)
	e.up(r.at(100, 100))

	if e.holds != 1 {
		t.Fatalf("holds = %d, want 1", e.holds)
	}
	if e.tap.HasPendingTap() {
		t.Fatal("consumed hold release opened a tap pairing window")
	}

	// A quick tap 100ms later starts its own window rather than pairing
	r.advance(100 * time.Millisecond)
	e.down(r.at(100, 100))
	r.advance(40 * time.Millisecond)
	e.up(r.at(100, 100))

	if e.doubleTaps != 0 {
		t.Fatalf("doubleTaps = %d, want 0", e.doubleTaps)
	}
	if !e.tap.HasPendingTap() {
		t.Error("post-hold tap did not open its own window")
	}
}

// TestDeadZonePressYieldsNoGesture verifies a 250ms stationary press on an
// element with both recognizers produces neither outcome: too long to be a
// tap, released before the hold threshold. The contact resolves with only
// the hold feedback appearing and retracting.
func TestDeadZonePressYieldsNoGesture(t *testing.T) {
	r := newRig()
	e := newElement(r)
	defer e.close()

	for i := 0; i < 2; i++ {
		e.down(r.at(100, 100))
		r.advance(250 * time.Millisecond)
		e.up(r.at(100, 100))
		r.advance(400 * time.Millisecond) // drain the tap window expiry
	}

	if e.holds != 0 {
		t.Errorf("holds = %d, want 0", e.holds)
	}
	if e.doubleTaps != 0 {
		t.Errorf("doubleTaps = %d, want 0", e.doubleTaps)
	}
}

// TestScrollCancelsInFlightGesturesAcrossElements verifies one scroll
// broadcast invalidates a mid-flight hold on one element and the pending
// tap window on another in the same pass
func TestScrollCancelsInFlightGesturesAcrossElements(t *testing.T) {
	r := newRig()
	a := newElement(r)
	b := newElement(r)
	defer a.close()
	defer b.close()

	// Element b has a first tap waiting for its pair
	b.down(r.at(300, 300))
	r.advance(40 * time.Millisecond)
	b.up(r.at(300, 300))
	if !b.tap.HasPendingTap() {
		t.Fatal("setup: no pending tap on b")
	}

	// Element a is 100ms into a hold with feedback showing
	a.down(r.at(100, 100))
	r.advance(100 * time.Millisecond)
	if a.hold.State() != HoldFeedbackShown {
		t.Fatalf("setup: hold state %v, want FeedbackShown", a.hold.State())
	}

	r.bc.NotifyScrollStart()

	if a.hold.State() != HoldCancelled {
		t.Errorf("hold state after scroll = %v, want Cancelled", a.hold.State())
	}
	if b.tap.HasPendingTap() {
		t.Error("pending tap on b survived the scroll")
	}

	// Holding past the threshold after the scroll changes nothing
	r.advance(time.Second)
	a.up(r.at(100, 100))
	if a.holds != 0 {
		t.Errorf("holds = %d after scroll cancellation, want 0", a.holds)
	}

	// Taps paired after the scroll work normally
	r.advance(10 * time.Millisecond)
	for i := 0; i < 2; i++ {
		b.down(r.at(300, 300))
		r.advance(30 * time.Millisecond)
		b.up(r.at(300, 300))
		r.advance(30 * time.Millisecond)
	}
	if b.doubleTaps != 1 {
		t.Errorf("doubleTaps = %d after scroll, want 1", b.doubleTaps)
	}
}

// TestSharedMetricsAcrossRecognizers verifies one Metrics sink aggregates
// outcomes from every recognizer attached to it
func TestSharedMetricsAcrossRecognizers(t *testing.T) {
	r := newRig()
	m := &Metrics{}
	e := newElement(r)
	defer e.close()
	e.hold.SetMetrics(m)
	e.tap.SetMetrics(m)

	// Completed hold
	e.down(r.at(100, 100))
	r.advance(300 * time.Millisecond)
	e.up(r.at(100, 100))

	// Paired taps
	for i := 0; i < 2; i++ {
		e.down(r.at(100, 100))
		r.advance(30 * time.Millisecond)
		e.up(r.at(100, 100))
		r.advance(30 * time.Millisecond)
	}

	if got := m.HoldsCompleted.Load(); got != 1 {
		t.Errorf("HoldsCompleted = %d, want 1", got)
	}
	if got := m.TapsPaired.Load(); got != 1 {
		t.Errorf("TapsPaired = %d, want 1", got)
	}
}
