package gesture

import (
	"time"

	"github.com/lixenwraith/tactile/engine"
	"github.com/lixenwraith/tactile/pointer"
	"github.com/lixenwraith/tactile/scroll"
)

// rig wires a mock clock, scheduler, and broadcaster for deterministic
// recognizer tests: time only moves when a test advances it
type rig struct {
	tp    *engine.MockTimeProvider
	sched *engine.Scheduler
	bc    *scroll.Broadcaster
}

func newRig() *rig {
	tp := engine.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	sched := engine.NewScheduler(tp)
	return &rig{
		tp:    tp,
		sched: sched,
		bc:    scroll.NewBroadcaster(sched, DefaultScrollQuietPeriod),
	}
}

// advance moves the clock and fires every timer that came due
func (r *rig) advance(d time.Duration) {
	r.tp.Advance(d)
	r.sched.Advance()
}

// at builds a sample stamped with the current mock time
func (r *rig) at(x, y float64) pointer.Sample {
	return pointer.Sample{X: x, Y: y, Time: r.tp.Now()}
}

// fakeHaptic counts pulses without touching any audio backend
type fakeHaptic struct {
	pulses int
}

func (f *fakeHaptic) Pulse() {
	f.pulses++
}

// holdRecorder captures hold callback activity
type holdRecorder struct {
	starts       int
	holds        int
	cancels      int
	progress     []float64
	withProgress bool
}

func (h *holdRecorder) callbacks() HoldCallbacks {
	cb := HoldCallbacks{
		OnHoldStart:  func() { h.starts++ },
		OnHold:       func() { h.holds++ },
		OnHoldCancel: func() { h.cancels++ },
	}
	if h.withProgress {
		cb.OnHoldProgress = func(p float64) { h.progress = append(h.progress, p) }
	}
	return cb
}
