package gesture

import "sync/atomic"

// Metrics aggregates recognizer outcome counters.
// Recognizers write through the nil-safe Inc helpers on their hot paths;
// a host status bar reads the atomics directly.
type Metrics struct {
	HoldsCompleted atomic.Int64
	HoldsCancelled atomic.Int64
	TapsPaired     atomic.Int64
	TapsExpired    atomic.Int64
	Swipes         atomic.Int64
	ScrollCancels  atomic.Int64
}

func (m *Metrics) incHoldCompleted() {
	if m != nil {
		m.HoldsCompleted.Add(1)
	}
}

func (m *Metrics) incHoldCancelled() {
	if m != nil {
		m.HoldsCancelled.Add(1)
	}
}

func (m *Metrics) incTapPaired() {
	if m != nil {
		m.TapsPaired.Add(1)
	}
}

func (m *Metrics) incTapExpired() {
	if m != nil {
		m.TapsExpired.Add(1)
	}
}

func (m *Metrics) incSwipe() {
	if m != nil {
		m.Swipes.Add(1)
	}
}

func (m *Metrics) incScrollCancel() {
	if m != nil {
		m.ScrollCancels.Add(1)
	}
}
