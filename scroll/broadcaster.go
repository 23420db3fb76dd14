// Package scroll carries the process-wide "a scroll just started" signal.
//
// Scroll is a global interrupt: a scroll detected anywhere in the scrollable
// ancestor must cancel every in-flight hold and pending double-tap on the
// page, without the scroll container holding a reference to each recognizer.
// The broadcaster is owned by a root coordinator and passed by reference,
// never a package-level singleton.
package scroll

import (
	"time"

	"github.com/lixenwraith/tactile/engine"
)

// SubscriberID identifies one subscription. Slot index in the low 32 bits,
// generation in the high 32 bits; unsubscribing a stale id is a no-op.
type SubscriberID uint64

func makeSubscriberID(index, gen uint32) SubscriberID {
	return SubscriberID(uint64(gen)<<32 | uint64(index))
}

func (id SubscriberID) split() (index, gen uint32) {
	return uint32(id & 0xffffffff), uint32(id >> 32)
}

type subscriberSlot struct {
	gen    uint32
	active bool
	fn     func()
}

// Broadcaster fans scroll-start notifications out to gesture recognizers.
//
// Fan-out is synchronous and in subscription order: every subscriber observes
// the notification before the scroll container's own next handler runs, so
// cancellation lands strictly before any further move processing for the same
// input frame. Subscribers treat the callback as "cancel my gesture now";
// the broadcaster does not wait for acknowledgment and cannot veto.
//
// The active flag clears after a quiet period with no further notifications;
// every NotifyScrollStart resets that timer, so continuous scrolling keeps
// the flag set indefinitely.
type Broadcaster struct {
	sched *engine.Scheduler
	quiet time.Duration

	slots []subscriberSlot
	order []SubscriberID // subscription order for fan-out
	free  []uint32

	active     bool
	quietTimer engine.TimerID
	hasTimer   bool
}

// NewBroadcaster creates a broadcaster with the given quiet period
func NewBroadcaster(sched *engine.Scheduler, quiet time.Duration) *Broadcaster {
	return &Broadcaster{
		sched: sched,
		quiet: quiet,
	}
}

// Subscribe registers fn for scroll-start notifications.
// The caller must Unsubscribe on recognizer teardown to avoid leaks.
func (b *Broadcaster) Subscribe(fn func()) SubscriberID {
	slot := subscriberSlot{active: true, fn: fn}

	var id SubscriberID
	if n := len(b.free); n > 0 {
		idx := b.free[n-1]
		b.free = b.free[:n-1]
		slot.gen = b.slots[idx].gen
		b.slots[idx] = slot
		id = makeSubscriberID(idx, slot.gen)
	} else {
		slot.gen = 1
		b.slots = append(b.slots, slot)
		id = makeSubscriberID(uint32(len(b.slots)-1), slot.gen)
	}

	b.order = append(b.order, id)
	return id
}

// Unsubscribe removes a subscription. Stale or reused ids are no-ops.
func (b *Broadcaster) Unsubscribe(id SubscriberID) {
	idx, gen := id.split()
	if int(idx) >= len(b.slots) {
		return
	}
	slot := &b.slots[idx]
	if !slot.active || slot.gen != gen {
		return
	}
	slot.active = false
	slot.fn = nil
	slot.gen++
	b.free = append(b.free, idx)

	for i, oid := range b.order {
		if oid == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// SubscriberCount returns the number of live subscriptions
func (b *Broadcaster) SubscriberCount() int {
	return len(b.order)
}

// IsActive reports whether a scroll happened within the quiet period
func (b *Broadcaster) IsActive() bool {
	return b.active
}

// NotifyScrollStart marks a scroll in progress and synchronously notifies
// every subscriber. A panicking subscriber must not prevent the remaining
// subscribers from being notified.
func (b *Broadcaster) NotifyScrollStart() {
	b.active = true

	if b.hasTimer {
		b.sched.Cancel(b.quietTimer)
	}
	b.quietTimer = b.sched.AfterFunc(b.quiet, func(time.Time) {
		b.active = false
		b.hasTimer = false
	})
	b.hasTimer = true

	// Snapshot: subscribers may unsubscribe (or subscribe) during fan-out
	pending := make([]SubscriberID, len(b.order))
	copy(pending, b.order)

	for _, id := range pending {
		idx, gen := id.split()
		slot := &b.slots[idx]
		if !slot.active || slot.gen != gen {
			continue
		}
		notifyOne(slot.fn)
	}
}

// notifyOne isolates subscriber panics from the rest of the fan-out
func notifyOne(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
