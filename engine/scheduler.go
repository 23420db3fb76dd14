package engine

import "time"

// TimerID identifies one scheduled callback. The slot index lives in the
// low 32 bits and the slot generation in the high 32 bits, so an id held
// past its timer's disposal misses on lookup instead of touching a reused
// slot. Cancelling a stale id is a safe no-op.
type TimerID uint64

const timerIDNone TimerID = 0

func makeTimerID(index, gen uint32) TimerID {
	return TimerID(uint64(gen)<<32 | uint64(index))
}

func (id TimerID) split() (index, gen uint32) {
	return uint32(id & 0xffffffff), uint32(id >> 32)
}

type timerSlot struct {
	gen      uint32
	active   bool
	seq      uint64 // FIFO tie-break for equal deadlines
	deadline time.Time
	interval time.Duration // 0 = fire once
	fn       func(now time.Time)
}

// Scheduler is a deadline-ordered timer queue for gesture state machines.
//
// Single-goroutine ownership: schedule, cancel, and advance all run on the
// same event-processing goroutine, and callbacks fire synchronously inside
// Advance/AdvanceTo. There is no background goroutine and no locking; the
// only suspension points in the engine are entries in this queue.
//
// Callbacks observe their slot deadline as "now", so a burst of overdue
// timers fires in deterministic deadline order with the logical time each
// deadline represents. A throttled host therefore fires late but timers
// never fire early.
type Scheduler struct {
	clock TimeProvider
	slots []timerSlot
	free  []uint32
	seq   uint64

	firing     bool
	logicalNow time.Time
}

// NewScheduler creates a scheduler reading time from the given provider
func NewScheduler(clock TimeProvider) *Scheduler {
	return &Scheduler{clock: clock}
}

// Now returns the scheduler's current time. Inside a firing callback this
// is the callback's deadline, so chained timers (feedback starting the
// progress ticker) land on deterministic deadlines even when the host
// advanced the clock past them in one step.
func (s *Scheduler) Now() time.Time {
	if s.firing {
		return s.logicalNow
	}
	return s.clock.Now()
}

// AfterFunc schedules fn to fire once after d has elapsed
func (s *Scheduler) AfterFunc(d time.Duration, fn func(now time.Time)) TimerID {
	return s.schedule(s.Now().Add(d), 0, fn)
}

// EveryFunc schedules fn to fire every interval until cancelled.
// Used only for hold-progress reporting, never for classification.
func (s *Scheduler) EveryFunc(interval time.Duration, fn func(now time.Time)) TimerID {
	return s.schedule(s.Now().Add(interval), interval, fn)
}

func (s *Scheduler) schedule(deadline time.Time, interval time.Duration, fn func(now time.Time)) TimerID {
	s.seq++
	slot := timerSlot{
		active:   true,
		seq:      s.seq,
		deadline: deadline,
		interval: interval,
		fn:       fn,
	}

	if n := len(s.free); n > 0 {
		idx := s.free[n-1]
		s.free = s.free[:n-1]
		slot.gen = s.slots[idx].gen
		s.slots[idx] = slot
		return makeTimerID(idx, slot.gen)
	}

	// Generation starts at 1 so the zero TimerID never matches a live slot
	slot.gen = 1
	s.slots = append(s.slots, slot)
	return makeTimerID(uint32(len(s.slots)-1), slot.gen)
}

// Cancel removes a scheduled callback. Stale, reused, or zero ids are no-ops,
// so cancellation after logical disposal is always safe.
func (s *Scheduler) Cancel(id TimerID) {
	idx, gen := id.split()
	if int(idx) >= len(s.slots) {
		return
	}
	slot := &s.slots[idx]
	if !slot.active || slot.gen != gen {
		return
	}
	s.release(idx)
}

func (s *Scheduler) release(idx uint32) {
	slot := &s.slots[idx]
	slot.active = false
	slot.fn = nil
	slot.gen++
	s.free = append(s.free, idx)
}

// Pending returns the number of live timers
func (s *Scheduler) Pending() int {
	n := 0
	for i := range s.slots {
		if s.slots[i].active {
			n++
		}
	}
	return n
}

// NextDeadline returns the earliest live deadline, if any.
// The host event loop uses this to size its poll timeout.
func (s *Scheduler) NextDeadline() (time.Time, bool) {
	var best time.Time
	found := false
	for i := range s.slots {
		if !s.slots[i].active {
			continue
		}
		if !found || s.slots[i].deadline.Before(best) {
			best = s.slots[i].deadline
			found = true
		}
	}
	return best, found
}

// Advance fires all timers due at the provider's current time
func (s *Scheduler) Advance() int {
	return s.AdvanceTo(s.clock.Now())
}

// AdvanceTo fires every timer with a deadline at or before now, in deadline
// order (FIFO for equal deadlines). Callbacks may schedule or cancel timers;
// newly due work is picked up within the same call. Returns the number of
// callbacks fired.
func (s *Scheduler) AdvanceTo(now time.Time) int {
	fired := 0
	for {
		idx, ok := s.nextDue(now)
		if !ok {
			return fired
		}
		slot := &s.slots[idx]
		fn := slot.fn
		deadline := slot.deadline

		if slot.interval > 0 {
			slot.deadline = slot.deadline.Add(slot.interval)
			s.seq++
			slot.seq = s.seq
		} else {
			// Release before firing so the callback can reschedule the slot
			s.release(idx)
		}

		s.firing = true
		s.logicalNow = deadline
		fn(deadline)
		s.firing = false
		fired++
	}
}

func (s *Scheduler) nextDue(now time.Time) (uint32, bool) {
	var bestIdx uint32
	found := false
	for i := range s.slots {
		slot := &s.slots[i]
		if !slot.active || slot.deadline.After(now) {
			continue
		}
		if !found || due(slot, &s.slots[bestIdx]) {
			bestIdx = uint32(i)
			found = true
		}
	}
	return bestIdx, found
}

// due reports whether a should fire before b
func due(a, b *timerSlot) bool {
	if a.deadline.Equal(b.deadline) {
		return a.seq < b.seq
	}
	return a.deadline.Before(b.deadline)
}
