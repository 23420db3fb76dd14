// Package focus arbitrates how tap outcomes toggle the reading UI chrome.
package focus

import (
	"time"

	"github.com/lixenwraith/tactile/engine"
)

const (
	// DefaultVerseTapDelay holds a verse tap open for a possible double-tap.
	// Intentionally longer than the double-tap pairing window so the
	// double-tap always wins the race.
	DefaultVerseTapDelay = 350 * time.Millisecond

	// DefaultDesktopMinWidth is the viewport width at or above which the
	// chrome always reports visible
	DefaultDesktopMinWidth = 1024.0
)

// Controller is not a recognizer: it owns no low-level gesture timers and
// consumes tap/double-tap outcomes. Per tap target: a word tap does nothing
// (word interaction owns itself), a verse tap toggles after a delay unless
// a double-tap preempts it, a background tap toggles immediately.
type Controller[T any] struct {
	sched    *engine.Scheduler
	classify Classifier[T]

	verseDelay      time.Duration
	desktopMinWidth float64

	hidden        bool
	forceVisible  bool
	viewportWidth float64

	pendingToggle engine.TimerID
	hasPending    bool

	// OnChange reports the effective visibility after every mutation; optional
	OnChange func(visible bool)
}

// NewController creates a controller with the given target classifier
func NewController[T any](sched *engine.Scheduler, classify Classifier[T]) *Controller[T] {
	return &Controller[T]{
		sched:           sched,
		classify:        classify,
		verseDelay:      DefaultVerseTapDelay,
		desktopMinWidth: DefaultDesktopMinWidth,
	}
}

// SetVerseTapDelay overrides the verse-tap arbitration delay
func (c *Controller[T]) SetVerseTapDelay(d time.Duration) {
	if d > 0 {
		c.verseDelay = d
	}
}

// SetDesktopMinWidth overrides the viewport width treated as desktop
func (c *Controller[T]) SetDesktopMinWidth(w float64) {
	if w > 0 {
		c.desktopMinWidth = w
		c.changed()
	}
}

// Tap applies the arbitration policy to a completed tap on target
func (c *Controller[T]) Tap(target T) {
	switch c.classify(target) {
	case KindWord:
		// A hold recognizer owns word-level interaction; a bare tap on a
		// word must not toggle chrome

	case KindVerse:
		c.cancelPending()
		c.pendingToggle = c.sched.AfterFunc(c.verseDelay, func(time.Time) {
			c.hasPending = false
			c.Toggle()
		})
		c.hasPending = true

	case KindBackground:
		c.Toggle()
	}
}

// NotifyDoubleTap cancels a pending verse toggle: the double-tap wins
func (c *Controller[T]) NotifyDoubleTap() {
	c.cancelPending()
}

func (c *Controller[T]) cancelPending() {
	if c.hasPending {
		c.sched.Cancel(c.pendingToggle)
		c.hasPending = false
	}
}

// Toggle flips the stored chrome state
func (c *Controller[T]) Toggle() {
	c.hidden = !c.hidden
	c.changed()
}

// Show marks the chrome visible
func (c *Controller[T]) Show() {
	c.hidden = false
	c.changed()
}

// Hide marks the chrome hidden
func (c *Controller[T]) Hide() {
	c.hidden = true
	c.changed()
}

// IsHidden reports the effective visibility. ForceVisible and a
// desktop-sized viewport suppress the stored state without mutating it, so
// the user's last toggle choice survives the forced-visible interval.
func (c *Controller[T]) IsHidden() bool {
	if c.forceVisible {
		return false
	}
	if c.viewportWidth >= c.desktopMinWidth {
		return false
	}
	return c.hidden
}

// SetForceVisible is driven by external UI state, e.g. an open modal
func (c *Controller[T]) SetForceVisible(v bool) {
	c.forceVisible = v
	c.changed()
}

// SetViewportWidth updates the viewport width used for the desktop check
func (c *Controller[T]) SetViewportWidth(w float64) {
	c.viewportWidth = w
	c.changed()
}

func (c *Controller[T]) changed() {
	if c.OnChange != nil {
		c.OnChange(!c.IsHidden())
	}
}
