package gesture

import "time"

// Disambiguation thresholds. Slop and velocity are platform-standard
// touch-slop values, not tuned heuristics: they absorb involuntary
// micro-movement during a press (tremor, screen-protector friction) while
// any movement consistent with an intentional swipe invalidates within a
// handful of samples at 60Hz.
const (
	// DefaultSlopPx is the maximum distance from the start point a
	// stationary gesture may drift
	DefaultSlopPx = 10.0

	// DefaultVelocityMax is the maximum instantaneous speed (px/ms) a
	// stationary gesture may reach
	DefaultVelocityMax = 0.3

	// DefaultHoldThreshold is the press duration that completes a hold
	DefaultHoldThreshold = 300 * time.Millisecond

	// DefaultFeedbackDelay is how long a press stays invisible before hold
	// feedback begins; a press released earlier produces no visible artifact
	DefaultFeedbackDelay = 50 * time.Millisecond

	// DefaultDoubleTapDelay is the pairing window between two qualifying taps
	DefaultDoubleTapDelay = 300 * time.Millisecond

	// DefaultDoubleTapDistance is the pairing distance between two taps
	DefaultDoubleTapDistance = 30.0

	// DefaultMaxTapDuration separates a tap from the early portion of a hold
	DefaultMaxTapDuration = 200 * time.Millisecond

	// DefaultSwipeDistance is the horizontal midpoint displacement that
	// qualifies a two-finger swipe
	DefaultSwipeDistance = 80.0

	// DefaultScrollQuietPeriod clears the scroll-active flag after no
	// further scroll notifications arrive
	DefaultScrollQuietPeriod = 150 * time.Millisecond

	// DefaultProgressInterval is the hold-progress reporting rate (~60Hz)
	DefaultProgressInterval = 16 * time.Millisecond
)

// Config carries the disambiguation thresholds for one recognizer.
// Zero values are replaced by defaults via Normalize.
type Config struct {
	SlopPx            float64
	VelocityMax       float64 // px/ms
	HoldThreshold     time.Duration
	FeedbackDelay     time.Duration
	DoubleTapDelay    time.Duration
	DoubleTapDistance float64
	MaxTapDuration    time.Duration
	SwipeDistance     float64
	ProgressInterval  time.Duration
}

// DefaultConfig returns the standard thresholds
func DefaultConfig() Config {
	return Config{
		SlopPx:            DefaultSlopPx,
		VelocityMax:       DefaultVelocityMax,
		HoldThreshold:     DefaultHoldThreshold,
		FeedbackDelay:     DefaultFeedbackDelay,
		DoubleTapDelay:    DefaultDoubleTapDelay,
		DoubleTapDistance: DefaultDoubleTapDistance,
		MaxTapDuration:    DefaultMaxTapDuration,
		SwipeDistance:     DefaultSwipeDistance,
		ProgressInterval:  DefaultProgressInterval,
	}
}

// Normalize fills zero fields with defaults and clamps the feedback delay
// below the hold threshold so the post-feedback progress span stays positive
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.SlopPx <= 0 {
		c.SlopPx = def.SlopPx
	}
	if c.VelocityMax <= 0 {
		c.VelocityMax = def.VelocityMax
	}
	if c.HoldThreshold <= 0 {
		c.HoldThreshold = def.HoldThreshold
	}
	if c.FeedbackDelay <= 0 {
		c.FeedbackDelay = def.FeedbackDelay
	}
	if c.FeedbackDelay >= c.HoldThreshold {
		c.FeedbackDelay = c.HoldThreshold / 2
	}
	if c.DoubleTapDelay <= 0 {
		c.DoubleTapDelay = def.DoubleTapDelay
	}
	if c.DoubleTapDistance <= 0 {
		c.DoubleTapDistance = def.DoubleTapDistance
	}
	if c.MaxTapDuration <= 0 {
		c.MaxTapDuration = def.MaxTapDuration
	}
	if c.SwipeDistance <= 0 {
		c.SwipeDistance = def.SwipeDistance
	}
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = def.ProgressInterval
	}
	return c
}
