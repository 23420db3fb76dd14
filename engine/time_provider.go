package engine

import "time"

// TimeProvider supplies the current time to the scheduler and recognizers.
// Production code uses MonotonicTimeProvider; tests substitute MockTimeProvider
// so every timer deadline is driven explicitly.
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock. time.Now carries a
// monotonic reading, so timer interval math survives wall-clock adjustment
// mid-gesture.
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates the production time source
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current system time
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
