package engine

import "time"

// MockTimeProvider is a hand-cranked clock for recognizer tests and trace
// replay. The engine is single-goroutine by contract: tests move the clock,
// pump the scheduler, and assert on one goroutine, so reads and writes are
// plain fields with no locking. Time only moves when explicitly driven.
type MockTimeProvider struct {
	current time.Time
}

// NewMockTimeProvider creates a mock clock frozen at startTime
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{current: startTime}
}

// Now returns the mocked instant
func (m *MockTimeProvider) Now() time.Time {
	return m.current
}

// SetTime jumps the clock to an absolute instant; trace replay uses this to
// land on recorded event timestamps exactly
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.current = t
}

// Advance moves the clock forward by d without firing anything; callers
// pump the scheduler separately
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}
