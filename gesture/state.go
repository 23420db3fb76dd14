package gesture

// HoldState tracks the tap-and-hold state machine
type HoldState uint8

const (
	HoldIdle          HoldState = iota // No contact tracked
	HoldArmed                          // Contact down, feedback not yet shown
	HoldFeedbackShown                  // Feedback timer fired, progress reporting
	HoldCompleted                      // Threshold reached; session inert until up
	HoldCancelled                      // Terminal; next down re-arms
)

// String returns the state name
func (s HoldState) String() string {
	switch s {
	case HoldIdle:
		return "Idle"
	case HoldArmed:
		return "Armed"
	case HoldFeedbackShown:
		return "FeedbackShown"
	case HoldCompleted:
		return "Completed"
	case HoldCancelled:
		return "Cancelled"
	}
	return "Unknown"
}
