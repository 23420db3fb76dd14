package pointer

// EventKind discriminates raw contact events
type EventKind uint8

const (
	EventNone EventKind = iota

	// Single-contact stream
	EventDown
	EventMove
	EventUp
	EventCancel // Host-initiated: system stole the gesture

	// Two-contact stream, active while exactly two contacts are down
	EventTwoDown
	EventTwoMove
	EventTwoUp
)

// String returns a short name for trace output
func (k EventKind) String() string {
	switch k {
	case EventDown:
		return "down"
	case EventMove:
		return "move"
	case EventUp:
		return "up"
	case EventCancel:
		return "cancel"
	case EventTwoDown:
		return "down2"
	case EventTwoMove:
		return "move2"
	case EventTwoUp:
		return "up2"
	}
	return "none"
}

// Event is a raw input event as delivered by the host input source.
// Second is only meaningful for the two-contact kinds.
type Event struct {
	Kind   EventKind
	Sample Sample
	Second Sample
}
