package focus

// TargetKind resolves the priority ordering between nested tap targets on
// the reading surface: word interaction beats verse interaction beats the
// background toggle.
type TargetKind uint8

const (
	KindBackground TargetKind = iota // Margin or empty surface
	KindVerse                        // Verse text outside any word
	KindWord                         // Word element owning its own interaction
)

// String returns the kind name
func (k TargetKind) String() string {
	switch k {
	case KindWord:
		return "Word"
	case KindVerse:
		return "Verse"
	case KindBackground:
		return "Background"
	}
	return "Unknown"
}

// Classifier maps a host-defined tap target to its kind. Keeping this an
// explicit function decouples the arbitration policy from any particular
// element-tree walking mechanism.
type Classifier[T any] func(target T) TargetKind
