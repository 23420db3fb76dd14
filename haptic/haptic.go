// Package haptic delivers the short confirmation pulse that accompanies a
// completed hold or a paired double-tap.
package haptic

// Driver emits one best-effort pulse. Absence of a capable backend must
// never block or delay the gesture callback the pulse accompanies, so
// implementations swallow failures and return immediately.
type Driver interface {
	Pulse()
}

// Nop is the driver used when the host has no feedback capability
type Nop struct{}

// Pulse does nothing
func (Nop) Pulse() {}
