package pointer

import (
	"math"
	"time"
)

// Sample is one pointer observation: a position and the instant it was
// reported by the input source. Immutable once created.
type Sample struct {
	X, Y float64
	Time time.Time
}

// Point returns the spatial component of the sample.
func (s Sample) Point() Point {
	return Point{X: s.X, Y: s.Y}
}

// Point is a position on the reading surface, in pixels.
type Point struct {
	X, Y float64
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Midpoint returns the point halfway between a and b.
// Used by the two-finger swipe tracker.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Velocity returns the instantaneous speed between two consecutive samples
// in px/ms. The elapsed time is clamped to a 1ms floor so that two samples
// reported in the same millisecond do not produce an infinite speed.
func Velocity(from, to Sample) float64 {
	dt := to.Time.Sub(from.Time).Milliseconds()
	if dt < 1 {
		dt = 1
	}
	return Distance(from.Point(), to.Point()) / float64(dt)
}
