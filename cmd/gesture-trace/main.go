// gesture-trace replays a recorded pointer trace through the recognizers on
// a mock clock and prints the outcome timeline. Useful for turning a bug
// report's event log into a deterministic reproduction.
//
// Usage:
//
//	gesture-trace trace.json
//	gesture-trace -sample > trace.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/tactile/engine"
	"github.com/lixenwraith/tactile/gesture"
	"github.com/lixenwraith/tactile/pointer"
	"github.com/lixenwraith/tactile/scroll"
)

// traceEvent is one recorded pointer event. Times are milliseconds from
// trace start; two-contact events carry the second contact in X2/Y2.
type traceEvent struct {
	AtMs int64   `json:"at_ms"`
	Kind string  `json:"kind"` // down, move, up, cancel, scroll, two_down, two_move, two_up
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
	X2   float64 `json:"x2,omitempty"`
	Y2   float64 `json:"y2,omitempty"`
}

var eventKinds = map[string]pointer.EventKind{
	"down":     pointer.EventDown,
	"move":     pointer.EventMove,
	"up":       pointer.EventUp,
	"cancel":   pointer.EventCancel,
	"two_down": pointer.EventTwoDown,
	"two_move": pointer.EventTwoMove,
	"two_up":   pointer.EventTwoUp,
}

type trace struct {
	ID     string       `json:"id,omitempty"`
	Events []traceEvent `json:"events"`
}

func main() {
	sample := flag.Bool("sample", false, "print a sample trace and exit")
	flag.Parse()

	if *sample {
		printSample()
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: gesture-trace [-sample] <trace.json>")
		os.Exit(1)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "read failed: %v\n", err)
		os.Exit(1)
	}

	var tr trace
	if err := json.Unmarshal(data, &tr); err != nil {
		fmt.Fprintf(os.Stderr, "decode failed: %v\n", err)
		os.Exit(1)
	}
	if tr.ID == "" {
		tr.ID = uuid.NewString()
	}

	replay(tr)
}

func replay(tr trace) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tp := engine.NewMockTimeProvider(start)
	sched := engine.NewScheduler(tp)
	bc := scroll.NewBroadcaster(sched, gesture.DefaultScrollQuietPeriod)

	metrics := &gesture.Metrics{}
	runID := uuid.NewString()

	logAt := func(now time.Time, format string, args ...any) {
		fmt.Printf("%6dms  %s\n", now.Sub(start).Milliseconds(), fmt.Sprintf(format, args...))
	}

	hold := gesture.NewHoldRecognizer(sched, bc, gesture.Config{}, gesture.HoldCallbacks{
		OnHoldStart:  func() { logAt(sched.Now(), "hold feedback shown") },
		OnHold:       func() { logAt(sched.Now(), "HOLD completed") },
		OnHoldCancel: func() { logAt(sched.Now(), "hold cancelled") },
	})
	defer hold.Close()
	hold.SetMetrics(metrics)

	dtap := gesture.NewDoubleTapRecognizer(sched, bc, gesture.Config{}, func() {
		logAt(sched.Now(), "DOUBLE-TAP")
	})
	defer dtap.Close()
	dtap.SetMetrics(metrics)

	swipe := gesture.NewTwoFingerSwipeRecognizer(gesture.Config{},
		func() { logAt(sched.Now(), "SWIPE left") },
		func() { logAt(sched.Now(), "SWIPE right") })
	swipe.SetMetrics(metrics)

	fmt.Printf("trace %s  run %s  (%d events)\n\n", tr.ID, runID, len(tr.Events))

	for _, raw := range tr.Events {
		tp.SetTime(start.Add(time.Duration(raw.AtMs) * time.Millisecond))
		sched.Advance()

		now := tp.Now()
		if raw.Kind == "scroll" {
			logAt(now, "scroll start")
			bc.NotifyScrollStart()
			continue
		}

		kind, ok := eventKinds[raw.Kind]
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown event kind %q, skipping\n", raw.Kind)
			continue
		}
		ev := pointer.Event{
			Kind:   kind,
			Sample: pointer.Sample{X: raw.X, Y: raw.Y, Time: now},
			Second: pointer.Sample{X: raw.X2, Y: raw.Y2, Time: now},
		}

		switch ev.Kind {
		case pointer.EventDown:
			logAt(now, "%s (%.0f,%.0f)", ev.Kind, ev.Sample.X, ev.Sample.Y)
			hold.PointerDown(ev.Sample)
			dtap.PointerDown(ev.Sample)
		case pointer.EventMove:
			hold.PointerMove(ev.Sample)
			dtap.PointerMove(ev.Sample)
		case pointer.EventUp:
			logAt(now, "%s (%.0f,%.0f)", ev.Kind, ev.Sample.X, ev.Sample.Y)
			if hold.PointerUp(ev.Sample) {
				logAt(now, "  consumed by hold")
				continue
			}
			if dtap.PointerUp(ev.Sample) {
				logAt(now, "  consumed by double-tap")
			}
		case pointer.EventCancel:
			logAt(now, "%s", ev.Kind)
			hold.PointerCancel()
			dtap.PointerCancel()
		case pointer.EventTwoDown:
			swipe.TwoFingerDown(ev.Sample, ev.Second)
		case pointer.EventTwoMove:
			swipe.TwoFingerMove(ev.Sample, ev.Second)
		case pointer.EventTwoUp:
			swipe.TwoFingerUp(ev.Sample, ev.Second)
		}
	}

	// Drain timers past the last event so expiries and completions resolve
	tp.Advance(time.Second)
	sched.Advance()

	fmt.Printf("\nholds:%d cancelled:%d taps:%d expired:%d swipes:%d scroll-cancels:%d\n",
		metrics.HoldsCompleted.Load(),
		metrics.HoldsCancelled.Load(),
		metrics.TapsPaired.Load(),
		metrics.TapsExpired.Load(),
		metrics.Swipes.Load(),
		metrics.ScrollCancels.Load())
}

func printSample() {
	tr := trace{
		ID: uuid.NewString(),
		Events: []traceEvent{
			{AtMs: 0, Kind: "down", X: 100, Y: 100},
			{AtMs: 310, Kind: "up", X: 102, Y: 100},
			{AtMs: 500, Kind: "down", X: 200, Y: 100},
			{AtMs: 540, Kind: "up", X: 200, Y: 100},
			{AtMs: 650, Kind: "down", X: 205, Y: 100},
			{AtMs: 690, Kind: "up", X: 205, Y: 100},
			{AtMs: 900, Kind: "scroll"},
			{AtMs: 1000, Kind: "two_down", X: 300, Y: 200, X2: 340, Y2: 200},
			{AtMs: 1150, Kind: "two_up", X: 190, Y: 205, X2: 230, Y2: 205},
		},
	}
	out, _ := json.MarshalIndent(tr, "", "  ")
	fmt.Println(string(out))
}
