// FILE: main.go
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/tactile/engine"
	"github.com/lixenwraith/tactile/focus"
	"github.com/lixenwraith/tactile/gesture"
	"github.com/lixenwraith/tactile/haptic"
	"github.com/lixenwraith/tactile/pointer"
	"github.com/lixenwraith/tactile/scroll"
)

const (
	// cellPx converts terminal cells to logical pixels so one-cell jitter
	// stays inside the slop radius while a real drag does not
	cellPx = 4.0

	configPath = "tactile.toml"
	tickMs     = 16
)

// demoConfig is the optional TOML-loaded demo configuration
type demoConfig struct {
	Haptics bool   `toml:"haptics"`
	LogFile string `toml:"log_file"`

	Thresholds struct {
		HoldMs        int64   `toml:"hold_ms"`
		FeedbackMs    int64   `toml:"feedback_ms"`
		DoubleTapMs   int64   `toml:"double_tap_ms"`
		MaxTapMs      int64   `toml:"max_tap_ms"`
		SlopPx        float64 `toml:"slop_px"`
		VelocityMax   float64 `toml:"velocity_max"`
		SwipeDistance float64 `toml:"swipe_distance"`
	} `toml:"thresholds"`
}

func loadConfig() (demoConfig, gesture.Config) {
	cfg := demoConfig{Haptics: true, LogFile: "tactile.log"}
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Config decode failed: %v\n", err)
			os.Exit(1)
		}
	}

	gc := gesture.Config{
		SlopPx:        cfg.Thresholds.SlopPx,
		VelocityMax:   cfg.Thresholds.VelocityMax,
		SwipeDistance: cfg.Thresholds.SwipeDistance,
	}
	if v := cfg.Thresholds.HoldMs; v > 0 {
		gc.HoldThreshold = time.Duration(v) * time.Millisecond
	}
	if v := cfg.Thresholds.FeedbackMs; v > 0 {
		gc.FeedbackDelay = time.Duration(v) * time.Millisecond
	}
	if v := cfg.Thresholds.DoubleTapMs; v > 0 {
		gc.DoubleTapDelay = time.Duration(v) * time.Millisecond
	}
	if v := cfg.Thresholds.MaxTapMs; v > 0 {
		gc.MaxTapDuration = time.Duration(v) * time.Millisecond
	}
	return cfg, gc.Normalize()
}

// verseLine is one row of the reading surface
type verseLine struct {
	text  string
	words []wordSpan
}

type wordSpan struct {
	start, end int // cell columns within the line
	text       string
}

func buildVerses(lines []string) []verseLine {
	verses := make([]verseLine, 0, len(lines))
	for _, text := range lines {
		v := verseLine{text: text}
		col := 0
		for _, w := range strings.Fields(text) {
			start := strings.Index(text[col:], w) + col
			v.words = append(v.words, wordSpan{start: start, end: start + len(w), text: w})
			col = start + len(w)
		}
		verses = append(verses, v)
	}
	return verses
}

// hitTarget is what the cursor is over, fed to the focus classifier
type hitTarget struct {
	kind  focus.TargetKind
	verse int
	word  string
}

func classifyHit(t hitTarget) focus.TargetKind {
	return t.kind
}

type Demo struct {
	screen        tcell.Screen
	width, height int
	log           *logrus.Logger

	clock *engine.MonotonicTimeProvider
	sched *engine.Scheduler
	bc    *scroll.Broadcaster

	cfg     gesture.Config
	metrics *gesture.Metrics
	haptics haptic.Driver

	hold   *gesture.HoldRecognizer
	dtap   *gesture.DoubleTapRecognizer
	swipe  *gesture.TwoFingerSwipeRecognizer
	chrome *focus.Controller[hitTarget]

	verses    []verseLine
	scrollTop int
	page      int

	// Pointer routing state
	pressed     bool
	pressTarget hitTarget
	modalOpen   bool
	rightDrag   bool

	holdProgress float64
	holdActive   bool
	definedWord  string
	playingVerse int
	lastOutcome  string
}

func NewDemo(cfg demoConfig, gc gesture.Config) (*Demo, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	log := logrus.New()
	if f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
		log.SetOutput(f)
	} else {
		// stderr would bleed into the tcell screen; drop logs instead
		log.SetOutput(io.Discard)
	}
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	clock := engine.NewMonotonicTimeProvider()
	sched := engine.NewScheduler(clock)
	bc := scroll.NewBroadcaster(sched, gesture.DefaultScrollQuietPeriod)

	d := &Demo{
		screen:       screen,
		log:          log,
		clock:        clock,
		sched:        sched,
		bc:           bc,
		cfg:          gc,
		metrics:      &gesture.Metrics{},
		haptics:      haptic.Nop{},
		verses:       buildVerses(sampleVerses),
		playingVerse: -1,
	}
	d.width, d.height = screen.Size()

	if cfg.Haptics {
		drv := haptic.NewBeepDriver()
		if err := drv.Init(); err != nil {
			// Non-fatal, pulses become silent
			log.WithError(err).Warn("haptic driver init failed")
		} else {
			d.haptics = drv
		}
	}

	d.hold = gesture.NewHoldRecognizer(sched, bc, gc, gesture.HoldCallbacks{
		OnHoldStart: func() {
			d.holdActive = true
			d.holdProgress = 0
		},
		OnHoldProgress: func(p float64) { d.holdProgress = p },
		OnHold: func() {
			d.holdActive = false
			d.definedWord = d.pressTarget.word
			d.lastOutcome = "hold: define " + d.definedWord
			d.log.WithField("word", d.definedWord).Info("hold completed")
		},
		OnHoldCancel: func() {
			d.holdActive = false
			d.lastOutcome = "hold cancelled"
			d.log.Info("hold cancelled after feedback")
		},
	})
	d.hold.SetHaptics(d.haptics)
	d.hold.SetMetrics(d.metrics)

	d.dtap = gesture.NewDoubleTapRecognizer(sched, bc, gc, func() {
		d.playingVerse = d.pressTarget.verse
		d.lastOutcome = fmt.Sprintf("double-tap: play verse %d", d.playingVerse+1)
		d.chrome.NotifyDoubleTap()
		d.log.WithField("verse", d.playingVerse).Info("double tap")
	})
	d.dtap.SetHaptics(d.haptics)
	d.dtap.SetMetrics(d.metrics)

	d.swipe = gesture.NewTwoFingerSwipeRecognizer(gc,
		func() { d.turnPage(+1) },
		func() { d.turnPage(-1) })
	d.swipe.SetMetrics(d.metrics)

	d.chrome = focus.NewController[hitTarget](sched, classifyHit)
	d.chrome.SetViewportWidth(float64(d.width) * cellPx)
	d.chrome.OnChange = func(visible bool) {
		d.log.WithField("visible", visible).Debug("chrome changed")
	}

	return d, nil
}

func (d *Demo) turnPage(dir int) {
	d.page += dir
	if d.page < 0 {
		d.page = 0
	}
	if dir > 0 {
		d.lastOutcome = "swipe: next page"
	} else {
		d.lastOutcome = "swipe: previous page"
	}
	d.log.WithField("page", d.page).Info("page turned")
}

// hitTest maps a cell position to the target under it
func (d *Demo) hitTest(x, y int) hitTarget {
	row := y - 2 + d.scrollTop // two rows of header chrome
	if row < 0 || row >= len(d.verses) {
		return hitTarget{kind: focus.KindBackground}
	}
	v := d.verses[row]
	for _, w := range v.words {
		if x >= w.start && x < w.end {
			return hitTarget{kind: focus.KindWord, verse: row, word: w.text}
		}
	}
	if x < len(v.text) {
		return hitTarget{kind: focus.KindVerse, verse: row}
	}
	return hitTarget{kind: focus.KindBackground}
}

func (d *Demo) sampleAt(x, y int) pointer.Sample {
	return pointer.Sample{
		X:    float64(x) * cellPx,
		Y:    float64(y) * cellPx,
		Time: d.clock.Now(),
	}
}

func (d *Demo) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	s := d.sampleAt(x, y)
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0 || buttons&tcell.WheelDown != 0:
		if buttons&tcell.WheelDown != 0 && d.scrollTop < len(d.verses)-1 {
			d.scrollTop++
		}
		if buttons&tcell.WheelUp != 0 && d.scrollTop > 0 {
			d.scrollTop--
		}
		d.bc.NotifyScrollStart()

	case buttons&tcell.Button1 != 0 && !d.pressed:
		d.pressed = true
		d.pressTarget = d.hitTest(x, y)
		if d.pressTarget.kind == focus.KindWord {
			d.hold.PointerDown(s)
		}
		d.dtap.PointerDown(s)

	case buttons&tcell.Button2 != 0 && !d.rightDrag:
		// Right-button drag stands in for the two-finger gesture on a
		// terminal without multitouch
		d.rightDrag = true
		d.swipe.TwoFingerDown(s, s)

	case buttons == tcell.ButtonNone && d.pressed:
		d.pressed = false
		if d.pressTarget.kind == focus.KindWord {
			if d.hold.PointerUp(s) {
				return
			}
		}
		if d.dtap.PointerUp(s) {
			return
		}
		d.chrome.Tap(d.pressTarget)

	case buttons == tcell.ButtonNone && d.rightDrag:
		d.rightDrag = false
		d.swipe.TwoFingerUp(s, s)

	case d.pressed:
		if d.pressTarget.kind == focus.KindWord {
			d.hold.PointerMove(s)
		}
		d.dtap.PointerMove(s)

	case d.rightDrag:
		d.swipe.TwoFingerMove(s, s)
	}
}

func (d *Demo) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'm' {
			// Simulated modal: chrome is forced visible while it is open
			d.modalOpen = !d.modalOpen
			d.chrome.SetForceVisible(d.modalOpen)
		}

	case *tcell.EventMouse:
		d.handleMouse(ev)

	case *tcell.EventResize:
		d.width, d.height = d.screen.Size()
		d.chrome.SetViewportWidth(float64(d.width) * cellPx)
	}
	return true
}

func (d *Demo) draw() {
	d.screen.Clear()

	chromeVisible := !d.chrome.IsHidden()
	base := tcell.StyleDefault
	dim := base.Foreground(tcell.ColorGray)
	hot := base.Foreground(tcell.ColorYellow)

	if chromeVisible {
		d.drawText(0, 0, base.Bold(true), "tactile demo")
		status := fmt.Sprintf("holds:%d cancels:%d taps:%d swipes:%d page:%d",
			d.metrics.HoldsCompleted.Load(),
			d.metrics.HoldsCancelled.Load(),
			d.metrics.TapsPaired.Load(),
			d.metrics.Swipes.Load(),
			d.page+1)
		d.drawText(0, 1, dim, status)
	}

	for i := d.scrollTop; i < len(d.verses) && i-d.scrollTop+2 < d.height-2; i++ {
		style := base
		if i == d.playingVerse {
			style = hot
		}
		d.drawText(0, i-d.scrollTop+2, style, d.verses[i].text)
	}

	if d.holdActive {
		bar := int(d.holdProgress * 20)
		d.drawText(0, d.height-2, hot,
			"hold ["+strings.Repeat("=", bar)+strings.Repeat(" ", 20-bar)+"]")
	}
	if chromeVisible {
		d.drawText(0, d.height-1, dim,
			"tap bg: toggle chrome | dbl-tap verse: play | hold word: define | wheel: scroll | rdrag: page | "+d.lastOutcome)
		if d.definedWord != "" {
			d.drawText(d.width-len(d.definedWord)-8, 0, hot, "define: "+d.definedWord)
		}
	}

	d.screen.Show()
}

func (d *Demo) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range text {
		if x+i >= d.width {
			break
		}
		d.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (d *Demo) run() {
	ticker := time.NewTicker(tickMs * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- d.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !d.handleInput(ev) {
				return
			}
			d.sched.Advance()
			d.draw()

		case <-ticker.C:
			d.sched.Advance()
			d.draw()
		}
	}
}

func (d *Demo) cleanup() {
	d.hold.Close()
	d.dtap.Close()
	if drv, ok := d.haptics.(*haptic.BeepDriver); ok {
		drv.Close()
	}
	d.screen.Fini()
}

var sampleVerses = []string{
	"The woods are lovely, dark and deep,",
	"But I have promises to keep,",
	"And miles to go before I sleep,",
	"And miles to go before I sleep.",
	"",
	"Two roads diverged in a yellow wood,",
	"And sorry I could not travel both",
	"And be one traveler, long I stood",
	"And looked down one as far as I could",
	"To where it bent in the undergrowth;",
}

func main() {
	cfg, gc := loadConfig()

	demo, err := NewDemo(cfg, gc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer demo.cleanup()

	demo.run()
}
