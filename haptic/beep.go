package haptic

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const pulseSampleRate = beep.SampleRate(48000)

// BeepDriver renders the pulse as a short sine blip through the speaker.
// Terminals have no vibration motor; an audible tick is the closest analog.
type BeepDriver struct {
	mu          sync.Mutex
	initialized bool
}

// NewBeepDriver creates an uninitialized beep driver
func NewBeepDriver() *BeepDriver {
	return &BeepDriver{}
}

// Init opens the speaker. Failure leaves the driver silent, not broken.
func (d *BeepDriver) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.initialized {
		return nil
	}
	if err := speaker.Init(pulseSampleRate, pulseSampleRate.N(time.Millisecond*50)); err != nil {
		return err
	}
	d.initialized = true
	return nil
}

// Close shuts the speaker down. Safe to call without a successful Init.
func (d *BeepDriver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.initialized {
		speaker.Close()
		d.initialized = false
	}
}

// Pulse plays one 30ms blip. No-op before Init or after a failed Init.
func (d *BeepDriver) Pulse() {
	d.mu.Lock()
	ok := d.initialized
	d.mu.Unlock()
	if !ok {
		return
	}

	streamer := beep.Take(pulseSampleRate.N(time.Millisecond*30), &pulseGenerator{freq: 880})
	speaker.Play(streamer)
}

// pulseGenerator produces a single enveloped sine blip
type pulseGenerator struct {
	freq float64
	pos  int
}

func (g *pulseGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(pulseSampleRate)

		// Fast attack, exponential decay
		envelope := math.Min(t/0.002, 1.0) * math.Exp(-t*120)
		sample := 0.25 * envelope * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *pulseGenerator) Err() error {
	return nil
}
