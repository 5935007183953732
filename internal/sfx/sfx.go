// Package sfx plays the short interface blips that accompany panel and
// track changes.
package sfx

import (
	"log/slog"
	"math"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"

	"github.com/olivier-w/ampdeck/internal/engine"
)

// Effect selects one of the two alternating click sounds.
type Effect int

const (
	BlipA Effect = iota
	BlipB
)

func (e Effect) String() string {
	if e == BlipB {
		return "blip-b"
	}
	return "blip-a"
}

// Toggle returns the other effect.
func (e Effect) Toggle() Effect {
	if e == BlipA {
		return BlipB
	}
	return BlipA
}

// blip describes a two-note click.
type blip struct {
	first, second float64
	note, gap     time.Duration
}

var blips = map[Effect]blip{
	BlipA: {first: 880, second: 1320, note: 28 * time.Millisecond, gap: 6 * time.Millisecond},
	BlipB: {first: 1320, second: 660, note: 28 * time.Millisecond, gap: 6 * time.Millisecond},
}

// Player renders effects on the shared output device. A Player with no
// output plays nothing.
type Player struct {
	out     *engine.Output
	enabled bool
	level   float64
}

// New returns a Player. out may be nil when no audio device is available.
func New(out *engine.Output, enabled bool) *Player {
	return &Player{out: out, enabled: enabled, level: 0.35}
}

// SetEnabled turns effect playback on or off.
func (p *Player) SetEnabled(on bool) { p.enabled = on }

// Enabled reports whether effects are audible.
func (p *Player) Enabled() bool { return p != nil && p.enabled && p.out != nil }

// Play starts e and returns immediately.
func (p *Player) Play(e Effect) {
	if !p.Enabled() {
		return
	}
	slog.Debug("sfx", "effect", e)
	p.out.PlayStreamer(Streamer(e, engine.DeviceRate), p.level)
}

// Streamer synthesizes e at rate.
func Streamer(e Effect, rate beep.SampleRate) beep.Streamer {
	b := blips[e]
	return &effects.Gain{
		Streamer: beep.Seq(
			newTone(rate, b.first, rate.N(b.note)),
			beep.Silence(rate.N(b.gap)),
			newTone(rate, b.second, rate.N(b.note)),
		),
		Gain: -0.65,
	}
}

// tone is a sine burst with a linear attack and release.
type tone struct {
	rate  beep.SampleRate
	freq  float64
	total int
	pos   int
}

func newTone(rate beep.SampleRate, freq float64, samples int) *tone {
	return &tone{rate: rate, freq: freq, total: samples}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	fade := max(t.total/8, 8)
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		env := 1.0
		switch {
		case t.pos < fade:
			env = float64(t.pos) / float64(fade)
		case t.pos > t.total-fade:
			env = float64(t.total-t.pos) / float64(fade)
		}
		v := math.Sin(2*math.Pi*t.freq*float64(t.pos)/float64(t.rate)) * env
		samples[i] = [2]float64{v, v}
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
