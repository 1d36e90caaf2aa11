// Package audio plays the game's sound cues through the system speaker.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// oscillator generates a sine wave of fixed length.
type oscillator struct {
	freq     float64
	phase    float64 // In cycles, kept in [0, 1)
	duration int
	position int
	rate     beep.SampleRate
}

func newOscillator(freq float64, duration time.Duration, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope shapes a held note: a linear attack to full level, a linear
// decay to the sustain level, a hold until the note is released, then a
// linear release to silence.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	decay    int
	hold     int // Samples before release starts
	release  int
	sustain  float64
}

func newEnvelope(s beep.Streamer, held time.Duration, sh Shape, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(sh.Attack),
		decay:    rate.N(sh.Decay),
		hold:     rate.N(held),
		release:  rate.N(sh.Release),
		sustain:  sh.Sustain,
	}
}

// heldLevel returns the gain at pos while the note is held.
func (e *envelope) heldLevel(pos int) float64 {
	switch {
	case pos < e.attack:
		return float64(pos) / float64(e.attack)
	case pos < e.attack+e.decay:
		return 1 - (1-e.sustain)*float64(pos-e.attack)/float64(e.decay)
	default:
		return e.sustain
	}
}

// level returns the gain at sample position pos. Release starts from
// whatever level the note had reached.
func (e *envelope) level(pos int) float64 {
	switch {
	case pos < e.hold:
		return e.heldLevel(pos)
	case e.release > 0 && pos < e.hold+e.release:
		return e.heldLevel(e.hold) * float64(e.hold+e.release-pos) / float64(e.release)
	default:
		return 0
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	total := e.hold + e.release
	if e.position >= total {
		return 0, false
	}
	if rem := total - e.position; len(samples) > rem {
		samples = samples[:rem]
	}

	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := e.level(e.position)
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newTone builds an enveloped sine tone lasting held plus the release time,
// with gain in beep's base-2 volume units.
func newTone(freq float64, held time.Duration, sh Shape, rate beep.SampleRate) beep.Streamer {
	osc := newOscillator(freq, held+sh.Release, rate)
	shaped := newEnvelope(osc, held, sh, rate)
	return &effects.Volume{Streamer: shaped, Base: 2, Volume: sh.Volume}
}

// Shape holds the envelope and gain applied to every cue.
type Shape struct {
	Attack  time.Duration
	Decay   time.Duration
	Sustain float64
	Release time.Duration
	Volume  float64
}
