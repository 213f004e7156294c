package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Chime shape
const (
	ChimeDuration = 1200 * time.Millisecond
	chimeAttack   = 15 * time.Millisecond
	// Overtone rings out faster than the fundamental
	chimeFundDecay = 350 * time.Millisecond
	chimeOverDecay = 120 * time.Millisecond
)

// chimeScale is a pentatonic run from A4, one note per catalog shape modulo its length
var chimeScale = [...]float64{440.00, 493.88, 554.37, 659.25, 739.99, 880.00, 987.77, 1108.73}

// Wave selects the tone of a partial
type Wave int

const (
	WaveSine Wave = iota
	WaveTriangle
)

// Partial is one bell component: a tone that ramps in and decays exponentially
type Partial struct {
	Freq   float64
	Wave   Wave
	Gain   float64
	Attack time.Duration
	// Decay is the time constant of the exponential fall, zero holds the level
	Decay time.Duration
}

type partialStreamer struct {
	p       Partial
	rate    beep.SampleRate
	phase   float64
	pos     int
	length  int
	attack  int
	falloff float64 // per-sample gain multiplier
	level   float64
}

// NewPartial streams p for length, then ends
func NewPartial(p Partial, length time.Duration, rate beep.SampleRate) beep.Streamer {
	falloff := 1.0
	if p.Decay > 0 {
		falloff = math.Exp(-1 / (p.Decay.Seconds() * float64(rate)))
	}
	return &partialStreamer{
		p:       p,
		rate:    rate,
		length:  rate.N(length),
		attack:  rate.N(p.Attack),
		falloff: falloff,
		level:   1,
	}
}

func (s *partialStreamer) sample() float64 {
	switch s.p.Wave {
	case WaveTriangle:
		return 4*math.Abs(s.phase-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * s.phase)
	}
}

func (s *partialStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if s.pos >= s.length {
			return i, i > 0
		}
		gain := s.p.Gain * s.level
		if s.pos < s.attack {
			gain *= float64(s.pos) / float64(s.attack)
		}
		v := s.sample() * gain
		samples[i][0], samples[i][1] = v, v

		_, s.phase = math.Modf(s.phase + s.p.Freq/float64(s.rate))
		s.level *= s.falloff
		s.pos++
	}
	return len(samples), true
}

func (s *partialStreamer) Err() error { return nil }

// newVolume wraps s with a linear gain; math.Log2(0) is -Inf so zero gain is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// ChimeFrequency maps a shape index to its note, negative indices use the root
func ChimeFrequency(shape int) float64 {
	if shape < 0 {
		return chimeScale[0]
	}
	return chimeScale[shape%len(chimeScale)]
}

// CreateReleaseChime generates a soft bell at the shape's note
func CreateReleaseChime(cfg Config, shape int) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	freq := ChimeFrequency(shape)

	mixed := beep.Mix(
		NewPartial(Partial{Freq: freq, Wave: WaveSine, Gain: 0.75, Attack: chimeAttack, Decay: chimeFundDecay}, ChimeDuration, rate),
		NewPartial(Partial{Freq: freq * 2, Wave: WaveTriangle, Gain: 0.2, Attack: chimeAttack, Decay: chimeOverDecay}, ChimeDuration, rate),
	)
	return newVolume(mixed, cfg.clamped())
}
