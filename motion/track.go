package motion

import (
	"fmt"
	"math"

	"github.com/tanema/gween/ease"
)

// Ease selects the interpolation curve applied within each keyframe segment
type Ease uint8

const (
	EaseLinear Ease = iota
	EaseOut
	EaseInOut
)

var easeNames = [...]string{"linear", "easeOut", "easeInOut"}

func (e Ease) String() string {
	if int(e) < len(easeNames) {
		return easeNames[e]
	}
	return fmt.Sprintf("ease(%d)", uint8(e))
}

// MarshalYAML writes the ease by name
func (e Ease) MarshalYAML() (any, error) {
	return e.String(), nil
}

func (e Ease) fn() ease.TweenFunc {
	switch e {
	case EaseOut:
		return ease.OutQuad
	case EaseInOut:
		return ease.InOutSine
	}
	return ease.Linear
}

// Apply maps linear progress p in [0,1] through the curve
func (e Ease) Apply(p float64) float64 {
	return float64(e.fn()(float32(p), 0, 1, 1))
}

// Repeat controls what happens after one pass through the keys
type Repeat uint8

const (
	// RepeatNone holds the final key
	RepeatNone Repeat = iota
	// RepeatLoop restarts from the first key
	RepeatLoop
	// RepeatMirror swaps first and last key on every other pass
	RepeatMirror
	// RepeatReverse plays every other pass backwards in time
	RepeatReverse
)

var repeatNames = [...]string{"none", "loop", "mirror", "reverse"}

func (r Repeat) String() string {
	if int(r) < len(repeatNames) {
		return repeatNames[r]
	}
	return fmt.Sprintf("repeat(%d)", uint8(r))
}

// MarshalYAML writes the repeat mode by name
func (r Repeat) MarshalYAML() (any, error) {
	return r.String(), nil
}

// Track is a declarative keyframe animation of one scalar
// Keys are evenly spaced across Duration seconds; sampling never mutates the track
type Track struct {
	Keys     []float64 `yaml:"keys,flow"`
	Duration float64   `yaml:"duration"`
	Delay    float64   `yaml:"delay,omitempty"`
	Ease     Ease      `yaml:"ease"`
	Repeat   Repeat    `yaml:"repeat"`
}

// Constant is a track that always yields v
func Constant(v float64) Track {
	return Track{Keys: []float64{v}}
}

// At samples the track sec seconds after it was mounted
func (t Track) At(sec float64) float64 {
	switch len(t.Keys) {
	case 0:
		return 0
	case 1:
		return t.Keys[0]
	}

	elapsed := sec - t.Delay
	if elapsed <= 0 {
		return t.Keys[0]
	}
	if t.Duration <= 0 {
		return t.Keys[len(t.Keys)-1]
	}

	cycles := elapsed / t.Duration
	if t.Repeat == RepeatNone && cycles >= 1 {
		return t.Keys[len(t.Keys)-1]
	}

	pass := math.Floor(cycles)
	p := cycles - pass
	odd := int64(pass)%2 == 1

	keys := t.Keys
	switch {
	case odd && t.Repeat == RepeatMirror:
		keys = reversed(t.Keys)
	case odd && t.Repeat == RepeatReverse:
		p = 1 - p
	}
	return t.segment(keys, p)
}

// Done reports whether a non-repeating track has reached its final key
func (t Track) Done(sec float64) bool {
	if t.Repeat != RepeatNone {
		return false
	}
	return sec-t.Delay >= t.Duration
}

func (t Track) segment(keys []float64, p float64) float64 {
	n := len(keys) - 1
	pos := p * float64(n)
	idx := int(pos)
	if idx >= n {
		idx = n - 1
	}
	local := t.Ease.Apply(pos - float64(idx))
	return keys[idx] + (keys[idx+1]-keys[idx])*local
}

func reversed(keys []float64) []float64 {
	out := make([]float64, len(keys))
	for i, k := range keys {
		out[len(keys)-1-i] = k
	}
	return out
}
