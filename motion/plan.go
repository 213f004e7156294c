package motion

import (
	"math/rand"

	"github.com/lixenwraith/echoji/field"
)

// Animation constants in seconds, viewport units and degrees
const (
	EnterDuration = 2.0
	EnterTilt     = -20.0

	// Peak-to-peak drift range at speed factor 1
	DriftRangeX        = 10.0
	DriftRangeY        = 15.0
	DriftRangeRotation = 40.0

	GlowPeriod   = 4.0
	GlowPeak     = 5.0
	GlowDelayMax = 2.0

	AuraPeriod   = 8.0
	AuraPeak     = 0.3
	AuraDelayMax = 3.0

	HoverScale = 1.2
	HoverGlow  = 15.0
)

// Plan is the full keyframe description of one instance, built once at mount
type Plan struct {
	ID    string `yaml:"id"`
	Layer int    `yaml:"layer"`

	EnterScale    Track `yaml:"enter_scale"`
	EnterOpacity  Track `yaml:"enter_opacity"`
	EnterRotation Track `yaml:"enter_rotation"`

	// Drift tracks are offsets around the anchor so alignment can move the anchor freely
	DriftX        Track `yaml:"drift_x"`
	DriftY        Track `yaml:"drift_y"`
	DriftRotation Track `yaml:"drift_rotation"`

	Glow Track `yaml:"glow"`
	Aura Track `yaml:"aura"`
}

// Frame is a sampled plan
type Frame struct {
	OffsetX, OffsetY float64
	Scale            float64
	Opacity          float64
	Rotation         float64
	// Glow is the drop-shadow radius in design-box pixels
	Glow float64
	// Aura is the halo opacity
	Aura float64
}

// NewPlan derives the instance's tracks from its own seed, so replays draw the same motion
func NewPlan(inst field.Instance) Plan {
	r := rand.New(rand.NewSource(inst.Seed))
	sf := inst.SpeedFactor

	dx := (r.Float64() - 0.5) * DriftRangeX * sf
	dy := (r.Float64() - 0.5) * DriftRangeY * sf
	dr := (r.Float64() - 0.5) * DriftRangeRotation * sf
	glowDelay := r.Float64() * GlowDelayMax
	auraDelay := r.Float64() * AuraDelayMax

	drift := func(peak float64) Track {
		return Track{
			Keys:     []float64{0, peak, 0},
			Duration: inst.DriftDuration,
			Ease:     EaseInOut,
			Repeat:   RepeatMirror,
		}
	}
	enter := func(from, to float64) Track {
		return Track{
			Keys:     []float64{from, to},
			Duration: EnterDuration,
			Ease:     EaseOut,
		}
	}

	return Plan{
		ID:            inst.ID,
		Layer:         int(inst.Layer),
		EnterScale:    enter(0, inst.Scale),
		EnterOpacity:  enter(0, inst.Opacity),
		EnterRotation: enter(inst.Rotation+EnterTilt, inst.Rotation),
		DriftX:        drift(dx),
		DriftY:        drift(dy),
		DriftRotation: drift(dr),
		Glow: Track{
			Keys:     []float64{0, GlowPeak, 0},
			Duration: GlowPeriod,
			Delay:    glowDelay,
			Ease:     EaseInOut,
			Repeat:   RepeatReverse,
		},
		Aura: Track{
			Keys:     []float64{0, AuraPeak, 0},
			Duration: AuraPeriod,
			Delay:    auraDelay,
			Ease:     EaseInOut,
			Repeat:   RepeatLoop,
		},
	}
}

// Sample evaluates every track sec seconds after mount
func (p Plan) Sample(sec float64) Frame {
	return Frame{
		OffsetX:  p.DriftX.At(sec),
		OffsetY:  p.DriftY.At(sec),
		Scale:    p.EnterScale.At(sec),
		Opacity:  p.EnterOpacity.At(sec),
		Rotation: p.EnterRotation.At(sec) + p.DriftRotation.At(sec),
		Glow:     p.Glow.At(sec),
		Aura:     p.Aura.At(sec),
	}
}

// Entered reports whether the one-time entrance has finished
func (p Plan) Entered(sec float64) bool {
	return p.EnterScale.Done(sec)
}

// Hovered applies the pointer boost
func (f Frame) Hovered() Frame {
	f.Scale *= HoverScale
	f.Glow = HoverGlow
	return f
}
