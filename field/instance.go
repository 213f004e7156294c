package field

import (
	"time"

	"github.com/lixenwraith/echoji/glyph"
)

// Point is a normalized viewport coordinate, 0-100 on both axes
type Point struct {
	X, Y float64
}

// Center is the focal point released glyphs appear at
var Center = Point{X: 50, Y: 50}

// Origin records how an instance entered the field
type Origin uint8

const (
	OriginSeeded Origin = iota
	OriginReleased
)

func (o Origin) String() string {
	if o == OriginReleased {
		return "released"
	}
	return "seeded"
}

// Instance is one glyph living in the field
type Instance struct {
	ID    string
	Shape glyph.Shape

	// Resting position, never rewritten by alignment
	X, Y float64

	Scale    float64
	Opacity  float64
	Rotation float64 // degrees

	// DriftDuration is one drift cycle in seconds
	DriftDuration float64

	Layer       Layer
	SpeedFactor float64

	Origin    Origin
	CreatedAt time.Time

	// Seed feeds the renderer's per-instance random source (drift offsets, pulse phases)
	Seed int64
}

// Position returns the stored resting position
func (i Instance) Position() Point {
	return Point{X: i.X, Y: i.Y}
}

// DriftPeriod returns DriftDuration as a time.Duration
func (i Instance) DriftPeriod() time.Duration {
	return time.Duration(i.DriftDuration * float64(time.Second))
}
