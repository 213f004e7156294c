package motion

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/lixenwraith/echoji/field"
)

// GatherDuration is how long an anchor takes to travel to a new projected position
const GatherDuration = 1.0

// Anchor eases a rendered resting point toward the store's projection
// Alignment flips the projection instantly; the anchor makes the gather visible
type Anchor struct {
	cur    field.Point
	target field.Point
	tx, ty *gween.Tween
}

// NewAnchor starts settled at p
func NewAnchor(p field.Point) *Anchor {
	return &Anchor{cur: p, target: p}
}

// Follow retargets the anchor when the projection moved
func (a *Anchor) Follow(p field.Point) {
	if p == a.target {
		return
	}
	a.target = p
	a.tx = gween.New(float32(a.cur.X), float32(p.X), GatherDuration, ease.InOutSine)
	a.ty = gween.New(float32(a.cur.Y), float32(p.Y), GatherDuration, ease.InOutSine)
}

// Update advances by dt seconds and returns the current point
func (a *Anchor) Update(dt float64) field.Point {
	if a.tx == nil {
		return a.cur
	}
	x, doneX := a.tx.Update(float32(dt))
	y, doneY := a.ty.Update(float32(dt))
	a.cur = field.Point{X: float64(x), Y: float64(y)}
	if doneX && doneY {
		a.cur = a.target
		a.tx, a.ty = nil, nil
	}
	return a.cur
}

// Settled reports whether the anchor rests on its target
func (a *Anchor) Settled() bool {
	return a.tx == nil
}

// Current returns the last computed point
func (a *Anchor) Current() field.Point {
	return a.cur
}
