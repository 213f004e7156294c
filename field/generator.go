package field

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/lixenwraith/echoji/glyph"
)

// Parameters of released glyphs; user content always lands in the foreground
const (
	releasedScale    = 0.8
	releasedOpacity  = 0.7
	releasedDriftMin = 25.0
	releasedDriftMax = 55.0

	seededDriftMin = 30.0
	seededDriftMax = 70.0

	// Alignment targets stay inside the inner 80% of the viewport
	targetMin = 10.0
	targetMax = 90.0
)

// Generator is the single random source behind every instance and alignment draw
// Seeding it makes a whole run replayable
type Generator struct {
	mu    sync.Mutex
	rng   *rand.Rand
	clock Clock
	seq   uint64
}

// NewGenerator creates a generator; seed 0 draws a seed from the clock
func NewGenerator(seed int64, clock Clock) *Generator {
	if clock == nil {
		clock = RealClock{}
	}
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}
	return &Generator{
		rng:   rand.New(rand.NewSource(seed)),
		clock: clock,
	}
}

// GenerateLayer draws count instances with the layer's parameter ranges
func (g *Generator) GenerateLayer(count int, layer Layer) []Instance {
	if count <= 0 {
		return nil
	}
	p := layer.Params()
	now := g.clock.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Instance, count)
	for i := range out {
		g.seq++
		out[i] = Instance{
			ID:            fmt.Sprintf("initial-%d-%d-%s", layer, i, g.disambiguator()),
			Shape:         glyph.PickRandom(g.rng),
			X:             g.rng.Float64() * 100,
			Y:             g.rng.Float64() * 100,
			Scale:         g.between(p.ScaleMin, p.ScaleMax),
			Opacity:       g.between(p.OpacityMin, p.OpacityMax),
			DriftDuration: g.between(seededDriftMin, seededDriftMax),
			Rotation:      g.rng.Float64() * 360,
			Layer:         layer,
			SpeedFactor:   p.SpeedFactor,
			Origin:        OriginSeeded,
			CreatedAt:     now,
			Seed:          g.rng.Int63(),
		}
	}
	return out
}

// GenerateInitial seeds all layers back to front with the given per-layer counts
func (g *Generator) GenerateInitial(counts [LayerCount]int) []Instance {
	total := 0
	for _, c := range counts {
		total += c
	}
	out := make([]Instance, 0, total)
	for l := LayerBackground; l <= LayerForeground; l++ {
		out = append(out, g.GenerateLayer(counts[l], l)...)
	}
	return out
}

// Released builds the instance for a glyph submitted from outside the field
func (g *Generator) Released(shape glyph.Shape) Instance {
	p := LayerForeground.Params()
	now := g.clock.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	return Instance{
		ID:            fmt.Sprintf("user-%d-%s", now.UnixMilli(), g.disambiguator()),
		Shape:         shape,
		X:             Center.X,
		Y:             Center.Y,
		Scale:         releasedScale,
		Opacity:       releasedOpacity,
		DriftDuration: g.between(releasedDriftMin, releasedDriftMax),
		Rotation:      g.rng.Float64() * 360,
		Layer:         LayerForeground,
		SpeedFactor:   p.SpeedFactor,
		Origin:        OriginReleased,
		CreatedAt:     now,
		Seed:          g.rng.Int63(),
	}
}

// AlignmentTarget draws a focal point inside the inner 80% of the viewport
func (g *Generator) AlignmentTarget() Point {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Point{
		X: g.between(targetMin, targetMax),
		Y: g.between(targetMin, targetMax),
	}
}

// Chance returns true with probability p
func (g *Generator) Chance(p float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64() < p
}

// Shape picks a catalog shape from the shared source
func (g *Generator) Shape() glyph.Shape {
	g.mu.Lock()
	defer g.mu.Unlock()
	return glyph.PickRandom(g.rng)
}

func (g *Generator) between(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// disambiguator derives a short uuid from the seeded source so replays keep ids stable
func (g *Generator) disambiguator() string {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return fmt.Sprintf("%08x", g.seq)
	}
	return id.String()[:8]
}
