package field

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/echoji/glyph"
)

func newTestField(t *testing.T, mutate func(*Config)) (*Field, *ManualClock) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 1234
	if mutate != nil {
		mutate(&cfg)
	}
	clock := NewManualClock(epoch)
	logger, _ := test.NewNullLogger()
	f := New(cfg, WithClock(clock), WithLogger(logger))
	return f, clock
}

func TestField_StartSeedsPopulation(t *testing.T) {
	f, _ := newTestField(t, nil)
	assert.Zero(t, f.Snapshot().Len(), "nothing before mount")

	f.Start()
	defer f.Stop()

	snap := f.Snapshot()
	require.Equal(t, 30, snap.Len())
	assert.Equal(t, [LayerCount]int{15, 10, 5}, snap.CountByLayer())
	assert.False(t, snap.Alignment.Active)

	f.Start()
	assert.Equal(t, 30, f.Snapshot().Len(), "second start is a no-op")
}

func TestField_ReleaseNotifiesListeners(t *testing.T) {
	f, _ := newTestField(t, nil)
	f.Start()
	defer f.Stop()

	var got []Instance
	f.OnRelease(func(in Instance) { got = append(got, in) })

	shape := glyph.At(7)
	f.OnGlyphReleased(shape)

	require.Len(t, got, 1)
	assert.True(t, got[0].Shape.Equal(shape))
	last, _ := f.Snapshot().Last()
	assert.Equal(t, got[0].ID, last.ID)
	assert.Equal(t, 31, f.Snapshot().Len())
}

func TestField_AlignmentScenario(t *testing.T) {
	f, clock := newTestField(t, func(c *Config) { c.Scheduler.Probability = 0 })
	f.Start()
	defer f.Stop()

	inst := f.Snapshot().Instances[3]
	require.True(t, f.Align(Point{X: 40, Y: 60}))

	snap := f.Snapshot()
	assert.Equal(t, Point{X: 40, Y: 60}, snap.Project(inst))

	clock.Advance(3 * time.Second)
	snap = f.Snapshot()
	assert.Equal(t, inst.Position(), snap.Project(snap.Instances[3]))
}

func TestField_StopCancelsEverything(t *testing.T) {
	f, clock := newTestField(t, func(c *Config) {
		c.Counts = [LayerCount]int{20, 10, 5}
		c.Scheduler.Probability = 1
	})
	f.Start()

	f.OnGlyphReleased(glyph.At(0))
	clock.Advance(15 * time.Second) // eviction fires, alignment opens
	f.OnGlyphReleased(glyph.At(1))
	require.Positive(t, clock.Pending())

	f.Stop()
	assert.Zero(t, clock.Pending())

	n := f.Snapshot().Len()
	called := false
	f.OnRelease(func(Instance) { called = true })
	f.OnGlyphReleased(glyph.At(2))
	clock.Advance(time.Minute)

	assert.Equal(t, n, f.Snapshot().Len())
	assert.False(t, called)
	assert.False(t, f.Snapshot().Alignment.Active)
	assert.False(t, f.Align(Point{X: 30, Y: 30}))
}

func TestField_ReseedReplacesPopulation(t *testing.T) {
	f, _ := newTestField(t, nil)
	f.Start()
	defer f.Stop()

	before := f.Snapshot()
	f.Reseed()
	after := f.Snapshot()

	require.Equal(t, 30, after.Len())
	assert.Equal(t, before.CountByLayer(), after.CountByLayer())
	for i := range before.Instances {
		assert.NotEqual(t, before.Instances[i].ID, after.Instances[i].ID)
	}
}

func TestField_ReseedCancelsPendingEvictions(t *testing.T) {
	f, clock := newTestField(t, nil)
	f.Start()
	defer f.Stop()

	for i := 0; i < 8; i++ {
		f.OnGlyphReleased(glyph.At(i))
	}
	require.Equal(t, 38, f.Snapshot().Len())
	require.Equal(t, 3, f.Store().PendingEvictions())

	f.Reseed()
	require.Equal(t, 30, f.Snapshot().Len())
	assert.Zero(t, f.Store().PendingEvictions())

	clock.Advance(3 * time.Second)
	assert.Equal(t, 30, f.Snapshot().Len(), "fresh population keeps its seed count")
	assert.Zero(t, f.Store().Evicted())
}

func TestField_SeedReplay(t *testing.T) {
	a, _ := newTestField(t, nil)
	b, _ := newTestField(t, nil)
	a.Start()
	b.Start()
	defer a.Stop()
	defer b.Stop()

	sa, sb := a.Snapshot(), b.Snapshot()
	require.Equal(t, sa.Len(), sb.Len())
	for i := range sa.Instances {
		assert.Equal(t, sa.Instances[i].ID, sb.Instances[i].ID)
		assert.Equal(t, sa.Instances[i].Position(), sb.Instances[i].Position())
	}
}
