package field

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/echoji/glyph"
)

func newTestStore(seed int64) (*Store, *ManualClock, *Generator) {
	clock := NewManualClock(epoch)
	gen := NewGenerator(seed, clock)
	logger, _ := test.NewNullLogger()
	return NewStore(DefaultStoreConfig(), gen, clock, logrus.NewEntry(logger)), clock, gen
}

func TestStore_SubmitScenario(t *testing.T) {
	s, _, gen := newTestStore(1)
	s.Seed(gen.GenerateInitial([LayerCount]int{15, 10, 5}))
	require.Equal(t, 30, s.Len())

	pathA := glyph.At(2)
	inst := s.Submit(pathA)

	snap := s.Snapshot()
	require.Equal(t, 31, snap.Len())
	last, ok := snap.Last()
	require.True(t, ok)
	assert.Equal(t, inst.ID, last.ID)
	assert.Equal(t, pathA.Data(), last.Shape.Data())
	assert.Equal(t, LayerForeground, last.Layer)
	assert.Equal(t, 50.0, last.X)
	assert.Equal(t, 50.0, last.Y)
	assert.Zero(t, s.PendingEvictions())
}

func TestStore_DelayedEvictionAboveCap(t *testing.T) {
	s, clock, gen := newTestStore(2)
	seed := gen.GenerateInitial([LayerCount]int{20, 10, 5})
	s.Seed(seed)
	require.Equal(t, 35, s.Len())

	s.Submit(glyph.At(0))
	require.Equal(t, 36, s.Len(), "fresh glyph is visible immediately")
	require.Equal(t, 1, s.PendingEvictions())

	clock.Advance(1999 * time.Millisecond)
	assert.Equal(t, 36, s.Len(), "eviction must not fire before the delay")

	clock.Advance(time.Millisecond)
	assert.Equal(t, 35, s.Len())
	assert.Equal(t, uint64(1), s.Evicted())
	assert.Equal(t, seed[1].ID, s.Snapshot().Instances[0].ID, "oldest instance leaves first")
}

func TestStore_OneEvictionPerTrigger(t *testing.T) {
	s, clock, gen := newTestStore(3)
	s.Seed(gen.GenerateInitial([LayerCount]int{20, 10, 5}))

	s.Submit(glyph.At(1))
	clock.Advance(500 * time.Millisecond)
	s.Submit(glyph.At(2))
	s.Submit(glyph.At(3))
	require.Equal(t, 38, s.Len())
	require.Equal(t, 3, s.PendingEvictions())

	clock.Advance(1500 * time.Millisecond)
	assert.Equal(t, 37, s.Len())

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, 35, s.Len())
	assert.Zero(t, s.PendingEvictions())
}

func TestStore_EvictionDoesNotShrinkBelowTrigger(t *testing.T) {
	s, clock, gen := newTestStore(4)
	s.Seed(gen.GenerateInitial([LayerCount]int{30, 10, 5}))
	require.Equal(t, 45, s.Len())

	s.Submit(glyph.At(0))
	clock.Advance(10 * time.Second)
	// Eviction removes one per trigger, not down to the cap
	assert.Equal(t, 45, s.Len())
}

func TestStore_SeedCancelsPendingEvictions(t *testing.T) {
	s, clock, gen := newTestStore(9)
	s.Seed(gen.GenerateInitial([LayerCount]int{20, 10, 5}))
	s.Submit(glyph.At(0))
	s.Submit(glyph.At(1))
	require.Equal(t, 2, s.PendingEvictions())

	s.Seed(gen.GenerateInitial([LayerCount]int{15, 10, 5}))
	assert.Zero(t, s.PendingEvictions())

	clock.Advance(time.Minute)
	assert.Equal(t, 30, s.Len())
	assert.Zero(t, s.Evicted())

	// Evictions scheduled after the reseed still run
	for i := 0; i < 6; i++ {
		s.Submit(glyph.At(i))
	}
	clock.Advance(2 * time.Second)
	assert.Equal(t, 35, s.Len())
	assert.Equal(t, uint64(1), s.Evicted())
}

func TestStore_AtCapNoEviction(t *testing.T) {
	s, clock, gen := newTestStore(5)
	s.Seed(gen.GenerateInitial([LayerCount]int{19, 10, 5}))

	s.Submit(glyph.At(0))
	require.Equal(t, 35, s.Len())
	assert.Zero(t, s.PendingEvictions())

	clock.Advance(5 * time.Second)
	assert.Equal(t, 35, s.Len())
}

func TestStore_CloseCancelsEvictions(t *testing.T) {
	s, clock, gen := newTestStore(6)
	s.Seed(gen.GenerateInitial([LayerCount]int{20, 10, 5}))
	s.Submit(glyph.At(0))
	s.Submit(glyph.At(1))
	require.Equal(t, 2, clock.Pending())

	s.Close()
	assert.Zero(t, clock.Pending())
	assert.Zero(t, s.PendingEvictions())

	clock.Advance(time.Minute)
	assert.Equal(t, 37, s.Len())

	// Disposed store ignores further mutation
	s.Submit(glyph.At(2))
	s.SetAlignment(true, Point{X: 20, Y: 20})
	s.Seed(nil)
	assert.Equal(t, 37, s.Len())
	assert.False(t, s.Alignment().Active)
}

func TestStore_AlignmentProjection(t *testing.T) {
	s, _, gen := newTestStore(7)
	s.Seed(gen.GenerateInitial([LayerCount]int{15, 10, 5}))
	before := s.Snapshot()

	target := Point{X: 40, Y: 60}
	s.SetAlignment(true, target)
	during := s.Snapshot()
	for i := range during.Instances {
		assert.Equal(t, target, during.Position(i))
		// Stored coordinates are untouched
		assert.Equal(t, before.Instances[i].Position(), during.Instances[i].Position())
	}

	s.SetAlignment(false, Point{})
	after := s.Snapshot()
	for i := range after.Instances {
		assert.Equal(t, before.Instances[i].Position(), after.Position(i))
	}
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s, _, gen := newTestStore(8)
	s.Seed(gen.GenerateInitial([LayerCount]int{2, 0, 0}))

	snap := s.Snapshot()
	snap.Instances[0].X = -500
	assert.NotEqual(t, -500.0, s.Snapshot().Instances[0].X)
}

func TestStore_SeedDropsDuplicateIDs(t *testing.T) {
	s, _, gen := newTestStore(9)
	insts := gen.GenerateInitial([LayerCount]int{3, 0, 0})
	insts = append(insts, insts[0])
	s.Seed(insts)
	assert.Equal(t, 3, s.Len())
}

func TestStore_SubmitIDsUnique(t *testing.T) {
	s, _, _ := newTestStore(10)
	seen := make(map[string]bool)
	// Frozen clock: every submission shares the same millisecond
	for i := 0; i < 200; i++ {
		in := s.Submit(glyph.At(i % glyph.Len()))
		require.False(t, seen[in.ID], "duplicate id %s", in.ID)
		seen[in.ID] = true
	}
}
