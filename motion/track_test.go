package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrack_Linear(t *testing.T) {
	tr := Track{Keys: []float64{0, 10}, Duration: 2}
	assert.InDelta(t, 0, tr.At(0), 1e-9)
	assert.InDelta(t, 5, tr.At(1), 1e-6)
	assert.InDelta(t, 10, tr.At(2), 1e-9)
	assert.InDelta(t, 10, tr.At(50), 1e-9)
	assert.True(t, tr.Done(2))
	assert.False(t, tr.Done(1.9))
}

func TestTrack_DelayHoldsFirstKey(t *testing.T) {
	tr := Track{Keys: []float64{3, 7}, Duration: 1, Delay: 2, Repeat: RepeatLoop}
	assert.Equal(t, 3.0, tr.At(0))
	assert.Equal(t, 3.0, tr.At(2))
	assert.InDelta(t, 5, tr.At(2.5), 1e-6)
}

func TestTrack_ThreeKeysPeakAtMiddle(t *testing.T) {
	tr := Track{Keys: []float64{0, 5, 0}, Duration: 4, Ease: EaseInOut, Repeat: RepeatReverse}
	assert.InDelta(t, 5, tr.At(2), 1e-5)
	assert.InDelta(t, 0, tr.At(4), 1e-5)
	assert.InDelta(t, 5, tr.At(6), 1e-5)
	// reverse pass mirrors the forward one in time
	assert.InDelta(t, tr.At(1), tr.At(7), 1e-5)
}

func TestTrack_Loop(t *testing.T) {
	tr := Track{Keys: []float64{0, 1}, Duration: 1, Repeat: RepeatLoop}
	assert.InDelta(t, tr.At(0.25), tr.At(3.25), 1e-6)
	assert.False(t, tr.Done(100))
}

func TestTrack_MirrorSwapsEndpoints(t *testing.T) {
	tr := Track{Keys: []float64{0, 4}, Duration: 1, Repeat: RepeatMirror}
	assert.InDelta(t, 1, tr.At(0.25), 1e-6)
	assert.InDelta(t, 3, tr.At(1.25), 1e-6)
}

func TestTrack_EaseOutLeadsLinear(t *testing.T) {
	lin := Track{Keys: []float64{0, 1}, Duration: 1}
	out := Track{Keys: []float64{0, 1}, Duration: 1, Ease: EaseOut}
	assert.Greater(t, out.At(0.3), lin.At(0.3))
	assert.InDelta(t, 1, out.At(1), 1e-9)
}

func TestTrack_Degenerate(t *testing.T) {
	assert.Zero(t, Track{}.At(3))
	assert.Equal(t, 2.5, Constant(2.5).At(99))
	assert.Equal(t, 9.0, Track{Keys: []float64{1, 9}}.At(1))
}

func TestEaseAndRepeatNames(t *testing.T) {
	assert.Equal(t, "easeOut", EaseOut.String())
	assert.Equal(t, "mirror", RepeatMirror.String())
	assert.Equal(t, "ease(9)", Ease(9).String())
}
