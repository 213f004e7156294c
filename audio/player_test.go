package audio

import (
	"errors"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/echoji/field"
	"github.com/lixenwraith/echoji/glyph"
)

type fakeOutput struct {
	initErr error
	inits   int
	played  []beep.Streamer
	locks   int
}

func (f *fakeOutput) Init(beep.SampleRate, int) error {
	f.inits++
	return f.initErr
}
func (f *fakeOutput) Play(s ...beep.Streamer) { f.played = append(f.played, s...) }
func (f *fakeOutput) Lock()                   { f.locks++ }
func (f *fakeOutput) Unlock()                 {}

func newTestPlayer(cfg Config, out Output) *Player {
	logger, _ := test.NewNullLogger()
	return NewPlayer(cfg, out, logrus.NewEntry(logger))
}

func TestPlayer_InitializeOnce(t *testing.T) {
	out := &fakeOutput{}
	p := newTestPlayer(DefaultConfig(), out)
	require.NoError(t, p.Initialize())
	require.NoError(t, p.Initialize())
	assert.Equal(t, 1, out.inits)
	require.Len(t, out.played, 1, "mixer is played once")
}

func TestPlayer_InitError(t *testing.T) {
	out := &fakeOutput{initErr: errors.New("no device")}
	p := newTestPlayer(DefaultConfig(), out)
	err := p.Initialize()
	require.Error(t, err)
	assert.ErrorIs(t, err, out.initErr)

	p.PlayChime(0)
	assert.Zero(t, p.Played(), "uninitialized player stays silent")
}

func TestPlayer_Disabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	out := &fakeOutput{}
	p := newTestPlayer(cfg, out)
	require.NoError(t, p.Initialize())
	p.PlayChime(1)
	assert.Zero(t, out.inits)
	assert.Zero(t, p.Played())
}

func TestPlayer_ChimeReachesMixer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleRate = 8000
	out := &fakeOutput{}
	p := newTestPlayer(cfg, out)
	require.NoError(t, p.Initialize())

	p.PlayChime(2)
	assert.Equal(t, 1, p.Played())
	assert.Equal(t, 1, out.locks)

	mixer := out.played[0]
	buf := make([][2]float64, beep.SampleRate(cfg.SampleRate).N(50*time.Millisecond))
	n, ok := mixer.Stream(buf)
	require.True(t, ok)
	require.Equal(t, len(buf), n)
	var peak float64
	for _, s := range buf {
		peak = max(peak, s[0], -s[0])
	}
	assert.Positive(t, peak)

	p.Cleanup()
	p.PlayChime(2)
	assert.Equal(t, 1, p.Played())
}

func TestPlayer_FieldListener(t *testing.T) {
	clock := field.NewManualClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	logger, _ := test.NewNullLogger()
	fl := field.New(field.DefaultConfig(), field.WithClock(clock), field.WithLogger(logger))
	fl.Start()
	defer fl.Stop()

	p := newTestPlayer(DefaultConfig(), &fakeOutput{})
	require.NoError(t, p.Initialize())
	fl.OnRelease(p.OnRelease)

	fl.OnGlyphReleased(glyph.At(4))
	fl.OnGlyphReleased(glyph.At(5))
	assert.Equal(t, 2, p.Played())
}
