// Package audio plays a short chime whenever a thought is released into the field
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/echoji/field"
)

// Output is the device the mixer is played on
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
}

type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, n int) error { return speaker.Init(rate, n) }
func (speakerOutput) Play(s ...beep.Streamer)                { speaker.Play(s...) }
func (speakerOutput) Lock()                                  { speaker.Lock() }
func (speakerOutput) Unlock()                                { speaker.Unlock() }

// Speaker is the system audio device
var Speaker Output = speakerOutput{}

// Player owns the mixer feeding the output
type Player struct {
	mu          sync.Mutex
	cfg         Config
	out         Output
	mixer       *beep.Mixer
	initialized bool
	played      int
	log         *logrus.Entry
}

// NewPlayer creates a player; nil out selects the speaker
func NewPlayer(cfg Config, out Output, log *logrus.Entry) *Player {
	if out == nil {
		out = Speaker
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Player{
		cfg:   cfg,
		out:   out,
		mixer: &beep.Mixer{},
		log:   log.WithField("component", "audio"),
	}
}

// Initialize sets up the output and starts the mixer; disabled players stay silent
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}
	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := p.out.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}
	p.out.Play(p.mixer)
	p.initialized = true
	p.log.WithField("rate", p.cfg.SampleRate).Debug("audio ready")
	return nil
}

// PlayChime queues a chime for the given catalog index
func (p *Player) PlayChime(shape int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	chime := CreateReleaseChime(p.cfg, shape)
	p.out.Lock()
	p.mixer.Add(chime)
	p.out.Unlock()
	p.played++
}

// OnRelease is a field release listener
func (p *Player) OnRelease(inst field.Instance) {
	p.PlayChime(inst.Shape.Index())
}

// Played returns the number of chimes queued since start
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// Cleanup clears the mixer; the speaker itself has no close
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.out.Lock()
	p.mixer.Clear()
	p.out.Unlock()
	p.initialized = false
}
