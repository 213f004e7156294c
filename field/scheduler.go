package field

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// SchedulerConfig controls the alignment trials
type SchedulerConfig struct {
	Period      time.Duration
	Duration    time.Duration
	Probability float64
	// Guard skips trials while an alignment window is still open
	Guard bool
}

// DefaultSchedulerConfig returns the stock cadence: a 10% trial every 15s, held for 3s
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Period:      15 * time.Second,
		Duration:    3 * time.Second,
		Probability: 0.10,
		Guard:       true,
	}
}

// AlignmentWriter is the narrow store surface the scheduler mutates
type AlignmentWriter interface {
	SetAlignment(active bool, target Point)
}

// AlignmentScheduler runs periodic trials that briefly gather every glyph at one point
type AlignmentScheduler struct {
	mu sync.Mutex

	cfg   SchedulerConfig
	clock Clock
	gen   *Generator
	out   AlignmentWriter
	log   *logrus.Entry

	ticker  Timer
	release Timer
	running bool
	halted  bool
	open    bool

	trials    uint64
	triggered uint64
}

// NewAlignmentScheduler wires a scheduler to its writer
func NewAlignmentScheduler(cfg SchedulerConfig, gen *Generator, out AlignmentWriter, clock Clock, log *logrus.Entry) *AlignmentScheduler {
	if clock == nil {
		clock = RealClock{}
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &AlignmentScheduler{
		cfg:   cfg,
		clock: clock,
		gen:   gen,
		out:   out,
		log:   log.WithField("component", "alignment"),
	}
}

// Start begins the repeating trial timer
func (s *AlignmentScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running || s.halted {
		return
	}
	s.running = true
	s.armLocked()
}

// Stop cancels the trial timer and any pending release; the scheduler cannot be restarted
// An open window is closed immediately so no glyph stays gathered
func (s *AlignmentScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.halted {
		return
	}
	s.halted = true
	s.running = false
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	if s.release != nil {
		s.release.Stop()
		s.release = nil
	}
	if s.open {
		s.open = false
		s.out.SetAlignment(false, Point{})
	}
}

func (s *AlignmentScheduler) armLocked() {
	s.ticker = s.clock.AfterFunc(s.cfg.Period, s.onTick)
}

func (s *AlignmentScheduler) onTick() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.armLocked()
	s.mu.Unlock()

	s.Tick()
}

// Tick runs a single trial and reports whether it opened an alignment window
func (s *AlignmentScheduler) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.halted {
		return false
	}
	s.trials++
	if !s.gen.Chance(s.cfg.Probability) {
		return false
	}
	if s.open && s.cfg.Guard {
		s.log.Debug("alignment trial skipped, window still open")
		return false
	}
	s.openLocked(s.gen.AlignmentTarget())
	return true
}

// Trigger opens an alignment window at target regardless of probability
func (s *AlignmentScheduler) Trigger(target Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.halted || (s.open && s.cfg.Guard) {
		return false
	}
	s.openLocked(target)
	return true
}

func (s *AlignmentScheduler) openLocked(target Point) {
	s.triggered++
	s.open = true
	s.out.SetAlignment(true, target)
	s.log.WithFields(logrus.Fields{"x": target.X, "y": target.Y}).Debug("alignment opened")

	// Without the guard an overlapping trial replaces the release, matching a fresh window
	if s.release != nil {
		s.release.Stop()
	}
	s.release = s.clock.AfterFunc(s.cfg.Duration, s.onRelease)
}

func (s *AlignmentScheduler) onRelease() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.release = nil
	if !s.open {
		return
	}
	s.open = false
	s.out.SetAlignment(false, Point{})
	s.log.Debug("alignment released")
}

// Active reports whether an alignment window is open
func (s *AlignmentScheduler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Stats returns trial and trigger counts
func (s *AlignmentScheduler) Stats() (trials, triggered uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trials, s.triggered
}
