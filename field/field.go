package field

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/echoji/glyph"
)

// Config assembles the field's tunables
type Config struct {
	// Counts seeds background, middle and foreground
	Counts    [LayerCount]int
	Store     StoreConfig
	Scheduler SchedulerConfig
	// Seed replays a run when non-zero
	Seed int64
}

// DefaultConfig returns the stock 15/10/5 population with default limits and cadence
func DefaultConfig() Config {
	return Config{
		Counts:    [LayerCount]int{15, 10, 5},
		Store:     DefaultStoreConfig(),
		Scheduler: DefaultSchedulerConfig(),
	}
}

// Option customizes a Field
type Option func(*Field)

// WithClock replaces the wall clock, used by tests to drive timers
func WithClock(c Clock) Option {
	return func(f *Field) { f.clock = c }
}

// WithLogger routes field logs through l
func WithLogger(l *logrus.Logger) Option {
	return func(f *Field) { f.log = logrus.NewEntry(l) }
}

// Releaser is the single inbound call the page makes into the field
type Releaser interface {
	OnGlyphReleased(shape glyph.Shape)
}

// Field ties generator, store and scheduler to one mount/unmount lifecycle
type Field struct {
	cfg   Config
	clock Clock
	log   *logrus.Entry

	gen   *Generator
	store *Store
	sched *AlignmentScheduler

	mu        sync.Mutex
	listeners []func(Instance)
	started   bool
	stopped   bool
}

// New builds an unstarted field
func New(cfg Config, opts ...Option) *Field {
	f := &Field{cfg: cfg}
	for _, opt := range opts {
		opt(f)
	}
	if f.clock == nil {
		f.clock = RealClock{}
	}
	if f.log == nil {
		f.log = logrus.NewEntry(logrus.StandardLogger())
	}
	f.log = f.log.WithField("module", "field")

	f.gen = NewGenerator(cfg.Seed, f.clock)
	f.store = NewStore(cfg.Store, f.gen, f.clock, f.log)
	f.sched = NewAlignmentScheduler(cfg.Scheduler, f.gen, f.store, f.clock, f.log)
	return f
}

// Start seeds the population and begins alignment trials
// Calling Start again is a no-op; a stopped field cannot be restarted
func (f *Field) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.started || f.stopped {
		return
	}
	f.started = true

	f.store.Seed(f.gen.GenerateInitial(f.cfg.Counts))
	f.sched.Start()
	f.log.WithField("count", f.store.Len()).Info("glyph field started")
}

// Stop cancels the scheduler and every pending eviction
func (f *Field) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		return
	}
	f.stopped = true

	f.sched.Stop()
	f.store.Close()
	f.log.Info("glyph field stopped")
}

// Reseed replaces the population with a fresh, independently drawn one
func (f *Field) Reseed() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.started || f.stopped {
		return
	}
	f.store.Seed(f.gen.GenerateInitial(f.cfg.Counts))
}

// OnGlyphReleased inserts a submitted shape into the foreground
func (f *Field) OnGlyphReleased(shape glyph.Shape) {
	f.Release(shape)
}

// Release is OnGlyphReleased returning the created instance
func (f *Field) Release(shape glyph.Shape) Instance {
	inst := f.store.Submit(shape)

	f.mu.Lock()
	stopped := f.stopped
	listeners := make([]func(Instance), len(f.listeners))
	copy(listeners, f.listeners)
	f.mu.Unlock()

	if stopped {
		return inst
	}
	for _, fn := range listeners {
		fn(inst)
	}
	return inst
}

// OnRelease registers a listener invoked after every accepted submission
func (f *Field) OnRelease(fn func(Instance)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners = append(f.listeners, fn)
}

// Align forces an alignment window at target
func (f *Field) Align(target Point) bool {
	return f.sched.Trigger(target)
}

// Snapshot returns the current render view
func (f *Field) Snapshot() Snapshot {
	return f.store.Snapshot()
}

// Store exposes the underlying store
func (f *Field) Store() *Store {
	return f.store
}

// Scheduler exposes the alignment scheduler
func (f *Field) Scheduler() *AlignmentScheduler {
	return f.sched
}

// Generator exposes the shared random source
func (f *Field) Generator() *Generator {
	return f.gen
}
