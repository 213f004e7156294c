package field

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/echoji/glyph"
)

// StoreConfig bounds the population
type StoreConfig struct {
	// Cap is the soft population limit; exceeding it schedules one head eviction
	Cap int
	// EvictDelay keeps a fresh glyph visible before the oldest one leaves
	EvictDelay time.Duration
}

// DefaultStoreConfig returns the stock limits
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		Cap:        35,
		EvictDelay: 2 * time.Second,
	}
}

// Store owns the live instance collection and the alignment state
// Insertion order is both render order and eviction order
type Store struct {
	mu sync.RWMutex

	cfg   StoreConfig
	clock Clock
	gen   *Generator
	log   *logrus.Entry

	instances []Instance
	ids       map[string]struct{}
	alignment Alignment

	// Pending evictions keyed by a local handle so Close can cancel them
	pending    map[uint64]Timer
	nextHandle uint64

	closed  bool
	evicted uint64
}

// NewStore creates an empty store
func NewStore(cfg StoreConfig, gen *Generator, clock Clock, log *logrus.Entry) *Store {
	if clock == nil {
		clock = RealClock{}
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Store{
		cfg:     cfg,
		clock:   clock,
		gen:     gen,
		log:     log.WithField("component", "store"),
		ids:     make(map[string]struct{}),
		pending: make(map[uint64]Timer),
	}
}

// Seed replaces the collection and cancels evictions owed by the previous one
func (s *Store) Seed(instances []Instance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.cancelEvictionsLocked()

	s.instances = make([]Instance, 0, len(instances))
	s.ids = make(map[string]struct{}, len(instances))
	for _, inst := range instances {
		if _, dup := s.ids[inst.ID]; dup {
			s.log.WithField("id", inst.ID).Warn("duplicate id dropped during seed")
			continue
		}
		s.ids[inst.ID] = struct{}{}
		s.instances = append(s.instances, inst)
	}
	s.log.WithField("count", len(s.instances)).Debug("field seeded")
}

// Submit appends a foreground instance for shape at the focal center
// When the collection then exceeds Cap, the oldest instance is removed after EvictDelay
func (s *Store) Submit(shape glyph.Shape) Instance {
	inst := s.gen.Released(shape)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return inst
	}

	// Time plus disambiguator collisions are astronomically rare but ids must stay unique
	for {
		if _, dup := s.ids[inst.ID]; !dup {
			break
		}
		inst.ID += "-"
	}

	s.ids[inst.ID] = struct{}{}
	s.instances = append(s.instances, inst)

	log := s.log.WithFields(logrus.Fields{"id": inst.ID, "count": len(s.instances)})
	if len(s.instances) > s.cfg.Cap {
		s.scheduleEvictionLocked()
		log.Debug("glyph released, eviction scheduled")
	} else {
		log.Debug("glyph released")
	}
	return inst
}

func (s *Store) scheduleEvictionLocked() {
	s.nextHandle++
	h := s.nextHandle
	s.pending[h] = s.clock.AfterFunc(s.cfg.EvictDelay, func() {
		s.evictOldest(h)
	})
}

func (s *Store) evictOldest(handle uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pending, handle)
	if s.closed || len(s.instances) == 0 {
		return
	}

	head := s.instances[0]
	// Shift rather than reslice so the backing array does not pin evicted shapes
	copy(s.instances, s.instances[1:])
	s.instances[len(s.instances)-1] = Instance{}
	s.instances = s.instances[:len(s.instances)-1]
	delete(s.ids, head.ID)
	s.evicted++

	s.log.WithFields(logrus.Fields{"id": head.ID, "count": len(s.instances)}).Debug("oldest glyph evicted")
}

// SetAlignment overwrites the alignment state; target is ignored when inactive
func (s *Store) SetAlignment(active bool, target Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if active {
		s.alignment = Alignment{Active: true, Target: target}
	} else {
		s.alignment.Active = false
	}
}

// Alignment returns the current alignment state
func (s *Store) Alignment() Alignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alignment
}

// Snapshot copies the collection and alignment state
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Instance, len(s.instances))
	copy(out, s.instances)
	return Snapshot{Instances: out, Alignment: s.alignment}
}

// Len returns the current population
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.instances)
}

// PendingEvictions returns the number of scheduled, not yet fired, evictions
func (s *Store) PendingEvictions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pending)
}

// Evicted returns the total number of evictions performed
func (s *Store) Evicted() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.evicted
}

// Close cancels pending evictions; the store ignores mutations afterwards
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancelEvictionsLocked()
	s.log.Debug("store closed")
}

func (s *Store) cancelEvictionsLocked() {
	for h, t := range s.pending {
		t.Stop()
		delete(s.pending, h)
	}
}
