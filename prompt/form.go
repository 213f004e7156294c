// Package prompt is the terminal stand-in for the confession form: it collects a thought,
// releases a random catalog glyph into the field and acknowledges briefly
package prompt

import (
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/echoji/field"
	"github.com/lixenwraith/echoji/glyph"
)

const (
	// AckDuration is how long the acknowledgment replaces the input
	AckDuration = 2500 * time.Millisecond
	// MaxLength caps the buffered thought in runes
	MaxLength = 280

	Placeholder = "Let go of a thought..."
	AckMessage  = "It is transformed."
)

// State is a render-side copy of the form
type State struct {
	Text  string
	Acked bool
	// AckAge is time since the acknowledgment appeared
	AckAge time.Duration
}

// Form buffers typed input and hands glyphs to a Releaser on submit
// The text itself is discarded on release
type Form struct {
	mu       sync.Mutex
	text     []rune
	acked    bool
	ackedAt  time.Time
	ackTimer field.Timer
	closed   bool

	releaser field.Releaser
	clock    field.Clock
	rng      *rand.Rand
	log      *logrus.Entry
}

// New creates a form; seed 0 draws from the clock
func New(releaser field.Releaser, clock field.Clock, seed int64, log *logrus.Entry) *Form {
	if clock == nil {
		clock = field.RealClock{}
	}
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Form{
		releaser: releaser,
		clock:    clock,
		rng:      rand.New(rand.NewSource(seed)),
		log:      log.WithField("component", "prompt"),
	}
}

// Insert appends a printable rune; ignored while acknowledging
func (f *Form) Insert(r rune) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.acked || f.closed || len(f.text) >= MaxLength || r < ' ' || r == utf8.RuneError {
		return
	}
	f.text = append(f.text, r)
}

// Backspace removes the last rune
func (f *Form) Backspace() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.acked || len(f.text) == 0 {
		return
	}
	f.text = f.text[:len(f.text)-1]
}

// Reset clears the buffered text
func (f *Form) Reset() {
	f.mu.Lock()
	f.text = f.text[:0]
	f.mu.Unlock()
}

// CanSubmit reports whether the trimmed text is non-empty
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.acked && strings.TrimSpace(string(f.text)) != ""
}

// Submit releases a random glyph when the trimmed text is non-empty
// Returns the released shape and false when nothing was released
func (f *Form) Submit() (glyph.Shape, bool) {
	f.mu.Lock()
	if f.acked || f.closed || strings.TrimSpace(string(f.text)) == "" {
		f.mu.Unlock()
		return glyph.Shape{}, false
	}
	shape := glyph.PickRandom(f.rng)
	f.text = f.text[:0]
	f.acked = true
	f.ackedAt = f.clock.Now()
	f.ackTimer = f.clock.AfterFunc(AckDuration, f.endAck)
	f.mu.Unlock()

	// Outside the lock, the releaser may notify listeners synchronously
	f.log.WithField("shape", shape.Index()).Debug("thought released")
	if f.releaser != nil {
		f.releaser.OnGlyphReleased(shape)
	}
	return shape, true
}

func (f *Form) endAck() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acked = false
	f.ackTimer = nil
}

// State returns a snapshot for rendering
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := State{Text: string(f.text), Acked: f.acked}
	if f.acked {
		s.AckAge = f.clock.Now().Sub(f.ackedAt)
	}
	return s
}

// Close cancels a pending acknowledgment timer and stops accepting input
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	if f.ackTimer != nil {
		f.ackTimer.Stop()
		f.ackTimer = nil
	}
}
