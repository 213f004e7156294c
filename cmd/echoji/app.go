package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/echoji/audio"
	"github.com/lixenwraith/echoji/config"
	"github.com/lixenwraith/echoji/core"
	"github.com/lixenwraith/echoji/field"
	"github.com/lixenwraith/echoji/prompt"
	"github.com/lixenwraith/echoji/render"
	"github.com/lixenwraith/echoji/status"
)

// app owns the screen loop; all fields are touched from the main goroutine only
type app struct {
	screen tcell.Screen
	field  *field.Field
	form   *prompt.Form
	orch   *render.Orchestrator
	glyphs *render.FieldRenderer
	input  *render.PromptRenderer
	status *render.StatusRenderer
	player *audio.Player
	log    *logrus.Entry

	metrics      *status.Registry
	statFPS      *status.Gauge
	statReleased *atomic.Int64
	statAligned  *atomic.Int64
	statEvicted  *atomic.Int64
	statChimes   *atomic.Int64

	start   time.Time
	last    time.Time
	fps     fpsMeter
	mouseX  int
	mouseY  int
	mouseIn bool
	buttons tcell.ButtonMask
}

func run(cfg config.Config, log *logrus.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.RegisterScreen(screen)
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	entry := logrus.NewEntry(log)
	clock := field.RealClock{Recover: core.HandleCrash}

	fl := field.New(cfg.FieldConfig(), field.WithClock(clock), field.WithLogger(log))

	player := audio.NewPlayer(cfg.Audio, audio.Speaker, entry)
	if err := player.Initialize(); err != nil {
		entry.WithError(err).Warn("continuing without audio")
		player = nil
	} else {
		fl.OnRelease(player.OnRelease)
		defer player.Cleanup()
	}

	fl.Start()
	defer fl.Stop()

	form := prompt.New(fl, clock, cfg.Seed, entry)
	defer form.Close()

	a := newApp(screen, fl, form, cfg, entry)
	a.player = player
	return a.loop(time.Second / time.Duration(max(1, cfg.Render.FPS)))
}

func newApp(screen tcell.Screen, fl *field.Field, form *prompt.Form, cfg config.Config, log *logrus.Entry) *app {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	a := &app{
		screen: screen,
		field:  fl,
		form:   form,
		orch:   render.NewOrchestrator(screen),
		glyphs: render.NewFieldRenderer(log),
		input:  &render.PromptRenderer{Source: form},
		log:    log,

		metrics: status.NewRegistry(),
	}
	a.statReleased = a.metrics.Counters.Get("released")
	a.statAligned = a.metrics.Counters.Get("aligned")
	a.statEvicted = a.metrics.Counters.Get("evicted")
	a.statChimes = a.metrics.Counters.Get("chimes")
	a.statFPS = a.metrics.Gauges.Get("fps")
	fl.OnRelease(func(field.Instance) { a.statReleased.Add(1) })

	a.glyphs.BoxCells = cfg.Render.BoxCells
	a.status = &render.StatusRenderer{Visible: cfg.Render.Status, Metrics: a.metrics}

	a.orch.Register(render.BackdropRenderer{}, render.PriorityBackdrop)
	a.orch.Register(a.glyphs, render.PriorityField)
	a.orch.Register(a.input, render.PriorityPrompt)
	a.orch.Register(a.status, render.PriorityStatus)
	return a
}

func (a *app) loop(interval time.Duration) error {
	events := make(chan tcell.Event, 256)
	done := make(chan struct{})
	defer close(done)
	core.Go(func() { a.pollEvents(events, done) })

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.start = time.Now()
	a.last = a.start
	a.frame(a.start)

	for {
		select {
		case ev := <-events:
			if !a.handle(ev) {
				a.log.Info("quit")
				return nil
			}
		case now := <-ticker.C:
			a.frame(now)
		}
	}
}

// pollEvents forwards screen events until the screen closes or done is closed
func (a *app) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (a *app) frame(now time.Time) {
	ctx := render.Context{
		Elapsed:   now.Sub(a.start).Seconds(),
		DeltaTime: now.Sub(a.last).Seconds(),
		MouseX:    a.mouseX,
		MouseY:    a.mouseY,
		MouseIn:   a.mouseIn,
		Snapshot:  a.field.Snapshot(),
	}
	a.last = now
	a.fps.Tick(now)
	a.publish()
	a.orch.RenderFrame(ctx)
}

// publish copies field and audio counters into the status registry
func (a *app) publish() {
	_, triggered := a.field.Scheduler().Stats()
	a.statAligned.Store(int64(triggered))
	a.statEvicted.Store(int64(a.field.Store().Evicted()))
	if a.player != nil {
		a.statChimes.Store(int64(a.player.Played()))
	}
	a.statFPS.Set(a.fps.Rate())
}

// handle applies one terminal event, false means quit
func (a *app) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventFocus:
		if !ev.Focused {
			a.mouseIn = false
		}
	case *tcell.EventResize:
		w, h := ev.Size()
		a.orch.Resize(w, h)
		a.screen.Sync()
	}
	return true
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		a.submit()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.form.Backspace()
	case tcell.KeyCtrlU:
		a.form.Reset()
	case tcell.KeyCtrlA:
		target := a.field.Generator().AlignmentTarget()
		if a.field.Align(target) {
			a.log.WithField("target", target).Debug("manual alignment")
		}
	case tcell.KeyCtrlR:
		a.field.Reseed()
		a.log.Debug("field reseeded")
	case tcell.KeyCtrlS:
		a.status.Visible = !a.status.Visible
	case tcell.KeyRune:
		a.form.Insert(ev.Rune())
	}
	return true
}

func (a *app) handleMouse(ev *tcell.EventMouse) {
	a.mouseX, a.mouseY = ev.Position()
	a.mouseIn = true

	pressed := ev.Buttons()&tcell.Button1 != 0 && a.buttons&tcell.Button1 == 0
	a.buttons = ev.Buttons()
	if !pressed {
		return
	}
	w, h := a.orch.Buffer().Size()
	if a.input.ButtonAt(w, h, a.mouseX, a.mouseY) {
		a.submit()
	}
}

func (a *app) submit() {
	if shape, ok := a.form.Submit(); ok {
		a.log.WithField("shape", shape.Index()).Debug("submitted")
	}
}

// fpsMeter counts frames over one second windows
type fpsMeter struct {
	windowStart time.Time
	frames      int
	rate        float64
}

// Tick records a frame at now
func (m *fpsMeter) Tick(now time.Time) {
	if m.windowStart.IsZero() {
		m.windowStart = now
	}
	m.frames++
	if d := now.Sub(m.windowStart); d >= time.Second {
		m.rate = float64(m.frames) / d.Seconds()
		m.frames = 0
		m.windowStart = now
	}
}

// Rate returns the last completed window's frames per second
func (m *fpsMeter) Rate() float64 {
	return m.rate
}
