package typewriter

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/san-kum/typewrite/internal/config"
	"github.com/san-kum/typewrite/internal/observability"
)

type State int32

const (
	StateInit State = iota
	StateRevealing
	StateRepeating
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateRevealing:
		return "revealing"
	case StateRepeating:
		return "repeating"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Timeline drives one target's reveal.
type Timeline struct {
	index     int
	target    Target
	cfg       config.Config
	clock     Clock
	log       *observability.Logger
	observers observers

	units []string
	state atomic.Int32
	cycle atomic.Int64

	mu            sync.Mutex
	revealed      string
	cursorVisible bool
}

func newTimeline(index int, target Target, cfg config.Config, clock Clock, log *observability.Logger, obs observers) *Timeline {
	return &Timeline{
		index:     index,
		target:    target,
		cfg:       cfg,
		clock:     clock,
		log:       log.With("target", index),
		observers: obs,
	}
}

func (tl *Timeline) Index() int            { return tl.index }
func (tl *Timeline) Config() config.Config { return tl.cfg }
func (tl *Timeline) State() State          { return State(tl.state.Load()) }
func (tl *Timeline) Cycle() int            { return int(tl.cycle.Load()) }
func (tl *Timeline) Units() []string       { return tl.units }

// Revealed returns the prefix currently on display and whether a cursor
// marker is attached.
func (tl *Timeline) Revealed() (string, bool) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.revealed, tl.cursorVisible
}

// init captures the target text, clears it and applies the style side effects.
func (tl *Timeline) init() error {
	if tl.target == nil {
		return tl.fail("init", ErrNilTarget)
	}
	text, err := tl.target.Text()
	if err != nil {
		return tl.fail("read text", err)
	}
	tl.units = Split(text)
	if err := tl.target.SetText(""); err != nil {
		return tl.fail("clear text", err)
	}
	if err := tl.target.SetColor(tl.cfg.Color); err != nil {
		return tl.fail("set color", err)
	}
	if err := tl.target.ResetMargin(); err != nil {
		return tl.fail("reset margin", err)
	}
	tl.observers.start(tl.index, text)
	return nil
}

// run reveals the captured units until the timeline is done, fails or ctx is
// cancelled. A repeating timeline only returns on failure or cancellation.
func (tl *Timeline) run(ctx context.Context) error {
	if len(tl.units) == 0 {
		tl.finish()
		return nil
	}

	frames := Plan(tl.units, tl.cfg)
	tl.state.Store(int32(StateRevealing))
	for {
		for _, f := range frames {
			if err := tl.render(f); err != nil {
				return err
			}
			tl.observers.frame(tl.index, tl.Cycle(), f)
			if err := tl.clock.Sleep(ctx, f.Delay); err != nil {
				tl.observers.done(tl.index, err)
				return err
			}
		}

		if !tl.cfg.Repeat {
			tl.finish()
			return nil
		}

		tl.log.Info("clearing text", "cycle", tl.Cycle())
		if err := tl.target.SetText(""); err != nil {
			return tl.fail("restart pass", err)
		}
		tl.setRevealed("", false)
		tl.observers.pass(tl.index, tl.Cycle())
		tl.cycle.Add(1)
		tl.state.Store(int32(StateRepeating))
	}
}

func (tl *Timeline) render(f Frame) error {
	if err := tl.target.SetText(f.Text); err != nil {
		return tl.fail("set text", err)
	}
	tl.setRevealed(f.Text, false)
	if !f.Cursor {
		return nil
	}
	if err := tl.target.RemoveCursor(); err != nil {
		return tl.fail("remove cursor", err)
	}
	if err := tl.target.AppendCursor(f.Blink); err != nil {
		return tl.fail("append cursor", err)
	}
	tl.setRevealed(f.Text, true)
	return nil
}

func (tl *Timeline) setRevealed(text string, cursor bool) {
	tl.mu.Lock()
	tl.revealed = text
	tl.cursorVisible = cursor
	tl.mu.Unlock()
}

func (tl *Timeline) finish() {
	tl.state.Store(int32(StateDone))
	tl.observers.done(tl.index, nil)
}

func (tl *Timeline) fail(op string, err error) error {
	terr := &TargetError{Index: tl.index, Op: op, Init: tl.State() == StateInit, Err: err}
	tl.state.Store(int32(StateFailed))
	tl.observers.done(tl.index, terr)
	return terr
}
