package typewriter

import (
	"context"
	"errors"

	"github.com/san-kum/typewrite/internal/config"
	"github.com/san-kum/typewrite/internal/observability"
	"golang.org/x/sync/errgroup"
)

type Engine struct {
	clock     Clock
	log       *observability.Logger
	observers observers
}

type Option func(*Engine)

func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

func WithLogger(l *observability.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{clock: RealClock(), log: observability.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run starts one timeline per target and returns the Completion for the set.
//
// Every target is captured and cleared before Run returns; the reveal steps
// happen on background goroutines. The Completion settles with
// CompletionValue once every target is done. A failing target does not stop
// the others: the Completion then settles with the joined TargetErrors after
// the remaining targets finish. Targets configured with Repeat never finish,
// so the Completion only settles for them when ctx is cancelled.
func (e *Engine) Run(ctx context.Context, targets []Target, opts config.Options) *Completion {
	cfg := config.Resolve(opts)
	timelines := make([]*Timeline, len(targets))
	for i, t := range targets {
		timelines[i] = newTimeline(i, t, cfg, e.clock, e.log, e.observers)
	}
	c := newCompletion(timelines)
	if len(timelines) == 0 {
		c.settle(CompletionValue, nil)
		return c
	}

	errs := make([]error, len(timelines))
	g, gctx := errgroup.WithContext(ctx)
	for i, tl := range timelines {
		i, tl := i, tl
		if err := tl.init(); err != nil {
			errs[i] = err
			continue
		}
		g.Go(func() error {
			err := tl.run(gctx)
			var terr *TargetError
			if errors.As(err, &terr) {
				errs[i] = err
				return nil
			}
			return err
		})
	}

	go func() {
		if err := g.Wait(); err != nil {
			c.settle("", err)
			return
		}
		if err := errors.Join(errs...); err != nil {
			c.settle("", err)
			return
		}
		c.settle(CompletionValue, nil)
	}()
	return c
}
