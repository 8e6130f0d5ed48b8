package typewriter

import (
	"context"
	"sync"
)

// CompletionValue is what a successful Completion settles with.
const CompletionValue = "Done"

// Completion is the aggregate result of one Engine.Run call. It settles
// exactly once.
type Completion struct {
	timelines []*Timeline
	done      chan struct{}
	once      sync.Once
	value     string
	err       error
}

func newCompletion(timelines []*Timeline) *Completion {
	return &Completion{timelines: timelines, done: make(chan struct{})}
}

func (c *Completion) settle(value string, err error) {
	c.once.Do(func() {
		c.value, c.err = value, err
		close(c.done)
	})
}

// Done is closed once the Completion has settled.
func (c *Completion) Done() <-chan struct{} { return c.done }

// Wait blocks until the Completion settles or ctx is done. Giving up on ctx
// does not cancel the timelines.
func (c *Completion) Wait(ctx context.Context) (string, error) {
	select {
	case <-c.done:
		return c.value, c.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Result returns the settled value, or ErrPending while timelines are running.
func (c *Completion) Result() (string, error) {
	select {
	case <-c.done:
		return c.value, c.err
	default:
		return "", ErrPending
	}
}

func (c *Completion) Timelines() []*Timeline { return c.timelines }
