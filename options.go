package loadable

import (
	"context"
	"time"
)

// An Option customizes one start call.
type Option func(*config)

type config struct {
	weight      Weight
	silent      bool
	delays      []time.Duration
	onInterrupt func(elapsed time.Duration) error
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Silently skips the in-progress transition, so that only the terminal state
// becomes externally visible.
func Silently() Option {
	return func(c *config) { c.silent = true }
}

// WithWeight runs the operation's state transitions at weight w on
// the [Executor]. Transitions of heavier operations run first.
func WithWeight(w Weight) Option {
	return func(c *config) { c.weight = w }
}

// WithInterrupts races the operation against a schedule of accumulating
// delays, invoking onInterrupt once per elapsed cumulative delay, in order,
// while the operation is still in flight.
// An error returned by onInterrupt cancels the operation and supersedes its
// outcome; returning a control-flow signal works the same as returning it
// from the operation itself.
//
// There is no timeout primitive in this package; a timeout is the final
// interrupt boundary returning an error.
func WithInterrupts(onInterrupt func(elapsed time.Duration) error, delays ...time.Duration) Option {
	return func(c *config) {
		c.onInterrupt = onInterrupt
		c.delays = delays
	}
}

// run executes f, racing it against the configured interrupt schedule,
// if any.
func (c *config) run(ctx context.Context, f func(context.Context) error) error {
	if len(c.delays) == 0 {
		return f(ctx)
	}
	onInterrupt := c.onInterrupt
	if onInterrupt == nil {
		onInterrupt = func(time.Duration) error { return nil }
	}
	return withInterrupts(ctx, c.delays, onInterrupt, f)
}
