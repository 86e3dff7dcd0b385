package loadable

import (
	"context"
	"sync"
)

// A Handle is an opaque, cancellable reference to one supervised unit of
// work. At most one live handle exists per state slot at any time; starting
// a new operation cancels and discards the previous handle first.
type Handle struct {
	ctx     context.Context
	cancel  context.CancelFunc
	weight  Weight
	done    chan struct{}
	settled sync.Once
}

func newHandle(ctx context.Context, w Weight) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	return &Handle{
		ctx:    ctx,
		cancel: cancel,
		weight: w,
		done:   make(chan struct{}),
	}
}

// Cancel signals cooperative cancellation to the unit of work behind h.
//
// The work may keep running until it reaches its own cancellation check;
// once cancelled, none of its remaining effects are applied to the state.
// Cancel never changes the externally visible state by itself.
//
// Cancel is safe for concurrent use.
func (h *Handle) Cancel() {
	h.cancel()
}

// Done returns a channel that is closed once the operation behind h has
// terminated and its terminal transition, if any, has been applied.
//
// Done is safe for concurrent use.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the operation behind h has terminated and its terminal
// transition, if any, has been applied.
//
// Wait must not be called in an [Executor] job; the terminal transition is
// itself a job, so waiting inside one deadlocks.
func (h *Handle) Wait() {
	<-h.done
}

func (h *Handle) settle() {
	h.settled.Do(func() {
		h.cancel()
		close(h.done)
	})
}
