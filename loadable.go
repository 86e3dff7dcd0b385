package loadable

import "context"

// A LoadFunc is the non-yielding shape of supervised loading work:
// it computes the final value, or fails.
//
// Cancellation is cooperative: the function is expected to observe ctx and
// return early once it is cancelled. A control-flow signal ([ErrCancelLoad],
// [ErrResetLoad]) may be returned instead of reporting failure.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// A LoadStreamFunc is the yielding shape of supervised loading work:
// it may call yield any number of times to publish intermediate states
// before terminating. Completing normally applies no terminal state beyond
// the last yielded one.
//
// yield is safe to call from the goroutine running the function.
type LoadStreamFunc[T any] func(ctx context.Context, yield func(LoadableState[T])) error

// A Loadable is one loadable-resource state slot: a [LoadableState] cell
// plus the handle of the asynchronous operation currently backing it.
// It guarantees that at most one such operation is in flight at any time.
//
// The zero Loadable is not ready for use; call [NewLoadable].
type Loadable[T any] struct {
	cell Cell[LoadableState[T]]
	h    *Handle
	core slot[LoadableState[T]]
}

// NewLoadable creates a [Loadable] slot in the absent variant, bound to e.
func NewLoadable[T any](e *Executor) *Loadable[T] {
	l := new(Loadable[T])
	l.core = slot[LoadableState[T]]{
		ex:        e,
		get:       l.cell.Get,
		set:       l.cell.Set,
		task:      l,
		initial:   Absent[T],
		isInitial: LoadableState[T].IsAbsent,
		cancelSig: ErrCancelLoad,
		resetSig:  ErrResetLoad,
	}
	return l
}

func (l *Loadable[T]) current() *Handle { return l.h }

func (l *Loadable[T]) install(h *Handle) { l.h = h }

func (l *Loadable[T]) remove(h *Handle) {
	if l.h == h {
		l.h = nil
	}
}

// State returns the current state of l.
//
// Without proper synchronization, one should only call this method in
// an [Executor] job, or after a [Handle.Wait] synchronization point.
func (l *Loadable[T]) State() LoadableState[T] {
	return l.cell.Get()
}

// Cell returns the observable cell backing l, for subscribing to state
// changes. Writing the cell directly bypasses the cancel-first rule;
// use [Loadable.Set] instead.
func (l *Loadable[T]) Cell() *Cell[LoadableState[T]] {
	return &l.cell
}

// Set assigns the state of l directly, cancelling any in-flight operation
// first so that a stale completion cannot clobber the assigned value.
//
// Set is safe for concurrent use.
func (l *Loadable[T]) Set(s LoadableState[T]) {
	l.core.assign(s)
}

// Load starts fn as a new detached operation and returns its handle.
//
// Any previous operation on l is cancelled first. Unless started with
// [Silently], the state transitions to loading, and then to loaded or error
// according to fn's outcome. Control-flow signals and cooperative
// cancellation map per the package rules; errors never propagate to
// the caller of Load other than through the state.
//
// Load is safe for concurrent use.
func (l *Loadable[T]) Load(fn LoadFunc[T], opts ...Option) *Handle {
	return l.core.start(loadSpec(fn, newConfig(opts)))
}

// LoadAndWait is [Loadable.Load], except that fn runs on the calling
// goroutine and the call returns only after the terminal state has been
// applied. Cancelling ctx cancels the operation.
//
// LoadAndWait must not be called in an [Executor] job.
func (l *Loadable[T]) LoadAndWait(ctx context.Context, fn LoadFunc[T], opts ...Option) {
	l.core.startWait(ctx, loadSpec(fn, newConfig(opts)))
}

// LoadStream is [Loadable.Load] for the yielding shape of work.
func (l *Loadable[T]) LoadStream(fn LoadStreamFunc[T], opts ...Option) *Handle {
	return l.core.start(loadStreamSpec(fn, newConfig(opts)))
}

// LoadStreamAndWait is [Loadable.LoadAndWait] for the yielding shape of work.
func (l *Loadable[T]) LoadStreamAndWait(ctx context.Context, fn LoadStreamFunc[T], opts ...Option) {
	l.core.startWait(ctx, loadStreamSpec(fn, newConfig(opts)))
}

// Cancel cancels the current operation, if any, and clears its handle.
// Cancel never changes the current state value.
//
// Cancel is safe for concurrent use.
func (l *Loadable[T]) Cancel() {
	l.core.cancel()
}

// Reset is [Loadable.Cancel] plus forcing the state back to absent, unless
// it is absent already.
//
// Reset is safe for concurrent use.
func (l *Loadable[T]) Reset() {
	l.core.reset()
}

func loadSpec[T any](fn LoadFunc[T], c config) startSpec[LoadableState[T]] {
	return startSpec[LoadableState[T]]{
		weight:   c.weight,
		silent:   c.silent,
		progress: loadingNext[T],
		fail:     LoadFailed[T],
		body: func(ctx context.Context, yield func(LoadableState[T])) (func() LoadableState[T], error) {
			var v T
			err := c.run(ctx, func(ctx context.Context) (err error) {
				v, err = fn(ctx)
				return err
			})
			if err != nil {
				return nil, err
			}
			return func() LoadableState[T] { return Loaded(v) }, nil
		},
	}
}

func loadStreamSpec[T any](fn LoadStreamFunc[T], c config) startSpec[LoadableState[T]] {
	return startSpec[LoadableState[T]]{
		weight:   c.weight,
		silent:   c.silent,
		progress: loadingNext[T],
		fail:     LoadFailed[T],
		body: func(ctx context.Context, yield func(LoadableState[T])) (func() LoadableState[T], error) {
			return nil, c.run(ctx, func(ctx context.Context) error {
				return fn(ctx, yield)
			})
		},
	}
}

// loadingNext skips the transition when the state is loading already, to
// avoid a redundant notification.
func loadingNext[T any](cur LoadableState[T]) (LoadableState[T], bool) {
	if cur.IsLoading() {
		return cur, false
	}
	return Loading[T](), true
}
