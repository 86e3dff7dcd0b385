package loadable

import "context"

// A RunFunc is the non-yielding shape of supervised process work:
// it carries the process out, or fails.
//
// Cancellation is cooperative: the function is expected to observe ctx and
// return early once it is cancelled. A control-flow signal
// ([ErrCancelProcess], [ErrResetProcess]) may be returned instead of
// reporting failure.
type RunFunc func(ctx context.Context) error

// A RunStreamFunc is the yielding shape of supervised process work:
// it may call yield any number of times to publish intermediate states
// before terminating. Completing normally applies no terminal state beyond
// the last yielded one.
type RunStreamFunc[K comparable] func(ctx context.Context, yield func(ProcessState[K])) error

// A Process is one process state slot: a [ProcessState] cell plus the handle
// of the asynchronous operation currently backing it.
// It guarantees that at most one such operation is in flight at any time,
// which makes one Process suitable for multiplexing several mutually
// exclusive named operations, told apart by their kind.
//
// The zero Process is not ready for use; call [NewProcess].
type Process[K comparable] struct {
	cell Cell[ProcessState[K]]
	h    *Handle
	core slot[ProcessState[K]]
}

// NewProcess creates a [Process] slot in the idle variant, bound to e.
//
// Callers that only ever run one kind of process can use [Token] as K and
// start operations with [RunNew].
func NewProcess[K comparable](e *Executor) *Process[K] {
	p := new(Process[K])
	p.core = slot[ProcessState[K]]{
		ex:        e,
		get:       p.cell.Get,
		set:       p.cell.Set,
		task:      p,
		initial:   Idle[K],
		isInitial: ProcessState[K].IsIdle,
		cancelSig: ErrCancelProcess,
		resetSig:  ErrResetProcess,
	}
	return p
}

func (p *Process[K]) current() *Handle { return p.h }

func (p *Process[K]) install(h *Handle) { p.h = h }

func (p *Process[K]) remove(h *Handle) {
	if p.h == h {
		p.h = nil
	}
}

// State returns the current state of p.
//
// Without proper synchronization, one should only call this method in
// an [Executor] job, or after a [Handle.Wait] synchronization point.
func (p *Process[K]) State() ProcessState[K] {
	return p.cell.Get()
}

// Cell returns the observable cell backing p, for subscribing to state
// changes. Writing the cell directly bypasses the cancel-first rule;
// use [Process.Set] instead.
func (p *Process[K]) Cell() *Cell[ProcessState[K]] {
	return &p.cell
}

// Set assigns the state of p directly, cancelling any in-flight operation
// first so that a stale completion cannot clobber the assigned value.
//
// Set is safe for concurrent use.
func (p *Process[K]) Set(s ProcessState[K]) {
	p.core.assign(s)
}

// Run starts fn as a new detached operation tagged with kind and returns
// its handle.
//
// Any previous operation on p is cancelled first, whatever its kind.
// Unless started with [Silently], the state transitions to running(kind),
// skipped when it is running(kind) already, and then to finished or failed
// according to fn's outcome. Control-flow signals and cooperative
// cancellation map per the package rules; errors never propagate to
// the caller of Run other than through the state.
//
// Run is safe for concurrent use.
func (p *Process[K]) Run(kind K, fn RunFunc, opts ...Option) *Handle {
	return p.core.start(runSpec(kind, fn, newConfig(opts)))
}

// RunAndWait is [Process.Run], except that fn runs on the calling goroutine
// and the call returns only after the terminal state has been applied.
// Cancelling ctx cancels the operation.
//
// RunAndWait must not be called in an [Executor] job.
func (p *Process[K]) RunAndWait(ctx context.Context, kind K, fn RunFunc, opts ...Option) {
	p.core.startWait(ctx, runSpec(kind, fn, newConfig(opts)))
}

// RunStream is [Process.Run] for the yielding shape of work.
func (p *Process[K]) RunStream(kind K, fn RunStreamFunc[K], opts ...Option) *Handle {
	return p.core.start(runStreamSpec(kind, fn, newConfig(opts)))
}

// RunStreamAndWait is [Process.RunAndWait] for the yielding shape of work.
func (p *Process[K]) RunStreamAndWait(ctx context.Context, kind K, fn RunStreamFunc[K], opts ...Option) {
	p.core.startWait(ctx, runStreamSpec(kind, fn, newConfig(opts)))
}

// Cancel cancels the current operation, if any, and clears its handle.
// Cancel never changes the current state value.
//
// Cancel is safe for concurrent use.
func (p *Process[K]) Cancel() {
	p.core.cancel()
}

// Reset is [Process.Cancel] plus forcing the state back to idle, unless it
// is idle already.
//
// Reset is safe for concurrent use.
func (p *Process[K]) Reset() {
	p.core.reset()
}

// RunNew is [Process.Run] tagged with a fresh unique [Token], for processes
// that only ever run one kind of operation.
func RunNew(p *Process[Token], fn RunFunc, opts ...Option) *Handle {
	return p.Run(NewToken(), fn, opts...)
}

// RunNewAndWait is [Process.RunAndWait] tagged with a fresh unique [Token].
func RunNewAndWait(ctx context.Context, p *Process[Token], fn RunFunc, opts ...Option) {
	p.RunAndWait(ctx, NewToken(), fn, opts...)
}

func runSpec[K comparable](kind K, fn RunFunc, c config) startSpec[ProcessState[K]] {
	return startSpec[ProcessState[K]]{
		weight:   c.weight,
		silent:   c.silent,
		progress: runningNext[K](kind),
		fail:     func(err error) ProcessState[K] { return Failed(kind, err) },
		body: func(ctx context.Context, yield func(ProcessState[K])) (func() ProcessState[K], error) {
			if err := c.run(ctx, fn); err != nil {
				return nil, err
			}
			return func() ProcessState[K] { return Finished(kind) }, nil
		},
	}
}

func runStreamSpec[K comparable](kind K, fn RunStreamFunc[K], c config) startSpec[ProcessState[K]] {
	return startSpec[ProcessState[K]]{
		weight:   c.weight,
		silent:   c.silent,
		progress: runningNext[K](kind),
		fail:     func(err error) ProcessState[K] { return Failed(kind, err) },
		body: func(ctx context.Context, yield func(ProcessState[K])) (func() ProcessState[K], error) {
			return nil, c.run(ctx, func(ctx context.Context) error {
				return fn(ctx, yield)
			})
		},
	}
}

// runningNext skips the transition when the state is running the same kind
// already, to avoid a redundant notification.
func runningNext[K comparable](kind K) func(ProcessState[K]) (ProcessState[K], bool) {
	return func(cur ProcessState[K]) (ProcessState[K], bool) {
		if cur.IsRunningKind(kind) {
			return cur, false
		}
		return Running(kind), true
	}
}
