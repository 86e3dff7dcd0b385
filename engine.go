package loadable

import (
	"context"
	"errors"
)

// A taskCell abstracts where a slot's current task handle lives:
// a struct field for the embedded flavor ([Loadable], [Process]), or
// a keyed [Registry] entry for the shared flavor.
type taskCell interface {
	current() *Handle
	install(h *Handle)
	// remove clears h, provided h is still the current handle.
	remove(h *Handle)
}

// A slot binds a state cell, a task handle cell and the control-flow
// sentinels into the single-flight engine shared by both state types and
// both hosting flavors.
//
// Invariant: at most one non-cancelled handle exists per slot at any time.
// Every state or handle access happens in a job of the slot's [Executor].
type slot[S any] struct {
	ex        *Executor
	get       func() S
	set       func(S)
	task      taskCell
	initial   func() S
	isInitial func(S) bool
	cancelSig error
	resetSig  error
}

// A startSpec describes one start call.
type startSpec[S any] struct {
	weight Weight
	silent bool

	// progress maps the current state to the in-progress variant;
	// ok=false skips the transition (already in progress with the same tag).
	progress func(S) (next S, ok bool)

	// body runs the supervised work. On success it returns the terminal
	// transition, or nil when there is none beyond the last yield.
	body func(ctx context.Context, yield func(S)) (terminal func() S, err error)

	// fail maps an opaque error to the failure variant.
	fail func(error) S
}

// start launches sp as a detached unit and returns its handle immediately.
//
// start is safe for concurrent use.
func (s *slot[S]) start(sp startSpec[S]) *Handle {
	h := newHandle(context.Background(), sp.weight)
	s.ex.SpawnWeighted(sp.weight, func() {
		s.begin(h, sp)
		go s.execute(h, sp)
	})
	return h
}

// startWait runs sp's body on the calling goroutine and returns only after
// the terminal transition has been applied.
//
// startWait must not be called in an [Executor] job.
func (s *slot[S]) startWait(ctx context.Context, sp startSpec[S]) {
	h := newHandle(ctx, sp.weight)
	begun := make(chan struct{})
	s.ex.SpawnWeighted(sp.weight, func() {
		s.begin(h, sp)
		close(begun)
	})
	<-begun
	s.execute(h, sp)
	h.Wait()
}

// begin cancels and discards the previous handle, applies the in-progress
// transition and installs h as the slot's current handle.
// begin must run in an executor job.
func (s *slot[S]) begin(h *Handle, sp startSpec[S]) {
	if prev := s.task.current(); prev != nil {
		prev.Cancel()
		s.task.remove(prev)
	}
	if !sp.silent {
		if next, ok := sp.progress(s.get()); ok {
			s.set(next)
		}
	}
	s.task.install(h)
}

// execute runs the body to completion, then hands its outcome to finish on
// the executor.
func (s *slot[S]) execute(h *Handle, sp startSpec[S]) {
	var terminal func() S
	err := guard(func() (err error) {
		terminal, err = sp.body(h.ctx, func(v S) { s.yieldState(h, v) })
		return err
	})
	s.ex.SpawnWeighted(h.weight, func() { s.finish(h, terminal, err, sp.fail) })
}

// yieldState applies an intermediate state update emitted by a still-running
// operation, unless the operation has been superseded or cancelled.
func (s *slot[S]) yieldState(h *Handle, v S) {
	s.ex.SpawnWeighted(h.weight, func() {
		if s.task.current() == h && h.ctx.Err() == nil {
			s.set(v)
		}
	})
}

// finish maps the outcome of the operation behind h to a state transition.
// finish must run in an executor job.
//
// The checks are ordered: cooperative cancellation, success, cancel signal,
// reset signal, and only then generic failure.
func (s *slot[S]) finish(h *Handle, terminal func() S, err error, fail func(error) S) {
	defer h.settle()

	if s.task.current() != h {
		// Superseded by a later start, or explicitly cancelled;
		// the outcome is discarded.
		return
	}
	s.task.remove(h)

	switch {
	case h.ctx.Err() != nil || errors.Is(err, context.Canceled):
		// Cancellation observed in flight; leave the state as it was.
	case err == nil:
		if terminal != nil {
			s.set(terminal())
		}
	case errors.Is(err, s.cancelSig):
		// Leave the state as it was.
	case errors.Is(err, s.resetSig):
		if !s.isInitial(s.get()) {
			s.set(s.initial())
		}
	default:
		s.set(fail(err))
	}
}

// cancelNow cancels and clears the current handle without touching the state.
// cancelNow must run in an executor job.
func (s *slot[S]) cancelNow() {
	if h := s.task.current(); h != nil {
		h.Cancel()
		s.task.remove(h)
	}
}

// resetNow is cancelNow plus forcing the state back to its initial variant.
// resetNow must run in an executor job.
func (s *slot[S]) resetNow() {
	s.cancelNow()
	if !s.isInitial(s.get()) {
		s.set(s.initial())
	}
}

// assignNow applies a caller-direct write, cancelling any in-flight task
// first so that a stale completion cannot clobber the assigned value.
// assignNow must run in an executor job.
func (s *slot[S]) assignNow(v S) {
	s.cancelNow()
	s.set(v)
}

func (s *slot[S]) cancel()    { s.ex.Spawn(s.cancelNow) }
func (s *slot[S]) reset()     { s.ex.Spawn(s.resetNow) }
func (s *slot[S]) assign(v S) { s.ex.Spawn(func() { s.assignNow(v) }) }
