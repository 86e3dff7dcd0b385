package loadable

import (
	"fmt"

	"github.com/google/uuid"
)

type procPhase int8

const (
	phaseIdle procPhase = iota
	phaseRunning
	phaseFailed
	phaseFinished
)

// Token is a unique identifier value, for use as the process kind of callers
// that only ever run one kind of process.
// A fresh Token is generated per invocation by [NewToken].
type Token string

// NewToken returns a fresh, unique [Token].
func NewToken() Token {
	return Token(uuid.NewString())
}

// A ProcessState is the state of a discrete process that can be run
// asynchronously, e.g. deleting or submitting something.
//
// A ProcessState is always in exactly one of four variants:
// idle (the zero value), running, failed, or finished.
// The kind value identifies which logical process the three non-idle variants
// refer to, so one state can multiplex several mutually exclusive named
// operations.
// It is a plain value; supervised mutation is the job of [Process] and
// the [Registry] functions.
type ProcessState[K comparable] struct {
	phase procPhase
	kind  K
	cause error
}

// Idle returns a [ProcessState] in the idle variant.
// It is also the zero value of the type.
func Idle[K comparable]() ProcessState[K] {
	return ProcessState[K]{}
}

// Running returns a [ProcessState] in the running variant tagged with kind.
func Running[K comparable](kind K) ProcessState[K] {
	return ProcessState[K]{phase: phaseRunning, kind: kind}
}

// Failed returns a [ProcessState] in the failed variant tagged with kind and
// carrying cause.
func Failed[K comparable](kind K, cause error) ProcessState[K] {
	return ProcessState[K]{phase: phaseFailed, kind: kind, cause: cause}
}

// Finished returns a [ProcessState] in the finished variant tagged with kind.
func Finished[K comparable](kind K) ProcessState[K] {
	return ProcessState[K]{phase: phaseFinished, kind: kind}
}

// IsIdle reports whether s is in the idle variant.
func (s ProcessState[K]) IsIdle() bool { return s.phase == phaseIdle }

// IsRunning reports whether s is in the running variant.
func (s ProcessState[K]) IsRunning() bool { return s.phase == phaseRunning }

// IsRunningKind reports whether s is in the running variant tagged with kind.
func (s ProcessState[K]) IsRunningKind(kind K) bool {
	return s.phase == phaseRunning && s.kind == kind
}

// IsFailed reports whether s is in the failed variant.
func (s ProcessState[K]) IsFailed() bool { return s.phase == phaseFailed }

// IsFinished reports whether s is in the finished variant.
func (s ProcessState[K]) IsFinished() bool { return s.phase == phaseFinished }

// Process returns the kind the current variant is tagged with and whether
// there is one (every variant but idle carries a kind).
func (s ProcessState[K]) Process() (K, bool) {
	return s.kind, s.phase != phaseIdle
}

// Err returns the cause carried by the failed variant, or nil for any other
// variant.
func (s ProcessState[K]) Err() error {
	if s.phase == phaseFailed {
		return s.cause
	}
	return nil
}

// SetIdle puts s in the idle variant.
func (s *ProcessState[K]) SetIdle() { *s = Idle[K]() }

// SetRunning puts s in the running variant tagged with kind.
func (s *ProcessState[K]) SetRunning(kind K) { *s = Running(kind) }

// SetFailed puts s in the failed variant tagged with kind and carrying cause.
func (s *ProcessState[K]) SetFailed(kind K, cause error) { *s = Failed(kind, cause) }

// SetFinished puts s in the finished variant tagged with kind.
func (s *ProcessState[K]) SetFinished(kind K) { *s = Finished(kind) }

// Fail puts s in the failed variant carrying cause, keeping the running kind.
// Fail does nothing unless s is in the running variant; to transition out of
// any other variant, use [ProcessState.SetFailed].
func (s *ProcessState[K]) Fail(cause error) {
	if s.phase == phaseRunning {
		*s = Failed(s.kind, cause)
	}
}

// Finish puts s in the finished variant, keeping the running kind.
// Finish does nothing unless s is in the running variant; to transition out
// of any other variant, use [ProcessState.SetFinished].
func (s *ProcessState[K]) Finish() {
	if s.phase == phaseRunning {
		*s = Finished(s.kind)
	}
}

// String returns a short description of s for debugging.
func (s ProcessState[K]) String() string {
	switch s.phase {
	case phaseRunning:
		return fmt.Sprintf("running(%v)", s.kind)
	case phaseFailed:
		return fmt.Sprintf("failed(%v, %v)", s.kind, s.cause)
	case phaseFinished:
		return fmt.Sprintf("finished(%v)", s.kind)
	default:
		return "idle"
	}
}

// Equal reports whether s and other are in the same variant tagged with
// the same kind. Two failed variants are equal regardless of their causes.
func (s ProcessState[K]) Equal(other ProcessState[K]) bool {
	if s.phase != other.phase {
		return false
	}
	return s.phase == phaseIdle || s.kind == other.kind
}
