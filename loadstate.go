package loadable

import "fmt"

type loadPhase int8

const (
	phaseAbsent loadPhase = iota
	phaseLoading
	phaseLoadError
	phaseLoaded
)

// A LoadableState is the state of a resource that can be loaded
// asynchronously.
//
// A LoadableState is always in exactly one of four variants:
// absent (the zero value), loading, error, or loaded.
// It is a plain value; nothing about it is concurrency-aware.
// Supervised mutation is the job of [Loadable] and the [Registry] functions.
type LoadableState[T any] struct {
	phase loadPhase
	value T
	cause error
}

// Absent returns a [LoadableState] in the absent variant.
// It is also the zero value of the type.
func Absent[T any]() LoadableState[T] {
	return LoadableState[T]{}
}

// Loading returns a [LoadableState] in the loading variant.
func Loading[T any]() LoadableState[T] {
	return LoadableState[T]{phase: phaseLoading}
}

// LoadFailed returns a [LoadableState] in the error variant carrying cause.
func LoadFailed[T any](cause error) LoadableState[T] {
	return LoadableState[T]{phase: phaseLoadError, cause: cause}
}

// Loaded returns a [LoadableState] in the loaded variant carrying v.
func Loaded[T any](v T) LoadableState[T] {
	return LoadableState[T]{phase: phaseLoaded, value: v}
}

// IsAbsent reports whether s is in the absent variant.
func (s LoadableState[T]) IsAbsent() bool { return s.phase == phaseAbsent }

// IsLoading reports whether s is in the loading variant.
func (s LoadableState[T]) IsLoading() bool { return s.phase == phaseLoading }

// IsError reports whether s is in the error variant.
func (s LoadableState[T]) IsError() bool { return s.phase == phaseLoadError }

// IsLoaded reports whether s is in the loaded variant.
func (s LoadableState[T]) IsLoaded() bool { return s.phase == phaseLoaded }

// Data returns the loaded value and whether s is in the loaded variant.
func (s LoadableState[T]) Data() (T, bool) {
	return s.value, s.phase == phaseLoaded
}

// Err returns the cause carried by the error variant, or nil for any other
// variant.
func (s LoadableState[T]) Err() error {
	if s.phase == phaseLoadError {
		return s.cause
	}
	return nil
}

// SetAbsent puts s in the absent variant.
func (s *LoadableState[T]) SetAbsent() { *s = Absent[T]() }

// SetLoading puts s in the loading variant.
func (s *LoadableState[T]) SetLoading() { *s = Loading[T]() }

// SetError puts s in the error variant carrying cause.
func (s *LoadableState[T]) SetError(cause error) { *s = LoadFailed[T](cause) }

// SetLoaded puts s in the loaded variant carrying v.
func (s *LoadableState[T]) SetLoaded(v T) { *s = Loaded(v) }

// String returns a short description of s for debugging.
func (s LoadableState[T]) String() string {
	switch s.phase {
	case phaseLoading:
		return "loading"
	case phaseLoadError:
		return fmt.Sprintf("error(%v)", s.cause)
	case phaseLoaded:
		return fmt.Sprintf("loaded(%v)", s.value)
	default:
		return "absent"
	}
}

// Equal reports whether a and b are in the same variant with equal payloads.
// Two error variants are equal regardless of their causes.
func Equal[T comparable](a, b LoadableState[T]) bool {
	if a.phase != b.phase {
		return false
	}
	if a.phase == phaseLoaded {
		return a.value == b.value
	}
	return true
}
