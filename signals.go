package loadable

import "errors"

// Control-flow signals.
//
// Supervised work can return one of these sentinels, instead of reporting
// failure, to request a specific supervisor-level outcome.
// They carry no payload and are recognized with [errors.Is] inside
// the supervisor only; any other error is an opaque failure payload.
var (
	// ErrCancelLoad requests the equivalent of [Loadable.Cancel]:
	// the task handle is cleared and the state is left untouched.
	ErrCancelLoad = errors.New("loadable: cancel load")

	// ErrResetLoad requests the equivalent of [Loadable.Reset]:
	// the task handle is cleared and the state is forced back to absent.
	ErrResetLoad = errors.New("loadable: reset load")

	// ErrCancelProcess requests the equivalent of [Process.Cancel]:
	// the task handle is cleared and the state is left untouched.
	ErrCancelProcess = errors.New("loadable: cancel process")

	// ErrResetProcess requests the equivalent of [Process.Reset]:
	// the task handle is cleared and the state is forced back to idle.
	ErrResetProcess = errors.New("loadable: reset process")
)
