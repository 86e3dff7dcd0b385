// Package loadable supervises asynchronous state.
//
// It provides two small state machines, plus the task-lifecycle plumbing
// that drives them.
// A [LoadableState] describes a resource that is absent, loading, loaded
// or failed.
// A [ProcessState] describes a discrete operation that is idle, running,
// finished or failed.
// The supervisor guarantees at most one in-flight asynchronous operation
// per state slot, and maps that operation's lifecycle onto state
// transitions.
//
// # The Affine Context
//
// Every state cell belongs to exactly one [Executor], a single-threaded job
// runner playing the role a main/UI thread plays in interactive programs.
// All state reads and writes happen inside executor jobs; the supervisor
// never mutates state from more than one concurrent context.
// Supervised work itself runs on ordinary goroutines and may block at will.
// Its yields and its terminal transition are marshaled back onto the
// executor, in order.
//
// # Hosting Flavors
//
// A slot can be hosted two ways, sharing one engine.
// The embedded flavor, [Loadable] and [Process], owns its state cell and
// task handle, one value per slot.
// The shared flavor hosts many slots across host objects in a [Registry],
// keyed by owner identity and field name via a [Field] selector, with the
// same single-flight guarantee per derived identity.
//
// # Outcomes
//
// The outcome of supervised work is always absorbed into the state, never
// returned to whoever started the operation.
// A value maps to loaded or finished, an error to the failure variant
// carrying it, and cooperative cancellation to nothing at all: the state
// stays exactly as it was.
// Work can also return a control-flow signal ([ErrCancelLoad],
// [ErrResetLoad], [ErrCancelProcess], [ErrResetProcess]) to request
// cancellation or a reset to the initial variant instead of reporting
// failure.
// A panic is captured as a [PanicError] and maps to failure.
//
// # Interrupts
//
// There is no timeout primitive.
// Instead, a start accepting [WithInterrupts] races the work against a
// schedule of accumulating delays, invoking a callback at each boundary
// the work has not beaten.
// The callback can observe progress, or return an error to abort the work.
// The final boundary returning an error is a timeout.
package loadable
