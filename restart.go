package loadable

// A RestartID is an observable identifier cell. Its sole operation is to
// replace its value with a new distinct one, notifying subscribers.
//
// Callers bind the lifetime of a surrounding scope, typically one running
// a streaming load, to the identifier, cancel and start the scope over
// whenever it changes, and call Restart to retry a failed stream from
// scratch. The supervisor knows nothing about it.
type RestartID struct {
	cell Cell[Token]
}

// NewRestartID creates a [RestartID] holding a fresh [Token].
func NewRestartID() *RestartID {
	r := new(RestartID)
	r.cell.value = NewToken()
	return r
}

// Value retrieves the current identifier.
//
// Without proper synchronization, one should only call this method in
// an [Executor] job.
func (r *RestartID) Value() Token {
	return r.cell.Get()
}

// Restart replaces the identifier with a new distinct value and invokes
// every subscriber of r.
//
// One should only call this method in an [Executor] job.
func (r *RestartID) Restart() {
	r.cell.Set(NewToken())
}

// Subscribe registers f to be invoked whenever r restarts, and returns
// a function that removes the subscription.
//
// One should only call this method, and the returned function, in
// an [Executor] job.
func (r *RestartID) Subscribe(f func()) (unsubscribe func()) {
	return r.cell.Subscribe(f)
}
