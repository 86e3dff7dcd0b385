package loadable

// Event is the interface of any type that can be subscribed to.
//
// The following types implement Event: [Signal], [Cell] and [Computed].
// Any type that embeds [Signal] also implements Event, e.g. [Cell].
type Event interface {
	addListener(l *listener)
	removeListener(l *listener)
}

type listener struct {
	f func()
}

// Signal is a type that implements [Event].
//
// Calling the Notify method of a Signal, in an [Executor] job, invokes every
// subscriber of the Signal.
//
// A Signal must not be shared by more than one [Executor].
type Signal struct {
	listeners map[*listener]struct{}
}

func (s *Signal) addListener(l *listener) {
	listeners := s.listeners
	if listeners == nil {
		listeners = make(map[*listener]struct{})
		s.listeners = listeners
	}
	listeners[l] = struct{}{}
}

func (s *Signal) removeListener(l *listener) {
	delete(s.listeners, l)
}

// Subscribe registers f to be invoked whenever s notifies, and returns
// a function that removes the subscription.
//
// One should only call this method, and the returned function, in
// an [Executor] job.
func (s *Signal) Subscribe(f func()) (unsubscribe func()) {
	l := &listener{f}
	s.addListener(l)
	return func() { s.removeListener(l) }
}

// Notify invokes every subscriber of s.
//
// One should only call this method in an [Executor] job.
func (s *Signal) Notify() {
	for l := range s.listeners {
		l.f()
	}
}
