package loadable

// A Computed is a Cell-like structure whose value is computed from other
// events, typically [Cell] values.
//
// A Computed recomputes whenever one of its dependencies notifies, and
// notifies its own subscribers only when the computed value changes, which
// prevents unnecessary propagations. While it has no subscribers, it goes
// stale instead of recomputing, and silently catches up on the next Get or
// Subscribe.
//
// A Computed must not be shared by more than one [Executor].
type Computed[T any] struct {
	cell    Cell[T]
	compute func() T
	equal   func(a, b T) bool
	stale   bool
}

// NewComputed creates a [Computed] over compute, recomputing whenever any of
// deps notifies. Values are compared with ==.
func NewComputed[T comparable](compute func() T, deps ...Event) *Computed[T] {
	return NewComputedFunc(compute, func(a, b T) bool { return a == b }, deps...)
}

// NewComputedFunc is [NewComputed] for value types without built-in
// equality; values are compared with equal.
func NewComputedFunc[T any](compute func() T, equal func(a, b T) bool, deps ...Event) *Computed[T] {
	c := &Computed[T]{compute: compute, equal: equal, stale: true}
	l := &listener{c.refresh}
	for _, d := range deps {
		d.addListener(l)
	}
	return c
}

// refresh handles a dependency notification.
func (c *Computed[T]) refresh() {
	if len(c.cell.listeners) == 0 {
		c.stale = true
		return
	}
	if v := c.compute(); !c.equal(c.cell.value, v) {
		c.cell.Set(v)
	}
}

// catchUp recomputes a stale value without notifying.
func (c *Computed[T]) catchUp() {
	c.stale = false
	c.cell.value = c.compute()
}

func (c *Computed[T]) addListener(l *listener) {
	c.cell.addListener(l)
	if c.stale {
		c.catchUp()
	}
}

func (c *Computed[T]) removeListener(l *listener) {
	c.cell.removeListener(l)
}

// Subscribe registers f to be invoked whenever the value of c changes, and
// returns a function that removes the subscription.
//
// One should only call this method, and the returned function, in
// an [Executor] job.
func (c *Computed[T]) Subscribe(f func()) (unsubscribe func()) {
	l := &listener{f}
	c.addListener(l)
	return func() { c.removeListener(l) }
}

// Get retrieves the value of c, recomputing it first if c is stale.
//
// One should only call this method in an [Executor] job.
func (c *Computed[T]) Get() T {
	if c.stale {
		c.catchUp()
	}
	return c.cell.value
}
