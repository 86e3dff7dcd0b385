package loadable

// A Cell is a [Signal] that carries a value.
// To retrieve the value, call the Get method.
//
// Calling the Set method of a cell, in an [Executor] job, updates the value
// and invokes every subscriber of the cell.
//
// A Cell must not be shared by more than one [Executor].
type Cell[T any] struct {
	Signal
	value T
}

// NewCell creates a new [Cell] with its initial value set to v.
func NewCell[T any](v T) *Cell[T] {
	return &Cell[T]{value: v}
}

// Get retrieves the value of c.
//
// Without proper synchronization, one should only call this method in
// an [Executor] job.
func (c *Cell[T]) Get() T {
	return c.value
}

// Set updates the value of c and invokes every subscriber of c.
//
// One should only call this method in an [Executor] job.
func (c *Cell[T]) Set(v T) {
	c.value = v
	c.Notify()
}

// Update sets the value of c to f(c.Get()) and invokes every subscriber of c.
//
// One should only call this method in an [Executor] job.
func (c *Cell[T]) Update(f func(v T) T) {
	c.Set(f(c.value))
}
