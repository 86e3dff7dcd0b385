package loadable

import "sync"

// Weight is the type of weight for use when spawning a weighted job.
// Jobs with greater weight run first.
type Weight int

// An Executor is a job spawner, and a job runner.
//
// When a job is spawned, it is added into an internal queue.
// The Run method then pops and runs each of them from the queue until
// the queue is emptied.
// It is done in a single-threaded manner.
// If one job blocks, no other jobs can run.
// The best practice is not to block.
//
// The internal queue is a priority queue.
// Jobs added in the queue are sorted by their weights, greater first.
// Jobs with the same weight are sorted by their arrival order (FIFO).
//
// Manually calling the Run method is usually not desired.
// One would instead use the Autorun method to set up an autorun function to
// calling the Run method automatically whenever a job is spawned.
// The Executor never calls the autorun function twice at the same time.
//
// An Executor is the execution affinity of this package: every state cell,
// task handle and registry entry belongs to exactly one Executor, and is only
// ever read or written from within its jobs.
type Executor struct {
	mu      sync.Mutex
	jq      jobqueue
	seq     uint64
	running bool
	autorun func()
}

// Autorun sets up an autorun function to calling the Run method automatically
// whenever a job is spawned.
//
// One must pass a function that calls the Run method.
//
// If f blocks, the Spawn method may block too.
// The best practice is not to block.
func (e *Executor) Autorun(f func()) {
	e.autorun = f
}

// Run pops and runs every job in the queue until the queue is emptied.
//
// Run must not be called twice at the same time.
func (e *Executor) Run() {
	e.mu.Lock()
	e.running = true

	for !e.jq.Empty() {
		j := e.jq.Pop()
		e.mu.Unlock()
		j.f()
		e.mu.Lock()
	}

	e.running = false
	e.mu.Unlock()
}

// Spawn adds a job with zero weight in the queue.
//
// To run it, either call the Run method, or call the Autorun method to set up
// an autorun function beforehand.
//
// Spawn is safe for concurrent use.
func (e *Executor) Spawn(f func()) {
	e.SpawnWeighted(0, f)
}

// SpawnWeighted adds a job with weight w in the queue.
// Jobs with greater weight run before jobs with lesser weight.
//
// SpawnWeighted is safe for concurrent use.
func (e *Executor) SpawnWeighted(w Weight, f func()) {
	if f == nil {
		panic("loadable: nil job")
	}

	var autorun func()

	e.mu.Lock()

	if !e.running && e.autorun != nil {
		e.running = true
		autorun = e.autorun
	}

	e.seq++
	e.jq.Push(job{weight: w, seq: e.seq, f: f})
	e.mu.Unlock()

	if autorun != nil {
		autorun()
	}
}
