package loadable

import "context"

// A Field selects one state slot on a host object: Owner and Name derive
// the slot's stable identity, and the accessor pair reads and writes the
// underlying state property.
//
// Owner must be comparable (usually a pointer to the host object) and
// Name must be unique among the host's state fields, so that many slots on
// one object do not collide.
type Field[S any] struct {
	Owner any
	Name  string
	Get   func() S
	Set   func(S)
}

type slotKey struct {
	owner any
	name  string
}

// A Registry hosts the task handles of many state slots spread across host
// objects, keyed by (owner identity, field name), so that hosts exposing
// many independent state properties get the same single-flight guarantee
// per property without owning a [Loadable] or [Process] per field.
//
// All table accesses happen in jobs of the registry's [Executor]; entries
// are removed when their operation terminates.
type Registry struct {
	ex    *Executor
	tasks map[slotKey]*Handle
}

// NewRegistry creates an empty [Registry] bound to e.
func NewRegistry(e *Executor) *Registry {
	return &Registry{ex: e, tasks: make(map[slotKey]*Handle)}
}

// Cancel cancels the current operation of the slot identified by owner and
// name, if any, and clears its handle. Cancel never changes state.
//
// Cancel is safe for concurrent use.
func (r *Registry) Cancel(owner any, name string) {
	key := slotKey{owner, name}
	r.ex.Spawn(func() {
		if h := r.tasks[key]; h != nil {
			h.Cancel()
			delete(r.tasks, key)
		}
	})
}

type keyedTask struct {
	r   *Registry
	key slotKey
}

func (k keyedTask) current() *Handle { return k.r.tasks[k.key] }

func (k keyedTask) install(h *Handle) { k.r.tasks[k.key] = h }

func (k keyedTask) remove(h *Handle) {
	if k.r.tasks[k.key] == h {
		delete(k.r.tasks, k.key)
	}
}

func loadableSlot[T any](r *Registry, f Field[LoadableState[T]]) slot[LoadableState[T]] {
	return slot[LoadableState[T]]{
		ex:        r.ex,
		get:       f.Get,
		set:       f.Set,
		task:      keyedTask{r, slotKey{f.Owner, f.Name}},
		initial:   Absent[T],
		isInitial: LoadableState[T].IsAbsent,
		cancelSig: ErrCancelLoad,
		resetSig:  ErrResetLoad,
	}
}

func processSlot[K comparable](r *Registry, f Field[ProcessState[K]]) slot[ProcessState[K]] {
	return slot[ProcessState[K]]{
		ex:        r.ex,
		get:       f.Get,
		set:       f.Set,
		task:      keyedTask{r, slotKey{f.Owner, f.Name}},
		initial:   Idle[K],
		isInitial: ProcessState[K].IsIdle,
		cancelSig: ErrCancelProcess,
		resetSig:  ErrResetProcess,
	}
}

// Load is [Loadable.Load] for a registry-hosted slot.
func Load[T any](r *Registry, f Field[LoadableState[T]], fn LoadFunc[T], opts ...Option) *Handle {
	s := loadableSlot(r, f)
	return s.start(loadSpec(fn, newConfig(opts)))
}

// LoadAndWait is [Loadable.LoadAndWait] for a registry-hosted slot.
func LoadAndWait[T any](ctx context.Context, r *Registry, f Field[LoadableState[T]], fn LoadFunc[T], opts ...Option) {
	s := loadableSlot(r, f)
	s.startWait(ctx, loadSpec(fn, newConfig(opts)))
}

// LoadStream is [Loadable.LoadStream] for a registry-hosted slot.
func LoadStream[T any](r *Registry, f Field[LoadableState[T]], fn LoadStreamFunc[T], opts ...Option) *Handle {
	s := loadableSlot(r, f)
	return s.start(loadStreamSpec(fn, newConfig(opts)))
}

// LoadStreamAndWait is [Loadable.LoadStreamAndWait] for a registry-hosted
// slot.
func LoadStreamAndWait[T any](ctx context.Context, r *Registry, f Field[LoadableState[T]], fn LoadStreamFunc[T], opts ...Option) {
	s := loadableSlot(r, f)
	s.startWait(ctx, loadStreamSpec(fn, newConfig(opts)))
}

// ResetLoadable is [Loadable.Reset] for a registry-hosted slot.
func ResetLoadable[T any](r *Registry, f Field[LoadableState[T]]) {
	s := loadableSlot(r, f)
	s.reset()
}

// SetLoadable is [Loadable.Set] for a registry-hosted slot.
func SetLoadable[T any](r *Registry, f Field[LoadableState[T]], v LoadableState[T]) {
	s := loadableSlot(r, f)
	s.assign(v)
}

// Run is [Process.Run] for a registry-hosted slot.
func Run[K comparable](r *Registry, f Field[ProcessState[K]], kind K, fn RunFunc, opts ...Option) *Handle {
	s := processSlot(r, f)
	return s.start(runSpec(kind, fn, newConfig(opts)))
}

// RunAndWait is [Process.RunAndWait] for a registry-hosted slot.
func RunAndWait[K comparable](ctx context.Context, r *Registry, f Field[ProcessState[K]], kind K, fn RunFunc, opts ...Option) {
	s := processSlot(r, f)
	s.startWait(ctx, runSpec(kind, fn, newConfig(opts)))
}

// RunStream is [Process.RunStream] for a registry-hosted slot.
func RunStream[K comparable](r *Registry, f Field[ProcessState[K]], kind K, fn RunStreamFunc[K], opts ...Option) *Handle {
	s := processSlot(r, f)
	return s.start(runStreamSpec(kind, fn, newConfig(opts)))
}

// RunStreamAndWait is [Process.RunStreamAndWait] for a registry-hosted slot.
func RunStreamAndWait[K comparable](ctx context.Context, r *Registry, f Field[ProcessState[K]], kind K, fn RunStreamFunc[K], opts ...Option) {
	s := processSlot(r, f)
	s.startWait(ctx, runStreamSpec(kind, fn, newConfig(opts)))
}

// ResetProcess is [Process.Reset] for a registry-hosted slot.
func ResetProcess[K comparable](r *Registry, f Field[ProcessState[K]]) {
	s := processSlot(r, f)
	s.reset()
}

// SetProcess is [Process.Set] for a registry-hosted slot.
func SetProcess[K comparable](r *Registry, f Field[ProcessState[K]], v ProcessState[K]) {
	s := processSlot(r, f)
	s.assign(v)
}
