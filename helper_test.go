package loadable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateloop/loadable"
)

func newExecutor() *loadable.Executor {
	e := new(loadable.Executor)
	e.Autorun(e.Run)
	return e
}

// recordStates subscribes to c and collects every state it goes through,
// starting with the current one. The returned slice must only be read after
// a synchronization point such as [loadable.Handle.Wait].
func recordStates[S any](e *loadable.Executor, c *loadable.Cell[S]) *[]S {
	seq := new([]S)
	e.Spawn(func() {
		*seq = append(*seq, c.Get())
		c.Subscribe(func() { *seq = append(*seq, c.Get()) })
	})
	return seq
}

func assertLoadHistory[T comparable](t *testing.T, got []loadable.LoadableState[T], want ...loadable.LoadableState[T]) {
	t.Helper()
	require.Len(t, got, len(want), "state history: %v", got)
	for i := range want {
		assert.True(t, loadable.Equal(got[i], want[i]), "state %d: got %v, want %v", i, got[i], want[i])
	}
}

func assertRunHistory[K comparable](t *testing.T, got []loadable.ProcessState[K], want ...loadable.ProcessState[K]) {
	t.Helper()
	require.Len(t, got, len(want), "state history: %v", got)
	for i := range want {
		assert.True(t, got[i].Equal(want[i]), "state %d: got %v, want %v", i, got[i], want[i])
	}
}
