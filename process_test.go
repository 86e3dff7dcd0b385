package loadable_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateloop/loadable"
)

func TestRunFinishesWithTag(t *testing.T) {
	e := newExecutor()
	p := loadable.NewProcess[string](e)
	seq := recordStates(e, p.Cell())

	p.Run("save", func(ctx context.Context) error {
		return nil
	}).Wait()

	assertRunHistory(t, *seq,
		loadable.Idle[string](),
		loadable.Running("save"),
		loadable.Finished("save"),
	)
}

func TestRunFailsWithTagAndCause(t *testing.T) {
	e := newExecutor()
	p := loadable.NewProcess[string](e)
	seq := recordStates(e, p.Cell())

	boom := errors.New("boom")
	p.Run("delete", func(ctx context.Context) error {
		return boom
	}).Wait()

	assertRunHistory(t, *seq,
		loadable.Idle[string](),
		loadable.Running("delete"),
		loadable.Failed("delete", boom),
	)
	assert.Same(t, boom, p.State().Err())
}

func TestRunSameKindSkipsRunningTransition(t *testing.T) {
	e := newExecutor()
	p := loadable.NewProcess[string](e)
	seq := recordStates(e, p.Cell())

	h1 := p.Run("save", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	h2 := p.Run("save", func(ctx context.Context) error {
		return nil
	})
	h1.Wait()
	h2.Wait()

	assertRunHistory(t, *seq,
		loadable.Idle[string](),
		loadable.Running("save"),
		loadable.Finished("save"),
	)
}

func TestRunDifferentKindReplaces(t *testing.T) {
	e := newExecutor()
	p := loadable.NewProcess[string](e)
	seq := recordStates(e, p.Cell())

	h1 := p.Run("save", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	h2 := p.Run("delete", func(ctx context.Context) error {
		return nil
	})
	h1.Wait()
	h2.Wait()

	assertRunHistory(t, *seq,
		loadable.Idle[string](),
		loadable.Running("save"),
		loadable.Running("delete"),
		loadable.Finished("delete"),
	)
}

func TestRunSilently(t *testing.T) {
	e := newExecutor()
	p := loadable.NewProcess[string](e)
	seq := recordStates(e, p.Cell())

	p.Run("save", func(ctx context.Context) error {
		return nil
	}, loadable.Silently()).Wait()

	assertRunHistory(t, *seq,
		loadable.Idle[string](),
		loadable.Finished("save"),
	)
}

func TestRunResetSignalForcesIdle(t *testing.T) {
	e := newExecutor()
	p := loadable.NewProcess[string](e)
	seq := recordStates(e, p.Cell())

	p.Run("save", func(ctx context.Context) error {
		return loadable.ErrResetProcess
	}).Wait()

	assertRunHistory(t, *seq,
		loadable.Idle[string](),
		loadable.Running("save"),
		loadable.Idle[string](),
	)
}

func TestRunCancelSignalKeepsState(t *testing.T) {
	e := newExecutor()
	p := loadable.NewProcess[string](e)

	p.Run("save", func(ctx context.Context) error {
		return loadable.ErrCancelProcess
	}).Wait()

	assert.True(t, p.State().IsRunningKind("save"))
}

func TestRunStreamYields(t *testing.T) {
	e := newExecutor()
	p := loadable.NewProcess[string](e)
	seq := recordStates(e, p.Cell())

	p.RunStream("export", func(ctx context.Context, yield func(loadable.ProcessState[string])) error {
		yield(loadable.Running("export"))
		yield(loadable.Finished("export"))
		return nil
	}).Wait()

	assertRunHistory(t, *seq,
		loadable.Idle[string](),
		loadable.Running("export"),
		loadable.Running("export"), // Yielded explicitly.
		loadable.Finished("export"),
	)
}

func TestRunAndWait(t *testing.T) {
	e := newExecutor()
	p := loadable.NewProcess[string](e)

	p.RunAndWait(context.Background(), "save", func(ctx context.Context) error {
		return nil
	})

	assert.True(t, p.State().IsFinished())
}

func TestRunNewGeneratesFreshTokens(t *testing.T) {
	e := newExecutor()
	p := loadable.NewProcess[loadable.Token](e)

	loadable.RunNewAndWait(context.Background(), p, func(ctx context.Context) error {
		return nil
	})
	k1, ok := p.State().Process()
	require.True(t, ok)

	loadable.RunNewAndWait(context.Background(), p, func(ctx context.Context) error {
		return nil
	})
	k2, ok := p.State().Process()
	require.True(t, ok)

	assert.NotEqual(t, k1, k2, "every invocation gets a fresh token")
}

func TestProcessSetCancelsInFlightTask(t *testing.T) {
	e := newExecutor()
	p := loadable.NewProcess[string](e)

	release := make(chan struct{})
	h := p.Run("save", func(ctx context.Context) error {
		<-release
		return nil // Stale completion; must not clobber the assigned value.
	})
	p.Set(loadable.Finished("elsewhere"))
	close(release)
	h.Wait()

	assert.True(t, p.State().Equal(loadable.Finished("elsewhere")))
}
