package loadable_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stateloop/loadable"
)

func TestProcessStateVariants(t *testing.T) {
	var s loadable.ProcessState[string]

	assert.True(t, s.IsIdle(), "zero value is idle")
	_, ok := s.Process()
	assert.False(t, ok, "idle carries no kind")

	s.SetRunning("delete")
	assert.True(t, s.IsRunning())
	assert.True(t, s.IsRunningKind("delete"))
	assert.False(t, s.IsRunningKind("save"))
	kind, ok := s.Process()
	assert.True(t, ok)
	assert.Equal(t, "delete", kind)

	cause := errors.New("boom")
	s.SetFailed("delete", cause)
	assert.True(t, s.IsFailed())
	assert.Same(t, cause, s.Err())

	s.SetFinished("delete")
	assert.True(t, s.IsFinished())
	assert.NoError(t, s.Err())
}

func TestProcessStateConvenienceGuards(t *testing.T) {
	cause := errors.New("boom")

	// Fail and Finish only transition out of running.
	var s loadable.ProcessState[string]
	s.Fail(cause)
	assert.True(t, s.IsIdle())
	s.Finish()
	assert.True(t, s.IsIdle())

	s.SetFinished("save")
	s.Fail(cause)
	assert.True(t, s.IsFinished())

	s.SetRunning("save")
	s.Fail(cause)
	assert.True(t, s.IsFailed())
	kind, _ := s.Process()
	assert.Equal(t, "save", kind, "failing keeps the running kind")

	s.SetRunning("save")
	s.Finish()
	assert.True(t, s.IsFinished())

	// The direct setters bypass the guard.
	s.SetFailed("other", cause)
	assert.True(t, s.IsFailed())
}

func TestProcessStateEqual(t *testing.T) {
	idle := loadable.Idle[string]()
	assert.True(t, idle.Equal(loadable.Idle[string]()))
	assert.False(t, idle.Equal(loadable.Running("x")))

	assert.True(t, loadable.Running("x").Equal(loadable.Running("x")))
	assert.False(t, loadable.Running("x").Equal(loadable.Running("y")))

	// Failed variants compare equal regardless of their causes.
	a := loadable.Failed("x", errors.New("a"))
	b := loadable.Failed("x", errors.New("b"))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(loadable.Failed("y", errors.New("a"))))
}

func TestNewToken(t *testing.T) {
	seen := make(map[loadable.Token]bool)
	for range 100 {
		tok := loadable.NewToken()
		assert.False(t, seen[tok], "tokens must be unique")
		seen[tok] = true
	}
}
