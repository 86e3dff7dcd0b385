package loadable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stateloop/loadable"
)

func TestExecutorRunsJobsInOrder(t *testing.T) {
	var e loadable.Executor

	var got []int
	for i := 1; i <= 3; i++ {
		e.Spawn(func() { got = append(got, i) })
	}
	assert.Empty(t, got, "nothing runs without Run or an autorun function")

	e.Run()
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestExecutorWeights(t *testing.T) {
	var e loadable.Executor

	var got []string
	e.Spawn(func() { got = append(got, "a") })
	e.SpawnWeighted(1, func() { got = append(got, "heavy1") })
	e.Spawn(func() { got = append(got, "b") })
	e.SpawnWeighted(1, func() { got = append(got, "heavy2") })
	e.SpawnWeighted(-1, func() { got = append(got, "light") })
	e.Run()

	// Greater weight first; FIFO among equal weights.
	assert.Equal(t, []string{"heavy1", "heavy2", "a", "b", "light"}, got)
}

func TestExecutorAutorun(t *testing.T) {
	var e loadable.Executor
	e.Autorun(e.Run)

	ran := false
	e.Spawn(func() { ran = true })
	assert.True(t, ran, "autorun drains the queue on spawn")
}

func TestExecutorSpawnFromJob(t *testing.T) {
	var e loadable.Executor
	e.Autorun(e.Run)

	var got []string
	e.Spawn(func() {
		got = append(got, "outer")
		e.Spawn(func() { got = append(got, "inner") })
	})

	assert.Equal(t, []string{"outer", "inner"}, got, "jobs spawned in a job run in the same drain")
}

func TestExecutorNilJobPanics(t *testing.T) {
	var e loadable.Executor
	assert.Panics(t, func() { e.Spawn(nil) })
}
