package solver

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutionLock_TryAcquire(t *testing.T) {
	var l ExecutionLock

	release, err := l.TryAcquire()
	require.NoError(t, err)

	_, err = l.TryAcquire()
	assert.ErrorIs(t, err, ErrSolverAlreadyRunning)

	release()
	release() // second call is a no-op

	release, err = l.TryAcquire()
	require.NoError(t, err)
	release()
}

func TestExecutionLock_RunReleasesOnError(t *testing.T) {
	var l ExecutionLock
	boom := errors.New("boom")

	err := l.Run(func() error { return boom })
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, l.Run(func() error { return nil }))
}

func TestExecutionLock_RunReleasesOnPanic(t *testing.T) {
	var l ExecutionLock

	assert.Panics(t, func() {
		_ = l.Run(func() error { panic("solver bug") })
	})

	release, err := l.TryAcquire()
	require.NoError(t, err)
	release()
}

func TestRunWithSolverLock_Concurrent(t *testing.T) {
	started := make(chan struct{})
	finish := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = RunWithSolverLock(func() error {
			close(started)
			<-finish
			return nil
		})
	}()

	<-started
	err := RunWithSolverLock(func() error {
		t.Error("second solve must not run")
		return nil
	})
	assert.ErrorIs(t, err, ErrSolverAlreadyRunning)

	close(finish)
	wg.Wait()

	assert.NoError(t, RunWithSolverLock(func() error { return nil }))
}
