package solver

import "sync"

// ExecutionLock allows at most one solve at a time. A second caller fails
// immediately with ErrSolverAlreadyRunning instead of waiting.
type ExecutionLock struct {
	mu sync.Mutex
}

// TryAcquire takes the lock or returns ErrSolverAlreadyRunning.
// The returned release func may be called more than once.
func (l *ExecutionLock) TryAcquire() (release func(), err error) {
	if !l.mu.TryLock() {
		return nil, ErrSolverAlreadyRunning
	}
	var once sync.Once
	return func() { once.Do(l.mu.Unlock) }, nil
}

// Run calls fn while holding the lock. The lock is released when fn
// returns or panics.
func (l *ExecutionLock) Run(fn func() error) error {
	release, err := l.TryAcquire()
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

var solverLock ExecutionLock

// RunWithSolverLock runs fn under the process-wide solver lock.
func RunWithSolverLock(fn func() error) error {
	return solverLock.Run(fn)
}
