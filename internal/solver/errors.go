package solver

import (
	"errors"
	"fmt"

	"github.com/jacksmith/kex/internal/graph"
)

// TooComplicatedError is returned when the candidate rounds of a problem
// cannot be enumerated within the configured ceilings.
type TooComplicatedError = graph.TooComplicatedError

// ErrSolverAlreadyRunning is returned when a solve is requested while
// another one holds the execution lock.
var ErrSolverAlreadyRunning = errors.New("solver is already running")

// UnboundedRoundsError is returned when the ILP solver keeps producing
// rounds that break the length or country limits after Limit cuts.
type UnboundedRoundsError struct {
	Limit int
}

func (e *UnboundedRoundsError) Error() string {
	return fmt.Sprintf("cannot find rounds within the length and country limits after %d added constraints", e.Limit)
}
