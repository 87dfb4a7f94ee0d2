package ops

import (
	"github.com/jacksmith/kex/internal/model"
	"github.com/jacksmith/kex/internal/storage"
)

// Store defines the persistence interface required by business logic operations.
// The concrete implementation is storage.Storage, but this interface allows
// alternative backends for testing.
type Store interface {
	LoadProblem(name string) (*model.Problem, error)
	SaveProblem(p *model.Problem) error
	ListProblems() ([]string, error)
	DeleteProblem(name string) error
	ProblemExists(name string) bool
	LoadResult(name string) (*model.Result, error)
	SaveResult(r *model.Result) error
	DeleteResult(name string) error
	ResultExists(name string) bool
	LoadConfig() (*storage.Config, error)
}

var _ Store = (*storage.Storage)(nil)
