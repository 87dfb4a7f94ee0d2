// Package solver finds kidney exchange matchings: sets of disjoint cycles
// and sequences of transplants over a compatibility graph.
//
// Two strategies are available. StrategyAllSolutions enumerates every
// maximal combination of compatible rounds. StrategyILP finds the best
// matchings with an integer program.
package solver

import (
	"fmt"
	"iter"

	"github.com/jacksmith/kex/internal/graph"
	"github.com/jacksmith/kex/internal/model"
)

// Strategy selects how matchings are searched for.
type Strategy int

const (
	StrategyAllSolutions Strategy = iota
	StrategyILP
)

// Strategy names as used in configuration.
const (
	AllSolutionsName = "all_solutions"
	ILPName          = "ilp"
)

func (s Strategy) String() string {
	switch s {
	case StrategyAllSolutions:
		return AllSolutionsName
	case StrategyILP:
		return ILPName
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a configuration name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case AllSolutionsName:
		return StrategyAllSolutions, nil
	case ILPName:
		return StrategyILP, nil
	default:
		return 0, fmt.Errorf("unknown solver %q (valid: %s, %s)", name, AllSolutionsName, ILPName)
	}
}

// Solve returns the matchings of g found by strategy. The sequence is
// lazy: work happens while the caller ranges over it. An error is the
// last element of the sequence and invalidates the matchings before it.
func Solve(g *graph.Graph, limits model.Limits, strategy Strategy) iter.Seq2[model.Matching, error] {
	switch strategy {
	case StrategyILP:
		return Optimize(g, limits)
	case StrategyAllSolutions:
		return AllSolutions(g, limits)
	default:
		panic(fmt.Sprintf("solver: unknown strategy %d", int(strategy)))
	}
}
