package solver

import (
	"fmt"
	"iter"
	"slices"

	"github.com/jacksmith/kex/internal/graph"
	"github.com/jacksmith/kex/internal/log"
	"github.com/jacksmith/kex/internal/model"
	ggraph "gonum.org/v1/gonum/graph"
)

// AllSolutions enumerates one matching per maximal set of mutually
// compatible rounds. Candidate cycles and sequences are enumerated up
// front, so a TooComplicatedError is reported before any matching.
//
// A maximal set whose combined country debt breaks the debt limits is
// replaced by its subsets that keep the limits and admit no further
// compatible round without breaking them.
//
// Matchings come in clique enumeration order; sorting is left to the
// caller. At most MaxMatchingsInAllSolutionsSolver matchings are produced
// (0 means no cap).
func AllSolutions(g *graph.Graph, limits model.Limits) iter.Seq2[model.Matching, error] {
	return func(yield func(model.Matching, error) bool) {
		paths, err := candidatePaths(g, limits)
		if err != nil {
			yield(model.Matching{}, err)
			return
		}

		cg := compatibilityGraph(g, paths)
		log.Debugf("all solutions: %d candidate rounds, %d compatible pairs of rounds",
			len(paths), cg.Edges().Len())

		produced, reduced := 0, 0
		emit := func(ids []int64) bool {
			if !yield(combine(g, paths, ids), nil) {
				return false
			}
			produced++
			if limits.MaxMatchingsInAllSolutionsSolver > 0 && produced >= limits.MaxMatchingsInAllSolutionsSolver {
				log.Debugf("all solutions: stopped at %d matchings", produced)
				return false
			}
			return true
		}

		// Subsets of different cliques can coincide.
		seen := make(map[string]bool)
		for clique := range MaximalCliques(cg) {
			if debtWithin(paths, clique, limits) {
				if !emit(clique) {
					return
				}
				continue
			}
			reduced++
			for _, sub := range debtFeasibleSubsets(cg, paths, clique, limits) {
				key := fmt.Sprint(sub)
				if seen[key] {
					continue
				}
				seen[key] = true
				if !emit(sub) {
					return
				}
			}
		}
		log.Debugf("all solutions: %d matchings, %d sets reduced for debt", produced, reduced)
	}
}

// candidatePaths enumerates and deduplicates the cycles and sequences
// allowed by limits.
func candidatePaths(g *graph.Graph, limits model.Limits) ([]graph.PathWithScore, error) {
	cycles, err := g.FindCycles(graph.CycleOptions{
		MaxLength:    limits.MaxCycleLength,
		MaxCountries: limits.MaxCountriesInRound,
		MaxCount:     limits.MaxCyclesInAllSolutionsSolver,
	})
	if err != nil {
		return nil, err
	}
	sequences, err := g.FindSequences(graph.SequenceOptions{
		MaxLength:    limits.MaxSequenceLength,
		MaxCountries: limits.MaxCountriesInRound,
		MaxCount:     limits.MaxCyclesInAllSolutionsSolver,
	})
	if err != nil {
		return nil, err
	}
	log.Debugf("all solutions: %d cycles, %d sequences", len(cycles), len(sequences))

	described := make([]graph.PathWithScore, 0, len(cycles)+len(sequences))
	for _, p := range cycles {
		described = append(described, g.Describe(p))
	}
	for _, p := range sequences {
		described = append(described, g.Describe(p))
	}
	return Dedup(described), nil
}

// combine turns a set of compatible rounds into a matching.
func combine(g *graph.Graph, paths []graph.PathWithScore, ids []int64) model.Matching {
	var m model.Matching
	for _, id := range ids {
		for _, pair := range g.Pairs(paths[id].Path) {
			s, _ := g.Score(pair.Donor, pair.Recipient)
			m.Pairs = append(m.Pairs, pair)
			m.Score += s
		}
	}
	return m
}

// debtWithin reports whether the rounds together keep both debt limits.
func debtWithin(paths []graph.PathWithScore, ids []int64, limits model.Limits) bool {
	debt := make(map[model.Country]int)
	debtZero := make(map[model.Country]int)
	for _, id := range ids {
		graph.AddDebt(debt, paths[id].Debt)
		graph.AddDebt(debtZero, paths[id].DebtBloodGroupZero)
	}
	return graph.DebtWithin(debt, limits.MaxDebtForCountry) &&
		graph.DebtWithin(debtZero, limits.MaxDebtForCountryBloodGroupZero)
}

// debtFeasibleSubsets returns the non-empty subsets of clique that keep the
// debt limits and cannot take one more compatible round, from anywhere in
// cg, without breaking them. Subsets are sorted by node ID.
func debtFeasibleSubsets(cg ggraph.Undirected, paths []graph.PathWithScore, clique []int64, limits model.Limits) [][]int64 {
	var out [][]int64
	var walk func(i int, chosen []int64)
	walk = func(i int, chosen []int64) {
		if i == len(clique) {
			if len(chosen) > 0 && debtWithin(paths, chosen, limits) && !extendable(cg, paths, chosen, limits) {
				out = append(out, slices.Clone(chosen))
			}
			return
		}
		walk(i+1, append(chosen, clique[i]))
		walk(i+1, chosen)
	}
	walk(0, make([]int64, 0, len(clique)))
	return out
}

// extendable reports whether some round outside chosen is compatible with
// all of it and keeps the debt limits once added.
func extendable(cg ggraph.Undirected, paths []graph.PathWithScore, chosen []int64, limits model.Limits) bool {
	grown := make([]int64, len(chosen), len(chosen)+1)
	copy(grown, chosen)
	for v := range paths {
		id := int64(v)
		if slices.Contains(chosen, id) {
			continue
		}
		compatible := true
		for _, u := range chosen {
			if !cg.HasEdgeBetween(u, id) {
				compatible = false
				break
			}
		}
		if compatible && debtWithin(paths, append(grown, id), limits) {
			return true
		}
	}
	return false
}
