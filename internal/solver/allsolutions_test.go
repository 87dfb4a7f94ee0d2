package solver

import (
	"testing"

	"github.com/jacksmith/kex/internal/graph"
	"github.com/jacksmith/kex/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSolutions_Example(t *testing.T) {
	g := graph.Build(exampleScores, graph.Attributes{})
	limits := model.DefaultLimits()

	matchings := collect(t, AllSolutions(g, limits))
	require.Len(t, matchings, 53)

	keys := make(map[string]bool)
	for _, m := range matchings {
		checkMatching(t, g, limits, m)
		keys[m.Key()] = true
	}
	assert.Len(t, keys, 53, "matchings are not distinct")
}

func TestAllSolutions_TwoDisjointCycles(t *testing.T) {
	g := graph.Build([][]float64{
		{-2, 1, -1, -1},
		{2, -2, -1, -1},
		{-1, -1, -2, 3},
		{-1, -1, 4, -2},
	}, graph.Attributes{})

	matchings := collect(t, AllSolutions(g, model.DefaultLimits()))
	require.Len(t, matchings, 1)
	assert.Equal(t, 4, matchings[0].Len())
	assert.InDelta(t, 10, matchings[0].Score, 1e-9)

	rounds := matchings[0].Rounds(g.OwnRecipients())
	require.Len(t, rounds, 2)
	assert.Equal(t, model.RoundCycle, rounds[0].Kind)
	assert.Equal(t, model.RoundCycle, rounds[1].Kind)
}

func TestAllSolutions_SharedRecipientConflicts(t *testing.T) {
	// Donors 1 and 2 both belong to recipient 1. The cycle 0 -> 1 -> 0 and
	// the sequence 3 -> 2 share no donor but both give to recipient 1.
	g := graph.Build([][]float64{
		{-2, 5},
		{3, -2},
		{-1, -2},
		{-1, 1},
	}, graph.Attributes{})

	matchings := collect(t, AllSolutions(g, model.DefaultLimits()))

	// Every candidate conflicts with every other, so each one is a
	// singleton matching.
	require.Len(t, matchings, 4)
	for _, m := range matchings {
		assert.False(t, m.Overlaps(), "%v", m.Pairs)
	}
}

func TestAllSolutions_MaxMatchings(t *testing.T) {
	g := graph.Build(exampleScores, graph.Attributes{})
	limits := model.DefaultLimits()
	limits.MaxMatchingsInAllSolutionsSolver = 10

	assert.Len(t, collect(t, AllSolutions(g, limits)), 10)
}

func TestAllSolutions_ConsumerStops(t *testing.T) {
	g := graph.Build(exampleScores, graph.Attributes{})

	count := 0
	for _, err := range AllSolutions(g, model.DefaultLimits()) {
		require.NoError(t, err)
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestAllSolutions_TooComplicated(t *testing.T) {
	g := graph.Build(exampleScores, graph.Attributes{})
	limits := model.DefaultLimits()
	limits.MaxCyclesInAllSolutionsSolver = 2

	var errs []error
	produced := 0
	for _, err := range AllSolutions(g, limits) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		produced++
	}
	assert.Zero(t, produced)
	require.Len(t, errs, 1)

	var tooComplicated *TooComplicatedError
	assert.ErrorAs(t, errs[0], &tooComplicated)
}

func TestAllSolutions_Debt(t *testing.T) {
	// Both non-directed donors are from AUT, everything else from CZE, so
	// every sequence moves a kidney from AUT to CZE.
	g := graph.Build(exampleScores, graph.Attributes{
		DonorCountries:     []model.Country{"CZE", "CZE", "CZE", "CZE", "AUT", "AUT"},
		RecipientCountries: []model.Country{"CZE", "CZE", "CZE", "CZE"},
	})
	limits := model.DefaultLimits()
	limits.MaxDebtForCountry = 0

	// Every cycle shares donor 2 with every other, so each cycle is one
	// matching once the sequences are left out.
	matchings := collect(t, AllSolutions(g, limits))
	require.Len(t, matchings, 6)
	for _, m := range matchings {
		for _, p := range m.Pairs {
			assert.False(t, g.IsBridge(p.Donor), "%v uses a non-directed donor", m.Pairs)
		}
	}

	limits.MaxDebtForCountry = 3
	assert.Len(t, collect(t, AllSolutions(g, limits)), 53)
}

func TestAllSolutions_DebtKeepsFeasibleSubsets(t *testing.T) {
	// Sequences 2 -> 0 and 3 -> 1 each move a kidney from AUT to CZE. They
	// are compatible, but together they break the debt limit.
	g := graph.Build([][]float64{
		{-2, -1},
		{-1, -2},
		{1, -1},
		{-1, 1},
	}, graph.Attributes{
		DonorCountries:     []model.Country{"CZE", "CZE", "AUT", "AUT"},
		RecipientCountries: []model.Country{"CZE", "CZE"},
	})
	limits := model.DefaultLimits()
	limits.MaxDebtForCountry = 1

	matchings := collect(t, AllSolutions(g, limits))
	require.Len(t, matchings, 2)
	var pairs []model.Pair
	for _, m := range matchings {
		checkMatching(t, g, limits, m)
		assert.Equal(t, 1, m.Len())
		pairs = append(pairs, m.Pairs...)
	}
	assert.ElementsMatch(t, []model.Pair{{Donor: 2, Recipient: 0}, {Donor: 3, Recipient: 1}}, pairs)

	best := collect(t, Optimize(g, limits))
	require.NotEmpty(t, best)
	assert.Equal(t, matchings[0].Len(), best[0].Len())

	limits.MaxDebtForCountry = 2
	matchings = collect(t, AllSolutions(g, limits))
	require.Len(t, matchings, 1)
	assert.Equal(t, 2, matchings[0].Len())
}

func TestAllSolutions_CountryLimit(t *testing.T) {
	g := graph.Build(exampleScores, graph.Attributes{
		DonorCountries:     []model.Country{"CZE", "AUT", "IL", "CZE", "AUT", "IL"},
		RecipientCountries: []model.Country{"CZE", "AUT", "CZE", "IL"},
	})
	limits := model.DefaultLimits()
	limits.MaxCountriesInRound = 2

	matchings := collect(t, AllSolutions(g, limits))
	require.NotEmpty(t, matchings)
	for _, m := range matchings {
		checkMatching(t, g, limits, m)
	}
}

func TestAllSolutions_NoCandidates(t *testing.T) {
	g := graph.Build([][]float64{
		{-2, -1},
		{-1, -2},
	}, graph.Attributes{})

	assert.Empty(t, collect(t, AllSolutions(g, model.DefaultLimits())))
}
