package graph

import (
	"testing"

	"github.com/jacksmith/kex/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSequences_Example(t *testing.T) {
	g := Build(exampleScores, Attributes{})

	sequences, err := g.FindSequences(SequenceOptions{MaxLength: 4})
	require.NoError(t, err)

	assert.ElementsMatch(t, []Path{
		{4, 0}, {4, 0, 3}, {4, 0, 3, 2}, {4, 0, 3, 2, 1},
		{4, 0, 2}, {4, 0, 2, 1}, {4, 0, 2, 3},
		{4, 1}, {4, 1, 0}, {4, 1, 0, 3}, {4, 1, 0, 3, 2}, {4, 1, 0, 2}, {4, 1, 0, 2, 3},
		{4, 1, 2}, {4, 1, 2, 0}, {4, 1, 2, 0, 3}, {4, 1, 2, 3},
		{4, 2}, {4, 2, 0}, {4, 2, 0, 3}, {4, 2, 1}, {4, 2, 1, 0}, {4, 2, 1, 0, 3}, {4, 2, 3},
		{5, 0}, {5, 0, 3}, {5, 0, 3, 2}, {5, 0, 3, 2, 1},
		{5, 0, 2}, {5, 0, 2, 1}, {5, 0, 2, 3},
		{5, 2}, {5, 2, 0}, {5, 2, 0, 3}, {5, 2, 1}, {5, 2, 1, 0}, {5, 2, 1, 0, 3}, {5, 2, 3},
	}, sequences)
}

func TestFindSequences_MaxLength(t *testing.T) {
	g := Build(exampleScores, Attributes{})

	tests := []struct {
		maxLength int
		want      int
	}{
		{1, 5},
		{2, 17},
		{3, 31},
		{4, 38},
		{0, 38},
	}

	for _, tt := range tests {
		sequences, err := g.FindSequences(SequenceOptions{MaxLength: tt.maxLength})
		require.NoError(t, err)
		assert.Len(t, sequences, tt.want, "max length %d", tt.maxLength)
		for _, s := range sequences {
			assert.False(t, s.IsCycle())
			assert.True(t, g.IsBridge(s[0]))
			if tt.maxLength > 0 {
				assert.LessOrEqual(t, s.Len(), tt.maxLength)
			}
		}
	}
}

func TestFindSequences_ReleasesCoveredDonors(t *testing.T) {
	// Donors 1 and 2 share recipient 1; donor 3 is a bridge donor.
	g := Build([][]float64{
		{-2, 5},
		{3, -2},
		{4, -2},
		{1, 1},
	}, Attributes{})

	sequences, err := g.FindSequences(SequenceOptions{})
	require.NoError(t, err)

	// Donor 0 appears in several sibling branches, and no sequence visits
	// both donors of recipient 1.
	assert.Equal(t, []Path{
		{3, 0}, {3, 0, 1}, {3, 0, 2},
		{3, 1}, {3, 1, 0},
		{3, 2}, {3, 2, 0},
	}, sequences)
}

func TestFindSequences_MaxCountries(t *testing.T) {
	g := Build(exampleScores, Attributes{
		DonorCountries:     []model.Country{"CZE", "CZE", "CZE", "CZE", "CZE", "AUT"},
		RecipientCountries: []model.Country{"CZE", "CZE", "CZE", "CZE"},
	})

	sequences, err := g.FindSequences(SequenceOptions{MaxLength: 4, MaxCountries: 1})
	require.NoError(t, err)
	assert.Len(t, sequences, 24)
	for _, s := range sequences {
		assert.Equal(t, 4, s[0])
	}
}

func TestFindSequences_TooComplicated(t *testing.T) {
	g := Build(exampleScores, Attributes{})

	_, err := g.FindSequences(SequenceOptions{MaxLength: 1, MaxCount: 4})
	var tooComplicated *TooComplicatedError
	require.ErrorAs(t, err, &tooComplicated)
	assert.Equal(t, "sequences", tooComplicated.What)

	sequences, err := g.FindSequences(SequenceOptions{MaxLength: 1, MaxCount: 5})
	require.NoError(t, err)
	assert.Len(t, sequences, 5)
}

func TestFindSequences_NoBridgeDonors(t *testing.T) {
	g := Build([][]float64{
		{-2, 1},
		{1, -2},
	}, Attributes{})

	sequences, err := g.FindSequences(SequenceOptions{MaxLength: 4})
	require.NoError(t, err)
	assert.Empty(t, sequences)
}
