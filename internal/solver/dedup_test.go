package solver

import (
	"testing"

	"github.com/jacksmith/kex/internal/graph"
	"github.com/stretchr/testify/assert"
)

func TestDedup_CyclesByDonorSet(t *testing.T) {
	paths := []graph.PathWithScore{
		{Path: graph.Path{0, 1, 2, 0}, Score: 3},
		{Path: graph.Path{1, 2, 0, 1}, Score: 5},
		{Path: graph.Path{2, 1, 0, 2}, Score: 5},
		{Path: graph.Path{0, 1, 0}, Score: 1},
	}

	got := Dedup(paths)
	assert.Equal(t, []graph.PathWithScore{
		{Path: graph.Path{1, 2, 0, 1}, Score: 5},
		{Path: graph.Path{0, 1, 0}, Score: 1},
	}, got)
}

func TestDedup_FirstSeenWinsTies(t *testing.T) {
	paths := []graph.PathWithScore{
		{Path: graph.Path{0, 1, 2, 0}, Score: 2},
		{Path: graph.Path{0, 2, 1, 0}, Score: 2},
	}

	got := Dedup(paths)
	assert.Equal(t, []graph.PathWithScore{{Path: graph.Path{0, 1, 2, 0}, Score: 2}}, got)

	// Reversed input keeps the other one.
	got = Dedup([]graph.PathWithScore{paths[1], paths[0]})
	assert.Equal(t, []graph.PathWithScore{{Path: graph.Path{0, 2, 1, 0}, Score: 2}}, got)
}

func TestDedup_SequencesKeepOrder(t *testing.T) {
	paths := []graph.PathWithScore{
		{Path: graph.Path{4, 0, 1}, Score: 1},
		{Path: graph.Path{4, 1, 0}, Score: 2},
		{Path: graph.Path{4, 0, 1}, Score: 3},
	}

	got := Dedup(paths)
	assert.Equal(t, []graph.PathWithScore{
		{Path: graph.Path{4, 0, 1}, Score: 3},
		{Path: graph.Path{4, 1, 0}, Score: 2},
	}, got)
}

func TestDedup_CycleAndSequenceNeverMerge(t *testing.T) {
	paths := []graph.PathWithScore{
		{Path: graph.Path{0, 1, 0}, Score: 1},
		{Path: graph.Path{0, 1}, Score: 9},
	}
	assert.Len(t, Dedup(paths), 2)
}
