package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProblem(t *testing.T) {
	content := `name: small
description: |
  Two pairs from two countries.
  Scores from the March run.
donors:
  - id: D1
    country: CZE
    blood_group: "0"
    type: donor
    related_recipient: R1
  - id: D2
    country: AUT
    blood_group: A
    type: donor
    related_recipient: R2
  - id: N1
    country: CZE
    type: non_directed
recipients:
  - id: R1
    country: CZE
    blood_group: A
  - id: R2
    country: AUT
    blood_group: B
scores:
  - [-2, 7.5]
  - [3, -2]
  - [0, -1]
`
	path := filepath.Join(t.TempDir(), "small.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	p, err := LoadProblem(path)
	require.NoError(t, err)

	assert.Equal(t, "small", p.Name)
	assert.Equal(t, "Two pairs from two countries.\nScores from the March run.\n", p.Description)
	require.Len(t, p.Donors, 3)
	assert.Equal(t, Donor{ID: "D1", Country: "CZE", BloodGroup: BloodGroupZero, Type: DonorTypeDonor, RelatedRecipient: "R1"}, p.Donors[0])
	assert.Equal(t, DonorTypeNonDirected, p.Donors[2].Type)
	assert.Equal(t, []Country{"CZE", "AUT", "CZE"}, p.DonorCountries())
	assert.Equal(t, []Country{"CZE", "AUT"}, p.RecipientCountries())
	assert.Equal(t, []BloodGroup{"0", "A", ""}, p.DonorBloodGroups())
	assert.Equal(t, [][]float64{{-2, 7.5}, {3, -2}, {0, -1}}, p.Scores)
}

func TestLoadProblem_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadProblem(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read problem file")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("scores: [[1, 2]\n"), 0644))
	_, err = LoadProblem(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse problem file")
}

func TestSaveProblem_Format(t *testing.T) {
	p := &Problem{
		Name: "fmt",
		Donors: []Donor{
			{ID: "D1", BloodGroup: "0", Type: DonorTypeDonor, RelatedRecipient: "R1"},
			{ID: "007"},
		},
		Recipients: []Recipient{{ID: "R1"}},
		Scores:     [][]float64{{-2}, {0.25}},
	}
	path := filepath.Join(t.TempDir(), "fmt.yaml")
	require.NoError(t, SaveProblem(path, p))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	// One flow-style row per donor.
	assert.Contains(t, out, "- [-2]\n")
	assert.Contains(t, out, "- [0.25]\n")
	// Numeric-looking IDs and blood group 0 stay strings.
	assert.True(t, strings.Contains(out, `"0"`) || strings.Contains(out, "'0'"))

	loaded, err := LoadProblem(path)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}

func TestSaveProblem_MultilineDescription(t *testing.T) {
	p := &Problem{Name: "m", Description: "line one\nline two\n"}
	path := filepath.Join(t.TempDir(), "m.yaml")
	require.NoError(t, SaveProblem(path, p))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "description: |")

	loaded, err := LoadProblem(path)
	require.NoError(t, err)
	assert.Equal(t, p.Description, loaded.Description)
}

func TestResultRoundTrip(t *testing.T) {
	r := &Result{
		Problem: "small",
		Solver:  "all_solutions",
		Solved:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Matchings: []MatchingRecord{{
			Rank:        1,
			Score:       10.5,
			Transplants: 2,
			Rounds: []RoundRecord{{
				Kind: "cycle",
				Transplants: []TransplantRecord{
					{Donor: "D1", Recipient: "R2", Score: 7.5},
					{Donor: "D2", Recipient: "R1", Score: 3},
				},
			}},
		}},
	}
	path := filepath.Join(t.TempDir(), "small.yaml")
	require.NoError(t, SaveResult(path, r))

	loaded, err := LoadResult(path)
	require.NoError(t, err)
	assert.Equal(t, r, loaded)

	_, err = LoadResult(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestParseProblem(t *testing.T) {
	p, err := ParseProblem([]byte("name: x\nscores:\n  - [-2]\n"))
	require.NoError(t, err)
	assert.Equal(t, "x", p.Name)
	assert.Equal(t, [][]float64{{-2}}, p.Scores)

	_, err = ParseProblem([]byte("name: x\nscore: [[1]]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "score")

	// An empty document is an empty problem.
	p, err = ParseProblem(nil)
	require.NoError(t, err)
	assert.Empty(t, p.Name)
}
