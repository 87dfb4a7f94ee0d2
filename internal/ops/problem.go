package ops

import (
	"fmt"

	"github.com/jacksmith/kex/internal/model"
)

// ProblemSummary is one line of the problem listing.
type ProblemSummary struct {
	Name        string
	Description string
	Donors      int
	Recipients  int
	Solved      bool
	Solver      string
	Matchings   int
	// Best describes the top-ranked saved matching, if any.
	BestTransplants int
	BestScore       float64
}

// ListProblems summarizes every stored problem and its saved result.
func ListProblems(s Store) ([]ProblemSummary, error) {
	names, err := s.ListProblems()
	if err != nil {
		return nil, err
	}

	summaries := make([]ProblemSummary, 0, len(names))
	for _, name := range names {
		p, err := s.LoadProblem(name)
		if err != nil {
			return nil, err
		}
		sum := ProblemSummary{
			Name:        name,
			Description: p.Description,
			Donors:      len(p.Donors),
			Recipients:  len(p.Recipients),
		}
		if s.ResultExists(name) {
			r, err := s.LoadResult(name)
			if err != nil {
				return nil, err
			}
			sum.Solved = true
			sum.Solver = r.Solver
			sum.Matchings = len(r.Matchings)
			if len(r.Matchings) > 0 {
				sum.BestTransplants = r.Matchings[0].Transplants
				sum.BestScore = r.Matchings[0].Score
			}
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

// DeleteProblem removes a problem and its saved results.
func DeleteProblem(s Store, name string) error {
	if !s.ProblemExists(name) {
		return fmt.Errorf("problem %q not found", name)
	}
	return s.DeleteProblem(name)
}

// ReplaceProblem validates edited problem content and saves it under name.
// The stored problem is left untouched when the edit has issues, and any
// saved result is discarded because it no longer matches the input.
func ReplaceProblem(s Store, name string, p *model.Problem) ([]ValidationError, error) {
	if !s.ProblemExists(name) {
		return nil, fmt.Errorf("problem %q not found", name)
	}
	if p.Name == "" {
		p.Name = name
	}
	if p.Name != name {
		return nil, fmt.Errorf("problem name cannot change from %q to %q", name, p.Name)
	}
	if issues := ValidateProblem(p); len(issues) > 0 {
		return issues, nil
	}
	if err := s.SaveProblem(p); err != nil {
		return nil, err
	}
	if err := s.DeleteResult(name); err != nil {
		return nil, err
	}
	return nil, nil
}
