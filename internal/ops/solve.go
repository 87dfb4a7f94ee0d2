package ops

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/jacksmith/kex/internal/graph"
	"github.com/jacksmith/kex/internal/log"
	"github.com/jacksmith/kex/internal/model"
	"github.com/jacksmith/kex/internal/solver"
)

// SolveOptions overrides configuration for a single solve.
// Zero values keep the configured setting.
type SolveOptions struct {
	Solver            string
	MaxCycleLength    int
	MaxSequenceLength int
	// MaxMatchings overrides max_matchings_to_show.
	MaxMatchings int
}

func (o SolveOptions) apply(cfgSolver string, limits model.Limits) (string, model.Limits) {
	if o.Solver != "" {
		cfgSolver = o.Solver
	}
	if o.MaxCycleLength > 0 {
		limits.MaxCycleLength = o.MaxCycleLength
	}
	if o.MaxSequenceLength > 0 {
		limits.MaxSequenceLength = o.MaxSequenceLength
	}
	if o.MaxMatchings > 0 {
		limits.MaxMatchingsToShow = o.MaxMatchings
	}
	return cfgSolver, limits
}

// Solve finds matchings for a stored problem and saves them as its result.
func Solve(s Store, name string, opts SolveOptions) (*model.Result, error) {
	return SolveAt(s, name, opts, time.Now())
}

// SolveAt solves using the specified time as the solve timestamp (useful for testing).
func SolveAt(s Store, name string, opts SolveOptions, now time.Time) (*model.Result, error) {
	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}
	solverName, limits := opts.apply(cfg.Solver, cfg.Limits)
	strategy, err := solver.ParseStrategy(solverName)
	if err != nil {
		return nil, err
	}
	if err := limits.Validate(); err != nil {
		return nil, err
	}

	p, err := s.LoadProblem(name)
	if err != nil {
		return nil, err
	}
	if issues := ValidateProblem(p); len(issues) > 0 {
		return nil, &InvalidProblemError{Name: name, Issues: issues}
	}

	g := graph.FromProblem(p)
	var matchings []model.Matching
	err = solver.RunWithSolverLock(func() error {
		var err error
		matchings, err = collectMatchings(solver.Solve(g, limits, strategy))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("solve %s: %w", name, err)
	}

	if len(matchings) > limits.MaxMatchingsToShow {
		log.Warnf("%s: keeping the best %d of %d matchings (max_matchings_to_show)",
			name, limits.MaxMatchingsToShow, len(matchings))
	}
	result := BuildResult(p, g, strategy, matchings, limits.MaxMatchingsToShow)
	result.Solved = now.UTC()
	if err := s.SaveResult(result); err != nil {
		return nil, err
	}

	if len(result.Matchings) > 0 {
		best := result.Matchings[0]
		log.Infof("solved %s with %s: %d matchings found, %d kept, best has %d transplants scoring %g",
			name, strategy, len(matchings), len(result.Matchings), best.Transplants, best.Score)
	} else {
		log.Infof("solved %s with %s: no matchings", name, strategy)
	}
	return result, nil
}

// collectMatchings drains seq. An error ends the solve and drops the
// matchings produced before it.
func collectMatchings(seq iter.Seq2[model.Matching, error]) ([]model.Matching, error) {
	var matchings []model.Matching
	for m, err := range seq {
		if err != nil {
			return nil, err
		}
		matchings = append(matchings, m)
	}
	return matchings, nil
}

type rankedMatching struct {
	matching model.Matching
	rounds   []model.Round
}

// BuildResult ranks matchings best first and resolves them to participant
// IDs. Matchings are ordered by transplant count, then score, then number
// of rounds, all descending; ties keep solver order. At most limit
// matchings are kept.
func BuildResult(p *model.Problem, g *graph.Graph, strategy solver.Strategy, matchings []model.Matching, limit int) *model.Result {
	own := g.OwnRecipients()
	ranked := make([]rankedMatching, len(matchings))
	for i, m := range matchings {
		ranked[i] = rankedMatching{matching: m, rounds: m.Rounds(own)}
	}
	slices.SortStableFunc(ranked, func(a, b rankedMatching) int {
		if c := cmp.Compare(b.matching.Len(), a.matching.Len()); c != 0 {
			return c
		}
		if c := cmp.Compare(b.matching.Score, a.matching.Score); c != 0 {
			return c
		}
		return cmp.Compare(len(b.rounds), len(a.rounds))
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	result := &model.Result{Problem: p.Name, Solver: strategy.String()}
	for i, rm := range ranked {
		rec := model.MatchingRecord{
			Rank:        i + 1,
			Score:       rm.matching.Score,
			Transplants: rm.matching.Len(),
		}
		for _, round := range rm.rounds {
			rr := model.RoundRecord{Kind: round.Kind.String()}
			for _, pair := range round.Pairs {
				score, _ := g.Score(pair.Donor, pair.Recipient)
				rr.Transplants = append(rr.Transplants, model.TransplantRecord{
					Donor:     p.Donors[pair.Donor].ID,
					Recipient: p.Recipients[pair.Recipient].ID,
					Score:     score,
				})
			}
			rec.Rounds = append(rec.Rounds, rr)
		}
		result.Matchings = append(result.Matchings, rec)
	}
	return result
}
