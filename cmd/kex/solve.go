package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jacksmith/kex/internal/cli"
	"github.com/jacksmith/kex/internal/model"
	"github.com/jacksmith/kex/internal/ops"
	"github.com/spf13/cobra"
)

// solvePreview is the number of matchings printed after a solve.
const solvePreview = 10

var solveCmd = &cobra.Command{
	Use:   "solve NAME",
	Short: "Find matchings for a problem",
	Long: `Solve a problem and save the matchings to .kex/results/NAME.yaml.

Solvers:
  all_solutions  every maximal matching of the candidate cycles and sequences
  ilp            the best matchings one by one, by transplants then score

Matchings are ranked by number of transplants, then score, then number of
rounds, and at most max_matchings_to_show are kept. Flags override the
settings in .kexconfig.yaml for this solve only.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeProblemNames,
	RunE:              runSolve,
}

var (
	solveSolver            string
	solveMaxCycleLength    int
	solveMaxSequenceLength int
	solveLimit             int
)

func init() {
	solveCmd.Flags().StringVarP(&solveSolver, "solver", "s", "", "solver to use (all_solutions, ilp)")
	solveCmd.Flags().IntVar(&solveMaxCycleLength, "max-cycle-length", 0, "longest cycle, in transplants")
	solveCmd.Flags().IntVar(&solveMaxSequenceLength, "max-sequence-length", 0, "longest sequence, in transplants")
	solveCmd.Flags().IntVarP(&solveLimit, "limit", "n", 0, "number of matchings to keep")
	solveCmd.RegisterFlagCompletionFunc("solver", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"all_solutions", "ilp"}, cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	s, _, err := openWorkspace()
	if err != nil {
		return err
	}
	name, err := resolveProblem(s, args[0])
	if err != nil {
		return err
	}

	for _, f := range []struct {
		name  string
		value int
	}{
		{"max-cycle-length", solveMaxCycleLength},
		{"max-sequence-length", solveMaxSequenceLength},
		{"limit", solveLimit},
	} {
		if f.value < 0 {
			return &cli.ValidationError{Field: f.name, Message: "must not be negative"}
		}
	}

	result, err := ops.Solve(s, name, ops.SolveOptions{
		Solver:            solveSolver,
		MaxCycleLength:    solveMaxCycleLength,
		MaxSequenceLength: solveMaxSequenceLength,
		MaxMatchings:      solveLimit,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(result.Matchings) == 0 {
		fmt.Fprintf(out, "No matchings for %s (%s).\n", name, result.Solver)
		return nil
	}
	fmt.Fprintf(out, "Solved %s with %s: %d matching(s) saved.\n\n", name, result.Solver, len(result.Matchings))
	renderMatchingTable(out, result.Matchings, solvePreview)
	if len(result.Matchings) > solvePreview {
		fmt.Fprintln(out, cli.Gray(fmt.Sprintf("... %d more (kex show %s --top %d)",
			len(result.Matchings)-solvePreview, name, len(result.Matchings))))
	}
	return nil
}

// renderMatchingTable prints one summary line per matching, up to limit.
func renderMatchingTable(out io.Writer, matchings []model.MatchingRecord, limit int) {
	table := cli.NewTable("RANK", "TRANSPLANTS", "SCORE", "CYCLES", "SEQUENCES")
	for col := range 5 {
		table.AlignRight(col)
	}
	for i, m := range matchings {
		if i == limit {
			break
		}
		cycles, sequences := 0, 0
		for _, r := range m.Rounds {
			if r.Kind == model.RoundCycle.String() {
				cycles++
			} else {
				sequences++
			}
		}
		table.AddRow(
			strconv.Itoa(m.Rank),
			strconv.Itoa(m.Transplants),
			cli.FormatScore(m.Score),
			strconv.Itoa(cycles),
			strconv.Itoa(sequences),
		)
	}
	table.Render(out)
}
