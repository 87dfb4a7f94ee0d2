package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jacksmith/kex/internal/cli"
	"github.com/jacksmith/kex/internal/model"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show saved matchings of a problem",
	Long: `Show the matchings saved by the last "kex solve NAME".

Each matching lists its rounds. A cycle closes back on its first donor's
recipient; a sequence starts at a non-directed or bridge donor.

By default the best 3 matchings are shown in full.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeProblemNames,
	RunE:              runShow,
}

var (
	showTop     int
	showRank    int
	showSummary bool
)

func init() {
	showCmd.Flags().IntVarP(&showTop, "top", "t", 3, "number of matchings to show")
	showCmd.Flags().IntVarP(&showRank, "rank", "r", 0, "show only the matching with this rank")
	showCmd.Flags().BoolVar(&showSummary, "summary", false, "one line per matching instead of full rounds")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	s, _, err := openWorkspace()
	if err != nil {
		return err
	}
	name, err := resolveProblem(s, args[0])
	if err != nil {
		return err
	}
	if !s.ResultExists(name) {
		return &cli.NotFoundError{Type: "result", ID: name}
	}
	result, err := s.LoadResult(name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d matching(s) from %s", name, len(result.Matchings), result.Solver)
	if !result.Solved.IsZero() {
		fmt.Fprintf(out, " at %s", result.Solved.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(out)

	matchings := result.Matchings
	if showRank > 0 {
		if showRank > len(matchings) {
			return &cli.NotFoundError{Type: "matching", ID: fmt.Sprintf("#%d", showRank)}
		}
		matchings = matchings[showRank-1 : showRank]
	} else if showTop >= 0 && showTop < len(matchings) {
		matchings = matchings[:showTop]
	}

	fmt.Fprintln(out)
	if showSummary {
		renderMatchingTable(out, matchings, len(matchings))
		return nil
	}
	for _, m := range matchings {
		renderMatching(out, m)
	}
	return nil
}

// renderMatching prints a matching with one line per round.
func renderMatching(out io.Writer, m model.MatchingRecord) {
	fmt.Fprintf(out, "#%d  %s  score %s\n", m.Rank, pluralize(m.Transplants, "transplant"), cli.FormatScore(m.Score))
	for _, r := range m.Rounds {
		steps := make([]string, len(r.Transplants))
		for i, t := range r.Transplants {
			steps[i] = fmt.Sprintf("%s -> %s %s", t.Donor, t.Recipient, cli.Gray("("+cli.FormatScore(t.Score)+")"))
		}
		kind := cli.Green(r.Kind)
		if r.Kind == model.RoundSequence.String() {
			kind = cli.Yellow(r.Kind)
		}
		fmt.Fprintf(out, "  %s  %s\n", kind, strings.Join(steps, ", "))
	}
	fmt.Fprintln(out)
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
