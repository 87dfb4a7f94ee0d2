package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jacksmith/kex/internal/cli"
	"github.com/jacksmith/kex/internal/ops"
	"github.com/spf13/cobra"
)

var problemsCmd = &cobra.Command{
	Use:   "problems",
	Short: "List problems",
	Long: `List all problems with their size and the best saved matching.

Unsolved problems are shown in yellow.`,
	Args: cobra.NoArgs,
	RunE: runProblems,
}

func init() {
	rootCmd.AddCommand(problemsCmd)
}

func runProblems(cmd *cobra.Command, args []string) error {
	s, _, err := openWorkspace()
	if err != nil {
		return err
	}

	summaries, err := ops.ListProblems(s)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No problems.")
		return nil
	}

	table := cli.NewTable("NAME", "DONORS", "RECIPIENTS", "STATUS", "BEST", "DESCRIPTION")
	table.AlignRight(1)
	table.AlignRight(2)
	table.SetMaxWidth(5, cli.DefaultMaxDescriptionWidth)
	for _, sum := range summaries {
		status := cli.Yellow("unsolved")
		best := "-"
		if sum.Solved {
			status = cli.Green(sum.Solver)
			if sum.Matchings > 0 {
				best = fmt.Sprintf("%d/%s", sum.BestTransplants, cli.FormatScore(sum.BestScore))
			}
		}
		table.AddRow(
			sum.Name,
			strconv.Itoa(sum.Donors),
			strconv.Itoa(sum.Recipients),
			status,
			best,
			firstLine(sum.Description),
		)
	}
	table.Render(out)
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
