package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jacksmith/kex/internal/cli"
	"github.com/jacksmith/kex/internal/ops"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [NAME]",
	Short: "Check problem integrity",
	Long: `Check one problem, or all problems, for data integrity issues.

Checks for:
- Score matrix shape (one row per donor, one column per recipient)
- Scores that are neither feasible (>= 0) nor a sentinel (-1, -2)
- Duplicate or missing IDs
- Related recipients that do not exist or disagree with the -2 marks
- Unknown donor types and blood groups
- Countries set on some participants but not others

Exits non-zero if any issue is found.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeProblemNames,
	RunE:              runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, _, err := openWorkspace()
	if err != nil {
		return err
	}

	var issues []ops.ValidationError
	if len(args) == 1 {
		name, err := resolveProblem(s, args[0])
		if err != nil {
			return err
		}
		p, err := s.LoadProblem(name)
		if err != nil {
			return err
		}
		issues = ops.ValidateProblem(p)
	} else {
		issues, err = ops.Validate(s)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if len(issues) == 0 {
		fmt.Fprintln(out, cli.Green("No issues found."))
		return nil
	}

	printIssues(out, issues)
	return fmt.Errorf("found %d issue(s)", len(issues))
}

func printIssues(out io.Writer, issues []ops.ValidationError) {
	fmt.Fprintf(out, "Found %d issue(s):\n\n", len(issues))
	for _, e := range issues {
		fmt.Fprintf(out, "%s %s: %s\n", e.ItemID, formatValidationErrorType(e.Type), e.Message)
		if len(e.Details) > 0 {
			fmt.Fprintf(out, "  %s\n", strings.Join(e.Details, ", "))
		}
	}
}

// formatValidationErrorType returns a colored label for the issue type.
func formatValidationErrorType(t ops.ValidationErrorType) string {
	label := "[" + strings.ReplaceAll(string(t), "_", " ") + "]"
	switch t {
	case ops.ValidationErrorShape, ops.ValidationErrorOwnPair:
		return cli.Red(label)
	case ops.ValidationErrorMissingRequired, ops.ValidationErrorCountry:
		return cli.Yellow(label)
	default:
		return cli.Gray(label)
	}
}
