package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/kex/internal/cli"
	"github.com/jacksmith/kex/internal/model"
	"github.com/jacksmith/kex/internal/ops"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit NAME",
	Short: "Edit a problem in $EDITOR",
	Long: `Open a problem file in $KEX_EDITOR, $VISUAL or $EDITOR.

The edited problem is validated before it replaces the stored one. If it
has issues they are printed and the stored problem is left unchanged.
Saved results are discarded once the problem changes.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeProblemNames,
	RunE:              runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	s, _, err := openWorkspace()
	if err != nil {
		return err
	}
	name, err := resolveProblem(s, args[0])
	if err != nil {
		return err
	}

	path, err := s.ProblemPath(name)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read problem: %w", err)
	}

	editor, err := cli.EditorFromEnv()
	if err != nil {
		return err
	}
	editor.Stdout = cmd.OutOrStdout()
	editor.Stderr = cmd.ErrOrStderr()
	edited, changed, err := editor.Edit(name+".yaml", content)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !changed {
		fmt.Fprintln(out, "No changes.")
		return nil
	}

	p, err := model.ParseProblem(edited)
	if err != nil {
		return &cli.ValidationError{Field: "problem file", Message: err.Error()}
	}
	issues, err := ops.ReplaceProblem(s, name, p)
	if err != nil {
		return err
	}
	if len(issues) > 0 {
		printIssues(out, issues)
		return fmt.Errorf("edit rejected, %s unchanged", name)
	}

	fmt.Fprintf(out, "Updated %s\n", name)
	return nil
}
