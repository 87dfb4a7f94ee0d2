package main

import (
	"fmt"

	"github.com/jacksmith/kex/internal/ops"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:               "delete NAME",
	Short:             "Delete a problem and its results",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeProblemNames,
	RunE:              runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, _, err := openWorkspace()
	if err != nil {
		return err
	}
	// Deleting requires the full name; no prefix matching.
	if err := ops.DeleteProblem(s, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}
