package main

import (
	"fmt"

	"github.com/jacksmith/kex/internal/storage"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new kex workspace",
	Long: `Create a .kex/ directory with an example problem.

The example has four donor-recipient pairs and two non-directed donors.
Solve it with "kex solve example".

Fails if .kex/ already exists in the current directory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := storage.Init("."); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized kex in .kex/\n")
	fmt.Fprintf(out, "Created problem %q\n", storage.ExampleProblem)
	return nil
}
