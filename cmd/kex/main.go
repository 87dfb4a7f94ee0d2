// Package main is the entry point for the kex CLI.
package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/kex/internal/cli"
	"github.com/jacksmith/kex/internal/log"
	"github.com/jacksmith/kex/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kex",
	Short: "kex - a kidney exchange matching solver",
	Long: `kex finds matchings for kidney paired donation.

Problems are score matrices between donors and recipients, stored as YAML
in .kex/problems/. kex enumerates the cycles and sequences of transplants
the limits allow and either lists every maximal matching or searches for
the best ones with an integer program.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Show help when no subcommand is provided
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var logLevel string

func init() {
	// Our own completion command completes problem names
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides log_level in .kexconfig.yaml")

	rootCmd.SetVersionTemplate("kex version {{.Version}}\n")
}

// openWorkspace opens .kex/ in the current directory and loads
// .kexconfig.yaml, applying its log level unless --log-level is set.
func openWorkspace() (*storage.Storage, *storage.Config, error) {
	s, err := storage.Open(".")
	if err != nil {
		return nil, nil, err
	}
	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	if logLevel != "" {
		if err := log.SetLevel(logLevel); err != nil {
			return nil, nil, &cli.ValidationError{Field: "log-level", Message: err.Error()}
		}
	} else if err := log.SetLevel(cfg.LogLevel); err != nil {
		return nil, nil, fmt.Errorf("invalid %s: %w", s.ConfigPath(), err)
	}
	return s, cfg, nil
}

// resolveProblem expands a possibly abbreviated problem name.
func resolveProblem(s *storage.Storage, prefix string) (string, error) {
	names, err := s.ListProblems()
	if err != nil {
		return "", err
	}
	return cli.MatchName("problem", prefix, names)
}
