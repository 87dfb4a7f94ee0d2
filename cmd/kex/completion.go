package main

import (
	"strings"

	"github.com/jacksmith/kex/internal/storage"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for kex.

To load completions:

Bash:
  $ source <(kex completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ kex completion bash > /etc/bash_completion.d/kex
  # macOS:
  $ kex completion bash > $(brew --prefix)/etc/bash_completion.d/kex

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ kex completion zsh > "${fpath[1]}/_kex"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ kex completion fish | source
  # To load completions for each session, execute once:
  $ kex completion fish > ~/.config/fish/completions/kex.fish
`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletionV2(cmd.OutOrStdout(), true)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(cmd.OutOrStdout())
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeProblemNames completes the first argument with problem names,
// described by the first line of their description.
func completeProblemNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	s, err := storage.Open(".")
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names, err := s.ListProblems()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	toCompleteLower := strings.ToLower(toComplete)
	for _, name := range names {
		if !strings.HasPrefix(strings.ToLower(name), toCompleteLower) {
			continue
		}
		p, err := s.LoadProblem(name)
		if err != nil || p.Description == "" {
			completions = append(completions, name)
			continue
		}
		completions = append(completions, name+"\t"+firstLine(p.Description))
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
