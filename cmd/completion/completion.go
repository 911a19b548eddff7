// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewCommand returns the completion command.
func NewCommand(rootCmd *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for the STAF toolkit.

Install instructions:
  Bash:       staf completion bash > /etc/bash_completion.d/staf
              echo 'source <(staf completion bash)' >> ~/.bashrc
  Zsh:        staf completion zsh > ~/.zsh/completions/_staf
  Fish:       staf completion fish > ~/.config/fish/completions/staf.fish
  PowerShell: staf completion powershell >> $PROFILE`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				fmt.Fprintln(os.Stdout, "# STAF toolkit bash completion")
				fmt.Fprintln(os.Stdout, "# Install: staf completion bash > /etc/bash_completion.d/staf")
				fmt.Fprintln(os.Stdout, "# Or:      echo 'source <(staf completion bash)' >> ~/.bashrc")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				fmt.Fprintln(os.Stdout, "# STAF toolkit zsh completion")
				fmt.Fprintln(os.Stdout, "# Install: staf completion zsh > ~/.zsh/completions/_staf")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				fmt.Fprintln(os.Stdout, "# STAF toolkit fish completion")
				fmt.Fprintln(os.Stdout, "# Install: staf completion fish > ~/.config/fish/completions/staf.fish")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				fmt.Fprintln(os.Stdout, "# STAF toolkit PowerShell completion")
				fmt.Fprintln(os.Stdout, "# Install: staf completion powershell >> $PROFILE")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", args[0])
			}
		},
	}
	return cmd
}
