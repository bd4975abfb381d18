package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for bash, zsh, fish, or powershell.

To load completions in your shell session, run:

Bash:
  source <(blogfront completion bash)

Zsh:
  source <(blogfront completion zsh)

Fish:
  blogfront completion fish | source

PowerShell:
  blogfront completion powershell | Out-String | Invoke-Expression

To load completions for every new session, execute once:

Bash:
  blogfront completion bash > /etc/bash_completion.d/blogfront

Zsh:
  blogfront completion zsh > /usr/local/share/zsh/site-functions/_blogfront

Fish:
  blogfront completion fish > ~/.config/fish/completions/blogfront.fish

PowerShell:
  blogfront completion powershell >> $PROFILE
`,
	ValidArgs:   []string{"bash", "zsh", "fish", "powershell"},
	Annotations: map[string]string{standalone: "true"},
	Args:        cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		}
		return fmt.Errorf("unknown shell: %s", args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
