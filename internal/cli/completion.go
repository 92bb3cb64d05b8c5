package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for pillbox.

To load completions:

Bash:
  $ source <(pillbox completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ pillbox completion bash > /etc/bash_completion.d/pillbox
  # macOS:
  $ pillbox completion bash > $(brew --prefix)/etc/bash_completion.d/pillbox

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ pillbox completion zsh > "${fpath[1]}/_pillbox"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ pillbox completion fish | source

  # To load completions for each session, execute once:
  $ pillbox completion fish > ~/.config/fish/completions/pillbox.fish

PowerShell:
  PS> pillbox completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> pillbox completion powershell > pillbox.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := c.out
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}
