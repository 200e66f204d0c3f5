package commands

import "github.com/spf13/cobra"

// Completion returns the completion command for shell autocompletion.
func Completion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for rosterkeys.

To load completions:

Bash:
  $ source <(rosterkeys completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ rosterkeys completion bash > /etc/bash_completion.d/rosterkeys
  # macOS:
  $ rosterkeys completion bash > $(brew --prefix)/etc/bash_completion.d/rosterkeys

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ rosterkeys completion zsh > "${fpath[1]}/_rosterkeys"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ rosterkeys completion fish | source
  # To load completions for each session, execute once:
  $ rosterkeys completion fish > ~/.config/fish/completions/rosterkeys.fish

PowerShell:
  PS> rosterkeys completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, run:
  PS> rosterkeys completion powershell > rosterkeys.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
