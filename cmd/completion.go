package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for stashlens.

To load completions:

Bash:
  $ source <(stashlens completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ stashlens completion bash > /etc/bash_completion.d/stashlens
  # macOS:
  $ stashlens completion bash > $(brew --prefix)/etc/bash_completion.d/stashlens

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ stashlens completion zsh > "${fpath[1]}/_stashlens"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ stashlens completion fish | source

  # To load completions for each session, execute once:
  $ stashlens completion fish > ~/.config/fish/completions/stashlens.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
