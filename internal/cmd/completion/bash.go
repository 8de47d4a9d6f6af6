package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdBash creates the bash completion command.
func NewCmdBash() *cobra.Command {
	return &cobra.Command{
		Use:   "bash",
		Short: "Generate bash completion script",
		Long: `Generate bash completion script for pfl.

To load completions in your current shell session:

  source <(pfl completion bash)

To load completions for every new session:

  # Linux
  pfl completion bash > /etc/bash_completion.d/pfl

  # macOS (requires bash-completion)
  pfl completion bash > $(brew --prefix)/etc/bash_completion.d/pfl`,
		Example: `  # Load in current session
  source <(pfl completion bash)

  # Install permanently (Linux)
  pfl completion bash | sudo tee /etc/bash_completion.d/pfl > /dev/null

  # Install permanently (macOS with Homebrew)
  pfl completion bash > $(brew --prefix)/etc/bash_completion.d/pfl`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		},
	}
}
