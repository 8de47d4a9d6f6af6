package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdFish creates the fish completion command.
func NewCmdFish() *cobra.Command {
	return &cobra.Command{
		Use:   "fish",
		Short: "Generate fish completion script",
		Long: `Generate fish completion script for pfl.

To load completions in your current shell session:

  pfl completion fish | source

To load completions for every new session:

  pfl completion fish > ~/.config/fish/completions/pfl.fish`,
		Example: `  # Load in current session
  pfl completion fish | source

  # Install permanently
  pfl completion fish > ~/.config/fish/completions/pfl.fish`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
	}
}
