// Package root provides the root command for the pfl CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-text-tools/pagefilter/internal/cmd/completion"
	"github.com/open-text-tools/pagefilter/internal/cmd/expand"
	initcmd "github.com/open-text-tools/pagefilter/internal/cmd/init"
	"github.com/open-text-tools/pagefilter/internal/cmd/sanitize"
	"github.com/open-text-tools/pagefilter/internal/cmd/slug"
	"github.com/open-text-tools/pagefilter/internal/cmd/teaser"
	"github.com/open-text-tools/pagefilter/internal/version"
)

// NewCmdRoot creates the root command for pfl.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pfl",
		Short: "A command-line page content filter",
		Long: `pfl is a CLI tool for filtering page content.

It expands [name(args)] tokens in HTML or markdown documents,
sanitizes untrusted markup against a tag and attribute policy,
reduces full pages to teasers, and slugifies names for URIs and
filenames.

Get started by running: pfl init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/pfl/config.yml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log filter internals to stderr")

	// Set version template
	cmd.SetVersionTemplate("pfl version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(expand.NewCmdExpand())
	cmd.AddCommand(sanitize.NewCmdSanitize())
	cmd.AddCommand(teaser.NewCmdTeaser())
	cmd.AddCommand(slug.NewCmdSlug())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
