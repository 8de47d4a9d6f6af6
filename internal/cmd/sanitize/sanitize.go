// Package sanitize provides the sanitize command: XSS-filtering a document.
package sanitize

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-text-tools/pagefilter/internal/config"
	"github.com/open-text-tools/pagefilter/internal/content"
	"github.com/open-text-tools/pagefilter/pkg/filter"
)

type sanitizeOptions struct {
	tags       []string
	attributes []string
	denylist   bool
	markdown   bool
	format     string
	outputFile string
	configPath string
}

// NewCmdSanitize creates the sanitize command.
func NewCmdSanitize() *cobra.Command {
	opts := &sanitizeOptions{}

	cmd := &cobra.Command{
		Use:   "sanitize [file]",
		Short: "Remove disallowed tags and attributes from a document",
		Long: `Remove disallowed tags and attributes from a document. Tags not in
the allow list are dropped but their content is kept, except script,
style, textarea, xmp and plaintext which disappear entirely. Comments
and doctypes are always removed.

The default policy comes from the config file's sanitize section.`,
		Example: `  # Sanitize with the configured policy
  pfl sanitize page.html

  # Only allow paragraphs and links
  echo '<p onclick="x">hi</p>' | pfl sanitize --tags p,a --attributes href`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			opts.configPath, _ = cmd.Flags().GetString("config")
			return runSanitize(file, opts, nil, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringSliceVar(&opts.tags, "tags", nil, "allowed tag names (default from config)")
	cmd.Flags().StringSliceVar(&opts.attributes, "attributes", nil, "allowed attribute names (default from config)")
	cmd.Flags().BoolVar(&opts.denylist, "attribute-denylist", false, "treat the attribute set as a denylist")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "treat input as markdown")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: html, markdown, text (default from config)")
	cmd.Flags().StringVarP(&opts.outputFile, "output-file", "O", "", "write output to file instead of stdout")

	return cmd
}

func runSanitize(file string, opts *sanitizeOptions, cfg *config.Config, in io.Reader, out io.Writer) error {
	if cfg == nil {
		loaded, err := config.LoadWithEnv(config.PathOrDefault(opts.configPath))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if opts.format == "" {
		opts.format = cfg.OutputFormat
	}

	tags := opts.tags
	if len(tags) == 0 {
		tags = cfg.Sanitize.Tags
	}
	attributes := opts.attributes
	if len(attributes) == 0 {
		attributes = cfg.Sanitize.Attributes
	}
	denylist := opts.denylist || cfg.Sanitize.AttributeDenylist

	input, err := content.Read(file, in)
	if err != nil {
		return err
	}
	doc, err := content.Decode(input, opts.markdown)
	if err != nil {
		return err
	}

	filter.Sanitize(doc, filter.NewPolicy(tags, attributes, denylist))

	output, err := content.Encode(doc, opts.format)
	if err != nil {
		return err
	}
	return content.Write(opts.outputFile, output, out)
}
