// Package teaser provides the teaser command: reducing a document to a
// bounded excerpt.
package teaser

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-text-tools/pagefilter/internal/config"
	"github.com/open-text-tools/pagefilter/internal/content"
	"github.com/open-text-tools/pagefilter/pkg/filter"
)

type teaserOptions struct {
	words       int
	tags        int
	endMarker   string
	endURI      string
	endURITitle string
	markdown    bool
	format      string
	outputFile  string
	configPath  string
}

// NewCmdTeaser creates the teaser command.
func NewCmdTeaser() *cobra.Command {
	opts := &teaserOptions{}

	cmd := &cobra.Command{
		Use:   "teaser [file]",
		Short: "Reduce a document to a word/tag-bounded excerpt",
		Long: `Reduce a document to an excerpt bounded by word and tag budgets,
truncating mid-text when the word budget runs out and deleting
everything after the stopping point. An optional end marker (plain text
or a link) is placed where the truncation happened.

Budgets default to the config file's teaser section.`,
		Example: `  # First fifty words
  pfl teaser article.html --words 50

  # With a "read more" link
  pfl teaser article.html --words 50 --end-marker "read more" --end-marker-uri /article`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			opts.configPath, _ = cmd.Flags().GetString("config")
			return runTeaser(file, opts, nil, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&opts.words, "words", 0, "word budget (default from config)")
	cmd.Flags().IntVar(&opts.tags, "tags", 0, "tag budget (default from config)")
	cmd.Flags().StringVar(&opts.endMarker, "end-marker", "", "end marker text (default from config)")
	cmd.Flags().StringVar(&opts.endURI, "end-marker-uri", "", "end marker link target")
	cmd.Flags().StringVar(&opts.endURITitle, "end-marker-title", "", "end marker link title")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "treat input as markdown")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: html, markdown, text (default from config)")
	cmd.Flags().StringVarP(&opts.outputFile, "output-file", "O", "", "write output to file instead of stdout")

	return cmd
}

func runTeaser(file string, opts *teaserOptions, cfg *config.Config, in io.Reader, out io.Writer) error {
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

	budget := filter.TeaserBudget{
		MaxWords:          opts.words,
		MaxTags:           opts.tags,
		EndMarker:         opts.endMarker,
		EndMarkerURI:      opts.endURI,
		EndMarkerURITitle: opts.endURITitle,
	}
	if budget.MaxWords == 0 {
		budget.MaxWords = cfg.Teaser.MaxWords
	}
	if budget.MaxTags == 0 {
		budget.MaxTags = cfg.Teaser.MaxTags
	}
	if budget.EndMarker == "" {
		budget.EndMarker = cfg.Teaser.EndMarker
	}
	if budget.EndMarkerURI == "" {
		budget.EndMarkerURI = cfg.Teaser.EndMarkerURI
	}
	if budget.EndMarkerURITitle == "" {
		budget.EndMarkerURITitle = cfg.Teaser.EndMarkerTitle
	}

	input, err := content.Read(file, in)
	if err != nil {
		return err
	}
	doc, err := content.Decode(input, opts.markdown)
	if err != nil {
		return err
	}

	filter.Reduce(doc, budget)

	output, err := content.Encode(doc, opts.format)
	if err != nil {
		return err
	}
	return content.Write(opts.outputFile, output, out)
}
