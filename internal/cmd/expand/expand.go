// Package expand provides the expand command: token filtering a document.
package expand

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/open-text-tools/pagefilter/internal/config"
	"github.com/open-text-tools/pagefilter/internal/content"
	"github.com/open-text-tools/pagefilter/internal/version"
	"github.com/open-text-tools/pagefilter/pkg/filter"
)

type expandOptions struct {
	page       string
	edit       bool
	markdown   bool
	format     string
	outputFile string
	tokens     []string
	verbose    bool
	configPath string
}

// NewCmdExpand creates the expand command.
func NewCmdExpand() *cobra.Command {
	opts := &expandOptions{}

	cmd := &cobra.Command{
		Use:   "expand [file]",
		Short: "Expand [name(args)] tokens in a document",
		Long: `Expand every [name(args)] token found in a document's text and
attribute values. Tokens come from the config file's tokens section,
--token flags, and the built-ins year, date, time and version.

Unknown or malformed tokens are left in place untouched. With no file
argument (or "-") the document is read from stdin.`,
		Example: `  # Expand a page
  pfl expand page.html

  # Define a token on the command line
  echo 'hi [name]' | pfl expand --token name=world

  # Markdown in, markdown out
  pfl expand README.md --markdown --format markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			opts.verbose, _ = cmd.Flags().GetBool("verbose")
			opts.configPath, _ = cmd.Flags().GetString("config")
			return runExpand(file, opts, nil, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.page, "page", "/", "page identity passed to token resolvers")
	cmd.Flags().BoolVar(&opts.edit, "edit", false, "wrap expanded tokens in editor markers")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "treat input as markdown")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: html, markdown, text (default from config)")
	cmd.Flags().StringVarP(&opts.outputFile, "output-file", "O", "", "write output to file instead of stdout")
	cmd.Flags().StringArrayVar(&opts.tokens, "token", nil, "static token definition name=value (repeatable)")

	return cmd
}

func runExpand(file string, opts *expandOptions, cfg *config.Config, in io.Reader, out io.Writer) error {
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

	input, err := content.Read(file, in)
	if err != nil {
		return err
	}
	doc, err := content.Decode(input, opts.markdown)
	if err != nil {
		return err
	}

	f := newFilter(opts, cfg)
	f.Document(opts.page, doc)

	output, err := content.Encode(doc, opts.format)
	if err != nil {
		return err
	}
	return content.Write(opts.outputFile, output, out)
}

// newFilter builds the resolver chain: command-line tokens first, then
// the config file's tokens, then the built-ins.
func newFilter(opts *expandOptions, cfg *config.Config) *filter.Filter {
	var chain filter.Chain

	if defs := parseTokenDefs(opts.tokens); len(defs) > 0 {
		chain = append(chain, filter.StaticResolver(defs))
	}
	if len(cfg.Tokens) > 0 {
		chain = append(chain, filter.StaticResolver(cfg.Tokens))
	}
	chain = append(chain, builtinResolver())

	var fopts []filter.Option
	if opts.edit || cfg.EditMode {
		fopts = append(fopts, filter.WithEditMode())
	}
	if opts.verbose {
		if log, err := zap.NewDevelopment(); err == nil {
			fopts = append(fopts, filter.WithLogger(log))
		}
	}
	return filter.New(chain, fopts...)
}

func parseTokenDefs(defs []string) map[string]string {
	tokens := make(map[string]string, len(defs))
	for _, def := range defs {
		name, value, ok := strings.Cut(def, "=")
		if !ok {
			continue
		}
		tokens[name] = value
	}
	return tokens
}

// builtinResolver supplies the tokens every installation has.
func builtinResolver() filter.Resolver {
	return filter.ResolverFunc(func(_ string, _ *html.Node, tok *filter.Token) filter.Resolution {
		now := time.Now()
		switch tok.Name {
		case "year":
			return filter.Resolution{Found: true, Replacement: now.Format("2006")}
		case "date":
			layout := "2006-01-02"
			if p, ok := tok.Arg(0); ok && p.Type == filter.ParamString {
				layout = p.Value
			}
			return filter.Resolution{Found: true, Replacement: now.Format(layout)}
		case "time":
			return filter.Resolution{Found: true, Replacement: now.Format("15:04:05")}
		case "version":
			return filter.Resolution{Found: true, Replacement: version.Version}
		}
		return filter.Resolution{}
	})
}
