// Package slug provides the slug command: URI and filename sanitizing.
package slug

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/open-text-tools/pagefilter/internal/view"
	"github.com/open-text-tools/pagefilter/pkg/filter"
)

type slugOptions struct {
	filename  bool
	extension string
	output    string
	noColor   bool
}

// NewCmdSlug creates the slug command.
func NewCmdSlug() *cobra.Command {
	opts := &slugOptions{}

	cmd := &cobra.Command{
		Use:   "slug <text>...",
		Short: "Reduce text to a URI segment or filename",
		Long: `Reduce text to characters safe in a URI segment: spaces become
dashes, anything else outside [0-9a-zA-Z_-] is dropped, doubled and
leading dashes are cleaned up.

With --filename the input is treated as a filename instead: path
prefixes are stripped, the name is lowercased, and --ext forces the
extension. Hidden filenames (leading dot) are refused.`,
		Example: `  # URI segment
  pfl slug "Hello World!"

  # Filename with forced extension
  pfl slug --filename --ext png "My Photo.JPG"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runSlug(args, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.filename, "filename", false, "sanitize as a filename instead of a URI segment")
	cmd.Flags().StringVar(&opts.extension, "ext", "", "force this filename extension (with --filename)")
	cmd.Flags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.Flags().Bool("no-color", false, "disable colored output")

	return cmd
}

func runSlug(args []string, opts *slugOptions, out io.Writer) error {
	if opts.output == "" {
		opts.output = "table"
	}
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(out)

	rows := make([][]string, 0, len(args))
	for _, arg := range args {
		var result, status string
		if opts.filename {
			name, valid := filter.FilterFilename(arg, opts.extension)
			result = name
			status = "ok"
			if !valid {
				status = "refused"
			}
		} else {
			uri, unchanged := filter.FilterURI(arg)
			result = uri
			status = "changed"
			if unchanged {
				status = "unchanged"
			}
		}
		rows = append(rows, []string{arg, result, status})
	}

	renderer.RenderTable([]string{"INPUT", "RESULT", "STATUS"}, rows)
	return nil
}
