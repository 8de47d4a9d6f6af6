// Package init provides the init command for pfl.
package init

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-text-tools/pagefilter/internal/config"
)

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize pfl configuration",
		Long: `Initialize pfl with a configuration file.

This command walks you through the default output format, the teaser
budget and the token editor markers, and saves the result to
~/.config/pfl/config.yml. The sanitize policy starts from a
conservative allow list you can edit in the file afterwards.`,
		Example: `  # Interactive setup
  pfl init

  # Pre-select the output format
  pfl init --format markdown`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runInit(config.PathOrDefault(configPath), format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "default output format (html, markdown, text)")

	return cmd
}

func runInit(configPath, prefillFormat string) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	cfg := config.Default()
	if prefillFormat != "" {
		cfg.OutputFormat = prefillFormat
	}

	maxWords := strconv.Itoa(cfg.Teaser.MaxWords)
	maxTags := strconv.Itoa(cfg.Teaser.MaxTags)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default output format").
				Options(
					huh.NewOption("HTML", "html"),
					huh.NewOption("Markdown", "markdown"),
					huh.NewOption("Plain text", "text"),
				).
				Value(&cfg.OutputFormat),

			huh.NewInput().
				Title("Teaser word budget").
				Description("Maximum words kept by pfl teaser").
				Value(&maxWords).
				Validate(validatePositiveInt),

			huh.NewInput().
				Title("Teaser tag budget").
				Description("Maximum elements kept by pfl teaser").
				Value(&maxTags).
				Validate(validatePositiveInt),

			huh.NewInput().
				Title("Teaser end marker").
				Description("Text appended where a teaser is cut (empty for none)").
				Value(&cfg.Teaser.EndMarker),

			huh.NewConfirm().
				Title("Edit mode").
				Description("Wrap expanded tokens in editor markers by default").
				Value(&cfg.EditMode),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Teaser.MaxWords, _ = strconv.Atoi(maxWords)
	cfg.Teaser.MaxTags, _ = strconv.Atoi(maxTags)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("\nYou're all set! Try running:")
	fmt.Println("  echo 'hi [name]' | pfl expand --token name=world")
	fmt.Println("  pfl teaser article.html --words 50")

	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
