// Package config provides configuration management for pfl.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SanitizeConfig is the tag/attribute policy applied by pfl sanitize.
type SanitizeConfig struct {
	Tags              []string `yaml:"tags,omitempty"`
	Attributes        []string `yaml:"attributes,omitempty"`
	AttributeDenylist bool     `yaml:"attribute_denylist,omitempty"`
}

// TeaserConfig holds the default teaser budget for pfl teaser.
type TeaserConfig struct {
	MaxWords       int    `yaml:"max_words,omitempty"`
	MaxTags        int    `yaml:"max_tags,omitempty"`
	EndMarker      string `yaml:"end_marker,omitempty"`
	EndMarkerURI   string `yaml:"end_marker_uri,omitempty"`
	EndMarkerTitle string `yaml:"end_marker_title,omitempty"`
}

// Config holds the pfl configuration.
type Config struct {
	// Tokens are static token definitions available to pfl expand, in
	// addition to the built-in ones.
	Tokens map[string]string `yaml:"tokens,omitempty"`

	// EditMode wraps expanded tokens in editor markers by default.
	EditMode bool `yaml:"edit_mode,omitempty"`

	Sanitize SanitizeConfig `yaml:"sanitize,omitempty"`
	Teaser   TeaserConfig   `yaml:"teaser,omitempty"`

	// OutputFormat is the default output format: html, markdown or text.
	OutputFormat string `yaml:"output_format,omitempty"`
}

// Default returns the configuration used when no config file exists: a
// conservative sanitize policy and a five-hundred-word teaser.
func Default() *Config {
	return &Config{
		Sanitize: SanitizeConfig{
			Tags: []string{
				"h1", "h2", "h3", "h4", "h5", "h6",
				"p", "br", "hr", "blockquote", "pre", "code",
				"b", "i", "em", "strong", "u", "s", "sub", "sup",
				"a", "img", "ul", "ol", "li", "dl", "dt", "dd",
				"table", "thead", "tbody", "tfoot", "tr", "th", "td",
				"div", "span",
			},
			Attributes: []string{"href", "title", "alt", "src", "class"},
		},
		Teaser: TeaserConfig{
			MaxWords:  500,
			MaxTags:   100,
			EndMarker: "...",
		},
		OutputFormat: "html",
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case "", "html", "markdown", "text":
	default:
		return fmt.Errorf("output_format must be html, markdown or text, got %q", c.OutputFormat)
	}
	if c.Teaser.MaxWords < 0 {
		return fmt.Errorf("teaser.max_words must not be negative")
	}
	if c.Teaser.MaxTags < 0 {
		return fmt.Errorf("teaser.max_tags must not be negative")
	}
	return nil
}

// LoadFromEnv overrides configuration from environment variables.
// Variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if format := os.Getenv("PFL_OUTPUT_FORMAT"); format != "" {
		c.OutputFormat = format
	}
	if edit := os.Getenv("PFL_EDIT_MODE"); edit != "" {
		if v, err := strconv.ParseBool(edit); err == nil {
			c.EditMode = v
		}
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "pfl", "config.yml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".pfl", "config.yml")
	}
	return filepath.Join(home, ".config", "pfl", "config.yml")
}

// PathOrDefault returns path when set, falling back to DefaultConfigPath.
func PathOrDefault(path string) string {
	if path != "" {
		return path
	}
	return DefaultConfigPath()
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// LoadWithEnv loads configuration from file, falling back to defaults
// when the file does not exist, and applies environment overrides.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		cfg = Default()
	}
	cfg.LoadFromEnv()
	return cfg, nil
}
