package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "empty config valid",
			config:  Config{},
			wantErr: false,
		},
		{
			name:    "html format",
			config:  Config{OutputFormat: "html"},
			wantErr: false,
		},
		{
			name:    "markdown format",
			config:  Config{OutputFormat: "markdown"},
			wantErr: false,
		},
		{
			name:    "unknown format",
			config:  Config{OutputFormat: "pdf"},
			wantErr: true,
			errMsg:  "output_format must be",
		},
		{
			name:    "negative word budget",
			config:  Config{Teaser: TeaserConfig{MaxWords: -1}},
			wantErr: true,
			errMsg:  "max_words",
		},
		{
			name:    "negative tag budget",
			config:  Config{Teaser: TeaserConfig{MaxTags: -5}},
			wantErr: true,
			errMsg:  "max_tags",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg := &Config{
		Tokens:       map[string]string{"sitename": "Example"},
		EditMode:     true,
		Sanitize:     SanitizeConfig{Tags: []string{"p", "a"}, Attributes: []string{"href"}},
		Teaser:       TeaserConfig{MaxWords: 50, MaxTags: 10, EndMarker: "..."},
		OutputFormat: "markdown",
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_LoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestConfig_LoadWithEnvFallsBackToDefaults(t *testing.T) {
	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Sanitize.Tags)
	assert.Equal(t, "html", cfg.OutputFormat)
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("PFL_OUTPUT_FORMAT", "markdown")
	t.Setenv("PFL_EDIT_MODE", "true")

	cfg := Default()
	cfg.LoadFromEnv()
	assert.Equal(t, "markdown", cfg.OutputFormat)
	assert.True(t, cfg.EditMode)
}

func TestDefaultConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "pfl", "config.yml"), DefaultConfigPath())
}

func TestDefaultConfigPath_Home(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "pfl", "config.yml"), DefaultConfigPath())
}

func TestPathOrDefault(t *testing.T) {
	assert.Equal(t, "/etc/pfl.yml", PathOrDefault("/etc/pfl.yml"))
	assert.Equal(t, DefaultConfigPath(), PathOrDefault(""))
}
