// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "manualhub"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
	// EnvPrefix is the prefix for environment variable overrides
	// (e.g. MANUALHUB_MODULE_DIR).
	EnvPrefix = "MANUALHUB"
)

// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
var ErrInvalidConfig = errors.New("invalid config")

type (
	// Config holds the pipeline configuration.
	Config struct {
		// ModuleDir is the descriptor directory (one JSON file per module).
		ModuleDir string `mapstructure:"module_dir"`
		// IconDir is the icon directory (one PNG per module base name, plus
		// blank.png).
		IconDir string `mapstructure:"icon_dir"`
		// ManualDir and PDFDir are scanned for manual/PDF freshness metadata.
		// Either may be empty.
		ManualDir string `mapstructure:"manual_dir"`
		PDFDir    string `mapstructure:"pdf_dir"`

		// TimeModeFeedURL and TwitchPlaysFeedURL are the external scoring
		// feed endpoints. An empty URL disables that feed.
		TimeModeFeedURL    string `mapstructure:"time_mode_feed_url"`
		TwitchPlaysFeedURL string `mapstructure:"twitch_plays_feed_url"`

		// ConsistencyCheck enables the descriptor round-trip self-check
		// (development mode).
		ConsistencyCheck bool `mapstructure:"consistency_check"`

		// SiteConfigPath optionally overrides the embedded site
		// display/filter/selectable configuration.
		SiteConfigPath string `mapstructure:"site_config_path"`
	}

	// InvalidConfigError reports all invalid fields at once. It wraps
	// ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []string
	}
)

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s", strings.Join(e.FieldErrors, "; "))
}

// Unwrap returns the sentinel for errors.Is checks.
func (e *InvalidConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// DefaultConfig returns the built-in defaults: data directories relative to
// the working directory and no feed endpoints.
func DefaultConfig() *Config {
	return &Config{
		ModuleDir: "data/modules",
		IconDir:   "data/icons",
		ManualDir: "data/HTML",
		PDFDir:    "data/PDF",
	}
}

// ConfigDir returns the manualhub configuration directory under the
// platform's user config root.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(root, AppName), nil
}

// Load reads the configuration from configFile when given, otherwise from
// config.toml in the working directory or the platform config directory.
// A missing config file is not an error; defaults and environment overrides
// still apply.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("module_dir", defaults.ModuleDir)
	v.SetDefault("icon_dir", defaults.IconDir)
	v.SetDefault("manual_dir", defaults.ManualDir)
	v.SetDefault("pdf_dir", defaults.PDFDir)
	v.SetDefault("time_mode_feed_url", defaults.TimeModeFeedURL)
	v.SetDefault("twitch_plays_feed_url", defaults.TwitchPlaysFeedURL)
	v.SetDefault("consistency_check", defaults.ConsistencyCheck)
	v.SetDefault("site_config_path", defaults.SiteConfigPath)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		v.AddConfigPath(".")
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the required directories are set. It reports all
// problems at once rather than stopping at the first.
func (c *Config) Validate() error {
	var fieldErrs []string
	if strings.TrimSpace(c.ModuleDir) == "" {
		fieldErrs = append(fieldErrs, "module_dir must not be blank")
	}
	if strings.TrimSpace(c.IconDir) == "" {
		fieldErrs = append(fieldErrs, "icon_dir must not be blank")
	}
	if len(fieldErrs) > 0 {
		return &InvalidConfigError{FieldErrors: fieldErrs}
	}
	return nil
}
