package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	defaultTheme      = "burgundy"
	defaultTimeFormat = "2006-01-02 15:04"
)

type Config struct {
	// DataFile overrides where the ratings file lives. Empty means the
	// default location under the user data dir.
	DataFile        string `yaml:"data_file" mapstructure:"data_file"`
	Theme           string `yaml:"theme" mapstructure:"theme"`
	TimeFormat      string `yaml:"time_format" mapstructure:"time_format"`
	BackupOnCorrupt bool   `yaml:"backup_on_corrupt" mapstructure:"backup_on_corrupt"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:      defaultTheme,
		TimeFormat: defaultTimeFormat,
	}
}

// DefaultDataFile resolves the standard ratings file location:
// $XDG_DATA_HOME/vino/ratings.json, falling back to ~/.local/share.
func DefaultDataFile() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "vino", "ratings.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "vino", "ratings.json")
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "vino")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "vino")
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths
	viper.AddConfigPath(".")
	viper.AddConfigPath(configDir())

	// Environment variables: VINO_DATA_FILE, VINO_THEME, ...
	viper.SetEnvPrefix("VINO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error produced
			return nil, err
		}
		// Config file not found; ignore and use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolvedDataFile returns the configured ratings file path, or the
// default location when none is set.
func (c *Config) ResolvedDataFile() string {
	if c.DataFile != "" {
		return c.DataFile
	}
	return DefaultDataFile()
}

var knownThemes = map[string]bool{"burgundy": true, "noir": true}

// Validate normalizes bad values back to their defaults.
func (c *Config) Validate() error {
	if !knownThemes[c.Theme] {
		c.Theme = defaultTheme
	}
	if c.TimeFormat == "" {
		c.TimeFormat = defaultTimeFormat
	}
	return nil
}

// WriteDefault writes a starter config file to the user config dir.
// Refuses to overwrite an existing one.
func WriteDefault() (string, error) {
	dir := configDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config already exists at %s", path)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	header := "# vino configuration. All keys optional.\n" +
		"# data_file: /path/to/ratings.json\n" +
		"# backup_on_corrupt: true  # sideline a corrupt file and start fresh\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
