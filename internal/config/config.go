// Package config holds the user-level defaults for the dotenvx CLI.
package config

import (
	"os"
	"path/filepath"

	"github.com/xmazu/dotenvx/internal/storage"
)

const (
	// ConfigDirEnv overrides the config directory, mainly for tests and CI.
	ConfigDirEnv   = "DOTENVX_CONFIG_DIR"
	configSubdir   = "dotenvx"
	configFileName = "config.yaml"
)

// Config is the persisted CLI defaults. Flags always win over these.
type Config struct {
	// Files are the env files loaded when no -f flag is given.
	Files []string `yaml:"files,omitempty"`
	// Suffix selects the override file, e.g. "local" for .env.local.
	Suffix string `yaml:"suffix,omitempty"`
	// Encoding is an IANA charset name; empty means utf-8.
	Encoding string `yaml:"encoding,omitempty"`
	// Overwrite makes loaded entries replace inherited variables.
	Overwrite bool `yaml:"overwrite,omitempty"`
}

func Dir() string {
	if d := os.Getenv(ConfigDirEnv); d != "" {
		return d
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return filepath.Join(".", configSubdir)
	}
	return filepath.Join(home, ".config", configSubdir)
}

func Path() string {
	return filepath.Join(Dir(), configFileName)
}

// Load reads the config file; a missing file yields the zero Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := storage.NewYAMLFile(Path()).LoadOrCreate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to the config file, creating the directory if needed.
func (c *Config) Save() error {
	return storage.NewYAMLFile(Path()).Save(c)
}

// DefaultFiles is the file list to load when neither flags nor config name
// any.
func (c *Config) DefaultFiles() []string {
	if len(c.Files) > 0 {
		return c.Files
	}
	return []string{".env"}
}
