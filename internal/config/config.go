// ABOUTME: Configuration loading with defaults, global file, project marker and env
// ABOUTME: Resolves where project session logs live and which timezone to use
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName names the config directory and the default log prefix.
	AppName = "punchclock"

	// EnvLogDir overrides log_dir from every config file.
	EnvLogDir = "PUNCHCLOCK_LOG_DIR"
)

type Config struct {
	LogDir     string `toml:"log_dir"`
	FilePrefix string `toml:"file_prefix"`
	Timezone   string `toml:"timezone"`
	Color      bool   `toml:"color"`
}

// Default returns the built-in configuration: logs live at ~/.punchclock-<project>.
func Default() *Config {
	return &Config{
		LogDir:     "~",
		FilePrefix: "." + AppName + "-",
		Timezone:   "Local",
		Color:      true,
	}
}

// DefaultPath returns the global config file location
func DefaultPath() string {
	return filepath.Join(GetConfigHome(), AppName, "config.toml")
}

// Load builds the effective config. Later sources win: defaults, the global
// file at path (DefaultPath when empty, skipped if absent), the nearest
// project marker above workingDir, then the environment.
func Load(path, workingDir string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	if workingDir != "" {
		root, err := FindProjectRoot(workingDir)
		if err != nil {
			return nil, err
		}
		if root != "" {
			if err := LoadProjectConfig(filepath.Join(root, MarkerFile), cfg); err != nil {
				return nil, fmt.Errorf("failed to load project config: %w", err)
			}
		}
	}

	if dir := os.Getenv(EnvLogDir); dir != "" {
		cfg.LogDir = dir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the config can address log files.
func (c *Config) Validate() error {
	if c.LogDir == "" {
		return errors.New("log_dir must not be empty")
	}
	if c.FilePrefix == "" {
		return errors.New("file_prefix must not be empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Dir returns the log directory with ~ expanded.
func (c *Config) Dir() (string, error) {
	return ExpandHome(c.LogDir)
}

// LogPath returns the session log file for project. The name is used
// verbatim as a file name component.
func (c *Config) LogPath(project string) (string, error) {
	dir, err := c.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.FilePrefix+project), nil
}

// Location resolves Timezone, treating "" and "Local" as the system zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone '%s': %w", c.Timezone, err)
	}
	return loc, nil
}
