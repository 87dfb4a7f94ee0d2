package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jacksmith/kex/internal/log"
	"github.com/jacksmith/kex/internal/model"
	"github.com/jacksmith/kex/internal/solver"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const (
	// userConfigFile is the name of the user configuration file (sibling to .kex/).
	userConfigFile = ".kexconfig.yaml"

	// Default configuration values
	DefaultSolver   = solver.AllSolutionsName
	DefaultLogLevel = "warn"
)

// Config represents user configuration from .kexconfig.yaml.
// This file is user-managed and never written by kex.
type Config struct {
	// Solver is the strategy used by `kex solve` when --solver is not given.
	Solver string `yaml:"solver"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Limits model.Limits `yaml:"limits"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Solver:   DefaultSolver,
		LogLevel: DefaultLogLevel,
		Limits:   model.DefaultLimits(),
	}
}

// LoadConfig loads .kexconfig.yaml if it exists, otherwise returns defaults.
// The config file is a sibling to .kex/ (in the same directory).
// Partial config files are merged with defaults, including single keys
// under limits.
func (s *Storage) LoadConfig() (*Config, error) {
	configPath := filepath.Join(s.root, userConfigFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file - return defaults
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", userConfigFile, err)
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Unmarshal over defaults (only overwrites fields present in file)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", userConfigFile, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", userConfigFile, err)
	}

	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if _, perr := solver.ParseStrategy(c.Solver); perr != nil {
		err = multierr.Append(err, perr)
	}
	if _, perr := log.ParseLevel(c.LogLevel); perr != nil {
		err = multierr.Append(err, perr)
	}
	return multierr.Append(err, c.Limits.Validate())
}

// ConfigPath returns the path to the config file.
func (s *Storage) ConfigPath() string {
	return filepath.Join(s.root, userConfigFile)
}
