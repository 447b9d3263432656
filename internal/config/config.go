// Package config provides configuration loading and validation for the CLI
// and the local API server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Storage backends
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Defaults applied by MergeWithDefaults
const (
	DefaultStorage         = StorageFile
	DefaultAddr            = "127.0.0.1:8765"
	DefaultAutosaveDelayMs = 300
	DefaultSnapshotLimit   = 30
	DefaultLogLevel        = "info"
	defaultDataDirName     = ".resume-editor"
)

// Config represents the editor configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or come from flags and
// the environment.
type Config struct {
	// Storage
	Storage     string `json:"storage,omitempty" validate:"omitempty,oneof=file postgres memory"` // Backend kind
	DataDir     string `json:"data_dir,omitempty"`                                                // Directory for the file backend
	DatabaseURL string `json:"database_url,omitempty"`                                            // PostgreSQL connection URL

	// Server
	Addr string `json:"addr,omitempty" validate:"omitempty,hostname_port"` // Listen address for serve

	// Behavior
	AutosaveDelayMs int    `json:"autosave_delay_ms,omitempty" validate:"gte=0"`                         // Debounce for document saves
	SnapshotLimit   int    `json:"snapshot_limit,omitempty" validate:"gte=0"`                            // Maximum retained snapshots
	LogLevel        string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"` // logrus level
	Verbose         bool   `json:"verbose,omitempty"`                                                    // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Storage == StoragePostgres && c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required for postgres storage")
	}
	return nil
}

// Defaults returns the configuration used when nothing else is set
func Defaults() Config {
	return Config{
		Storage:         DefaultStorage,
		DataDir:         defaultDataDir(),
		Addr:            DefaultAddr,
		AutosaveDelayMs: DefaultAutosaveDelayMs,
		SnapshotLimit:   DefaultSnapshotLimit,
		LogLevel:        DefaultLogLevel,
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return defaultDataDirName
	}
	return filepath.Join(home, defaultDataDirName)
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Storage == "" {
		result.Storage = defaults.Storage
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Addr == "" {
		result.Addr = defaults.Addr
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	// Int fields: use default if zero
	if result.AutosaveDelayMs == 0 {
		result.AutosaveDelayMs = defaults.AutosaveDelayMs
	}
	if result.SnapshotLimit == 0 {
		result.SnapshotLimit = defaults.SnapshotLimit
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// AutosaveDelay returns the debounce as a duration
func (c *Config) AutosaveDelay() time.Duration {
	return time.Duration(c.AutosaveDelayMs) * time.Millisecond
}
