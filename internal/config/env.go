package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv
const EnvPrefix = "RESUME_EDITOR_"

// LoadDotEnv loads a .env file from the working directory when one exists.
// A missing file is not an error.
func LoadDotEnv(paths ...string) {
	_ = godotenv.Load(paths...)
}

// ApplyEnv overrides fields from RESUME_EDITOR_* variables. DATABASE_URL is
// honored as a fallback for the database URL.
func (c *Config) ApplyEnv() error {
	if v := env("STORAGE"); v != "" {
		c.Storage = strings.ToLower(v)
	}
	if v := env("DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := env("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	} else if v := os.Getenv("DATABASE_URL"); v != "" && c.DatabaseURL == "" {
		c.DatabaseURL = v
	}
	if v := env("ADDR"); v != "" {
		c.Addr = v
	}
	if v := env("LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}

	if v := env("AUTOSAVE_DELAY_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sAUTOSAVE_DELAY_MS: %v", EnvPrefix, err)
		}
		c.AutosaveDelayMs = n
	}
	if v := env("SNAPSHOT_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sSNAPSHOT_LIMIT: %v", EnvPrefix, err)
		}
		c.SnapshotLimit = n
	}
	if v := env("VERBOSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sVERBOSE: %v", EnvPrefix, err)
		}
		c.Verbose = b
	}

	return nil
}

func env(name string) string {
	return strings.TrimSpace(os.Getenv(EnvPrefix + name))
}
