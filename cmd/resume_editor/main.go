// Package main provides the resume_editor CLI: version management, Markdown
// exchange and the local API server.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-editor/internal/config"
	"github.com/jonathan/resume-editor/internal/logging"
	"github.com/jonathan/resume-editor/internal/storage"
	"github.com/jonathan/resume-editor/internal/versions"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	verbose     bool
	storageKind string
	dataDir     string
)

// app holds what every subcommand works against. It is built before a
// subcommand runs and released after.
var app struct {
	cfg     config.Config
	log     *logrus.Logger
	backend storage.Backend
	store   *versions.Store
	release func()
}

var rootCmd = &cobra.Command{
	Use:               "resume_editor",
	Short:             "Resume editor with versioned local storage",
	Long:              "Resume editor keeps one continuously saved draft plus named snapshots, and converts resumes to and from Markdown.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logging")
	rootCmd.PersistentFlags().StringVar(&storageKind, "storage", "", "Storage backend: file, postgres or memory")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for the file backend")
}

// loadConfig resolves config file, environment and flags, in increasing
// precedence, over the defaults
func loadConfig() (config.Config, error) {
	cfg := config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}

	if storageKind != "" {
		cfg.Storage = storageKind
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if verbose {
		cfg.Verbose = true
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return merged, err
	}
	return merged, nil
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.Verbose)
	if err != nil {
		return err
	}

	backend, release, err := storage.Open(cmd.Context(), storage.Options{
		Kind:        cfg.Storage,
		DataDir:     cfg.DataDir,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Storage, err)
	}
	logger.WithFields(logrus.Fields{"storage": cfg.Storage, "data_dir": cfg.DataDir}).Debug("storage opened")

	app.cfg = cfg
	app.log = logger
	app.backend = backend
	app.store = versions.New(backend,
		versions.WithLogger(logger),
		versions.WithSnapshotLimit(cfg.SnapshotLimit),
	)
	app.release = release
	return nil
}

func teardown(_ *cobra.Command, _ []string) {
	if app.release != nil {
		app.release()
		app.release = nil
	}
}

func main() {
	// Load .env file if it exists
	config.LoadDotEnv()

	if err := rootCmd.Execute(); err != nil {
		teardown(nil, nil)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
