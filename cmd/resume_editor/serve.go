package main

import (
	"fmt"

	"github.com/jonathan/resume-editor/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local API server",
	Long:  `Start an HTTP server that exposes the active document, versions and Markdown exchange to the editor UI.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, 127.0.0.1:8765)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	addr := app.cfg.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv, err := server.New(server.Config{
		Addr:          addr,
		Store:         app.store,
		AutosaveDelay: app.cfg.AutosaveDelay(),
		Logger:        app.log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
