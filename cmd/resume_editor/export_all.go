package main

import (
	"fmt"

	"github.com/jonathan/resume-editor/internal/markup"
	"github.com/spf13/cobra"
)

var (
	exportAllDir     string
	exportAllWorkers int
)

var exportAllCmd = &cobra.Command{
	Use:   "export-all",
	Short: "Export every version as Markdown into a directory",
	Args:  cobra.NoArgs,
	RunE:  runExportAll,
}

func init() {
	exportAllCmd.Flags().StringVarP(&exportAllDir, "dir", "d", "", "Output directory (required)")
	exportAllCmd.Flags().IntVar(&exportAllWorkers, "workers", markup.DefaultExportWorkers, "Files written concurrently")

	if err := exportAllCmd.MarkFlagRequired("dir"); err != nil {
		panic(fmt.Sprintf("failed to mark dir flag as required: %v", err))
	}

	rootCmd.AddCommand(exportAllCmd)
}

func runExportAll(cmd *cobra.Command, _ []string) error {
	paths, err := markup.ExportAll(cmd.Context(), app.store.Load(), exportAllDir, exportAllWorkers)
	if err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	app.log.WithField("count", len(paths)).Info("exported all versions")
	return nil
}
