package main

import (
	"fmt"
	"io"

	"github.com/jonathan/resume-editor/internal/markup"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/jonathan/resume-editor/internal/versions"
	"github.com/spf13/cobra"
)

var (
	exportOut     string
	exportVersion string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a version as Markdown",
	Long:  "Writes the active version (or --version) as Markdown with a YAML metadata block. Hidden sections are left out. Without --out the Markdown goes to stdout. An --out of \"auto\" writes <name>_<date>.md in the current directory.",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (.md is appended when missing)")
	exportCmd.Flags().StringVar(&exportVersion, "version", "", "Version id to export instead of the active one")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	store := app.store.Load()
	doc := versions.ActiveDocument(store)
	if exportVersion != "" {
		record, err := findVersion(store, exportVersion)
		if err != nil {
			return err
		}
		doc = record.Resume
	}

	text := markup.Export(doc)
	if exportOut == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), text)
		return err
	}

	path := exportOut
	if path == "auto" {
		path = markup.DefaultFileName(doc, types.Now().Local())
	}
	written, err := markup.WriteFile(path, text)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", written)
	return nil
}
