package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/jonathan/resume-editor/internal/versions"
	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active document",
	Long:  "Prints a summary of the active version's document, or the full document as JSON with --json.",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the full document as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	doc := versions.ActiveDocument(app.store.Load())

	if showJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode document: %w", err)
		}
		return nil
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintDocumentSummary(doc)
	if app.cfg.Verbose {
		for _, section := range doc.Sections {
			if section.Type != types.SectionWork {
				continue
			}
			for _, entry := range section.WorkEntries {
				for _, position := range entry.Positions {
					printer.PrintHighlights(entry.Organization+" / "+position.Title, position.Highlights)
				}
			}
		}
	}
	return nil
}
