package main

import (
	"fmt"

	"github.com/jonathan/resume-editor/internal/markup"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.md>",
	Short: "Replace the active document with an exported Markdown file",
	Long:  "Reads a Markdown file produced by export and replaces the active version's document. Fields the file does not carry come from the template.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	imported, err := markup.ImportFile(args[0])
	if err != nil {
		return err
	}

	store := app.store.SaveActiveDocument(imported.Document(types.NewDefaultDocument()))
	record, _ := store.Active()
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d sections into %q\n", len(imported.Sections), record.Name)
	return nil
}
