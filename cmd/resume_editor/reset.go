package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the active document with the template",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	store := app.store.ResetActiveToTemplate()
	record, _ := store.Active()
	fmt.Fprintf(cmd.OutOrStdout(), "Reset %q to the template\n", record.Name)
	return nil
}
