package main

import (
	"fmt"

	"github.com/jonathan/resume-editor/internal/storage"
	"github.com/spf13/cobra"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Inspect the storage backend",
}

var storageKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the keys held by the configured backend",
	Args:  cobra.NoArgs,
	RunE:  runStorageKeys,
}

func init() {
	storageCmd.AddCommand(storageKeysCmd)
	rootCmd.AddCommand(storageCmd)
}

func runStorageKeys(cmd *cobra.Command, _ []string) error {
	lister, ok := app.backend.(storage.Lister)
	if !ok {
		return fmt.Errorf("%s storage cannot list its keys", app.cfg.Storage)
	}
	keys, err := lister.Keys()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Storage: %s\n", app.cfg.Storage)
	for _, key := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", key)
	}
	return nil
}
