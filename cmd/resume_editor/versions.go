package main

import (
	"fmt"

	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/jonathan/resume-editor/internal/versions"
	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Manage the draft and snapshots",
}

var versionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List versions, draft first",
	Args:  cobra.NoArgs,
	RunE:  runVersionsList,
}

var versionsSnapshotCmd = &cobra.Command{
	Use:   "snapshot [name]",
	Short: "Save the active document as a new snapshot",
	Long:  "Copies the active document into a new snapshot. Without a name, one is derived from the current time. The oldest snapshots beyond the retention limit are removed.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVersionsSnapshot,
}

var versionsSwitchCmd = &cobra.Command{
	Use:   "switch <id>",
	Short: "Make a version the active one",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersionsSwitch,
}

var versionsRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a version",
	Args:  cobra.ExactArgs(2),
	RunE:  runVersionsRename,
}

var versionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersionsDelete,
}

func init() {
	versionsCmd.AddCommand(versionsListCmd, versionsSnapshotCmd, versionsSwitchCmd, versionsRenameCmd, versionsDeleteCmd)
	rootCmd.AddCommand(versionsCmd)
}

func printVersions(cmd *cobra.Command, store types.VersionStore) {
	observability.NewPrinter(cmd.OutOrStdout()).PrintVersions(versions.MetaFor(store))
}

// findVersion returns the record with id or a not-found error
func findVersion(store types.VersionStore, id string) (types.VersionRecord, error) {
	i := store.IndexOf(id)
	if i < 0 {
		return types.VersionRecord{}, fmt.Errorf("version not found: %s", id)
	}
	return store.Versions[i], nil
}

func runVersionsList(cmd *cobra.Command, _ []string) error {
	printVersions(cmd, app.store.Load())
	return nil
}

func runVersionsSnapshot(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	store := app.store.CreateSnapshotFromActive(name)
	created := store.Versions[len(store.Versions)-1]
	if created.Kind != types.VersionSnapshot {
		return fmt.Errorf("snapshot retention limit is %d, nothing was kept", app.store.Limit())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created snapshot %q (%s)\n", created.Name, created.ID)
	return nil
}

func runVersionsSwitch(cmd *cobra.Command, args []string) error {
	record, err := findVersion(app.store.Load(), args[0])
	if err != nil {
		return err
	}
	app.store.SwitchActiveVersion(record.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Active version is now %q\n", record.Name)
	return nil
}

func runVersionsRename(cmd *cobra.Command, args []string) error {
	if _, err := findVersion(app.store.Load(), args[0]); err != nil {
		return err
	}
	store := app.store.RenameVersion(args[0], args[1])
	record, _ := findVersion(store, args[0])
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %q\n", record.ID, record.Name)
	return nil
}

func runVersionsDelete(cmd *cobra.Command, args []string) error {
	record, err := findVersion(app.store.Load(), args[0])
	if err != nil {
		return err
	}
	if record.Kind == types.VersionDraft {
		return fmt.Errorf("the draft cannot be deleted")
	}
	app.store.DeleteVersion(record.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted snapshot %q\n", record.Name)
	return nil
}
