package main

import (
	"fmt"

	"github.com/jonathan/resume-editor/internal/photo"
	"github.com/jonathan/resume-editor/internal/versions"
	"github.com/spf13/cobra"
)

var photoCrop string

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Set or clear the active document's photo",
}

var photoSetCmd = &cobra.Command{
	Use:   "set <image>",
	Short: "Attach a JPEG, PNG or GIF image",
	Args:  cobra.ExactArgs(1),
	RunE:  runPhotoSet,
}

var photoClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the photo",
	Args:  cobra.NoArgs,
	RunE:  runPhotoClear,
}

func init() {
	photoSetCmd.Flags().StringVar(&photoCrop, "crop", "", "Opaque crop descriptor stored with the photo")
	photoCmd.AddCommand(photoSetCmd, photoClearCmd)
	rootCmd.AddCommand(photoCmd)
}

func runPhotoSet(cmd *cobra.Command, args []string) error {
	p, err := photo.FromFile(args[0], photoCrop)
	if err != nil {
		return err
	}
	doc := versions.ActiveDocument(app.store.Load())
	app.store.SaveActiveDocument(photo.Apply(doc, p))
	fmt.Fprintln(cmd.OutOrStdout(), "Photo updated")
	return nil
}

func runPhotoClear(cmd *cobra.Command, _ []string) error {
	doc := versions.ActiveDocument(app.store.Load())
	app.store.SaveActiveDocument(photo.Apply(doc, nil))
	fmt.Fprintln(cmd.OutOrStdout(), "Photo removed")
	return nil
}
