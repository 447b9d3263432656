package markup

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jonathan/resume-editor/internal/types"
	"golang.org/x/sync/errgroup"
)

// DefaultExportWorkers bounds how many versions ExportAll writes at once
const DefaultExportWorkers = 4

// ExportAll writes every version in store to dir as
// "<name>_<first 8 chars of id>.md" and returns the written paths in store
// order. The first failure cancels the remaining writes.
func ExportAll(ctx context.Context, store types.VersionStore, dir string, workers int) ([]string, error) {
	if workers <= 0 {
		workers = DefaultExportWorkers
	}

	paths := make([]string, len(store.Versions))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, record := range store.Versions {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, exportName(record))
			written, err := WriteFile(path, Export(record.Resume))
			if err != nil {
				return fmt.Errorf("export of version %q failed: %w", record.Name, err)
			}
			paths[i] = written
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func exportName(record types.VersionRecord) string {
	id := record.ID
	if len(id) > 8 {
		id = id[:8]
	}
	name := SanitizeFileName(record.Name)
	if name == "" {
		name = DefaultBaseName
	}
	return name + "_" + SanitizeFileName(id) + Extension
}
