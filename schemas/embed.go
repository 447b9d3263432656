// Package schemas holds the JSON Schema files for persisted data.
package schemas

import "embed"

// Files names each schema shipped in FS
const (
	VersionStoreFile   = "version_store.schema.json"
	ResumeFile         = "resume.schema.json"
	DocumentUpdateFile = "document_update.schema.json"
)

// FS contains every *.schema.json file in this directory
//
//go:embed *.schema.json
var FS embed.FS
