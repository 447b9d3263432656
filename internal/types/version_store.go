//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// SchemaVersion is the version tag written into every persisted store
const SchemaVersion = 1

// VersionKind distinguishes the single draft from saved snapshots
type VersionKind string

// Version kinds
const (
	VersionDraft    VersionKind = "draft"
	VersionSnapshot VersionKind = "snapshot"
)

// IsValid reports whether k is a known version kind
func (k VersionKind) IsValid() bool {
	return k == VersionDraft || k == VersionSnapshot
}

// VersionRecord is one named, timestamped copy of a document
type VersionRecord struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Kind      VersionKind `json:"kind"`
	Resume    Document    `json:"resume"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Clone returns a deep copy of the record
func (r VersionRecord) Clone() VersionRecord {
	out := r
	out.Resume = r.Resume.Clone()
	return out
}

// VersionStore is the persisted root: every version plus the active pointer
type VersionStore struct {
	SchemaVersion   int             `json:"schemaVersion"`
	ActiveVersionID string          `json:"activeVersionId"`
	Versions        []VersionRecord `json:"versions"`
}

// Clone returns a deep copy of the store
func (s VersionStore) Clone() VersionStore {
	out := s
	if s.Versions != nil {
		out.Versions = make([]VersionRecord, len(s.Versions))
		for i, record := range s.Versions {
			out.Versions[i] = record.Clone()
		}
	}
	return out
}

// IndexOf returns the position of the record with the given id, or -1
func (s VersionStore) IndexOf(id string) int {
	for i, record := range s.Versions {
		if record.ID == id {
			return i
		}
	}
	return -1
}

// Draft returns the draft record, if any
func (s VersionStore) Draft() (VersionRecord, bool) {
	for _, record := range s.Versions {
		if record.Kind == VersionDraft {
			return record, true
		}
	}
	return VersionRecord{}, false
}

// Active returns the record the active pointer references. A dangling
// pointer resolves to the first record.
func (s VersionStore) Active() (VersionRecord, bool) {
	if i := s.IndexOf(s.ActiveVersionID); i >= 0 {
		return s.Versions[i], true
	}
	if len(s.Versions) > 0 {
		return s.Versions[0], true
	}
	return VersionRecord{}, false
}

// SnapshotCount returns how many snapshot records the store holds
func (s VersionStore) SnapshotCount() int {
	count := 0
	for _, record := range s.Versions {
		if record.Kind == VersionSnapshot {
			count++
		}
	}
	return count
}

// VersionMeta is the display metadata of one record
type VersionMeta struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Kind      VersionKind `json:"kind"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	IsActive  bool        `json:"isActive"`
}
