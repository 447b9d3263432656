// Package versions manages the persisted collection of resume versions: one
// continuously saved draft plus bounded, user-created snapshots.
package versions

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/resume-editor/internal/logging"
	"github.com/jonathan/resume-editor/internal/storage"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/sirupsen/logrus"
)

// DefaultSnapshotLimit is how many snapshots survive pruning
const DefaultSnapshotLimit = 30

// Store runs every version operation as load, mutate, persist against its
// backend. Stores returned to callers are freshly decoded and never shared.
type Store struct {
	mu       sync.Mutex
	backend  storage.Backend
	now      func() time.Time
	newID    func() string
	log      logrus.FieldLogger
	limit    int
	location *time.Location
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the version id source
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithLogger sets the logger used for silent recoveries
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Store) {
		s.log = logging.OrDiscard(logger)
	}
}

// WithSnapshotLimit sets the retention bound. Negative values mean zero.
func WithSnapshotLimit(limit int) Option {
	return func(s *Store) {
		if limit < 0 {
			limit = 0
		}
		s.limit = limit
	}
}

// WithLocation sets the zone default snapshot names are formatted in
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.location = loc
		}
	}
}

// New returns a store persisting through backend
func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		now:      types.Now,
		newID:    types.NewID,
		log:      logging.Discard(),
		limit:    DefaultSnapshotLimit,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Limit returns the snapshot retention bound
func (s *Store) Limit() int {
	return s.limit
}

func (s *Store) normalizer(now time.Time) normalizer {
	return normalizer{now: now, newID: s.newID, log: s.log}
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// Load reads the persisted store. A missing or corrupt store is replaced by
// a migrated legacy document when one exists, otherwise by a fresh store
// holding one default draft. The result is always persisted.
func (s *Store) Load() types.VersionStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() types.VersionStore {
	now := s.timestamp()
	n := s.normalizer(now)

	if raw, ok := s.readStore(); ok {
		store := n.store(*raw)
		s.persist(store)
		return store
	}

	seed := n.defaultDocument()
	if legacy, ok := s.readLegacy(); ok {
		seed = n.document(legacy)
		s.log.Info("migrated legacy document into a new draft")
	}

	store := s.initialStore(n, seed)
	s.persist(store)
	if err := s.backend.Remove(storage.LegacyDocumentKey); err != nil {
		s.log.WithError(err).Warn("failed to remove legacy document")
	}
	return store
}

func (s *Store) readStore() (*RawStore, bool) {
	data, ok, err := s.backend.Get(storage.VersionStoreKey)
	if err != nil {
		s.log.WithError(err).Warn("version store unreadable; treating as absent")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	raw, err := DecodeStore([]byte(data))
	if err != nil {
		s.log.WithError(err).Warn("version store corrupt; treating as absent")
		return nil, false
	}
	return raw, true
}

func (s *Store) readLegacy() (map[string]any, bool) {
	data, ok, err := s.backend.Get(storage.LegacyDocumentKey)
	if err != nil {
		s.log.WithError(err).Warn("legacy document unreadable; ignoring")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	doc, err := DecodeLegacyDocument([]byte(data))
	if err != nil {
		s.log.WithError(err).Warn("legacy document corrupt; ignoring")
		return nil, false
	}
	return doc, true
}

func (s *Store) initialStore(n normalizer, seed types.Document) types.VersionStore {
	draft := n.draft(seed)
	return types.VersionStore{
		SchemaVersion:   types.SchemaVersion,
		ActiveVersionID: draft.ID,
		Versions:        []types.VersionRecord{draft},
	}
}

// persist writes the whole store. Failures are logged and otherwise ignored;
// the next load re-normalizes whatever is on disk.
func (s *Store) persist(store types.VersionStore) {
	data, err := json.Marshal(store)
	if err != nil {
		s.log.WithError(err).Error("failed to encode version store")
		return
	}
	if err := s.backend.Set(storage.VersionStoreKey, string(data)); err != nil {
		s.log.WithError(err).Error("failed to persist version store")
	}
}

// activeIndex returns the position of the active record; a dangling pointer
// resolves to the first record
func activeIndex(store types.VersionStore) int {
	if i := store.IndexOf(store.ActiveVersionID); i >= 0 {
		return i
	}
	return 0
}

// ActiveDocument returns an independent copy of the active record's document
func ActiveDocument(store types.VersionStore) types.Document {
	record, ok := store.Active()
	if !ok {
		return types.NewDefaultDocument()
	}
	return record.Resume.Clone()
}

// SaveActiveDocument normalizes doc, stamps it and stores it as the active
// record's document
func (s *Store) SaveActiveDocument(doc types.Document) types.VersionStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	store := s.load()
	i := activeIndex(store)
	now := s.timestamp()

	doc.UpdatedAt = now
	store.Versions[i].Resume = s.normalizer(now).typed(doc)
	store.Versions[i].UpdatedAt = now

	s.persist(store)
	return store
}

// CreateSnapshotFromActive copies the active document into a new snapshot.
// A blank name is replaced by one derived from the creation time. Snapshots
// beyond the retention limit are pruned oldest first.
func (s *Store) CreateSnapshotFromActive(name string) types.VersionStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	store := s.load()
	active := store.Versions[activeIndex(store)]
	now := s.timestamp()

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultSnapshotName(now, s.location)
	}

	snapshot := types.VersionRecord{
		ID:        s.newID(),
		Name:      name,
		Kind:      types.VersionSnapshot,
		Resume:    active.Resume.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	store.Versions = append(store.Versions, snapshot)
	store = s.prune(store)

	s.log.WithFields(logrus.Fields{
		"version_id": snapshot.ID,
		"snapshots":  store.SnapshotCount(),
	}).Debug("snapshot created")

	s.persist(store)
	return store
}

// prune keeps every draft and the newest snapshots up to the limit. Among
// equal creation times the later-stored snapshot counts as newer. Surviving
// records keep their stored order.
func (s *Store) prune(store types.VersionStore) types.VersionStore {
	type indexed struct {
		id        string
		createdAt time.Time
		pos       int
	}

	var snapshots []indexed
	for i, record := range store.Versions {
		if record.Kind == types.VersionSnapshot {
			snapshots = append(snapshots, indexed{id: record.ID, createdAt: record.CreatedAt, pos: i})
		}
	}
	if len(snapshots) <= s.limit {
		return store
	}

	sort.SliceStable(snapshots, func(a, b int) bool {
		if !snapshots[a].createdAt.Equal(snapshots[b].createdAt) {
			return snapshots[a].createdAt.After(snapshots[b].createdAt)
		}
		return snapshots[a].pos > snapshots[b].pos
	})

	dropped := make(map[string]bool, len(snapshots)-s.limit)
	for _, snapshot := range snapshots[s.limit:] {
		dropped[snapshot.id] = true
	}

	versions := make([]types.VersionRecord, 0, len(store.Versions)-len(dropped))
	for _, record := range store.Versions {
		if record.Kind == types.VersionSnapshot && dropped[record.ID] {
			continue
		}
		versions = append(versions, record)
	}
	store.Versions = versions
	s.log.WithField("pruned", len(dropped)).Info("pruned old snapshots")

	if store.IndexOf(store.ActiveVersionID) < 0 {
		if draft, ok := store.Draft(); ok {
			store.ActiveVersionID = draft.ID
		}
	}
	return store
}

// SwitchActiveVersion points the store at another record. Unknown ids and
// the already-active id leave the store unchanged.
func (s *Store) SwitchActiveVersion(id string) types.VersionStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	store := s.load()
	if store.IndexOf(id) < 0 || store.ActiveVersionID == id {
		return store
	}

	store.ActiveVersionID = id
	s.persist(store)
	return store
}

// RenameVersion renames a draft or snapshot. A blank name or an unknown id
// leaves the store unchanged.
func (s *Store) RenameVersion(id, name string) types.VersionStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	store := s.load()
	trimmed := strings.TrimSpace(name)
	i := store.IndexOf(id)
	if trimmed == "" || i < 0 {
		return store
	}

	store.Versions[i].Name = trimmed
	store.Versions[i].UpdatedAt = s.timestamp()
	s.persist(store)
	return store
}

// DeleteVersion removes a snapshot. The draft cannot be deleted. Deleting
// the active snapshot makes the draft active.
func (s *Store) DeleteVersion(id string) types.VersionStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	store := s.load()
	i := store.IndexOf(id)
	if i < 0 || store.Versions[i].Kind == types.VersionDraft {
		return store
	}

	store.Versions = append(store.Versions[:i:i], store.Versions[i+1:]...)
	if store.ActiveVersionID == id {
		draft, _ := store.Draft()
		store.ActiveVersionID = draft.ID
	}

	s.persist(store)
	return store
}

// ResetActiveToTemplate replaces the active record's document with the
// default document
func (s *Store) ResetActiveToTemplate() types.VersionStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	store := s.load()
	i := activeIndex(store)
	now := s.timestamp()

	doc := types.NewDefaultDocument()
	doc.UpdatedAt = now
	store.Versions[i].Resume = doc
	store.Versions[i].UpdatedAt = now

	s.persist(store)
	return store
}

// ListVersionsMeta returns display metadata with the draft first, then
// snapshots by most recent update
func (s *Store) ListVersionsMeta() []types.VersionMeta {
	return MetaFor(s.Load())
}

// MetaFor builds the display list for an already loaded store
func MetaFor(store types.VersionStore) []types.VersionMeta {
	records := make([]types.VersionRecord, len(store.Versions))
	copy(records, store.Versions)

	sort.SliceStable(records, func(a, b int) bool {
		ka, kb := records[a].Kind, records[b].Kind
		if ka != kb {
			return ka == types.VersionDraft
		}
		return records[a].UpdatedAt.After(records[b].UpdatedAt)
	})

	metas := make([]types.VersionMeta, len(records))
	for i, record := range records {
		metas[i] = types.VersionMeta{
			ID:        record.ID,
			Name:      record.Name,
			Kind:      record.Kind,
			CreatedAt: record.CreatedAt,
			UpdatedAt: record.UpdatedAt,
			IsActive:  record.ID == store.ActiveVersionID,
		}
	}
	return metas
}

// DefaultSnapshotName formats a snapshot name from its creation instant
func DefaultSnapshotName(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return "简历 " + t.In(loc).Format("2006-01-02 15:04")
}

// LoadDocument returns a copy of the active document
func (s *Store) LoadDocument() types.Document {
	return ActiveDocument(s.Load())
}

// SaveDocument saves doc as the active document
func (s *Store) SaveDocument(doc types.Document) {
	s.SaveActiveDocument(doc)
}

// ResetDocument resets the active document to the default
func (s *Store) ResetDocument() {
	s.ResetActiveToTemplate()
}
