package versions

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/resume-editor/internal/storage"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock advances by step on every reading
type stepClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(c.step)
	return c.t
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("v%02d", n)
	}
}

func newTestStore(t *testing.T, opts ...Option) (*Store, *storage.MemoryBackend) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	clock := &stepClock{t: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), step: time.Minute}
	base := []Option{
		WithClock(clock.Now),
		WithIDGenerator(sequentialIDs()),
		WithLocation(time.UTC),
	}
	return New(backend, append(base, opts...)...), backend
}

func ids(metas []types.VersionMeta) []string {
	out := make([]string, len(metas))
	for i, meta := range metas {
		out[i] = meta.ID
	}
	return out
}

func TestLoad_EmptyBackendCreatesDraft(t *testing.T) {
	store, backend := newTestStore(t)

	loaded := store.Load()

	require.Len(t, loaded.Versions, 1)
	draft := loaded.Versions[0]
	assert.Equal(t, types.VersionDraft, draft.Kind)
	assert.Equal(t, DraftName, draft.Name)
	assert.Equal(t, draft.ID, loaded.ActiveVersionID)
	assert.Equal(t, types.SchemaVersion, loaded.SchemaVersion)
	assert.Equal(t, "张三", draft.Resume.Personal.Name)

	_, ok, err := backend.Get(storage.VersionStoreKey)
	require.NoError(t, err)
	assert.True(t, ok, "load persists the fresh store")
}

func TestLoad_IsStableAcrossCalls(t *testing.T) {
	store, _ := newTestStore(t)

	first := store.Load()
	second := store.Load()

	assert.Equal(t, first, second)
}

func TestLoad_CorruptStoreFallsBackToDefault(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{name: "malformed JSON", blob: `{not json`},
		{name: "wrong schema version", blob: `{"schemaVersion": 2, "activeVersionId": "x", "versions": []}`},
		{name: "record missing resume", blob: `{"schemaVersion": 1, "activeVersionId": "x", "versions": [{"id": "x", "name": "n", "kind": "draft", "createdAt": "2024-01-01T00:00:00Z", "updatedAt": "2024-01-01T00:00:00Z"}]}`},
		{name: "array root", blob: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, backend := newTestStore(t)
			require.NoError(t, backend.Set(storage.VersionStoreKey, tt.blob))

			loaded := store.Load()

			require.Len(t, loaded.Versions, 1)
			assert.Equal(t, types.VersionDraft, loaded.Versions[0].Kind)
			assert.Equal(t, "张三", loaded.Versions[0].Resume.Personal.Name)
		})
	}
}

func TestLoad_MistypedFieldKeepsTheRestOfTheDocument(t *testing.T) {
	store, backend := newTestStore(t)
	blob := `{"schemaVersion":1,"activeVersionId":"d1","versions":[{"id":"d1","name":"草稿","kind":"draft",` +
		`"createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z",` +
		`"resume":{"personal":{"name":"Alice Real"},"updatedAt":"2024-01-01T00:00:00Z",` +
		`"sections":[{"id":"s1","type":"custom","title":"Notes","visible":"yes","items":[{"id":"i1","text":"keep me"}]}]}}]}`
	require.NoError(t, backend.Set(storage.VersionStoreKey, blob))

	doc := ActiveDocument(store.Load())
	assert.Equal(t, "Alice Real", doc.Personal.Name)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "Notes", doc.Sections[0].Title)
	require.Len(t, doc.Sections[0].Items, 1)
	assert.Equal(t, "keep me", doc.Sections[0].Items[0].Text)

	persisted, ok, err := backend.Get(storage.VersionStoreKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, persisted, "Alice Real")
}

func TestLoad_MigratesLegacyDocument(t *testing.T) {
	store, backend := newTestStore(t)
	legacy := `{"personal": {"name": "李四"}, "sections": [], "updatedAt": "2023-01-01T00:00:00Z", "showPhone": false}`
	require.NoError(t, backend.Set(storage.LegacyDocumentKey, legacy))

	loaded := store.Load()

	require.Len(t, loaded.Versions, 1)
	doc := loaded.Versions[0].Resume
	assert.Equal(t, "李四", doc.Personal.Name)
	assert.Equal(t, "zhangsan@email.com", doc.Personal.Email, "missing personal fields come from the defaults")
	assert.Empty(t, doc.Sections, "present sections win even when empty")
	assert.False(t, doc.ShowPhone)
	assert.True(t, doc.ShowEmail)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), doc.UpdatedAt)

	_, ok, err := backend.Get(storage.LegacyDocumentKey)
	require.NoError(t, err)
	assert.False(t, ok, "legacy key is consumed")
}

func TestLoad_CorruptLegacyIsDiscarded(t *testing.T) {
	store, backend := newTestStore(t)
	require.NoError(t, backend.Set(storage.LegacyDocumentKey, `{"personal": "nope"}`))

	loaded := store.Load()

	assert.Equal(t, "张三", loaded.Versions[0].Resume.Personal.Name)
	_, ok, _ := backend.Get(storage.LegacyDocumentKey)
	assert.False(t, ok)
}

func TestLoad_ExistingStoreIgnoresLegacy(t *testing.T) {
	store, backend := newTestStore(t)
	first := store.Load()
	require.NoError(t, backend.Set(storage.LegacyDocumentKey, `{"personal": {"name": "李四"}, "sections": [], "updatedAt": ""}`))

	second := store.Load()

	assert.Equal(t, first.Versions[0].ID, second.Versions[0].ID)
	assert.Equal(t, "张三", second.Versions[0].Resume.Personal.Name)
	_, ok, _ := backend.Get(storage.LegacyDocumentKey)
	assert.True(t, ok, "legacy key is only consumed by migration")
}

type failingBackend struct{}

func (failingBackend) Get(key string) (string, bool, error) {
	return "", false, &storage.BackendError{Op: "get", Key: key, Cause: errors.New("offline")}
}

func (failingBackend) Set(key, _ string) error {
	return &storage.BackendError{Op: "set", Key: key, Cause: errors.New("offline")}
}

func (failingBackend) Remove(key string) error {
	return &storage.BackendError{Op: "remove", Key: key, Cause: errors.New("offline")}
}

func TestStore_BackendFailuresAreSilent(t *testing.T) {
	store := New(failingBackend{})

	loaded := store.Load()
	require.Len(t, loaded.Versions, 1)

	saved := store.CreateSnapshotFromActive("x")
	assert.Len(t, saved.Versions, 2, "the operation result is returned even when the write fails")
}

func TestSaveActiveDocument_StampsAndStores(t *testing.T) {
	store, _ := newTestStore(t)
	doc := store.LoadDocument()
	doc.Personal.Name = "王五"
	doc.Sections = nil

	saved := store.SaveActiveDocument(doc)

	record := saved.Versions[activeIndex(saved)]
	assert.Equal(t, "王五", record.Resume.Personal.Name)
	assert.Equal(t, record.UpdatedAt, record.Resume.UpdatedAt)
	assert.NotNil(t, record.Resume.Sections)
	assert.Empty(t, record.Resume.Sections, "nil sections save as empty, not as the defaults")

	reloaded := store.Load()
	assert.Equal(t, "王五", ActiveDocument(reloaded).Personal.Name)
}

func TestSaveActiveDocument_DoesNotAliasCaller(t *testing.T) {
	store, _ := newTestStore(t)
	doc := store.LoadDocument()

	store.SaveActiveDocument(doc)
	doc.Sections[0].Title = "changed after save"

	assert.NotEqual(t, "changed after save", store.LoadDocument().Sections[0].Title)
}

func TestActiveDocument_ReturnsIndependentCopy(t *testing.T) {
	store, _ := newTestStore(t)
	loaded := store.Load()

	doc := ActiveDocument(loaded)
	doc.Personal.Name = "mutated"
	doc.Sections[0].WorkEntries[0].Positions[0].Highlights[0] = "mutated"

	again := ActiveDocument(loaded)
	assert.Equal(t, "张三", again.Personal.Name)
	assert.NotEqual(t, "mutated", again.Sections[0].WorkEntries[0].Positions[0].Highlights[0])
}

func TestSnapshot_CopyIsolation(t *testing.T) {
	store, _ := newTestStore(t)

	doc := store.LoadDocument()
	doc.Personal.Name = "快照时"
	store.SaveActiveDocument(doc)
	atSnapshot := store.LoadDocument()

	created := store.CreateSnapshotFromActive("v1")
	snapshotID := created.Versions[len(created.Versions)-1].ID

	later := store.LoadDocument()
	later.Personal.Name = "之后"
	later.Sections = later.Sections[:1]
	store.SaveActiveDocument(later)

	switched := store.SwitchActiveVersion(snapshotID)
	assert.Equal(t, snapshotID, switched.ActiveVersionID)
	assert.Equal(t, atSnapshot, ActiveDocument(switched))
}

func TestSnapshot_DefaultName(t *testing.T) {
	store, _ := newTestStore(t)

	created := store.CreateSnapshotFromActive("   ")
	snapshot := created.Versions[len(created.Versions)-1]

	assert.Equal(t, types.VersionSnapshot, snapshot.Kind)
	assert.Equal(t, DefaultSnapshotName(snapshot.CreatedAt, time.UTC), snapshot.Name)
	assert.Regexp(t, `^简历 \d{4}-\d{2}-\d{2} \d{2}:\d{2}$`, snapshot.Name)
}

func TestDefaultSnapshotName(t *testing.T) {
	at := time.Date(2024, 3, 5, 9, 7, 42, 0, time.UTC)
	assert.Equal(t, "简历 2024-03-05 09:07", DefaultSnapshotName(at, time.UTC))

	shanghai := time.FixedZone("CST", 8*3600)
	assert.Equal(t, "简历 2024-03-05 17:07", DefaultSnapshotName(at, shanghai))
}

func TestSnapshot_RetentionKeepsNewestThirty(t *testing.T) {
	store, _ := newTestStore(t)
	draftID := store.Load().ActiveVersionID

	var created []string
	for i := 0; i < 31; i++ {
		result := store.CreateSnapshotFromActive(fmt.Sprintf("s%d", i))
		created = append(created, result.Versions[len(result.Versions)-1].ID)
	}

	metas := store.ListVersionsMeta()
	require.Len(t, metas, 31)
	assert.Equal(t, draftID, metas[0].ID)
	assert.Equal(t, types.VersionDraft, metas[0].Kind)
	assert.NotContains(t, ids(metas), created[0], "the oldest snapshot is pruned")
	for _, id := range created[1:] {
		assert.Contains(t, ids(metas), id)
	}
}

func TestSnapshot_RetentionWithEqualTimestamps(t *testing.T) {
	frozen := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	store, _ := newTestStore(t, WithClock(func() time.Time { return frozen }), WithSnapshotLimit(2))

	store.CreateSnapshotFromActive("a")
	store.CreateSnapshotFromActive("b")
	result := store.CreateSnapshotFromActive("c")

	var names []string
	for _, record := range result.Versions {
		if record.Kind == types.VersionSnapshot {
			names = append(names, record.Name)
		}
	}
	assert.ElementsMatch(t, []string{"b", "c"}, names)
}

func TestSnapshot_NegativeLimitIsZero(t *testing.T) {
	store, _ := newTestStore(t, WithSnapshotLimit(-3))
	assert.Equal(t, 0, store.Limit())

	result := store.CreateSnapshotFromActive("gone")

	require.Len(t, result.Versions, 1)
	assert.Equal(t, types.VersionDraft, result.Versions[0].Kind)
	assert.Equal(t, result.Versions[0].ID, result.ActiveVersionID)
}

func TestSnapshot_PruningActiveFallsBackToDraft(t *testing.T) {
	store, _ := newTestStore(t, WithSnapshotLimit(1))

	first := store.CreateSnapshotFromActive("first")
	firstID := first.Versions[len(first.Versions)-1].ID
	store.SwitchActiveVersion(firstID)

	second := store.CreateSnapshotFromActive("second")

	draft, ok := second.Draft()
	require.True(t, ok)
	assert.Equal(t, -1, second.IndexOf(firstID))
	assert.Equal(t, draft.ID, second.ActiveVersionID)
}

func TestSwitchActiveVersion_NoOps(t *testing.T) {
	store, _ := newTestStore(t)
	before := store.Load()

	assert.Equal(t, before, store.SwitchActiveVersion("missing"))
	assert.Equal(t, before, store.SwitchActiveVersion(before.ActiveVersionID))
}

func TestSwitchActiveVersion_LeavesDocumentsAlone(t *testing.T) {
	store, _ := newTestStore(t)
	created := store.CreateSnapshotFromActive("s")
	snapshotID := created.Versions[1].ID

	switched := store.SwitchActiveVersion(snapshotID)

	assert.Equal(t, snapshotID, switched.ActiveVersionID)
	assert.Equal(t, created.Versions, switched.Versions)
}

func TestRenameVersion(t *testing.T) {
	store, _ := newTestStore(t)
	created := store.CreateSnapshotFromActive("old")
	snapshot := created.Versions[1]

	renamed := store.RenameVersion(snapshot.ID, "  new name  ")
	record := renamed.Versions[renamed.IndexOf(snapshot.ID)]
	assert.Equal(t, "new name", record.Name)
	assert.True(t, record.UpdatedAt.After(snapshot.UpdatedAt))

	draftID := renamed.Versions[0].ID
	renamedDraft := store.RenameVersion(draftID, "主稿")
	assert.Equal(t, "主稿", renamedDraft.Versions[0].Name, "drafts can be renamed")
}

func TestRenameVersion_NoOps(t *testing.T) {
	store, _ := newTestStore(t)
	created := store.CreateSnapshotFromActive("keep")
	snapshotID := created.Versions[1].ID

	blank := store.RenameVersion(snapshotID, "   ")
	assert.Equal(t, "keep", blank.Versions[1].Name)
	assert.Equal(t, created.Versions[1].UpdatedAt, blank.Versions[1].UpdatedAt)

	unknown := store.RenameVersion("missing", "name")
	assert.Equal(t, created.Versions, unknown.Versions)
}

func TestDeleteVersion_ActiveSnapshotFallsBackToDraft(t *testing.T) {
	store, _ := newTestStore(t)
	created := store.CreateSnapshotFromActive("s")
	snapshotID := created.Versions[1].ID
	store.SwitchActiveVersion(snapshotID)

	deleted := store.DeleteVersion(snapshotID)

	draft, _ := deleted.Draft()
	assert.Equal(t, draft.ID, deleted.ActiveVersionID)
	assert.NotContains(t, ids(store.ListVersionsMeta()), snapshotID)
}

func TestDeleteVersion_InactiveSnapshotKeepsPointer(t *testing.T) {
	store, _ := newTestStore(t)
	store.CreateSnapshotFromActive("a")
	created := store.CreateSnapshotFromActive("b")
	aID, bID := created.Versions[1].ID, created.Versions[2].ID
	store.SwitchActiveVersion(bID)

	deleted := store.DeleteVersion(aID)

	assert.Equal(t, bID, deleted.ActiveVersionID)
	assert.Equal(t, -1, deleted.IndexOf(aID))
}

func TestDeleteVersion_DraftIsUndeletable(t *testing.T) {
	store, _ := newTestStore(t)
	before := store.Load()
	draft, _ := before.Draft()

	after := store.DeleteVersion(draft.ID)

	assert.Equal(t, before, after)
	stillThere, ok := store.Load().Draft()
	require.True(t, ok)
	assert.Equal(t, draft, stillThere)
}

func TestDeleteVersion_UnknownID(t *testing.T) {
	store, _ := newTestStore(t)
	before := store.Load()
	assert.Equal(t, before, store.DeleteVersion("missing"))
}

func TestResetActiveToTemplate_OnlyTouchesActive(t *testing.T) {
	store, _ := newTestStore(t)
	doc := store.LoadDocument()
	doc.Personal.Name = "自定义"
	doc.Sections = doc.Sections[:1]
	store.SaveActiveDocument(doc)
	created := store.CreateSnapshotFromActive("s")
	snapshot := created.Versions[1]

	reset := store.ResetActiveToTemplate()

	active := ActiveDocument(reset)
	assert.Equal(t, "张三", active.Personal.Name)
	assert.Len(t, active.Sections, len(types.NewDefaultDocument().Sections))
	assert.Equal(t, snapshot, reset.Versions[reset.IndexOf(snapshot.ID)])
}

func TestListVersionsMeta_Ordering(t *testing.T) {
	store, _ := newTestStore(t)
	store.CreateSnapshotFromActive("older")
	created := store.CreateSnapshotFromActive("newer")
	olderID, newerID := created.Versions[1].ID, created.Versions[2].ID

	metas := store.ListVersionsMeta()
	require.Len(t, metas, 3)
	assert.Equal(t, types.VersionDraft, metas[0].Kind)
	assert.True(t, metas[0].IsActive)
	assert.Equal(t, []string{newerID, olderID}, ids(metas)[1:])

	store.RenameVersion(olderID, "touched")
	metas = store.ListVersionsMeta()
	assert.Equal(t, []string{olderID, newerID}, ids(metas)[1:], "ordering follows updatedAt")
}

func TestCompatHelpers(t *testing.T) {
	store, _ := newTestStore(t)

	doc := store.LoadDocument()
	doc.Personal.Summary = "compat"
	store.SaveDocument(doc)
	assert.Equal(t, "compat", store.LoadDocument().Personal.Summary)

	store.ResetDocument()
	assert.Equal(t, types.NewDefaultDocument().Personal.Summary, store.LoadDocument().Personal.Summary)
}

func TestStore_PersistedFormat(t *testing.T) {
	store, backend := newTestStore(t)
	store.CreateSnapshotFromActive("s")

	data, ok, err := backend.Get(storage.VersionStoreKey)
	require.NoError(t, err)
	require.True(t, ok)

	var root map[string]any
	require.NoError(t, json.Unmarshal([]byte(data), &root))
	assert.EqualValues(t, 1, root["schemaVersion"])
	assert.IsType(t, "", root["activeVersionId"])

	versions, ok := root["versions"].([]any)
	require.True(t, ok)
	require.Len(t, versions, 2)
	record := versions[1].(map[string]any)
	assert.Equal(t, "snapshot", record["kind"])
	_, err = time.Parse(time.RFC3339, record["createdAt"].(string))
	assert.NoError(t, err)
}
