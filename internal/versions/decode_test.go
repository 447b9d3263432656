package versions

import (
	"errors"
	"testing"
	"time"

	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validStoreJSON = `{
	"schemaVersion": 1,
	"activeVersionId": "d",
	"versions": [{
		"id": "d",
		"name": "当前草稿",
		"kind": "draft",
		"resume": {"personal": {"name": "张三"}, "sections": [], "updatedAt": "2024-01-01T00:00:00Z"},
		"createdAt": "2024-01-01T00:00:00Z",
		"updatedAt": "2024-01-02T03:04:05.678Z"
	}]
}`

func TestDecodeStore_Valid(t *testing.T) {
	raw, err := DecodeStore([]byte(validStoreJSON))
	require.NoError(t, err)

	assert.Equal(t, 1, raw.SchemaVersion)
	assert.Equal(t, "d", raw.ActiveVersionID)
	require.Len(t, raw.Versions, 1)
	record := raw.Versions[0]
	assert.Equal(t, types.VersionDraft, record.Kind)
	assert.Equal(t, "张三", record.Resume["personal"].(map[string]any)["name"])
	assert.True(t, record.UpdatedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 678000000, time.UTC)))
}

func TestDecodeStore_Failures(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		wantReason string
	}{
		{name: "empty", data: "", wantReason: ReasonMalformed},
		{name: "truncated", data: `{"schemaVersion": 1`, wantReason: ReasonMalformed},
		{name: "wrong version", data: `{"schemaVersion": 0, "activeVersionId": "", "versions": []}`, wantReason: ReasonSchemaMismatch},
		{name: "versions not a list", data: `{"schemaVersion": 1, "activeVersionId": "", "versions": {}}`, wantReason: ReasonSchemaMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := DecodeStore([]byte(tt.data))
			assert.Nil(t, raw)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, tt.wantReason, decodeErr.Reason)
		})
	}
}

func TestDecodeStore_SchemaMismatchWrapsValidationError(t *testing.T) {
	_, err := DecodeStore([]byte(`{"schemaVersion": 1}`))

	var validationErr *schemas.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, err.Error(), ReasonSchemaMismatch)
}

func TestDecodeLegacyDocument(t *testing.T) {
	doc, err := DecodeLegacyDocument([]byte(`{"personal": {}, "sections": [], "updatedAt": "x"}`))
	require.NoError(t, err)
	assert.Contains(t, doc, "personal")

	_, err = DecodeLegacyDocument([]byte(`{"personal": {}}`))
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, ReasonSchemaMismatch, decodeErr.Reason)

	_, err = DecodeLegacyDocument([]byte(`nope`))
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, ReasonMalformed, decodeErr.Reason)
}
