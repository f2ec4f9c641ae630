package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfharrison1/go-cms/pkg/domain"
)

func newTestStore(t *testing.T, options ...StoreOption) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "db.json")
	store := NewFileStore(path, options...)
	t.Cleanup(store.StopBackgroundWorkers)
	return store
}

func TestFileStore_LoadBootstrapsMissingFile(t *testing.T) {
	store := newTestStore(t)

	doc, err := store.Load()
	require.NoError(t, err)

	assert.Len(t, doc, len(domain.ContentTypeNames()))
	for _, name := range domain.ContentTypeNames() {
		assert.NotNil(t, doc[name], "content type %s", name)
		assert.Empty(t, doc[name], "content type %s", name)
	}

	// The default document is persisted before Load returns
	_, err = os.Stat(store.Path())
	require.NoError(t, err)

	again, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(doc, again))
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	doc := domain.NewDocument(domain.ContentTypeNames()...)
	doc["events"] = []domain.Record{
		{"id": 1.0, "title": "Revival Night", "date": "2025-01-01T00:00:00Z", "description": "", "createdAt": "2024-12-01T10:00:00.000Z"},
		{"id": 2.0, "title": "Bible Study", "tags": []interface{}{"weekly", 3.5, true, nil}},
	}
	doc["members"] = []domain.Record{
		{"id": 7.0, "name": "Ada", "address": map[string]interface{}{"city": "Accra", "zip": nil}},
	}
	doc["custom"] = []domain.Record{{"id": 1.0}}

	require.NoError(t, store.Save(doc))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(doc, loaded))
}

func TestFileStore_SaveWritesIndentedStableJSON(t *testing.T) {
	store := newTestStore(t)

	doc := domain.Document{
		"zeta":    {},
		"about":   {},
		"events":  {{"id": 1.0, "title": "A"}},
		"sermons": nil,
	}
	require.NoError(t, store.Save(doc))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	text := string(raw)

	assert.True(t, strings.HasPrefix(text, "{\n  \"events\": [\n    {\n"), text)
	assert.True(t, strings.HasSuffix(text, "}\n"))

	// Registered types first in registry order, then extra keys sorted
	events := strings.Index(text, `"events"`)
	sermons := strings.Index(text, `"sermons"`)
	about := strings.Index(text, `"about"`)
	zeta := strings.Index(text, `"zeta"`)
	assert.True(t, events < sermons && sermons < about && about < zeta, text)
	assert.Contains(t, text, `"sermons": []`)
}

func TestFileStore_LoadFillsMissingContentTypes(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"events":[{"id":1,"title":"A"}],"sermons":[],"members":[]}`), 0644))

	doc, err := store.Load()
	require.NoError(t, err)

	assert.Len(t, doc["events"], 1)
	for _, name := range []string{"videos", "blog", "testimonies", "about"} {
		assert.NotNil(t, doc[name], name)
		assert.Empty(t, doc[name], name)
	}
}

func TestFileStore_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid JSON", `{"events": [`},
		{"empty file", ``},
		{"wrong shape", `{"events": {"id": 1}}`},
		{"top-level array", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0755))
			require.NoError(t, os.WriteFile(store.Path(), []byte(tt.content), 0644))

			_, err := store.Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrStorage)

			// The corrupt file is left alone
			raw, err := os.ReadFile(store.Path())
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(raw))
		})
	}
}

func TestFileStore_LoadUnreadablePath(t *testing.T) {
	// A directory where the data file should be cannot be read as a file
	path := t.TempDir()
	store := NewFileStore(path)

	_, err := store.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestFileStore_SaveErrors(t *testing.T) {
	for _, atomicWrites := range []bool{true, false} {
		t.Run(map[bool]string{true: "atomic", false: "direct"}[atomicWrites], func(t *testing.T) {
			path := t.TempDir()
			store := NewFileStore(path, WithAtomicWrites(atomicWrites))

			err := store.Save(domain.NewDocument("events"))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrStorage)
		})
	}
}

func TestFileStore_AtomicSaveLeavesNoTempFiles(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		_, err := store.Create("events", domain.Record{"title": "A", "date": "2025-01-01"})
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "db.json", entries[0].Name())
}

func TestFileStore_DirectWrites(t *testing.T) {
	store := newTestStore(t, WithAtomicWrites(false), WithFileMode(0600))

	_, err := store.Create("about", domain.Record{"title": "Who we are", "content": "A family"})
	require.NoError(t, err)

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	var doc map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc["about"], 1)
	assert.Equal(t, "Who we are", doc["about"][0]["title"])
}

func TestFileStore_MutateErrorSkipsSave(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Load()
	require.NoError(t, err)

	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	err = store.Mutate(func(doc domain.Document) error {
		doc["events"] = append(doc["events"], domain.Record{"id": 1})
		return domain.ErrValidation
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestDecodeDocument_Null(t *testing.T) {
	doc, err := DecodeDocument([]byte("null"))
	require.NoError(t, err)
	assert.NotNil(t, doc)
	assert.Empty(t, doc)
}
