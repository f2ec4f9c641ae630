package storage

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfharrison1/go-cms/pkg/domain"
)

// tickingClock returns a clock that advances one second per call.
func tickingClock() func() time.Time {
	var calls int64
	return func() time.Time {
		n := atomic.AddInt64(&calls, 1)
		return fixedNow.Add(time.Duration(n) * time.Second)
	}
}

func TestFileStore_SnapshotsDisabled(t *testing.T) {
	store := newTestStore(t)

	_, err := store.WriteSnapshot()
	assert.ErrorIs(t, err, ErrSnapshotsDisabled)

	_, err = store.ListSnapshots()
	assert.ErrorIs(t, err, ErrSnapshotsDisabled)
}

func TestFileStore_WriteAndRestoreSnapshot(t *testing.T) {
	snapDir := filepath.Join(t.TempDir(), "snapshots")
	store := newTestStore(t, WithSnapshotDir(snapDir), WithClock(tickingClock()))

	_, err := store.Create("events", domain.Record{"title": "Revival Night", "date": "2025-01-01T00:00:00Z"})
	require.NoError(t, err)
	_, err = store.Create("members", domain.Record{"name": "Ama", "email": "ama@example.org"})
	require.NoError(t, err)

	before, err := store.Load()
	require.NoError(t, err)

	info, err := store.WriteSnapshot()
	require.NoError(t, err)
	assert.Equal(t, snapDir, filepath.Dir(info.Path))
	assert.Equal(t, FileExtension, filepath.Ext(info.Path))
	assert.Greater(t, info.Size, int64(HeaderSize))
	assert.False(t, store.IsDirty())

	data, err := ReadSnapshot(info.Path)
	require.NoError(t, err)
	assert.Len(t, data.Collections["events"], 1)
	assert.Equal(t, store.Path(), data.Metadata["source"])

	// Diverge from the snapshot, then restore it
	require.NoError(t, store.Delete("events", 1))
	_, err = store.Create("blog", domain.Record{"title": "T", "content": "C"})
	require.NoError(t, err)
	assert.True(t, store.IsDirty())

	require.NoError(t, store.RestoreSnapshot(info.Path))

	after, err := store.Load()
	require.NoError(t, err)
	require.Len(t, after["events"], 1)
	assert.Empty(t, after["blog"])
	assert.Equal(t, before["events"][0]["title"], after["events"][0]["title"])
	assert.Equal(t, before["members"][0]["email"], after["members"][0]["email"])

	id, ok := after["events"][0].ID()
	require.True(t, ok)
	assert.Equal(t, int64(1), id)
}

func TestFileStore_ListAndPruneSnapshots(t *testing.T) {
	snapDir := t.TempDir()
	store := newTestStore(t, WithSnapshotDir(snapDir), WithSnapshotRetention(3), WithClock(tickingClock()))

	var written []domain.SnapshotInfo
	for i := 0; i < 5; i++ {
		info, err := store.WriteSnapshot()
		require.NoError(t, err)
		written = append(written, info)
	}

	// Unrelated files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(snapDir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(snapDir, "snapshot_abc.gcms"), []byte("x"), 0644))

	snapshots, err := store.ListSnapshots()
	require.NoError(t, err)
	require.Len(t, snapshots, 3)

	assert.Equal(t, written[4].Path, snapshots[0].Path)
	assert.Equal(t, written[3].Path, snapshots[1].Path)
	assert.Equal(t, written[2].Path, snapshots[2].Path)

	_, err = os.Stat(written[0].Path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_RestoreSnapshotErrors(t *testing.T) {
	store := newTestStore(t)

	err := store.RestoreSnapshot(filepath.Join(t.TempDir(), "missing.gcms"))
	assert.ErrorIs(t, err, domain.ErrStorage)

	bogus := filepath.Join(t.TempDir(), "bogus.gcms")
	require.NoError(t, os.WriteFile(bogus, []byte("definitely not a snapshot"), 0644))
	err = store.RestoreSnapshot(bogus)
	assert.ErrorIs(t, err, domain.ErrStorage)
}
