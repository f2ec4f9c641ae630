package storage

import (
	"time"

	"github.com/adfharrison1/go-cms/pkg/domain"
	"github.com/adfharrison1/go-cms/pkg/metrics"
)

type StoreOption func(*FileStore)

// WithContentTypes replaces the built-in content type registry.
func WithContentTypes(types ...domain.ContentType) StoreOption {
	return func(store *FileStore) {
		store.contentTypes = types
	}
}

// WithAtomicWrites toggles write-to-temp-then-rename saves (default: true).
// Without it a failed save can leave a truncated file behind.
func WithAtomicWrites(enabled bool) StoreOption {
	return func(store *FileStore) {
		store.atomicWrites = enabled
	}
}

func WithFileMode(mode uint32) StoreOption {
	return func(store *FileStore) {
		store.fileMode = mode
	}
}

// WithSnapshotDir enables snapshots, written to dir.
func WithSnapshotDir(dir string) StoreOption {
	return func(store *FileStore) {
		store.snapshotDir = dir
	}
}

// WithSnapshotInterval makes the background worker snapshot the document
// every interval when it changed. Zero disables the worker.
func WithSnapshotInterval(interval time.Duration) StoreOption {
	return func(store *FileStore) {
		store.snapshotInterval = interval
	}
}

// WithSnapshotRetention keeps only the newest n snapshots. Zero keeps all.
func WithSnapshotRetention(n int) StoreOption {
	return func(store *FileStore) {
		store.snapshotRetention = n
	}
}

func WithMetrics(m *metrics.Metrics) StoreOption {
	return func(store *FileStore) {
		store.metrics = m
	}
}

// WithClock overrides the time source used for createdAt and date defaults.
func WithClock(now func() time.Time) StoreOption {
	return func(store *FileStore) {
		store.now = now
	}
}
