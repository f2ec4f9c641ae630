package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/adfharrison1/go-cms/pkg/domain"
	"github.com/adfharrison1/go-cms/pkg/metrics"
)

var _ domain.ContentStore = (*FileStore)(nil)

// FileStore keeps the whole content document in a single JSON file.
//
// Every operation reads the file fresh and every mutation rewrites it in full.
// Mutations hold mu from load to save, so two concurrent writers can never
// both start from the same prior state.
type FileStore struct {
	mu           sync.Mutex
	path         string
	contentTypes []domain.ContentType
	byName       map[string]domain.ContentType

	// Configuration
	atomicWrites      bool
	fileMode          uint32
	snapshotDir       string
	snapshotInterval  time.Duration
	snapshotRetention int
	now               func() time.Time
	metrics           *metrics.Metrics

	// dirty is set by every save and cleared by a snapshot. Guarded by mu.
	dirty bool

	// Background workers
	backgroundWg sync.WaitGroup
	stopChan     chan struct{}
	startOnce    sync.Once
	stopOnce     sync.Once
}

// NewFileStore creates a store backed by the JSON file at path. The file is
// not touched until the first operation.
func NewFileStore(path string, options ...StoreOption) *FileStore {
	store := &FileStore{
		path:              path,
		contentTypes:      domain.ContentTypes(),
		atomicWrites:      true,
		fileMode:          0644,
		snapshotRetention: 10,
		now:               time.Now,
		dirty:             true,
		stopChan:          make(chan struct{}),
	}

	for _, option := range options {
		option(store)
	}

	store.byName = make(map[string]domain.ContentType, len(store.contentTypes))
	for _, ct := range store.contentTypes {
		store.byName[ct.Name] = ct
	}

	return store
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// SnapshotsEnabled reports whether a snapshot directory is configured.
func (s *FileStore) SnapshotsEnabled() bool {
	return s.snapshotDir != ""
}

// ContentType looks up one of the store's content types by name.
func (s *FileStore) ContentType(name string) (domain.ContentType, error) {
	ct, ok := s.byName[name]
	if !ok {
		return domain.ContentType{}, fmt.Errorf("%w: %s", domain.ErrUnknownContentType, name)
	}
	return ct, nil
}

// ContentTypeNames returns the store's content type names in order.
func (s *FileStore) ContentTypeNames() []string {
	names := make([]string, len(s.contentTypes))
	for i, ct := range s.contentTypes {
		names[i] = ct.Name
	}
	return names
}

// defaultDocument is the shape written when the backing file does not exist.
func (s *FileStore) defaultDocument() domain.Document {
	return domain.NewDocument(s.ContentTypeNames()...)
}
