package api

import (
	"fmt"
	"sync"

	"github.com/adfharrison1/go-cms/pkg/domain"
)

// MockContentStore is an in-memory domain.ContentStore for handler tests.
// Setting err makes every operation fail with it.
type MockContentStore struct {
	mu          sync.Mutex
	doc         domain.Document
	snapshots   []domain.SnapshotInfo
	err         error
	snapshotErr error
}

func NewMockContentStore() *MockContentStore {
	return &MockContentStore{doc: domain.NewDocument(domain.ContentTypeNames()...)}
}

func (m *MockContentStore) Load() (domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc, m.err
}

func (m *MockContentStore) Save(doc domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.doc = doc
	return nil
}

func (m *MockContentStore) Mutate(fn func(doc domain.Document) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	return fn(m.doc)
}

func (m *MockContentStore) ContentType(name string) (domain.ContentType, error) {
	return domain.LookupContentType(name)
}

func (m *MockContentStore) List(contentType string) ([]domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.doc[contentType], nil
}

func (m *MockContentStore) Get(contentType string, id int64) (domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, rec := range m.doc[contentType] {
		if recID, _ := rec.ID(); recID == id {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", domain.ErrNotFound, id)
}

func (m *MockContentStore) Create(contentType string, payload domain.Record) (domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	ct, err := domain.LookupContentType(contentType)
	if err != nil {
		return nil, err
	}
	if len(ct.Missing(payload)) > 0 {
		return nil, domain.ErrValidation
	}
	rec := payload.Clone()
	rec["id"] = int64(len(m.doc[contentType]) + 1)
	m.doc[contentType] = append(m.doc[contentType], rec)
	return rec, nil
}

func (m *MockContentStore) Update(contentType string, id int64, payload domain.Record) (domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for i, rec := range m.doc[contentType] {
		if recID, _ := rec.ID(); recID == id {
			for k, v := range payload {
				if k != "id" {
					rec[k] = v
				}
			}
			m.doc[contentType][i] = rec
			return rec, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", domain.ErrNotFound, id)
}

func (m *MockContentStore) Delete(contentType string, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	records := m.doc[contentType]
	for i, rec := range records {
		if recID, _ := rec.ID(); recID == id {
			m.doc[contentType] = append(records[:i:i], records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %d", domain.ErrNotFound, id)
}

func (m *MockContentStore) Recent(contentType string, n int) ([]domain.Record, error) {
	records, err := m.List(contentType)
	if err != nil {
		return nil, err
	}
	out := []domain.Record{}
	for i := len(records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, records[i])
	}
	return out, nil
}

func (m *MockContentStore) Counts() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	counts := make(map[string]int)
	for name, records := range m.doc {
		counts[name] = len(records)
	}
	return counts, nil
}

func (m *MockContentStore) WriteSnapshot() (domain.SnapshotInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshotErr != nil {
		return domain.SnapshotInfo{}, m.snapshotErr
	}
	info := domain.SnapshotInfo{Path: fmt.Sprintf("snapshot_%d.gcms", len(m.snapshots)+1), Size: 64}
	m.snapshots = append([]domain.SnapshotInfo{info}, m.snapshots...)
	return info, nil
}

func (m *MockContentStore) ListSnapshots() ([]domain.SnapshotInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshotErr != nil {
		return nil, m.snapshotErr
	}
	return m.snapshots, nil
}

// seed appends records to a content type without validation.
func (m *MockContentStore) seed(contentType string, records ...domain.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc[contentType] = append(m.doc[contentType], records...)
}
