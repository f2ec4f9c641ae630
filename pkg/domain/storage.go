package domain

import "time"

// DocumentStore loads and saves the whole document.
type DocumentStore interface {
	Load() (Document, error)
	Save(doc Document) error
	// Mutate runs a load, fn, save sequence that no other mutation can interleave with.
	Mutate(fn func(doc Document) error) error
}

// RecordStore is the per-content-type CRUD surface built on top of a DocumentStore.
type RecordStore interface {
	ContentType(name string) (ContentType, error)
	List(contentType string) ([]Record, error)
	Get(contentType string, id int64) (Record, error)
	Create(contentType string, payload Record) (Record, error)
	Update(contentType string, id int64, payload Record) (Record, error)
	Delete(contentType string, id int64) error
	Recent(contentType string, n int) ([]Record, error)
	Counts() (map[string]int, error)
}

// SnapshotInfo describes a compressed backup of the document.
type SnapshotInfo struct {
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// SnapshotStore takes and lists document backups.
type SnapshotStore interface {
	WriteSnapshot() (SnapshotInfo, error)
	ListSnapshots() ([]SnapshotInfo, error)
}

// ContentStore combines every store capability the API consumes.
type ContentStore interface {
	DocumentStore
	RecordStore
	SnapshotStore
}
