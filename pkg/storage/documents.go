package storage

import (
	"fmt"
	"strings"

	"github.com/adfharrison1/go-cms/pkg/domain"
)

// List returns the records of a content type in insertion order.
func (s *FileStore) List(contentType string) ([]domain.Record, error) {
	ct, err := s.ContentType(contentType)
	if err != nil {
		return nil, err
	}

	doc, err := s.Load()
	s.metrics.ObserveStoreOp("list", ct.Name, err)
	if err != nil {
		return nil, err
	}

	records := doc[ct.Name]
	if records == nil {
		records = []domain.Record{}
	}
	return records, nil
}

// Get returns the record with the given id.
func (s *FileStore) Get(contentType string, id int64) (domain.Record, error) {
	ct, err := s.ContentType(contentType)
	if err != nil {
		return nil, err
	}

	doc, err := s.Load()
	if err != nil {
		s.metrics.ObserveStoreOp("get", ct.Name, err)
		return nil, err
	}

	idx := FindIndex(doc[ct.Name], id)
	if idx < 0 {
		err = notFound(ct, id)
		s.metrics.ObserveStoreOp("get", ct.Name, err)
		return nil, err
	}

	s.metrics.ObserveStoreOp("get", ct.Name, nil)
	return doc[ct.Name][idx], nil
}

// Create validates the payload, assigns the next id and createdAt, and appends
// the new record to its content type.
func (s *FileStore) Create(contentType string, payload domain.Record) (domain.Record, error) {
	ct, err := s.ContentType(contentType)
	if err != nil {
		return nil, err
	}

	if missing := ct.Missing(payload); len(missing) > 0 {
		err := fmt.Errorf("%w: %s is missing %s", domain.ErrValidation, ct.Name, strings.Join(missing, ", "))
		s.metrics.ObserveStoreOp("create", ct.Name, err)
		return nil, err
	}

	var created domain.Record
	err = s.Mutate(func(doc domain.Document) error {
		records := doc[ct.Name]
		created = ct.Build(NextID(records), payload, s.now())
		doc[ct.Name] = append(records, created)
		s.metrics.SetRecordCount(ct.Name, len(doc[ct.Name]))
		return nil
	})
	s.metrics.ObserveStoreOp("create", ct.Name, err)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update shallow-merges payload over the record with the given id and returns
// the merged record. The stored id and createdAt are kept.
func (s *FileStore) Update(contentType string, id int64, payload domain.Record) (domain.Record, error) {
	ct, err := s.ContentType(contentType)
	if err != nil {
		return nil, err
	}

	var updated domain.Record
	err = s.Mutate(func(doc domain.Document) error {
		records := doc[ct.Name]
		idx := FindIndex(records, id)
		if idx < 0 {
			return notFound(ct, id)
		}
		updated = MergeRecord(records[idx], payload)
		records[idx] = updated
		return nil
	})
	s.metrics.ObserveStoreOp("update", ct.Name, err)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the record with the given id, keeping the order of the rest.
func (s *FileStore) Delete(contentType string, id int64) error {
	ct, err := s.ContentType(contentType)
	if err != nil {
		return err
	}

	err = s.Mutate(func(doc domain.Document) error {
		records := doc[ct.Name]
		remaining := RemoveByID(records, id)
		if len(remaining) == len(records) {
			return notFound(ct, id)
		}
		doc[ct.Name] = remaining
		s.metrics.SetRecordCount(ct.Name, len(remaining))
		return nil
	})
	s.metrics.ObserveStoreOp("delete", ct.Name, err)
	return err
}

// Recent returns up to n of the most recently appended records, newest first.
func (s *FileStore) Recent(contentType string, n int) ([]domain.Record, error) {
	records, err := s.List(contentType)
	if err != nil {
		return nil, err
	}
	return LastN(records, n), nil
}

// Counts returns the number of records per content type.
func (s *FileStore) Counts() (map[string]int, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(s.contentTypes))
	for _, name := range s.ContentTypeNames() {
		counts[name] = len(doc[name])
		s.metrics.SetRecordCount(name, counts[name])
	}
	return counts, nil
}

func notFound(ct domain.ContentType, id int64) error {
	return fmt.Errorf("%w: %s %d", domain.ErrNotFound, strings.ToLower(ct.Label), id)
}
