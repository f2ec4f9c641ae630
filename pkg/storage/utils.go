package storage

import (
	"github.com/adfharrison1/go-cms/pkg/domain"
)

// NextID returns the maximum id in records plus one, or 1 when there is none.
// Ids freed by deleting the highest records are handed out again.
func NextID(records []domain.Record) int64 {
	var maxID int64
	for _, rec := range records {
		if id, ok := rec.ID(); ok && id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// FindIndex returns the position of the record with the given id, or -1.
func FindIndex(records []domain.Record, id int64) int {
	for i, rec := range records {
		if recID, ok := rec.ID(); ok && recID == id {
			return i
		}
	}
	return -1
}

// RemoveByID returns records without the ones whose id matches, preserving
// the relative order of the others.
func RemoveByID(records []domain.Record, id int64) []domain.Record {
	remaining := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if recID, ok := rec.ID(); ok && recID == id {
			continue
		}
		remaining = append(remaining, rec)
	}
	return remaining
}

// MergeRecord copies existing and applies every field of updates over it,
// except id and createdAt which keep their existing values.
func MergeRecord(existing, updates domain.Record) domain.Record {
	merged := existing.Clone()
	for key, value := range updates {
		if key == domain.FieldID || key == domain.FieldCreatedAt {
			continue
		}
		merged[key] = value
	}
	return merged
}

// LastN returns the last n records in reverse order.
func LastN(records []domain.Record, n int) []domain.Record {
	if n > len(records) {
		n = len(records)
	}
	if n <= 0 {
		return []domain.Record{}
	}

	out := make([]domain.Record, 0, n)
	for i := len(records) - 1; i >= len(records)-n; i-- {
		out = append(out, records[i])
	}
	return out
}
