package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adfharrison1/go-cms/pkg/domain"
)

func TestNextID(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.Record
		want    int64
	}{
		{"empty", nil, 1},
		{"single", []domain.Record{{"id": 1.0}}, 2},
		{"max not last", []domain.Record{{"id": 7.0}, {"id": 3.0}}, 8},
		{"mixed numeric types", []domain.Record{{"id": int64(4)}, {"id": 2}}, 5},
		{"ignores bad ids", []domain.Record{{"id": "9"}, {"id": 2.5}, {}, {"id": 1.0}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextID(tt.records))
		})
	}
}

func TestFindIndex(t *testing.T) {
	records := []domain.Record{{"id": 1.0}, {"id": "2"}, {"id": 3.0}}

	assert.Equal(t, 0, FindIndex(records, 1))
	assert.Equal(t, 2, FindIndex(records, 3))
	assert.Equal(t, -1, FindIndex(records, 2), "string ids never match")
	assert.Equal(t, -1, FindIndex(nil, 1))
}

func TestRemoveByID(t *testing.T) {
	records := []domain.Record{{"id": 1.0, "n": "a"}, {"id": 2.0, "n": "b"}, {"id": 3.0, "n": "c"}}

	remaining := RemoveByID(records, 2)
	assert.Equal(t, []domain.Record{{"id": 1.0, "n": "a"}, {"id": 3.0, "n": "c"}}, remaining)
	assert.Len(t, records, 3, "input is not modified")

	assert.Len(t, RemoveByID(records, 9), 3)
}

func TestMergeRecord(t *testing.T) {
	existing := domain.Record{"id": 1.0, "title": "A", "content": "B", "createdAt": "t0"}

	merged := MergeRecord(existing, domain.Record{"id": 5.0, "title": "C", "createdAt": "t1", "extra": nil})

	assert.Equal(t, domain.Record{"id": 1.0, "title": "C", "content": "B", "createdAt": "t0", "extra": nil}, merged)
	assert.Equal(t, "A", existing["title"], "existing record is not modified")
}

func TestLastN(t *testing.T) {
	records := []domain.Record{{"id": 1.0}, {"id": 2.0}, {"id": 3.0}}

	assert.Equal(t, []domain.Record{{"id": 3.0}, {"id": 2.0}}, LastN(records, 2))
	assert.Equal(t, []domain.Record{{"id": 3.0}, {"id": 2.0}, {"id": 1.0}}, LastN(records, 5))
	assert.Equal(t, []domain.Record{}, LastN(records, 0))
	assert.Equal(t, []domain.Record{}, LastN(nil, 3))
}
