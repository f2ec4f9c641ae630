package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
)

// Record is a single entry of a content type (an event, a sermon, a member...).
// Apart from "id" and "createdAt" its fields are opaque to the store.
type Record map[string]interface{}

// Field names assigned by the store.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
)

// ID returns the record id if it holds an integral number.
func (r Record) ID() (int64, bool) {
	return IDFromValue(r[FieldID])
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// IDFromValue converts a decoded JSON value to a record id.
// Only integral numbers qualify; strings, booleans and fractions do not.
func IDFromValue(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		id, err := n.Int64()
		return id, err == nil
	default:
		return 0, false
	}
}

// Document is the single persisted aggregate: one ordered record list per
// content type, keyed by content type name.
type Document map[string][]Record

// NewDocument returns a document holding an empty list for each name.
func NewDocument(names ...string) Document {
	doc := make(Document, len(names))
	for _, name := range names {
		doc[name] = []Record{}
	}
	return doc
}

// MarshalJSON writes the registered content types first, in registry order,
// followed by any other keys sorted by name. Nil lists are written as [].
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range d.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		list := d[name]
		if list == nil {
			list = []Record{}
		}
		val, err := json.Marshal(list)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Keys returns the document keys in their stable serialization order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d))
	seen := make(map[string]bool, len(d))
	for _, name := range ContentTypeNames() {
		if _, ok := d[name]; ok {
			keys = append(keys, name)
			seen[name] = true
		}
	}

	var extra []string
	for name := range d {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}
