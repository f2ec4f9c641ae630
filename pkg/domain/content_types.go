package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the ISO-8601 form used for store-assigned timestamps,
// millisecond precision in UTC (2025-01-01T00:00:00.000Z).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// FieldDefault produces the value of a field the create payload left empty.
type FieldDefault func(now time.Time) interface{}

// Value returns a FieldDefault that always yields v.
func Value(v interface{}) FieldDefault {
	return func(time.Time) interface{} { return v }
}

// Now is the FieldDefault for date fields that default to the creation time.
func Now(now time.Time) interface{} {
	return FormatTimestamp(now)
}

// ContentType describes one named record list of the document.
type ContentType struct {
	Name     string                  // JSON key and URL segment, e.g. "events"
	Label    string                  // singular display name, e.g. "Event"
	Fields   []string                // fields copied from a create payload, in order
	Required []string                // fields that must be present on create
	Defaults map[string]FieldDefault // values for optional fields left empty
}

// Missing returns the required fields the payload does not provide.
func (ct ContentType) Missing(payload Record) []string {
	var missing []string
	for _, field := range ct.Required {
		if !IsPresent(payload[field]) {
			missing = append(missing, field)
		}
	}
	return missing
}

// RequiredMessage is the validation message for a create payload.
func (ct ContentType) RequiredMessage() string {
	return "Missing required fields: " + strings.Join(ct.Required, " and ")
}

// Build constructs a new record: id, then every registered field taken from
// the payload or its default, then createdAt.
func (ct ContentType) Build(id int64, payload Record, now time.Time) Record {
	rec := Record{FieldID: id}
	for _, field := range ct.Fields {
		if v, ok := payload[field]; ok && IsPresent(v) {
			rec[field] = v
			continue
		}
		if def, ok := ct.Defaults[field]; ok {
			rec[field] = def(now)
		}
	}
	rec[FieldCreatedAt] = FormatTimestamp(now)
	return rec
}

// IsPresent reports whether a payload value counts as supplied. Missing,
// null, empty strings, false and zero do not.
func IsPresent(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	case int:
		return val != 0
	case int64:
		return val != 0
	default:
		return true
	}
}

var registry = []ContentType{
	{
		Name:     "events",
		Label:    "Event",
		Fields:   []string{"title", "description", "date"},
		Required: []string{"title", "date"},
		Defaults: map[string]FieldDefault{"description": Value("")},
	},
	{
		Name:     "sermons",
		Label:    "Sermon",
		Fields:   []string{"title", "speaker", "videoUrl", "date"},
		Required: []string{"title", "speaker"},
		Defaults: map[string]FieldDefault{"videoUrl": Value(""), "date": Now},
	},
	{
		Name:     "members",
		Label:    "Member",
		Fields:   []string{"name", "email", "phone", "joinedAt"},
		Required: []string{"name", "email"},
		Defaults: map[string]FieldDefault{"phone": Value(""), "joinedAt": Now},
	},
	{
		Name:     "videos",
		Label:    "Video",
		Fields:   []string{"title", "url", "description", "uploadedAt"},
		Required: []string{"title", "url"},
		Defaults: map[string]FieldDefault{"description": Value(""), "uploadedAt": Now},
	},
	{
		Name:     "blog",
		Label:    "Blog post",
		Fields:   []string{"title", "content", "author", "publishedAt"},
		Required: []string{"title", "content"},
		Defaults: map[string]FieldDefault{"author": Value("Admin"), "publishedAt": Now},
	},
	{
		Name:     "testimonies",
		Label:    "Testimony",
		Fields:   []string{"name", "message", "date"},
		Required: []string{"name", "message"},
		Defaults: map[string]FieldDefault{"date": Now},
	},
	{
		Name:     "about",
		Label:    "About entry",
		Fields:   []string{"title", "content"},
		Required: []string{"title", "content"},
	},
}

// ContentTypes returns the built-in content types in canonical order.
func ContentTypes() []ContentType {
	out := make([]ContentType, len(registry))
	copy(out, registry)
	return out
}

// ContentTypeNames returns the built-in content type names in canonical order.
func ContentTypeNames() []string {
	names := make([]string, len(registry))
	for i, ct := range registry {
		names[i] = ct.Name
	}
	return names
}

// LookupContentType finds a built-in content type by name.
func LookupContentType(name string) (ContentType, error) {
	for _, ct := range registry {
		if ct.Name == name {
			return ct, nil
		}
	}
	return ContentType{}, fmt.Errorf("%w: %s", ErrUnknownContentType, name)
}
