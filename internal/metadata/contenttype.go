package metadata

import (
	"path"
	"strings"
)

// ContentTypeTable maps lower-case file extensions (".html") to the
// Content-Type written for them. The zero value matches nothing.
type ContentTypeTable struct {
	types map[string]string
}

// NewContentTypeTable builds a table from entries. Extensions are lower-cased
// and given a leading dot if missing.
func NewContentTypeTable(entries map[string]string) ContentTypeTable {
	return ContentTypeTable{}.With(entries)
}

// DefaultContentTypes returns the built-in mapping.
func DefaultContentTypes() ContentTypeTable {
	return NewContentTypeTable(map[string]string{
		".html": "text/html;charset=utf-8",
	})
}

// With returns a copy of t with entries added or overridden.
func (t ContentTypeTable) With(entries map[string]string) ContentTypeTable {
	merged := make(map[string]string, len(t.types)+len(entries))

	for ext, contentType := range t.types {
		merged[ext] = contentType
	}

	for ext, contentType := range entries {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}

		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		merged[ext] = strings.TrimSpace(contentType)
	}

	return ContentTypeTable{types: merged}
}

// Lookup returns the Content-Type for the extension of key.
func (t ContentTypeTable) Lookup(key string) (string, bool) {
	ext := strings.ToLower(path.Ext(key))
	if ext == "" {
		return "", false
	}

	contentType, ok := t.types[ext]

	return contentType, ok
}

// Len is the number of mapped extensions.
func (t ContentTypeTable) Len() int {
	return len(t.types)
}
