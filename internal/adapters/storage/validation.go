package storage

import (
	"fmt"
	"strings"
)

// AllowedContentTypes lists the document types the application stores.
var AllowedContentTypes = map[string]bool{
	"application/json": true,
	"text/csv":         true,
	"text/plain":       true,
	"application/pdf":  true,
}

// ValidateContentType checks if the content type is allowed.
func ValidateContentType(contentType string) error {
	normalized := strings.Split(contentType, ";")[0]
	normalized = strings.TrimSpace(strings.ToLower(normalized))

	if !AllowedContentTypes[normalized] {
		return fmt.Errorf("content type %q is not allowed", contentType)
	}
	return nil
}
