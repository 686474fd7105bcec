package storage

import (
	"strings"
	"testing"
)

func TestValidateContentType(t *testing.T) {
	tests := []struct {
		contentType string
		wantErr     bool
	}{
		{"application/json", false},
		{"application/json; charset=utf-8", false},
		{"TEXT/CSV", false},
		{"image/png", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateContentType(tt.contentType)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: expected error=%v, got %v", tt.contentType, tt.wantErr, err)
		}
	}
}

func TestObjectKeyIsUniqueAndKeepsExtension(t *testing.T) {
	a := objectKey("compliance/2026-10", "export.json")
	b := objectKey("compliance/2026-10", "export.json")
	if a == b {
		t.Fatal("expected unique keys")
	}
	if !strings.HasPrefix(a, "compliance/2026-10/export_") || !strings.HasSuffix(a, ".json") {
		t.Errorf("unexpected key %q", a)
	}
}
