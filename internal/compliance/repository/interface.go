// Package repository provides the append-only compliance log store.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"aptivai_backend/internal/compliance/domain"
)

// Entry is one logged automated action.
type Entry struct {
	ID            uuid.UUID
	OccurredAt    time.Time
	Agent         string
	Action        string
	UserConsent   bool
	DataCollected []string
	Purpose       string
	Retention     string
	Status        domain.Status
	Notes         string
}

// AppendParams contains the fields of a new entry. A zero OccurredAt is
// stamped with the current time.
type AppendParams struct {
	OccurredAt    time.Time
	Agent         string
	Action        string
	UserConsent   bool
	DataCollected []string
	Purpose       string
	Retention     string
	Status        domain.Status
	Notes         string
}

// Stats counts entries per status.
type Stats struct {
	Total          int `json:"total"`
	Compliant      int `json:"compliant"`
	ReviewRequired int `json:"reviewRequired"`
	NonCompliant   int `json:"nonCompliant"`
}

// Repository stores compliance entries. There is no update or delete.
type Repository interface {
	Append(ctx context.Context, params AppendParams) (Entry, error)
	// Query returns matching entries, newest first.
	Query(ctx context.Context, filter domain.Filter) ([]Entry, error)
	Stats(ctx context.Context) (Stats, error)
	// Agents returns the distinct agent names in alphabetical order.
	Agents(ctx context.Context) ([]string, error)
}

func nonNilFields(fields []string) []string {
	if fields == nil {
		return []string{}
	}
	return fields
}
