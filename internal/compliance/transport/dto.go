package transport

import (
	"time"

	"github.com/google/uuid"
)

// QueryRequest filters the log. Status and agent accept "all".
type QueryRequest struct {
	Search string `form:"search" validate:"max=200"`
	Status string `form:"status" validate:"omitempty,oneof=compliant review-required non-compliant all"`
	Agent  string `form:"agent" validate:"max=120"`
}

// EntryResponse is one compliance log entry.
type EntryResponse struct {
	ID            uuid.UUID `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Agent         string    `json:"agent"`
	Action        string    `json:"action"`
	UserConsent   bool      `json:"userConsent"`
	DataCollected []string  `json:"dataCollected"`
	Purpose       string    `json:"purpose"`
	Retention     string    `json:"retention"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
}

// EntryListResponse wraps a filtered list of entries.
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
	Total   int             `json:"total"`
}

// ExportFilters echoes the filters an export was produced with.
type ExportFilters struct {
	Search string `json:"search"`
	Status string `json:"status"`
	Agent  string `json:"agent"`
}

// ExportDocument is the downloadable compliance export.
type ExportDocument struct {
	ExportedAt time.Time       `json:"exportedAt"`
	Filters    ExportFilters   `json:"filters"`
	Count      int             `json:"count"`
	Entries    []EntryResponse `json:"entries"`
}

// AgentsResponse lists the agents that appear in the log.
type AgentsResponse struct {
	Agents []string `json:"agents"`
}

// ArchiveResponse points to an archived export.
type ArchiveResponse struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
	Count     int       `json:"count"`
}
