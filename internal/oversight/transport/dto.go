package transport

import (
	"time"

	"github.com/google/uuid"
)

// ListItemsRequest filters the queue by status: pending, approved, rejected or all.
type ListItemsRequest struct {
	Status string `form:"status" validate:"omitempty,oneof=pending approved rejected all"`
}

// ItemResponse is an oversight item.
type ItemResponse struct {
	ID          uuid.UUID      `json:"id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Agent       string         `json:"agent"`
	Priority    string         `json:"priority"`
	Status      string         `json:"status"`
	Timestamp   time.Time      `json:"timestamp"`
	Data        map[string]any `json:"data"`
	DecidedAt   *time.Time     `json:"decidedAt,omitempty"`
	DecidedBy   *uuid.UUID     `json:"decidedBy,omitempty"`
}

// ItemListResponse wraps a filtered list of items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}
