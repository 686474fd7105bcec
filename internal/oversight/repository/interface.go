package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"aptivai_backend/internal/oversight/domain"
)

// Item is an automated action awaiting or having received a human decision.
type Item struct {
	ID          uuid.UUID
	Type        domain.Type
	Title       string
	Description string
	Agent       string
	Priority    domain.Priority
	Status      domain.Status
	Payload     map[string]any
	CreatedAt   time.Time
	DecidedAt   *time.Time
	DecidedBy   *uuid.UUID
}

// CreateParams contains the fields of a new pending item.
type CreateParams struct {
	Type        domain.Type
	Title       string
	Description string
	Agent       string
	Priority    domain.Priority
	Payload     map[string]any
}

// DecideParams records a reviewer decision.
type DecideParams struct {
	ID        uuid.UUID
	Status    domain.Status
	DecidedBy uuid.UUID
	DecidedAt time.Time
}

// Stats summarizes the queue.
type Stats struct {
	Total               int `json:"total"`
	Pending             int `json:"pending"`
	Approved            int `json:"approved"`
	Rejected            int `json:"rejected"`
	HighPriorityPending int `json:"highPriorityPending"`
}

// Repository persists oversight items. List orders by created_at DESC, id DESC.
// SetStatus writes unconditionally; the pending check is the caller's job.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (Item, error)
	List(ctx context.Context, status domain.Status) ([]Item, error)
	SetStatus(ctx context.Context, params DecideParams) (Item, error)
	Stats(ctx context.Context) (Stats, error)
}
