package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"aptivai_backend/internal/oversight/domain"
	"aptivai_backend/platform/apperr"
)

const itemNotFoundMessage = "oversight item not found"

const itemColumns = `id, type, title, description, agent, priority, status, payload, created_at, decided_at, decided_by`

// Repo implements Repository with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new oversight repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// Create inserts a pending item.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Item, error) {
	payload, err := json.Marshal(nonNilPayload(params.Payload))
	if err != nil {
		return Item{}, fmt.Errorf("marshal payload: %w", err)
	}

	query := `
		INSERT INTO oversight_items (id, type, title, description, agent, priority, status, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + itemColumns

	item, err := scanItem(r.pool.QueryRow(ctx, query,
		uuid.New(), string(params.Type), params.Title, params.Description, params.Agent,
		string(params.Priority), string(domain.StatusPending), payload,
	))
	if err != nil {
		return Item{}, fmt.Errorf("insert oversight item: %w", err)
	}
	return item, nil
}

// GetByID retrieves an item by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Item, error) {
	query := `SELECT ` + itemColumns + ` FROM oversight_items WHERE id = $1`

	item, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, apperr.NotFound(itemNotFoundMessage)
		}
		return Item{}, fmt.Errorf("get oversight item: %w", err)
	}
	return item, nil
}

// List returns items with the given status, or every item when status is empty.
func (r *Repo) List(ctx context.Context, status domain.Status) ([]Item, error) {
	var filter *string
	if status != "" {
		s := string(status)
		filter = &s
	}

	query := `SELECT ` + itemColumns + `
		FROM oversight_items
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, filter)
	if err != nil {
		return nil, fmt.Errorf("list oversight items: %w", err)
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan oversight item: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate oversight items: %w", err)
	}
	return out, nil
}

// SetStatus records a decision. Concurrent decisions on the same item resolve
// last-write-wins.
func (r *Repo) SetStatus(ctx context.Context, params DecideParams) (Item, error) {
	query := `
		UPDATE oversight_items
		SET status = $2, decided_at = $3, decided_by = $4
		WHERE id = $1
		RETURNING ` + itemColumns

	item, err := scanItem(r.pool.QueryRow(ctx, query, params.ID, string(params.Status), params.DecidedAt, params.DecidedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, apperr.NotFound(itemNotFoundMessage)
		}
		return Item{}, fmt.Errorf("set oversight status: %w", err)
	}
	return item, nil
}

// Stats counts items per status.
func (r *Repo) Stats(ctx context.Context) (Stats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COUNT(*) FILTER (WHERE status = 'pending' AND priority = 'high')
		FROM oversight_items`

	var s Stats
	if err := r.pool.QueryRow(ctx, query).Scan(&s.Total, &s.Pending, &s.Approved, &s.Rejected, &s.HighPriorityPending); err != nil {
		return Stats{}, fmt.Errorf("oversight stats: %w", err)
	}
	return s, nil
}

func scanItem(row pgx.Row) (Item, error) {
	var (
		item                       Item
		itemType, priority, status string
		payload                    []byte
	)
	if err := row.Scan(
		&item.ID, &itemType, &item.Title, &item.Description, &item.Agent, &priority, &status,
		&payload, &item.CreatedAt, &item.DecidedAt, &item.DecidedBy,
	); err != nil {
		return Item{}, err
	}
	item.Type = domain.Type(itemType)
	item.Priority = domain.Priority(priority)
	item.Status = domain.Status(status)
	if err := json.Unmarshal(payload, &item.Payload); err != nil {
		return Item{}, fmt.Errorf("decode payload: %w", err)
	}
	return item, nil
}

func nonNilPayload(p map[string]any) map[string]any {
	if p == nil {
		return map[string]any{}
	}
	return p
}
