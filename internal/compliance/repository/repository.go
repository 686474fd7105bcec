package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"aptivai_backend/internal/compliance/domain"
)

const entryColumns = `id, occurred_at, agent, action, user_consent, data_collected, purpose, retention, status, notes`

// Repo implements Repository with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new compliance repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// Append inserts an entry.
func (r *Repo) Append(ctx context.Context, params AppendParams) (Entry, error) {
	occurredAt := params.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	query := `
		INSERT INTO compliance_log (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + entryColumns

	entry, err := scanEntry(r.pool.QueryRow(ctx, query,
		uuid.New(), occurredAt, params.Agent, params.Action, params.UserConsent,
		nonNilFields(params.DataCollected), params.Purpose, params.Retention, string(params.Status), params.Notes,
	))
	if err != nil {
		return Entry{}, fmt.Errorf("insert compliance entry: %w", err)
	}
	return entry, nil
}

// Query applies the filter conjunctively. The search term is matched as a
// literal substring, so % and _ in user input are escaped.
func (r *Repo) Query(ctx context.Context, filter domain.Filter) ([]Entry, error) {
	var search *string
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		search = &pattern
	}
	var status, agent *string
	if filter.Status != "" {
		s := string(filter.Status)
		status = &s
	}
	if filter.Agent != "" {
		agent = &filter.Agent
	}

	query := `
		SELECT ` + entryColumns + `
		FROM compliance_log
		WHERE ($1::text IS NULL OR action ILIKE $1 OR agent ILIKE $1 OR notes ILIKE $1)
			AND ($2::text IS NULL OR status = $2)
			AND ($3::text IS NULL OR agent = $3)
		ORDER BY occurred_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, search, status, agent)
	if err != nil {
		return nil, fmt.Errorf("query compliance log: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan compliance entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate compliance log: %w", err)
	}
	return entries, nil
}

// Stats counts entries per status.
func (r *Repo) Stats(ctx context.Context) (Stats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'compliant'),
			COUNT(*) FILTER (WHERE status = 'review-required'),
			COUNT(*) FILTER (WHERE status = 'non-compliant')
		FROM compliance_log`

	var s Stats
	if err := r.pool.QueryRow(ctx, query).Scan(&s.Total, &s.Compliant, &s.ReviewRequired, &s.NonCompliant); err != nil {
		return Stats{}, fmt.Errorf("compliance stats: %w", err)
	}
	return s, nil
}

// Agents lists distinct agent names.
func (r *Repo) Agents(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT agent FROM compliance_log ORDER BY agent`)
	if err != nil {
		return nil, fmt.Errorf("list compliance agents: %w", err)
	}
	agents, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect compliance agents: %w", err)
	}
	return nonNilFields(agents), nil
}

func scanEntry(row pgx.Row) (Entry, error) {
	var (
		e      Entry
		status string
	)
	if err := row.Scan(
		&e.ID, &e.OccurredAt, &e.Agent, &e.Action, &e.UserConsent,
		&e.DataCollected, &e.Purpose, &e.Retention, &status, &e.Notes,
	); err != nil {
		return Entry{}, err
	}
	e.Status = domain.Status(status)
	e.DataCollected = nonNilFields(e.DataCollected)
	return e, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
