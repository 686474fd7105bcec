package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"aptivai_backend/platform/apperr"
)

const sessionColumns = `id, agent, user_id, messages, consent_given, created_at, updated_at`

// Repo implements Repository with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new chat session repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM ai_chat_sessions WHERE id = $1`
	s, err := scanSession(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Session{}, apperr.NotFound(sessionNotFoundMessage)
		}
		return Session{}, fmt.Errorf("get chat session: %w", err)
	}
	return s, nil
}

// Append inserts a new session or appends turns to the messages array.
// Consent, once given on a session, stays recorded.
func (r *Repo) Append(ctx context.Context, params AppendParams) (Session, error) {
	turns, err := json.Marshal(params.Turns)
	if err != nil {
		return Session{}, fmt.Errorf("marshal turns: %w", err)
	}

	if params.ID == nil {
		query := `
			INSERT INTO ai_chat_sessions (id, agent, user_id, messages, consent_given)
			VALUES ($1, $2, $3, $4::jsonb, $5)
			RETURNING ` + sessionColumns
		s, err := scanSession(r.pool.QueryRow(ctx, query, uuid.New(), params.Agent, params.UserID, turns, params.ConsentGiven))
		if err != nil {
			return Session{}, fmt.Errorf("insert chat session: %w", err)
		}
		return s, nil
	}

	query := `
		UPDATE ai_chat_sessions
		SET messages = messages || $2::jsonb,
			consent_given = consent_given OR $3,
			updated_at = now()
		WHERE id = $1
		RETURNING ` + sessionColumns
	s, err := scanSession(r.pool.QueryRow(ctx, query, *params.ID, turns, params.ConsentGiven))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Session{}, apperr.NotFound(sessionNotFoundMessage)
		}
		return Session{}, fmt.Errorf("append chat session: %w", err)
	}
	return s, nil
}

func scanSession(row pgx.Row) (Session, error) {
	var (
		s        Session
		messages []byte
	)
	if err := row.Scan(&s.ID, &s.Agent, &s.UserID, &messages, &s.ConsentGiven, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return Session{}, err
	}
	if err := json.Unmarshal(messages, &s.Messages); err != nil {
		return Session{}, fmt.Errorf("decode messages: %w", err)
	}
	return s, nil
}
