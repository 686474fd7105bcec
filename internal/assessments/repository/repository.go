package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"aptivai_backend/internal/scoring"
	"aptivai_backend/platform/apperr"
)

const assessmentNotFoundMessage = "assessment not found"

// Repo implements Repository with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new assessments repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// Record inserts a completed assessment. The full analysis is stored in the
// recommendations column so the report can be rendered again later.
func (r *Repo) Record(ctx context.Context, params RecordParams) (Assessment, error) {
	questions, err := json.Marshal(params.Questions)
	if err != nil {
		return Assessment{}, fmt.Errorf("marshal questions: %w", err)
	}
	answers, err := json.Marshal(params.Answers)
	if err != nil {
		return Assessment{}, fmt.Errorf("marshal answers: %w", err)
	}
	analysis, err := json.Marshal(params.Outcome.Result)
	if err != nil {
		return Assessment{}, fmt.Errorf("marshal analysis: %w", err)
	}

	query := `
		INSERT INTO ai_assessments (id, user_id, assessment_type, questions, answers, score, recommendations, analysis_source, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	a := Assessment{
		ID:          uuid.New(),
		UserID:      params.UserID,
		Type:        AssessmentTypeReadiness,
		Questions:   params.Questions,
		Answers:     params.Answers,
		Result:      params.Outcome.Result,
		Source:      params.Outcome.Source,
		CompletedAt: time.Now().UTC(),
	}

	err = r.pool.QueryRow(ctx, query,
		a.ID, a.UserID, a.Type, questions, answers, a.Result.Score, analysis, string(a.Source), a.CompletedAt,
	).Scan(&a.CreatedAt)
	if err != nil {
		return Assessment{}, fmt.Errorf("insert assessment: %w", err)
	}
	return a, nil
}

// GetByID retrieves an assessment by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Assessment, error) {
	query := `
		SELECT id, user_id, assessment_type, questions, answers, recommendations, analysis_source, completed_at, created_at
		FROM ai_assessments
		WHERE id = $1`

	a, err := scanAssessment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Assessment{}, apperr.NotFound(assessmentNotFoundMessage)
		}
		return Assessment{}, fmt.Errorf("get assessment by id: %w", err)
	}
	return a, nil
}

// ListByUser returns a user's assessments, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]Assessment, error) {
	query := `
		SELECT id, user_id, assessment_type, questions, answers, recommendations, analysis_source, completed_at, created_at
		FROM ai_assessments
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assessments: %w", err)
	}
	return out, nil
}

func scanAssessment(row pgx.Row) (Assessment, error) {
	var (
		a                            Assessment
		questions, answers, analysis []byte
		source                       string
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.Type, &questions, &answers, &analysis, &source, &a.CompletedAt, &a.CreatedAt); err != nil {
		return Assessment{}, err
	}
	if err := json.Unmarshal(questions, &a.Questions); err != nil {
		return Assessment{}, fmt.Errorf("decode questions: %w", err)
	}
	if err := json.Unmarshal(answers, &a.Answers); err != nil {
		return Assessment{}, fmt.Errorf("decode answers: %w", err)
	}
	if err := json.Unmarshal(analysis, &a.Result); err != nil {
		return Assessment{}, fmt.Errorf("decode analysis: %w", err)
	}
	a.Source = scoring.Source(source)
	return a, nil
}
