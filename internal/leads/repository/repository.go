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

	"aptivai_backend/platform/apperr"
)

const leadNotFoundMessage = "lead profile not found"

const profileColumns = `id, user_id, ai_readiness_score, priority_level, recommended_solutions, lead_score,
		company_size, industry, pain_points, last_interaction, created_at, updated_at`

// Repo implements Repository with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new lead profile repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// Upsert creates the profile or overwrites its readiness fields. Company
// descriptors are left untouched and a replay of identical values does not
// bump updated_at.
func (r *Repo) Upsert(ctx context.Context, params UpsertParams) (Profile, error) {
	recommendations, err := json.Marshal(nonNil(params.Recommendations))
	if err != nil {
		return Profile{}, fmt.Errorf("marshal recommendations: %w", err)
	}

	query := `
		INSERT INTO lead_profiles (id, user_id, ai_readiness_score, priority_level, recommended_solutions, last_interaction)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			ai_readiness_score = EXCLUDED.ai_readiness_score,
			priority_level = EXCLUDED.priority_level,
			recommended_solutions = EXCLUDED.recommended_solutions,
			last_interaction = EXCLUDED.last_interaction,
			updated_at = now()
		WHERE (lead_profiles.ai_readiness_score, lead_profiles.priority_level, lead_profiles.recommended_solutions, lead_profiles.last_interaction)
			IS DISTINCT FROM (EXCLUDED.ai_readiness_score, EXCLUDED.priority_level, EXCLUDED.recommended_solutions, EXCLUDED.last_interaction)`

	if _, err := r.pool.Exec(ctx, query,
		uuid.New(), params.UserID, params.Score, params.Priority, recommendations, params.InteractionAt,
	); err != nil {
		return Profile{}, fmt.Errorf("upsert lead profile: %w", err)
	}
	return r.GetByUser(ctx, params.UserID)
}

// SetLeadScore stores the 1-10 lead value score, creating the profile if needed.
func (r *Repo) SetLeadScore(ctx context.Context, userID uuid.UUID, score int, at time.Time) (Profile, error) {
	query := `
		INSERT INTO lead_profiles (id, user_id, lead_score, last_interaction)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			lead_score = EXCLUDED.lead_score,
			last_interaction = EXCLUDED.last_interaction,
			updated_at = now()
		RETURNING ` + profileColumns

	p, err := scanProfile(r.pool.QueryRow(ctx, query, uuid.New(), userID, score, at))
	if err != nil {
		return Profile{}, fmt.Errorf("set lead score: %w", err)
	}
	return p, nil
}

// UpdateCompany sets company descriptors. Nil fields keep their stored value.
func (r *Repo) UpdateCompany(ctx context.Context, params CompanyParams) (Profile, error) {
	var painPoints []byte
	if params.PainPoints != nil {
		var err error
		if painPoints, err = json.Marshal(params.PainPoints); err != nil {
			return Profile{}, fmt.Errorf("marshal pain points: %w", err)
		}
	}

	query := `
		INSERT INTO lead_profiles (id, user_id, company_size, industry, pain_points)
		VALUES ($1, $2, $3, $4, COALESCE($5::jsonb, '[]'::jsonb))
		ON CONFLICT (user_id) DO UPDATE SET
			company_size = COALESCE(EXCLUDED.company_size, lead_profiles.company_size),
			industry = COALESCE(EXCLUDED.industry, lead_profiles.industry),
			pain_points = COALESCE($5::jsonb, lead_profiles.pain_points),
			updated_at = now()
		RETURNING ` + profileColumns

	p, err := scanProfile(r.pool.QueryRow(ctx, query, uuid.New(), params.UserID, params.CompanySize, params.Industry, painPoints))
	if err != nil {
		return Profile{}, fmt.Errorf("update lead company: %w", err)
	}
	return p, nil
}

// GetByUser returns the profile of a user.
func (r *Repo) GetByUser(ctx context.Context, userID uuid.UUID) (Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM lead_profiles WHERE user_id = $1`

	p, err := scanProfile(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Profile{}, fmt.Errorf("get lead profile: %w", err)
	}
	return p, nil
}

// List returns profiles ordered by most recent interaction.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Profile, int, error) {
	var priority *string
	if params.Priority != "" {
		priority = &params.Priority
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM lead_profiles WHERE ($1::text IS NULL OR priority_level = $1)`, priority,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count lead profiles: %w", err)
	}

	query := `SELECT ` + profileColumns + `
		FROM lead_profiles
		WHERE ($1::text IS NULL OR priority_level = $1)
		ORDER BY last_interaction DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, priority, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list lead profiles: %w", err)
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lead profile: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate lead profiles: %w", err)
	}
	return out, total, nil
}

func scanProfile(row pgx.Row) (Profile, error) {
	var (
		p                           Profile
		recommendations, painPoints []byte
	)
	if err := row.Scan(
		&p.ID, &p.UserID, &p.ReadinessScore, &p.Priority, &recommendations, &p.LeadScore,
		&p.CompanySize, &p.Industry, &painPoints, &p.LastInteraction, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return Profile{}, err
	}
	if err := json.Unmarshal(recommendations, &p.RecommendedSolutions); err != nil {
		return Profile{}, fmt.Errorf("decode recommendations: %w", err)
	}
	if err := json.Unmarshal(painPoints, &p.PainPoints); err != nil {
		return Profile{}, fmt.Errorf("decode pain points: %w", err)
	}
	return p, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
