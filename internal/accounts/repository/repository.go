package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"aptivai_backend/platform/apperr"
	"aptivai_backend/platform/db"
)

// Repo implements Repository with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new accounts repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

var errAccountMissing = errors.New("account missing")

// Delete runs the four deletion steps in one transaction.
func (r *Repo) Delete(ctx context.Context, userID uuid.UUID, at time.Time) (Deletion, error) {
	result := Deletion{UserID: userID, DeletedAt: at}

	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			UPDATE profiles
			SET full_name = $2, email = $2, company_name = NULL, deletion_requested_at = $3, updated_at = $3
			WHERE user_id = $1
		`, userID, DeletedMarker, at); err != nil {
			return fmt.Errorf("anonymize profile: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM course_enrollments WHERE student_id = $1`, userID)
		if err != nil {
			return fmt.Errorf("delete enrollments: %w", err)
		}
		result.EnrollmentsRemoved = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID)
		if err != nil {
			return fmt.Errorf("delete roles: %w", err)
		}
		result.RolesRemoved = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return errAccountMissing
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errAccountMissing) {
			return Deletion{}, apperr.NotFound(accountNotFoundMessage)
		}
		return Deletion{}, err
	}
	return result, nil
}

// ExportPersonalData collects the account, its enrollments and assessments.
func (r *Repo) ExportPersonalData(ctx context.Context, userID uuid.UUID) (PersonalData, error) {
	data := PersonalData{UserID: userID}
	err := r.pool.QueryRow(ctx, `
		SELECT u.email, COALESCE(p.full_name, ''), p.company_name, u.created_at,
			COALESCE(ARRAY(SELECT role FROM user_roles WHERE user_id = u.id ORDER BY role), '{}')
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.id = $1
	`, userID).Scan(&data.Email, &data.FullName, &data.CompanyName, &data.CreatedAt, &data.Roles)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PersonalData{}, apperr.NotFound(accountNotFoundMessage)
		}
		return PersonalData{}, fmt.Errorf("get account: %w", err)
	}

	data.Enrollments, err = r.collectMaps(ctx, `
		SELECT id::text AS id, course_title, participants, amount_cents, status, created_at
		FROM course_enrollments WHERE student_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return PersonalData{}, fmt.Errorf("export enrollments: %w", err)
	}

	data.Assessments, err = r.collectMaps(ctx, `
		SELECT id::text AS id, assessment_type, answers, score, completed_at
		FROM ai_assessments WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return PersonalData{}, fmt.Errorf("export assessments: %w", err)
	}
	return data, nil
}

func (r *Repo) collectMaps(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []map[string]any{}
	}
	return out, nil
}
