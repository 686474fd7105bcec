package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"aptivai_backend/platform/apperr"
	"aptivai_backend/platform/db"
)

const uniqueViolation = "23505"

// Repository implements AuthRepository with PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new auth repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ AuthRepository = (*Repository)(nil)

func (r *Repository) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	user := User{
		ID:           uuid.New(),
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		FullName:     params.FullName,
		Roles:        params.Roles,
	}

	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO users (id, email, password_hash)
			VALUES ($1, $2, $3)
			RETURNING created_at
		`, user.ID, user.Email, user.PasswordHash).Scan(&user.CreatedAt); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO profiles (user_id, full_name, email)
			VALUES ($1, $2, $3)
		`, user.ID, user.FullName, user.Email); err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}

		for _, role := range user.Roles {
			if _, err := tx.Exec(ctx, `INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, user.ID, role); err != nil {
				return fmt.Errorf("insert role %s: %w", role, err)
			}
		}
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, apperr.Conflict(emailTakenMessage)
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return r.getUser(ctx, `WHERE u.email = $1`, email)
}

func (r *Repository) GetUserByID(ctx context.Context, userID uuid.UUID) (User, error) {
	return r.getUser(ctx, `WHERE u.id = $1`, userID)
}

func (r *Repository) getUser(ctx context.Context, where string, arg any) (User, error) {
	query := `
		SELECT u.id, u.email, u.password_hash, COALESCE(p.full_name, ''), u.created_at,
			COALESCE(ARRAY(SELECT role FROM user_roles WHERE user_id = u.id ORDER BY role), '{}')
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		` + where

	var user User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.CreatedAt, &user.Roles,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
