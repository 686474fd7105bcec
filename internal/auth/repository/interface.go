// Package repository stores local accounts and their roles.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role names.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a local account.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Roles        []string
	CreatedAt    time.Time
}

// CreateUserParams contains the fields of a new account.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	FullName     string
	Roles        []string
}

// AuthRepository defines the account data operations.
type AuthRepository interface {
	// CreateUser inserts the account, its profile and roles atomically.
	// A taken email is reported as a conflict.
	CreateUser(ctx context.Context, params CreateUserParams) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (User, error)
}

const (
	userNotFoundMessage = "user not found"
	emailTakenMessage   = "an account with this email already exists"
)
