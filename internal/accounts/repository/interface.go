// Package repository removes account data.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DeletedMarker replaces personal fields on a soft-deleted profile.
const DeletedMarker = "[DELETED]"

// Deletion reports what an account deletion removed.
type Deletion struct {
	UserID             uuid.UUID
	EnrollmentsRemoved int64
	RolesRemoved       int64
	DeletedAt          time.Time
}

// PersonalData is everything stored about an account, for a data access request.
type PersonalData struct {
	UserID      uuid.UUID        `json:"userId"`
	Email       string           `json:"email"`
	FullName    string           `json:"fullName"`
	CompanyName *string          `json:"companyName,omitempty"`
	Roles       []string         `json:"roles"`
	CreatedAt   time.Time        `json:"createdAt"`
	Enrollments []map[string]any `json:"enrollments"`
	Assessments []map[string]any `json:"assessments"`
}

// Repository deletes and exports account data.
type Repository interface {
	// Delete anonymizes the profile, removes enrollments and roles, and
	// removes the account, all or nothing. An unknown user is NotFound.
	Delete(ctx context.Context, userID uuid.UUID, at time.Time) (Deletion, error)
	ExportPersonalData(ctx context.Context, userID uuid.UUID) (PersonalData, error)
}

const accountNotFoundMessage = "account not found"
