package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Profile is the aggregate lead record of one user.
type Profile struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	ReadinessScore       *int
	Priority             *string
	RecommendedSolutions []string
	LeadScore            *int
	CompanySize          *string
	Industry             *string
	PainPoints           []string
	LastInteraction      time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// UpsertParams refreshes the assessment-derived fields of a profile.
type UpsertParams struct {
	UserID          uuid.UUID
	Score           int
	Priority        string
	Recommendations []string
	InteractionAt   time.Time
}

// CompanyParams sets the descriptors owned by flows other than assessments.
type CompanyParams struct {
	UserID      uuid.UUID
	CompanySize *string
	Industry    *string
	PainPoints  []string
}

// ListParams filters the admin lead list.
type ListParams struct {
	Priority string
	Offset   int
	Limit    int
}

// Repository persists lead profiles. Every write is a single upsert keyed on
// user id so concurrent writers never produce a second row.
type Repository interface {
	Upsert(ctx context.Context, params UpsertParams) (Profile, error)
	SetLeadScore(ctx context.Context, userID uuid.UUID, score int, at time.Time) (Profile, error)
	UpdateCompany(ctx context.Context, params CompanyParams) (Profile, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (Profile, error)
	List(ctx context.Context, params ListParams) ([]Profile, int, error)
}
