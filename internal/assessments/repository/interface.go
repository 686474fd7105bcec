package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"aptivai_backend/internal/scoring"
)

// AssessmentTypeReadiness is the only assessment type recorded today.
const AssessmentTypeReadiness = "ai_readiness"

// Assessment is a completed, scored questionnaire.
type Assessment struct {
	ID          uuid.UUID
	UserID      *uuid.UUID
	Type        string
	Questions   []scoring.Question
	Answers     scoring.Answers
	Result      scoring.Result
	Source      scoring.Source
	CompletedAt time.Time
	CreatedAt   time.Time
}

// RecordParams contains the fields of a new assessment.
type RecordParams struct {
	UserID    *uuid.UUID
	Questions []scoring.Question
	Answers   scoring.Answers
	Outcome   scoring.Outcome
}

// Repository persists assessments. Assessments are never updated or deleted
// through this interface.
type Repository interface {
	Record(ctx context.Context, params RecordParams) (Assessment, error)
	GetByID(ctx context.Context, id uuid.UUID) (Assessment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Assessment, error)
}
