package transport

import (
	"time"

	"github.com/google/uuid"

	"aptivai_backend/internal/scoring"
)

// SubmitAssessmentRequest carries questionnaire answers keyed by question id.
type SubmitAssessmentRequest struct {
	Responses map[string]string `json:"responses" validate:"required"`
	// ConsentGiven records that the user agreed to their answers being stored
	// against their account.
	ConsentGiven bool `json:"consentGiven"`
}

// QuestionsResponse lists the readiness questionnaire in display order.
type QuestionsResponse struct {
	Questions []scoring.Question `json:"questions"`
}

// AssessmentResponse is a recorded assessment with its analysis.
type AssessmentResponse struct {
	ID          uuid.UUID       `json:"id"`
	UserID      *uuid.UUID      `json:"userId,omitempty"`
	Type        string          `json:"assessmentType"`
	Answers     scoring.Answers `json:"answers"`
	Analysis    scoring.Result  `json:"analysis"`
	Source      scoring.Source  `json:"source"`
	CompletedAt time.Time       `json:"completedAt"`
}

// AssessmentListResponse wraps a user's assessments.
type AssessmentListResponse struct {
	Items []AssessmentResponse `json:"items"`
	Total int                  `json:"total"`
}
