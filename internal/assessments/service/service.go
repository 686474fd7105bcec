package service

import (
	"context"

	"github.com/google/uuid"

	"aptivai_backend/internal/assessments/repository"
	"aptivai_backend/internal/assessments/transport"
	"aptivai_backend/internal/events"
	"aptivai_backend/internal/scoring"
	"aptivai_backend/platform/apperr"
	"aptivai_backend/platform/logger"
)

const msgAssessmentForbidden = "assessment belongs to another user"

// Service scores and records readiness assessments.
type Service struct {
	repo     repository.Repository
	analyzer scoring.Analyzer
	bus      events.Bus
	log      *logger.Logger
}

// New creates a new assessments service.
func New(repo repository.Repository, analyzer scoring.Analyzer, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, analyzer: analyzer, bus: bus, log: log}
}

// Questions returns the questionnaire.
func (s *Service) Questions() transport.QuestionsResponse {
	return transport.QuestionsResponse{Questions: scoring.Questions()}
}

// Submit scores answers, records the assessment and notifies subscribers.
// userID is nil for anonymous submissions. Nothing is recorded when the
// answers are incomplete or the gateway fails.
func (s *Service) Submit(ctx context.Context, userID *uuid.UUID, answers scoring.Answers, consentGiven bool) (transport.AssessmentResponse, error) {
	outcome, err := s.analyzer.Analyze(ctx, answers)
	if err != nil {
		return transport.AssessmentResponse{}, err
	}

	a, err := s.repo.Record(ctx, repository.RecordParams{
		UserID:    userID,
		Questions: scoring.Questions(),
		Answers:   answers,
		Outcome:   outcome,
	})
	if err != nil {
		s.log.DatabaseError("record assessment", err)
		return transport.AssessmentResponse{}, apperr.Persistence("record assessment", err)
	}

	s.log.Info("assessment recorded", "id", a.ID, "score", a.Result.Score, "priority", a.Result.Priority, "source", a.Source)

	// The assessment is committed at this point; downstream failures are
	// logged by the bus and do not fail the submission.
	_ = s.bus.PublishSync(ctx, events.AssessmentCompleted{
		BaseEvent:       events.NewBaseEvent(),
		AssessmentID:    a.ID,
		UserID:          a.UserID,
		Score:           a.Result.Score,
		Priority:        string(a.Result.Priority),
		Summary:         a.Result.Summary,
		Recommendations: a.Result.Recommendations,
		Source:          string(a.Source),
		AnsweredKeys:    answers.Keys(),
		ConsentGiven:    consentGiven,
	})

	return toResponse(a), nil
}

// GetByID returns an assessment owned by userID.
func (s *Service) GetByID(ctx context.Context, userID, id uuid.UUID) (transport.AssessmentResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.AssessmentResponse{}, err
	}
	if a.UserID == nil || *a.UserID != userID {
		return transport.AssessmentResponse{}, apperr.Forbidden(msgAssessmentForbidden)
	}
	return toResponse(a), nil
}

// ListByUser returns the caller's assessments, newest first.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) (transport.AssessmentListResponse, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return transport.AssessmentListResponse{}, err
	}
	out := make([]transport.AssessmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toResponse(a))
	}
	return transport.AssessmentListResponse{Items: out, Total: len(out)}, nil
}

func toResponse(a repository.Assessment) transport.AssessmentResponse {
	return transport.AssessmentResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Type:        a.Type,
		Answers:     a.Answers,
		Analysis:    a.Result,
		Source:      a.Source,
		CompletedAt: a.CompletedAt,
	}
}
