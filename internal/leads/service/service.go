package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"aptivai_backend/internal/events"
	"aptivai_backend/internal/leads/repository"
	"aptivai_backend/internal/leads/transport"
	"aptivai_backend/platform/apperr"
	"aptivai_backend/platform/logger"
)

// Service maintains lead profiles.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new leads service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Upsert refreshes the readiness fields of a user's lead profile. Anonymous
// assessments have no profile and are skipped without error.
func (s *Service) Upsert(ctx context.Context, userID *uuid.UUID, score int, priority string, recommendations []string, at time.Time) error {
	if userID == nil {
		s.log.Debug("lead upsert skipped for anonymous assessment")
		return nil
	}

	if _, err := s.repo.Upsert(ctx, repository.UpsertParams{
		UserID:          *userID,
		Score:           score,
		Priority:        priority,
		Recommendations: recommendations,
		InteractionAt:   at.UTC(),
	}); err != nil {
		s.log.DatabaseError("upsert lead profile", err)
		return apperr.Persistence("upsert lead profile", err)
	}
	return nil
}

// ScoreLead rates a lead from its engagement signals and stores the score.
func (s *Service) ScoreLead(ctx context.Context, req transport.ScoreLeadRequest) (transport.LeadScoreResponse, error) {
	score, reasons := ValueScore(Signals{
		Role:                  req.Role,
		Employees:             req.Employees,
		SpecificRequirements:  req.SpecificRequirements,
		BudgetDiscussed:       req.BudgetDiscussed,
		Touchpoints:           req.Touchpoints,
		ResourcesDownloaded:   req.ResourcesDownloaded,
		ConsultationRequested: req.ConsultationRequested,
	})
	band := BandFor(score)

	p, err := s.repo.SetLeadScore(ctx, req.UserID, score, time.Now().UTC())
	if err != nil {
		s.log.DatabaseError("set lead score", err)
		return transport.LeadScoreResponse{}, apperr.Persistence("set lead score", err)
	}

	s.log.Info("lead scored", "userId", req.UserID, "score", score, "band", band)

	_ = s.bus.PublishSync(ctx, events.LeadScored{
		BaseEvent: events.NewBaseEvent(),
		UserID:    req.UserID,
		Score:     score,
		Band:      string(band),
		Reasons:   reasons,
	})

	return transport.LeadScoreResponse{
		Lead:    toResponse(p),
		Score:   score,
		Band:    string(band),
		Reasons: reasons,
	}, nil
}

// UpdateCompany sets company descriptors without touching readiness fields.
func (s *Service) UpdateCompany(ctx context.Context, userID uuid.UUID, req transport.UpdateCompanyRequest) (transport.LeadResponse, error) {
	p, err := s.repo.UpdateCompany(ctx, repository.CompanyParams{
		UserID:      userID,
		CompanySize: req.CompanySize,
		Industry:    req.Industry,
		PainPoints:  req.PainPoints,
	})
	if err != nil {
		s.log.DatabaseError("update lead company", err)
		return transport.LeadResponse{}, apperr.Persistence("update lead company", err)
	}
	return toResponse(p), nil
}

// GetByUser returns a user's lead profile.
func (s *Service) GetByUser(ctx context.Context, userID uuid.UUID) (transport.LeadResponse, error) {
	p, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return toResponse(p), nil
}

// List returns a page of lead profiles.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	page := max(req.Page, 1)
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	items, total, err := s.repo.List(ctx, repository.ListParams{
		Priority: req.Priority,
		Offset:   (page - 1) * pageSize,
		Limit:    pageSize,
	})
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	out := make([]transport.LeadResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toResponse(p))
	}
	return transport.LeadListResponse{Items: out, Total: total, Page: page, PageSize: pageSize}, nil
}

func toResponse(p repository.Profile) transport.LeadResponse {
	return transport.LeadResponse{
		ID:                   p.ID,
		UserID:               p.UserID,
		ReadinessScore:       p.ReadinessScore,
		Priority:             p.Priority,
		RecommendedSolutions: nonNilStrings(p.RecommendedSolutions),
		LeadScore:            p.LeadScore,
		CompanySize:          p.CompanySize,
		Industry:             p.Industry,
		PainPoints:           nonNilStrings(p.PainPoints),
		LastInteraction:      p.LastInteraction,
		UpdatedAt:            p.UpdatedAt,
	}
}
