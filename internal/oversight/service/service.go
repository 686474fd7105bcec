package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"aptivai_backend/internal/events"
	"aptivai_backend/internal/oversight/domain"
	"aptivai_backend/internal/oversight/repository"
	"aptivai_backend/internal/oversight/transport"
	"aptivai_backend/platform/apperr"
	"aptivai_backend/platform/logger"
)

// Service manages the human review queue.
type Service struct {
	repo   repository.Repository
	policy Policy
	bus    events.Bus
	log    *logger.Logger
	now    func() time.Time
}

// New creates a new oversight service.
func New(repo repository.Repository, policy Policy, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, policy: policy, bus: bus, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// HandleEvent raises an item when the policy asks for one.
func (s *Service) HandleEvent(ctx context.Context, event events.Event) error {
	params, ok := s.policy.Evaluate(event)
	if !ok {
		return nil
	}
	_, err := s.Raise(ctx, params)
	return err
}

// Raise adds a pending item to the queue.
func (s *Service) Raise(ctx context.Context, params repository.CreateParams) (transport.ItemResponse, error) {
	item, err := s.repo.Create(ctx, params)
	if err != nil {
		s.log.DatabaseError("create oversight item", err)
		return transport.ItemResponse{}, apperr.Persistence("create oversight item", err)
	}

	s.log.Info("oversight item raised", "id", item.ID, "type", item.Type, "priority", item.Priority)
	_ = s.bus.PublishSync(ctx, events.OversightItemRaised{
		BaseEvent: events.NewBaseEvent(),
		ItemID:    item.ID,
		Type:      string(item.Type),
		Title:     item.Title,
		Agent:     item.Agent,
		Priority:  string(item.Priority),
	})
	return toResponse(item), nil
}

// List returns items matching status; empty or "all" returns every item.
func (s *Service) List(ctx context.Context, status string) (transport.ItemListResponse, error) {
	filter, ok := domain.ParseStatusFilter(status)
	if !ok {
		return transport.ItemListResponse{}, apperr.Validation("unknown status filter").
			WithDetails(map[string]string{"status": status})
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return transport.ItemListResponse{}, err
	}
	out := make([]transport.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toResponse(item))
	}
	return transport.ItemListResponse{Items: out, Total: len(out)}, nil
}

// GetByID returns a single item.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.ItemResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.ItemResponse{}, err
	}
	return toResponse(item), nil
}

// Stats summarizes the queue.
func (s *Service) Stats(ctx context.Context) (repository.Stats, error) {
	return s.repo.Stats(ctx)
}

// Approve moves a pending item to approved.
func (s *Service) Approve(ctx context.Context, id, reviewer uuid.UUID) (transport.ItemResponse, error) {
	return s.decide(ctx, id, reviewer, domain.StatusApproved)
}

// Reject moves a pending item to rejected.
func (s *Service) Reject(ctx context.Context, id, reviewer uuid.UUID) (transport.ItemResponse, error) {
	return s.decide(ctx, id, reviewer, domain.StatusRejected)
}

// decide fails with InvalidState for items that are already decided,
// including a repeat of the same decision.
func (s *Service) decide(ctx context.Context, id, reviewer uuid.UUID, to domain.Status) (transport.ItemResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.ItemResponse{}, err
	}
	if !domain.CanTransition(item.Status, to) {
		return transport.ItemResponse{}, apperr.InvalidState(fmt.Sprintf("oversight item is already %s", item.Status)).
			WithDetails(map[string]string{"status": string(item.Status)})
	}

	decided, err := s.repo.SetStatus(ctx, repository.DecideParams{
		ID:        id,
		Status:    to,
		DecidedBy: reviewer,
		DecidedAt: s.now(),
	})
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return transport.ItemResponse{}, err
		}
		s.log.DatabaseError("decide oversight item", err)
		return transport.ItemResponse{}, apperr.Persistence("decide oversight item", err)
	}

	s.log.Info("oversight item decided", "id", id, "status", to, "reviewer", reviewer)
	_ = s.bus.PublishSync(ctx, events.OversightItemDecided{
		BaseEvent:  events.NewBaseEvent(),
		ItemID:     id,
		Type:       string(decided.Type),
		Status:     string(decided.Status),
		ReviewerID: reviewer,
	})
	return toResponse(decided), nil
}

func toResponse(item repository.Item) transport.ItemResponse {
	data := item.Payload
	if data == nil {
		data = map[string]any{}
	}
	return transport.ItemResponse{
		ID:          item.ID,
		Type:        string(item.Type),
		Title:       item.Title,
		Description: item.Description,
		Agent:       item.Agent,
		Priority:    string(item.Priority),
		Status:      string(item.Status),
		Timestamp:   item.CreatedAt,
		Data:        data,
		DecidedAt:   item.DecidedAt,
		DecidedBy:   item.DecidedBy,
	}
}
