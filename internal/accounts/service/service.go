// Package service implements the data subject rights of an account owner.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"aptivai_backend/internal/accounts/repository"
	"aptivai_backend/internal/accounts/transport"
	"aptivai_backend/internal/events"
	"aptivai_backend/platform/apperr"
	"aptivai_backend/platform/logger"
)

// Service deletes and exports account data on the owner's request.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
	now  func() time.Time
}

// New creates a new accounts service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Delete removes the target account. Only the owner may delete it; any other
// caller is refused before anything is touched.
func (s *Service) Delete(ctx context.Context, callerID, targetID uuid.UUID) (transport.DeletionResponse, error) {
	if callerID != targetID {
		s.log.Warn("account deletion refused", "caller", callerID, "target", targetID)
		return transport.DeletionResponse{}, apperr.Forbidden("you can only delete your own account")
	}

	deletion, err := s.repo.Delete(ctx, targetID, s.now())
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return transport.DeletionResponse{}, err
		}
		s.log.DatabaseError("delete account", err)
		return transport.DeletionResponse{}, apperr.Persistence("delete account", err)
	}

	s.log.Info("account deleted", "userId", targetID,
		"enrollmentsRemoved", deletion.EnrollmentsRemoved, "rolesRemoved", deletion.RolesRemoved)
	_ = s.bus.PublishSync(ctx, events.AccountDeleted{
		BaseEvent:          events.NewBaseEvent(),
		UserID:             targetID,
		EnrollmentsRemoved: deletion.EnrollmentsRemoved,
		RolesRemoved:       deletion.RolesRemoved,
	})

	return transport.DeletionResponse{
		Success:            true,
		Message:            "Account deleted successfully",
		UserID:             targetID,
		EnrollmentsRemoved: deletion.EnrollmentsRemoved,
		RolesRemoved:       deletion.RolesRemoved,
		DeletedAt:          deletion.DeletedAt,
	}, nil
}

// ExportPersonalData returns everything stored about the caller.
func (s *Service) ExportPersonalData(ctx context.Context, callerID, targetID uuid.UUID) (repository.PersonalData, error) {
	if callerID != targetID {
		return repository.PersonalData{}, apperr.Forbidden("you can only export your own data")
	}
	data, err := s.repo.ExportPersonalData(ctx, targetID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return repository.PersonalData{}, err
		}
		s.log.DatabaseError("export personal data", err)
		return repository.PersonalData{}, apperr.Persistence("export personal data", err)
	}
	return data, nil
}
