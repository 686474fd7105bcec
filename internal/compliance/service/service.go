package service

import (
	"context"

	"aptivai_backend/internal/compliance/domain"
	"aptivai_backend/internal/compliance/repository"
	"aptivai_backend/internal/compliance/transport"
	"aptivai_backend/platform/apperr"
	"aptivai_backend/platform/logger"
)

// Service appends to and reads the compliance log.
type Service struct {
	repo     repository.Repository
	archiver Archiver
	log      *logger.Logger
}

// New creates a new compliance service. archiver may be nil, in which case
// exports can be downloaded but not archived.
func New(repo repository.Repository, archiver Archiver, log *logger.Logger) *Service {
	return &Service{repo: repo, archiver: archiver, log: log}
}

// Append records one action. It fails only when the store does.
func (s *Service) Append(ctx context.Context, params repository.AppendParams) (transport.EntryResponse, error) {
	entry, err := s.repo.Append(ctx, params)
	if err != nil {
		s.log.DatabaseError("append compliance entry", err)
		return transport.EntryResponse{}, apperr.Persistence("append compliance entry", err)
	}
	s.log.Debug("compliance entry appended", "agent", entry.Agent, "status", entry.Status)
	return toResponse(entry), nil
}

// Query returns entries matching every supplied filter.
func (s *Service) Query(ctx context.Context, req transport.QueryRequest) (transport.EntryListResponse, error) {
	filter, err := parseFilter(req)
	if err != nil {
		return transport.EntryListResponse{}, err
	}
	entries, err := s.query(ctx, filter)
	if err != nil {
		return transport.EntryListResponse{}, err
	}
	return transport.EntryListResponse{Entries: entries, Total: len(entries)}, nil
}

// Stats returns counters per status.
func (s *Service) Stats(ctx context.Context) (repository.Stats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.log.DatabaseError("compliance stats", err)
		return repository.Stats{}, apperr.Persistence("compliance stats", err)
	}
	return stats, nil
}

// Agents returns the distinct agent names for the filter dropdown.
func (s *Service) Agents(ctx context.Context) (transport.AgentsResponse, error) {
	agents, err := s.repo.Agents(ctx)
	if err != nil {
		s.log.DatabaseError("list compliance agents", err)
		return transport.AgentsResponse{}, apperr.Persistence("list compliance agents", err)
	}
	return transport.AgentsResponse{Agents: agents}, nil
}

func (s *Service) query(ctx context.Context, filter domain.Filter) ([]transport.EntryResponse, error) {
	entries, err := s.repo.Query(ctx, filter)
	if err != nil {
		s.log.DatabaseError("query compliance log", err)
		return nil, apperr.Persistence("query compliance log", err)
	}
	out := make([]transport.EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toResponse(e))
	}
	return out, nil
}

func parseFilter(req transport.QueryRequest) (domain.Filter, error) {
	filter, ok := domain.NormalizeFilter(req.Search, req.Status, req.Agent)
	if !ok {
		return domain.Filter{}, apperr.Validation("unknown status filter").
			WithDetails(map[string]string{"status": req.Status})
	}
	return filter, nil
}

func toResponse(e repository.Entry) transport.EntryResponse {
	return transport.EntryResponse{
		ID:            e.ID,
		Timestamp:     e.OccurredAt,
		Agent:         e.Agent,
		Action:        e.Action,
		UserConsent:   e.UserConsent,
		DataCollected: e.DataCollected,
		Purpose:       e.Purpose,
		Retention:     e.Retention,
		Status:        string(e.Status),
		Notes:         e.Notes,
	}
}
