package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"aptivai_backend/platform/apperr"
)

// Memory is an in-process Repository.
type Memory struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]Session
}

var _ Repository = (*Memory)(nil)

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[uuid.UUID]Session)}
}

func (m *Memory) Get(_ context.Context, id uuid.UUID) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, apperr.NotFound(sessionNotFoundMessage)
	}
	s.Messages = slices.Clone(s.Messages)
	return s, nil
}

func (m *Memory) Append(_ context.Context, params AppendParams) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	if params.ID == nil {
		s := Session{
			ID:           uuid.New(),
			Agent:        params.Agent,
			UserID:       params.UserID,
			Messages:     slices.Clone(params.Turns),
			ConsentGiven: params.ConsentGiven,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		m.sessions[s.ID] = s
		return s, nil
	}

	s, ok := m.sessions[*params.ID]
	if !ok {
		return Session{}, apperr.NotFound(sessionNotFoundMessage)
	}
	s.Messages = append(slices.Clone(s.Messages), params.Turns...)
	s.ConsentGiven = s.ConsentGiven || params.ConsentGiven
	s.UpdatedAt = now
	m.sessions[s.ID] = s
	return s, nil
}
