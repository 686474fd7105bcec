package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"aptivai_backend/platform/apperr"
)

// Memory is an in-process Repository used by tests and local runs without a database.
type Memory struct {
	mu    sync.RWMutex
	items map[uuid.UUID]Assessment
	now   func() time.Time
}

var _ Repository = (*Memory)(nil)

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{items: make(map[uuid.UUID]Assessment), now: func() time.Time { return time.Now().UTC() }}
}

func (m *Memory) Record(_ context.Context, params RecordParams) (Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	a := Assessment{
		ID:          uuid.New(),
		UserID:      params.UserID,
		Type:        AssessmentTypeReadiness,
		Questions:   params.Questions,
		Answers:     params.Answers,
		Result:      params.Outcome.Result,
		Source:      params.Outcome.Source,
		CompletedAt: now,
		CreatedAt:   now,
	}
	m.items[a.ID] = a
	return a, nil
}

func (m *Memory) GetByID(_ context.Context, id uuid.UUID) (Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.items[id]
	if !ok {
		return Assessment{}, apperr.NotFound(assessmentNotFoundMessage)
	}
	return a, nil
}

func (m *Memory) ListByUser(_ context.Context, userID uuid.UUID) ([]Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Assessment
	for _, a := range m.items {
		if a.UserID != nil && *a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}
