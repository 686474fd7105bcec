package repository

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"aptivai_backend/internal/oversight/domain"
	"aptivai_backend/platform/apperr"
)

// Memory is an in-process Repository.
type Memory struct {
	mu    sync.RWMutex
	items map[uuid.UUID]Item
	now   func() time.Time
}

var _ Repository = (*Memory)(nil)

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{items: make(map[uuid.UUID]Item), now: func() time.Time { return time.Now().UTC() }}
}

func (m *Memory) Create(_ context.Context, params CreateParams) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item := Item{
		ID:          uuid.New(),
		Type:        params.Type,
		Title:       params.Title,
		Description: params.Description,
		Agent:       params.Agent,
		Priority:    params.Priority,
		Status:      domain.StatusPending,
		Payload:     maps.Clone(nonNilPayload(params.Payload)),
		CreatedAt:   m.now(),
	}
	m.items[item.ID] = item
	return item, nil
}

func (m *Memory) GetByID(_ context.Context, id uuid.UUID) (Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		return Item{}, apperr.NotFound(itemNotFoundMessage)
	}
	return item, nil
}

func (m *Memory) List(_ context.Context, status domain.Status) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Item
	for _, item := range m.items {
		if status == "" || item.Status == status {
			out = append(out, item)
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

func (m *Memory) SetStatus(_ context.Context, params DecideParams) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[params.ID]
	if !ok {
		return Item{}, apperr.NotFound(itemNotFoundMessage)
	}
	decidedAt, decidedBy := params.DecidedAt, params.DecidedBy
	item.Status = params.Status
	item.DecidedAt = &decidedAt
	item.DecidedBy = &decidedBy
	m.items[item.ID] = item
	return item, nil
}

func (m *Memory) Stats(_ context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var s Stats
	for _, item := range m.items {
		s.Total++
		switch item.Status {
		case domain.StatusPending:
			s.Pending++
			if item.Priority == domain.PriorityHigh {
				s.HighPriorityPending++
			}
		case domain.StatusApproved:
			s.Approved++
		case domain.StatusRejected:
			s.Rejected++
		}
	}
	return s, nil
}
