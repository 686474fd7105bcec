package repository

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"aptivai_backend/platform/apperr"
)

// Memory is an in-process Repository with the same upsert semantics as Repo.
type Memory struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]Profile
	now      func() time.Time
}

var _ Repository = (*Memory)(nil)

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{profiles: make(map[uuid.UUID]Profile), now: func() time.Time { return time.Now().UTC() }}
}

func (m *Memory) Upsert(_ context.Context, params UpsertParams) (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.getOrCreate(params.UserID, params.InteractionAt)
	recommendations := slices.Clone(nonNil(params.Recommendations))
	unchanged := p.ReadinessScore != nil && *p.ReadinessScore == params.Score &&
		p.Priority != nil && *p.Priority == params.Priority &&
		slices.Equal(p.RecommendedSolutions, recommendations) &&
		p.LastInteraction.Equal(params.InteractionAt)
	if unchanged {
		return p, nil
	}

	score, priority := params.Score, params.Priority
	p.ReadinessScore = &score
	p.Priority = &priority
	p.RecommendedSolutions = recommendations
	p.LastInteraction = params.InteractionAt
	p.UpdatedAt = m.now()
	m.profiles[p.UserID] = p
	return p, nil
}

func (m *Memory) SetLeadScore(_ context.Context, userID uuid.UUID, score int, at time.Time) (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.getOrCreate(userID, at)
	p.LeadScore = &score
	p.LastInteraction = at
	p.UpdatedAt = m.now()
	m.profiles[userID] = p
	return p, nil
}

func (m *Memory) UpdateCompany(_ context.Context, params CompanyParams) (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.getOrCreate(params.UserID, m.now())
	if params.CompanySize != nil {
		size := *params.CompanySize
		p.CompanySize = &size
	}
	if params.Industry != nil {
		industry := *params.Industry
		p.Industry = &industry
	}
	if params.PainPoints != nil {
		p.PainPoints = slices.Clone(params.PainPoints)
	}
	p.UpdatedAt = m.now()
	m.profiles[p.UserID] = p
	return p, nil
}

func (m *Memory) GetByUser(_ context.Context, userID uuid.UUID) (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[userID]
	if !ok {
		return Profile{}, apperr.NotFound(leadNotFoundMessage)
	}
	return p, nil
}

func (m *Memory) List(_ context.Context, params ListParams) ([]Profile, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []Profile
	for _, p := range m.profiles {
		if params.Priority != "" && (p.Priority == nil || *p.Priority != params.Priority) {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].LastInteraction.Equal(matched[j].LastInteraction) {
			return matched[i].LastInteraction.After(matched[j].LastInteraction)
		}
		return matched[i].ID.String() > matched[j].ID.String()
	})

	total := len(matched)
	start := min(params.Offset, total)
	end := total
	if params.Limit > 0 {
		end = min(start+params.Limit, total)
	}
	return matched[start:end], total, nil
}

// getOrCreate must be called with mu held.
func (m *Memory) getOrCreate(userID uuid.UUID, at time.Time) Profile {
	if p, ok := m.profiles[userID]; ok {
		return p
	}
	now := m.now()
	return Profile{
		ID:                   uuid.New(),
		UserID:               userID,
		RecommendedSolutions: []string{},
		PainPoints:           []string{},
		LastInteraction:      at,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}
