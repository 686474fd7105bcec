package repository

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"aptivai_backend/internal/compliance/domain"
)

// Memory is an in-process Repository.
type Memory struct {
	mu      sync.RWMutex
	entries []Entry
}

var _ Repository = (*Memory)(nil)

// NewMemory creates an empty in-memory log.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Append(_ context.Context, params AppendParams) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	occurredAt := params.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	entry := Entry{
		ID:            uuid.New(),
		OccurredAt:    occurredAt,
		Agent:         params.Agent,
		Action:        params.Action,
		UserConsent:   params.UserConsent,
		DataCollected: slices.Clone(nonNilFields(params.DataCollected)),
		Purpose:       params.Purpose,
		Retention:     params.Retention,
		Status:        params.Status,
		Notes:         params.Notes,
	}
	m.entries = append(m.entries, entry)
	return entry, nil
}

func (m *Memory) Query(_ context.Context, filter domain.Filter) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Agent != "" && e.Agent != filter.Agent {
			continue
		}
		if !filter.MatchesText(e.Action, e.Agent, e.Notes) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.After(out[j].OccurredAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}

func (m *Memory) Stats(_ context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Stats{Total: len(m.entries)}
	for _, e := range m.entries {
		switch e.Status {
		case domain.StatusCompliant:
			s.Compliant++
		case domain.StatusReviewRequired:
			s.ReviewRequired++
		case domain.StatusNonCompliant:
			s.NonCompliant++
		}
	}
	return s, nil
}

func (m *Memory) Agents(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{})
	agents := make([]string, 0)
	for _, e := range m.entries {
		if _, ok := seen[e.Agent]; ok {
			continue
		}
		seen[e.Agent] = struct{}{}
		agents = append(agents, e.Agent)
	}
	sort.Strings(agents)
	return agents, nil
}
