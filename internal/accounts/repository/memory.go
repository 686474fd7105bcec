package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"aptivai_backend/platform/apperr"
)

// MemoryAccount is the state of one account in Memory.
type MemoryAccount struct {
	Email               string
	FullName            string
	Roles               []string
	Enrollments         int
	DeletionRequestedAt *time.Time
	Deleted             bool
}

// Memory is an in-process Repository.
type Memory struct {
	mu       sync.Mutex
	Accounts map[uuid.UUID]*MemoryAccount
}

var _ Repository = (*Memory)(nil)

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{Accounts: make(map[uuid.UUID]*MemoryAccount)}
}

func (m *Memory) Delete(_ context.Context, userID uuid.UUID, at time.Time) (Deletion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.Accounts[userID]
	if !ok || acct.Deleted {
		return Deletion{}, apperr.NotFound(accountNotFoundMessage)
	}
	result := Deletion{
		UserID:             userID,
		EnrollmentsRemoved: int64(acct.Enrollments),
		RolesRemoved:       int64(len(acct.Roles)),
		DeletedAt:          at,
	}
	acct.FullName, acct.Email = DeletedMarker, DeletedMarker
	acct.DeletionRequestedAt = &at
	acct.Enrollments = 0
	acct.Roles = nil
	acct.Deleted = true
	return result, nil
}

func (m *Memory) ExportPersonalData(_ context.Context, userID uuid.UUID) (PersonalData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.Accounts[userID]
	if !ok || acct.Deleted {
		return PersonalData{}, apperr.NotFound(accountNotFoundMessage)
	}
	roles := append([]string{}, acct.Roles...)
	return PersonalData{
		UserID:      userID,
		Email:       acct.Email,
		FullName:    acct.FullName,
		Roles:       roles,
		Enrollments: []map[string]any{},
		Assessments: []map[string]any{},
	}, nil
}
