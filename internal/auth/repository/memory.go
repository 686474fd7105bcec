package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"aptivai_backend/platform/apperr"
)

// Memory is an in-process AuthRepository.
type Memory struct {
	mu    sync.RWMutex
	users map[uuid.UUID]User
}

var _ AuthRepository = (*Memory)(nil)

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{users: make(map[uuid.UUID]User)}
}

func (m *Memory) CreateUser(_ context.Context, params CreateUserParams) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == params.Email {
			return User{}, apperr.Conflict(emailTakenMessage)
		}
	}
	user := User{
		ID:           uuid.New(),
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		FullName:     params.FullName,
		Roles:        slices.Clone(params.Roles),
		CreatedAt:    time.Now().UTC(),
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, apperr.NotFound(userNotFoundMessage)
}

func (m *Memory) GetUserByID(_ context.Context, userID uuid.UUID) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[userID]
	if !ok {
		return User{}, apperr.NotFound(userNotFoundMessage)
	}
	return u, nil
}
