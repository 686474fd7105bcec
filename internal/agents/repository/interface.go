// Package repository stores agent chat sessions.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"aptivai_backend/internal/agents/runtime"
)

// Session is a stored conversation with one agent.
type Session struct {
	ID           uuid.UUID
	Agent        string
	UserID       *uuid.UUID
	Messages     []runtime.Turn
	ConsentGiven bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AppendParams adds an exchange to a session, creating it when ID is nil.
type AppendParams struct {
	ID           *uuid.UUID
	Agent        string
	UserID       *uuid.UUID
	ConsentGiven bool
	Turns        []runtime.Turn
}

// Repository persists chat sessions.
type Repository interface {
	// Get returns a session; an unknown id is NotFound.
	Get(ctx context.Context, id uuid.UUID) (Session, error)
	Append(ctx context.Context, params AppendParams) (Session, error)
}

const sessionNotFoundMessage = "chat session not found"
