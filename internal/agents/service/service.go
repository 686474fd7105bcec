// Package service runs chat exchanges against the catalog agents.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"aptivai_backend/internal/agents/catalog"
	"aptivai_backend/internal/agents/repository"
	"aptivai_backend/internal/agents/runtime"
	"aptivai_backend/internal/agents/transport"
	"aptivai_backend/internal/events"
	"aptivai_backend/platform/ai/gateway"
	"aptivai_backend/platform/apperr"
	"aptivai_backend/platform/logger"
)

const anonymousUserKey = "anonymous"

// Replier produces an agent's answer to a message.
type Replier interface {
	Reply(ctx context.Context, agentName, userKey string, history []runtime.Turn, message string) (string, error)
}

var _ Replier = (*runtime.Runtime)(nil)

// Service handles agent chat.
type Service struct {
	catalog *catalog.Catalog
	replier Replier
	repo    repository.Repository
	bus     events.Bus
	log     *logger.Logger
}

// New creates a new agents service. A nil replier disables chat.
func New(cat *catalog.Catalog, replier Replier, repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{catalog: cat, replier: replier, repo: repo, bus: bus, log: log}
}

// List returns the public description of every agent.
func (s *Service) List() transport.AgentListResponse {
	agents := s.catalog.List()
	out := make([]transport.AgentResponse, 0, len(agents))
	for _, a := range agents {
		out = append(out, transport.AgentResponse{Name: a.Name, Title: a.Title, Description: a.Description})
	}
	return transport.AgentListResponse{Agents: out}
}

// Chat sends a message to the named agent and stores the exchange.
func (s *Service) Chat(ctx context.Context, userID *uuid.UUID, name string, req transport.ChatRequest) (transport.ChatResponse, error) {
	if _, ok := s.catalog.Get(name); !ok {
		return transport.ChatResponse{}, apperr.NotFound("agent not found")
	}
	if s.replier == nil {
		return transport.ChatResponse{}, apperr.New(apperr.KindUpstream, "AI service is not configured")
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return transport.ChatResponse{}, apperr.Validation("message is required")
	}

	sessionID, history, err := s.resolveHistory(ctx, userID, name, req)
	if err != nil {
		return transport.ChatResponse{}, err
	}

	start := time.Now()
	reply, err := s.replier.Reply(ctx, name, userKey(userID), history, message)
	s.log.AgentCall(name, float64(time.Since(start).Milliseconds()), err)
	if err != nil {
		return transport.ChatResponse{}, gateway.ToAppErr(err)
	}

	session, err := s.repo.Append(ctx, repository.AppendParams{
		ID:           sessionID,
		Agent:        name,
		UserID:       userID,
		ConsentGiven: req.ConsentGiven,
		Turns: []runtime.Turn{
			{Role: runtime.RoleUser, Content: message},
			{Role: runtime.RoleAssistant, Content: reply},
		},
	})
	if err != nil {
		s.log.DatabaseError("append chat session", err)
		return transport.ChatResponse{}, apperr.Persistence("store chat session", err)
	}

	_ = s.bus.PublishSync(ctx, events.AgentChatCompleted{
		BaseEvent:    events.NewBaseEvent(),
		Agent:        name,
		SessionID:    session.ID,
		UserID:       userID,
		ConsentGiven: session.ConsentGiven,
	})

	return transport.ChatResponse{Response: reply, SessionID: session.ID.String()}, nil
}

// resolveHistory returns the stored session's messages when one is referenced,
// otherwise the history supplied by the client.
func (s *Service) resolveHistory(ctx context.Context, userID *uuid.UUID, name string, req transport.ChatRequest) (*uuid.UUID, []runtime.Turn, error) {
	if req.SessionID == "" {
		return nil, req.ConversationHistory, nil
	}
	id, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, nil, apperr.Validation("invalid session ID")
	}
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, nil, err
		}
		s.log.DatabaseError("get chat session", err)
		return nil, nil, apperr.Persistence("load chat session", err)
	}
	if session.Agent != name || !sameOwner(session.UserID, userID) {
		return nil, nil, apperr.NotFound("chat session not found")
	}
	return &session.ID, session.Messages, nil
}

func sameOwner(owner, caller *uuid.UUID) bool {
	if owner == nil {
		return true
	}
	return caller != nil && *owner == *caller
}

func userKey(userID *uuid.UUID) string {
	if userID == nil {
		return anonymousUserKey
	}
	return userID.String()
}
