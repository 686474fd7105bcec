// Package runtime runs catalog agents on the ADK runner.
package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"aptivai_backend/internal/agents/catalog"
	"aptivai_backend/platform/sanitize"
)

const (
	appPrefix        = "aptivai-"
	maxMessageLength = 4000
	maxTurnLength    = 2000
)

// Turn is one earlier message of a conversation.
type Turn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"max=4000"`
}

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Runtime holds one ADK runner per catalog agent.
type Runtime struct {
	runners        map[string]*runner.Runner
	sessionService session.Service
}

// New builds runners for every agent in cat on top of llm.
func New(cat *catalog.Catalog, llm model.LLM) (*Runtime, error) {
	sessionService := session.InMemoryService()
	rt := &Runtime{runners: make(map[string]*runner.Runner), sessionService: sessionService}

	for _, a := range cat.List() {
		temperature := a.Temperature
		adkAgent, err := llmagent.New(llmagent.Config{
			Name:                  identifier(a.Name),
			Model:                 llm,
			Description:           a.Description,
			Instruction:           a.Prompt,
			GenerateContentConfig: &genai.GenerateContentConfig{Temperature: &temperature},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create agent %s: %w", a.Name, err)
		}

		r, err := runner.New(runner.Config{
			AppName:        appPrefix + a.Name,
			Agent:          adkAgent,
			SessionService: sessionService,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create runner for %s: %w", a.Name, err)
		}
		rt.runners[a.Name] = r
	}
	return rt, nil
}

// Reply runs one exchange. Earlier turns are given to the agent as quoted
// context; the ADK session lives only for this call.
func (rt *Runtime) Reply(ctx context.Context, agentName, userKey string, history []Turn, message string) (string, error) {
	r, ok := rt.runners[agentName]
	if !ok {
		return "", fmt.Errorf("agent %s is not registered", agentName)
	}

	appName := appPrefix + agentName
	sessionID := uuid.New().String()
	if _, err := rt.sessionService.Create(ctx, &session.CreateRequest{
		AppName:   appName,
		UserID:    userKey,
		SessionID: sessionID,
	}); err != nil {
		return "", fmt.Errorf("%s: create session: %w", agentName, err)
	}
	defer func() {
		_ = rt.sessionService.Delete(ctx, &session.DeleteRequest{
			AppName:   appName,
			UserID:    userKey,
			SessionID: sessionID,
		})
	}()

	userMessage := &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: BuildPrompt(history, message)}},
	}
	runConfig := agent.RunConfig{StreamingMode: agent.StreamingModeNone}

	var outputText strings.Builder
	for event, err := range r.Run(ctx, userKey, sessionID, userMessage, runConfig) {
		if err != nil {
			return "", err
		}
		if event == nil || event.Content == nil {
			continue
		}
		for _, part := range event.Content.Parts {
			if part != nil {
				outputText.WriteString(part.Text)
			}
		}
	}
	return strings.TrimSpace(outputText.String()), nil
}

// BuildPrompt renders the history and the new message as untrusted data.
func BuildPrompt(history []Turn, message string) string {
	var b strings.Builder
	if len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, turn := range history {
			role := "User"
			if turn.Role == RoleAssistant {
				role = "Assistant"
			}
			fmt.Fprintf(&b, "%s: %s\n", role, sanitize.ForPrompt(turn.Content, maxTurnLength))
		}
		b.WriteString("\n")
	}
	b.WriteString("New message:\n")
	b.WriteString(sanitize.ForPrompt(message, maxMessageLength))
	return sanitize.WrapUserData(b.String())
}

// identifier turns a catalog name into an agent identifier.
func identifier(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
