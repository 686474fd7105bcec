package transport

import "aptivai_backend/internal/agents/runtime"

// ChatRequest is one user message to an agent. History is only read when no
// stored session is referenced.
type ChatRequest struct {
	Message             string         `json:"message" validate:"required,max=4000"`
	SessionID           string         `json:"sessionId" validate:"omitempty,uuid"`
	ConversationHistory []runtime.Turn `json:"conversationHistory" validate:"max=50,dive"`
	ConsentGiven        bool           `json:"consentGiven"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
}

type AgentResponse struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type AgentListResponse struct {
	Agents []AgentResponse `json:"agents"`
}
