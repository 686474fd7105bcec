// Package gateway talks to the hosted OpenAI-compatible chat-completion gateway.
// This is part of the platform layer and contains no business logic.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"aptivai_backend/platform/config"
	"aptivai_backend/platform/logger"

	"github.com/sashabaranov/go-openai"
)

// Message roles accepted by the gateway.
const (
	RoleSystem    = openai.ChatMessageRoleSystem
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

// Message is one turn of a chat-completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completion is the gateway's reply.
type Completion struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
}

// Completer is the single operation the rest of the application depends on.
type Completer interface {
	Complete(ctx context.Context, messages []Message, opts ...Option) (Completion, error)
}

// Option tunes a single completion request.
type Option func(*openai.ChatCompletionRequest)

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(req *openai.ChatCompletionRequest) {
		req.Temperature = t
	}
}

// Client is a Completer backed by go-openai. Calls are never retried.
type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     *logger.Logger
}

var _ Completer = (*Client)(nil)

// NewClient builds a client for the configured gateway.
func NewClient(cfg config.GatewayConfig, log *logger.Logger) (*Client, error) {
	if cfg.GetGatewayAPIKey() == "" {
		return nil, fmt.Errorf("gateway api key is required")
	}
	if cfg.GetGatewayModel() == "" {
		return nil, fmt.Errorf("gateway model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.GetGatewayAPIKey())
	clientConfig.BaseURL = strings.TrimSuffix(cfg.GetGatewayURL(), "/")
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.GetGatewayTimeout()}

	return &Client{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.GetGatewayModel(),
		timeout: cfg.GetGatewayTimeout(),
		log:     log,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Complete sends messages and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, messages []Message, opts ...Option) (Completion, error) {
	if len(messages) == 0 {
		return Completion{}, &Error{Kind: KindGateway, Message: "no messages to send"}
	}

	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	for _, opt := range opts {
		opt(&req)
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		classified := Classify(err)
		c.log.Warn("gateway request failed",
			"model", c.model,
			"status", classified.StatusCode,
			"elapsed_ms", time.Since(start).Milliseconds(),
			"error", err)
		return Completion{}, classified
	}

	if len(resp.Choices) == 0 {
		return Completion{}, &Error{Kind: KindGateway, Message: "gateway returned no choices"}
	}

	c.log.Debug("gateway request completed",
		"model", c.model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"elapsed_ms", time.Since(start).Milliseconds())

	return Completion{
		Content:          resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}
