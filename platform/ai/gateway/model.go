package gateway

import (
	"context"
	"iter"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// Model adapts a Completer to the ADK model.LLM interface so llmagent
// agents run against the gateway.
type Model struct {
	name      string
	completer Completer
}

var _ model.LLM = (*Model)(nil)

// NewModel wraps completer under the given model name.
func NewModel(name string, completer Completer) *Model {
	return &Model{name: name, completer: completer}
}

func (m *Model) Name() string {
	return m.name
}

// GenerateContent answers with a single, non-streamed response.
func (m *Model) GenerateContent(ctx context.Context, req *model.LLMRequest, _ bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		var opts []Option
		if req != nil && req.Config != nil && req.Config.Temperature != nil {
			opts = append(opts, WithTemperature(*req.Config.Temperature))
		}
		completion, err := m.completer.Complete(ctx, ToMessages(req), opts...)
		if err != nil {
			yield(nil, err)
			return
		}

		yield(&model.LLMResponse{
			Content: &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{genai.NewPartFromText(completion.Content)},
			},
		}, nil)
	}
}

// ToMessages flattens an ADK request into gateway messages. The system
// instruction, when present, becomes the leading system message.
func ToMessages(req *model.LLMRequest) []Message {
	if req == nil {
		return nil
	}

	messages := make([]Message, 0, len(req.Contents)+1)
	if req.Config != nil && req.Config.SystemInstruction != nil {
		if text := joinText(req.Config.SystemInstruction); text != "" {
			messages = append(messages, Message{Role: RoleSystem, Content: text})
		}
	}

	for _, content := range req.Contents {
		if content == nil {
			continue
		}
		text := joinText(content)
		if text == "" {
			continue
		}
		messages = append(messages, Message{Role: roleForContent(content.Role), Content: text})
	}
	return messages
}

func roleForContent(role string) string {
	if role == genai.RoleModel {
		return RoleAssistant
	}
	return RoleUser
}

func joinText(content *genai.Content) string {
	var b strings.Builder
	for _, part := range content.Parts {
		if part == nil || strings.TrimSpace(part.Text) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String())
}
