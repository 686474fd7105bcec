package service

import (
	"context"
	"testing"

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

type fakeReplier struct {
	reply   string
	err     error
	calls   int
	history []runtime.Turn
	userKey string
}

func (f *fakeReplier) Reply(_ context.Context, _ string, userKey string, history []runtime.Turn, _ string) (string, error) {
	f.calls++
	f.history = history
	f.userKey = userKey
	return f.reply, f.err
}

func newTestService(replier Replier) (*Service, *[]events.AgentChatCompleted) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	published := &[]events.AgentChatCompleted{}
	bus.Subscribe(events.AgentChatCompleted{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		*published = append(*published, e.(events.AgentChatCompleted))
		return nil
	}))
	return New(catalog.Default(), replier, repository.NewMemory(), bus, log), published
}

func TestChatStoresExchangeAndPublishes(t *testing.T) {
	replier := &fakeReplier{reply: "  Start with Module 1.  "}
	svc, published := newTestService(replier)
	userID := uuid.New()

	got, err := svc.Chat(context.Background(), &userID, catalog.CourseRecommendation, transport.ChatRequest{
		Message:      "Which course first?",
		ConsentGiven: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Response != "  Start with Module 1.  " {
		t.Errorf("unexpected response %q", got.Response)
	}
	if replier.userKey != userID.String() {
		t.Errorf("expected user key %s, got %s", userID, replier.userKey)
	}
	if len(*published) != 1 {
		t.Fatalf("expected one event, got %d", len(*published))
	}
	e := (*published)[0]
	if e.SessionID.String() != got.SessionID || !e.ConsentGiven || e.Agent != catalog.CourseRecommendation {
		t.Errorf("unexpected event %+v", e)
	}
}

func TestChatContinuesStoredSession(t *testing.T) {
	replier := &fakeReplier{reply: "first"}
	svc, _ := newTestService(replier)

	first, err := svc.Chat(context.Background(), nil, catalog.BusinessConsultant, transport.ChatRequest{Message: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	replier.reply = "second"
	second, err := svc.Chat(context.Background(), nil, catalog.BusinessConsultant, transport.ChatRequest{
		Message:             "and then?",
		SessionID:           first.SessionID,
		ConversationHistory: []runtime.Turn{{Role: runtime.RoleUser, Content: "ignored"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.SessionID != first.SessionID {
		t.Errorf("expected the same session, got %s and %s", first.SessionID, second.SessionID)
	}
	if len(replier.history) != 2 || replier.history[1].Content != "first" {
		t.Errorf("expected the stored exchange as history, got %+v", replier.history)
	}
	if replier.userKey != anonymousUserKey {
		t.Errorf("expected anonymous user key, got %s", replier.userKey)
	}
}

func TestChatRejectsForeignSession(t *testing.T) {
	replier := &fakeReplier{reply: "ok"}
	svc, _ := newTestService(replier)
	owner := uuid.New()

	first, err := svc.Chat(context.Background(), &owner, catalog.BusinessConsultant, transport.ChatRequest{Message: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := uuid.New()
	cases := []struct {
		name   string
		userID *uuid.UUID
		agent  string
	}{
		{"other user", &other, catalog.BusinessConsultant},
		{"anonymous caller", nil, catalog.BusinessConsultant},
		{"other agent", &owner, catalog.LeadIntelligence},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Chat(context.Background(), tc.userID, tc.agent, transport.ChatRequest{Message: "x", SessionID: first.SessionID})
			if !apperr.Is(err, apperr.KindNotFound) {
				t.Fatalf("expected not found, got %v", err)
			}
		})
	}
}

func TestChatUnknownAgent(t *testing.T) {
	replier := &fakeReplier{reply: "ok"}
	svc, published := newTestService(replier)

	_, err := svc.Chat(context.Background(), nil, "nope", transport.ChatRequest{Message: "hi"})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if replier.calls != 0 || len(*published) != 0 {
		t.Error("unknown agent must not reach the replier")
	}
}

func TestChatMapsGatewayErrors(t *testing.T) {
	cases := []struct {
		kind gateway.Kind
		want apperr.Kind
	}{
		{gateway.KindRateLimited, apperr.KindRateLimited},
		{gateway.KindQuotaExceeded, apperr.KindQuotaExceeded},
		{gateway.KindGateway, apperr.KindUpstream},
	}
	for _, tc := range cases {
		replier := &fakeReplier{err: &gateway.Error{Kind: tc.kind, Message: "gateway failure"}}
		svc, published := newTestService(replier)

		_, err := svc.Chat(context.Background(), nil, catalog.ConsultationScheduler, transport.ChatRequest{Message: "hi"})
		if !apperr.Is(err, tc.want) {
			t.Errorf("gateway kind %v: expected %v, got %v", tc.kind, tc.want, err)
		}
		if len(*published) != 0 {
			t.Errorf("gateway kind %v: failed exchange must not be published", tc.kind)
		}
	}
}

func TestChatWithoutReplier(t *testing.T) {
	svc, _ := newTestService(nil)
	_, err := svc.Chat(context.Background(), nil, catalog.BusinessConsultant, transport.ChatRequest{Message: "hi"})
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestListReturnsCatalogOrder(t *testing.T) {
	svc, _ := newTestService(nil)
	got := svc.List()
	if len(got.Agents) != 6 || got.Agents[0].Name != catalog.ReadinessAssessment {
		t.Errorf("unexpected agents %+v", got.Agents)
	}
}
