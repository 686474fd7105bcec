package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aptivai_backend/platform/apperr"
	"aptivai_backend/platform/logger"
)

type testGatewayConfig struct {
	url string
}

func (c testGatewayConfig) GetGatewayURL() string            { return c.url }
func (c testGatewayConfig) GetGatewayAPIKey() string         { return "test-key" }
func (c testGatewayConfig) GetGatewayModel() string          { return "google/gemini-2.5-flash" }
func (c testGatewayConfig) GetGatewayTimeout() time.Duration { return 5 * time.Second }
func (c testGatewayConfig) IsGatewayEnabled() bool           { return true }

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(testGatewayConfig{url: srv.URL + "/v1"}, logger.New("development"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	var gotMessages []map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		for _, m := range body["messages"].([]any) {
			gotMessages = append(gotMessages, m.(map[string]any))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","model":"google/gemini-2.5-flash",
			"choices":[{"index":0,"message":{"role":"assistant","content":"Sawubona!"},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":12,"completion_tokens":3,"total_tokens":15}}`))
	})

	completion, err := client.Complete(context.Background(), []Message{
		{Role: RoleSystem, Content: "You are helpful."},
		{Role: RoleUser, Content: "Hello"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if completion.Content != "Sawubona!" {
		t.Errorf("expected content %q, got %q", "Sawubona!", completion.Content)
	}
	if completion.PromptTokens != 12 {
		t.Errorf("expected 12 prompt tokens, got %d", completion.PromptTokens)
	}
	if len(gotMessages) != 2 || gotMessages[0]["role"] != "system" {
		t.Errorf("unexpected request messages %v", gotMessages)
	}
}

func TestCompleteClassifiesStatusCodes(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		wantKind Kind
		wantApp  apperr.Kind
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, wantKind: KindRateLimited, wantApp: apperr.KindRateLimited},
		{name: "quota exceeded", status: http.StatusPaymentRequired, wantKind: KindQuotaExceeded, wantApp: apperr.KindQuotaExceeded},
		{name: "server error", status: http.StatusInternalServerError, wantKind: KindGateway, wantApp: apperr.KindUpstream},
		{name: "bad request", status: http.StatusBadRequest, wantKind: KindGateway, wantApp: apperr.KindUpstream},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"error":{"message":"upstream said no","type":"error"}}`))
			})

			_, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
			var gwErr *Error
			if !errors.As(err, &gwErr) {
				t.Fatalf("expected *gateway.Error, got %T (%v)", err, err)
			}
			if gwErr.Kind != tc.wantKind {
				t.Errorf("expected kind %s, got %s", tc.wantKind, gwErr.Kind)
			}
			if gwErr.StatusCode != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, gwErr.StatusCode)
			}
			if got := apperr.GetKind(ToAppErr(err)); got != tc.wantApp {
				t.Errorf("expected apperr kind %d, got %d", tc.wantApp, got)
			}
		})
	}
}

func TestClassifyTransportFailureIsGatewayError(t *testing.T) {
	got := Classify(errors.New("dial tcp: connection refused"))
	if got.Kind != KindGateway || got.StatusCode != 0 {
		t.Fatalf("expected gateway error without status, got %+v", got)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(emptyKeyConfig{}, logger.New("development")); err == nil {
		t.Fatal("expected error without api key")
	}
}

type emptyKeyConfig struct{ testGatewayConfig }

func (emptyKeyConfig) GetGatewayAPIKey() string { return "" }
