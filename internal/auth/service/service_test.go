package service

import (
	"context"
	"slices"
	"testing"
	"time"

	"aptivai_backend/internal/auth/repository"
	"aptivai_backend/internal/auth/token"
	"aptivai_backend/internal/auth/transport"
	"aptivai_backend/internal/events"
	"aptivai_backend/platform/apperr"
	"aptivai_backend/platform/logger"
)

func newTestService() (*Service, *[]events.Event) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	published := &[]events.Event{}
	bus.Subscribe(events.UserSignedUp{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		*published = append(*published, e)
		return nil
	}))
	svc := New(repository.NewMemory(), token.NewIssuer("secret", time.Minute), []string{" Admin@AptivAI.co.za "}, bus, log)
	return svc, published
}

func TestSignUpIssuesTokenAndPublishes(t *testing.T) {
	svc, published := newTestService()

	got, err := svc.SignUp(context.Background(), transport.SignUpRequest{Email: "Lerato@Example.com", Password: "Str0ng!pass"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AccessToken == "" || !slices.Equal(got.Roles, []string{repository.RoleUser}) {
		t.Errorf("unexpected response %+v", got)
	}
	if len(*published) != 1 || (*published)[0].(events.UserSignedUp).Email != "lerato@example.com" {
		t.Errorf("expected sign-up event with normalized email, got %+v", *published)
	}
}

func TestSignUpGrantsAdminToConfiguredEmails(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.SignUp(context.Background(), transport.SignUpRequest{Email: "admin@aptivai.co.za", Password: "Str0ng!pass"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Contains(got.Roles, repository.RoleAdmin) {
		t.Errorf("expected admin role, got %v", got.Roles)
	}
}

func TestSignUpRejectsTakenEmail(t *testing.T) {
	svc, _ := newTestService()
	req := transport.SignUpRequest{Email: "a@example.com", Password: "Str0ng!pass"}
	if _, err := svc.SignUp(context.Background(), req); err != nil {
		t.Fatalf("first sign-up: %v", err)
	}

	_, err := svc.SignUp(context.Background(), req)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSignIn(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	signedUp, _ := svc.SignUp(ctx, transport.SignUpRequest{Email: "a@example.com", Password: "Str0ng!pass"})

	got, err := svc.SignIn(ctx, transport.SignInRequest{Email: " A@example.com", Password: "Str0ng!pass"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != signedUp.UserID {
		t.Errorf("expected same user, got %s", got.UserID)
	}

	for _, req := range []transport.SignInRequest{
		{Email: "a@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "Str0ng!pass"},
	} {
		_, err := svc.SignIn(ctx, req)
		if !apperr.Is(err, apperr.KindUnauthorized) {
			t.Errorf("%s: expected unauthorized, got %v", req.Email, err)
		}
	}
}
