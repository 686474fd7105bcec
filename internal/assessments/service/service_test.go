package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"aptivai_backend/internal/assessments/repository"
	"aptivai_backend/internal/events"
	"aptivai_backend/internal/scoring"
	"aptivai_backend/platform/apperr"
	"aptivai_backend/platform/logger"
)

type failingRepo struct {
	repository.Repository
}

func (failingRepo) Record(context.Context, repository.RecordParams) (repository.Assessment, error) {
	return repository.Assessment{}, errors.New("connection reset")
}

type fixedAnalyzer struct {
	outcome scoring.Outcome
	err     error
}

func (f fixedAnalyzer) Analyze(context.Context, scoring.Answers) (scoring.Outcome, error) {
	return f.outcome, f.err
}

func completeAnswers() scoring.Answers {
	return scoring.Answers{
		scoring.QuestionCurrentAIUsage:    "No AI usage - exploring possibilities",
		scoring.QuestionTeamAILiteracy:    "Little to no AI knowledge",
		scoring.QuestionPrimaryGoals:      "Automate invoice capture",
		scoring.QuestionBiggestChallenges: "Skills",
		scoring.QuestionIndustry:          "Retail",
		scoring.QuestionCompanySize:       "Small (2-20 employees)",
	}
}

func collect(bus *events.InMemoryBus) *[]events.AssessmentCompleted {
	var got []events.AssessmentCompleted
	bus.Subscribe(events.AssessmentCompleted{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		got = append(got, e.(events.AssessmentCompleted))
		return nil
	}))
	return &got
}

func TestSubmitRecordsAndPublishes(t *testing.T) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	published := collect(bus)
	repo := repository.NewMemory()
	svc := New(repo, scoring.RuleAnalyzer{}, bus, log)

	userID := uuid.New()
	resp, err := svc.Submit(context.Background(), &userID, completeAnswers(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Source != scoring.SourceRules {
		t.Errorf("expected rules source, got %s", resp.Source)
	}

	stored, err := repo.GetByID(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("expected stored assessment: %v", err)
	}
	if stored.Result.Score != resp.Analysis.Score {
		t.Errorf("stored score %d differs from response %d", stored.Result.Score, resp.Analysis.Score)
	}

	if len(*published) != 1 {
		t.Fatalf("expected one event, got %d", len(*published))
	}
	event := (*published)[0]
	if event.AssessmentID != resp.ID || event.UserID == nil || *event.UserID != userID {
		t.Errorf("unexpected event %+v", event)
	}
	if event.Priority != string(resp.Analysis.Priority) {
		t.Errorf("expected priority %s in event, got %s", resp.Analysis.Priority, event.Priority)
	}
}

func TestSubmitAnonymousIsRecordedWithoutUser(t *testing.T) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	published := collect(bus)
	svc := New(repository.NewMemory(), scoring.RuleAnalyzer{}, bus, log)

	resp, err := svc.Submit(context.Background(), nil, completeAnswers(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.UserID != nil {
		t.Errorf("expected anonymous assessment, got user %v", resp.UserID)
	}
	if len(*published) != 1 || (*published)[0].UserID != nil {
		t.Errorf("expected one anonymous event, got %+v", *published)
	}
}

func TestSubmitIncompleteRecordsNothing(t *testing.T) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	published := collect(bus)
	repo := repository.NewMemory()
	svc := New(repo, scoring.RuleAnalyzer{}, bus, log)

	userID := uuid.New()
	_, err := svc.Submit(context.Background(), &userID, scoring.Answers{scoring.QuestionIndustry: "Retail"}, true)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	items, _ := repo.ListByUser(context.Background(), userID)
	if len(items) != 0 || len(*published) != 0 {
		t.Errorf("expected nothing recorded or published")
	}
}

func TestSubmitSurfacesPersistenceError(t *testing.T) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	published := collect(bus)
	svc := New(failingRepo{}, scoring.RuleAnalyzer{}, bus, log)

	_, err := svc.Submit(context.Background(), nil, completeAnswers(), true)
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if len(*published) != 0 {
		t.Error("no event may be published when the record failed")
	}
}

func TestSubmitDoesNotRecordOnGatewayFailure(t *testing.T) {
	log := logger.New("development")
	repo := repository.NewMemory()
	svc := New(repo, fixedAnalyzer{err: apperr.New(apperr.KindRateLimited, "Rate limit exceeded. Please try again in a moment.")}, events.NewInMemoryBus(log), log)

	userID := uuid.New()
	_, err := svc.Submit(context.Background(), &userID, completeAnswers(), true)
	if !apperr.Is(err, apperr.KindRateLimited) {
		t.Fatalf("expected rate limited error, got %v", err)
	}
	items, _ := repo.ListByUser(context.Background(), userID)
	if len(items) != 0 {
		t.Error("expected nothing recorded")
	}
}

func TestSubmitRecordsFallbackResult(t *testing.T) {
	log := logger.New("development")
	svc := New(repository.NewMemory(), fixedAnalyzer{outcome: scoring.Outcome{Source: scoring.SourceFallback, Result: scoring.Default()}}, events.NewInMemoryBus(log), log)

	resp, err := svc.Submit(context.Background(), nil, completeAnswers(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Analysis.Score != 50 || resp.Analysis.Priority != scoring.PriorityMedium || resp.Source != scoring.SourceFallback {
		t.Errorf("expected fallback 50/medium, got %+v", resp)
	}
}

func TestGetByIDRejectsOtherUsers(t *testing.T) {
	log := logger.New("development")
	svc := New(repository.NewMemory(), scoring.RuleAnalyzer{}, events.NewInMemoryBus(log), log)

	owner := uuid.New()
	resp, err := svc.Submit(context.Background(), &owner, completeAnswers(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.GetByID(context.Background(), uuid.New(), resp.ID); !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("expected forbidden, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), owner, resp.ID); err != nil {
		t.Errorf("owner should read own assessment: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), owner, uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
