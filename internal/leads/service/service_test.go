package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"aptivai_backend/internal/events"
	"aptivai_backend/internal/leads/repository"
	"aptivai_backend/internal/leads/transport"
	"aptivai_backend/platform/logger"
)

func newTestService() (*Service, *repository.Memory, *events.InMemoryBus) {
	log := logger.New("development")
	repo := repository.NewMemory()
	bus := events.NewInMemoryBus(log)
	return New(repo, bus, log), repo, bus
}

func TestUpsertIsIdempotent(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	userID := uuid.New()
	at := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
	recs := []string{"Start with Module 1"}

	if err := svc.Upsert(ctx, &userID, 42, "high", recs, at); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	first, _ := repo.GetByUser(ctx, userID)

	if err := svc.Upsert(ctx, &userID, 42, "high", recs, at); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	second, _ := repo.GetByUser(ctx, userID)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical profile after replay\nfirst:  %+v\nsecond: %+v", first, second)
	}
	_, total, _ := repo.List(ctx, repository.ListParams{})
	if total != 1 {
		t.Errorf("expected one profile, got %d", total)
	}
}

func TestUpsertKeepsLatestScore(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	userID := uuid.New()
	at := time.Now().UTC()

	_ = svc.Upsert(ctx, &userID, 30, "high", []string{"a"}, at)
	_ = svc.Upsert(ctx, &userID, 80, "low", []string{"b"}, at.Add(time.Minute))

	p, err := repo.GetByUser(ctx, userID)
	if err != nil {
		t.Fatalf("expected profile: %v", err)
	}
	if *p.ReadinessScore != 80 || *p.Priority != "low" || p.RecommendedSolutions[0] != "b" {
		t.Errorf("expected last applied values, got score=%d priority=%s recs=%v", *p.ReadinessScore, *p.Priority, p.RecommendedSolutions)
	}
}

func TestUpsertPreservesCompanyDescriptors(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	userID := uuid.New()
	size, industry := "Medium (21-100 employees)", "Manufacturing"

	if _, err := svc.UpdateCompany(ctx, userID, transport.UpdateCompanyRequest{CompanySize: &size, Industry: &industry}); err != nil {
		t.Fatalf("update company: %v", err)
	}
	if err := svc.Upsert(ctx, &userID, 55, "medium", nil, time.Now()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	p, _ := repo.GetByUser(ctx, userID)
	if p.CompanySize == nil || *p.CompanySize != size || p.Industry == nil || *p.Industry != industry {
		t.Errorf("company descriptors were overwritten: %+v", p)
	}
	if *p.ReadinessScore != 55 {
		t.Errorf("expected score 55, got %d", *p.ReadinessScore)
	}
}

func TestUpsertSkipsAnonymous(t *testing.T) {
	svc, repo, _ := newTestService()
	if err := svc.Upsert(context.Background(), nil, 42, "high", nil, time.Now()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, total, _ := repo.List(context.Background(), repository.ListParams{}); total != 0 {
		t.Errorf("expected no profile, got %d", total)
	}
}

func TestScoreLeadPublishesLeadScored(t *testing.T) {
	svc, _, bus := newTestService()
	var got []events.LeadScored
	bus.Subscribe(events.LeadScored{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		got = append(got, e.(events.LeadScored))
		return nil
	}))

	userID := uuid.New()
	resp, err := svc.ScoreLead(context.Background(), transport.ScoreLeadRequest{
		UserID:               userID,
		Role:                 "CTO",
		Employees:            150,
		SpecificRequirements: true,
		BudgetDiscussed:      true,
		Touchpoints:          5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Band != string(BandHigh) || resp.Score < HighValueThreshold {
		t.Errorf("expected a high value lead, got %d (%s)", resp.Score, resp.Band)
	}
	if resp.Lead.LeadScore == nil || *resp.Lead.LeadScore != resp.Score {
		t.Errorf("expected stored lead score %d, got %v", resp.Score, resp.Lead.LeadScore)
	}
	if len(got) != 1 || got[0].UserID != userID || got[0].Score != resp.Score {
		t.Errorf("unexpected events %+v", got)
	}
}

func TestValueScoreBands(t *testing.T) {
	tests := []struct {
		name    string
		signals Signals
		want    Band
	}{
		{"casual student", Signals{Role: "Student", Employees: 1}, BandLow},
		{"department head", Signals{Role: "Head of Operations", Employees: 30, Touchpoints: 3, ResourcesDownloaded: 2}, BandMedium},
		{"executive with budget", Signals{Role: "Managing Director", Employees: 80, SpecificRequirements: true, BudgetDiscussed: true}, BandHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, reasons := ValueScore(tt.signals)
			if score < 1 || score > 10 {
				t.Fatalf("score %d out of range", score)
			}
			if got := BandFor(score); got != tt.want {
				t.Errorf("expected %s, got %s (score %d, reasons %v)", tt.want, got, score, reasons)
			}
		})
	}
}

func TestValueScoreIsCappedAtTen(t *testing.T) {
	score, _ := ValueScore(Signals{
		Role: "CEO", Employees: 500, SpecificRequirements: true, BudgetDiscussed: true,
		Touchpoints: 10, ResourcesDownloaded: 10, ConsultationRequested: true,
	})
	if score != 10 {
		t.Errorf("expected 10, got %d", score)
	}
}

func TestRoleTierMatchesWholeWords(t *testing.T) {
	if roleTier("MVP developer") != 0 {
		t.Error("mvp must not match vp")
	}
	if roleTier("VP Engineering") != 2 {
		t.Error("expected VP to be a decision-maker")
	}
}
