package http_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"aptivai_backend/internal/assessments"
	assessmentrepo "aptivai_backend/internal/assessments/repository"
	"aptivai_backend/internal/compliance"
	compliancerepo "aptivai_backend/internal/compliance/repository"
	compliancetransport "aptivai_backend/internal/compliance/transport"
	"aptivai_backend/internal/events"
	apphttp "aptivai_backend/internal/http"
	"aptivai_backend/internal/leads"
	leadrepo "aptivai_backend/internal/leads/repository"
	leadtransport "aptivai_backend/internal/leads/transport"
	"aptivai_backend/internal/oversight"
	oversightrepo "aptivai_backend/internal/oversight/repository"
	"aptivai_backend/internal/scoring"
	"aptivai_backend/platform/logger"
	"aptivai_backend/platform/validator"
)

type testApp struct {
	assessments *assessments.Module
	leads       *leads.Module
	oversight   *oversight.Module
	compliance  *compliance.Module
}

func newTestApp() testApp {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	val := validator.New()

	a := testApp{
		assessments: assessments.NewModuleWithRepository(assessmentrepo.NewMemory(), scoring.RuleAnalyzer{}, bus, val, log),
		leads:       leads.NewModuleWithRepository(leadrepo.NewMemory(), bus, val, log),
		oversight:   oversight.NewModuleWithRepository(oversightrepo.NewMemory(), 8, bus, val, log),
		compliance:  compliance.NewModuleWithRepository(compliancerepo.NewMemory(), nil, val, log),
	}
	app := &apphttp.App{
		Logger:   log,
		EventBus: bus,
		Modules:  []apphttp.Module{a.assessments, a.leads, a.oversight, a.compliance},
	}
	app.Subscribe()
	return a
}

func lowReadinessAnswers() scoring.Answers {
	return scoring.Answers{
		scoring.QuestionCurrentAIUsage:    "No AI usage",
		scoring.QuestionTeamAILiteracy:    "Little to no AI knowledge",
		scoring.QuestionPrimaryGoals:      "Save time",
		scoring.QuestionBiggestChallenges: "Cost",
		scoring.QuestionIndustry:          "Retail",
		scoring.QuestionCompanySize:       "Solo / Freelancer",
	}
}

func TestSubmittedAssessmentFlowsThroughSubscribers(t *testing.T) {
	ctx := context.Background()
	app := newTestApp()
	userID := uuid.New()

	got, err := app.assessments.Service().Submit(ctx, &userID, lowReadinessAnswers(), true)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Analysis.Priority != scoring.PriorityCritical {
		t.Fatalf("expected critical readiness priority, got %s", got.Analysis.Priority)
	}

	lead, err := app.leads.Service().GetByUser(ctx, userID)
	if err != nil {
		t.Fatalf("expected a lead profile: %v", err)
	}
	if lead.Priority == nil || *lead.Priority != string(scoring.PriorityCritical) {
		t.Errorf("expected critical lead priority, got %v", lead.Priority)
	}

	items, err := app.oversight.Service().List(ctx, "pending")
	if err != nil {
		t.Fatalf("list oversight: %v", err)
	}
	if items.Total != 1 || items.Items[0].Type != "assessment" || items.Items[0].Priority != "high" {
		t.Fatalf("expected one high-priority assessment item, got %+v", items.Items)
	}

	entries, err := app.compliance.Service().Query(ctx, compliancetransport.QueryRequest{})
	if err != nil {
		t.Fatalf("query compliance: %v", err)
	}
	if entries.Total != 1 {
		t.Fatalf("expected one compliance entry, got %d", entries.Total)
	}

	scored, err := app.leads.Service().ScoreLead(ctx, leadtransport.ScoreLeadRequest{
		UserID:               userID,
		Role:                 "CEO",
		Employees:            250,
		SpecificRequirements: true,
		BudgetDiscussed:      true,
		Touchpoints:          5,
	})
	if err != nil {
		t.Fatalf("score lead: %v", err)
	}
	if scored.Score < 8 {
		t.Fatalf("expected a high-value lead, got %d", scored.Score)
	}

	items, err = app.oversight.Service().List(ctx, "pending")
	if err != nil {
		t.Fatalf("list oversight: %v", err)
	}
	var leadItems int
	for _, item := range items.Items {
		if item.Type == "lead" && item.Priority == "high" {
			leadItems++
		}
	}
	if leadItems != 1 {
		t.Errorf("expected one high-priority lead item, got %+v", items.Items)
	}

	entries, err = app.compliance.Service().Query(ctx, compliancetransport.QueryRequest{})
	if err != nil {
		t.Fatalf("query compliance: %v", err)
	}
	if entries.Total != 2 {
		t.Errorf("expected the lead scoring to be logged too, got %d entries", entries.Total)
	}
}

func TestAnonymousAssessmentSkipsLeadProfile(t *testing.T) {
	ctx := context.Background()
	app := newTestApp()

	if _, err := app.assessments.Service().Submit(ctx, nil, lowReadinessAnswers(), false); err != nil {
		t.Fatalf("submit: %v", err)
	}

	profiles, err := app.leads.Service().List(ctx, leadtransport.ListLeadsRequest{})
	if err != nil {
		t.Fatalf("list leads: %v", err)
	}
	if profiles.Total != 0 {
		t.Errorf("expected no lead profile for an anonymous assessment, got %d", profiles.Total)
	}

	items, err := app.oversight.Service().List(ctx, "all")
	if err != nil {
		t.Fatalf("list oversight: %v", err)
	}
	if items.Total != 1 {
		t.Errorf("expected the report to still need review, got %d items", items.Total)
	}
}
