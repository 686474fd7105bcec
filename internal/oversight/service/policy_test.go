package service

import (
	"testing"

	"github.com/google/uuid"

	"aptivai_backend/internal/events"
	"aptivai_backend/internal/oversight/domain"
)

func TestPolicyTriggers(t *testing.T) {
	userID := uuid.New()
	policy := NewPolicy(DefaultLeadThreshold)

	tests := []struct {
		name         string
		event        events.Event
		wantItem     bool
		wantType     domain.Type
		wantPriority domain.Priority
	}{
		{"lead at threshold", events.LeadScored{UserID: userID, Score: 8}, true, domain.TypeLead, domain.PriorityHigh},
		{"lead below threshold", events.LeadScored{UserID: userID, Score: 7}, false, "", ""},
		{"critical assessment", events.AssessmentCompleted{AssessmentID: uuid.New(), Score: 20, Priority: "critical"}, true, domain.TypeAssessment, domain.PriorityHigh},
		{"ready assessment", events.AssessmentCompleted{AssessmentID: uuid.New(), Score: 90, Priority: "low"}, true, domain.TypeAssessment, domain.PriorityLow},
		{"paid enrollment", events.EnrollmentRequested{UserID: userID, CourseTitle: "AI for Non-Technical Staff", Participants: 25, AmountCents: 7500000}, true, domain.TypeEnrollment, domain.PriorityHigh},
		{"free enrollment", events.EnrollmentRequested{UserID: userID, CourseTitle: "Intro webinar", Participants: 1}, false, "", ""},
		{"personal data without consent", events.PersonalizationRequested{Audience: "executive", DataFields: []string{"LinkedIn profile"}, UsesPersonalData: true}, true, domain.TypePersonalization, domain.PriorityHigh},
		{"personal data with consent", events.PersonalizationRequested{Audience: "executive", UsesPersonalData: true, ConsentOnFile: true}, false, "", ""},
		{"behavioural only", events.PersonalizationRequested{Audience: "manager"}, false, "", ""},
		{"consultation booking", events.ConsultationRequested{CompanyName: "TechCorp", ContactName: "Thandi"}, true, domain.TypeConsultation, domain.PriorityMedium},
		{"unrelated event", events.UserSignedUp{UserID: userID}, false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, ok := policy.Evaluate(tt.event)
			if ok != tt.wantItem {
				t.Fatalf("expected item=%v, got %v", tt.wantItem, ok)
			}
			if !ok {
				return
			}
			if params.Type != tt.wantType || params.Priority != tt.wantPriority {
				t.Errorf("expected %s/%s, got %s/%s", tt.wantType, tt.wantPriority, params.Type, params.Priority)
			}
			if params.Title == "" || params.Agent == "" {
				t.Errorf("expected title and agent, got %+v", params)
			}
		})
	}
}

func TestNewPolicyFallsBackToDefaultThreshold(t *testing.T) {
	for _, threshold := range []int{0, 11, -3} {
		if got := NewPolicy(threshold).leadThreshold; got != DefaultLeadThreshold {
			t.Errorf("threshold %d: expected default, got %d", threshold, got)
		}
	}
	if got := NewPolicy(6).leadThreshold; got != 6 {
		t.Errorf("expected 6, got %d", got)
	}
}

func TestFormatRand(t *testing.T) {
	if got := formatRand(7500000); got != "R75000.00" {
		t.Errorf("unexpected %q", got)
	}
}
