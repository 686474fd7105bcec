package service

import (
	"fmt"
	"strings"

	"aptivai_backend/internal/agents/catalog"
	"aptivai_backend/internal/events"
	"aptivai_backend/internal/oversight/domain"
	"aptivai_backend/internal/oversight/repository"
)

// DefaultLeadThreshold is the lead value score from which a lead needs review.
const DefaultLeadThreshold = 8

// Policy decides which automated actions need a human decision:
// high-value leads, assessment reports before delivery, enrollments with a
// payment, personalization on personal data without consent on file, and
// consultation bookings.
type Policy struct {
	leadThreshold int
}

// NewPolicy creates a policy. A threshold outside 1..10 falls back to the default.
func NewPolicy(leadThreshold int) Policy {
	if leadThreshold < 1 || leadThreshold > 10 {
		leadThreshold = DefaultLeadThreshold
	}
	return Policy{leadThreshold: leadThreshold}
}

// Evaluate returns the item to raise for event, if any.
func (p Policy) Evaluate(event events.Event) (repository.CreateParams, bool) {
	switch e := event.(type) {
	case events.LeadScored:
		return p.lead(e)
	case events.AssessmentCompleted:
		return assessment(e), true
	case events.EnrollmentRequested:
		return enrollment(e)
	case events.PersonalizationRequested:
		return personalization(e)
	case events.ConsultationRequested:
		return consultation(e), true
	default:
		return repository.CreateParams{}, false
	}
}

func (p Policy) lead(e events.LeadScored) (repository.CreateParams, bool) {
	if e.Score < p.leadThreshold {
		return repository.CreateParams{}, false
	}
	description := fmt.Sprintf("Lead scored %d/10", e.Score)
	if len(e.Reasons) > 0 {
		description += " - " + strings.Join(e.Reasons, ", ")
	}
	return repository.CreateParams{
		Type:        domain.TypeLead,
		Title:       "High-Score Lead Analysis",
		Description: description,
		Agent:       catalog.Title(catalog.LeadIntelligence),
		Priority:    domain.PriorityHigh,
		Payload: map[string]any{
			"userId":  e.UserID.String(),
			"score":   e.Score,
			"band":    e.Band,
			"reasons": e.Reasons,
		},
	}, true
}

func assessment(e events.AssessmentCompleted) repository.CreateParams {
	payload := map[string]any{
		"assessmentId": e.AssessmentID.String(),
		"score":        e.Score,
		"priority":     e.Priority,
		"source":       e.Source,
	}
	if e.UserID != nil {
		payload["userId"] = e.UserID.String()
	}
	return repository.CreateParams{
		Type:        domain.TypeAssessment,
		Title:       "AI Readiness Report Ready for Review",
		Description: fmt.Sprintf("Readiness score %d/100 with %s intervention priority. The report is reviewed by a consultant before delivery.", e.Score, e.Priority),
		Agent:       catalog.Title(catalog.ReadinessAssessment),
		Priority:    reviewPriority(e.Priority),
		Payload:     payload,
	}
}

func enrollment(e events.EnrollmentRequested) (repository.CreateParams, bool) {
	if e.AmountCents <= 0 {
		return repository.CreateParams{}, false
	}
	return repository.CreateParams{
		Type:        domain.TypeEnrollment,
		Title:       "Course Enrollment - " + e.CourseTitle,
		Description: fmt.Sprintf("Enrollment for %d participant(s) with a value of %s requires payment confirmation", e.Participants, formatRand(e.AmountCents)),
		Agent:       catalog.Title(catalog.CourseRecommendation),
		Priority:    domain.PriorityHigh,
		Payload: map[string]any{
			"enrollmentId": e.EnrollmentID.String(),
			"userId":       e.UserID.String(),
			"courseTitle":  e.CourseTitle,
			"participants": e.Participants,
			"amountCents":  e.AmountCents,
		},
	}, true
}

func personalization(e events.PersonalizationRequested) (repository.CreateParams, bool) {
	if !e.UsesPersonalData || e.ConsentOnFile {
		return repository.CreateParams{}, false
	}
	payload := map[string]any{
		"requestId":     e.RequestID.String(),
		"audience":      e.Audience,
		"dataFields":    e.DataFields,
		"consentStatus": "Not obtained",
	}
	if e.UserID != nil {
		payload["userId"] = e.UserID.String()
	}
	return repository.CreateParams{
		Type:        domain.TypePersonalization,
		Title:       "Personalization Using Personal Data",
		Description: fmt.Sprintf("Request to personalize %s content using %s without consent on file", e.Audience, strings.Join(e.DataFields, ", ")),
		Agent:       catalog.Title(catalog.ContentPersonalization),
		Priority:    domain.PriorityHigh,
		Payload:     payload,
	}, true
}

func consultation(e events.ConsultationRequested) repository.CreateParams {
	payload := map[string]any{
		"consultationId": e.ConsultationID.String(),
		"company":        e.CompanyName,
		"contactName":    e.ContactName,
		"preferredDate":  e.PreferredDate,
	}
	if e.UserID != nil {
		payload["userId"] = e.UserID.String()
	}
	return repository.CreateParams{
		Type:        domain.TypeConsultation,
		Title:       "Consultation Booking - " + e.CompanyName,
		Description: fmt.Sprintf("%s from %s requests a consultation. Bookings are pending until confirmed by the team.", e.ContactName, e.CompanyName),
		Agent:       catalog.Title(catalog.ConsultationScheduler),
		Priority:    domain.PriorityMedium,
		Payload:     payload,
	}
}

// reviewPriority folds the four readiness tiers into the three review priorities.
func reviewPriority(readiness string) domain.Priority {
	switch readiness {
	case "critical", "high":
		return domain.PriorityHigh
	case "low":
		return domain.PriorityLow
	default:
		return domain.PriorityMedium
	}
}

func formatRand(cents int64) string {
	return fmt.Sprintf("R%d.%02d", cents/100, cents%100)
}
