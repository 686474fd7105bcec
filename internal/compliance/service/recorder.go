package service

import (
	"context"
	"fmt"
	"strings"

	"aptivai_backend/internal/agents/catalog"
	"aptivai_backend/internal/compliance/domain"
	"aptivai_backend/internal/compliance/repository"
	"aptivai_backend/internal/events"
)

// DataRightsAgent is the actor recorded for data subject requests.
const DataRightsAgent = "Data Rights Manager"

// Record appends the entry that mirrors a data-touching event. Events that
// touch no personal data are ignored.
func (s *Service) Record(ctx context.Context, event events.Event) error {
	params, ok := EntryFor(event)
	if !ok {
		return nil
	}
	params.OccurredAt = event.OccurredAt()
	_, err := s.Append(ctx, params)
	return err
}

// EntryFor maps an event to its compliance entry.
func EntryFor(event events.Event) (repository.AppendParams, bool) {
	switch e := event.(type) {
	case events.AssessmentCompleted:
		return assessmentEntry(e), true
	case events.LeadScored:
		return repository.AppendParams{
			Agent:         catalog.Title(catalog.LeadIntelligence),
			Action:        fmt.Sprintf("Lead value scored %d/10", e.Score),
			UserConsent:   true,
			DataCollected: []string{"Engagement signals", "Role", "Company size"},
			Purpose:       "Lead qualification",
			Retention:     domain.RetentionLead,
			Status:        domain.StatusCompliant,
			Notes:         "Behavioral data from consented platform interactions",
		}, true
	case events.ConsultationRequested:
		return consultationEntry(e), true
	case events.EnrollmentRequested:
		return repository.AppendParams{
			Agent:         catalog.Title(catalog.CourseRecommendation),
			Action:        "Course enrollment requested: " + e.CourseTitle,
			UserConsent:   true,
			DataCollected: []string{"Account", "Course selection", "Participants", "Amount"},
			Purpose:       "Enrollment and invoicing",
			Retention:     domain.RetentionEnrollment,
			Status:        domain.StatusCompliant,
			Notes:         fmt.Sprintf("%d participant(s)", e.Participants),
		}, true
	case events.PersonalizationRequested:
		return personalizationEntry(e), true
	case events.AgentChatCompleted:
		return chatEntry(e), true
	case events.AccountDeleted:
		return deletionEntry(e), true
	default:
		return repository.AppendParams{}, false
	}
}

func assessmentEntry(e events.AssessmentCompleted) repository.AppendParams {
	params := repository.AppendParams{
		Agent:         catalog.Title(catalog.ReadinessAssessment),
		Action:        "Assessment responses collected",
		UserConsent:   e.ConsentGiven,
		DataCollected: []string{"Company size", "Industry", "AI usage", "Team literacy", "Goals", "Challenges"},
		Purpose:       "AI readiness assessment",
		Retention:     domain.RetentionAssessment,
		Status:        domain.StatusCompliant,
		Notes:         fmt.Sprintf("Readiness score %d/100 (%s)", e.Score, e.Source),
	}
	switch {
	case e.UserID == nil:
		params.Notes += "; anonymous submission, no lead profile"
	case !e.ConsentGiven:
		params.Status = domain.StatusReviewRequired
		params.Notes += "; stored against an account without explicit consent"
	}
	return params
}

func consultationEntry(e events.ConsultationRequested) repository.AppendParams {
	params := repository.AppendParams{
		Agent:         catalog.Title(catalog.ConsultationScheduler),
		Action:        "Consultation booking for " + e.CompanyName,
		UserConsent:   e.ConsentGiven,
		DataCollected: []string{"Name", "Email", "Phone", "Company"},
		Purpose:       "Consultation scheduling",
		Retention:     domain.RetentionConsultation,
		Status:        domain.StatusCompliant,
		Notes:         "Contact details supplied by the requester",
	}
	if !e.ConsentGiven {
		params.Status = domain.StatusNonCompliant
		params.Notes = "Contact details received without consent"
	}
	return params
}

func personalizationEntry(e events.PersonalizationRequested) repository.AppendParams {
	fields := e.DataFields
	if len(fields) == 0 {
		fields = []string{"Audience"}
	}
	params := repository.AppendParams{
		Agent:         catalog.Title(catalog.ContentPersonalization),
		Action:        "Content personalization for " + e.Audience,
		UserConsent:   e.ConsentOnFile,
		DataCollected: fields,
		Purpose:       "Content personalization",
		Retention:     domain.RetentionSession,
		Status:        domain.StatusCompliant,
		Notes:         "Aggregated, non-identifying data",
	}
	if e.UsesPersonalData && !e.ConsentOnFile {
		params.Status = domain.StatusReviewRequired
		params.Notes = "BLOCKED: attempted to use " + strings.Join(fields, ", ") + " without consent; held for review"
	} else if e.UsesPersonalData {
		params.Notes = "Personal data used with consent on file"
	}
	return params
}

func chatEntry(e events.AgentChatCompleted) repository.AppendParams {
	params := repository.AppendParams{
		Agent:         catalog.Title(e.Agent),
		Action:        "Chat message processed",
		UserConsent:   e.ConsentGiven,
		DataCollected: []string{"Chat message"},
		Purpose:       "Answering the user's question",
		Retention:     domain.RetentionChat,
		Status:        domain.StatusCompliant,
		Notes:         "Session " + e.SessionID.String(),
	}
	if !e.ConsentGiven {
		params.Status = domain.StatusReviewRequired
		params.Notes += "; message stored without recorded consent"
	}
	return params
}

func deletionEntry(e events.AccountDeleted) repository.AppendParams {
	notes := fmt.Sprintf("Profile anonymized, %d enrollment(s) and %d role(s) removed", e.EnrollmentsRemoved, e.RolesRemoved)
	return repository.AppendParams{
		Agent:         DataRightsAgent,
		Action:        "Account deleted at the owner's request",
		UserConsent:   true,
		DataCollected: []string{},
		Purpose:       "Right to erasure",
		Retention:     domain.RetentionDeletion,
		Status:        domain.StatusCompliant,
		Notes:         notes,
	}
}
