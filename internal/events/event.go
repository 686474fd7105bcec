// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"aptivai_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Auth / Account Domain Events
// =============================================================================

// UserSignedUp is published when a new user successfully registers.
type UserSignedUp struct {
	BaseEvent
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
}

func (e UserSignedUp) EventName() string { return "auth.user.signed_up" }

// AccountDeleted is published after an owner-requested account deletion committed.
type AccountDeleted struct {
	BaseEvent
	UserID             uuid.UUID `json:"userId"`
	EnrollmentsRemoved int64     `json:"enrollmentsRemoved"`
	RolesRemoved       int64     `json:"rolesRemoved"`
}

func (e AccountDeleted) EventName() string { return "accounts.account.deleted" }

// =============================================================================
// Intake Domain Events
// =============================================================================

// AssessmentCompleted is published once a scored assessment has been recorded.
type AssessmentCompleted struct {
	BaseEvent
	AssessmentID    uuid.UUID  `json:"assessmentId"`
	UserID          *uuid.UUID `json:"userId,omitempty"`
	Score           int        `json:"score"`
	Priority        string     `json:"priority"`
	Summary         string     `json:"summary"`
	Recommendations []string   `json:"recommendations"`
	// Source is how the result was produced: parsed, fallback or rules.
	Source       string   `json:"source"`
	AnsweredKeys []string `json:"answeredKeys"`
	ConsentGiven bool     `json:"consentGiven"`
}

func (e AssessmentCompleted) EventName() string { return "intake.assessment.completed" }

// LeadScored is published when a lead value score (1-10) has been stored.
type LeadScored struct {
	BaseEvent
	UserID  uuid.UUID `json:"userId"`
	Score   int       `json:"score"`
	Band    string    `json:"band"`
	Reasons []string  `json:"reasons"`
}

func (e LeadScored) EventName() string { return "intake.lead.scored" }

// ConsultationRequested is published when a consultation booking is submitted.
type ConsultationRequested struct {
	BaseEvent
	ConsultationID uuid.UUID  `json:"consultationId"`
	UserID         *uuid.UUID `json:"userId,omitempty"`
	ContactName    string     `json:"contactName"`
	CompanyName    string     `json:"companyName"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	PreferredDate  string     `json:"preferredDate,omitempty"`
	ConsentGiven   bool       `json:"consentGiven"`
}

func (e ConsultationRequested) EventName() string { return "intake.consultation.requested" }

// EnrollmentRequested is published when a course enrollment is requested.
type EnrollmentRequested struct {
	BaseEvent
	EnrollmentID uuid.UUID `json:"enrollmentId"`
	UserID       uuid.UUID `json:"userId"`
	CourseTitle  string    `json:"courseTitle"`
	Participants int       `json:"participants"`
	AmountCents  int64     `json:"amountCents"`
}

func (e EnrollmentRequested) EventName() string { return "intake.enrollment.requested" }

// PersonalizationRequested is published when content personalization is requested.
type PersonalizationRequested struct {
	BaseEvent
	RequestID        uuid.UUID  `json:"requestId"`
	UserID           *uuid.UUID `json:"userId,omitempty"`
	Audience         string     `json:"audience"`
	DataFields       []string   `json:"dataFields"`
	UsesPersonalData bool       `json:"usesPersonalData"`
	ConsentOnFile    bool       `json:"consentOnFile"`
}

func (e PersonalizationRequested) EventName() string { return "intake.personalization.requested" }

// AgentChatCompleted is published after an agent answered a chat message.
type AgentChatCompleted struct {
	BaseEvent
	Agent        string     `json:"agent"`
	SessionID    uuid.UUID  `json:"sessionId"`
	UserID       *uuid.UUID `json:"userId,omitempty"`
	ConsentGiven bool       `json:"consentGiven"`
}

func (e AgentChatCompleted) EventName() string { return "agents.chat.completed" }

// =============================================================================
// Oversight Domain Events
// =============================================================================

// OversightItemRaised is published when a new item enters the review queue.
type OversightItemRaised struct {
	BaseEvent
	ItemID   uuid.UUID `json:"itemId"`
	Type     string    `json:"type"`
	Title    string    `json:"title"`
	Agent    string    `json:"agent"`
	Priority string    `json:"priority"`
}

func (e OversightItemRaised) EventName() string { return "oversight.item.raised" }

// OversightItemDecided is published when a reviewer approves or rejects an item.
type OversightItemDecided struct {
	BaseEvent
	ItemID     uuid.UUID `json:"itemId"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	ReviewerID uuid.UUID `json:"reviewerId"`
}

func (e OversightItemDecided) EventName() string { return "oversight.item.decided" }
