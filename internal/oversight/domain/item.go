// Package domain provides the review-queue rules of the oversight bounded context.
package domain

// Type is the kind of automated action awaiting review.
type Type string

const (
	TypeConsultation    Type = "consultation"
	TypeAssessment      Type = "assessment"
	TypeEnrollment      Type = "enrollment"
	TypeLead            Type = "lead"
	TypePersonalization Type = "personalization"
)

// Priority is the review urgency.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Status is the review state. Pending is the only non-terminal status.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// StatusAll is the list filter that matches every status.
const StatusAll = "all"

// IsTerminal reports whether no further transition is allowed from s.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransition reports whether from -> to is allowed. Only pending items can
// be decided, and only into a terminal status.
func CanTransition(from, to Status) bool {
	return from == StatusPending && to.IsTerminal()
}

// ParseStatusFilter validates a list filter. Empty means all.
func ParseStatusFilter(raw string) (Status, bool) {
	switch raw {
	case "", StatusAll:
		return "", true
	case string(StatusPending), string(StatusApproved), string(StatusRejected):
		return Status(raw), true
	}
	return "", false
}
