// Package domain holds the compliance log vocabulary.
package domain

import "strings"

// Status is the POPIA assessment of a logged action.
type Status string

const (
	StatusCompliant      Status = "compliant"
	StatusReviewRequired Status = "review-required"
	StatusNonCompliant   Status = "non-compliant"
)

// FilterAll is the filter value that matches anything.
const FilterAll = "all"

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusCompliant, StatusReviewRequired, StatusNonCompliant:
		return true
	}
	return false
}

// Retention periods used by the recorder.
const (
	RetentionAssessment   = "2 years"
	RetentionLead         = "3 years"
	RetentionConsultation = "1 year after consultation"
	RetentionEnrollment   = "5 years (financial records)"
	RetentionChat         = "90 days"
	RetentionSession      = "Session only"
	RetentionDeletion     = "7 years (audit requirement)"
)

// Filter narrows a query. Every non-empty field must match.
type Filter struct {
	Search string `json:"search"`
	Status Status `json:"status"`
	Agent  string `json:"agent"`
}

// NormalizeFilter maps the "all" sentinel and surrounding whitespace to the
// empty no-filter value. ok is false for an unknown status.
func NormalizeFilter(search, status, agent string) (Filter, bool) {
	f := Filter{Search: strings.TrimSpace(search)}

	status = strings.TrimSpace(status)
	if status != "" && status != FilterAll {
		f.Status = Status(status)
		if !f.Status.Valid() {
			return Filter{}, false
		}
	}

	agent = strings.TrimSpace(agent)
	if agent != FilterAll {
		f.Agent = agent
	}
	return f, true
}

// IsEmpty reports whether f matches every entry.
func (f Filter) IsEmpty() bool {
	return f.Search == "" && f.Status == "" && f.Agent == ""
}

// MatchesText reports whether the search term is a case-insensitive
// substring of any of the fields.
func (f Filter) MatchesText(fields ...string) bool {
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
