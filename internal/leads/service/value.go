package service

import (
	"strings"
)

// Band is the lead value tier used by the sales team.
type Band string

const (
	BandHigh   Band = "HIGH"
	BandMedium Band = "MEDIUM"
	BandLow    Band = "LOW"
)

// Signals are the engagement facts a lead value score is derived from.
// Only behavioural and self-declared business data is considered.
type Signals struct {
	Role                  string
	Employees             int
	SpecificRequirements  bool
	BudgetDiscussed       bool
	Touchpoints           int
	ResourcesDownloaded   int
	ConsultationRequested bool
}

const (
	minValueScore = 1
	maxValueScore = 10

	// HighValueThreshold is the lowest score in the HIGH band.
	HighValueThreshold = 8
	mediumValueMin     = 5
)

var (
	executiveRoles = []string{"ceo", "cto", "cfo", "coo", "cio", "chief", "founder", "owner", "managing director", "president", "vp", "vice president"}
	managerRoles   = []string{"director", "head", "manager", "lead", "supervisor"}
)

// ValueScore rates a lead from 1 to 10 and explains the rating.
func ValueScore(s Signals) (int, []string) {
	score := minValueScore
	var reasons []string

	switch roleTier(s.Role) {
	case 2:
		score += 3
		reasons = append(reasons, "decision-maker role")
	case 1:
		score += 2
		reasons = append(reasons, "management role")
	}

	switch {
	case s.Employees >= 50:
		score += 2
		reasons = append(reasons, "company with 50+ employees")
	case s.Employees >= 10:
		score++
		reasons = append(reasons, "company with 10-50 employees")
	}

	if s.SpecificRequirements {
		score += 2
		reasons = append(reasons, "specific AI project requirements")
	}
	if s.BudgetDiscussed {
		score += 2
		reasons = append(reasons, "budget discussed")
	}
	if s.Touchpoints >= 3 {
		score++
		reasons = append(reasons, "multiple return visits")
	}
	if s.ResourcesDownloaded >= 2 {
		score++
		reasons = append(reasons, "engaged with multiple resources")
	}
	if s.ConsultationRequested {
		score++
		reasons = append(reasons, "requested a consultation")
	}

	return clamp(score, minValueScore, maxValueScore), nonNilStrings(reasons)
}

// BandFor maps a value score to its band.
func BandFor(score int) Band {
	switch {
	case score >= HighValueThreshold:
		return BandHigh
	case score >= mediumValueMin:
		return BandMedium
	default:
		return BandLow
	}
}

func roleTier(role string) int {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return 0
	}
	for _, kw := range executiveRoles {
		if containsWord(role, kw) {
			return 2
		}
	}
	for _, kw := range managerRoles {
		if containsWord(role, kw) {
			return 1
		}
	}
	return 0
}

// containsWord matches kw on word boundaries so "vp" does not match "mvp".
func containsWord(s, kw string) bool {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	joined := " " + strings.Join(fields, " ") + " "
	return strings.Contains(joined, " "+kw+" ")
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func nonNilStrings(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
