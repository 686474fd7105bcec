package scoring

import "strings"

// Priority is the urgency of intervention for a lead.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Valid reports whether p is one of the four tiers.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// PriorityForScore maps a readiness score to a tier. Fewer capabilities mean
// a lower score and a more urgent tier.
func PriorityForScore(score int) Priority {
	switch {
	case score < 30:
		return PriorityCritical
	case score < 50:
		return PriorityHigh
	case score < 75:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Result is a readiness analysis.
type Result struct {
	Score           int      `json:"score"`
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Recommendations []string `json:"recommendations"`
	Priority        Priority `json:"priority"`
}

// Source tells how a Result was produced.
type Source string

const (
	// SourceParsed is a result read from the gateway's reply.
	SourceParsed Source = "parsed"
	// SourceFallback is the fixed default used when the reply was unreadable.
	SourceFallback Source = "fallback"
	// SourceRules is a result computed locally by RuleAnalyzer.
	SourceRules Source = "rules"
)

// Outcome is the tagged result of an analysis.
type Outcome struct {
	Source Source `json:"source"`
	Result Result `json:"analysis"`
}

// IsFallback reports whether the fixed default was substituted.
func (o Outcome) IsFallback() bool {
	return o.Source == SourceFallback
}

// DefaultScore and DefaultPriority make up the fallback result.
const (
	DefaultScore    = 50
	DefaultPriority = PriorityMedium
)

// Default returns the fixed result used when a reply cannot be parsed.
func Default() Result {
	return Result{
		Score:   DefaultScore,
		Summary: "Your organization shows moderate AI readiness with opportunities for growth.",
		Strengths: []string{
			"Interest in AI adoption",
			"Willingness to assess readiness",
		},
		Improvements: []string{
			"Develop AI literacy across the team",
			"Identify specific use cases",
		},
		Recommendations: []string{
			"Start with AI awareness training",
			"Identify quick-win AI applications",
			"Develop an AI adoption roadmap",
		},
		Priority: DefaultPriority,
	}
}

// normalize clamps the score into [0,100], derives a missing or unknown
// priority from the score and replaces nil lists with empty ones.
func normalize(r Result) Result {
	if r.Score < 0 {
		r.Score = 0
	}
	if r.Score > 100 {
		r.Score = 100
	}
	r.Priority = Priority(strings.ToLower(strings.TrimSpace(string(r.Priority))))
	if !r.Priority.Valid() {
		r.Priority = PriorityForScore(r.Score)
	}
	r.Summary = strings.TrimSpace(r.Summary)
	r.Strengths = nonNil(r.Strengths)
	r.Improvements = nonNil(r.Improvements)
	r.Recommendations = nonNil(r.Recommendations)
	return r
}

func nonNil(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
