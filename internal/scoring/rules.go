package scoring

import (
	"context"
	"fmt"
	"strings"
)

// RuleAnalyzer scores answers locally. It is used when no gateway is
// configured and is deterministic: the same answers always give the same result.
type RuleAnalyzer struct{}

var _ Analyzer = RuleAnalyzer{}

// Points per option rank, least to most mature.
var (
	usagePoints    = [4]int{0, 12, 24, 35}
	literacyPoints = [4]int{0, 10, 20, 30}
	sizePoints     = [4]int{2, 6, 10, 12}
)

const (
	basePoints          = 10
	goalsPoints         = 4
	detailedGoalsPoints = 8
	goalsDetailLength   = 40
	challengesPoints    = 5
	unknownOptionRank   = 1
)

func (RuleAnalyzer) Analyze(_ context.Context, answers Answers) (Outcome, error) {
	if err := Validate(answers); err != nil {
		return Outcome{}, err
	}
	return Outcome{Source: SourceRules, Result: Score(answers)}, nil
}

// Score computes the rule-based result for a complete set of answers.
func Score(answers Answers) Result {
	usage := rankOr(QuestionCurrentAIUsage, answers)
	literacy := rankOr(QuestionTeamAILiteracy, answers)
	size := rankOr(QuestionCompanySize, answers)
	goals := strings.TrimSpace(answers[QuestionPrimaryGoals])
	challenges := strings.TrimSpace(answers[QuestionBiggestChallenges])

	score := basePoints + usagePoints[usage] + literacyPoints[literacy] + sizePoints[size]
	switch {
	case len(goals) >= goalsDetailLength:
		score += detailedGoalsPoints
	case goals != "":
		score += goalsPoints
	}
	if challenges != "" {
		score += challengesPoints
	}
	if score > 100 {
		score = 100
	}

	var strengths, improvements, recommendations []string

	switch {
	case usage >= 2:
		strengths = append(strengths, "AI solutions are already part of daily operations")
	case usage == 1:
		strengths = append(strengths, "Early experience with off-the-shelf AI tools")
	default:
		improvements = append(improvements, "No AI tools in use yet")
		recommendations = append(recommendations, "Pilot one low-risk AI tool with a small team")
	}

	switch {
	case literacy >= 2:
		strengths = append(strengths, "Team is comfortable working with AI tools")
	case literacy == 1:
		improvements = append(improvements, "AI knowledge is conceptual rather than practical")
		recommendations = append(recommendations, "Enrol the team in Module 2: Practical AI Applications")
	default:
		improvements = append(improvements, "Team has little or no AI literacy")
		recommendations = append(recommendations, "Start with Module 1: AI Foundations for non-technical staff")
	}

	if len(goals) >= goalsDetailLength {
		strengths = append(strengths, "Clear goals for AI adoption")
	} else {
		improvements = append(improvements, "Goals for AI adoption need to be made specific")
		recommendations = append(recommendations, "Run an implementation planning workshop to define measurable goals")
	}

	if challenges != "" {
		strengths = append(strengths, "Concerns about AI are understood and articulated")
	}
	recommendations = append(recommendations, "Review POPIA obligations before processing personal data with AI")

	priority := PriorityForScore(score)
	return Result{
		Score:           score,
		Summary:         summaryFor(score, priority, answers[QuestionIndustry]),
		Strengths:       nonNil(strengths),
		Improvements:    nonNil(improvements),
		Recommendations: nonNil(recommendations),
		Priority:        priority,
	}
}

func rankOr(questionID string, answers Answers) int {
	rank := optionRank(questionID, answers[questionID])
	if rank < 0 {
		return unknownOptionRank
	}
	return rank
}

func summaryFor(score int, priority Priority, industry string) string {
	industry = strings.TrimSpace(industry)
	if industry == "" || strings.EqualFold(industry, "other") {
		industry = "your industry"
	}
	switch priority {
	case PriorityCritical, PriorityHigh:
		return fmt.Sprintf("With a readiness score of %d, your organization is at the start of its AI journey in %s. Foundational training should come before any implementation.", score, industry)
	case PriorityMedium:
		return fmt.Sprintf("With a readiness score of %d, your organization has a workable base for AI in %s. Focused upskilling and a clear roadmap will unlock the next step.", score, industry)
	default:
		return fmt.Sprintf("With a readiness score of %d, your organization is well prepared for AI in %s. The focus can shift to scaling and governance.", score, industry)
	}
}
