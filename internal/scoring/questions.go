// Package scoring turns readiness questionnaire answers into a readiness
// result. It does not persist anything.
package scoring

import (
	"sort"
	"strings"

	"aptivai_backend/platform/apperr"
)

// Question ids of the readiness questionnaire.
const (
	QuestionCurrentAIUsage    = "current_ai_usage"
	QuestionTeamAILiteracy    = "team_ai_literacy"
	QuestionPrimaryGoals      = "primary_goals"
	QuestionBiggestChallenges = "biggest_challenges"
	QuestionIndustry          = "industry"
	QuestionCompanySize       = "company_size"
)

// QuestionType is how a question is answered.
type QuestionType string

const (
	QuestionRadio QuestionType = "radio"
	QuestionText  QuestionType = "textarea"
)

// Question is one item of the questionnaire. Options are ordered from least
// to most mature where maturity applies.
type Question struct {
	ID          string       `json:"id"`
	Text        string       `json:"question"`
	Type        QuestionType `json:"type"`
	Options     []string     `json:"options,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
}

// Answers maps question id to the free text or selected option.
type Answers map[string]string

var questionnaire = []Question{
	{
		ID:   QuestionCurrentAIUsage,
		Text: "How would you describe your organization's current AI usage?",
		Type: QuestionRadio,
		Options: []string{
			"No AI usage - exploring possibilities",
			"Basic AI tools (ChatGPT, etc.)",
			"Some integrated AI solutions",
			"Advanced AI implementation",
		},
	},
	{
		ID:   QuestionTeamAILiteracy,
		Text: "What is your team's AI literacy level?",
		Type: QuestionRadio,
		Options: []string{
			"Little to no AI knowledge",
			"Basic understanding of AI concepts",
			"Comfortable using AI tools",
			"Advanced AI practitioners",
		},
	},
	{
		ID:          QuestionPrimaryGoals,
		Text:        "What are your primary goals for AI adoption?",
		Type:        QuestionText,
		Placeholder: "E.g., improve efficiency, reduce costs, enhance customer experience...",
	},
	{
		ID:          QuestionBiggestChallenges,
		Text:        "What are your biggest challenges or concerns about AI?",
		Type:        QuestionText,
		Placeholder: "E.g., lack of expertise, cost, data privacy, implementation complexity...",
	},
	{
		ID:      QuestionIndustry,
		Text:    "What industry are you in?",
		Type:    QuestionRadio,
		Options: []string{"Technology", "Healthcare", "Finance", "Retail", "Manufacturing", "Education", "Other"},
	},
	{
		ID:   QuestionCompanySize,
		Text: "What is your organization size?",
		Type: QuestionRadio,
		Options: []string{
			"Solo / Freelancer",
			"Small (2-20 employees)",
			"Medium (21-100 employees)",
			"Large (100+ employees)",
		},
	},
}

// Questions returns a copy of the questionnaire in display order.
func Questions() []Question {
	out := make([]Question, len(questionnaire))
	copy(out, questionnaire)
	return out
}

// Validate reports every required question that is missing or blank.
func Validate(answers Answers) error {
	var missing []string
	for _, q := range questionnaire {
		if strings.TrimSpace(answers[q.ID]) == "" {
			missing = append(missing, q.ID)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return apperr.Validation("all questions must be answered").
		WithDetails(map[string][]string{"missing": missing})
}

// optionRank returns the index of the option the answer selects. The answer
// must equal the option label, or its leading segment before " - " or " (",
// ignoring case, so "No AI usage" selects the first usage option. It returns
// -1 when nothing matches.
func optionRank(questionID, answer string) int {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "" {
		return -1
	}
	for _, q := range questionnaire {
		if q.ID != questionID {
			continue
		}
		for i, opt := range q.Options {
			lower := strings.ToLower(opt)
			if answer == lower || answer == optionLead(lower) {
				return i
			}
		}
	}
	return -1
}

func optionLead(option string) string {
	for _, sep := range []string{" - ", " ("} {
		if lead, _, found := strings.Cut(option, sep); found {
			option = lead
		}
	}
	return strings.TrimSpace(option)
}

// Keys returns the answered question ids in sorted order.
func (a Answers) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
