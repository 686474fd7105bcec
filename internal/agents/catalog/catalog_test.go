package catalog

import (
	"strings"
	"testing"
)

func TestDefaultCatalogHasEveryAgent(t *testing.T) {
	c := Default()
	for _, name := range []string{ReadinessAssessment, LeadIntelligence, ConsultationScheduler, ContentPersonalization, CourseRecommendation, BusinessConsultant} {
		a, ok := c.Get(name)
		if !ok {
			t.Errorf("missing agent %s", name)
			continue
		}
		if !strings.Contains(a.Prompt, "POPIA") {
			t.Errorf("agent %s prompt lacks the shared preamble", name)
		}
	}
	if got := len(c.List()); got != 6 {
		t.Errorf("expected 6 agents, got %d", got)
	}
}

func TestTitle(t *testing.T) {
	if got := Title(LeadIntelligence); got != "Lead Intelligence Assistant" {
		t.Errorf("unexpected title %q", got)
	}
	if got := Title("unknown-agent"); got != "unknown-agent" {
		t.Errorf("expected the name back, got %q", got)
	}
}

func TestParseRejectsDuplicates(t *testing.T) {
	doc := []byte(`
agents:
  - {name: a, title: A, prompt: x}
  - {name: a, title: B, prompt: y}
`)
	if _, err := Parse(doc); err == nil {
		t.Fatal("expected duplicate error")
	}
}

func TestParseRejectsMissingPrompt(t *testing.T) {
	if _, err := Parse([]byte("agents:\n  - {name: a, title: A}\n")); err == nil {
		t.Fatal("expected missing prompt error")
	}
}

func TestPromptsHaveNoTemplatePlaceholders(t *testing.T) {
	for _, a := range Default().List() {
		if strings.ContainsAny(a.Prompt, "{}") {
			t.Errorf("agent %s prompt contains braces, which the runner treats as state placeholders", a.Name)
		}
	}
}
