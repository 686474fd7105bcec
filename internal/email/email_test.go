package email

import (
	"strings"
	"testing"
)

func TestRenderReviewRequest(t *testing.T) {
	subject, content, err := renderReviewRequest(ReviewRequest{
		ItemID:    "42",
		Title:     "High-value lead: Acme <Logistics>",
		Priority:  "high",
		Agent:     "Lead Intelligence Assistant",
		ReviewURL: ReviewURL("https://app.example.com/", "42"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subject != "[HIGH] Review required: High-value lead: Acme <Logistics>" {
		t.Errorf("unexpected subject %q", subject)
	}
	for _, want := range []string{
		`href="https://app.example.com/admin/oversight/42"`,
		"Acme &lt;Logistics&gt;",
		"Lead Intelligence Assistant",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("expected %q in rendered email", want)
		}
	}
}

func TestNewSenderWithoutHostIsNoop(t *testing.T) {
	if _, ok := NewSender(disabledConfig{}).(NoopSender); !ok {
		t.Fatal("expected a NoopSender when SMTP is not configured")
	}
}

type disabledConfig struct{}

func (disabledConfig) GetSMTPHost() string         { return "" }
func (disabledConfig) GetSMTPPort() int            { return 0 }
func (disabledConfig) GetSMTPUsername() string     { return "" }
func (disabledConfig) GetSMTPPassword() string     { return "" }
func (disabledConfig) GetEmailFromName() string    { return "" }
func (disabledConfig) GetEmailFromAddress() string { return "" }
func (disabledConfig) GetReviewerEmails() []string { return nil }
func (disabledConfig) GetAppBaseURL() string       { return "" }
func (disabledConfig) IsEmailEnabled() bool        { return false }
