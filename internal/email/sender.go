// Package email delivers reviewer notifications over SMTP.
package email

import (
	"context"
	"strings"

	"aptivai_backend/platform/config"
)

// ReviewRequest describes an oversight item a reviewer should look at.
type ReviewRequest struct {
	ItemID    string
	Title     string
	Priority  string
	Agent     string
	ReviewURL string
}

type Sender interface {
	SendReviewRequestEmail(ctx context.Context, toEmail string, req ReviewRequest) error
}

type NoopSender struct{}

func (NoopSender) SendReviewRequestEmail(context.Context, string, ReviewRequest) error {
	return nil
}

// NewSender returns an SMTP sender, or a NoopSender when no SMTP host is set.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.IsEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}

// ReviewURL links to an item in the admin review screen.
func ReviewURL(baseURL, itemID string) string {
	return strings.TrimRight(baseURL, "/") + "/admin/oversight/" + itemID
}
