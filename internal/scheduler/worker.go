package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aptivai_backend/internal/email"
	"aptivai_backend/platform/config"
	"aptivai_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, notifier *ReviewNotifier, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.Handle(TaskReviewRequested, notifier)

	return &Worker{server: server, mux: mux, log: log}, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// ReviewNotifier emails every configured reviewer about a queued item.
type ReviewNotifier struct {
	sender    email.Sender
	reviewers []string
	baseURL   string
	log       *logger.Logger
}

var _ asynq.Handler = (*ReviewNotifier)(nil)

func NewReviewNotifier(sender email.Sender, reviewers []string, baseURL string, log *logger.Logger) *ReviewNotifier {
	return &ReviewNotifier{sender: sender, reviewers: reviewers, baseURL: baseURL, log: log}
}

// ProcessTask sends the notification. A failed address fails the task so
// asynq retries it; a malformed payload is skipped.
func (n *ReviewNotifier) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseReviewRequestedPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if _, err := uuid.Parse(payload.ItemID); err != nil {
		return fmt.Errorf("%w: invalid item id %q", asynq.SkipRetry, payload.ItemID)
	}

	if len(n.reviewers) == 0 {
		n.log.Warn("review requested but no reviewers configured", "itemId", payload.ItemID)
		return nil
	}

	req := email.ReviewRequest{
		ItemID:    payload.ItemID,
		Title:     payload.Title,
		Priority:  payload.Priority,
		Agent:     payload.Agent,
		ReviewURL: email.ReviewURL(n.baseURL, payload.ItemID),
	}

	var errs []error
	for _, reviewer := range n.reviewers {
		reviewer = strings.TrimSpace(reviewer)
		if reviewer == "" {
			continue
		}
		if err := n.sender.SendReviewRequestEmail(ctx, reviewer, req); err != nil {
			n.log.Error("failed to send review request", "itemId", payload.ItemID, "reviewer", reviewer, "error", err)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	n.log.Info("review request sent", "itemId", payload.ItemID, "reviewers", len(n.reviewers))
	return nil
}
