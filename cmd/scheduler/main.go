package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"aptivai_backend/internal/email"
	"aptivai_backend/internal/scheduler"
	"aptivai_backend/platform/config"
	"aptivai_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.IsEmailEnabled() {
		log.Warn("SMTP_HOST not set, review requests will be acknowledged without sending email")
	}
	if len(cfg.GetReviewerEmails()) == 0 {
		log.Warn("REVIEWER_EMAILS not set, review requests have no recipients")
	}

	notifier := scheduler.NewReviewNotifier(email.NewSender(cfg), cfg.GetReviewerEmails(), cfg.GetAppBaseURL(), log)

	worker, err := scheduler.NewWorker(cfg, notifier, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("scheduler stopped")
}
