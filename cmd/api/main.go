package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aptivai_backend/internal/accounts"
	"aptivai_backend/internal/adapters"
	"aptivai_backend/internal/adapters/storage"
	"aptivai_backend/internal/agents"
	"aptivai_backend/internal/agents/catalog"
	"aptivai_backend/internal/agents/runtime"
	agentservice "aptivai_backend/internal/agents/service"
	"aptivai_backend/internal/assessments"
	"aptivai_backend/internal/auth"
	"aptivai_backend/internal/compliance"
	complianceservice "aptivai_backend/internal/compliance/service"
	"aptivai_backend/internal/events"
	apphttp "aptivai_backend/internal/http"
	"aptivai_backend/internal/http/router"
	"aptivai_backend/internal/intake"
	"aptivai_backend/internal/leads"
	"aptivai_backend/internal/notification"
	"aptivai_backend/internal/oversight"
	"aptivai_backend/internal/scheduler"
	"aptivai_backend/internal/scoring"
	"aptivai_backend/platform/ai/gateway"
	"aptivai_backend/platform/config"
	"aptivai_backend/platform/db"
	"aptivai_backend/platform/logger"
	"aptivai_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		version, err := db.RunMigrations(ctx, cfg, "migrations")
		if err == nil {
			log.Info("database migrations complete", "version", version)
		}
		return err
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()
	agentCatalog := catalog.Default()

	analyzer, replier := initAI(cfg, agentCatalog, log)
	archiver := initArchiver(ctx, cfg, log)

	reviewEnqueuer, closeScheduler := initReviewScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notification.New(reviewEnqueuer, log).RegisterHandlers(eventBus)

	authModule, err := auth.NewModule(pool, cfg, eventBus, val, log)
	if err != nil {
		log.Error("failed to initialize auth module", "error", err)
		panic("failed to initialize auth module: " + err.Error())
	}

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			assessments.NewModule(pool, analyzer, eventBus, val, log),
			leads.NewModule(pool, eventBus, val, log),
			oversight.NewModule(pool, cfg.GetLeadOversightThreshold(), eventBus, val, log),
			compliance.NewModule(pool, archiver, val, log),
			intake.NewModule(pool, eventBus, val, log),
			accounts.NewModule(pool, eventBus, log),
			agents.NewModule(pool, agentCatalog, replier, eventBus, val, log),
		},
	}
	app.Subscribe()

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
	eventBus.Wait()
	log.Info("server stopped")
}

// initAI returns the gateway-backed analyzer and chat runtime, or the local
// rule analyzer and no chat when the gateway is not configured.
func initAI(cfg *config.Config, agentCatalog *catalog.Catalog, log *logger.Logger) (scoring.Analyzer, agentservice.Replier) {
	if !cfg.IsGatewayEnabled() {
		log.Warn("AI gateway not configured, using rule-based scoring and disabling agent chat")
		return scoring.RuleAnalyzer{}, nil
	}

	client, err := gateway.NewClient(cfg, log)
	if err != nil {
		log.Error("failed to initialize AI gateway client", "error", err)
		panic("failed to initialize AI gateway client: " + err.Error())
	}

	readiness, _ := agentCatalog.Get(catalog.ReadinessAssessment)
	analyzer := scoring.NewLLMAnalyzer(client, readiness.Prompt, log)

	rt, err := runtime.New(agentCatalog, gateway.NewModel(client.Model(), client))
	if err != nil {
		log.Error("failed to initialize agent runtime", "error", err)
		panic("failed to initialize agent runtime: " + err.Error())
	}

	log.Info("AI gateway initialized", "model", client.Model())
	return analyzer, rt
}

// initArchiver wires compliance export archiving to MinIO when configured.
func initArchiver(ctx context.Context, cfg *config.Config, log *logger.Logger) complianceservice.Archiver {
	if !cfg.IsMinIOEnabled() {
		log.Info("MinIO not configured, compliance export archiving disabled")
		return nil
	}

	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}

	bucket := cfg.GetMinioBucketComplianceExports()
	if err := withRetry(ctx, log, "ensure compliance-exports bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}

	log.Info("storage service initialized", "complianceExportsBucket", bucket)
	return adapters.NewComplianceExportArchiver(storageSvc, bucket)
}

func initReviewScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.ReviewEnqueuer, func()) {
	if cfg.GetRedisURL() == "" {
		log.Info("REDIS_URL not set, reviewer notifications disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client, reviewer notifications disabled", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
