// Package assessments provides the readiness assessment bounded context:
// questionnaire delivery, scoring and the assessment record store.
package assessments

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"aptivai_backend/internal/assessments/handler"
	"aptivai_backend/internal/assessments/repository"
	"aptivai_backend/internal/assessments/service"
	"aptivai_backend/internal/events"
	apphttp "aptivai_backend/internal/http"
	"aptivai_backend/internal/scoring"
	"aptivai_backend/platform/logger"
	"aptivai_backend/platform/validator"
)

// Module is the assessments bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates the assessments module backed by PostgreSQL.
func NewModule(pool *pgxpool.Pool, analyzer scoring.Analyzer, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	return NewModuleWithRepository(repository.New(pool), analyzer, bus, val, log)
}

// NewModuleWithRepository creates the module over any Repository.
func NewModuleWithRepository(repo repository.Repository, analyzer scoring.Analyzer, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, analyzer, bus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "assessments"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts assessment routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/assessments")
	public.GET("/questions", m.handler.Questions)
	public.POST("", ctx.AgentRateLimiter.RateLimit(), ctx.OptionalAuth, m.handler.Submit)

	owned := ctx.Protected.Group("/assessments")
	owned.GET("", m.handler.List)
	owned.GET("/:id", m.handler.GetByID)
}

var _ apphttp.Module = (*Module)(nil)
