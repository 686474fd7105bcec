// Package agents exposes the named chat agents.
package agents

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"aptivai_backend/internal/agents/catalog"
	"aptivai_backend/internal/agents/handler"
	"aptivai_backend/internal/agents/repository"
	"aptivai_backend/internal/agents/service"
	"aptivai_backend/internal/events"
	apphttp "aptivai_backend/internal/http"
	"aptivai_backend/platform/logger"
	"aptivai_backend/platform/validator"
)

// Module is the agents bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the agents module. A nil replier leaves the agents listed
// but every chat fails as upstream unavailable.
func NewModule(pool *pgxpool.Pool, cat *catalog.Catalog, replier service.Replier, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	return NewModuleWithRepository(repository.New(pool), cat, replier, bus, val, log)
}

// NewModuleWithRepository creates the module over any Repository.
func NewModuleWithRepository(repo repository.Repository, cat *catalog.Catalog, replier service.Replier, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(cat, replier, repo, bus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "agents"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the public agent routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/agents")
	group.GET("", m.handler.List)
	group.POST("/:name/chat", ctx.AgentRateLimiter.RateLimit(), ctx.OptionalAuth, m.handler.Chat)
}

var _ apphttp.Module = (*Module)(nil)
