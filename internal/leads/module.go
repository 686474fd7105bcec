// Package leads provides the lead intelligence bounded context: one aggregate
// profile per user, refreshed from assessments and rated from engagement signals.
package leads

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"aptivai_backend/internal/events"
	apphttp "aptivai_backend/internal/http"
	"aptivai_backend/internal/leads/handler"
	"aptivai_backend/internal/leads/repository"
	"aptivai_backend/internal/leads/service"
	"aptivai_backend/platform/logger"
	"aptivai_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates the leads module backed by PostgreSQL.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	return NewModuleWithRepository(repository.New(pool), bus, val, log)
}

// NewModuleWithRepository creates the module over any Repository.
func NewModuleWithRepository(repo repository.Repository, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, bus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the admin lead routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	admin := ctx.Admin.Group("/leads")
	admin.GET("", m.handler.List)
	admin.POST("/signals", m.handler.Score)
	admin.GET("/:userId", m.handler.GetByUser)
	admin.PATCH("/:userId/company", m.handler.UpdateCompany)
}

// RegisterHandlers subscribes to completed assessments.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.AssessmentCompleted{}.EventName(), m)
}

// Handle routes events to the appropriate service method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.AssessmentCompleted:
		return m.service.Upsert(ctx, e.UserID, e.Score, e.Priority, e.Recommendations, e.OccurredAt())
	default:
		return nil
	}
}

var _ apphttp.Module = (*Module)(nil)
