// Package oversight provides the human review queue: automated actions that
// cross a policy threshold wait here for an approve or reject decision.
package oversight

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"aptivai_backend/internal/events"
	apphttp "aptivai_backend/internal/http"
	"aptivai_backend/internal/oversight/handler"
	"aptivai_backend/internal/oversight/repository"
	"aptivai_backend/internal/oversight/service"
	"aptivai_backend/platform/logger"
	"aptivai_backend/platform/validator"
)

// Module is the oversight bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the oversight module backed by PostgreSQL.
func NewModule(pool *pgxpool.Pool, leadThreshold int, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	return NewModuleWithRepository(repository.New(pool), leadThreshold, bus, val, log)
}

// NewModuleWithRepository creates the module over any Repository.
func NewModuleWithRepository(repo repository.Repository, leadThreshold int, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, service.NewPolicy(leadThreshold), bus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "oversight"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the admin review routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	admin := ctx.Admin.Group("/oversight")
	admin.GET("", m.handler.List)
	admin.GET("/stats", m.handler.Stats)
	admin.GET("/:id", m.handler.GetByID)
	admin.POST("/:id/approve", m.handler.Approve)
	admin.POST("/:id/reject", m.handler.Reject)
}

// RegisterHandlers subscribes to every event the policy can raise an item for.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadScored{}.EventName(), m)
	bus.Subscribe(events.AssessmentCompleted{}.EventName(), m)
	bus.Subscribe(events.EnrollmentRequested{}.EventName(), m)
	bus.Subscribe(events.PersonalizationRequested{}.EventName(), m)
	bus.Subscribe(events.ConsultationRequested{}.EventName(), m)
}

// Handle hands events to the policy.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	return m.service.HandleEvent(ctx, event)
}

var _ apphttp.Module = (*Module)(nil)
