// Package compliance provides the POPIA audit trail: every automated action
// that touches personal data is appended here and can be filtered and exported.
package compliance

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"aptivai_backend/internal/compliance/handler"
	"aptivai_backend/internal/compliance/repository"
	"aptivai_backend/internal/compliance/service"
	"aptivai_backend/internal/events"
	apphttp "aptivai_backend/internal/http"
	"aptivai_backend/platform/logger"
	"aptivai_backend/platform/validator"
)

// Module is the compliance bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the compliance module backed by PostgreSQL. archiver may be nil.
func NewModule(pool *pgxpool.Pool, archiver service.Archiver, val *validator.Validator, log *logger.Logger) *Module {
	return NewModuleWithRepository(repository.New(pool), archiver, val, log)
}

// NewModuleWithRepository creates the module over any Repository.
func NewModuleWithRepository(repo repository.Repository, archiver service.Archiver, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, archiver, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "compliance"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the admin compliance routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	admin := ctx.Admin.Group("/compliance")
	admin.GET("", m.handler.Query)
	admin.GET("/stats", m.handler.Stats)
	admin.GET("/agents", m.handler.Agents)
	admin.GET("/export", m.handler.Export)
	if m.service.CanArchive() {
		admin.POST("/exports", m.handler.Archive)
	}
}

// RegisterHandlers subscribes to every event that touches personal data.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.AssessmentCompleted{}.EventName(), m)
	bus.Subscribe(events.LeadScored{}.EventName(), m)
	bus.Subscribe(events.ConsultationRequested{}.EventName(), m)
	bus.Subscribe(events.EnrollmentRequested{}.EventName(), m)
	bus.Subscribe(events.PersonalizationRequested{}.EventName(), m)
	bus.Subscribe(events.AgentChatCompleted{}.EventName(), m)
	bus.Subscribe(events.AccountDeleted{}.EventName(), m)
}

// Handle mirrors an event into the log.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	return m.service.Record(ctx, event)
}

var _ apphttp.Module = (*Module)(nil)
