// Package intake provides the consultation, enrollment and personalization
// request endpoints.
package intake

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"aptivai_backend/internal/events"
	apphttp "aptivai_backend/internal/http"
	"aptivai_backend/internal/intake/handler"
	"aptivai_backend/internal/intake/repository"
	"aptivai_backend/internal/intake/service"
	"aptivai_backend/platform/logger"
	"aptivai_backend/platform/validator"
)

// Module is the intake bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the intake module backed by PostgreSQL.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), bus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "intake"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts intake routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/consultations", ctx.AgentRateLimiter.RateLimit(), ctx.OptionalAuth, m.handler.BookConsultation)
	ctx.V1.POST("/personalization", ctx.AgentRateLimiter.RateLimit(), ctx.OptionalAuth, m.handler.RequestPersonalization)

	ctx.Protected.POST("/enrollments", m.handler.RequestEnrollment)
	ctx.Protected.GET("/enrollments", m.handler.ListEnrollments)
}

var _ apphttp.Module = (*Module)(nil)
