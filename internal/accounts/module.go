// Package accounts provides the account owner's data rights: deletion and
// personal data export.
package accounts

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"aptivai_backend/internal/accounts/handler"
	"aptivai_backend/internal/accounts/repository"
	"aptivai_backend/internal/accounts/service"
	"aptivai_backend/internal/events"
	apphttp "aptivai_backend/internal/http"
	"aptivai_backend/platform/logger"
)

// Module is the accounts bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the accounts module backed by PostgreSQL.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) *Module {
	return NewModuleWithRepository(repository.New(pool), bus, log)
}

// NewModuleWithRepository creates the module over any Repository.
func NewModuleWithRepository(repo repository.Repository, bus events.Bus, log *logger.Logger) *Module {
	svc := service.New(repo, bus, log)
	return &Module{handler: handler.New(svc), service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "accounts"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the owner-only account routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	owned := ctx.Protected.Group("/accounts")
	owned.DELETE("/:userId", m.handler.Delete)
	owned.GET("/:userId/data", m.handler.ExportData)
}

var _ apphttp.Module = (*Module)(nil)
