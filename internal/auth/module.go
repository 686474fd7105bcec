// Package auth provides the authentication bounded context module.
// This file defines the module that encapsulates all auth setup and route registration.
package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"aptivai_backend/internal/auth/handler"
	"aptivai_backend/internal/auth/repository"
	"aptivai_backend/internal/auth/service"
	"aptivai_backend/internal/auth/token"
	authvalidator "aptivai_backend/internal/auth/validator"
	"aptivai_backend/internal/events"
	apphttp "aptivai_backend/internal/http"
	"aptivai_backend/platform/config"
	"aptivai_backend/platform/logger"
	"aptivai_backend/platform/validator"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module with all its dependencies.
// It registers the password policy on val.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, eventBus events.Bus, val *validator.Validator, log *logger.Logger) (*Module, error) {
	return NewModuleWithRepository(repository.New(pool), cfg, eventBus, val, log)
}

// NewModuleWithRepository builds the module over an existing account store.
func NewModuleWithRepository(repo repository.AuthRepository, cfg config.AuthServiceConfig, eventBus events.Bus, val *validator.Validator, log *logger.Logger) (*Module, error) {
	if err := authvalidator.Register(val); err != nil {
		return nil, err
	}

	issuer := token.NewIssuer(cfg.GetJWTAccessSecret(), cfg.GetAccessTokenTTL())
	svc := service.New(repo, issuer, cfg.GetAdminEmails(), eventBus, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the auth service.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public auth routes with stricter rate limiting
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)

	ctx.Protected.GET("/users/me", m.handler.GetMe)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
