// Package http assembles the API from domain modules. Each module mounts its
// own routes; the router only knows the Module interface.
package http

import (
	"aptivai_backend/platform/config"
	"aptivai_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module is one bounded context of the API.
type Module interface {
	Name() string
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext carries the route groups and shared middleware handed to
// every Module.RegisterRoutes call.
type RouterContext struct {
	Engine *gin.Engine

	// V1 is /api/v1 without authentication.
	V1 *gin.RouterGroup
	// Protected is /api/v1 behind AuthMiddleware.
	Protected *gin.RouterGroup
	// Admin is /api/v1/admin, authenticated and restricted to the admin role.
	Admin *gin.RouterGroup

	Config         config.JWTConfig
	AuthMiddleware gin.HandlerFunc
	OptionalAuth   gin.HandlerFunc

	AuthRateLimiter *httpkit.AuthRateLimiter
	// AgentRateLimiter guards routes that end in a gateway call.
	AgentRateLimiter *httpkit.IPRateLimiter
}
