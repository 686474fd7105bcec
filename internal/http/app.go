package http

import (
	"context"

	"aptivai_backend/internal/events"
	"aptivai_backend/platform/config"
	"aptivai_backend/platform/logger"
)

// RouterConfig is the slice of configuration the router reads.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker backs /api/ready.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App is what cmd/api composes and hands to the router.
type App struct {
	Config   RouterConfig
	Logger   *logger.Logger
	Health   HealthChecker
	EventBus events.Bus
	Modules  []Module
}

// Subscriber is implemented by modules that react to domain events.
type Subscriber interface {
	RegisterHandlers(bus events.Bus)
}

// Subscribe lets every Subscriber module register its handlers on the bus.
// Call it once, after Modules is final.
func (a *App) Subscribe() {
	for _, m := range a.Modules {
		if s, ok := m.(Subscriber); ok {
			s.RegisterHandlers(a.EventBus)
		}
	}
}
