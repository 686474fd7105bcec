// Package notification turns oversight events into reviewer notifications.
// Domain modules publish events; this module decides who hears about them.
package notification

import (
	"context"

	"aptivai_backend/internal/events"
	"aptivai_backend/internal/scheduler"
	"aptivai_backend/platform/logger"
)

const priorityHigh = "high"

// Module enqueues a reviewer notification for every high-priority item.
type Module struct {
	enqueuer scheduler.ReviewEnqueuer
	log      *logger.Logger
}

// New creates the notification module. A nil enqueuer disables notifications.
func New(enqueuer scheduler.ReviewEnqueuer, log *logger.Logger) *Module {
	return &Module{enqueuer: enqueuer, log: log}
}

// RegisterHandlers subscribes the module to oversight events.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.OversightItemRaised{}.EventName(), m)
}

// Handle routes events to their notification handler. Enqueue failures are
// logged and never fail the publisher.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.OversightItemRaised:
		m.handleItemRaised(ctx, e)
	default:
		m.log.Warn("unhandled event type in notification module", "event", event.EventName())
	}
	return nil
}

func (m *Module) handleItemRaised(ctx context.Context, e events.OversightItemRaised) {
	if m.enqueuer == nil || e.Priority != priorityHigh {
		return
	}

	err := m.enqueuer.EnqueueReviewRequested(ctx, scheduler.ReviewRequestedPayload{
		ItemID:   e.ItemID.String(),
		Title:    e.Title,
		Priority: e.Priority,
		Agent:    e.Agent,
	})
	if err != nil {
		m.log.Error("failed to enqueue review request", "itemId", e.ItemID, "error", err)
		return
	}
	m.log.Info("review request enqueued", "itemId", e.ItemID)
}
