// Package events is the in-process domain event bus modules use to react to
// each other without importing each other.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is a fact a module announces after it happened.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent is embedded by every concrete event for its id and timestamp.
type BaseEvent struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewBaseEvent returns a BaseEvent with a fresh id, stamped now in UTC.
func NewBaseEvent() BaseEvent {
	return BaseEvent{ID: uuid.New(), Timestamp: time.Now().UTC()}
}

func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// Handler reacts to one event. Returned errors are logged by the bus and,
// for PublishSync, reported back to the publisher.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc lets a plain function serve as a Handler.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error { return f(ctx, event) }

// Bus routes events to the handlers subscribed under their EventName.
type Bus interface {
	// Publish runs the handlers in the background and returns immediately.
	Publish(ctx context.Context, event Event)
	// PublishSync runs the handlers in order and joins their errors.
	PublishSync(ctx context.Context, event Event) error
	Subscribe(eventName string, handler Handler)
}
