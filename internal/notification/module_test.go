package notification

import (
	"context"
	"errors"
	"testing"

	"aptivai_backend/internal/events"
	"aptivai_backend/internal/scheduler"
	"aptivai_backend/platform/logger"

	"github.com/google/uuid"
)

type testEnqueuer struct {
	payloads []scheduler.ReviewRequestedPayload
	err      error
}

func (e *testEnqueuer) EnqueueReviewRequested(_ context.Context, payload scheduler.ReviewRequestedPayload) error {
	e.payloads = append(e.payloads, payload)
	return e.err
}

func TestOnlyHighPriorityItemsAreEnqueued(t *testing.T) {
	log := logger.New("development")
	enqueuer := &testEnqueuer{}
	bus := events.NewInMemoryBus(log)
	New(enqueuer, log).RegisterHandlers(bus)

	high := uuid.New()
	for _, e := range []events.OversightItemRaised{
		{BaseEvent: events.NewBaseEvent(), ItemID: uuid.New(), Title: "Personalization", Priority: "medium"},
		{BaseEvent: events.NewBaseEvent(), ItemID: high, Title: "High-value lead", Priority: "high", Agent: "Lead Intelligence Assistant"},
		{BaseEvent: events.NewBaseEvent(), ItemID: uuid.New(), Title: "Consultation", Priority: "low"},
	} {
		if err := bus.PublishSync(context.Background(), e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if len(enqueuer.payloads) != 1 {
		t.Fatalf("expected one enqueued notification, got %d", len(enqueuer.payloads))
	}
	got := enqueuer.payloads[0]
	if got.ItemID != high.String() || got.Title != "High-value lead" || got.Agent != "Lead Intelligence Assistant" {
		t.Errorf("unexpected payload %+v", got)
	}
}

func TestEnqueueFailureDoesNotFailPublisher(t *testing.T) {
	log := logger.New("development")
	m := New(&testEnqueuer{err: errors.New("redis down")}, log)

	err := m.Handle(context.Background(), events.OversightItemRaised{BaseEvent: events.NewBaseEvent(), ItemID: uuid.New(), Priority: "high"})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestNilEnqueuerIsIgnored(t *testing.T) {
	m := New(nil, logger.New("development"))
	err := m.Handle(context.Background(), events.OversightItemRaised{BaseEvent: events.NewBaseEvent(), ItemID: uuid.New(), Priority: "high"})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
