package events

import (
	platformevents "aptivai_backend/platform/events"
	"aptivai_backend/platform/logger"
)

// InMemoryBus is the bus the API process runs with.
type InMemoryBus = platformevents.InMemoryBus

func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}
