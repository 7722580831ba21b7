package infrastructure

import (
	"pointdesk/domain/events"

	log "github.com/sirupsen/logrus"
)

// NoopEventPublisher drops events. Used when no message bus is configured.
type NoopEventPublisher struct{}

// NewNoopEventPublisher creates a publisher that discards all events
func NewNoopEventPublisher() *NoopEventPublisher {
	return &NoopEventPublisher{}
}

// Publish logs the event at debug level and discards it
func (p *NoopEventPublisher) Publish(event events.Event) error {
	log.WithField("eventType", event.Type()).Debug("Event discarded (no publisher configured)")
	return nil
}
