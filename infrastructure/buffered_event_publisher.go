package infrastructure

import (
	"context"
	"sync"

	"pointdesk/domain/events"
	"pointdesk/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// BufferedEventPublisher collects events published during a transaction
// and forwards them to the underlying publisher only after commit. A
// rollback discards the buffer so observers never see events for state
// that was never persisted.
type BufferedEventPublisher struct {
	underlying interfaces.EventPublisher
	mu         sync.Mutex
	pending    []events.Event
}

// NewBufferedEventPublisher creates a buffering wrapper around a publisher
func NewBufferedEventPublisher(underlying interfaces.EventPublisher) *BufferedEventPublisher {
	return &BufferedEventPublisher{underlying: underlying}
}

// Publish buffers the event until Flush
func (p *BufferedEventPublisher) Publish(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, event)
	return nil
}

// Flush forwards all buffered events. Publish failures are logged and do
// not fail the caller; the transaction has already committed.
func (p *BufferedEventPublisher) Flush(ctx context.Context) {
	p.mu.Lock()
	pending := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, event := range pending {
		if err := p.underlying.Publish(event); err != nil {
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"error":     err,
			}).Error("Failed to publish buffered event")
		}
	}
}

// Discard drops all buffered events
func (p *BufferedEventPublisher) Discard() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = nil
}
