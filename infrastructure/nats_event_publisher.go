package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pointdesk/domain/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const eventSubjectPrefix = "pointdesk.events."

// eventEnvelope wraps a domain event for transport
type eventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// NATSEventPublisher publishes domain events to NATS
type NATSEventPublisher struct {
	client *NATSClient
}

// NewNATSEventPublisher creates a new NATS event publisher
func NewNATSEventPublisher(client *NATSClient) *NATSEventPublisher {
	return &NATSEventPublisher{client: client}
}

// Publish serializes the event into an envelope and publishes it to the
// subject derived from its type
func (p *NATSEventPublisher) Publish(event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := eventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		Timestamp:     time.Now().UTC(),
		SourceService: "pointdesk",
		Payload:       payload,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	subject := eventSubjectPrefix + string(event.Type())
	if err := p.client.Publish(context.Background(), subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"eventId":   envelope.EventID,
		"subject":   subject,
	}).Debug("Published event to NATS")
	return nil
}

// EnsureEventStream creates the domain event stream if needed
func (p *NATSEventPublisher) EnsureEventStream() error {
	return p.client.EnsureStream("pointdesk_events", []string{eventSubjectPrefix + ">"})
}
