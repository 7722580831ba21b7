package infrastructure

import (
	"context"

	"pointdesk/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// AuditLogger is an AuditSink that writes structured log entries. The
// audit trail's persistence is out of this service's hands; downstream
// log shipping owns retention.
type AuditLogger struct{}

// NewAuditLogger creates a log-backed audit sink
func NewAuditLogger() *AuditLogger {
	return &AuditLogger{}
}

// Record writes one audit entry
func (a *AuditLogger) Record(ctx context.Context, record interfaces.AuditRecord) {
	log.WithFields(log.Fields{
		"audit":     true,
		"actor":     record.Actor,
		"action":    record.Action,
		"subject":   record.Subject,
		"before":    record.Before,
		"after":     record.After,
		"timestamp": record.Timestamp,
	}).Info("Audit")
}
