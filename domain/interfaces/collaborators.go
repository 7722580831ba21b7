package interfaces

import (
	"context"
	"time"
)

// Capability is a resolved permission. Callers hold capabilities; the
// permission gate decides once how an actor maps to them.
type Capability string

const (
	CapabilityApprove Capability = "approve"
	CapabilitySettle  Capability = "settle"
	CapabilityAdmin   Capability = "admin"
)

// PermissionGate authorizes staff actors for gated operations
type PermissionGate interface {
	// Authorize returns nil if the actor holds the capability
	Authorize(ctx context.Context, actorID int64, capability Capability) error
}

// WagerWonNotice describes a winning wager for the notification sink
type WagerWonNotice struct {
	MemberID int64
	GameID   int64
	ItemID   int64
	Odds     string
	Payout   int64
}

// NotificationSink is informed of wins. Delivery transport is the sink's
// concern; failures must not affect settlement outcomes.
type NotificationSink interface {
	NotifyWagerWon(ctx context.Context, notice WagerWonNotice) error
}

// AuditRecord captures a single state transition for the audit sink
type AuditRecord struct {
	Actor     int64
	Action    string
	Subject   string
	Before    any
	After     any
	Timestamp time.Time
}

// AuditSink receives every state transition. Persistence format is the
// sink's concern.
type AuditSink interface {
	Record(ctx context.Context, record AuditRecord)
}

// Clock abstracts wall-clock time so cache staleness and settlement
// timestamps are controllable in tests
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface
type ClockFunc func() time.Time

// Now returns the current time from the wrapped function
func (f ClockFunc) Now() time.Time {
	return f()
}
