package testhelpers

import (
	"context"
	"sync"
	"time"

	"pointdesk/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockPermissionGate is a mock implementation of PermissionGate
type MockPermissionGate struct {
	mock.Mock
}

func (m *MockPermissionGate) Authorize(ctx context.Context, actorID int64, capability interfaces.Capability) error {
	args := m.Called(ctx, actorID, capability)
	return args.Error(0)
}

// MockNotificationSink is a mock implementation of NotificationSink
type MockNotificationSink struct {
	mock.Mock
}

func (m *MockNotificationSink) NotifyWagerWon(ctx context.Context, notice interfaces.WagerWonNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

// RecordingAuditSink captures audit records for assertions
type RecordingAuditSink struct {
	mu      sync.Mutex
	records []interfaces.AuditRecord
}

func (s *RecordingAuditSink) Record(ctx context.Context, record interfaces.AuditRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
}

// Records returns a copy of all captured records
func (s *RecordingAuditSink) Records() []interfaces.AuditRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]interfaces.AuditRecord, len(s.records))
	copy(out, s.records)
	return out
}

// FixedClock is a controllable clock for tests
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock pinned to the given time
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
