package services

import (
	"context"
	"fmt"

	"pointdesk/domain/entities"
	"pointdesk/domain/events"
	"pointdesk/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type ledgerService struct {
	uowFactory interfaces.UnitOfWorkFactory
	audit      interfaces.AuditSink
	clock      interfaces.Clock
}

// NewLedgerService creates a new ledger accounting service
func NewLedgerService(
	uowFactory interfaces.UnitOfWorkFactory,
	audit interfaces.AuditSink,
	clock interfaces.Clock,
) interfaces.LedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
		audit:      audit,
		clock:      clock,
	}
}

// RequestEntry records a pending point movement without touching the balance
func (s *ledgerService) RequestEntry(ctx context.Context, memberID int64, category entities.Category, entryType entities.EntryType, amount int64, reason string, requestedBy int64) (*entities.LedgerEntry, error) {
	if amount == 0 {
		return nil, NewValidationError("amount", "cannot be zero")
	}
	if !category.IsValid() {
		return nil, NewValidationError("category", fmt.Sprintf("unknown category %q", category))
	}
	if !entryType.IsValid() {
		return nil, NewValidationError("type", fmt.Sprintf("unknown entry type %q", entryType))
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	member, err := uow.MemberRepository().GetByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	entry := &entities.LedgerEntry{
		MemberID:    memberID,
		Category:    category,
		Type:        entryType,
		Status:      entities.EntryStatusPending,
		Amount:      entities.NormalizeAmount(entryType, amount),
		Reason:      reason,
		RequestedBy: requestedBy,
	}
	if err := uow.LedgerRepository().Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.audit.Record(ctx, interfaces.AuditRecord{
		Actor:     requestedBy,
		Action:    "ledger.request",
		Subject:   fmt.Sprintf("ledger_entry:%d", entry.ID),
		After:     entry,
		Timestamp: s.clock.Now(),
	})

	log.WithFields(log.Fields{
		"entryID":  entry.ID,
		"memberID": memberID,
		"category": category,
		"amount":   entry.Amount,
	}).Info("Ledger entry requested")

	return entry, nil
}

// Approve finalizes a pending entry and applies its amount to the balance.
// The transition is a conditional update keyed on status=pending, so only
// one of two concurrent approvals can apply the amount.
func (s *ledgerService) Approve(ctx context.Context, entryID, approverID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	before, err := uow.LedgerRepository().GetByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to get ledger entry: %w", err)
	}
	if before == nil {
		return ErrEntryNotFound
	}

	entry, err := uow.LedgerRepository().MarkApproved(ctx, entryID, approverID)
	if err != nil {
		return fmt.Errorf("failed to approve ledger entry: %w", err)
	}
	if entry == nil {
		return ErrAlreadyFinalized
	}

	if err := uow.MemberRepository().ApplyBalanceDelta(ctx, entry.MemberID, entry.Category, entry.Amount); err != nil {
		return fmt.Errorf("failed to apply balance change: %w", err)
	}

	if err := uow.EventBus().Publish(events.LedgerEntryApprovedEvent{
		EntryID:    entry.ID,
		MemberID:   entry.MemberID,
		Category:   string(entry.Category),
		Amount:     entry.Amount,
		ApprovedBy: approverID,
	}); err != nil {
		log.WithError(err).Warn("Failed to publish approval event")
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.audit.Record(ctx, interfaces.AuditRecord{
		Actor:     approverID,
		Action:    "ledger.approve",
		Subject:   fmt.Sprintf("ledger_entry:%d", entryID),
		Before:    before.Status,
		After:     entry.Status,
		Timestamp: s.clock.Now(),
	})

	log.WithFields(log.Fields{
		"entryID":    entryID,
		"memberID":   entry.MemberID,
		"amount":     entry.Amount,
		"approvedBy": approverID,
	}).Info("Ledger entry approved")

	return nil
}

// Reject finalizes a pending entry without touching the balance
func (s *ledgerService) Reject(ctx context.Context, entryID, approverID int64, reason string) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	before, err := uow.LedgerRepository().GetByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to get ledger entry: %w", err)
	}
	if before == nil {
		return ErrEntryNotFound
	}

	entry, err := uow.LedgerRepository().MarkRejected(ctx, entryID, approverID, reason)
	if err != nil {
		return fmt.Errorf("failed to reject ledger entry: %w", err)
	}
	if entry == nil {
		return ErrAlreadyFinalized
	}

	if err := uow.EventBus().Publish(events.LedgerEntryRejectedEvent{
		EntryID:    entry.ID,
		MemberID:   entry.MemberID,
		RejectedBy: approverID,
		Reason:     reason,
	}); err != nil {
		log.WithError(err).Warn("Failed to publish rejection event")
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.audit.Record(ctx, interfaces.AuditRecord{
		Actor:     approverID,
		Action:    "ledger.reject",
		Subject:   fmt.Sprintf("ledger_entry:%d", entryID),
		Before:    before.Status,
		After:     entry.Status,
		Timestamp: s.clock.Now(),
	})

	log.WithFields(log.Fields{
		"entryID":    entryID,
		"rejectedBy": approverID,
	}).Info("Ledger entry rejected")

	return nil
}
