package services

import (
	"context"
	"fmt"

	"pointdesk/domain/interfaces"
)

// approvalService is the operator-facing gateway over ledger approval.
// It resolves the caller's capability once and delegates to the ledger.
type approvalService struct {
	ledger interfaces.LedgerService
	gate   interfaces.PermissionGate
}

// NewApprovalService creates a new approval gateway
func NewApprovalService(ledger interfaces.LedgerService, gate interfaces.PermissionGate) interfaces.ApprovalService {
	return &approvalService{ledger: ledger, gate: gate}
}

// Approve authorizes the caller and applies the approval
func (s *approvalService) Approve(ctx context.Context, entryID, approverID int64) error {
	if err := s.gate.Authorize(ctx, approverID, interfaces.CapabilityApprove); err != nil {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return s.ledger.Approve(ctx, entryID, approverID)
}

// Reject authorizes the caller and applies the rejection
func (s *approvalService) Reject(ctx context.Context, entryID, approverID int64, reason string) error {
	if err := s.gate.Authorize(ctx, approverID, interfaces.CapabilityApprove); err != nil {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return s.ledger.Reject(ctx, entryID, approverID, reason)
}
