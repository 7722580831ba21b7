package services

import (
	"context"
	"fmt"
	"strings"

	"pointdesk/domain/entities"
	"pointdesk/domain/interfaces"
)

type memberService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewMemberService creates a new member service
func NewMemberService(uowFactory interfaces.UnitOfWorkFactory) interfaces.MemberService {
	return &memberService{uowFactory: uowFactory}
}

// CreateMember creates a new member with zero balances
func (s *memberService) CreateMember(ctx context.Context, memberNo, displayName string) (*entities.Member, error) {
	memberNo = strings.TrimSpace(memberNo)
	displayName = strings.TrimSpace(displayName)
	if memberNo == "" {
		return nil, NewValidationError("memberNo", "cannot be empty")
	}
	if displayName == "" {
		return nil, NewValidationError("displayName", "cannot be empty")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	// the unique constraint is the real guard; this gives a clean error
	// for the common case
	existing, err := uow.MemberRepository().GetByMemberNo(ctx, memberNo)
	if err != nil {
		return nil, fmt.Errorf("failed to check member number: %w", err)
	}
	if existing != nil {
		return nil, NewValidationError("memberNo", fmt.Sprintf("%q is already taken", memberNo))
	}

	member, err := uow.MemberRepository().Create(ctx, memberNo, displayName)
	if err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return member, nil
}

// GetMember retrieves a member by ID
func (s *memberService) GetMember(ctx context.Context, id int64) (*entities.Member, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	member, err := uow.MemberRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return member, nil
}

// GetLedger returns a member's ledger entries, newest first
func (s *memberService) GetLedger(ctx context.Context, memberID int64, limit int) ([]*entities.LedgerEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
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

	entries, err := uow.LedgerRepository().ListByMember(ctx, memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return entries, nil
}
