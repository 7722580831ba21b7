package testhelpers

import (
	"context"
	"time"

	"pointdesk/domain/entities"
	"pointdesk/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockMemberService is a mock implementation of MemberService
type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) CreateMember(ctx context.Context, memberNo, displayName string) (*entities.Member, error) {
	args := m.Called(ctx, memberNo, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Member), args.Error(1)
}

func (m *MockMemberService) GetMember(ctx context.Context, id int64) (*entities.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Member), args.Error(1)
}

func (m *MockMemberService) GetLedger(ctx context.Context, memberID int64, limit int) ([]*entities.LedgerEntry, error) {
	args := m.Called(ctx, memberID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LedgerEntry), args.Error(1)
}

// MockLedgerService is a mock implementation of LedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) RequestEntry(ctx context.Context, memberID int64, category entities.Category, entryType entities.EntryType, amount int64, reason string, requestedBy int64) (*entities.LedgerEntry, error) {
	args := m.Called(ctx, memberID, category, entryType, amount, reason, requestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) Approve(ctx context.Context, entryID, approverID int64) error {
	args := m.Called(ctx, entryID, approverID)
	return args.Error(0)
}

func (m *MockLedgerService) Reject(ctx context.Context, entryID, approverID int64, reason string) error {
	args := m.Called(ctx, entryID, approverID, reason)
	return args.Error(0)
}

// MockApprovalService is a mock implementation of ApprovalService
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) Approve(ctx context.Context, entryID, approverID int64) error {
	args := m.Called(ctx, entryID, approverID)
	return args.Error(0)
}

func (m *MockApprovalService) Reject(ctx context.Context, entryID, approverID int64, reason string) error {
	args := m.Called(ctx, entryID, approverID, reason)
	return args.Error(0)
}

// MockOrderService is a mock implementation of OrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, memberID int64, items []interfaces.OrderItemInput, createdBy int64) (*interfaces.OrderResult, error) {
	args := m.Called(ctx, memberID, items, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.OrderResult), args.Error(1)
}

// MockGameService is a mock implementation of GameService
type MockGameService struct {
	mock.Mock
}

func (m *MockGameService) CreateGame(ctx context.Context, league, homeTeam, awayTeam string, gameDate time.Time) (*entities.Game, error) {
	args := m.Called(ctx, league, homeTeam, awayTeam, gameDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Game), args.Error(1)
}

func (m *MockGameService) RecordResult(ctx context.Context, gameID int64, resultScore string, status entities.GameStatus) error {
	args := m.Called(ctx, gameID, resultScore, status)
	return args.Error(0)
}

func (m *MockGameService) Verify(ctx context.Context, gameID int64) error {
	args := m.Called(ctx, gameID)
	return args.Error(0)
}

func (m *MockGameService) ListGames(ctx context.Context, limit int) ([]*entities.Game, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Game), args.Error(1)
}

// MockSettlementService is a mock implementation of SettlementService
type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) Candidates(ctx context.Context) ([]*entities.SettlementCandidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SettlementCandidate), args.Error(1)
}

func (m *MockSettlementService) Run(ctx context.Context, gameIDs []int64, operatorID int64) (*entities.SettlementReport, error) {
	args := m.Called(ctx, gameIDs, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SettlementReport), args.Error(1)
}
