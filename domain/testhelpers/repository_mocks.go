package testhelpers

import (
	"context"

	"pointdesk/domain/entities"
	"pointdesk/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockMemberRepository is a mock implementation of MemberRepository
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id int64) (*entities.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Member), args.Error(1)
}

func (m *MockMemberRepository) GetByMemberNo(ctx context.Context, memberNo string) (*entities.Member, error) {
	args := m.Called(ctx, memberNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Member), args.Error(1)
}

func (m *MockMemberRepository) Create(ctx context.Context, memberNo, displayName string) (*entities.Member, error) {
	args := m.Called(ctx, memberNo, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Member), args.Error(1)
}

func (m *MockMemberRepository) ApplyBalanceDelta(ctx context.Context, memberID int64, category entities.Category, delta int64) error {
	args := m.Called(ctx, memberID, category, delta)
	return args.Error(0)
}

func (m *MockMemberRepository) AvailableBalance(ctx context.Context, memberID int64, category entities.Category) (int64, error) {
	args := m.Called(ctx, memberID, category)
	return args.Get(0).(int64), args.Error(1)
}

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Create(ctx context.Context, entry *entities.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByID(ctx context.Context, id int64) (*entities.LedgerEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) MarkApproved(ctx context.Context, entryID, approverID int64) (*entities.LedgerEntry, error) {
	args := m.Called(ctx, entryID, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) MarkRejected(ctx context.Context, entryID, approverID int64, reason string) (*entities.LedgerEntry, error) {
	args := m.Called(ctx, entryID, approverID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListByMember(ctx context.Context, memberID int64, limit int) ([]*entities.LedgerEntry, error) {
	args := m.Called(ctx, memberID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LedgerEntry), args.Error(1)
}

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *entities.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateItems(ctx context.Context, items []*entities.OrderItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*entities.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Order), args.Error(1)
}

func (m *MockOrderRepository) GetItems(ctx context.Context, orderID int64) ([]*entities.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.OrderItem), args.Error(1)
}

func (m *MockOrderRepository) GetSettleableItemsByGame(ctx context.Context, gameID int64) ([]*entities.GameWager, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.GameWager), args.Error(1)
}

func (m *MockOrderRepository) SettleItem(ctx context.Context, itemID int64, status entities.ItemStatus) error {
	args := m.Called(ctx, itemID, status)
	return args.Error(0)
}

// MockGameRepository is a mock implementation of GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(ctx context.Context, game *entities.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) GetByID(ctx context.Context, id int64) (*entities.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Game), args.Error(1)
}

func (m *MockGameRepository) List(ctx context.Context, limit int) ([]*entities.Game, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Game), args.Error(1)
}

func (m *MockGameRepository) RecordResult(ctx context.Context, gameID int64, resultScore string, status entities.GameStatus) error {
	args := m.Called(ctx, gameID, resultScore, status)
	return args.Error(0)
}

func (m *MockGameRepository) MarkVerified(ctx context.Context, gameID int64) error {
	args := m.Called(ctx, gameID)
	return args.Error(0)
}

func (m *MockGameRepository) GetSettlementCandidates(ctx context.Context) ([]*entities.SettlementCandidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SettlementCandidate), args.Error(1)
}

func (m *MockGameRepository) ClaimForSettlement(ctx context.Context, gameID, operatorID int64) (bool, error) {
	args := m.Called(ctx, gameID, operatorID)
	return args.Bool(0), args.Error(1)
}

// MockTeamAliasRepository is a mock implementation of TeamAliasRepository
type MockTeamAliasRepository struct {
	mock.Mock
}

func (m *MockTeamAliasRepository) GetAll(ctx context.Context) (map[string][]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]string), args.Error(1)
}

func (m *MockTeamAliasRepository) Create(ctx context.Context, teamName, alias string) error {
	args := m.Called(ctx, teamName, alias)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
