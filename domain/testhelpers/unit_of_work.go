package testhelpers

import (
	"context"

	"pointdesk/domain/interfaces"
)

// FakeUnitOfWork wires the repository mocks behind the UnitOfWork
// interface and counts lifecycle calls. Commit and Rollback never fail
// unless an error is injected.
type FakeUnitOfWork struct {
	Members   *MockMemberRepository
	Ledger    *MockLedgerRepository
	Orders    *MockOrderRepository
	Games     *MockGameRepository
	Aliases   *MockTeamAliasRepository
	Publisher *MockEventPublisher

	BeginErr  error
	CommitErr error

	Begun      int
	Committed  int
	RolledBack int
}

// NewFakeUnitOfWork creates a fake unit of work with fresh mocks
func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{
		Members:   &MockMemberRepository{},
		Ledger:    &MockLedgerRepository{},
		Orders:    &MockOrderRepository{},
		Games:     &MockGameRepository{},
		Aliases:   &MockTeamAliasRepository{},
		Publisher: &MockEventPublisher{},
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) error {
	if u.BeginErr != nil {
		return u.BeginErr
	}
	u.Begun++
	return nil
}

func (u *FakeUnitOfWork) Commit() error {
	if u.CommitErr != nil {
		return u.CommitErr
	}
	u.Committed++
	return nil
}

func (u *FakeUnitOfWork) Rollback() error {
	if u.Committed == 0 {
		u.RolledBack++
	}
	return nil
}

func (u *FakeUnitOfWork) MemberRepository() interfaces.MemberRepository {
	return u.Members
}

func (u *FakeUnitOfWork) LedgerRepository() interfaces.LedgerRepository {
	return u.Ledger
}

func (u *FakeUnitOfWork) OrderRepository() interfaces.OrderRepository {
	return u.Orders
}

func (u *FakeUnitOfWork) GameRepository() interfaces.GameRepository {
	return u.Games
}

func (u *FakeUnitOfWork) TeamAliasRepository() interfaces.TeamAliasRepository {
	return u.Aliases
}

func (u *FakeUnitOfWork) EventBus() interfaces.EventPublisher {
	return u.Publisher
}

// FakeUnitOfWorkFactory hands out the same fake unit of work for every
// Create call, so tests can set expectations once
type FakeUnitOfWorkFactory struct {
	UnitOfWork *FakeUnitOfWork
}

// NewFakeUnitOfWorkFactory creates a factory around a fresh fake unit of work
func NewFakeUnitOfWorkFactory() *FakeUnitOfWorkFactory {
	return &FakeUnitOfWorkFactory{UnitOfWork: NewFakeUnitOfWork()}
}

func (f *FakeUnitOfWorkFactory) Create() interfaces.UnitOfWork {
	return f.UnitOfWork
}
