package repository

import (
	"context"
	"fmt"

	"pointdesk/database"
	"pointdesk/domain/interfaces"
	"pointdesk/infrastructure"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db            *database.DB
	tx            pgx.Tx
	ctx           context.Context
	txPublisher   interfaces.TransactionalEventPublisher
	memberRepo    interfaces.MemberRepository
	ledgerRepo    interfaces.LedgerRepository
	orderRepo     interfaces.OrderRepository
	gameRepo      interfaces.GameRepository
	teamAliasRepo interfaces.TeamAliasRepository
}

type unitOfWorkFactory struct {
	db        *database.DB
	publisher interfaces.EventPublisher
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory. Events published
// through a unit of work are buffered and only forwarded to the given
// publisher after the transaction commits.
func NewUnitOfWorkFactory(db *database.DB, publisher interfaces.EventPublisher) interfaces.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:        db,
		publisher: publisher,
	}
}

// Create creates a new UnitOfWork instance
func (f *unitOfWorkFactory) Create() interfaces.UnitOfWork {
	return &unitOfWork{
		db:          f.db,
		txPublisher: infrastructure.NewBufferedEventPublisher(f.publisher),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.memberRepo = newMemberRepository(tx)
	u.ledgerRepo = newLedgerRepository(tx)
	u.orderRepo = newOrderRepository(tx)
	u.gameRepo = newGameRepository(tx)
	u.teamAliasRepo = newTeamAliasRepository(tx)

	return nil
}

// Commit commits the transaction and flushes buffered events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	u.txPublisher.Flush(u.ctx)

	return nil
}

// Rollback rolls back the transaction and discards buffered events
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil
	u.txPublisher.Discard()

	return nil
}

// MemberRepository returns the member repository for this unit of work
func (u *unitOfWork) MemberRepository() interfaces.MemberRepository {
	if u.memberRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.memberRepo
}

// LedgerRepository returns the ledger repository for this unit of work
func (u *unitOfWork) LedgerRepository() interfaces.LedgerRepository {
	if u.ledgerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ledgerRepo
}

// OrderRepository returns the order repository for this unit of work
func (u *unitOfWork) OrderRepository() interfaces.OrderRepository {
	if u.orderRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.orderRepo
}

// GameRepository returns the game repository for this unit of work
func (u *unitOfWork) GameRepository() interfaces.GameRepository {
	if u.gameRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.gameRepo
}

// TeamAliasRepository returns the team alias repository for this unit of work
func (u *unitOfWork) TeamAliasRepository() interfaces.TeamAliasRepository {
	if u.teamAliasRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.teamAliasRepo
}

// EventBus returns the transactional event publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.txPublisher == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.txPublisher
}
