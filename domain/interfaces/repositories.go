package interfaces

import (
	"context"

	"pointdesk/domain/entities"
	"pointdesk/domain/events"
)

// MemberRepository defines the interface for member data access
type MemberRepository interface {
	// GetByID retrieves a member by ID
	GetByID(ctx context.Context, id int64) (*entities.Member, error)

	// GetByMemberNo retrieves a member by membership number
	GetByMemberNo(ctx context.Context, memberNo string) (*entities.Member, error)

	// Create creates a new member with zero balances
	Create(ctx context.Context, memberNo, displayName string) (*entities.Member, error)

	// ApplyBalanceDelta atomically increments a member's balance for a
	// category by the given signed delta
	ApplyBalanceDelta(ctx context.Context, memberID int64, category entities.Category, delta int64) error

	// AvailableBalance returns the member's stored balance for a category
	// minus the sum of pending use holds against it
	AvailableBalance(ctx context.Context, memberID int64, category entities.Category) (int64, error)
}

// LedgerRepository defines the interface for ledger entry data access
type LedgerRepository interface {
	// Create persists a new entry. The entry's ID is populated on return.
	Create(ctx context.Context, entry *entities.LedgerEntry) error

	// GetByID retrieves an entry by ID
	GetByID(ctx context.Context, id int64) (*entities.LedgerEntry, error)

	// MarkApproved transitions an entry from pending to approved.
	// Returns the updated entry, or nil if the entry was not pending.
	MarkApproved(ctx context.Context, entryID, approverID int64) (*entities.LedgerEntry, error)

	// MarkRejected transitions an entry from pending to rejected.
	// Returns the updated entry, or nil if the entry was not pending.
	MarkRejected(ctx context.Context, entryID, approverID int64, reason string) (*entities.LedgerEntry, error)

	// ListByMember returns a member's entries, newest first
	ListByMember(ctx context.Context, memberID int64, limit int) ([]*entities.LedgerEntry, error)
}

// OrderRepository defines the interface for order and order item data access
type OrderRepository interface {
	// Create persists a new order. The order's ID is populated on return.
	Create(ctx context.Context, order *entities.Order) error

	// CreateItems persists all items for an order
	CreateItems(ctx context.Context, items []*entities.OrderItem) error

	// GetByID retrieves an order by ID
	GetByID(ctx context.Context, id int64) (*entities.Order, error)

	// GetItems returns all items belonging to an order
	GetItems(ctx context.Context, orderID int64) ([]*entities.OrderItem, error)

	// GetSettleableItemsByGame returns wager items for a game that are
	// still pending or approved, joined with their owning member
	GetSettleableItemsByGame(ctx context.Context, gameID int64) ([]*entities.GameWager, error)

	// SettleItem sets an item's terminal status and settlement timestamp
	SettleItem(ctx context.Context, itemID int64, status entities.ItemStatus) error
}

// GameRepository defines the interface for game data access
type GameRepository interface {
	// Create persists a new game. The game's ID is populated on return.
	Create(ctx context.Context, game *entities.Game) error

	// GetByID retrieves a game by ID
	GetByID(ctx context.Context, id int64) (*entities.Game, error)

	// List returns games ordered by game date, newest first
	List(ctx context.Context, limit int) ([]*entities.Game, error)

	// RecordResult stores a game's result score and status
	RecordResult(ctx context.Context, gameID int64, resultScore string, status entities.GameStatus) error

	// MarkVerified flags a game's result as verified
	MarkVerified(ctx context.Context, gameID int64) error

	// GetSettlementCandidates returns unsettled verified finished games,
	// newest first, with their wager item counts
	GetSettlementCandidates(ctx context.Context) ([]*entities.SettlementCandidate, error)

	// ClaimForSettlement atomically stamps settled_at and settled_by if
	// the game is still unsettled. Returns false if another run won.
	ClaimForSettlement(ctx context.Context, gameID, operatorID int64) (bool, error)
}

// TeamAliasRepository defines the interface for team alias data access
type TeamAliasRepository interface {
	// GetAll returns every alias grouped by canonical team name
	GetAll(ctx context.Context) (map[string][]string, error)

	// Create adds an alias for a team
	Create(ctx context.Context, teamName, alias string) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher buffers events published inside a unit of
// work until the transaction commits, and discards them on rollback
type TransactionalEventPublisher interface {
	EventPublisher
	Flush(ctx context.Context)
	Discard()
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes buffered events
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	MemberRepository() MemberRepository
	LedgerRepository() LedgerRepository
	OrderRepository() OrderRepository
	GameRepository() GameRepository
	TeamAliasRepository() TeamAliasRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
