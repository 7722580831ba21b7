package interfaces

import (
	"context"
	"time"

	"pointdesk/domain/entities"
)

// MemberService defines the interface for member operations
type MemberService interface {
	// CreateMember creates a new member with zero balances
	CreateMember(ctx context.Context, memberNo, displayName string) (*entities.Member, error)

	// GetMember retrieves a member by ID
	GetMember(ctx context.Context, id int64) (*entities.Member, error)

	// GetLedger returns a member's ledger entries, newest first
	GetLedger(ctx context.Context, memberID int64, limit int) ([]*entities.LedgerEntry, error)
}

// LedgerService defines the interface for ledger accounting operations
type LedgerService interface {
	// RequestEntry records a pending point movement. The sign is
	// normalized from the entry type; the balance is not touched.
	RequestEntry(ctx context.Context, memberID int64, category entities.Category, entryType entities.EntryType, amount int64, reason string, requestedBy int64) (*entities.LedgerEntry, error)

	// Approve finalizes a pending entry and applies its amount to the
	// member's balance. Exactly one concurrent approval can succeed.
	Approve(ctx context.Context, entryID, approverID int64) error

	// Reject finalizes a pending entry without touching the balance
	Reject(ctx context.Context, entryID, approverID int64, reason string) error
}

// ApprovalService is the operator-facing gateway over ledger approval.
// It resolves the caller's capability before delegating.
type ApprovalService interface {
	Approve(ctx context.Context, entryID, approverID int64) error
	Reject(ctx context.Context, entryID, approverID int64, reason string) error
}

// OrderItemInput is one requested line of a new order
type OrderItemInput struct {
	Category    string
	Description string
	Amount      int64
	GameID      *int64
	Selection   string
	Odds        string
}

// OrderResult identifies a successfully created order
type OrderResult struct {
	OrderID  int64
	TicketNo string
}

// OrderService defines the interface for the order workflow
type OrderService interface {
	// CreateOrder creates an order, its items, and pending ledger holds
	// sized to the non-wager and wager totals, all atomically. A failed
	// creation leaves zero rows behind.
	CreateOrder(ctx context.Context, memberID int64, items []OrderItemInput, createdBy int64) (*OrderResult, error)
}

// GameService defines the interface for game data source operations
type GameService interface {
	// CreateGame registers a game supplied by the data source
	CreateGame(ctx context.Context, league, homeTeam, awayTeam string, gameDate time.Time) (*entities.Game, error)

	// RecordResult stores a game's final score and status
	RecordResult(ctx context.Context, gameID int64, resultScore string, status entities.GameStatus) error

	// Verify marks a game's result as verified, making it
	// settlement-eligible once finished
	Verify(ctx context.Context, gameID int64) error

	// ListGames returns games, newest first
	ListGames(ctx context.Context, limit int) ([]*entities.Game, error)
}

// SettlementService defines the interface for the settlement engine
type SettlementService interface {
	// Candidates returns unsettled verified finished games with bet counts
	Candidates(ctx context.Context) ([]*entities.SettlementCandidate, error)

	// Run settles the given games, or all candidates when gameIDs is
	// empty. Each game is processed independently; the report always
	// carries per-game results and aggregate counters.
	Run(ctx context.Context, gameIDs []int64, operatorID int64) (*entities.SettlementReport, error)
}
