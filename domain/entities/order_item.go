package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ItemStatus represents the lifecycle of an order item
type ItemStatus string

const (
	ItemStatusPending  ItemStatus = "pending"
	ItemStatusApproved ItemStatus = "approved"
	ItemStatusWon      ItemStatus = "won"
	ItemStatusLost     ItemStatus = "lost"
)

// Wager item categories. Item categories are otherwise free form
// (book, goods, inquiry and so on).
const (
	ItemCategoryGame  = "game"
	ItemCategoryWager = "wager"
)

// OrderItem represents a single line on an order. Wager items reference a
// game and carry their selection and odds in the details document.
type OrderItem struct {
	ID          int64           `db:"id"`
	OrderID     int64           `db:"order_id"`
	Category    string          `db:"category"`
	Description string          `db:"description"`
	Amount      int64           `db:"amount"`
	Status      ItemStatus      `db:"status"`
	GameID      *int64          `db:"game_id"`
	Details     json.RawMessage `db:"details"`
	SettledAt   *time.Time      `db:"settled_at"`
	CreatedAt   time.Time       `db:"created_at"`
}

// IsWager checks whether the item participates in settlement
func (i *OrderItem) IsWager() bool {
	return i.Category == ItemCategoryGame || i.Category == ItemCategoryWager
}

// IsSettleable checks whether the item can still be resolved by settlement
func (i *OrderItem) IsSettleable() bool {
	return i.Status == ItemStatusPending || i.Status == ItemStatusApproved
}

// GameWager is a settleable wager item joined with the member who owns
// the order it belongs to
type GameWager struct {
	OrderItem
	MemberID int64 `db:"member_id"`
}

// WagerDetails is the decoded details document of a wager item
type WagerDetails struct {
	Selection string
	Odds      decimal.Decimal
}

// rawWagerDetails tolerates odds arriving as either a JSON number or a string
type rawWagerDetails struct {
	Selection string          `json:"selection"`
	Odds      json.RawMessage `json:"odds"`
}

// ParseWagerDetails decodes a details document. Missing or malformed odds,
// or odds below 1.0, fall back to 1.0 so a bad document never inflates or
// voids a payout.
func ParseWagerDetails(raw json.RawMessage) WagerDetails {
	details := WagerDetails{Odds: decimal.NewFromInt(1)}
	if len(raw) == 0 {
		return details
	}

	var parsed rawWagerDetails
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return details
	}
	details.Selection = parsed.Selection

	if len(parsed.Odds) > 0 {
		text := string(parsed.Odds)
		if len(text) >= 2 && text[0] == '"' {
			var s string
			if err := json.Unmarshal(parsed.Odds, &s); err == nil {
				text = s
			}
		}
		if odds, err := decimal.NewFromString(text); err == nil && odds.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			details.Odds = odds
		}
	}

	return details
}

// Payout computes the winning payout for a stake at the given odds,
// rounded half up to whole points
func Payout(stake int64, odds decimal.Decimal) int64 {
	return decimal.NewFromInt(stake).Mul(odds).Round(0).IntPart()
}
