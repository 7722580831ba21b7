package entities

import (
	"time"
)

// Member represents a club member holding two segregated point balances
type Member struct {
	ID             int64     `db:"id"`
	MemberNo       string    `db:"member_no"`
	DisplayName    string    `db:"display_name"`
	GeneralBalance int64     `db:"general_balance"`
	WagerBalance   int64     `db:"wager_balance"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// BalanceFor returns the member's stored balance for a category
func (m *Member) BalanceFor(category Category) int64 {
	if category == CategoryWager {
		return m.WagerBalance
	}
	return m.GeneralBalance
}
