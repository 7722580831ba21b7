package entities

import (
	"time"
)

// Category identifies which of a member's balances an entry applies to
type Category string

const (
	CategoryGeneral Category = "general"
	CategoryWager   Category = "wager"
)

// IsValid checks whether the category is one of the known values
func (c Category) IsValid() bool {
	return c == CategoryGeneral || c == CategoryWager
}

// EntryType represents the kind of point movement
type EntryType string

const (
	EntryTypeCharge   EntryType = "charge"
	EntryTypeUse      EntryType = "use"
	EntryTypeRefund   EntryType = "refund"
	EntryTypeExchange EntryType = "exchange"
)

// IsValid checks whether the entry type is one of the known values
func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeCharge, EntryTypeUse, EntryTypeRefund, EntryTypeExchange:
		return true
	}
	return false
}

// EntryStatus represents the approval lifecycle of a ledger entry
type EntryStatus string

const (
	EntryStatusPending  EntryStatus = "pending"
	EntryStatusApproved EntryStatus = "approved"
	EntryStatusRejected EntryStatus = "rejected"
)

// LedgerEntry represents a single signed point movement. The amount is
// stored signed: use entries are negative, everything else positive.
// Once an entry leaves pending it is immutable.
type LedgerEntry struct {
	ID          int64       `db:"id"`
	MemberID    int64       `db:"member_id"`
	Category    Category    `db:"category"`
	Type        EntryType   `db:"entry_type"`
	Status      EntryStatus `db:"status"`
	Amount      int64       `db:"amount"`
	Reason      string      `db:"reason"`
	OrderID     *int64      `db:"order_id"`
	RequestedBy int64       `db:"requested_by"`
	ApprovedBy  *int64      `db:"approved_by"`
	FinalizedAt *time.Time  `db:"finalized_at"`
	CreatedAt   time.Time   `db:"created_at"`
}

// NormalizeAmount applies the sign convention for an entry type to a
// caller-supplied magnitude
func NormalizeAmount(entryType EntryType, amount int64) int64 {
	if amount < 0 {
		amount = -amount
	}
	if entryType == EntryTypeUse {
		return -amount
	}
	return amount
}

// IsPending checks if the entry is still awaiting a decision
func (e *LedgerEntry) IsPending() bool {
	return e.Status == EntryStatusPending
}

// IsFinalized checks if the entry has reached a terminal status
func (e *LedgerEntry) IsFinalized() bool {
	return e.Status == EntryStatusApproved || e.Status == EntryStatusRejected
}
