package events

// EventType identifies the kind of domain event
type EventType string

const (
	EventTypeOrderCreated        EventType = "order_created"
	EventTypeLedgerEntryApproved EventType = "ledger_entry_approved"
	EventTypeLedgerEntryRejected EventType = "ledger_entry_rejected"
	EventTypeWagerWon            EventType = "wager_won"
	EventTypeGameSettled         EventType = "game_settled"
)

// Event is the interface all domain events implement
type Event interface {
	Type() EventType
}

// OrderCreatedEvent is published when an order and its holds are committed
type OrderCreatedEvent struct {
	OrderID     int64  `json:"order_id"`
	TicketNo    string `json:"ticket_no"`
	MemberID    int64  `json:"member_id"`
	TotalAmount int64  `json:"total_amount"`
	ItemCount   int    `json:"item_count"`
}

// Type returns the event type
func (e OrderCreatedEvent) Type() EventType {
	return EventTypeOrderCreated
}

// LedgerEntryApprovedEvent is published when a pending entry is approved
// and its amount applied to the member's balance
type LedgerEntryApprovedEvent struct {
	EntryID    int64  `json:"entry_id"`
	MemberID   int64  `json:"member_id"`
	Category   string `json:"category"`
	Amount     int64  `json:"amount"`
	ApprovedBy int64  `json:"approved_by"`
}

// Type returns the event type
func (e LedgerEntryApprovedEvent) Type() EventType {
	return EventTypeLedgerEntryApproved
}

// LedgerEntryRejectedEvent is published when a pending entry is rejected
type LedgerEntryRejectedEvent struct {
	EntryID    int64  `json:"entry_id"`
	MemberID   int64  `json:"member_id"`
	RejectedBy int64  `json:"rejected_by"`
	Reason     string `json:"reason"`
}

// Type returns the event type
func (e LedgerEntryRejectedEvent) Type() EventType {
	return EventTypeLedgerEntryRejected
}

// WagerWonEvent is published when settlement resolves a wager item as won
type WagerWonEvent struct {
	MemberID int64  `json:"member_id"`
	GameID   int64  `json:"game_id"`
	ItemID   int64  `json:"item_id"`
	Odds     string `json:"odds"`
	Payout   int64  `json:"payout"`
}

// Type returns the event type
func (e WagerWonEvent) Type() EventType {
	return EventTypeWagerWon
}

// GameSettledEvent is published when a game completes settlement
type GameSettledEvent struct {
	GameID      int64  `json:"game_id"`
	Outcome     string `json:"outcome"`
	SettledBy   int64  `json:"settled_by"`
	TotalStaked int64  `json:"total_staked"`
	TotalPayout int64  `json:"total_payout"`
	Profit      int64  `json:"profit"`
}

// Type returns the event type
func (e GameSettledEvent) Type() EventType {
	return EventTypeGameSettled
}
