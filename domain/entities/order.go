package entities

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// OrderStatus represents the lifecycle of an order
type OrderStatus string

const (
	OrderStatusDraft      OrderStatus = "draft"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order represents a ticket grouping one or more items submitted together
type Order struct {
	ID          int64       `db:"id"`
	TicketNo    string      `db:"ticket_no"`
	MemberID    int64       `db:"member_id"`
	TotalAmount int64       `db:"total_amount"`
	Status      OrderStatus `db:"status"`
	CreatedBy   int64       `db:"created_by"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

const ticketSuffixLen = 6

// GenerateTicketNo builds a human-readable ticket number from the given
// time plus a random suffix. Uniqueness is best effort; the database does
// not enforce it.
func GenerateTicketNo(now time.Time) string {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	var sb strings.Builder
	for i := 0; i < ticketSuffixLen; i++ {
		sb.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return fmt.Sprintf("T%s-%s", now.Format("20060102"), sb.String())
}
