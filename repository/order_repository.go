package repository

import (
	"context"
	"errors"
	"fmt"

	"pointdesk/domain/entities"

	"github.com/jackc/pgx/v5"
)

type orderRepository struct {
	tx pgx.Tx
}

func newOrderRepository(tx pgx.Tx) *orderRepository {
	return &orderRepository{tx: tx}
}

// Create persists a new order and populates its ID and timestamps
func (r *orderRepository) Create(ctx context.Context, order *entities.Order) error {
	query := `
		INSERT INTO orders (ticket_no, member_id, total_amount, status, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.tx.QueryRow(ctx, query,
		order.TicketNo,
		order.MemberID,
		order.TotalAmount,
		order.Status,
		order.CreatedBy,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// CreateItems persists all items for an order
func (r *orderRepository) CreateItems(ctx context.Context, items []*entities.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, category, description, amount, status, game_id, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	for _, item := range items {
		err := r.tx.QueryRow(ctx, query,
			item.OrderID,
			item.Category,
			item.Description,
			item.Amount,
			item.Status,
			item.GameID,
			item.Details,
		).Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}
	return nil
}

// GetByID retrieves an order by ID. Returns nil if not found.
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*entities.Order, error) {
	query := `
		SELECT id, ticket_no, member_id, total_amount, status, created_by, created_at, updated_at
		FROM orders
		WHERE id = $1`

	var order entities.Order
	err := r.tx.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.TicketNo,
		&order.MemberID,
		&order.TotalAmount,
		&order.Status,
		&order.CreatedBy,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// GetItems returns all items belonging to an order
func (r *orderRepository) GetItems(ctx context.Context, orderID int64) ([]*entities.OrderItem, error) {
	query := `
		SELECT id, order_id, category, description, amount, status, game_id, details, settled_at, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`

	rows, err := r.tx.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	var items []*entities.OrderItem
	for rows.Next() {
		var item entities.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.Category,
			&item.Description,
			&item.Amount,
			&item.Status,
			&item.GameID,
			&item.Details,
			&item.SettledAt,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// GetSettleableItemsByGame returns wager items for a game that are still
// pending or approved, joined with the member who owns the order
func (r *orderRepository) GetSettleableItemsByGame(ctx context.Context, gameID int64) ([]*entities.GameWager, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.category, oi.description, oi.amount, oi.status,
		       oi.game_id, oi.details, oi.settled_at, oi.created_at, o.member_id
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.game_id = $1
		  AND oi.category IN ('game', 'wager')
		  AND oi.status IN ('pending', 'approved')
		ORDER BY oi.id`

	rows, err := r.tx.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settleable items: %w", err)
	}
	defer rows.Close()

	var wagers []*entities.GameWager
	for rows.Next() {
		var wager entities.GameWager
		err := rows.Scan(
			&wager.ID,
			&wager.OrderID,
			&wager.Category,
			&wager.Description,
			&wager.Amount,
			&wager.Status,
			&wager.GameID,
			&wager.Details,
			&wager.SettledAt,
			&wager.CreatedAt,
			&wager.MemberID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settleable item: %w", err)
		}
		wagers = append(wagers, &wager)
	}
	return wagers, rows.Err()
}

// SettleItem sets an item's terminal status and stamps its settlement time
func (r *orderRepository) SettleItem(ctx context.Context, itemID int64, status entities.ItemStatus) error {
	query := `
		UPDATE order_items
		SET status = $2, settled_at = NOW()
		WHERE id = $1`

	tag, err := r.tx.Exec(ctx, query, itemID, status)
	if err != nil {
		return fmt.Errorf("failed to settle order item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order item %d not found", itemID)
	}
	return nil
}
