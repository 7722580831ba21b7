package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"pointdesk/domain/entities"
	"pointdesk/domain/events"
	"pointdesk/domain/interfaces"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type orderService struct {
	uowFactory interfaces.UnitOfWorkFactory
	audit      interfaces.AuditSink
	clock      interfaces.Clock
}

// NewOrderService creates a new order workflow service
func NewOrderService(
	uowFactory interfaces.UnitOfWorkFactory,
	audit interfaces.AuditSink,
	clock interfaces.Clock,
) interfaces.OrderService {
	return &orderService{
		uowFactory: uowFactory,
		audit:      audit,
		clock:      clock,
	}
}

// CreateOrder creates an order, its items, and the pending ledger holds
// that freeze the member's funds. Everything happens in one transaction;
// any failure rolls the whole order back, leaving zero rows behind.
func (s *orderService) CreateOrder(ctx context.Context, memberID int64, items []interfaces.OrderItemInput, createdBy int64) (*interfaces.OrderResult, error) {
	if len(items) == 0 {
		return nil, NewValidationError("items", "cannot be empty")
	}
	for i, item := range items {
		if item.Category == "" {
			return nil, NewValidationError("items", fmt.Sprintf("item %d has no category", i))
		}
		if strings.TrimSpace(item.Description) == "" {
			return nil, NewValidationError("items", fmt.Sprintf("item %d has no description", i))
		}
		if item.Amount < 0 {
			return nil, NewValidationError("items", fmt.Sprintf("item %d has a negative amount", i))
		}
		if item.Odds != "" {
			odds, err := decimal.NewFromString(item.Odds)
			if err != nil || odds.LessThanOrEqual(decimal.Zero) {
				return nil, NewValidationError("items", fmt.Sprintf("item %d has invalid odds %q", i, item.Odds))
			}
		}
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	member, err := uow.MemberRepository().GetByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	var total int64
	for _, item := range items {
		total += item.Amount
	}

	order := &entities.Order{
		TicketNo:    entities.GenerateTicketNo(s.clock.Now()),
		MemberID:    memberID,
		TotalAmount: total,
		Status:      entities.OrderStatusDraft,
		CreatedBy:   createdBy,
	}
	if err := uow.OrderRepository().Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	orderItems := make([]*entities.OrderItem, 0, len(items))
	for _, input := range items {
		item := &entities.OrderItem{
			OrderID:     order.ID,
			Category:    input.Category,
			Description: input.Description,
			Amount:      input.Amount,
			Status:      entities.ItemStatusPending,
			GameID:      input.GameID,
			Details:     json.RawMessage("{}"),
		}
		if item.IsWager() {
			if input.GameID != nil {
				game, err := uow.GameRepository().GetByID(ctx, *input.GameID)
				if err != nil {
					return nil, fmt.Errorf("failed to get game: %w", err)
				}
				if game == nil {
					return nil, ErrGameNotFound
				}
			}
			item.Details, err = encodeWagerDetails(input.Selection, input.Odds)
			if err != nil {
				return nil, fmt.Errorf("failed to encode wager details: %w", err)
			}
		}
		orderItems = append(orderItems, item)
	}
	if err := uow.OrderRepository().CreateItems(ctx, orderItems); err != nil {
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	// Funds are checked against the available balance, which already
	// subtracts pending use holds from earlier orders, inside the same
	// transaction that creates this order's holds.
	var generalAmount, wagerAmount int64
	for _, item := range orderItems {
		if item.IsWager() {
			wagerAmount += item.Amount
		} else {
			generalAmount += item.Amount
		}
	}

	holds := []struct {
		category entities.Category
		amount   int64
	}{
		{entities.CategoryGeneral, generalAmount},
		{entities.CategoryWager, wagerAmount},
	}
	for _, hold := range holds {
		if hold.amount == 0 {
			continue
		}
		available, err := uow.MemberRepository().AvailableBalance(ctx, memberID, hold.category)
		if err != nil {
			return nil, fmt.Errorf("failed to check available balance: %w", err)
		}
		if hold.amount > available {
			return nil, fmt.Errorf("%w: %s balance %d is less than required %d", ErrInsufficientFunds, hold.category, available, hold.amount)
		}

		entry := &entities.LedgerEntry{
			MemberID:    memberID,
			Category:    hold.category,
			Type:        entities.EntryTypeUse,
			Status:      entities.EntryStatusPending,
			Amount:      entities.NormalizeAmount(entities.EntryTypeUse, hold.amount),
			Reason:      fmt.Sprintf("hold for ticket %s", order.TicketNo),
			OrderID:     &order.ID,
			RequestedBy: createdBy,
		}
		if err := uow.LedgerRepository().Create(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to create ledger hold: %w", err)
		}
	}

	if err := uow.EventBus().Publish(events.OrderCreatedEvent{
		OrderID:     order.ID,
		TicketNo:    order.TicketNo,
		MemberID:    memberID,
		TotalAmount: total,
		ItemCount:   len(orderItems),
	}); err != nil {
		log.WithError(err).Warn("Failed to publish order created event")
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.audit.Record(ctx, interfaces.AuditRecord{
		Actor:     createdBy,
		Action:    "order.create",
		Subject:   fmt.Sprintf("order:%d", order.ID),
		After:     order,
		Timestamp: s.clock.Now(),
	})

	log.WithFields(log.Fields{
		"orderID":  order.ID,
		"ticketNo": order.TicketNo,
		"memberID": memberID,
		"total":    total,
		"items":    len(orderItems),
	}).Info("Order created")

	return &interfaces.OrderResult{OrderID: order.ID, TicketNo: order.TicketNo}, nil
}

// encodeWagerDetails builds the details document stored on a wager item
func encodeWagerDetails(selection, odds string) (json.RawMessage, error) {
	doc := map[string]any{"selection": selection}
	if odds != "" {
		doc["odds"] = odds
	}
	return json.Marshal(doc)
}
