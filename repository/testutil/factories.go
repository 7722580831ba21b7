package testutil

import (
	"encoding/json"
	"fmt"
	"time"

	"pointdesk/domain/entities"
)

// CreateTestMember creates a test member with default balances
func CreateTestMember(memberNo, displayName string) *entities.Member {
	return &entities.Member{
		MemberNo:       memberNo,
		DisplayName:    displayName,
		GeneralBalance: 0,
		WagerBalance:   0,
	}
}

// CreateTestMemberWithBalances creates a test member with specific balances
func CreateTestMemberWithBalances(memberNo, displayName string, general, wager int64) *entities.Member {
	member := CreateTestMember(memberNo, displayName)
	member.GeneralBalance = general
	member.WagerBalance = wager
	return member
}

// CreateTestEntry creates a pending ledger entry with the sign convention
// already applied
func CreateTestEntry(memberID int64, category entities.Category, entryType entities.EntryType, amount int64) *entities.LedgerEntry {
	return &entities.LedgerEntry{
		MemberID:    memberID,
		Category:    category,
		Type:        entryType,
		Status:      entities.EntryStatusPending,
		Amount:      entities.NormalizeAmount(entryType, amount),
		Reason:      "test entry",
		RequestedBy: 900,
	}
}

// CreateTestOrder creates a draft order for a member
func CreateTestOrder(memberID, totalAmount int64) *entities.Order {
	return &entities.Order{
		TicketNo:    entities.GenerateTicketNo(time.Now()),
		MemberID:    memberID,
		TotalAmount: totalAmount,
		Status:      entities.OrderStatusDraft,
		CreatedBy:   900,
	}
}

// CreateTestWagerItem creates a pending game item with selection and odds
func CreateTestWagerItem(orderID, gameID, amount int64, selection, odds string) *entities.OrderItem {
	details, _ := json.Marshal(map[string]string{
		"selection": selection,
		"odds":      odds,
	})
	return &entities.OrderItem{
		OrderID:     orderID,
		Category:    entities.ItemCategoryGame,
		Description: fmt.Sprintf("wager on game %d", gameID),
		Amount:      amount,
		Status:      entities.ItemStatusPending,
		GameID:      &gameID,
		Details:     details,
	}
}

// CreateTestGoodsItem creates a pending non-wager item
func CreateTestGoodsItem(orderID, amount int64, category string) *entities.OrderItem {
	return &entities.OrderItem{
		OrderID:  orderID,
		Category: category,
		Amount:   amount,
		Status:   entities.ItemStatusPending,
		Details:  json.RawMessage(`{}`),
	}
}

// CreateTestGame creates a scheduled, unverified game
func CreateTestGame(league, homeTeam, awayTeam string) *entities.Game {
	return &entities.Game{
		League:   league,
		HomeTeam: homeTeam,
		AwayTeam: awayTeam,
		GameDate: time.Now().Add(24 * time.Hour),
		Status:   entities.GameStatusScheduled,
	}
}

// CreateTestFinishedGame creates a finished, verified game with a score,
// ready for settlement
func CreateTestFinishedGame(league, homeTeam, awayTeam, score string) *entities.Game {
	game := CreateTestGame(league, homeTeam, awayTeam)
	game.GameDate = time.Now().Add(-24 * time.Hour)
	game.Status = entities.GameStatusFinished
	game.ResultScore = score
	game.IsVerified = true
	return game
}
