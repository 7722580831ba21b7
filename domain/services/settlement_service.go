package services

import (
	"context"
	"fmt"

	"pointdesk/domain/entities"
	"pointdesk/domain/events"
	"pointdesk/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type settlementService struct {
	uowFactory interfaces.UnitOfWorkFactory
	gate       interfaces.PermissionGate
	notifier   interfaces.NotificationSink
	audit      interfaces.AuditSink
	aliases    *TeamAliasCache
	clock      interfaces.Clock
}

// NewSettlementService creates a new settlement engine
func NewSettlementService(
	uowFactory interfaces.UnitOfWorkFactory,
	gate interfaces.PermissionGate,
	notifier interfaces.NotificationSink,
	audit interfaces.AuditSink,
	aliases *TeamAliasCache,
	clock interfaces.Clock,
) interfaces.SettlementService {
	return &settlementService{
		uowFactory: uowFactory,
		gate:       gate,
		notifier:   notifier,
		audit:      audit,
		aliases:    aliases,
		clock:      clock,
	}
}

// Candidates returns unsettled verified finished games with bet counts
func (s *settlementService) Candidates(ctx context.Context) ([]*entities.SettlementCandidate, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	candidates, err := uow.GameRepository().GetSettlementCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlement candidates: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return candidates, nil
}

// Run settles the given games, or every candidate when gameIDs is empty.
// Games are processed independently; one game's failure is recorded in
// its result entry and never aborts the rest of the batch.
func (s *settlementService) Run(ctx context.Context, gameIDs []int64, operatorID int64) (*entities.SettlementReport, error) {
	if err := s.gate.Authorize(ctx, operatorID, interfaces.CapabilitySettle); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}

	if len(gameIDs) == 0 {
		candidates, err := s.Candidates(ctx)
		if err != nil {
			return nil, err
		}
		for _, candidate := range candidates {
			gameIDs = append(gameIDs, candidate.ID)
		}
	}

	aliases, err := s.aliases.Get(ctx)
	if err != nil {
		log.WithError(err).Warn("Team aliases unavailable, matching on team names only")
		aliases = nil
	}

	report := &entities.SettlementReport{}
	for _, gameID := range gameIDs {
		result := s.settleGame(ctx, gameID, operatorID, aliases)
		report.Add(result)
	}

	log.WithFields(log.Fields{
		"processed": report.Stats.Processed,
		"settled":   report.Stats.Settled,
		"skipped":   report.Stats.Skipped,
		"errored":   report.Stats.Errored,
		"profit":    report.Stats.TotalProfit,
	}).Info("Settlement run finished")

	return report, nil
}

// settleGame resolves one game in its own transaction. The settlement
// claim is a conditional update on settled_at, so two concurrent runs
// cannot both pay out the same game.
func (s *settlementService) settleGame(ctx context.Context, gameID, operatorID int64, aliases map[string][]string) entities.GameSettlement {
	result := entities.GameSettlement{GameID: gameID}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		result.Error = fmt.Sprintf("failed to begin transaction: %v", err)
		return result
	}
	defer uow.Rollback()

	game, err := uow.GameRepository().GetByID(ctx, gameID)
	if err != nil {
		result.Error = fmt.Sprintf("failed to get game: %v", err)
		return result
	}
	if game == nil {
		result.Error = "game not found"
		return result
	}
	if game.IsSettled() {
		result.Skipped = true
		return result
	}
	if !game.IsSettleable() {
		result.Error = fmt.Sprintf("game is not eligible for settlement (status=%s, verified=%t)", game.Status, game.IsVerified)
		return result
	}

	// An unparseable score leaves the game unsettled for manual handling
	_, _, outcome, err := entities.ParseResultScore(game.ResultScore)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Outcome = outcome

	claimed, err := uow.GameRepository().ClaimForSettlement(ctx, gameID, operatorID)
	if err != nil {
		result.Error = fmt.Sprintf("failed to claim game: %v", err)
		return result
	}
	if !claimed {
		result.Skipped = true
		return result
	}

	stakes, err := uow.OrderRepository().GetSettleableItemsByGame(ctx, gameID)
	if err != nil {
		result.Error = fmt.Sprintf("failed to load wager items: %v", err)
		return result
	}
	if len(stakes) == 0 {
		// Nothing to resolve; leave the game unclaimed for a later run
		result.Skipped = true
		return result
	}

	var notices []interfaces.WagerWonNotice
	for _, stake := range stakes {
		details := entities.ParseWagerDetails(stake.Details)
		item := entities.ItemSettlement{
			ItemID:    stake.ID,
			MemberID:  stake.MemberID,
			Selection: details.Selection,
			Odds:      details.Odds,
			Stake:     stake.Amount,
		}
		result.TotalStaked += stake.Amount

		if entities.SelectionWins(details.Selection, game, outcome, aliases) {
			item.Won = true
			item.Payout = entities.Payout(stake.Amount, details.Odds)
			result.TotalPayout += item.Payout

			// Payouts credit the wager balance directly, bypassing the
			// approval flow, through the same atomic increment the
			// approval path uses
			if err := uow.MemberRepository().ApplyBalanceDelta(ctx, stake.MemberID, entities.CategoryWager, item.Payout); err != nil {
				result.Error = fmt.Sprintf("failed to credit payout for item %d: %v", stake.ID, err)
				return result
			}
			if err := uow.OrderRepository().SettleItem(ctx, stake.ID, entities.ItemStatusWon); err != nil {
				result.Error = fmt.Sprintf("failed to settle item %d: %v", stake.ID, err)
				return result
			}

			notices = append(notices, interfaces.WagerWonNotice{
				MemberID: stake.MemberID,
				GameID:   gameID,
				ItemID:   stake.ID,
				Odds:     details.Odds.String(),
				Payout:   item.Payout,
			})
			if err := uow.EventBus().Publish(events.WagerWonEvent{
				MemberID: stake.MemberID,
				GameID:   gameID,
				ItemID:   stake.ID,
				Odds:     details.Odds.String(),
				Payout:   item.Payout,
			}); err != nil {
				log.WithError(err).Warn("Failed to publish wager won event")
			}
		} else {
			if err := uow.OrderRepository().SettleItem(ctx, stake.ID, entities.ItemStatusLost); err != nil {
				result.Error = fmt.Sprintf("failed to settle item %d: %v", stake.ID, err)
				return result
			}
		}

		result.Items = append(result.Items, item)
	}

	result.Profit = result.TotalStaked - result.TotalPayout
	if result.TotalStaked > 0 {
		result.ProfitRate = float64(result.Profit) / float64(result.TotalStaked)
	}

	if err := uow.EventBus().Publish(events.GameSettledEvent{
		GameID:      gameID,
		Outcome:     string(outcome),
		SettledBy:   operatorID,
		TotalStaked: result.TotalStaked,
		TotalPayout: result.TotalPayout,
		Profit:      result.Profit,
	}); err != nil {
		log.WithError(err).Warn("Failed to publish game settled event")
	}

	if err := uow.Commit(); err != nil {
		result.Error = fmt.Sprintf("failed to commit settlement: %v", err)
		return result
	}

	// Notification failures never affect the committed settlement
	for _, notice := range notices {
		if err := s.notifier.NotifyWagerWon(ctx, notice); err != nil {
			log.WithFields(log.Fields{
				"memberID": notice.MemberID,
				"itemID":   notice.ItemID,
				"error":    err,
			}).Warn("Failed to deliver win notification")
		}
	}

	s.audit.Record(ctx, interfaces.AuditRecord{
		Actor:     operatorID,
		Action:    "settlement.settle",
		Subject:   fmt.Sprintf("game:%d", gameID),
		Before:    entities.GameStatusFinished,
		After:     "settled",
		Timestamp: s.clock.Now(),
	})

	log.WithFields(log.Fields{
		"gameID":  gameID,
		"outcome": outcome,
		"items":   len(result.Items),
		"staked":  result.TotalStaked,
		"payout":  result.TotalPayout,
	}).Info("Game settled")

	return result
}
