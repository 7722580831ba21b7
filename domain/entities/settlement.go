package entities

import (
	"github.com/shopspring/decimal"
)

// SettlementCandidate is a game eligible for settlement together with the
// number of wager items riding on it
type SettlementCandidate struct {
	Game
	BetCount int `db:"bet_count"`
}

// ItemSettlement is the per-item outcome of settling one game
type ItemSettlement struct {
	ItemID    int64
	MemberID  int64
	Selection string
	Odds      decimal.Decimal
	Stake     int64
	Won       bool
	Payout    int64
}

// GameSettlement is the per-game outcome of a settlement run
type GameSettlement struct {
	GameID      int64
	Outcome     Outcome
	Skipped     bool
	Error       string
	TotalStaked int64
	TotalPayout int64
	Profit      int64
	ProfitRate  float64
	Items       []ItemSettlement
}

// SettlementStats aggregates counters and totals over a whole run
type SettlementStats struct {
	Processed   int
	Settled     int
	Skipped     int
	Errored     int
	TotalStaked int64
	TotalPayout int64
	TotalProfit int64
}

// SettlementReport is the full structured result of a settlement run.
// A run always produces a report; individual game failures are attached
// to their result entry rather than aborting the batch.
type SettlementReport struct {
	Stats   SettlementStats
	Results []GameSettlement
}

// Add folds one game's settlement into the report
func (r *SettlementReport) Add(result GameSettlement) {
	r.Stats.Processed++
	switch {
	case result.Skipped:
		r.Stats.Skipped++
	case result.Error != "":
		r.Stats.Errored++
	default:
		r.Stats.Settled++
		r.Stats.TotalStaked += result.TotalStaked
		r.Stats.TotalPayout += result.TotalPayout
		r.Stats.TotalProfit += result.Profit
	}
	r.Results = append(r.Results, result)
}
