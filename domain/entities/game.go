package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GameStatus represents the lifecycle of a game as reported by the data source
type GameStatus string

const (
	GameStatusScheduled GameStatus = "scheduled"
	GameStatusLive      GameStatus = "live"
	GameStatusFinished  GameStatus = "finished"
	GameStatusPostponed GameStatus = "postponed"
	GameStatusCancelled GameStatus = "cancelled"
)

// Game represents a sporting event supplied by the external data source.
// settled_at is owned exclusively by the settlement engine and transitions
// null to non-null at most once.
type Game struct {
	ID          int64      `db:"id"`
	League      string     `db:"league"`
	HomeTeam    string     `db:"home_team"`
	AwayTeam    string     `db:"away_team"`
	GameDate    time.Time  `db:"game_date"`
	ResultScore string     `db:"result_score"`
	Status      GameStatus `db:"status"`
	IsVerified  bool       `db:"is_verified"`
	SettledAt   *time.Time `db:"settled_at"`
	SettledBy   *int64     `db:"settled_by"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// IsSettleable checks the eligibility rule for settlement
func (g *Game) IsSettleable() bool {
	return g.Status == GameStatusFinished && g.IsVerified && g.SettledAt == nil
}

// IsSettled checks whether settlement has already claimed the game
func (g *Game) IsSettled() bool {
	return g.SettledAt != nil
}

// Outcome is the resolved result of a game
type Outcome string

const (
	OutcomeHome Outcome = "home"
	OutcomeAway Outcome = "away"
	OutcomeDraw Outcome = "draw"
)

// ParseResultScore parses a "H:A" score string into its components and
// the resolved outcome. An unparseable score is an error; the caller must
// leave the game unsettled in that case.
func ParseResultScore(score string) (home, away int, outcome Outcome, err error) {
	parts := strings.SplitN(strings.TrimSpace(score), ":", 2)
	if len(parts) != 2 {
		return 0, 0, "", fmt.Errorf("result score %q is not in H:A form", score)
	}

	home, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, "", fmt.Errorf("result score %q has a non-numeric home score", score)
	}
	away, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, "", fmt.Errorf("result score %q has a non-numeric away score", score)
	}

	switch {
	case home > away:
		outcome = OutcomeHome
	case home < away:
		outcome = OutcomeAway
	default:
		outcome = OutcomeDraw
	}
	return home, away, outcome, nil
}
