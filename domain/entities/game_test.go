package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResultScore(t *testing.T) {
	tests := []struct {
		name    string
		score   string
		home    int
		away    int
		outcome Outcome
		wantErr bool
	}{
		{name: "home win", score: "3:1", home: 3, away: 1, outcome: OutcomeHome},
		{name: "away win", score: "0:2", home: 0, away: 2, outcome: OutcomeAway},
		{name: "goalless draw", score: "0:0", home: 0, away: 0, outcome: OutcomeDraw},
		{name: "scoring draw", score: "2:2", home: 2, away: 2, outcome: OutcomeDraw},
		{name: "whitespace tolerated", score: " 1 : 0 ", home: 1, away: 0, outcome: OutcomeHome},
		{name: "empty", score: "", wantErr: true},
		{name: "missing separator", score: "31", wantErr: true},
		{name: "non-numeric home", score: "x:1", wantErr: true},
		{name: "non-numeric away", score: "1:y", wantErr: true},
		{name: "postponed marker", score: "PPD", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home, away, outcome, err := ParseResultScore(tt.score)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.home, home)
			assert.Equal(t, tt.away, away)
			assert.Equal(t, tt.outcome, outcome)
		})
	}
}

func TestGameIsSettleable(t *testing.T) {
	now := time.Now()

	game := &Game{Status: GameStatusFinished, IsVerified: true}
	assert.True(t, game.IsSettleable())

	unverified := &Game{Status: GameStatusFinished, IsVerified: false}
	assert.False(t, unverified.IsSettleable())

	live := &Game{Status: GameStatusLive, IsVerified: true}
	assert.False(t, live.IsSettleable())

	settled := &Game{Status: GameStatusFinished, IsVerified: true, SettledAt: &now}
	assert.False(t, settled.IsSettleable())
	assert.True(t, settled.IsSettled())
}
