package repository

import (
	"context"
	"testing"

	"pointdesk/domain/entities"
	"pointdesk/domain/interfaces"
	"pointdesk/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameRepository_Integration(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()

	var gameID int64
	inTx(t, factory, func(uow interfaces.UnitOfWork) {
		game := testutil.CreateTestGame("EPL", "Arsenal", "Chelsea")
		require.NoError(t, uow.GameRepository().Create(ctx, game))
		require.NotZero(t, game.ID)
		gameID = game.ID
	})

	t.Run("result and verification lifecycle", func(t *testing.T) {
		inTx(t, factory, func(uow interfaces.UnitOfWork) {
			require.NoError(t, uow.GameRepository().RecordResult(ctx, gameID, "3:1", entities.GameStatusFinished))
		})

		inTx(t, factory, func(uow interfaces.UnitOfWork) {
			game, err := uow.GameRepository().GetByID(ctx, gameID)
			require.NoError(t, err)
			assert.Equal(t, "3:1", game.ResultScore)
			assert.Equal(t, entities.GameStatusFinished, game.Status)
			assert.False(t, game.IsVerified)
			assert.False(t, game.IsSettleable())
		})

		inTx(t, factory, func(uow interfaces.UnitOfWork) {
			require.NoError(t, uow.GameRepository().MarkVerified(ctx, gameID))
		})

		inTx(t, factory, func(uow interfaces.UnitOfWork) {
			game, err := uow.GameRepository().GetByID(ctx, gameID)
			require.NoError(t, err)
			assert.True(t, game.IsSettleable())
		})
	})

	t.Run("claim is exclusive", func(t *testing.T) {
		inTx(t, factory, func(uow interfaces.UnitOfWork) {
			claimed, err := uow.GameRepository().ClaimForSettlement(ctx, gameID, 900)
			require.NoError(t, err)
			assert.True(t, claimed)
		})

		inTx(t, factory, func(uow interfaces.UnitOfWork) {
			claimed, err := uow.GameRepository().ClaimForSettlement(ctx, gameID, 901)
			require.NoError(t, err)
			assert.False(t, claimed)
		})

		inTx(t, factory, func(uow interfaces.UnitOfWork) {
			game, err := uow.GameRepository().GetByID(ctx, gameID)
			require.NoError(t, err)
			require.True(t, game.IsSettled())
			require.NotNil(t, game.SettledBy)
			assert.Equal(t, int64(900), *game.SettledBy)
		})
	})

	t.Run("rolled back claim leaves the game unsettled", func(t *testing.T) {
		var freshID int64
		inTx(t, factory, func(uow interfaces.UnitOfWork) {
			game := testutil.CreateTestFinishedGame("EPL", "Spurs", "West Ham", "1:1")
			require.NoError(t, uow.GameRepository().Create(ctx, game))
			freshID = game.ID
		})

		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		claimed, err := uow.GameRepository().ClaimForSettlement(ctx, freshID, 900)
		require.NoError(t, err)
		require.True(t, claimed)
		require.NoError(t, uow.Rollback())

		inTx(t, factory, func(check interfaces.UnitOfWork) {
			game, err := check.GameRepository().GetByID(ctx, freshID)
			require.NoError(t, err)
			assert.False(t, game.IsSettled())
		})
	})
}

func TestGameRepository_SettlementCandidates_Integration(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()

	var memberID, eligibleID int64
	inTx(t, factory, func(uow interfaces.UnitOfWork) {
		member, err := uow.MemberRepository().Create(ctx, "M0001", "alice")
		require.NoError(t, err)
		memberID = member.ID

		// eligible: finished, verified, unsettled
		eligible := testutil.CreateTestFinishedGame("EPL", "Arsenal", "Chelsea", "3:1")
		require.NoError(t, uow.GameRepository().Create(ctx, eligible))
		eligibleID = eligible.ID

		// finished but unverified
		unverified := testutil.CreateTestFinishedGame("EPL", "Spurs", "West Ham", "2:0")
		unverified.IsVerified = false
		require.NoError(t, uow.GameRepository().Create(ctx, unverified))

		// still scheduled
		scheduled := testutil.CreateTestGame("EPL", "Everton", "Fulham")
		require.NoError(t, uow.GameRepository().Create(ctx, scheduled))

		// already settled
		settled := testutil.CreateTestFinishedGame("EPL", "Wolves", "Brentford", "0:2")
		require.NoError(t, uow.GameRepository().Create(ctx, settled))
		claimed, err := uow.GameRepository().ClaimForSettlement(ctx, settled.ID, 900)
		require.NoError(t, err)
		require.True(t, claimed)

		// two wagers riding on the eligible game
		order := testutil.CreateTestOrder(memberID, 300)
		require.NoError(t, uow.OrderRepository().Create(ctx, order))
		require.NoError(t, uow.OrderRepository().CreateItems(ctx, []*entities.OrderItem{
			testutil.CreateTestWagerItem(order.ID, eligibleID, 100, "home", "2.5"),
			testutil.CreateTestWagerItem(order.ID, eligibleID, 200, "Chelsea", "1.8"),
		}))
	})

	inTx(t, factory, func(uow interfaces.UnitOfWork) {
		candidates, err := uow.GameRepository().GetSettlementCandidates(ctx)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, eligibleID, candidates[0].ID)
		assert.Equal(t, 2, candidates[0].BetCount)
	})
}
