package repository

import (
	"context"
	"sync"
	"testing"

	"pointdesk/domain/entities"
	"pointdesk/domain/interfaces"
	"pointdesk/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberRepository_Integration(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()

	var memberID int64
	inTx(t, factory, func(uow interfaces.UnitOfWork) {
		member, err := uow.MemberRepository().Create(ctx, "M0001", "alice")
		require.NoError(t, err)
		require.NotZero(t, member.ID)
		assert.Equal(t, "alice", member.DisplayName)
		assert.Zero(t, member.GeneralBalance)
		assert.Zero(t, member.WagerBalance)
		memberID = member.ID
	})

	t.Run("get by id", func(t *testing.T) {
		inTx(t, factory, func(uow interfaces.UnitOfWork) {
			member, err := uow.MemberRepository().GetByID(ctx, memberID)
			require.NoError(t, err)
			require.NotNil(t, member)
			assert.Equal(t, "alice", member.DisplayName)
		})
	})

	t.Run("unknown member returns nil", func(t *testing.T) {
		inTx(t, factory, func(uow interfaces.UnitOfWork) {
			member, err := uow.MemberRepository().GetByID(ctx, 999999)
			require.NoError(t, err)
			assert.Nil(t, member)
		})
	})

	t.Run("balance delta applies per category", func(t *testing.T) {
		inTx(t, factory, func(uow interfaces.UnitOfWork) {
			require.NoError(t, uow.MemberRepository().ApplyBalanceDelta(ctx, memberID, entities.CategoryGeneral, 1000))
			require.NoError(t, uow.MemberRepository().ApplyBalanceDelta(ctx, memberID, entities.CategoryWager, 500))
			require.NoError(t, uow.MemberRepository().ApplyBalanceDelta(ctx, memberID, entities.CategoryGeneral, -300))
		})

		inTx(t, factory, func(uow interfaces.UnitOfWork) {
			member, err := uow.MemberRepository().GetByID(ctx, memberID)
			require.NoError(t, err)
			assert.Equal(t, int64(700), member.GeneralBalance)
			assert.Equal(t, int64(500), member.WagerBalance)
		})
	})

	t.Run("balance delta on unknown member fails", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		err := uow.MemberRepository().ApplyBalanceDelta(ctx, 999999, entities.CategoryGeneral, 100)
		assert.Error(t, err)
	})
}

func TestMemberRepository_AvailableBalance_Integration(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()

	var memberID int64
	inTx(t, factory, func(uow interfaces.UnitOfWork) {
		member, err := uow.MemberRepository().Create(ctx, "M0002", "bob")
		require.NoError(t, err)
		memberID = member.ID
		require.NoError(t, uow.MemberRepository().ApplyBalanceDelta(ctx, memberID, entities.CategoryGeneral, 1000))
	})

	t.Run("no holds - full balance available", func(t *testing.T) {
		inTx(t, factory, func(uow interfaces.UnitOfWork) {
			available, err := uow.MemberRepository().AvailableBalance(ctx, memberID, entities.CategoryGeneral)
			require.NoError(t, err)
			assert.Equal(t, int64(1000), available)
		})
	})

	t.Run("pending use holds reduce availability", func(t *testing.T) {
		inTx(t, factory, func(uow interfaces.UnitOfWork) {
			entry := testutil.CreateTestEntry(memberID, entities.CategoryGeneral, entities.EntryTypeUse, 300)
			require.NoError(t, uow.LedgerRepository().Create(ctx, entry))
		})

		inTx(t, factory, func(uow interfaces.UnitOfWork) {
			available, err := uow.MemberRepository().AvailableBalance(ctx, memberID, entities.CategoryGeneral)
			require.NoError(t, err)
			assert.Equal(t, int64(700), available)
		})
	})

	t.Run("finalized and other-category entries do not count", func(t *testing.T) {
		var approvedID int64
		inTx(t, factory, func(uow interfaces.UnitOfWork) {
			// a pending hold on the other balance
			wagerHold := testutil.CreateTestEntry(memberID, entities.CategoryWager, entities.EntryTypeUse, 50)
			require.NoError(t, uow.LedgerRepository().Create(ctx, wagerHold))

			// a hold that will be rejected
			rejected := testutil.CreateTestEntry(memberID, entities.CategoryGeneral, entities.EntryTypeUse, 200)
			require.NoError(t, uow.LedgerRepository().Create(ctx, rejected))
			updated, err := uow.LedgerRepository().MarkRejected(ctx, rejected.ID, 900, "not needed")
			require.NoError(t, err)
			require.NotNil(t, updated)

			// a pending charge must not inflate availability either
			charge := testutil.CreateTestEntry(memberID, entities.CategoryGeneral, entities.EntryTypeCharge, 5000)
			require.NoError(t, uow.LedgerRepository().Create(ctx, charge))
			approvedID = charge.ID
		})

		inTx(t, factory, func(uow interfaces.UnitOfWork) {
			available, err := uow.MemberRepository().AvailableBalance(ctx, memberID, entities.CategoryGeneral)
			require.NoError(t, err)
			// stored 1000 minus the single remaining pending hold of 300
			assert.Equal(t, int64(700), available)
		})

		// approving the charge moves the stored balance
		inTx(t, factory, func(uow interfaces.UnitOfWork) {
			entry, err := uow.LedgerRepository().MarkApproved(ctx, approvedID, 900)
			require.NoError(t, err)
			require.NotNil(t, entry)
			require.NoError(t, uow.MemberRepository().ApplyBalanceDelta(ctx, memberID, entities.CategoryGeneral, entry.Amount))
		})

		inTx(t, factory, func(uow interfaces.UnitOfWork) {
			available, err := uow.MemberRepository().AvailableBalance(ctx, memberID, entities.CategoryGeneral)
			require.NoError(t, err)
			assert.Equal(t, int64(5700), available)
		})
	})
}

func TestMemberRepository_BalanceMatchesLedger_Integration(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()

	// approve mirrors the approval flow: stamp the entry, then move the
	// stored balance by the entry's signed amount
	approve := func(uow interfaces.UnitOfWork, entryID int64) {
		entry, err := uow.LedgerRepository().MarkApproved(ctx, entryID, 900)
		require.NoError(t, err)
		require.NotNil(t, entry)
		require.NoError(t, uow.MemberRepository().ApplyBalanceDelta(ctx, entry.MemberID, entry.Category, entry.Amount))
	}

	var memberID, gameID, orderID int64
	inTx(t, factory, func(uow interfaces.UnitOfWork) {
		member, err := uow.MemberRepository().Create(ctx, "M0004", "dana")
		require.NoError(t, err)
		memberID = member.ID

		general := testutil.CreateTestEntry(memberID, entities.CategoryGeneral, entities.EntryTypeCharge, 1000)
		require.NoError(t, uow.LedgerRepository().Create(ctx, general))
		approve(uow, general.ID)

		wager := testutil.CreateTestEntry(memberID, entities.CategoryWager, entities.EntryTypeCharge, 2000)
		require.NoError(t, uow.LedgerRepository().Create(ctx, wager))
		approve(uow, wager.ID)

		// a rejected request must not move anything
		rejected := testutil.CreateTestEntry(memberID, entities.CategoryGeneral, entities.EntryTypeUse, 400)
		require.NoError(t, uow.LedgerRepository().Create(ctx, rejected))
		updated, err := uow.LedgerRepository().MarkRejected(ctx, rejected.ID, 900, "not needed")
		require.NoError(t, err)
		require.NotNil(t, updated)
	})

	// an order places a wager hold, then the hold is approved
	inTx(t, factory, func(uow interfaces.UnitOfWork) {
		game := testutil.CreateTestFinishedGame("EPL", "Arsenal", "Chelsea", "3:1")
		require.NoError(t, uow.GameRepository().Create(ctx, game))
		gameID = game.ID

		order := testutil.CreateTestOrder(memberID, 500)
		require.NoError(t, uow.OrderRepository().Create(ctx, order))
		orderID = order.ID
		require.NoError(t, uow.OrderRepository().CreateItems(ctx, []*entities.OrderItem{
			testutil.CreateTestWagerItem(order.ID, gameID, 500, "home", "2.5"),
		}))

		hold := testutil.CreateTestEntry(memberID, entities.CategoryWager, entities.EntryTypeUse, 500)
		require.NoError(t, uow.LedgerRepository().Create(ctx, hold))
		approve(uow, hold.ID)
	})

	// settlement pays the winning wager straight into the balance,
	// bypassing the ledger
	inTx(t, factory, func(uow interfaces.UnitOfWork) {
		claimed, err := uow.GameRepository().ClaimForSettlement(ctx, gameID, 900)
		require.NoError(t, err)
		require.True(t, claimed)

		stakes, err := uow.OrderRepository().GetSettleableItemsByGame(ctx, gameID)
		require.NoError(t, err)
		require.Len(t, stakes, 1)

		details := entities.ParseWagerDetails(stakes[0].Details)
		payout := entities.Payout(stakes[0].Amount, details.Odds)
		require.NoError(t, uow.MemberRepository().ApplyBalanceDelta(ctx, memberID, entities.CategoryWager, payout))
		require.NoError(t, uow.OrderRepository().SettleItem(ctx, stakes[0].ID, entities.ItemStatusWon))
	})

	// each stored balance equals the sum of its approved ledger entries
	// plus the settlement payouts credited outside the ledger
	inTx(t, factory, func(uow interfaces.UnitOfWork) {
		entries, err := uow.LedgerRepository().ListByMember(ctx, memberID, 100)
		require.NoError(t, err)

		approved := map[entities.Category]int64{}
		for _, entry := range entries {
			if entry.Status == entities.EntryStatusApproved {
				approved[entry.Category] += entry.Amount
			}
		}

		var payouts int64
		items, err := uow.OrderRepository().GetItems(ctx, orderID)
		require.NoError(t, err)
		for _, item := range items {
			if item.Status == entities.ItemStatusWon {
				payouts += entities.Payout(item.Amount, entities.ParseWagerDetails(item.Details).Odds)
			}
		}
		require.Equal(t, int64(1250), payouts)

		member, err := uow.MemberRepository().GetByID(ctx, memberID)
		require.NoError(t, err)
		assert.Equal(t, approved[entities.CategoryGeneral], member.GeneralBalance)
		assert.Equal(t, approved[entities.CategoryWager]+payouts, member.WagerBalance)
		assert.Equal(t, int64(1000), member.GeneralBalance)
		assert.Equal(t, int64(2750), member.WagerBalance)
	})
}

func TestMemberRepository_ConcurrentBalanceDeltas_Integration(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()

	var memberID int64
	inTx(t, factory, func(uow interfaces.UnitOfWork) {
		member, err := uow.MemberRepository().Create(ctx, "M0003", "carol")
		require.NoError(t, err)
		memberID = member.ID
	})

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uow := factory.Create()
			if err := uow.Begin(ctx); err != nil {
				errs <- err
				return
			}
			defer uow.Rollback()
			if err := uow.MemberRepository().ApplyBalanceDelta(ctx, memberID, entities.CategoryWager, 100); err != nil {
				errs <- err
				return
			}
			errs <- uow.Commit()
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	inTx(t, factory, func(uow interfaces.UnitOfWork) {
		member, err := uow.MemberRepository().GetByID(ctx, memberID)
		require.NoError(t, err)
		assert.Equal(t, int64(workers*100), member.WagerBalance)
	})
}
