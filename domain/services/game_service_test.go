package services

import (
	"context"
	"testing"
	"time"

	"pointdesk/domain/entities"
	"pointdesk/domain/interfaces"
	"pointdesk/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGameFixture() (*testhelpers.FakeUnitOfWorkFactory, *testhelpers.RecordingAuditSink, interfaces.GameService) {
	factory := testhelpers.NewFakeUnitOfWorkFactory()
	audit := &testhelpers.RecordingAuditSink{}
	clock := testhelpers.NewFixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return factory, audit, NewGameService(factory, audit, clock)
}

func TestCreateGame(t *testing.T) {
	factory, _, svc := newGameFixture()
	uow := factory.UnitOfWork
	ctx := context.Background()

	uow.Games.On("Create", ctx, mock.AnythingOfType("*entities.Game")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entities.Game).ID = 5
		}).
		Return(nil)

	kickoff := time.Date(2025, 6, 7, 19, 0, 0, 0, time.UTC)
	game, err := svc.CreateGame(ctx, " EPL ", " Arsenal ", "Chelsea", kickoff)
	require.NoError(t, err)
	assert.Equal(t, int64(5), game.ID)
	assert.Equal(t, "EPL", game.League)
	assert.Equal(t, "Arsenal", game.HomeTeam)
	assert.Equal(t, entities.GameStatusScheduled, game.Status)
	assert.Equal(t, 1, uow.Committed)
}

func TestCreateGameRequiresTeams(t *testing.T) {
	_, _, svc := newGameFixture()

	_, err := svc.CreateGame(context.Background(), "EPL", "  ", "Chelsea", time.Now())
	assert.True(t, IsValidationError(err))
}

func TestRecordResult(t *testing.T) {
	factory, audit, svc := newGameFixture()
	uow := factory.UnitOfWork
	ctx := context.Background()

	uow.Games.On("GetByID", ctx, int64(5)).
		Return(&entities.Game{ID: 5, Status: entities.GameStatusLive}, nil)
	uow.Games.On("RecordResult", ctx, int64(5), "3:1", entities.GameStatusFinished).Return(nil)

	require.NoError(t, svc.RecordResult(ctx, 5, " 3:1 ", entities.GameStatusFinished))
	assert.Equal(t, 1, uow.Committed)

	records := audit.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "game.record_result", records[0].Action)
}

func TestRecordResultRejectsUnknownStatus(t *testing.T) {
	_, _, svc := newGameFixture()

	err := svc.RecordResult(context.Background(), 5, "3:1", entities.GameStatus("abandoned"))
	assert.True(t, IsValidationError(err))
}

func TestRecordResultOnSettledGame(t *testing.T) {
	factory, _, svc := newGameFixture()
	uow := factory.UnitOfWork
	ctx := context.Background()

	settledAt := time.Now()
	uow.Games.On("GetByID", ctx, int64(5)).
		Return(&entities.Game{ID: 5, Status: entities.GameStatusFinished, SettledAt: &settledAt}, nil)

	err := svc.RecordResult(ctx, 5, "3:1", entities.GameStatusFinished)
	assert.ErrorIs(t, err, ErrAlreadySettled)
	uow.Games.AssertNotCalled(t, "RecordResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 0, uow.Committed)
}

func TestRecordResultUnknownGame(t *testing.T) {
	factory, _, svc := newGameFixture()
	factory.UnitOfWork.Games.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

	err := svc.RecordResult(context.Background(), 99, "3:1", entities.GameStatusFinished)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestVerifyGameMarksVerified(t *testing.T) {
	factory, audit, svc := newGameFixture()
	uow := factory.UnitOfWork
	ctx := context.Background()

	uow.Games.On("GetByID", ctx, int64(5)).
		Return(&entities.Game{ID: 5, Status: entities.GameStatusFinished}, nil)
	uow.Games.On("MarkVerified", ctx, int64(5)).Return(nil)

	require.NoError(t, svc.Verify(ctx, 5))
	assert.Equal(t, 1, uow.Committed)

	records := audit.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "game.verify", records[0].Action)
}

func TestVerifyUnknownGame(t *testing.T) {
	factory, _, svc := newGameFixture()
	factory.UnitOfWork.Games.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

	err := svc.Verify(context.Background(), 99)
	assert.ErrorIs(t, err, ErrGameNotFound)
}
