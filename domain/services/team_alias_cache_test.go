package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"pointdesk/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTeamAliasCacheServesUntilExpiry(t *testing.T) {
	factory := testhelpers.NewFakeUnitOfWorkFactory()
	clock := testhelpers.NewFixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	cache := NewTeamAliasCache(factory, clock, 10*time.Minute)
	ctx := context.Background()

	aliases := map[string][]string{"Arsenal": {"Gunners"}}
	factory.UnitOfWork.Aliases.On("GetAll", ctx).Return(aliases, nil).Once()

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, aliases, got)

	// within the TTL the repository is not consulted again
	clock.Advance(5 * time.Minute)
	got, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, aliases, got)
	factory.UnitOfWork.Aliases.AssertExpectations(t)

	// past the TTL it reloads
	updated := map[string][]string{"Arsenal": {"Gunners", "AFC"}}
	factory.UnitOfWork.Aliases.On("GetAll", ctx).Return(updated, nil).Once()
	clock.Advance(6 * time.Minute)
	got, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestTeamAliasCacheInvalidateForcesReload(t *testing.T) {
	factory := testhelpers.NewFakeUnitOfWorkFactory()
	clock := testhelpers.NewFixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	cache := NewTeamAliasCache(factory, clock, time.Hour)
	ctx := context.Background()

	factory.UnitOfWork.Aliases.On("GetAll", ctx).Return(map[string][]string{}, nil).Twice()

	_, err := cache.Get(ctx)
	require.NoError(t, err)

	cache.Invalidate()

	_, err = cache.Get(ctx)
	require.NoError(t, err)
	factory.UnitOfWork.Aliases.AssertExpectations(t)
}

func TestTeamAliasCacheServesStaleOnReloadFailure(t *testing.T) {
	factory := testhelpers.NewFakeUnitOfWorkFactory()
	clock := testhelpers.NewFixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	cache := NewTeamAliasCache(factory, clock, time.Minute)
	ctx := context.Background()

	aliases := map[string][]string{"Chelsea": {"Blues"}}
	factory.UnitOfWork.Aliases.On("GetAll", ctx).Return(aliases, nil).Once()

	_, err := cache.Get(ctx)
	require.NoError(t, err)

	factory.UnitOfWork.Aliases.On("GetAll", ctx).Return(nil, errors.New("connection refused"))
	clock.Advance(2 * time.Minute)

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, aliases, got)
}

func TestTeamAliasCacheFailsWhenNothingCached(t *testing.T) {
	factory := testhelpers.NewFakeUnitOfWorkFactory()
	clock := testhelpers.NewFixedClock(time.Now())
	cache := NewTeamAliasCache(factory, clock, time.Minute)

	factory.UnitOfWork.Aliases.On("GetAll", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := cache.Get(context.Background())
	assert.Error(t, err)
}
