package repository

import (
	"context"
	"testing"

	"pointdesk/domain/interfaces"
	"pointdesk/infrastructure"
	"pointdesk/repository/testutil"

	"github.com/stretchr/testify/require"
)

// setupFactory spins up a migrated test database and returns a unit of
// work factory bound to it
func setupFactory(t *testing.T) interfaces.UnitOfWorkFactory {
	t.Helper()
	testDB := testutil.SetupTestDatabase(t)
	return NewUnitOfWorkFactory(testDB.DB, infrastructure.NewNoopEventPublisher())
}

// inTx runs fn inside a committed unit of work
func inTx(t *testing.T, factory interfaces.UnitOfWorkFactory, fn func(uow interfaces.UnitOfWork)) {
	t.Helper()
	uow := factory.Create()
	require.NoError(t, uow.Begin(context.Background()))
	defer uow.Rollback()

	fn(uow)
	require.NoError(t, uow.Commit())
}
