package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAmount(t *testing.T) {
	assert.Equal(t, int64(-300), NormalizeAmount(EntryTypeUse, 300))
	assert.Equal(t, int64(-300), NormalizeAmount(EntryTypeUse, -300))
	assert.Equal(t, int64(300), NormalizeAmount(EntryTypeCharge, 300))
	assert.Equal(t, int64(300), NormalizeAmount(EntryTypeCharge, -300))
	assert.Equal(t, int64(500), NormalizeAmount(EntryTypeRefund, 500))
	assert.Equal(t, int64(500), NormalizeAmount(EntryTypeExchange, 500))
}

func TestEntryLifecycleChecks(t *testing.T) {
	entry := &LedgerEntry{Status: EntryStatusPending}
	assert.True(t, entry.IsPending())
	assert.False(t, entry.IsFinalized())

	now := time.Now()
	entry.Status = EntryStatusApproved
	entry.FinalizedAt = &now
	assert.False(t, entry.IsPending())
	assert.True(t, entry.IsFinalized())

	entry.Status = EntryStatusRejected
	assert.True(t, entry.IsFinalized())
}

func TestCategoryAndTypeValidation(t *testing.T) {
	assert.True(t, CategoryGeneral.IsValid())
	assert.True(t, CategoryWager.IsValid())
	assert.False(t, Category("points").IsValid())

	assert.True(t, EntryTypeCharge.IsValid())
	assert.True(t, EntryTypeUse.IsValid())
	assert.True(t, EntryTypeRefund.IsValid())
	assert.True(t, EntryTypeExchange.IsValid())
	assert.False(t, EntryType("grant").IsValid())
}
