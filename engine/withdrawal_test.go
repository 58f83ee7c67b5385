package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payments-engine/engine"
)

func TestWithdrawal_DebitsAvailableAndRecordsTx(t *testing.T) {
	l := engine.NewLedger()

	errs := processAll(t, l,
		deposit(1, 10, "100"),
		withdrawal(1, 11, "40"),
	)
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	acc := snapshot(t, l, 1)
	assert.Equal(t, money(t, "60"), acc.Available)

	rec, ok := l.Record(11)
	require.True(t, ok)
	assert.Equal(t, engine.TxWithdrawal, rec.Kind)
	assert.Equal(t, engine.TxNormal, rec.Status)
	assert.Equal(t, money(t, "40"), rec.Amount)
}

func TestWithdrawal_InsufficientFundsLeavesBalanceUntouched(t *testing.T) {
	l := engine.NewLedger()

	errs := processAll(t, l,
		deposit(2, 10, "30"),
		withdrawal(2, 11, "50"),
	)
	assert.ErrorIs(t, errs[1], engine.ErrInsufficientFunds)
	assert.True(t, engine.IsIgnored(errs[1]))

	acc := snapshot(t, l, 2)
	assert.Equal(t, money(t, "30"), acc.Available, "available must never go negative on withdrawal")

	// The attempt is still on record, but withdrawal records are never
	// dispute-eligible so this is bookkeeping only.
	rec, ok := l.Record(11)
	require.True(t, ok)
	assert.Equal(t, engine.TxWithdrawal, rec.Kind)
	assert.Equal(t, money(t, "50"), rec.Amount)
}

func TestWithdrawal_DuplicateTxIDDoesNotApplyTwice(t *testing.T) {
	l := engine.NewLedger()

	errs := processAll(t, l,
		deposit(3, 10, "100"),
		withdrawal(3, 11, "10"),
		withdrawal(3, 11, "10"),
	)
	assert.ErrorIs(t, errs[2], engine.ErrDuplicateTransaction)

	acc := snapshot(t, l, 3)
	assert.Equal(t, money(t, "90"), acc.Available, "duplicate tx must not withdraw twice")
}

func TestWithdrawal_IgnoredWhenAccountLocked(t *testing.T) {
	l := engine.NewLedger()
	acc := l.GetOrCreateAccount(4)
	acc.Available = money(t, "100")
	acc.Locked = true

	errs := processAll(t, l, withdrawal(4, 13, "20"))
	assert.ErrorIs(t, errs[0], engine.ErrAccountLocked)

	snap := snapshot(t, l, 4)
	assert.Equal(t, money(t, "100"), snap.Available)

	_, ok := l.Record(13)
	assert.False(t, ok, "locked account should not record withdrawals")
}

func TestWithdrawal_ExactBalanceDrainsToZero(t *testing.T) {
	l := engine.NewLedger()

	errs := processAll(t, l,
		deposit(5, 20, "10"),
		withdrawal(5, 21, "10"),
	)
	require.NoError(t, errs[1])

	acc := snapshot(t, l, 5)
	assert.True(t, acc.Available.IsZero())
}
