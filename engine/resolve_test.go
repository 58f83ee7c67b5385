package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payments-engine/engine"
)

func TestResolve_ReturnsHeldToAvailable(t *testing.T) {
	l := engine.NewLedger()

	errs := processAll(t, l,
		deposit(1, 200, "50"),
		dispute(1, 200),
		resolve(1, 200),
	)
	require.NoError(t, errs[2])

	acc := snapshot(t, l, 1)
	assert.Equal(t, money(t, "50"), acc.Available)
	assert.True(t, acc.Held.IsZero())
	assert.False(t, acc.Locked)

	rec, ok := l.Record(200)
	require.True(t, ok)
	assert.Equal(t, engine.TxResolved, rec.Status)
}

func TestResolve_RoundTripIsNoOpOnBalances(t *testing.T) {
	// Dispute then resolve restores available and held exactly.
	l := engine.NewLedger()

	errs := processAll(t, l,
		deposit(1, 200, "12.3456"),
		withdrawal(1, 201, "2.3456"),
	)
	require.NoError(t, errs[1])
	before := snapshot(t, l, 1)

	errs = processAll(t, l,
		dispute(1, 200),
		resolve(1, 200),
	)
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	after := snapshot(t, l, 1)
	assert.Equal(t, before.Available, after.Available)
	assert.Equal(t, before.Held, after.Held)
	assert.Equal(t, before.Total, after.Total)
}

func TestResolve_NotDisputedIsNoOp(t *testing.T) {
	l := engine.NewLedger()

	errs := processAll(t, l,
		deposit(1, 200, "10"),
		resolve(1, 200),
	)
	assert.ErrorIs(t, errs[1], engine.ErrNotDisputed)

	rec, ok := l.Record(200)
	require.True(t, ok)
	assert.Equal(t, engine.TxNormal, rec.Status)
}

func TestResolve_TerminalStatusCannotBeReopened(t *testing.T) {
	l := engine.NewLedger()

	errs := processAll(t, l,
		deposit(1, 200, "10"),
		dispute(1, 200),
		resolve(1, 200),
		dispute(1, 200),
		resolve(1, 200),
	)
	assert.ErrorIs(t, errs[3], engine.ErrNotDisputable, "resolved records cannot be re-disputed")
	assert.ErrorIs(t, errs[4], engine.ErrNotDisputed, "resolved records cannot be re-resolved")

	acc := snapshot(t, l, 1)
	assert.Equal(t, money(t, "10"), acc.Available)
	assert.True(t, acc.Held.IsZero())
}

func TestResolve_UnknownTxAndClientMismatchAreNoOps(t *testing.T) {
	l := engine.NewLedger()

	errs := processAll(t, l,
		resolve(1, 200),
		deposit(2, 200, "10"),
		dispute(2, 200),
		resolve(1, 200),
	)
	assert.ErrorIs(t, errs[0], engine.ErrTransactionNotFound)
	assert.ErrorIs(t, errs[3], engine.ErrClientMismatch)

	rec, ok := l.Record(200)
	require.True(t, ok)
	assert.Equal(t, engine.TxDisputed, rec.Status, "mismatched resolve leaves the dispute open")
}

func TestResolve_HeldShortfallIsNoOp(t *testing.T) {
	l := engine.NewLedger()

	errs := processAll(t, l,
		deposit(1, 200, "100"),
		dispute(1, 200),
	)
	require.NoError(t, errs[1])

	// Simulate held funds drained below the disputed amount.
	l.GetOrCreateAccount(1).Held = money(t, "20")

	errs = processAll(t, l, resolve(1, 200))
	assert.ErrorIs(t, errs[0], engine.ErrHeldShortfall)

	acc := snapshot(t, l, 1)
	assert.Equal(t, money(t, "20"), acc.Held)

	rec, ok := l.Record(200)
	require.True(t, ok)
	assert.Equal(t, engine.TxDisputed, rec.Status, "record stays disputed when the transfer cannot apply")
}
