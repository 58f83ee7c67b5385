package engine_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payments-engine/engine"
)

func TestParseMoney_Valid(t *testing.T) {
	cases := []struct {
		in    string
		units int64
	}{
		{"1", 10000},
		{"1.5", 15000},
		{"1.2345", 12345},
		{"0.0001", 1},
		{"  2.0000 ", 20000},
		{"-1.5", -15000},
		{"0", 0},
	}
	for _, c := range cases {
		m, err := engine.ParseMoney(c.in)
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.units, m.Units(), "input %q", c.in)
	}
}

func TestParseMoney_RoundsHalfAwayFromZero(t *testing.T) {
	// Excess precision is rounded to four digits, never truncated blindly.
	cases := []struct {
		in    string
		units int64
	}{
		{"1.99999", 20000},
		{"0.00001", 0},
		{"0.00005", 1},
		{"-0.00005", -1},
	}
	for _, c := range cases {
		m, err := engine.ParseMoney(c.in)
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.units, m.Units(), "input %q", c.in)
	}
}

func TestParseMoney_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "1.2.3"} {
		_, err := engine.ParseMoney(in)
		assert.ErrorIs(t, err, engine.ErrInvalidAmount, "input %q", in)
	}
}

func TestParseMoney_Overflow(t *testing.T) {
	_, err := engine.ParseMoney("99999999999999999999999")
	assert.ErrorIs(t, err, engine.ErrAmountOverflow)
}

func TestMoney_String4DP(t *testing.T) {
	assert.Equal(t, "1.0000", engine.MoneyFromUnits(10000).String())
	assert.Equal(t, "1.2345", engine.MoneyFromUnits(12345).String())
	assert.Equal(t, "0.0001", engine.MoneyFromUnits(1).String())
	assert.Equal(t, "0.0000", engine.MoneyFromUnits(0).String())
	assert.Equal(t, "-100.0000", engine.MoneyFromUnits(-1000000).String())
}

func TestMoney_AddSub(t *testing.T) {
	a := engine.MoneyFromUnits(10000)
	b := engine.MoneyFromUnits(5000)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), sum.Units())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), diff.Units())

	// Subtraction below zero is representable; non-negativity is policy,
	// not arithmetic.
	neg, err := b.Sub(a)
	require.NoError(t, err)
	assert.Equal(t, int64(-5000), neg.Units())
	assert.True(t, neg.IsNegative())
}

func TestMoney_AddOverflowChecked(t *testing.T) {
	top := engine.MoneyFromUnits(math.MaxInt64)

	_, err := top.Add(engine.MoneyFromUnits(1))
	assert.ErrorIs(t, err, engine.ErrAmountOverflow)

	// Adding zero at the boundary is still fine.
	same, err := top.Add(engine.MoneyFromUnits(0))
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), same.Units())
}

func TestMoney_SubOverflowChecked(t *testing.T) {
	bottom := engine.MoneyFromUnits(math.MinInt64)
	_, err := bottom.Sub(engine.MoneyFromUnits(1))
	assert.ErrorIs(t, err, engine.ErrAmountOverflow)
}

func TestMoney_Compare(t *testing.T) {
	small := engine.MoneyFromUnits(10000)
	big := engine.MoneyFromUnits(15000)

	assert.Equal(t, -1, small.Cmp(big))
	assert.Equal(t, 1, big.Cmp(small))
	assert.Equal(t, 0, small.Cmp(small))
	assert.True(t, big.GreaterThanOrEqual(small))
	assert.True(t, small.GreaterThanOrEqual(small))
	assert.False(t, small.GreaterThanOrEqual(big))
	assert.True(t, engine.MoneyFromUnits(0).IsZero())
}
