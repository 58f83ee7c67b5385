/*
money.go - Fixed-precision monetary amounts

PURPOSE:
  Money is the leaf value type every other component builds on. Amounts are
  stored as int64 units scaled to four fractional digits, so all arithmetic
  is exact for the precision the input format carries. Parsing and rendering
  go through decimal.Decimal; arithmetic never does.

WHY NOT FLOAT?
  0.1 + 0.2 != 0.3 in binary floating point. A ledger that drifts by a
  fraction of a cent is a ledger that cannot be reconciled. Integer units
  make equality and ordering exact.

CHECKED ARITHMETIC:
  Add and Sub return an error on int64 overflow instead of wrapping around.
  Callers decide whether a negative result is acceptable (disputes allow it,
  withdrawals do not).

SEE ALSO:
  - account.go: balances built from Money
  - errors.go: ErrAmountOverflow, ErrInvalidAmount
*/
package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits carried by every amount.
const MoneyScale = 4

// Money is an amount in 1/10_000ths of the currency unit.
// It is an immutable value type; operations return new values.
type Money int64

var (
	maxUnits = decimal.NewFromInt(math.MaxInt64)
	minUnits = decimal.NewFromInt(math.MinInt64)
)

// MoneyFromUnits builds a Money from raw scaled units.
// MoneyFromUnits(15000) == "1.5000".
func MoneyFromUnits(units int64) Money {
	return Money(units)
}

// ParseMoney parses decimal text into a Money, rounding half away from zero
// to four fractional digits ("1.99999" -> 2.0000, "0.00001" -> 0.0000).
// Returns ErrInvalidAmount for empty or malformed input and ErrAmountOverflow
// when the value does not fit the representable range.
func ParseMoney(s string) (Money, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(t)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	scaled := d.Shift(MoneyScale).Round(0)
	if scaled.Cmp(maxUnits) > 0 || scaled.Cmp(minUnits) < 0 {
		return 0, fmt.Errorf("%w: %q", ErrAmountOverflow, s)
	}
	return Money(scaled.IntPart()), nil
}

// Units returns the raw scaled units.
func (m Money) Units() int64 { return int64(m) }

// Add returns m+o, failing with ErrAmountOverflow instead of wrapping.
func (m Money) Add(o Money) (Money, error) {
	sum := int64(m) + int64(o)
	if (o > 0 && sum < int64(m)) || (o < 0 && sum > int64(m)) {
		return 0, ErrAmountOverflow
	}
	return Money(sum), nil
}

// Sub returns m-o, failing with ErrAmountOverflow instead of wrapping.
// The result may be negative; non-negativity is the caller's policy.
func (m Money) Sub(o Money) (Money, error) {
	diff := int64(m) - int64(o)
	if (o < 0 && diff < int64(m)) || (o > 0 && diff > int64(m)) {
		return 0, ErrAmountOverflow
	}
	return Money(diff), nil
}

// Cmp returns -1, 0 or 1 as m is less than, equal to, or greater than o.
func (m Money) Cmp(o Money) int {
	switch {
	case m < o:
		return -1
	case m > o:
		return 1
	default:
		return 0
	}
}

func (m Money) IsNegative() bool { return m < 0 }
func (m Money) IsZero() bool     { return m == 0 }

// GreaterThanOrEqual reports m >= o.
func (m Money) GreaterThanOrEqual(o Money) bool { return m >= o }

// Decimal returns the amount as a decimal.Decimal at MoneyScale.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -MoneyScale)
}

// String renders the amount with exactly four fractional digits, the format
// the report writer emits.
func (m Money) String() string {
	return m.Decimal().StringFixed(MoneyScale)
}
