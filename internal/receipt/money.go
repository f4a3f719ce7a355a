package receipt

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var maxCents = decimal.NewFromInt(math.MaxInt64)

// toCents converts a dollar amount to whole cents, rounding half away from zero.
// Amounts that do not fit in an int64 are rejected.
func toCents(amount float64) (int, error) {
	cents := decimal.NewFromFloat(amount).Shift(2).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(maxCents.Neg()) {
		return 0, errors.New("amount out of range")
	}
	return int(cents.IntPart()), nil
}

// fromCents converts cents back to dollars.
func fromCents(cents int) float64 {
	return decimal.New(int64(cents), -2).InexactFloat64()
}
