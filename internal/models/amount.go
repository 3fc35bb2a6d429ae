package models

import (
	"github.com/shopspring/decimal"
)

// BaseUnitsPerToken is the number of indivisible base units in one native
// value unit. All amounts in the ledger are int64 base units; human-facing
// decimal strings are converted at the boundary only.
const BaseUnitsPerToken = 100_000_000

var baseUnitScale = decimal.New(BaseUnitsPerToken, 0)

// ParseAmount converts a human-denominated decimal string (e.g. "0.01") into
// base units. Negative amounts and amounts finer than one base unit are rejected.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	scaled := d.Mul(baseUnitScale)
	if scaled.IsNegative() || !scaled.IsInteger() {
		return 0, ErrInvalidAmount
	}

	if !scaled.BigInt().IsInt64() {
		return 0, ErrInvalidAmount
	}

	return scaled.IntPart(), nil
}

// FormatAmount renders base units as a decimal string in native value units.
func FormatAmount(v int64) string {
	return decimal.New(v, 0).Div(baseUnitScale).String()
}
