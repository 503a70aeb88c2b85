// Package money renders ledger amounts for display.
package money

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Format renders amount with thousands separators and two decimals,
// e.g. ₦150,000.00 or -₦10,000.50.
func Format(amount decimal.Decimal, symbol string) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	whole := rounded.Truncate(0)
	cents := rounded.Sub(whole).StringFixed(2) // "0.xx"
	return sign + symbol + humanize.BigComma(whole.BigInt()) + cents[1:]
}

