package domain

import "github.com/shopspring/decimal"

// Hundred is shared by the percent/rate conversions below and by split math
// throughout the engine.
var Hundred = decimal.NewFromInt(100)

// PercentToRate converts a boundary percentage (6.5 meaning 6.5%) to the
// fractional rate used internally (0.065).
func PercentToRate(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(Hundred)
}

// RateToPercent converts an internal fractional rate back to the 0-100
// percentage form used at the API boundary and in all output.
func RateToPercent(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(Hundred)
}
