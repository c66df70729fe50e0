package domain

import "github.com/shopspring/decimal"

// CashFlowSeries represents a project's periodic cash flows. Index 0 is the
// initial investment and must be negative or zero; subsequent entries are the
// periodic flows in order.
type CashFlowSeries []decimal.Decimal

// Validate checks the structural requirements for return calculations:
// at least an initial investment plus one period, with a non-positive
// initial flow.
func (cf CashFlowSeries) Validate() error {
	if len(cf) < 2 {
		return NewInvalidInput("validate_cash_flows", "cash_flows",
			"at least two flows are required (initial investment plus one period)")
	}
	if cf[0].IsPositive() {
		return NewInvalidInput("validate_cash_flows", "cash_flows[0]",
			"initial flow must be negative or zero, got "+cf[0].String())
	}
	return nil
}

// HasSignChange reports whether the series contains both a negative and a
// positive flow. Without a sign change no internal rate of return exists.
func (cf CashFlowSeries) HasSignChange() bool {
	var sawNegative, sawPositive bool
	for _, flow := range cf {
		switch {
		case flow.IsNegative():
			sawNegative = true
		case flow.IsPositive():
			sawPositive = true
		}
		if sawNegative && sawPositive {
			return true
		}
	}
	return false
}

// Through returns the sub-series from the initial flow up to and including
// period t. It is a defensive copy; mutating it does not affect the parent.
func (cf CashFlowSeries) Through(t int) CashFlowSeries {
	if t >= len(cf) {
		t = len(cf) - 1
	}
	out := make(CashFlowSeries, t+1)
	copy(out, cf[:t+1])
	return out
}

// Total returns the sum of all flows in the series.
func (cf CashFlowSeries) Total() decimal.Decimal {
	total := decimal.Zero
	for _, flow := range cf {
		total = total.Add(flow)
	}
	return total
}

// DeepCopy returns an independent copy of the series.
func (cf CashFlowSeries) DeepCopy() CashFlowSeries {
	out := make(CashFlowSeries, len(cf))
	copy(out, cf)
	return out
}
