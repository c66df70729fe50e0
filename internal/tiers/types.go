package tiers

import (
	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/shopspring/decimal"
)

// PeriodSnapshot carries the state a strategy may consult when picking the
// governing tier for one period.
// Period: 1-based period index
// CashFlow: this period's distributable cash
// EquityInvestment: total initial equity in the deal (positive)
// TrailingFlows: the series from the initial investment through this period
type PeriodSnapshot struct {
	Period           int
	CashFlow         decimal.Decimal
	EquityInvestment decimal.Decimal
	TrailingFlows    domain.CashFlowSeries
}

// Selection represents a strategy's tier choice for one period together
// with the reference rate that drove it. ReferencePct is nil when no
// reference exists yet (the trailing series has no positive flow), in which
// case the lowest tier governs by definition.
type Selection struct {
	Tier         domain.WaterfallTier
	ReferencePct *decimal.Decimal
}

// SelectionStrategy defines the interface for tier selection rules. The two
// shipped rules answer the same question with different inputs: what return
// measure decides which rung of the ladder a period's cash is split on.
type SelectionStrategy interface {
	Name() string
	SelectTier(tiers []domain.WaterfallTier, snap PeriodSnapshot) (Selection, error)
}
