package tiers

import (
	"github.com/LaxBloxBoy2/crego/internal/domain"
)

// CashYieldStrategy: tier from the current period's cash-on-cash yield,
// this period's cash flow over the deal's equity, with no memory of prior
// periods. Term sheets quote splits this way; note it can pick a higher
// rung than TrailingIRRStrategy would for the same deal, since a single
// strong year reads as a high return even when cumulative performance lags.
type CashYieldStrategy struct{}

func NewCashYieldStrategy() *CashYieldStrategy { return &CashYieldStrategy{} }

func (s *CashYieldStrategy) Name() string { return "cash_yield" }

func (s *CashYieldStrategy) SelectTier(tierList []domain.WaterfallTier, snap PeriodSnapshot) (Selection, error) {
	if !snap.EquityInvestment.IsPositive() {
		return Selection{}, domain.NewInvalidInput("select_tier", "equity_investment",
			"cash yield needs a positive equity investment")
	}

	referencePct := domain.RateToPercent(snap.CashFlow.Div(snap.EquityInvestment))
	tier, err := ResolveTier(tierList, referencePct)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Tier: tier, ReferencePct: &referencePct}, nil
}
