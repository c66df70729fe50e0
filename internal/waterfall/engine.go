package waterfall

import (
	"errors"
	"fmt"

	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/LaxBloxBoy2/crego/internal/finance"
	"github.com/LaxBloxBoy2/crego/internal/tiers"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Engine distributes a deal's periodic cash flows between sponsor and
// investors through a promote ladder. Tier selection per period is
// delegated to the configured strategy; the default judges each period by
// the deal's trailing IRR.
type Engine struct {
	Strategy tiers.SelectionStrategy
	Logger   zerolog.Logger
}

// NewEngine creates an engine with the trailing-IRR selection rule and no
// logging.
func NewEngine() *Engine {
	return &Engine{
		Strategy: tiers.NewTrailingIRRStrategy(),
		Logger:   zerolog.Nop(),
	}
}

// NewEngineWithOptions creates an engine with an explicit selection
// strategy and logger.
func NewEngineWithOptions(strategy tiers.SelectionStrategy, logger zerolog.Logger) *Engine {
	return &Engine{Strategy: strategy, Logger: logger}
}

// Run produces one distribution row per period of the series, splitting each
// period's cash by the tier the strategy selects, then derives per-side
// returns using the equity split for the initial investment. The inputs are
// never mutated; identical inputs produce identical results.
//
// Stricter than CashFlowSeries.Validate, Run requires a strictly negative
// initial flow: zero equity leaves per-side multiples and cash-yield tier
// selection undefined.
//
// The GP amount is computed from the tier percentage and the LP receives the
// remainder, so the two sides always sum exactly to the period's cash flow.
func (e *Engine) Run(structure domain.PromoteStructure, flows domain.CashFlowSeries, split domain.EquitySplit) (*domain.WaterfallResult, error) {
	if err := structure.Validate(); err != nil {
		return nil, err
	}
	if err := flows.Validate(); err != nil {
		return nil, err
	}
	if flows[0].IsZero() {
		return nil, domain.NewInvalidInput("run_waterfall", "cash_flows[0]",
			"initial investment must be negative, got zero")
	}
	if split.IsZero() {
		split = domain.DefaultEquitySplit()
	}
	if err := split.Validate(); err != nil {
		return nil, err
	}

	equity := flows[0].Abs()
	e.Logger.Debug().
		Str("structure", structure.Name).
		Str("strategy", e.Strategy.Name()).
		Int("periods", len(flows)-1).
		Str("equity", equity.String()).
		Msg("running waterfall")

	gpInitial := flows[0].Mul(split.GPPct).Div(domain.Hundred)
	lpInitial := flows[0].Sub(gpInitial)

	distributions := make([]domain.YearlyDistribution, 0, len(flows)-1)
	gpFlows := domain.CashFlowSeries{gpInitial}
	lpFlows := domain.CashFlowSeries{lpInitial}
	cumulativeGP := decimal.Zero
	cumulativeLP := decimal.Zero

	for t := 1; t < len(flows); t++ {
		snap := tiers.PeriodSnapshot{
			Period:           t,
			CashFlow:         flows[t],
			EquityInvestment: equity,
			TrailingFlows:    flows.Through(t),
		}
		selection, err := e.Strategy.SelectTier(structure.Tiers, snap)
		if err != nil {
			return nil, fmt.Errorf("period %d: %w", t, err)
		}

		gpAmount := flows[t].Mul(selection.Tier.GPSplitPct).Div(domain.Hundred)
		lpAmount := flows[t].Sub(gpAmount)
		cumulativeGP = cumulativeGP.Add(gpAmount)
		cumulativeLP = cumulativeLP.Add(lpAmount)
		gpFlows = append(gpFlows, gpAmount)
		lpFlows = append(lpFlows, lpAmount)

		event := e.Logger.Debug().
			Int("period", t).
			Str("cash_flow", flows[t].String()).
			Int("tier", selection.Tier.Order).
			Str("gp", gpAmount.String()).
			Str("lp", lpAmount.String())
		if selection.ReferencePct != nil {
			event = event.Str("reference_irr_pct", selection.ReferencePct.StringFixed(4))
		}
		event.Msg("period distributed")

		distributions = append(distributions, domain.YearlyDistribution{
			Period:          t,
			TotalCashFlow:   flows[t],
			ReferenceIRRPct: selection.ReferencePct,
			TierOrder:       selection.Tier.Order,
			GPPercentUsed:   selection.Tier.GPSplitPct,
			LPPercentUsed:   selection.Tier.LPSplitPct,
			GPAmount:        gpAmount,
			LPAmount:        lpAmount,
			CumulativeGP:    cumulativeGP,
			CumulativeLP:    cumulativeLP,
		})
	}

	summary, err := e.summarize(split, gpFlows, lpFlows, cumulativeGP, cumulativeLP)
	if err != nil {
		return nil, err
	}

	return &domain.WaterfallResult{
		StructureName: structure.Name,
		StrategyUsed:  e.Strategy.Name(),
		Distributions: distributions,
		Summary:       summary,
	}, nil
}

// summarize derives per-side IRRs and equity multiples from the split
// series. A side that received no distributions has no IRR; its field stays
// nil rather than being faked with a placeholder rate.
func (e *Engine) summarize(split domain.EquitySplit, gpFlows, lpFlows domain.CashFlowSeries, totalGP, totalLP decimal.Decimal) (domain.ReturnsSummary, error) {
	summary := domain.ReturnsSummary{
		TotalDistributed: totalGP.Add(totalLP),
		TotalGP:          totalGP,
		TotalLP:          totalLP,
		GPEquityShare:    split.GPPct,
		LPEquityShare:    split.LPPct,
	}

	gpIRR, err := sideIRR(gpFlows)
	if err != nil {
		return domain.ReturnsSummary{}, fmt.Errorf("gp returns: %w", err)
	}
	lpIRR, err := sideIRR(lpFlows)
	if err != nil {
		return domain.ReturnsSummary{}, fmt.Errorf("lp returns: %w", err)
	}
	summary.GPIRRPct = gpIRR
	summary.LPIRRPct = lpIRR

	summary.GPEquityMultiple = equityMultiple(totalGP, gpFlows[0])
	summary.LPEquityMultiple = equityMultiple(totalLP, lpFlows[0])
	return summary, nil
}

// sideIRR solves one side's return series. No sign change means the side
// never received cash against its investment, and a root below the solver
// bracket means it recovered too little for a rate to exist above -99.99%;
// both report a nil IRR, not an error. Anything else the solver reports is
// a real failure.
func sideIRR(flows domain.CashFlowSeries) (*decimal.Decimal, error) {
	if !flows.HasSignChange() {
		return nil, nil
	}
	rate, err := finance.SolveIRR(flows)
	if err != nil {
		var noRoot *finance.NoSolutionError
		if errors.As(err, &noRoot) && noRoot.RootBelowBracket() {
			return nil, nil
		}
		return nil, err
	}
	pct := domain.RateToPercent(rate)
	return &pct, nil
}

// equityMultiple is total distributions over invested capital. A side with
// no capital at risk has no meaningful multiple and reports zero.
func equityMultiple(total, initial decimal.Decimal) decimal.Decimal {
	if initial.IsZero() {
		return decimal.Zero
	}
	return total.Div(initial.Abs())
}
