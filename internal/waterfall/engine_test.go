package waterfall

import (
	"errors"
	"testing"

	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/LaxBloxBoy2/crego/internal/tiers"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	assert.NotNil(t, engine.Strategy, "Should initialize a selection strategy")
	assert.Equal(t, "trailing_irr", engine.Strategy.Name(), "Should default to trailing IRR selection")
}

func TestEngine_Run_SingleTierSplitsEveryPeriod(t *testing.T) {
	engine := NewEngine()
	structure := singleTierStructure()
	flows := seriesFromFloats(-1000000, 250000, 250000, 250000, 250000, 1250000)

	result, err := engine.Run(structure, flows, domain.EquitySplit{})

	require.NoError(t, err, "Should run a single-tier waterfall")
	require.Len(t, result.Distributions, 5, "Should produce one row per period")

	twenty := decimal.NewFromInt(20)
	eighty := decimal.NewFromInt(80)
	for _, dist := range result.Distributions {
		assert.Equal(t, 1, dist.TierOrder, "Period %d should use the only tier", dist.Period)
		assert.True(t, dist.GPPercentUsed.Equal(twenty), "Period %d should split 20 to GP", dist.Period)
		assert.True(t, dist.LPPercentUsed.Equal(eighty), "Period %d should split 80 to LP", dist.Period)

		wantGP := dist.TotalCashFlow.Mul(twenty).Div(domain.Hundred)
		assert.True(t, dist.GPAmount.Equal(wantGP),
			"Period %d GP amount should be exactly 20 percent, got %s", dist.Period, dist.GPAmount)
	}

	assert.True(t, result.Summary.TotalDistributed.Equal(decimal.NewFromInt(2250000)),
		"Should distribute every positive flow, got %s", result.Summary.TotalDistributed)
	assert.True(t, result.Summary.TotalGP.Equal(decimal.NewFromInt(450000)),
		"GP should take 20 percent of the total, got %s", result.Summary.TotalGP)
}

func TestEngine_Run_ConservesCashEveryPeriod(t *testing.T) {
	engine := NewEngine()
	structure := threeTierStructure()
	flows := seriesFromFloats(-1000000, 83333.33, 0, 151200.55, 97014.25, 1733906.17)

	result, err := engine.Run(structure, flows, domain.EquitySplit{})

	require.NoError(t, err, "Should run the waterfall")
	require.Len(t, result.Distributions, 5, "Should produce one row per period")

	distributed := decimal.Zero
	for _, dist := range result.Distributions {
		sum := dist.GPAmount.Add(dist.LPAmount)
		assert.True(t, sum.Equal(dist.TotalCashFlow),
			"Period %d sides must sum to the period flow: %s + %s != %s",
			dist.Period, dist.GPAmount, dist.LPAmount, dist.TotalCashFlow)
		distributed = distributed.Add(dist.TotalCashFlow)
	}

	last := result.Distributions[len(result.Distributions)-1]
	assert.True(t, last.CumulativeGP.Add(last.CumulativeLP).Equal(distributed),
		"Cumulative totals must account for every distributed dollar")
	assert.True(t, result.Summary.TotalDistributed.Equal(distributed),
		"Summary total must match the sum of period flows")
}

func TestEngine_Run_ZeroFlowPeriodsStillGetRows(t *testing.T) {
	engine := NewEngine()
	structure := threeTierStructure()
	flows := seriesFromFloats(-1000000, 0, 0, 2500000)

	result, err := engine.Run(structure, flows, domain.EquitySplit{})

	require.NoError(t, err, "Should run with zero-flow periods")
	require.Len(t, result.Distributions, 3, "Zero-flow periods still appear in the output")

	for _, dist := range result.Distributions[:2] {
		assert.True(t, dist.GPAmount.IsZero(), "Period %d should distribute nothing to GP", dist.Period)
		assert.True(t, dist.LPAmount.IsZero(), "Period %d should distribute nothing to LP", dist.Period)
		assert.Nil(t, dist.ReferenceIRRPct, "Period %d has no trailing return yet", dist.Period)
		assert.Equal(t, 1, dist.TierOrder, "Period %d should sit in the lowest tier", dist.Period)
	}

	exit := result.Distributions[2]
	require.NotNil(t, exit.ReferenceIRRPct, "Exit period should carry a trailing IRR")
	// (-1M, 0, 0, 2.5M) returns 2.5x over three periods, about 35.7 percent.
	irr, _ := exit.ReferenceIRRPct.Float64()
	assert.InDelta(t, 35.72, irr, 0.01, "Exit trailing IRR should be about 35.72 percent")
	assert.Equal(t, 3, exit.TierOrder, "Exit period should clear the top hurdle")
}

func TestEngine_Run_TokenEarlyFlowDoesNotAbortRun(t *testing.T) {
	engine := NewEngine()
	structure := singleTierStructure()
	// Period 1 returns 50 on a million: the trailing window has a sign
	// change but its rate sits below the solver bracket. The run must
	// carry on with the lowest tier, not fail the deal.
	flows := seriesFromFloats(-1000000, 50, 0, 2000000)

	result, err := engine.Run(structure, flows, domain.EquitySplit{})

	require.NoError(t, err, "A token early distribution must not abort the run")
	require.Len(t, result.Distributions, 3, "Should produce one row per period")

	first := result.Distributions[0]
	assert.Equal(t, 1, first.TierOrder, "Deeply negative trailing return sits on the lowest tier")
	assert.Nil(t, first.ReferenceIRRPct, "No rate exists above the solver floor yet")
	assert.True(t, first.GPAmount.Equal(decimal.NewFromInt(10)),
		"Period 1 should still split 20/80, got GP %s", first.GPAmount)

	exit := result.Distributions[2]
	require.NotNil(t, exit.ReferenceIRRPct, "Exit period trailing return is solvable")
	assert.True(t, exit.ReferenceIRRPct.IsPositive(), "Doubling the money is a positive trailing return")
}

func TestEngine_Run_NearTotalLossSideHasNoIRR(t *testing.T) {
	engine := NewEngine()
	structure := singleTierStructure()
	// 50 recovered on a million in the only period: both side series sit
	// below the solver bracket. The run completes; neither side reports
	// a rate, multiples still compute.
	flows := seriesFromFloats(-1000000, 50)

	result, err := engine.Run(structure, flows, domain.EquitySplit{})

	require.NoError(t, err, "A near-total loss is a result, not a failure")
	require.Len(t, result.Distributions, 1)

	summary := result.Summary
	assert.Nil(t, summary.GPIRRPct, "GP return is below the solvable floor, IRR stays unset")
	assert.Nil(t, summary.LPIRRPct, "LP return is below the solvable floor, IRR stays unset")
	assert.True(t, summary.TotalDistributed.Equal(decimal.NewFromInt(50)))
	assert.True(t, summary.GPEquityMultiple.Equal(decimal.NewFromFloat(0.00002)),
		"GP multiple is 10 over the 500k share, got %s", summary.GPEquityMultiple)
}

func TestEngine_Run_TierEscalatesWithTrailingReturn(t *testing.T) {
	engine := NewEngine()
	structure := threeTierStructure()
	flows := seriesFromFloats(-1000000, 60000, 60000, 60000, 1660000)

	result, err := engine.Run(structure, flows, domain.EquitySplit{})

	require.NoError(t, err, "Should run the waterfall")
	require.Len(t, result.Distributions, 4, "Should produce one row per period")

	first := result.Distributions[0]
	last := result.Distributions[3]
	assert.Equal(t, 1, first.TierOrder, "Early trailing returns are deeply negative, lowest tier applies")
	assert.Equal(t, 3, last.TierOrder, "Exit period trailing IRR clears the 15 percent hurdle")
	assert.Greater(t, last.TierOrder, first.TierOrder, "Tier should escalate as the deal returns capital")
}

func TestEngine_Run_CashYieldStrategySelection(t *testing.T) {
	engine := NewEngineWithOptions(tiers.NewCashYieldStrategy(), zerolog.Nop())
	structure := threeTierStructure()
	flows := seriesFromFloats(-1000000, 50000, 100000, 200000)

	result, err := engine.Run(structure, flows, domain.EquitySplit{})

	require.NoError(t, err, "Should run under cash-yield selection")
	assert.Equal(t, "cash_yield", result.StrategyUsed, "Result should name the rule that picked tiers")

	wantTiers := []int{1, 2, 3}
	for i, dist := range result.Distributions {
		assert.Equal(t, wantTiers[i], dist.TierOrder,
			"Period %d yield should land in tier %d", dist.Period, wantTiers[i])
	}
}

func TestEngine_Run_SummaryReturns(t *testing.T) {
	engine := NewEngine()
	structure := singleTierStructure()
	flows := seriesFromFloats(-1000000, 0, 0, 0, 0, 2000000)

	result, err := engine.Run(structure, flows, domain.EquitySplit{})

	require.NoError(t, err, "Should run the waterfall")

	summary := result.Summary
	assert.True(t, summary.GPEquityShare.Equal(decimal.NewFromInt(50)), "Zero split defaults to 50/50")
	assert.True(t, summary.LPEquityShare.Equal(decimal.NewFromInt(50)), "Zero split defaults to 50/50")

	// GP puts in 500k and takes out 400k; LP puts in 500k and takes out 1.6M.
	assert.True(t, summary.GPEquityMultiple.Equal(decimal.NewFromFloat(0.8)),
		"GP multiple should be 0.8, got %s", summary.GPEquityMultiple)
	assert.True(t, summary.LPEquityMultiple.Equal(decimal.NewFromFloat(3.2)),
		"LP multiple should be 3.2, got %s", summary.LPEquityMultiple)

	require.NotNil(t, summary.GPIRRPct, "GP received cash, IRR must be present")
	require.NotNil(t, summary.LPIRRPct, "LP received cash, IRR must be present")
	gpIRR, _ := summary.GPIRRPct.Float64()
	lpIRR, _ := summary.LPIRRPct.Float64()
	assert.InDelta(t, -4.3647, gpIRR, 0.01, "GP IRR is 0.8^(1/5)-1")
	assert.InDelta(t, 26.1915, lpIRR, 0.01, "LP IRR is 3.2^(1/5)-1")
}

func TestEngine_Run_CustomEquitySplit(t *testing.T) {
	engine := NewEngine()
	structure := singleTierStructure()
	flows := seriesFromFloats(-1000000, 0, 0, 0, 0, 2000000)
	split := domain.EquitySplit{GPPct: decimal.NewFromInt(10), LPPct: decimal.NewFromInt(90)}

	result, err := engine.Run(structure, flows, split)

	require.NoError(t, err, "Should run with an explicit split")
	assert.True(t, result.Summary.GPEquityShare.Equal(decimal.NewFromInt(10)), "Should carry the configured share")

	// GP invests 100k of the million and takes 20 percent of 2M.
	assert.True(t, result.Summary.GPEquityMultiple.Equal(decimal.NewFromInt(4)),
		"GP multiple should be 4.0, got %s", result.Summary.GPEquityMultiple)
}

func TestEngine_Run_SideWithoutDistributionsHasNoIRR(t *testing.T) {
	engine := NewEngine()
	structure := domain.PromoteStructure{
		Name: "all-to-lp",
		Tiers: []domain.WaterfallTier{
			{Order: 1, HurdlePct: decimal.Zero, GPSplitPct: decimal.Zero, LPSplitPct: decimal.NewFromInt(100)},
		},
	}
	flows := seriesFromFloats(-1000000, 400000, 400000, 400000)

	result, err := engine.Run(structure, flows, domain.EquitySplit{})

	require.NoError(t, err, "Should run with a zero GP split")
	assert.Nil(t, result.Summary.GPIRRPct, "GP never received cash, IRR stays unset")
	assert.NotNil(t, result.Summary.LPIRRPct, "LP return should be solved")
	assert.True(t, result.Summary.GPEquityMultiple.IsZero(), "GP multiple should be zero with no distributions")
	assert.True(t, result.Summary.TotalGP.IsZero(), "GP total should be zero")
}

func TestEngine_Run_RejectsEmptyTierList(t *testing.T) {
	engine := NewEngine()
	structure := domain.PromoteStructure{Name: "empty"}
	flows := seriesFromFloats(-1000000, 500000)

	result, err := engine.Run(structure, flows, domain.EquitySplit{})

	require.Error(t, err, "Should reject a structure with no tiers")
	assert.Nil(t, result, "Should not return a result")

	var invalidErr *domain.InvalidInputError
	require.True(t, errors.As(err, &invalidErr), "Should be an invalid input error")
	assert.Equal(t, "tiers", invalidErr.Field, "Should name the offending field")
}

func TestEngine_Run_RejectsBadSplitSum(t *testing.T) {
	engine := NewEngine()
	structure := domain.PromoteStructure{
		Name: "short-split",
		Tiers: []domain.WaterfallTier{
			{Order: 1, HurdlePct: decimal.Zero, GPSplitPct: decimal.NewFromInt(20), LPSplitPct: decimal.NewFromInt(70)},
		},
	}
	flows := seriesFromFloats(-1000000, 500000)

	_, err := engine.Run(structure, flows, domain.EquitySplit{})

	require.Error(t, err, "Should reject splits that do not sum to 100")
	var invalidErr *domain.InvalidInputError
	assert.True(t, errors.As(err, &invalidErr), "Should be an invalid input error")
}

func TestEngine_Run_RejectsZeroInitialInvestment(t *testing.T) {
	engine := NewEngine()
	flows := domain.CashFlowSeries{decimal.Zero, decimal.NewFromInt(100)}

	_, err := engine.Run(singleTierStructure(), flows, domain.EquitySplit{})

	require.Error(t, err, "Should reject a zero initial investment")
	var invalidErr *domain.InvalidInputError
	require.True(t, errors.As(err, &invalidErr), "Should be an invalid input error")
	assert.Equal(t, "cash_flows[0]", invalidErr.Field, "Should name the initial flow")
}

func TestEngine_Run_RejectsShortSeries(t *testing.T) {
	engine := NewEngine()
	flows := domain.CashFlowSeries{decimal.NewFromInt(-100)}

	_, err := engine.Run(singleTierStructure(), flows, domain.EquitySplit{})

	require.Error(t, err, "Should reject a series without periods")
	var invalidErr *domain.InvalidInputError
	assert.True(t, errors.As(err, &invalidErr), "Should be an invalid input error")
}

func TestEngine_Run_StrategyFailureNamesPeriod(t *testing.T) {
	engine := NewEngineWithOptions(failingStrategy{}, zerolog.Nop())
	flows := seriesFromFloats(-1000000, 500000, 500000)

	_, err := engine.Run(singleTierStructure(), flows, domain.EquitySplit{})

	require.Error(t, err, "Strategy failures must fail the run")
	assert.Contains(t, err.Error(), "period 1", "Error should name the failing period")
}

func TestEngine_Run_Idempotent(t *testing.T) {
	engine := NewEngine()
	structure := threeTierStructure()
	flows := seriesFromFloats(-1000000, 120000, 95000, 140000, 1500000)

	first, err := engine.Run(structure, flows, domain.EquitySplit{})
	require.NoError(t, err, "First run should succeed")
	second, err := engine.Run(structure, flows, domain.EquitySplit{})
	require.NoError(t, err, "Second run should succeed")

	assert.Equal(t, first, second, "Identical inputs must produce identical results")
}

func TestEngine_Run_DoesNotMutateInputs(t *testing.T) {
	engine := NewEngine()
	structure := domain.PromoteStructure{
		Name: "unsorted",
		Tiers: []domain.WaterfallTier{
			{Order: 2, HurdlePct: decimal.NewFromInt(15), GPSplitPct: decimal.NewFromInt(40), LPSplitPct: decimal.NewFromInt(60)},
			{Order: 1, HurdlePct: decimal.NewFromInt(8), GPSplitPct: decimal.NewFromInt(20), LPSplitPct: decimal.NewFromInt(80)},
		},
	}
	flows := seriesFromFloats(-1000000, 500000, 800000)

	_, err := engine.Run(structure, flows, domain.EquitySplit{})

	require.NoError(t, err, "Should run with unsorted tiers")
	assert.True(t, structure.Tiers[0].HurdlePct.Equal(decimal.NewFromInt(15)),
		"Caller's tier order must survive the run")
	assert.True(t, flows[0].Equal(decimal.NewFromInt(-1000000)),
		"Caller's flows must survive the run")
}

// failingStrategy is a selection stub for failure-path tests.
type failingStrategy struct{}

func (failingStrategy) Name() string { return "failing" }

func (failingStrategy) SelectTier([]domain.WaterfallTier, tiers.PeriodSnapshot) (tiers.Selection, error) {
	return tiers.Selection{}, errors.New("selection failed")
}

func singleTierStructure() domain.PromoteStructure {
	return domain.PromoteStructure{
		Name: "straight-split",
		Tiers: []domain.WaterfallTier{
			{Order: 1, HurdlePct: decimal.Zero, GPSplitPct: decimal.NewFromInt(20), LPSplitPct: decimal.NewFromInt(80)},
		},
	}
}

func threeTierStructure() domain.PromoteStructure {
	return domain.PromoteStructure{
		Name: "institutional-promote",
		Tiers: []domain.WaterfallTier{
			{Order: 1, HurdlePct: decimal.NewFromInt(8), GPSplitPct: decimal.NewFromInt(20), LPSplitPct: decimal.NewFromInt(80)},
			{Order: 2, HurdlePct: decimal.NewFromInt(12), GPSplitPct: decimal.NewFromInt(30), LPSplitPct: decimal.NewFromInt(70)},
			{Order: 3, HurdlePct: decimal.NewFromInt(15), GPSplitPct: decimal.NewFromInt(40), LPSplitPct: decimal.NewFromInt(60)},
		},
	}
}

func seriesFromFloats(values ...float64) domain.CashFlowSeries {
	flows := make(domain.CashFlowSeries, len(values))
	for i, v := range values {
		flows[i] = decimal.NewFromFloat(v)
	}
	return flows
}
