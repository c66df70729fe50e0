package waterfall

import (
	"errors"
	"testing"

	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/LaxBloxBoy2/crego/internal/finance"
	"github.com/LaxBloxBoy2/crego/internal/tiers"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTermSheet(t *testing.T) {
	ts := NewTermSheet()

	assert.NotNil(t, ts.Strategy, "Should initialize a selection strategy")
	assert.Equal(t, "cash_yield", ts.Strategy.Name(), "Term sheets default to instantaneous cash yield")
}

func TestTermSheet_Project_YearPerTerm(t *testing.T) {
	ts := NewTermSheet()
	input := baseTermSheetInput()

	projection, err := ts.Project(input)

	require.NoError(t, err, "Should project the base deal")
	assert.Equal(t, "Maple Street Apartments", projection.DealName, "Should carry the deal name")
	assert.Equal(t, "institutional-promote", projection.StructureName, "Should carry the structure name")
	assert.Equal(t, "cash_yield", projection.StrategyUsed, "Should name the selection rule")
	require.Len(t, projection.Years, 5, "Should produce one row per year of the term")
	for i, year := range projection.Years {
		assert.Equal(t, i+1, year.Year, "Years should be numbered from one")
	}
}

func TestTermSheet_Project_NOIGrowsFromYearTwo(t *testing.T) {
	ts := NewTermSheet()
	input := baseTermSheetInput()

	projection, err := ts.Project(input)

	require.NoError(t, err, "Should project the base deal")
	years := projection.Years
	assert.True(t, years[0].NOI.Equal(decimal.NewFromInt(400000)),
		"Year 1 operates at the initial NOI, got %s", years[0].NOI)
	assert.True(t, years[1].NOI.Equal(decimal.NewFromInt(412000)),
		"Year 2 grows by the default 3 percent, got %s", years[1].NOI)
	// 400000 * 1.03^4
	assert.Equal(t, "450203.52", years[4].NOI.StringFixed(2), "Year 5 NOI compounds four growth steps")
}

func TestTermSheet_Project_FlatNOIWhenGrowthZero(t *testing.T) {
	ts := NewTermSheet()
	input := baseTermSheetInput()
	zero := decimal.Zero
	input.NOIGrowthPct = &zero

	projection, err := ts.Project(input)

	require.NoError(t, err, "Should project with zero growth")
	for _, year := range projection.Years {
		assert.True(t, year.NOI.Equal(decimal.NewFromInt(400000)),
			"Year %d NOI should stay flat, got %s", year.Year, year.NOI)
	}
}

func TestTermSheet_Project_LevelDebtService(t *testing.T) {
	ts := NewTermSheet()
	input := baseTermSheetInput()

	projection, err := ts.Project(input)

	require.NoError(t, err, "Should project the base deal")
	wantAnnual, err := finance.AnnualDebtService(input.Loan)
	require.NoError(t, err, "Debt service should be derivable from the loan terms")
	for _, year := range projection.Years {
		assert.True(t, year.DebtService.Equal(wantAnnual),
			"Year %d debt service should be level at %s, got %s", year.Year, wantAnnual, year.DebtService)
		assert.True(t, year.CashFlowAfterDebt.Equal(year.NOI.Sub(year.DebtService)),
			"Year %d operating cash flow must be NOI less debt service", year.Year)
	}
}

func TestTermSheet_Project_DebtServiceStopsAfterAmortization(t *testing.T) {
	ts := NewTermSheet()
	input := baseTermSheetInput()
	input.Loan.AmortizationYears = 3

	projection, err := ts.Project(input)

	require.NoError(t, err, "Should project past the amortization term")
	assert.False(t, projection.Years[2].DebtService.IsZero(), "Year 3 still owes payments")
	assert.True(t, projection.Years[3].DebtService.IsZero(), "Year 4 owes nothing once amortized")
	assert.True(t, projection.Years[4].DebtService.IsZero(), "Year 5 owes nothing once amortized")
	assert.True(t, projection.LoanBalanceAtExit.Abs().LessThan(decimal.NewFromFloat(0.01)),
		"A fully amortized loan leaves no exit balance, got %s", projection.LoanBalanceAtExit)
}

func TestTermSheet_Project_PreferredReturnPaidToLP(t *testing.T) {
	ts := NewTermSheet()
	input := baseTermSheetInput()

	projection, err := ts.Project(input)

	require.NoError(t, err, "Should project the base deal")
	prefDue := decimal.NewFromInt(80000) // 8 percent of 1M equity
	for _, year := range projection.Years {
		distributable := year.CashFlowAfterDebt.Add(year.NetSaleProceeds)
		require.True(t, distributable.GreaterThan(prefDue),
			"Base deal should cover the preferred in year %d", year.Year)

		assert.True(t, year.PreferredPayment.Equal(prefDue),
			"Year %d should pay the full preferred, got %s", year.Year, year.PreferredPayment)
		assert.True(t, year.ExcessCashFlow.Equal(distributable.Sub(prefDue)),
			"Year %d excess is what remains after the preferred", year.Year)
		assert.True(t, year.LPDistribution.GreaterThanOrEqual(year.PreferredPayment),
			"Year %d preferred belongs to the investor side", year.Year)
		assert.True(t, year.GPDistribution.Add(year.LPDistribution).Equal(distributable),
			"Year %d sides must sum to distributable cash", year.Year)
	}
}

func TestTermSheet_Project_PreferredShortfallTakesAllCash(t *testing.T) {
	ts := NewTermSheet()
	input := baseTermSheetInput()
	input.InitialNOI = decimal.NewFromInt(250000)
	input.TermYears = 2

	projection, err := ts.Project(input)

	require.NoError(t, err, "Should project a thin year")
	year := projection.Years[0]
	require.True(t, year.CashFlowAfterDebt.IsPositive(), "Year 1 should clear debt service")
	require.True(t, year.CashFlowAfterDebt.LessThan(decimal.NewFromInt(80000)),
		"Year 1 should not cover the preferred, got %s", year.CashFlowAfterDebt)

	assert.True(t, year.PreferredPayment.Equal(year.CashFlowAfterDebt),
		"Every distributable dollar goes to the preferred")
	assert.True(t, year.ExcessCashFlow.IsZero(), "Nothing remains for the promote")
	assert.True(t, year.GPDistribution.IsZero(), "GP takes nothing in a shortfall year")
	assert.True(t, year.LPDistribution.Equal(year.CashFlowAfterDebt),
		"LP receives the partial preferred")
}

func TestTermSheet_Project_NegativeYearDistributesNothing(t *testing.T) {
	ts := NewTermSheet()
	input := baseTermSheetInput()
	input.InitialNOI = decimal.NewFromInt(100000)
	input.TermYears = 2

	projection, err := ts.Project(input)

	require.NoError(t, err, "Operating shortfalls do not fail the projection")
	year := projection.Years[0]
	require.True(t, year.CashFlowAfterDebt.IsNegative(), "Year 1 should run a deficit")

	assert.True(t, year.PreferredPayment.IsZero(), "No cash means no preferred payment")
	assert.True(t, year.GPDistribution.IsZero(), "Deficits are not charged to the GP")
	assert.True(t, year.LPDistribution.IsZero(), "Deficits are not charged to the LP")
	assert.Equal(t, 1, year.TierOrder, "A negative yield sits in the lowest tier")
}

func TestTermSheet_Project_ExitYearMath(t *testing.T) {
	ts := NewTermSheet()
	input := baseTermSheetInput()

	projection, err := ts.Project(input)

	require.NoError(t, err, "Should project the base deal")
	years := projection.Years
	for _, year := range years[:4] {
		assert.True(t, year.NetSaleProceeds.IsZero(), "Year %d is not the exit year", year.Year)
	}

	exitNOI := years[4].NOI
	wantSale := exitNOI.Div(domain.PercentToRate(input.ExitCapRatePct))
	assert.True(t, projection.SaleProceeds.Equal(wantSale),
		"Sale proceeds are exit-year NOI over the cap rate, got %s", projection.SaleProceeds)

	assert.True(t, projection.LoanBalanceAtExit.IsPositive(), "A 30-year loan has balance left after 5 years")
	assert.True(t, projection.LoanBalanceAtExit.LessThan(input.Loan.Principal),
		"Five years of payments must reduce the balance")

	wantNet := projection.SaleProceeds.Sub(projection.LoanBalanceAtExit)
	assert.True(t, projection.NetSaleProceeds.Equal(wantNet),
		"Net proceeds are sale less the remaining balance")
	assert.True(t, years[4].NetSaleProceeds.Equal(wantNet),
		"The exit year row carries the net sale proceeds")
}

func TestTermSheet_Project_SelectionRulesDiverge(t *testing.T) {
	input := baseTermSheetInput()

	byYield, err := NewTermSheet().Project(input)
	require.NoError(t, err, "Cash-yield projection should succeed")

	byTrailing, err := NewTermSheetWithOptions(tiers.NewTrailingIRRStrategy(), zerolog.Nop()).Project(input)
	require.NoError(t, err, "Trailing-IRR projection should succeed")

	assert.Equal(t, "cash_yield", byYield.StrategyUsed, "Should name the yield rule")
	assert.Equal(t, "trailing_irr", byTrailing.StrategyUsed, "Should name the trailing rule")

	// Year 1 yields over 17 percent on equity, but the deal's trailing return
	// is still deeply negative: the two rules must pick different tiers.
	assert.NotEqual(t, byTrailing.Years[0].TierOrder, byYield.Years[0].TierOrder,
		"The two selection rules should disagree on an early year")
}

func TestTermSheet_Project_SummaryConservation(t *testing.T) {
	ts := NewTermSheet()
	input := baseTermSheetInput()

	projection, err := ts.Project(input)

	require.NoError(t, err, "Should project the base deal")
	distributed := decimal.Zero
	for _, year := range projection.Years {
		distributed = distributed.Add(year.GPDistribution).Add(year.LPDistribution)
	}

	summary := projection.Summary
	assert.True(t, summary.TotalDistributed.Equal(distributed),
		"Summary total must match the per-year distributions")
	assert.True(t, summary.TotalGP.Add(summary.TotalLP).Equal(distributed),
		"Side totals must account for every dollar")

	require.NotNil(t, summary.LPIRRPct, "LP received cash every year")
	require.NotNil(t, summary.GPIRRPct, "GP received promote cash")
	assert.True(t, summary.LPIRRPct.IsPositive(), "The base deal clears a positive LP return")
	assert.True(t, summary.LPEquityMultiple.GreaterThan(decimal.NewFromInt(1)),
		"LP should more than return capital, got %s", summary.LPEquityMultiple)
}

func TestTermSheet_Project_InvalidInputs(t *testing.T) {
	ts := NewTermSheet()

	tests := []struct {
		name      string
		mutate    func(*domain.TermSheetInput)
		wantField string
	}{
		{
			name:      "zero term",
			mutate:    func(in *domain.TermSheetInput) { in.TermYears = 0 },
			wantField: "term_years",
		},
		{
			name:      "zero equity",
			mutate:    func(in *domain.TermSheetInput) { in.EquityInvestment = decimal.Zero },
			wantField: "equity_investment",
		},
		{
			name:      "no tiers",
			mutate:    func(in *domain.TermSheetInput) { in.Structure = domain.PromoteStructure{Name: "empty"} },
			wantField: "tiers",
		},
		{
			name:      "zero exit cap",
			mutate:    func(in *domain.TermSheetInput) { in.ExitCapRatePct = decimal.Zero },
			wantField: "exit_cap_rate_pct",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := baseTermSheetInput()
			tt.mutate(&input)

			projection, err := ts.Project(input)

			require.Error(t, err, "Should reject the input")
			assert.Nil(t, projection, "Should not return a projection")

			var invalidErr *domain.InvalidInputError
			require.True(t, errors.As(err, &invalidErr), "Should be an invalid input error")
			assert.Equal(t, tt.wantField, invalidErr.Field, "Should name the offending field")
		})
	}
}

func baseTermSheetInput() domain.TermSheetInput {
	return domain.TermSheetInput{
		DealName: "Maple Street Apartments",
		Loan: domain.LoanTerms{
			Principal:         decimal.NewFromInt(3000000),
			InterestRatePct:   decimal.NewFromFloat(6.5),
			AmortizationYears: 30,
		},
		EquityInvestment:   decimal.NewFromInt(1000000),
		PreferredReturnPct: decimal.NewFromInt(8),
		Structure:          threeTierStructure(),
		TermYears:          5,
		InitialNOI:         decimal.NewFromInt(400000),
		ExitCapRatePct:     decimal.NewFromFloat(5.5),
	}
}
