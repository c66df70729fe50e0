package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaterfallTier_Validate(t *testing.T) {
	testCases := []struct {
		desc    string
		tier    WaterfallTier
		wantErr bool
	}{
		{
			desc: "standard 80/20 tier",
			tier: WaterfallTier{
				Order:      1,
				HurdlePct:  decimal.NewFromInt(8),
				GPSplitPct: decimal.NewFromInt(20),
				LPSplitPct: decimal.NewFromInt(80),
			},
			wantErr: false,
		},
		{
			desc: "splits within tolerance",
			tier: WaterfallTier{
				HurdlePct:  decimal.NewFromInt(8),
				GPSplitPct: decimal.NewFromFloat(20.005),
				LPSplitPct: decimal.NewFromFloat(79.999),
			},
			wantErr: false,
		},
		{
			desc: "splits exceed 100",
			tier: WaterfallTier{
				HurdlePct:  decimal.NewFromInt(8),
				GPSplitPct: decimal.NewFromInt(30),
				LPSplitPct: decimal.NewFromInt(80),
			},
			wantErr: true,
		},
		{
			desc: "splits below 100",
			tier: WaterfallTier{
				HurdlePct:  decimal.NewFromInt(8),
				GPSplitPct: decimal.NewFromInt(10),
				LPSplitPct: decimal.NewFromInt(80),
			},
			wantErr: true,
		},
		{
			desc: "negative hurdle",
			tier: WaterfallTier{
				HurdlePct:  decimal.NewFromInt(-1),
				GPSplitPct: decimal.NewFromInt(20),
				LPSplitPct: decimal.NewFromInt(80),
			},
			wantErr: true,
		},
		{
			desc: "negative split",
			tier: WaterfallTier{
				HurdlePct:  decimal.NewFromInt(8),
				GPSplitPct: decimal.NewFromInt(-20),
				LPSplitPct: decimal.NewFromInt(120),
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			err := tc.tier.Validate()
			if tc.wantErr {
				require.Error(t, err, "Expected validation to fail")
				var invalidErr *InvalidInputError
				assert.ErrorAs(t, err, &invalidErr, "Should be an InvalidInputError")
			} else {
				assert.NoError(t, err, "Expected validation to pass")
			}
		})
	}
}

func TestPromoteStructure_SortedTiers(t *testing.T) {
	structure := PromoteStructure{
		Name: "Out of order",
		Tiers: []WaterfallTier{
			{Order: 1, HurdlePct: decimal.NewFromInt(15), GPSplitPct: decimal.NewFromInt(40), LPSplitPct: decimal.NewFromInt(60)},
			{Order: 2, HurdlePct: decimal.NewFromInt(8), GPSplitPct: decimal.NewFromInt(20), LPSplitPct: decimal.NewFromInt(80)},
			{Order: 3, HurdlePct: decimal.NewFromInt(12), GPSplitPct: decimal.NewFromInt(30), LPSplitPct: decimal.NewFromInt(70)},
		},
	}

	sorted := structure.SortedTiers()

	require.Len(t, sorted, 3)
	assert.True(t, sorted[0].HurdlePct.Equal(decimal.NewFromInt(8)), "Lowest hurdle should come first")
	assert.True(t, sorted[1].HurdlePct.Equal(decimal.NewFromInt(12)))
	assert.True(t, sorted[2].HurdlePct.Equal(decimal.NewFromInt(15)))

	// Order is renumbered to match the sorted position
	assert.Equal(t, 1, sorted[0].Order)
	assert.Equal(t, 2, sorted[1].Order)
	assert.Equal(t, 3, sorted[2].Order)

	// The original structure is untouched
	assert.True(t, structure.Tiers[0].HurdlePct.Equal(decimal.NewFromInt(15)),
		"SortedTiers must not mutate the structure")
}

func TestPromoteStructure_Validate(t *testing.T) {
	empty := PromoteStructure{Name: "Empty"}
	err := empty.Validate()
	require.Error(t, err, "Empty tier set must be rejected")

	var invalidErr *InvalidInputError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, "tiers", invalidErr.Field)

	valid := PromoteStructure{
		Name:  "Single tier",
		Tiers: []WaterfallTier{DefaultEvenSplitTier()},
	}
	assert.NoError(t, valid.Validate())
}

func TestDefaultEvenSplitTier(t *testing.T) {
	tier := DefaultEvenSplitTier()
	assert.NoError(t, tier.Validate())
	assert.True(t, tier.GPSplitPct.Equal(decimal.NewFromInt(50)))
	assert.True(t, tier.LPSplitPct.Equal(decimal.NewFromInt(50)))
	assert.True(t, tier.HurdlePct.IsZero())
}

func TestCashFlowSeries_Validate(t *testing.T) {
	testCases := []struct {
		desc    string
		flows   CashFlowSeries
		wantErr bool
	}{
		{
			desc:    "typical deal series",
			flows:   CashFlowSeries{decimal.NewFromInt(-1000000), decimal.NewFromInt(80000), decimal.NewFromInt(1200000)},
			wantErr: false,
		},
		{
			desc:    "single entry",
			flows:   CashFlowSeries{decimal.NewFromInt(-1000000)},
			wantErr: true,
		},
		{
			desc:    "empty series",
			flows:   CashFlowSeries{},
			wantErr: true,
		},
		{
			desc:    "positive initial flow",
			flows:   CashFlowSeries{decimal.NewFromInt(1000000), decimal.NewFromInt(80000)},
			wantErr: true,
		},
		{
			desc:    "zero initial flow is allowed",
			flows:   CashFlowSeries{decimal.Zero, decimal.NewFromInt(80000)},
			wantErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			err := tc.flows.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCashFlowSeries_HasSignChange(t *testing.T) {
	allNegative := CashFlowSeries{decimal.NewFromInt(-100), decimal.NewFromInt(-50)}
	assert.False(t, allNegative.HasSignChange())

	allPositive := CashFlowSeries{decimal.NewFromInt(100), decimal.NewFromInt(50)}
	assert.False(t, allPositive.HasSignChange())

	withZeros := CashFlowSeries{decimal.NewFromInt(-100), decimal.Zero, decimal.Zero}
	assert.False(t, withZeros.HasSignChange(), "Zeros are neither positive nor negative")

	mixed := CashFlowSeries{decimal.NewFromInt(-100), decimal.Zero, decimal.NewFromInt(150)}
	assert.True(t, mixed.HasSignChange())
}

func TestCashFlowSeries_Through(t *testing.T) {
	flows := CashFlowSeries{
		decimal.NewFromInt(-100),
		decimal.NewFromInt(10),
		decimal.NewFromInt(20),
		decimal.NewFromInt(30),
	}

	sub := flows.Through(2)
	require.Len(t, sub, 3)
	assert.True(t, sub[2].Equal(decimal.NewFromInt(20)))

	// Past the end clamps to the full series
	full := flows.Through(99)
	assert.Len(t, full, 4)

	// Mutating the sub-series leaves the parent alone
	sub[0] = decimal.NewFromInt(999)
	assert.True(t, flows[0].Equal(decimal.NewFromInt(-100)))
}

func TestLoanTerms(t *testing.T) {
	loan := LoanTerms{
		Principal:         decimal.NewFromInt(1000000),
		InterestRatePct:   decimal.NewFromInt(6),
		AmortizationYears: 30,
	}

	require.NoError(t, loan.Validate())
	assert.True(t, loan.AnnualRate().Equal(decimal.NewFromFloat(0.06)), "Rate converts from percent")
	assert.Equal(t, 12, loan.Periods(), "Unset frequency defaults to monthly")

	zeroYears := loan
	zeroYears.AmortizationYears = 0
	assert.Error(t, zeroYears.Validate())

	negativeRate := loan
	negativeRate.InterestRatePct = decimal.NewFromInt(-1)
	assert.Error(t, negativeRate.Validate())
}

func TestAmortizationSchedule_BalanceAfter(t *testing.T) {
	schedule := AmortizationSchedule{
		{Period: 1, Principal: decimal.NewFromInt(10), RemainingBalance: decimal.NewFromInt(90)},
		{Period: 2, Principal: decimal.NewFromInt(10), RemainingBalance: decimal.NewFromInt(80)},
	}

	assert.True(t, schedule.BalanceAfter(0).Equal(decimal.NewFromInt(100)), "Zero periods returns starting balance")
	assert.True(t, schedule.BalanceAfter(1).Equal(decimal.NewFromInt(90)))
	assert.True(t, schedule.BalanceAfter(2).Equal(decimal.NewFromInt(80)))
	assert.True(t, schedule.BalanceAfter(50).Equal(decimal.NewFromInt(80)), "Past the end clamps to final balance")
}

func TestEquitySplit(t *testing.T) {
	def := DefaultEquitySplit()
	assert.NoError(t, def.Validate())
	assert.True(t, def.GPPct.Equal(decimal.NewFromInt(50)))

	uneven := EquitySplit{GPPct: decimal.NewFromInt(10), LPPct: decimal.NewFromInt(90)}
	assert.NoError(t, uneven.Validate())

	broken := EquitySplit{GPPct: decimal.NewFromInt(10), LPPct: decimal.NewFromInt(80)}
	assert.Error(t, broken.Validate())

	assert.True(t, EquitySplit{}.IsZero())
	assert.False(t, uneven.IsZero())
}

func TestTermSheetInput_Defaults(t *testing.T) {
	input := TermSheetInput{}
	assert.True(t, input.GrowthPct().Equal(decimal.NewFromInt(3)), "NOI growth defaults to 3%")
	assert.True(t, input.Split().GPPct.Equal(decimal.NewFromInt(50)), "Equity split defaults to 50/50")

	custom := decimal.NewFromInt(5)
	input.NOIGrowthPct = &custom
	assert.True(t, input.GrowthPct().Equal(custom))
}

func TestTermSheetInput_Validate(t *testing.T) {
	valid := TermSheetInput{
		DealName: "Maple Street Office",
		Loan: LoanTerms{
			Principal:         decimal.NewFromInt(2000000),
			InterestRatePct:   decimal.NewFromFloat(6.5),
			AmortizationYears: 30,
		},
		EquityInvestment:   decimal.NewFromInt(1000000),
		PreferredReturnPct: decimal.NewFromInt(8),
		Structure: PromoteStructure{
			Name:  "Standard",
			Tiers: []WaterfallTier{DefaultEvenSplitTier()},
		},
		TermYears:      5,
		InitialNOI:     decimal.NewFromInt(300000),
		ExitCapRatePct: decimal.NewFromFloat(5.5),
	}
	require.NoError(t, valid.Validate())

	noEquity := valid
	noEquity.EquityInvestment = decimal.Zero
	assert.Error(t, noEquity.Validate())

	noTerm := valid
	noTerm.TermYears = 0
	assert.Error(t, noTerm.Validate())

	noCap := valid
	noCap.ExitCapRatePct = decimal.Zero
	assert.Error(t, noCap.Validate())

	noTiers := valid
	noTiers.Structure = PromoteStructure{Name: "Empty"}
	assert.Error(t, noTiers.Validate())
}

func TestDealConfig_StructureByName(t *testing.T) {
	deal := DealConfig{
		DealName: "Riverfront Industrial",
		Structures: []PromoteStructure{
			{Name: "Standard", Tiers: []WaterfallTier{DefaultEvenSplitTier()}},
			{Name: "Aggressive", Tiers: []WaterfallTier{DefaultEvenSplitTier()}},
		},
	}

	first, err := deal.StructureByName("")
	require.NoError(t, err)
	assert.Equal(t, "Standard", first.Name, "Empty name selects the first structure")

	named, err := deal.StructureByName("Aggressive")
	require.NoError(t, err)
	assert.Equal(t, "Aggressive", named.Name)

	_, err = deal.StructureByName("Missing")
	assert.Error(t, err)

	empty := DealConfig{}
	_, err = empty.StructureByName("")
	assert.Error(t, err)
}

func TestDealConfig_BuildTermSheetInput(t *testing.T) {
	growth := decimal.NewFromInt(2)
	deal := DealConfig{
		DealName:           "Riverfront Industrial",
		Loan:               LoanTerms{Principal: decimal.NewFromInt(2000000), InterestRatePct: decimal.NewFromInt(6), AmortizationYears: 30},
		EquityInvestment:   decimal.NewFromInt(1000000),
		PreferredReturnPct: decimal.NewFromInt(8),
		TermSheet: &TermSheetAssumptions{
			TermYears:      7,
			InitialNOI:     decimal.NewFromInt(250000),
			NOIGrowthPct:   &growth,
			ExitCapRatePct: decimal.NewFromInt(6),
		},
	}
	structure := PromoteStructure{Name: "Standard", Tiers: []WaterfallTier{DefaultEvenSplitTier()}}

	input, err := deal.BuildTermSheetInput(structure)
	require.NoError(t, err)
	assert.Equal(t, "Riverfront Industrial", input.DealName)
	assert.Equal(t, 7, input.TermYears)
	assert.True(t, input.GrowthPct().Equal(growth))
	assert.Equal(t, "Standard", input.Structure.Name)

	deal.TermSheet = nil
	_, err = deal.BuildTermSheetInput(structure)
	assert.Error(t, err, "Missing term sheet assumptions must be rejected")
}

func TestPercentConversions(t *testing.T) {
	pct := decimal.NewFromFloat(6.5)
	rate := PercentToRate(pct)
	assert.True(t, rate.Equal(decimal.NewFromFloat(0.065)))
	assert.True(t, RateToPercent(rate).Equal(pct), "Round trip preserves the value")
}

func TestInvalidInputError_Error(t *testing.T) {
	withField := NewInvalidInput("size_debt", "dscr_target", "must be at least 1.0")
	assert.Equal(t, "size_debt: dscr_target: must be at least 1.0", withField.Error())

	withoutField := &InvalidInputError{Operation: "solve_irr", Message: "no flows"}
	assert.Equal(t, "solve_irr: no flows", withoutField.Error())
}
