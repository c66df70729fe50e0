package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LaxBloxBoy2/crego/internal/domain"
)

const sampleDealYAML = `
deal_name: "Maple Crossing Apartments"

loan:
  principal: 3000000
  interest_rate_pct: 6.5
  amortization_years: 30

equity_investment: 1000000
preferred_return_pct: 8

promote_structures:
  - name: "straight-split"
    tiers:
      - order: 1
        irr_hurdle_pct: 0
        gp_split_pct: 20
        lp_split_pct: 80
  - name: "senior-promote"
    tiers:
      - order: 1
        irr_hurdle_pct: 8
        gp_split_pct: 20
        lp_split_pct: 80
      - order: 2
        irr_hurdle_pct: 15
        gp_split_pct: 40
        lp_split_pct: 60

cash_flows: [-1000000, 250000, 250000, 250000, 1750000]

term_sheet:
  term_years: 5
  initial_noi: 400000
  noi_growth_pct: 3
  exit_cap_rate_pct: 5.5

debt_sizing:
  noi: 300000
  dscr_target: 1.25
`

func writeDealFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	config, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to read file", "Should have specific error message")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	path := writeDealFile(t, "deal_name: [unclosed")

	parser := NewInputParser()
	config, err := parser.LoadFromFile(path)

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to parse YAML", "Should have specific error message")
}

func TestInputParser_LoadFromFile_ValidDeal(t *testing.T) {
	path := writeDealFile(t, sampleDealYAML)

	parser := NewInputParser()
	config, err := parser.LoadFromFile(path)

	require.NoError(t, err, "Should load a valid deal file")
	require.NotNil(t, config)

	assert.Equal(t, "Maple Crossing Apartments", config.DealName)
	assert.True(t, config.Loan.Principal.Equal(decimal.NewFromInt(3000000)),
		"Loan principal should parse, got %s", config.Loan.Principal)
	assert.True(t, config.Loan.InterestRatePct.Equal(decimal.NewFromFloat(6.5)),
		"Interest rate should parse, got %s", config.Loan.InterestRatePct)
	assert.Equal(t, 30, config.Loan.AmortizationYears)
	assert.True(t, config.EquityInvestment.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, config.PreferredReturnPct.Equal(decimal.NewFromInt(8)))

	require.Len(t, config.Structures, 2, "Both promote structures should parse")
	assert.Equal(t, "straight-split", config.Structures[0].Name)
	require.Len(t, config.Structures[0].Tiers, 1)
	assert.True(t, config.Structures[0].Tiers[0].GPSplitPct.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "senior-promote", config.Structures[1].Name)
	require.Len(t, config.Structures[1].Tiers, 2)
	assert.True(t, config.Structures[1].Tiers[1].HurdlePct.Equal(decimal.NewFromInt(15)))

	require.Len(t, config.CashFlows, 5, "All cash flows should parse")
	assert.True(t, config.CashFlows[0].Equal(decimal.NewFromInt(-1000000)),
		"Initial flow should be negative, got %s", config.CashFlows[0])
	assert.True(t, config.CashFlows[4].Equal(decimal.NewFromInt(1750000)))

	require.NotNil(t, config.TermSheet, "Term sheet assumptions should parse")
	assert.Equal(t, 5, config.TermSheet.TermYears)
	assert.True(t, config.TermSheet.InitialNOI.Equal(decimal.NewFromInt(400000)))
	require.NotNil(t, config.TermSheet.NOIGrowthPct)
	assert.True(t, config.TermSheet.NOIGrowthPct.Equal(decimal.NewFromInt(3)))
	assert.True(t, config.TermSheet.ExitCapRatePct.Equal(decimal.NewFromFloat(5.5)))

	require.NotNil(t, config.DebtSizing, "Debt sizing assumptions should parse")
	assert.True(t, config.DebtSizing.DSCRTarget.Equal(decimal.NewFromFloat(1.25)))
}

func TestInputParser_LoadFromFile_ValidationFailure(t *testing.T) {
	// Parses as YAML but the only structure's tier splits sum to 90.
	badDeal := `
deal_name: "Broken Promote"
promote_structures:
  - name: "straight-split"
    tiers:
      - order: 1
        irr_hurdle_pct: 0
        gp_split_pct: 20
        lp_split_pct: 70
cash_flows: [-1000000, 1250000]
`
	path := writeDealFile(t, badDeal)

	parser := NewInputParser()
	config, err := parser.LoadFromFile(path)

	assert.Nil(t, config, "Should return nil config on validation failure")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deal validation failed")
	assert.Contains(t, err.Error(), "structure 0 (straight-split)")

	var invalid *domain.InvalidInputError
	assert.ErrorAs(t, err, &invalid, "Domain validation error should survive wrapping")
	assert.Equal(t, "gp_split_pct+lp_split_pct", invalid.Field)
}

func TestInputParser_LoadFromFile_TermSheetOnlyDeal(t *testing.T) {
	// No observed cash flows: term sheet assumptions alone make the deal usable.
	termSheetDeal := `
deal_name: "Forward Commitment"
loan:
  principal: 2000000
  interest_rate_pct: 6
  amortization_years: 25
equity_investment: 800000
preferred_return_pct: 7
promote_structures:
  - name: "straight-split"
    tiers:
      - order: 1
        irr_hurdle_pct: 0
        gp_split_pct: 20
        lp_split_pct: 80
term_sheet:
  term_years: 7
  initial_noi: 250000
  exit_cap_rate_pct: 6
`
	path := writeDealFile(t, termSheetDeal)

	parser := NewInputParser()
	config, err := parser.LoadFromFile(path)

	require.NoError(t, err, "A term-sheet-only deal should validate")
	assert.Empty(t, config.CashFlows)
	assert.Nil(t, config.TermSheet.NOIGrowthPct, "Unset growth should stay nil for the projector default")
}

func validDeal() *domain.DealConfig {
	growth := decimal.NewFromInt(3)
	return &domain.DealConfig{
		DealName: "Maple Crossing Apartments",
		Loan: domain.LoanTerms{
			Principal:         decimal.NewFromInt(3000000),
			InterestRatePct:   decimal.NewFromFloat(6.5),
			AmortizationYears: 30,
		},
		EquityInvestment:   decimal.NewFromInt(1000000),
		PreferredReturnPct: decimal.NewFromInt(8),
		Structures: []domain.PromoteStructure{
			{
				Name: "straight-split",
				Tiers: []domain.WaterfallTier{
					{Order: 1, HurdlePct: decimal.Zero, GPSplitPct: decimal.NewFromInt(20), LPSplitPct: decimal.NewFromInt(80)},
				},
			},
		},
		CashFlows: domain.CashFlowSeries{
			decimal.NewFromInt(-1000000),
			decimal.NewFromInt(250000),
			decimal.NewFromInt(1750000),
		},
		TermSheet: &domain.TermSheetAssumptions{
			TermYears:      5,
			InitialNOI:     decimal.NewFromInt(400000),
			NOIGrowthPct:   &growth,
			ExitCapRatePct: decimal.NewFromFloat(5.5),
		},
		DebtSizing: &domain.DebtSizingAssumptions{
			NOI:        decimal.NewFromInt(300000),
			DSCRTarget: decimal.NewFromFloat(1.25),
		},
	}
}

func TestInputParser_ValidateDeal_AcceptsValidDeal(t *testing.T) {
	parser := NewInputParser()
	assert.NoError(t, parser.ValidateDeal(validDeal()))
}

func TestInputParser_ValidateDeal_FileLevelRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.DealConfig)
		wantErr string
	}{
		{
			name:    "missing deal name",
			mutate:  func(dc *domain.DealConfig) { dc.DealName = "" },
			wantErr: "deal_name is required",
		},
		{
			name:    "no promote structures",
			mutate:  func(dc *domain.DealConfig) { dc.Structures = nil },
			wantErr: "at least one promote structure is required",
		},
		{
			name:    "unnamed structure",
			mutate:  func(dc *domain.DealConfig) { dc.Structures[0].Name = "" },
			wantErr: "structure 0: name is required",
		},
		{
			name: "duplicate structure names",
			mutate: func(dc *domain.DealConfig) {
				dc.Structures = append(dc.Structures, dc.Structures[0])
			},
			wantErr: "structure 1: duplicate name straight-split",
		},
		{
			name: "tier splits do not sum",
			mutate: func(dc *domain.DealConfig) {
				dc.Structures[0].Tiers[0].LPSplitPct = decimal.NewFromInt(70)
			},
			wantErr: "structure 0 (straight-split) validation failed",
		},
		{
			name: "nothing to analyze",
			mutate: func(dc *domain.DealConfig) {
				dc.CashFlows = nil
				dc.TermSheet = nil
			},
			wantErr: "deal needs cash_flows or term_sheet assumptions",
		},
		{
			name: "positive initial flow",
			mutate: func(dc *domain.DealConfig) {
				dc.CashFlows[0] = decimal.NewFromInt(1000000)
			},
			wantErr: "cash flow validation failed",
		},
		{
			name: "negative preferred return",
			mutate: func(dc *domain.DealConfig) {
				dc.PreferredReturnPct = decimal.NewFromInt(-8)
			},
			wantErr: "preferred_return_pct cannot be negative",
		},
		{
			name: "equity split does not sum",
			mutate: func(dc *domain.DealConfig) {
				dc.EquitySplit = domain.EquitySplit{
					GPPct: decimal.NewFromInt(60),
					LPPct: decimal.NewFromInt(60),
				}
			},
			wantErr: "equity split validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deal := validDeal()
			tt.mutate(deal)

			err := NewInputParser().ValidateDeal(deal)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInputParser_ValidateDeal_TermSheetRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.DealConfig)
		wantErr string
	}{
		{
			name: "bad loan",
			mutate: func(dc *domain.DealConfig) {
				dc.Loan.AmortizationYears = 0
				dc.DebtSizing = nil // isolate the term sheet check
			},
			wantErr: "loan validation failed",
		},
		{
			name: "zero equity investment",
			mutate: func(dc *domain.DealConfig) {
				dc.EquityInvestment = decimal.Zero
			},
			wantErr: "equity_investment must be positive",
		},
		{
			name: "zero term years",
			mutate: func(dc *domain.DealConfig) {
				dc.TermSheet.TermYears = 0
			},
			wantErr: "term_years must be at least 1",
		},
		{
			name: "zero initial NOI",
			mutate: func(dc *domain.DealConfig) {
				dc.TermSheet.InitialNOI = decimal.Zero
			},
			wantErr: "initial_noi must be positive",
		},
		{
			name: "negative NOI growth",
			mutate: func(dc *domain.DealConfig) {
				growth := decimal.NewFromInt(-2)
				dc.TermSheet.NOIGrowthPct = &growth
			},
			wantErr: "noi_growth_pct cannot be negative",
		},
		{
			name: "zero exit cap rate",
			mutate: func(dc *domain.DealConfig) {
				dc.TermSheet.ExitCapRatePct = decimal.Zero
			},
			wantErr: "exit_cap_rate_pct must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deal := validDeal()
			tt.mutate(deal)

			err := NewInputParser().ValidateDeal(deal)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "term sheet validation failed")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInputParser_ValidateDeal_DebtSizingRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.DealConfig)
		wantErr string
	}{
		{
			name: "zero NOI",
			mutate: func(dc *domain.DealConfig) {
				dc.DebtSizing.NOI = decimal.Zero
			},
			wantErr: "noi must be positive",
		},
		{
			name: "DSCR below one",
			mutate: func(dc *domain.DealConfig) {
				dc.DebtSizing.DSCRTarget = decimal.NewFromFloat(0.95)
			},
			wantErr: "dscr_target must be at least 1.0",
		},
		{
			name: "negative interest rate",
			mutate: func(dc *domain.DealConfig) {
				dc.Loan.InterestRatePct = decimal.NewFromInt(-1)
				dc.TermSheet = nil // isolate the debt sizing check
			},
			wantErr: "interest_rate_pct cannot be negative",
		},
		{
			name: "zero amortization years",
			mutate: func(dc *domain.DealConfig) {
				dc.Loan.AmortizationYears = 0
				dc.TermSheet = nil
			},
			wantErr: "amortization_years must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deal := validDeal()
			tt.mutate(deal)

			err := NewInputParser().ValidateDeal(deal)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "debt sizing validation failed")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
