package domain

import "github.com/shopspring/decimal"

// DefaultNOIGrowthPct is the annual net operating income growth assumed when
// a term sheet does not specify one.
var DefaultNOIGrowthPct = decimal.NewFromInt(3)

// TermSheetInput represents the assumptions a term sheet projection runs on.
// All rates are boundary percentages (0-100).
type TermSheetInput struct {
	DealName           string           `yaml:"deal_name" json:"deal_name"`
	Loan               LoanTerms        `yaml:"loan" json:"loan"`
	EquityInvestment   decimal.Decimal  `yaml:"equity_investment" json:"equity_investment"`
	EquitySplit        EquitySplit      `yaml:"equity_split,omitempty" json:"equity_split,omitempty"`
	PreferredReturnPct decimal.Decimal  `yaml:"preferred_return_pct" json:"preferred_return_pct"`
	Structure          PromoteStructure `yaml:"structure" json:"structure"`
	TermYears          int              `yaml:"term_years" json:"term_years"`
	InitialNOI         decimal.Decimal  `yaml:"initial_noi" json:"initial_noi"`
	NOIGrowthPct       *decimal.Decimal `yaml:"noi_growth_pct,omitempty" json:"noi_growth_pct,omitempty"`
	ExitCapRatePct     decimal.Decimal  `yaml:"exit_cap_rate_pct" json:"exit_cap_rate_pct"`
}

// GrowthPct returns the configured NOI growth or the 3% default.
func (in TermSheetInput) GrowthPct() decimal.Decimal {
	if in.NOIGrowthPct == nil {
		return DefaultNOIGrowthPct
	}
	return *in.NOIGrowthPct
}

// Split returns the configured equity split or the documented 50/50 default.
func (in TermSheetInput) Split() EquitySplit {
	if in.EquitySplit.IsZero() {
		return DefaultEquitySplit()
	}
	return in.EquitySplit
}

// Validate checks the projection preconditions.
func (in TermSheetInput) Validate() error {
	if err := in.Loan.Validate(); err != nil {
		return err
	}
	if !in.EquityInvestment.IsPositive() {
		return NewInvalidInput("validate_term_sheet", "equity_investment", "equity investment must be positive")
	}
	if in.PreferredReturnPct.IsNegative() {
		return NewInvalidInput("validate_term_sheet", "preferred_return_pct", "preferred return must not be negative")
	}
	if err := in.Structure.Validate(); err != nil {
		return err
	}
	if in.TermYears <= 0 {
		return NewInvalidInput("validate_term_sheet", "term_years", "term must be at least one year")
	}
	if !in.InitialNOI.IsPositive() {
		return NewInvalidInput("validate_term_sheet", "initial_noi", "initial NOI must be positive")
	}
	if in.NOIGrowthPct != nil && in.NOIGrowthPct.IsNegative() {
		return NewInvalidInput("validate_term_sheet", "noi_growth_pct", "NOI growth must not be negative")
	}
	if !in.ExitCapRatePct.IsPositive() {
		return NewInvalidInput("validate_term_sheet", "exit_cap_rate_pct", "exit cap rate must be positive")
	}
	if !in.EquitySplit.IsZero() {
		if err := in.EquitySplit.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TermSheetYear represents one projected year of deal operations. The tier
// for the year is chosen from the year's own cash yield on equity, not from
// any trailing return. NetSaleProceeds is zero except in the exit year.
type TermSheetYear struct {
	Year              int             `json:"year"`
	NOI               decimal.Decimal `json:"noi"`
	DebtService       decimal.Decimal `json:"debtService"`
	CashFlowAfterDebt decimal.Decimal `json:"cashFlowAfterDebt"`
	CashYieldPct      decimal.Decimal `json:"cashYieldPct"`
	PreferredPayment  decimal.Decimal `json:"preferredPayment"`
	ExcessCashFlow    decimal.Decimal `json:"excessCashFlow"`
	TierOrder         int             `json:"tierOrder"`
	NetSaleProceeds   decimal.Decimal `json:"netSaleProceeds"`
	GPDistribution    decimal.Decimal `json:"gpDistribution"`
	LPDistribution    decimal.Decimal `json:"lpDistribution"`
}

// TermSheetProjection bundles the year-by-year rows with the exit math and
// the per-side return summary.
type TermSheetProjection struct {
	DealName          string          `json:"dealName"`
	StructureName     string          `json:"structureName"`
	StrategyUsed      string          `json:"strategyUsed"`
	Years             []TermSheetYear `json:"years"`
	SaleProceeds      decimal.Decimal `json:"saleProceeds"`
	LoanBalanceAtExit decimal.Decimal `json:"loanBalanceAtExit"`
	NetSaleProceeds   decimal.Decimal `json:"netSaleProceeds"`
	Summary           ReturnsSummary  `json:"summary"`
}
