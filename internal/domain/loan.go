package domain

import "github.com/shopspring/decimal"

// DefaultPeriodsPerYear is the payment frequency assumed when a loan does
// not specify one. Commercial mortgages pay monthly.
const DefaultPeriodsPerYear = 12

// LoanTerms represents the debt side of a deal as entered at the boundary:
// the rate is a 0-100 percentage, converted internally before any math.
type LoanTerms struct {
	Principal         decimal.Decimal `yaml:"principal" json:"principal"`
	InterestRatePct   decimal.Decimal `yaml:"interest_rate_pct" json:"interest_rate_pct"`
	AmortizationYears int             `yaml:"amortization_years" json:"amortization_years"`
	PeriodsPerYear    int             `yaml:"periods_per_year,omitempty" json:"periods_per_year,omitempty"`
}

// AnnualRate returns the fractional annual rate (0.065 for 6.5%).
func (lt LoanTerms) AnnualRate() decimal.Decimal {
	return PercentToRate(lt.InterestRatePct)
}

// Periods returns the configured payment frequency, defaulting to monthly.
func (lt LoanTerms) Periods() int {
	if lt.PeriodsPerYear <= 0 {
		return DefaultPeriodsPerYear
	}
	return lt.PeriodsPerYear
}

// Validate checks the loan's boundary constraints.
func (lt LoanTerms) Validate() error {
	if lt.Principal.IsNegative() {
		return NewInvalidInput("validate_loan", "principal", "principal must not be negative")
	}
	if lt.InterestRatePct.IsNegative() {
		return NewInvalidInput("validate_loan", "interest_rate_pct", "interest rate must not be negative")
	}
	if lt.AmortizationYears <= 0 {
		return NewInvalidInput("validate_loan", "amortization_years", "amortization years must be positive")
	}
	if lt.PeriodsPerYear < 0 {
		return NewInvalidInput("validate_loan", "periods_per_year", "periods per year must not be negative")
	}
	return nil
}

// DebtSizingResult represents the largest loan a net operating income can
// support at a target debt service coverage ratio.
type DebtSizingResult struct {
	MaxLoanAmount        decimal.Decimal `json:"maxLoanAmount"`
	MortgageConstant     decimal.Decimal `json:"mortgageConstant"`
	MaxAnnualDebtService decimal.Decimal `json:"maxAnnualDebtService"`
	MonthlyPayment       decimal.Decimal `json:"monthlyPayment"`
	AnnualPayment        decimal.Decimal `json:"annualPayment"`
}

// AmortizationPeriod represents one payment period of a loan schedule.
type AmortizationPeriod struct {
	Period           int             `json:"period"`
	Payment          decimal.Decimal `json:"payment"`
	Interest         decimal.Decimal `json:"interest"`
	Principal        decimal.Decimal `json:"principal"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// AmortizationSchedule represents the full period-by-period paydown of a loan.
type AmortizationSchedule []AmortizationPeriod

// BalanceAfter returns the remaining balance once period n has been paid.
// n of zero returns the schedule's starting balance, that is the original
// principal.
func (s AmortizationSchedule) BalanceAfter(n int) decimal.Decimal {
	if len(s) == 0 {
		return decimal.Zero
	}
	if n <= 0 {
		return s[0].RemainingBalance.Add(s[0].Principal)
	}
	if n > len(s) {
		n = len(s)
	}
	return s[n-1].RemainingBalance
}

// EquitySplit represents how the initial equity investment is shared between
// sponsor and investors when per-side returns are computed. The even split
// is a stated simplification, not observed capitalization; deals with a real
// capital table should configure their actual shares.
type EquitySplit struct {
	GPPct decimal.Decimal `yaml:"gp_pct" json:"gp_pct"`
	LPPct decimal.Decimal `yaml:"lp_pct" json:"lp_pct"`
}

// DefaultEquitySplit returns the documented 50/50 assumption.
func DefaultEquitySplit() EquitySplit {
	return EquitySplit{
		GPPct: decimal.NewFromInt(50),
		LPPct: decimal.NewFromInt(50),
	}
}

// Validate checks that the shares are sensible and sum to 100 within
// SplitTolerance.
func (es EquitySplit) Validate() error {
	if es.GPPct.IsNegative() || es.LPPct.IsNegative() {
		return NewInvalidInput("validate_equity_split", "gp_pct/lp_pct", "shares must not be negative")
	}
	sum := es.GPPct.Add(es.LPPct)
	if sum.Sub(Hundred).Abs().GreaterThan(SplitTolerance) {
		return NewInvalidInput("validate_equity_split", "gp_pct+lp_pct",
			"shares must sum to 100, got "+sum.String())
	}
	return nil
}

// IsZero reports whether the split is unset (both shares zero), which
// callers treat as "use DefaultEquitySplit".
func (es EquitySplit) IsZero() bool {
	return es.GPPct.IsZero() && es.LPPct.IsZero()
}
