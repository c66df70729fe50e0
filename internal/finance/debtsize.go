package finance

import (
	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/shopspring/decimal"
)

var minDSCR = decimal.NewFromInt(1)

// SizeDebt computes the largest loan a property's net operating income can
// support at the target debt service coverage ratio:
//
//	maxAnnualDebtService = noi / dscrTarget
//	maxLoan              = maxAnnualDebtService / mortgageConstant
//
// The rate is the fractional annual rate. A DSCR below 1.0 would size debt
// the income cannot cover and is rejected rather than adjusted.
func SizeDebt(noi, annualRate, dscrTarget decimal.Decimal, amortizationYears int) (*domain.DebtSizingResult, error) {
	if !noi.IsPositive() {
		return nil, domain.NewInvalidInput("size_debt", "noi",
			"net operating income must be positive, got "+noi.String())
	}
	if dscrTarget.LessThan(minDSCR) {
		return nil, domain.NewInvalidInput("size_debt", "dscr_target",
			"coverage ratio must be at least 1.0, got "+dscrTarget.String())
	}

	constant, err := MortgageConstant(annualRate, amortizationYears)
	if err != nil {
		return nil, err
	}

	maxAnnualDS := noi.Div(dscrTarget)
	maxLoan := maxAnnualDS.Div(constant)

	monthlyPayment, err := PeriodicPayment(maxLoan, annualRate, amortizationYears, domain.DefaultPeriodsPerYear)
	if err != nil {
		return nil, err
	}

	return &domain.DebtSizingResult{
		MaxLoanAmount:        maxLoan,
		MortgageConstant:     constant,
		MaxAnnualDebtService: maxAnnualDS,
		MonthlyPayment:       monthlyPayment,
		AnnualPayment:        monthlyPayment.Mul(decimal.NewFromInt(domain.DefaultPeriodsPerYear)),
	}, nil
}
