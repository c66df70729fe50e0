package finance

import (
	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// PeriodicPayment computes the level payment that fully amortizes principal
// over amortizationYears at the given fractional annual rate, paying
// periodsPerYear times per year:
//
//	c = P · r(1+r)^n / ((1+r)^n − 1)
//
// where r is the periodic rate and n the total period count. A zero rate
// degenerates to straight-line repayment, principal / n.
func PeriodicPayment(principal, annualRate decimal.Decimal, amortizationYears, periodsPerYear int) (decimal.Decimal, error) {
	if principal.IsNegative() {
		return decimal.Zero, domain.NewInvalidInput("periodic_payment", "principal",
			"principal must not be negative, got "+principal.String())
	}
	if annualRate.IsNegative() {
		return decimal.Zero, domain.NewInvalidInput("periodic_payment", "annual_rate",
			"rate must not be negative, got "+annualRate.String())
	}
	if amortizationYears <= 0 {
		return decimal.Zero, domain.NewInvalidInput("periodic_payment", "amortization_years",
			"amortization years must be positive")
	}
	if periodsPerYear <= 0 {
		return decimal.Zero, domain.NewInvalidInput("periodic_payment", "periods_per_year",
			"periods per year must be positive")
	}

	n := int64(amortizationYears) * int64(periodsPerYear)
	if annualRate.IsZero() {
		return principal.Div(decimal.NewFromInt(n)), nil
	}

	periodicRate := annualRate.Div(decimal.NewFromInt(int64(periodsPerYear)))
	growth := one.Add(periodicRate).Pow(decimal.NewFromInt(n))
	payment := principal.Mul(periodicRate).Mul(growth).Div(growth.Sub(one))
	return payment, nil
}

// MortgageConstant returns the annual debt service per dollar of loan,
// assuming monthly amortization. Dividing a year's supportable debt service
// by this constant yields the supportable loan amount.
func MortgageConstant(annualRate decimal.Decimal, amortizationYears int) (decimal.Decimal, error) {
	monthly, err := PeriodicPayment(one, annualRate, amortizationYears, domain.DefaultPeriodsPerYear)
	if err != nil {
		return decimal.Zero, err
	}
	return monthly.Mul(decimal.NewFromInt(domain.DefaultPeriodsPerYear)), nil
}

// BuildSchedule produces the period-by-period paydown of a loan at the level
// payment from PeriodicPayment. Payments are kept at full precision so the
// final balance lands within rounding noise of zero.
func BuildSchedule(principal, annualRate decimal.Decimal, amortizationYears, periodsPerYear int) (domain.AmortizationSchedule, error) {
	payment, err := PeriodicPayment(principal, annualRate, amortizationYears, periodsPerYear)
	if err != nil {
		return nil, err
	}

	n := amortizationYears * periodsPerYear
	periodicRate := decimal.Zero
	if !annualRate.IsZero() {
		periodicRate = annualRate.Div(decimal.NewFromInt(int64(periodsPerYear)))
	}

	schedule := make(domain.AmortizationSchedule, 0, n)
	balance := principal
	for period := 1; period <= n; period++ {
		interest := balance.Mul(periodicRate)
		principalPart := payment.Sub(interest)
		balance = balance.Sub(principalPart)
		schedule = append(schedule, domain.AmortizationPeriod{
			Period:           period,
			Payment:          payment,
			Interest:         interest,
			Principal:        principalPart,
			RemainingBalance: balance,
		})
	}
	return schedule, nil
}

// AnnualDebtService returns one year of payments on the loan.
func AnnualDebtService(loan domain.LoanTerms) (decimal.Decimal, error) {
	payment, err := PeriodicPayment(loan.Principal, loan.AnnualRate(), loan.AmortizationYears, loan.Periods())
	if err != nil {
		return decimal.Zero, err
	}
	return payment.Mul(decimal.NewFromInt(int64(loan.Periods()))), nil
}
