package transform

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/LaxBloxBoy2/crego/internal/domain"
)

// AdjustInterestRate moves the loan rate by a signed number of percentage
// points. This is useful for exploring "rates move against us" scenarios.
type AdjustInterestRate struct {
	DeltaPct decimal.Decimal // Points to add to the rate; negative cuts it
}

func (air *AdjustInterestRate) Name() string {
	return "adjust_rate"
}

func (air *AdjustInterestRate) Description() string {
	if air.DeltaPct.IsNegative() {
		return fmt.Sprintf("Cut the loan rate by %s points", air.DeltaPct.Abs().StringFixed(2))
	}
	return fmt.Sprintf("Raise the loan rate by %s points", air.DeltaPct.StringFixed(2))
}

func (air *AdjustInterestRate) Validate(base *domain.DealConfig) error {
	if base == nil {
		return NewTransformError(air.Name(), "validate", "base deal cannot be nil", nil)
	}

	newRate := base.Loan.InterestRatePct.Add(air.DeltaPct)
	if newRate.IsNegative() {
		return NewTransformError(air.Name(), "validate",
			fmt.Sprintf("adjustment would push the rate to %s", newRate.StringFixed(2)), nil)
	}

	return nil
}

func (air *AdjustInterestRate) Apply(base *domain.DealConfig) (*domain.DealConfig, error) {
	modified := base.DeepCopy()
	modified.Loan.InterestRatePct = modified.Loan.InterestRatePct.Add(air.DeltaPct)
	return modified, nil
}

// SetInterestRate sets the loan rate to an absolute value. Unlike
// AdjustInterestRate which is relative, this sets an exact rate.
type SetInterestRate struct {
	RatePct decimal.Decimal // The new annual rate, as a percentage
}

func (sir *SetInterestRate) Name() string {
	return "set_rate"
}

func (sir *SetInterestRate) Description() string {
	return fmt.Sprintf("Set the loan rate to %s%%", sir.RatePct.StringFixed(2))
}

func (sir *SetInterestRate) Validate(base *domain.DealConfig) error {
	if base == nil {
		return NewTransformError(sir.Name(), "validate", "base deal cannot be nil", nil)
	}

	if sir.RatePct.IsNegative() {
		return NewTransformError(sir.Name(), "validate",
			fmt.Sprintf("rate must not be negative, got %s", sir.RatePct.StringFixed(2)), nil)
	}

	return nil
}

func (sir *SetInterestRate) Apply(base *domain.DealConfig) (*domain.DealConfig, error) {
	modified := base.DeepCopy()
	modified.Loan.InterestRatePct = sir.RatePct
	return modified, nil
}

// SetAmortization sets the loan's amortization schedule length in years.
type SetAmortization struct {
	Years int // The new amortization period (positive integer)
}

func (sa *SetAmortization) Name() string {
	return "set_amortization"
}

func (sa *SetAmortization) Description() string {
	return fmt.Sprintf("Amortize the loan over %d years", sa.Years)
}

func (sa *SetAmortization) Validate(base *domain.DealConfig) error {
	if base == nil {
		return NewTransformError(sa.Name(), "validate", "base deal cannot be nil", nil)
	}

	if sa.Years < 1 {
		return NewTransformError(sa.Name(), "validate",
			fmt.Sprintf("years must be at least 1, got %d", sa.Years), nil)
	}

	return nil
}

func (sa *SetAmortization) Apply(base *domain.DealConfig) (*domain.DealConfig, error) {
	modified := base.DeepCopy()
	modified.Loan.AmortizationYears = sa.Years
	return modified, nil
}
