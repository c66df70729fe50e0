package transform

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/LaxBloxBoy2/crego/internal/domain"
)

// SetExitCapRate sets the cap rate applied to final-year NOI at sale.
type SetExitCapRate struct {
	CapRatePct decimal.Decimal // The new exit cap rate, as a percentage
}

func (secr *SetExitCapRate) Name() string {
	return "set_exit_cap"
}

func (secr *SetExitCapRate) Description() string {
	return fmt.Sprintf("Exit at a %s%% cap rate", secr.CapRatePct.StringFixed(2))
}

func (secr *SetExitCapRate) Validate(base *domain.DealConfig) error {
	if base == nil {
		return NewTransformError(secr.Name(), "validate", "base deal cannot be nil", nil)
	}

	if base.TermSheet == nil {
		return NewTransformError(secr.Name(), "validate", "deal has no term sheet assumptions", nil)
	}

	if !secr.CapRatePct.IsPositive() {
		return NewTransformError(secr.Name(), "validate",
			fmt.Sprintf("cap rate must be positive, got %s", secr.CapRatePct.StringFixed(2)), nil)
	}

	return nil
}

func (secr *SetExitCapRate) Apply(base *domain.DealConfig) (*domain.DealConfig, error) {
	modified := base.DeepCopy()
	modified.TermSheet.ExitCapRatePct = secr.CapRatePct
	return modified, nil
}

// AdjustExitCapRate moves the exit cap rate by a signed number of points.
// Expansion (positive delta) lowers the sale price; compression raises it.
type AdjustExitCapRate struct {
	DeltaPct decimal.Decimal // Points to add to the cap rate
}

func (aecr *AdjustExitCapRate) Name() string {
	return "adjust_exit_cap"
}

func (aecr *AdjustExitCapRate) Description() string {
	if aecr.DeltaPct.IsNegative() {
		return fmt.Sprintf("Compress the exit cap rate by %s points", aecr.DeltaPct.Abs().StringFixed(2))
	}
	return fmt.Sprintf("Expand the exit cap rate by %s points", aecr.DeltaPct.StringFixed(2))
}

func (aecr *AdjustExitCapRate) Validate(base *domain.DealConfig) error {
	if base == nil {
		return NewTransformError(aecr.Name(), "validate", "base deal cannot be nil", nil)
	}

	if base.TermSheet == nil {
		return NewTransformError(aecr.Name(), "validate", "deal has no term sheet assumptions", nil)
	}

	newCap := base.TermSheet.ExitCapRatePct.Add(aecr.DeltaPct)
	if !newCap.IsPositive() {
		return NewTransformError(aecr.Name(), "validate",
			fmt.Sprintf("adjustment would push the cap rate to %s", newCap.StringFixed(2)), nil)
	}

	return nil
}

func (aecr *AdjustExitCapRate) Apply(base *domain.DealConfig) (*domain.DealConfig, error) {
	modified := base.DeepCopy()
	modified.TermSheet.ExitCapRatePct = modified.TermSheet.ExitCapRatePct.Add(aecr.DeltaPct)
	return modified, nil
}

// SetHoldPeriod changes how many years the deal is held before sale.
type SetHoldPeriod struct {
	Years int // The new hold period (positive integer)
}

func (shp *SetHoldPeriod) Name() string {
	return "set_hold"
}

func (shp *SetHoldPeriod) Description() string {
	return fmt.Sprintf("Hold the deal for %d years", shp.Years)
}

func (shp *SetHoldPeriod) Validate(base *domain.DealConfig) error {
	if base == nil {
		return NewTransformError(shp.Name(), "validate", "base deal cannot be nil", nil)
	}

	if base.TermSheet == nil {
		return NewTransformError(shp.Name(), "validate", "deal has no term sheet assumptions", nil)
	}

	if shp.Years < 1 {
		return NewTransformError(shp.Name(), "validate",
			fmt.Sprintf("years must be at least 1, got %d", shp.Years), nil)
	}

	return nil
}

func (shp *SetHoldPeriod) Apply(base *domain.DealConfig) (*domain.DealConfig, error) {
	modified := base.DeepCopy()
	modified.TermSheet.TermYears = shp.Years
	return modified, nil
}
