package transform

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/LaxBloxBoy2/crego/internal/domain"
)

// SetNOIGrowth pins the term sheet's NOI growth assumption to an absolute
// annual percentage. Setting it to zero models flat operations.
type SetNOIGrowth struct {
	GrowthPct decimal.Decimal // The new annual growth rate, as a percentage
}

func (sng *SetNOIGrowth) Name() string {
	return "set_noi_growth"
}

func (sng *SetNOIGrowth) Description() string {
	if sng.GrowthPct.IsZero() {
		return "Hold NOI flat for the whole term"
	}
	return fmt.Sprintf("Grow NOI at %s%% per year", sng.GrowthPct.StringFixed(2))
}

func (sng *SetNOIGrowth) Validate(base *domain.DealConfig) error {
	if base == nil {
		return NewTransformError(sng.Name(), "validate", "base deal cannot be nil", nil)
	}

	if base.TermSheet == nil {
		return NewTransformError(sng.Name(), "validate", "deal has no term sheet assumptions", nil)
	}

	if sng.GrowthPct.IsNegative() {
		return NewTransformError(sng.Name(), "validate",
			fmt.Sprintf("growth must not be negative, got %s", sng.GrowthPct.StringFixed(2)), nil)
	}

	return nil
}

func (sng *SetNOIGrowth) Apply(base *domain.DealConfig) (*domain.DealConfig, error) {
	modified := base.DeepCopy()
	growth := sng.GrowthPct
	modified.TermSheet.NOIGrowthPct = &growth
	return modified, nil
}

// SetInitialNOI replaces the term sheet's first-year NOI.
type SetInitialNOI struct {
	NOI decimal.Decimal // The new first-year net operating income
}

func (sin *SetInitialNOI) Name() string {
	return "set_initial_noi"
}

func (sin *SetInitialNOI) Description() string {
	return fmt.Sprintf("Start the projection from $%s of NOI", sin.NOI.StringFixed(0))
}

func (sin *SetInitialNOI) Validate(base *domain.DealConfig) error {
	if base == nil {
		return NewTransformError(sin.Name(), "validate", "base deal cannot be nil", nil)
	}

	if base.TermSheet == nil {
		return NewTransformError(sin.Name(), "validate", "deal has no term sheet assumptions", nil)
	}

	if !sin.NOI.IsPositive() {
		return NewTransformError(sin.Name(), "validate",
			fmt.Sprintf("NOI must be positive, got %s", sin.NOI.StringFixed(2)), nil)
	}

	return nil
}

func (sin *SetInitialNOI) Apply(base *domain.DealConfig) (*domain.DealConfig, error) {
	modified := base.DeepCopy()
	modified.TermSheet.InitialNOI = sin.NOI
	return modified, nil
}
