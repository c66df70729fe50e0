package transform

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/LaxBloxBoy2/crego/internal/domain"
)

// SetPreferredReturn sets the LP preferred return hurdle.
type SetPreferredReturn struct {
	RatePct decimal.Decimal // The new preferred return, as a percentage
}

func (spr *SetPreferredReturn) Name() string {
	return "set_pref"
}

func (spr *SetPreferredReturn) Description() string {
	if spr.RatePct.IsZero() {
		return "Remove the preferred return"
	}
	return fmt.Sprintf("Pay a %s%% preferred return", spr.RatePct.StringFixed(2))
}

func (spr *SetPreferredReturn) Validate(base *domain.DealConfig) error {
	if base == nil {
		return NewTransformError(spr.Name(), "validate", "base deal cannot be nil", nil)
	}

	if spr.RatePct.IsNegative() {
		return NewTransformError(spr.Name(), "validate",
			fmt.Sprintf("rate must not be negative, got %s", spr.RatePct.StringFixed(2)), nil)
	}

	return nil
}

func (spr *SetPreferredReturn) Apply(base *domain.DealConfig) (*domain.DealConfig, error) {
	modified := base.DeepCopy()
	modified.PreferredReturnPct = spr.RatePct
	return modified, nil
}

// SetEquitySplit replaces the GP/LP equity contribution split.
type SetEquitySplit struct {
	GPPct decimal.Decimal
	LPPct decimal.Decimal
}

func (ses *SetEquitySplit) Name() string {
	return "set_equity_split"
}

func (ses *SetEquitySplit) Description() string {
	return fmt.Sprintf("Split equity %s/%s between GP and LP",
		ses.GPPct.StringFixed(0), ses.LPPct.StringFixed(0))
}

func (ses *SetEquitySplit) Validate(base *domain.DealConfig) error {
	if base == nil {
		return NewTransformError(ses.Name(), "validate", "base deal cannot be nil", nil)
	}

	split := domain.EquitySplit{GPPct: ses.GPPct, LPPct: ses.LPPct}
	if err := split.Validate(); err != nil {
		return NewTransformError(ses.Name(), "validate", "invalid split", err)
	}

	return nil
}

func (ses *SetEquitySplit) Apply(base *domain.DealConfig) (*domain.DealConfig, error) {
	modified := base.DeepCopy()
	modified.EquitySplit = domain.EquitySplit{GPPct: ses.GPPct, LPPct: ses.LPPct}
	return modified, nil
}
