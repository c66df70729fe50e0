package tiers

import (
	"github.com/LaxBloxBoy2/crego/internal/domain"
)

// Strategy names accepted by CreateStrategy.
const (
	StrategyTrailingIRR = "trailing_irr"
	StrategyCashYield   = "cash_yield"
)

// CreateStrategy builds a tier selection strategy by name. Unknown names
// are an error, not a fallback: the two rules produce different splits for
// the same deal, so the caller must say which one it means.
func CreateStrategy(name string) (SelectionStrategy, error) {
	switch name {
	case StrategyTrailingIRR:
		return NewTrailingIRRStrategy(), nil
	case StrategyCashYield:
		return NewCashYieldStrategy(), nil
	default:
		return nil, domain.NewInvalidInput("create_strategy", "strategy",
			"unknown tier selection strategy "+name)
	}
}
