package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SplitTolerance is the allowed deviation when a tier's GP and LP splits are
// checked against a 100% total.
var SplitTolerance = decimal.NewFromFloat(0.01)

// WaterfallTier represents one rung of a promote ladder. HurdlePct is the
// IRR hurdle in percent (8.0 means 8%); GPSplitPct and LPSplitPct are the
// sponsor/investor shares of cash distributed while this tier governs.
type WaterfallTier struct {
	Order      int             `yaml:"order" json:"order"`
	HurdlePct  decimal.Decimal `yaml:"irr_hurdle_pct" json:"irr_hurdle_pct"`
	GPSplitPct decimal.Decimal `yaml:"gp_split_pct" json:"gp_split_pct"`
	LPSplitPct decimal.Decimal `yaml:"lp_split_pct" json:"lp_split_pct"`
}

// Validate checks the tier's internal consistency: a non-negative hurdle,
// splits within [0, 100], and GP+LP summing to 100 within SplitTolerance.
func (t WaterfallTier) Validate() error {
	if t.HurdlePct.IsNegative() {
		return NewInvalidInput("validate_tier", "irr_hurdle_pct", "hurdle must not be negative")
	}
	for _, split := range []struct {
		field string
		value decimal.Decimal
	}{
		{"gp_split_pct", t.GPSplitPct},
		{"lp_split_pct", t.LPSplitPct},
	} {
		if split.value.IsNegative() || split.value.GreaterThan(Hundred) {
			return NewInvalidInput("validate_tier", split.field, "split must be between 0 and 100")
		}
	}
	sum := t.GPSplitPct.Add(t.LPSplitPct)
	if sum.Sub(Hundred).Abs().GreaterThan(SplitTolerance) {
		return NewInvalidInput("validate_tier", "gp_split_pct+lp_split_pct",
			"splits must sum to 100, got "+sum.String())
	}
	return nil
}

// DefaultEvenSplitTier returns the explicit 50/50, zero-hurdle tier callers
// may use when a deal genuinely has no promote ladder. The engine itself
// never substitutes it; an empty tier set is always rejected.
func DefaultEvenSplitTier() WaterfallTier {
	return WaterfallTier{
		Order:      1,
		HurdlePct:  decimal.Zero,
		GPSplitPct: decimal.NewFromInt(50),
		LPSplitPct: decimal.NewFromInt(50),
	}
}

// PromoteStructure represents a named waterfall: the ordered tier ladder a
// deal distributes through.
type PromoteStructure struct {
	Name  string          `yaml:"name" json:"name"`
	Tiers []WaterfallTier `yaml:"tiers" json:"tiers"`
}

// Validate checks that the structure has at least one tier and that every
// tier is itself valid.
func (ps PromoteStructure) Validate() error {
	if len(ps.Tiers) == 0 {
		return NewInvalidInput("validate_structure", "tiers", "at least one tier is required")
	}
	for _, tier := range ps.Tiers {
		if err := tier.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SortedTiers returns a defensive copy of the tiers ordered by ascending
// hurdle. Callers must not assume the configured order is usable as-is.
func (ps PromoteStructure) SortedTiers() []WaterfallTier {
	tiers := make([]WaterfallTier, len(ps.Tiers))
	copy(tiers, ps.Tiers)
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].HurdlePct.LessThan(tiers[j].HurdlePct)
	})
	for i := range tiers {
		tiers[i].Order = i + 1
	}
	return tiers
}

// DeepCopy returns an independent copy of the structure.
func (ps PromoteStructure) DeepCopy() PromoteStructure {
	tiers := make([]WaterfallTier, len(ps.Tiers))
	copy(tiers, ps.Tiers)
	return PromoteStructure{Name: ps.Name, Tiers: tiers}
}

// YearlyDistribution represents one period's split of project cash flow
// between sponsor and investors. A row exists for every period of the run,
// including periods with zero cash flow. ReferenceIRRPct is nil for periods
// before the trailing series has any positive flow (no rate exists yet).
type YearlyDistribution struct {
	Period          int              `json:"period"`
	TotalCashFlow   decimal.Decimal  `json:"totalCashFlow"`
	ReferenceIRRPct *decimal.Decimal `json:"referenceIrrPct,omitempty"`
	TierOrder       int              `json:"tierOrder"`
	GPPercentUsed   decimal.Decimal  `json:"gpPercentUsed"`
	LPPercentUsed   decimal.Decimal  `json:"lpPercentUsed"`
	GPAmount        decimal.Decimal  `json:"gpAmount"`
	LPAmount        decimal.Decimal  `json:"lpAmount"`
	CumulativeGP    decimal.Decimal  `json:"cumulativeGp"`
	CumulativeLP    decimal.Decimal  `json:"cumulativeLp"`
}

// ReturnsSummary provides deal-level return metrics for each side of the
// equity. IRR fields are nil when a side received no distributions at all,
// in which case no rate satisfies the NPV equation.
type ReturnsSummary struct {
	TotalDistributed decimal.Decimal  `json:"totalDistributed"`
	TotalGP          decimal.Decimal  `json:"totalGp"`
	TotalLP          decimal.Decimal  `json:"totalLp"`
	GPIRRPct         *decimal.Decimal `json:"gpIrrPct,omitempty"`
	LPIRRPct         *decimal.Decimal `json:"lpIrrPct,omitempty"`
	GPEquityMultiple decimal.Decimal  `json:"gpEquityMultiple"`
	LPEquityMultiple decimal.Decimal  `json:"lpEquityMultiple"`
	GPEquityShare    decimal.Decimal  `json:"gpEquityShare"`
	LPEquityShare    decimal.Decimal  `json:"lpEquityShare"`
}

// WaterfallResult bundles the per-period distribution rows with the summary
// metrics for one engine run.
type WaterfallResult struct {
	StructureName string               `json:"structureName"`
	StrategyUsed  string               `json:"strategyUsed"`
	Distributions []YearlyDistribution `json:"distributions"`
	Summary       ReturnsSummary       `json:"summary"`
}
