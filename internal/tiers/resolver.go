package tiers

import (
	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/shopspring/decimal"
)

// lowestReference scans below every legal hurdle (hurdles are non-negative),
// so resolving with it always lands on the first rung.
var lowestReference = decimal.NewFromInt(-1)

// ResolveTier picks the tier that governs a period given the reference rate
// in percent: the first tier, in ascending hurdle order, whose hurdle is at
// or above the reference. A reference above every hurdle lands on the last
// tier. The input order is never trusted; the ladder is re-sorted here.
func ResolveTier(tierList []domain.WaterfallTier, referencePct decimal.Decimal) (domain.WaterfallTier, error) {
	if len(tierList) == 0 {
		return domain.WaterfallTier{}, domain.NewInvalidInput("resolve_tier", "tiers",
			"at least one tier is required")
	}

	sorted := domain.PromoteStructure{Tiers: tierList}.SortedTiers()
	for _, tier := range sorted {
		if tier.HurdlePct.GreaterThanOrEqual(referencePct) {
			return tier, nil
		}
	}
	return sorted[len(sorted)-1], nil
}
