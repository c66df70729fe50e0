package tiers

import (
	"errors"

	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/LaxBloxBoy2/crego/internal/finance"
)

// TrailingIRRStrategy: tier from the deal's IRR through the current period.
// Early periods where the trailing series has no positive flow yet, or has
// recovered so little that its return sits below the solver's bracket
// floor, have no usable rate; those periods sit on the lowest rung until
// returns accrue.
type TrailingIRRStrategy struct{}

func NewTrailingIRRStrategy() *TrailingIRRStrategy { return &TrailingIRRStrategy{} }

func (s *TrailingIRRStrategy) Name() string { return "trailing_irr" }

func (s *TrailingIRRStrategy) SelectTier(tierList []domain.WaterfallTier, snap PeriodSnapshot) (Selection, error) {
	if !snap.TrailingFlows.HasSignChange() {
		tier, err := ResolveTier(tierList, lowestReference)
		if err != nil {
			return Selection{}, err
		}
		return Selection{Tier: tier}, nil
	}

	rate, err := finance.SolveIRR(snap.TrailingFlows)
	if err != nil {
		var noRoot *finance.NoSolutionError
		if errors.As(err, &noRoot) && noRoot.RootBelowBracket() {
			// Worse than -99.99%: deeper than any hurdle, lowest rung.
			tier, terr := ResolveTier(tierList, lowestReference)
			if terr != nil {
				return Selection{}, terr
			}
			return Selection{Tier: tier}, nil
		}
		return Selection{}, err
	}

	referencePct := domain.RateToPercent(rate)
	tier, err := ResolveTier(tierList, referencePct)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Tier: tier, ReferencePct: &referencePct}, nil
}
