package breakeven

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/LaxBloxBoy2/crego/internal/waterfall"
)

// intervalEpsilon stops the bisection once the bracket is numerically flat.
var intervalEpsilon = decimal.New(1, -9)

// noReturnIRRPct stands in for a projection whose LP flows never turn
// positive. The position is a total loss there, which orders below any
// solvable target without aborting the search.
var noReturnIRRPct = decimal.NewFromInt(-100)

// Solver answers break-even questions by bisecting one deal assumption until
// the projected LP IRR lands on the requested target. LP IRR is monotonic in
// each solvable assumption over realistic bounds, so the solver evaluates the
// endpoints to learn the direction and then halves the bracket.
type Solver struct {
	Projector *waterfall.TermSheet
	Options   SolverOptions
	Logger    zerolog.Logger
}

// NewSolver creates a solver over the given projector.
func NewSolver(projector *waterfall.TermSheet, options SolverOptions) *Solver {
	return &Solver{Projector: projector, Options: options, Logger: zerolog.Nop()}
}

// NewDefaultSolver creates a solver over a default cash-yield projector with
// default convergence options.
func NewDefaultSolver() *Solver {
	return NewSolver(waterfall.NewTermSheet(), DefaultSolverOptions())
}

// Solve finds the value of the requested assumption at which the projection's
// LP IRR equals the target, to within the solver's tolerance. It returns a
// *BreakEvenError when the target is outside the range reachable inside the
// search bounds.
func (s *Solver) Solve(req Request) (*Result, error) {
	if !req.Target.Valid() {
		return nil, &BreakEvenError{
			Operation: "validate",
			Message:   fmt.Sprintf("unknown break-even target %q", req.Target),
		}
	}
	if err := req.Input.Validate(); err != nil {
		return nil, &BreakEvenError{Operation: "validate", Message: "invalid term sheet input", Cause: err}
	}

	base, err := targetValue(req.Input, req.Target)
	if err != nil {
		return nil, err
	}

	bounds := req.Bounds
	if bounds.IsZero() {
		bounds = defaultBounds(req.Target, base)
	}
	if !bounds.Max.GreaterThan(bounds.Min) {
		return nil, &BreakEvenError{
			Operation: "validate",
			Message:   fmt.Sprintf("bounds min %s must be below max %s", bounds.Min, bounds.Max),
		}
	}

	irrAtMin, _, err := s.projectAt(req, bounds.Min)
	if err != nil {
		return nil, err
	}
	irrAtMax, _, err := s.projectAt(req, bounds.Max)
	if err != nil {
		return nil, err
	}

	increasing := irrAtMax.GreaterThan(irrAtMin)
	reachLo, reachHi := irrAtMin, irrAtMax
	if reachLo.GreaterThan(reachHi) {
		reachLo, reachHi = reachHi, reachLo
	}

	tolerance := s.Options.TolerancePct
	if req.TargetLPIRRPct.LessThan(reachLo.Sub(tolerance)) ||
		req.TargetLPIRRPct.GreaterThan(reachHi.Add(tolerance)) {
		return nil, &BreakEvenError{
			Operation: "bracket",
			Message: fmt.Sprintf("target LP IRR %s%% is outside the reachable range %s%%..%s%% for %s in [%s, %s]",
				req.TargetLPIRRPct.StringFixed(2), reachLo.StringFixed(2), reachHi.StringFixed(2),
				req.Target, bounds.Min, bounds.Max),
		}
	}

	s.Logger.Debug().
		Str("target", string(req.Target)).
		Str("target_lp_irr_pct", req.TargetLPIRRPct.String()).
		Str("bounds_min", bounds.Min.String()).
		Str("bounds_max", bounds.Max.String()).
		Bool("increasing", increasing).
		Msg("break-even bracket established")

	two := decimal.NewFromInt(2)
	lo, hi := bounds.Min, bounds.Max
	for iteration := 1; iteration <= s.Options.MaxIterations; iteration++ {
		mid := lo.Add(hi).Div(two)
		irr, projection, err := s.projectAt(req, mid)
		if err != nil {
			return nil, err
		}

		diff := irr.Sub(req.TargetLPIRRPct)
		s.Logger.Debug().
			Int("iteration", iteration).
			Str("value", mid.String()).
			Str("lp_irr_pct", irr.String()).
			Msg("break-even step")

		result := &Result{
			Target:           req.Target,
			TargetLPIRRPct:   req.TargetLPIRRPct,
			Iterations:       iteration,
			BaseValue:        base,
			OptimalValue:     mid,
			AchievedLPIRRPct: irr,
			Projection:       projection,
		}

		if diff.Abs().LessThanOrEqual(tolerance) {
			result.Success = true
			result.ConvergenceInfo = fmt.Sprintf("converged to within %s%% of target after %d iterations",
				tolerance.String(), iteration)
			return result, nil
		}

		// Move the bound that keeps the target inside the bracket.
		if diff.IsNegative() == increasing {
			lo = mid
		} else {
			hi = mid
		}

		if hi.Sub(lo).Abs().LessThan(intervalEpsilon) {
			result.ConvergenceInfo = "search interval collapsed before reaching tolerance"
			return result, nil
		}
	}

	return nil, &BreakEvenError{
		Operation: "solve",
		Message:   fmt.Sprintf("no convergence after %d iterations", s.Options.MaxIterations),
	}
}

// projectAt projects the input with the target assumption set to value and
// returns the resulting LP IRR. A projection whose LP never sees a positive
// flow reports the total-loss sentinel rather than an error, so a bound deep
// in unprofitable territory still brackets the search.
func (s *Solver) projectAt(req Request, value decimal.Decimal) (decimal.Decimal, *domain.TermSheetProjection, error) {
	input, err := applyTarget(req.Input, req.Target, value)
	if err != nil {
		return decimal.Zero, nil, err
	}

	projection, err := s.Projector.Project(input)
	if err != nil {
		return decimal.Zero, nil, &BreakEvenError{
			Operation: "project",
			Message:   fmt.Sprintf("projection failed at %s=%s", req.Target, value),
			Cause:     err,
		}
	}
	if projection.Summary.LPIRRPct == nil {
		return noReturnIRRPct, projection, nil
	}
	return *projection.Summary.LPIRRPct, projection, nil
}

// applyTarget returns a copy of the input with the target assumption replaced.
func applyTarget(base domain.TermSheetInput, target Target, value decimal.Decimal) (domain.TermSheetInput, error) {
	modified := base
	switch target {
	case TargetExitCapRate:
		modified.ExitCapRatePct = value
	case TargetInitialNOI:
		modified.InitialNOI = value
	case TargetInterestRate:
		modified.Loan.InterestRatePct = value
	case TargetNOIGrowth:
		growth := value
		modified.NOIGrowthPct = &growth
	default:
		return domain.TermSheetInput{}, &BreakEvenError{
			Operation: "apply",
			Message:   fmt.Sprintf("unknown break-even target %q", target),
		}
	}
	return modified, nil
}

// targetValue reads the assumption the solver will replace, so results report
// the move from the deal's actual base.
func targetValue(base domain.TermSheetInput, target Target) (decimal.Decimal, error) {
	switch target {
	case TargetExitCapRate:
		return base.ExitCapRatePct, nil
	case TargetInitialNOI:
		return base.InitialNOI, nil
	case TargetInterestRate:
		return base.Loan.InterestRatePct, nil
	case TargetNOIGrowth:
		return base.GrowthPct(), nil
	default:
		return decimal.Zero, &BreakEvenError{
			Operation: "apply",
			Message:   fmt.Sprintf("unknown break-even target %q", target),
		}
	}
}

// defaultBounds brackets each assumption with a range wide enough to cover
// realistic deals. Dollar-denominated targets scale off the deal's own base.
func defaultBounds(target Target, base decimal.Decimal) Bounds {
	switch target {
	case TargetInitialNOI:
		return Bounds{
			Min: base.Div(decimal.NewFromInt(4)),
			Max: base.Mul(decimal.NewFromInt(3)),
		}
	case TargetExitCapRate:
		return Bounds{Min: decimal.NewFromInt(2), Max: decimal.NewFromInt(15)}
	case TargetInterestRate:
		return Bounds{Min: decimal.Zero, Max: decimal.NewFromInt(15)}
	case TargetNOIGrowth:
		return Bounds{Min: decimal.Zero, Max: decimal.NewFromInt(12)}
	default:
		return Bounds{}
	}
}
