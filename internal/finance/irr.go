package finance

import (
	"strconv"

	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver tuning. The tolerance applies to the NPV residual, not the rate:
// a rate is accepted once the series discounts to within irrTolerance of
// zero. The bracket bounds every rate the solver will consider; deal IRRs
// outside (-99.99%, 1000%) are not meaningful.
const (
	newtonMaxIterations = 100
	bisectMaxIterations = 200
)

var (
	irrTolerance    = decimal.New(1, -7)  // |NPV| accepted as zero
	derivativeFloor = decimal.New(1, -12) // below this a Newton step is unsafe
	newtonStepFloor = decimal.New(1, -15) // steps smaller than this are a stall
	rateFloor       = decimal.NewFromFloat(-0.9999)
	rateCeiling     = decimal.NewFromInt(10)
	initialGuess    = decimal.NewFromFloat(0.10)
)

// NoSolutionError represents a cash-flow series for which no internal rate
// of return exists or could be found: the flows never change sign, no root
// lies inside the solver bracket, or iteration failed to converge. Callers
// must surface it; substituting a default rate corrupts every figure
// derived downstream.
type NoSolutionError struct {
	Operation  string
	Message    string
	Iterations int
	rootBelow  bool
}

func (e *NoSolutionError) Error() string {
	if e.Iterations > 0 {
		return e.Operation + ": " + e.Message + " after " + strconv.Itoa(e.Iterations) + " iterations"
	}
	return e.Operation + ": " + e.Message
}

// RootBelowBracket reports whether the series discounts to a negative value
// across the whole bracket: any rate zeroing it lies below the -99.99%
// floor. The series has a return, just one too deep for the solver's range;
// callers ranking returns may treat it as worse than any solvable rate.
func (e *NoSolutionError) RootBelowBracket() bool { return e.rootBelow }

// NPV discounts the series at the given fractional rate:
//
//	NPV(r) = Σ CF_t / (1+r)^t
//
// with CF_0 undiscounted. The rate must be greater than -1.
func NPV(rate decimal.Decimal, flows domain.CashFlowSeries) decimal.Decimal {
	onePlus := one.Add(rate)
	npv := decimal.Zero
	for t, flow := range flows {
		if t == 0 {
			npv = npv.Add(flow)
			continue
		}
		npv = npv.Add(flow.Div(onePlus.Pow(decimal.NewFromInt(int64(t)))))
	}
	return npv
}

// npvAndDerivative evaluates the NPV at rate together with its first
// derivative:
//
//	NPV'(r) = Σ −t · CF_t / (1+r)^(t+1)
func npvAndDerivative(rate decimal.Decimal, flows domain.CashFlowSeries) (decimal.Decimal, decimal.Decimal) {
	onePlus := one.Add(rate)
	npv := decimal.Zero
	deriv := decimal.Zero
	for t, flow := range flows {
		if t == 0 {
			npv = npv.Add(flow)
			continue
		}
		tDec := decimal.NewFromInt(int64(t))
		disc := onePlus.Pow(tDec)
		npv = npv.Add(flow.Div(disc))
		deriv = deriv.Sub(tDec.Mul(flow).Div(disc.Mul(onePlus)))
	}
	return npv, deriv
}

// SolveIRR finds the fractional rate at which the series' net present value
// is zero. Newton-Raphson with the analytic derivative converges in a few
// iterations for well-behaved deal flows; when a step stalls, the
// derivative flattens, or the iterate escapes the bracket, the solver falls
// back to bisection over the full bracket. Series with multiple sign
// changes can admit multiple roots; the first root found is returned.
func SolveIRR(flows domain.CashFlowSeries) (decimal.Decimal, error) {
	if err := flows.Validate(); err != nil {
		return decimal.Zero, err
	}
	if !flows.HasSignChange() {
		return decimal.Zero, &NoSolutionError{
			Operation: "solve_irr",
			Message:   "cash flows never change sign, no discount rate can zero their present value",
		}
	}

	rate := initialGuess
	for iter := 0; iter < newtonMaxIterations; iter++ {
		npv, deriv := npvAndDerivative(rate, flows)
		if npv.Abs().LessThan(irrTolerance) {
			return rate, nil
		}
		if deriv.Abs().LessThan(derivativeFloor) {
			break
		}
		next := rate.Sub(npv.Div(deriv))
		if next.LessThanOrEqual(rateFloor) || next.GreaterThanOrEqual(rateCeiling) {
			break
		}
		if next.Sub(rate).Abs().LessThan(newtonStepFloor) {
			break
		}
		rate = next
	}

	return bisectIRR(flows)
}

// bisectIRR halves the solver bracket until the NPV residual converges.
// Used when Newton-Raphson gives up; slower but immune to bad derivatives.
func bisectIRR(flows domain.CashFlowSeries) (decimal.Decimal, error) {
	lo := rateFloor
	hi := rateCeiling
	npvLo := NPV(lo, flows)
	npvHi := NPV(hi, flows)

	if npvLo.Abs().LessThan(irrTolerance) {
		return lo, nil
	}
	if npvHi.Abs().LessThan(irrTolerance) {
		return hi, nil
	}
	if npvLo.Sign() == npvHi.Sign() {
		// NPV falls with the rate, so negative at both ends puts the root
		// below the floor; positive at both ends puts it above the ceiling.
		return decimal.Zero, &NoSolutionError{
			Operation: "solve_irr",
			Message: "no root between " + rateFloor.String() + " and " + rateCeiling.String() +
				", the NPV never crosses zero inside the bracket",
			rootBelow: npvLo.Sign() < 0,
		}
	}

	two := decimal.NewFromInt(2)
	for iter := 0; iter < bisectMaxIterations; iter++ {
		mid := lo.Add(hi).Div(two)
		npvMid := NPV(mid, flows)
		if npvMid.Abs().LessThan(irrTolerance) {
			return mid, nil
		}
		if npvMid.Sign() == npvLo.Sign() {
			lo = mid
			npvLo = npvMid
		} else {
			hi = mid
		}
	}

	return decimal.Zero, &NoSolutionError{
		Operation:  "solve_irr",
		Message:    "net present value did not converge",
		Iterations: bisectMaxIterations,
	}
}
