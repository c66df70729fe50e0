// Package breakeven solves for the deal assumption that produces a target
// LP IRR. Where the sensitivity analyzer sweeps an assumption across a range
// and reports the outcomes, the break-even solver runs the question in
// reverse: given the LP IRR an investor needs, what does the exit cap rate
// (or initial NOI, interest rate, NOI growth) have to be?
package breakeven

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/LaxBloxBoy2/crego/internal/domain"
)

// Target names the deal assumption the solver adjusts. The values match the
// parameter names used by the sensitivity analyzer so the two features share
// a vocabulary on the command line.
type Target string

const (
	TargetExitCapRate  Target = "exit_cap_rate_pct"
	TargetInitialNOI   Target = "initial_noi"
	TargetInterestRate Target = "interest_rate_pct"
	TargetNOIGrowth    Target = "noi_growth_pct"
)

// AllTargets returns the solvable assumptions in presentation order.
func AllTargets() []Target {
	return []Target{
		TargetExitCapRate,
		TargetInitialNOI,
		TargetInterestRate,
		TargetNOIGrowth,
	}
}

// Valid reports whether the target names a solvable assumption.
func (t Target) Valid() bool {
	for _, known := range AllTargets() {
		if t == known {
			return true
		}
	}
	return false
}

// Bounds brackets the search interval for a target assumption. A zero Bounds
// asks the solver to pick defaults appropriate for the target.
type Bounds struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// IsZero reports whether the caller left the bounds unset.
func (b Bounds) IsZero() bool {
	return b.Min.IsZero() && b.Max.IsZero()
}

// Request describes a single break-even question: which assumption to move,
// and the LP IRR the projection must land on.
type Request struct {
	Input          domain.TermSheetInput `json:"input"`
	Target         Target                `json:"target"`
	TargetLPIRRPct decimal.Decimal       `json:"target_lp_irr_pct"`

	// Bounds optionally brackets the search; zero means solver defaults.
	Bounds Bounds `json:"bounds,omitempty"`
}

// Result reports the solved assumption value and the projection at that value.
type Result struct {
	Target         Target          `json:"target"`
	TargetLPIRRPct decimal.Decimal `json:"target_lp_irr_pct"`

	Success         bool   `json:"success"`
	Iterations      int    `json:"iterations"`
	ConvergenceInfo string `json:"convergence_info"`

	// BaseValue is the assumption as written in the deal; OptimalValue is
	// the solved replacement.
	BaseValue    decimal.Decimal `json:"base_value"`
	OptimalValue decimal.Decimal `json:"optimal_value"`

	AchievedLPIRRPct decimal.Decimal             `json:"achieved_lp_irr_pct"`
	Projection       *domain.TermSheetProjection `json:"projection,omitempty"`
}

// MovePct returns the relative move from base to optimal, in percent.
// A zero base yields a zero move to keep the report printable.
func (r Result) MovePct() decimal.Decimal {
	if r.BaseValue.IsZero() {
		return decimal.Zero
	}
	return r.OptimalValue.Sub(r.BaseValue).Div(r.BaseValue).Mul(decimal.NewFromInt(100))
}

// UnreachableTarget records an assumption that cannot reach the target LP IRR
// anywhere inside its search bounds.
type UnreachableTarget struct {
	Target Target `json:"target"`
	Reason string `json:"reason"`
}

// MultiResult aggregates one Solve per assumption for the same target IRR.
type MultiResult struct {
	TargetLPIRRPct decimal.Decimal     `json:"target_lp_irr_pct"`
	Results        []Result            `json:"results"`
	Unreachable    []UnreachableTarget `json:"unreachable,omitempty"`

	// EasiestMove points at the result whose assumption moves least, in
	// relative terms, to reach the target.
	EasiestMove     *Result  `json:"easiest_move,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// SolverOptions tunes convergence behavior.
type SolverOptions struct {
	MaxIterations int             `json:"max_iterations"`
	TolerancePct  decimal.Decimal `json:"tolerance_pct"`
}

// DefaultSolverOptions converges to within one basis point of the target IRR.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 60,
		TolerancePct:  decimal.NewFromFloat(0.01),
	}
}

// BreakEvenError describes a solve failure with enough context to act on.
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("break-even %s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("break-even %s: %s", e.Operation, e.Message)
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
